// Package metrics records doctrine loading and lookup metrics with Prometheus.
//
// The same Recorder backs both surfaces: `xup serve` exposes it on
// /-/metrics and one-shot commands can dump it to a node_exporter textfile.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "xup"

// Result labels.
const (
	ResultSuccess     = "success"
	ResultNotFound    = "not_found"
	ResultInvalid     = "invalid"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
)

// Recorder holds the registered collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	reg          *prom.Registry
	loads        *prom.CounterVec
	loadDuration prom.Histogram
	doctrines    prom.Gauge
	duplicates   prom.Counter
	lookups      *prom.CounterVec
}

// NewRecorder constructs the collectors and registers them on reg, or on a
// fresh registry when reg is nil.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{
		reg: reg,
		loads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "doctrine_loads_total",
			Help:      "Doctrine file loads by result",
		}, []string{"result"}),
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "doctrine_load_duration_seconds",
			Help:      "Time spent reading and parsing the doctrine file",
			Buckets:   prom.DefBuckets,
		}),
		doctrines: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "doctrines",
			Help:      "Doctrines in the last successfully loaded catalog",
		}),
		duplicates: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "doctrine_duplicate_names_total",
			Help:      "Doctrine names defined more than once in a loaded file",
		}),
		lookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "doctrine_lookups_total",
			Help:      "Doctrine lookups by operation and result",
		}, []string{"operation", "result"}),
	}

	reg.MustRegister(r.loads, r.loadDuration, r.doctrines, r.duplicates, r.lookups)

	return r
}

// RegisterRuntime adds the Go runtime and process collectors. Long-running
// servers want them; one-shot commands do not.
func (r *Recorder) RegisterRuntime() {
	if r == nil {
		return
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prom.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// ObserveLoad records one doctrine file load.
func (r *Recorder) ObserveLoad(result string, d time.Duration) {
	if r == nil {
		return
	}
	r.loads.WithLabelValues(result).Inc()
	r.loadDuration.Observe(d.Seconds())
}

// SetDoctrines records the size of the loaded catalog.
func (r *Recorder) SetDoctrines(n int) {
	if r == nil {
		return
	}
	r.doctrines.Set(float64(n))
}

// AddDuplicates counts doctrine names that were overwritten during a load.
func (r *Recorder) AddDuplicates(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.duplicates.Add(float64(n))
}

// IncLookup records a catalog query such as "get" or "names".
func (r *Recorder) IncLookup(operation, result string) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(operation, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// WriteTextfile atomically writes the registry to path for the
// node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prom.WriteToTextfile(path, r.reg)
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveLoad(t *testing.T) {
	r := NewRecorder(prom.NewRegistry())

	r.ObserveLoad(ResultSuccess, 20*time.Millisecond)
	r.ObserveLoad(ResultSuccess, 30*time.Millisecond)
	r.ObserveLoad(ResultInvalid, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(r.loads.WithLabelValues(ResultSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.loads.WithLabelValues(ResultInvalid)), 0)
}

func TestRecorder_CatalogGauges(t *testing.T) {
	r := NewRecorder(nil)

	r.SetDoctrines(4)
	r.AddDuplicates(2)
	r.AddDuplicates(0)

	assert.InDelta(t, 4, testutil.ToFloat64(r.doctrines), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.duplicates), 0)
}

func TestRecorder_IncLookup(t *testing.T) {
	r := NewRecorder(nil)

	r.IncLookup("get", ResultSuccess)
	r.IncLookup("get", ResultNotFound)
	r.IncLookup("get", ResultNotFound)

	assert.InDelta(t, 2, testutil.ToFloat64(r.lookups.WithLabelValues("get", ResultNotFound)), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(r.lookups))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveLoad(ResultSuccess, time.Second)
		r.SetDoctrines(1)
		r.AddDuplicates(1)
		r.IncLookup("names", ResultSuccess)
		r.RegisterRuntime()
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder(nil)
	r.SetDoctrines(3)
	path := filepath.Join(t.TempDir(), "xup.prom")

	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "xup_doctrines 3")
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder(nil)
	r.IncLookup("names", ResultSuccess)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `xup_doctrine_lookups_total{operation="names",result="success"} 1`))
}

func TestRecorder_RegisterRuntime(t *testing.T) {
	r := NewRecorder(nil)
	r.RegisterRuntime()

	mfs, err := r.Registry().Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "go_goroutines" {
			found = true
		}
	}
	assert.True(t, found)
}

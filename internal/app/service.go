// Package app contains application services that orchestrate use cases.
// This is the application layer: it coordinates the doctrine domain with
// the doctrine source and the metrics recorder through ports.
//
// What does NOT belong here:
//   - YAML decoding (that's the yamldoc adapter)
//   - HTTP or CLI specifics (that's the adapters and internal/cli)
//   - Doctrine rules such as x-up formatting (that's the domain layer)
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/xup/internal/domain"
	"github.com/jsamuelsen/xup/internal/platform/logging"
	"github.com/jsamuelsen/xup/internal/platform/metrics"
	"github.com/jsamuelsen/xup/internal/ports"
)

// DoctrineService answers doctrine queries against a DoctrineSource.
// Every call reloads the source, so edits to the doctrine file are visible
// to a running server without a restart.
type DoctrineService struct {
	source  ports.DoctrineSource
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// DoctrineServiceConfig contains the dependencies of a DoctrineService.
type DoctrineServiceConfig struct {
	Source  ports.DoctrineSource
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// NewDoctrineService creates a doctrine service. It panics without a source.
func NewDoctrineService(cfg DoctrineServiceConfig) *DoctrineService {
	if cfg.Source == nil {
		panic("app: DoctrineServiceConfig.Source is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DoctrineService{
		source:  cfg.Source,
		logger:  logger,
		metrics: cfg.Metrics,
	}
}

// Catalog loads the source and indexes it by name. Duplicate names are
// logged; the later definition wins.
func (s *DoctrineService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	start := time.Now()

	doctrines, err := s.source.Load(ctx)
	if err != nil {
		s.metrics.ObserveLoad(resultOf(err), time.Since(start))
		s.log(ctx).DebugContext(ctx, "doctrine load failed", slog.Any("error", err))
		return nil, err
	}

	catalog, duplicates := domain.NewCatalog(doctrines)
	for _, name := range duplicates {
		s.log(ctx).WarnContext(ctx, "duplicate doctrine name, later definition wins",
			slog.String("doctrine", name),
		)
	}

	s.metrics.ObserveLoad(metrics.ResultSuccess, time.Since(start))
	s.metrics.AddDuplicates(len(duplicates))
	s.metrics.SetDoctrines(catalog.Len())

	return catalog, nil
}

// Names returns every doctrine name in lexical order.
func (s *DoctrineService) Names(ctx context.Context) ([]string, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		s.metrics.IncLookup("names", resultOf(err))
		return nil, err
	}

	s.metrics.IncLookup("names", metrics.ResultSuccess)

	return catalog.Names(), nil
}

// Get returns the named doctrine.
func (s *DoctrineService) Get(ctx context.Context, name string) (domain.Doctrine, error) {
	if name == "" {
		return domain.Doctrine{}, domain.NewValidationError("name", "no doctrine requested")
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		s.metrics.IncLookup("get", resultOf(err))
		return domain.Doctrine{}, err
	}

	doctrine, err := catalog.Get(name)
	if err != nil {
		s.metrics.IncLookup("get", resultOf(err))
		s.log(ctx).DebugContext(ctx, "doctrine not found", slog.String("doctrine", name))
		return domain.Doctrine{}, err
	}

	s.metrics.IncLookup("get", metrics.ResultSuccess)

	return doctrine, nil
}

// XUp returns the x-up line of the named doctrine.
func (s *DoctrineService) XUp(ctx context.Context, name string) (string, error) {
	doctrine, err := s.Get(ctx, name)
	if err != nil {
		return "", err
	}

	return doctrine.XUp(), nil
}

// log prefers the request-scoped logger so invocation and request IDs
// follow service log lines.
func (s *DoctrineService) log(ctx context.Context) *slog.Logger {
	if l, ok := logging.LoggerFromContext(ctx); ok {
		return l
	}
	return s.logger
}

// resultOf maps an error to a metrics result label.
func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case domain.IsNotFound(err):
		return metrics.ResultNotFound
	case domain.IsInvalidDocument(err):
		return metrics.ResultInvalid
	case domain.IsUnavailable(err):
		return metrics.ResultUnavailable
	default:
		return metrics.ResultError
	}
}

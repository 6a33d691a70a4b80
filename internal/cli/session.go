package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"

	"github.com/jsamuelsen/xup/internal/adapters/yamldoc"
	"github.com/jsamuelsen/xup/internal/app"
	"github.com/jsamuelsen/xup/internal/platform/config"
	"github.com/jsamuelsen/xup/internal/platform/logging"
	"github.com/jsamuelsen/xup/internal/platform/metrics"
	"github.com/jsamuelsen/xup/internal/platform/telemetry"
)

// runner owns the flag values shared by every command.
type runner struct {
	opts  Options
	flags rootFlags
}

// session is everything a command needs for one invocation.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *metrics.Recorder
	source    *yamldoc.FileSource
	service   *app.DoctrineService
	telemetry *telemetry.Provider
}

type commandFunc func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error

// run wraps fn with per-invocation setup and teardown: configuration,
// logging with an invocation ID, the command span, and flushing metrics
// and telemetry on the way out, whether fn fails or not.
func (r *runner) run(name string, fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		s, err := r.open(cmd)
		if err != nil {
			return err
		}

		invocationID := uuid.NewString()

		ctx := logging.WithContext(cmd.Context(), s.logger)
		ctx = logging.WithInvocationID(ctx, invocationID)
		ctx, span := telemetry.StartCommand(ctx, name, invocationID)
		if traceID := telemetry.TraceID(ctx); traceID != "" {
			ctx = logging.WithTraceID(ctx, traceID)
		}

		defer func() {
			var exitErr *ExitError
			if err != nil && !errors.As(err, &exitErr) {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()

			s.close(context.WithoutCancel(ctx))
		}()

		return fn(ctx, s, cmd, args)
	}
}

// overrides collects flags the user actually set, keyed by config path.
func (r *runner) overrides(cmd *cobra.Command) map[string]any {
	out := map[string]any{
		"app.version": r.opts.Version,
	}

	set := func(flag, key string, value any) {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			out[key] = value
		}
	}

	set("file", "doctrine.path", r.flags.doctrineFile)
	set("log-level", "log.level", r.flags.logLevel)
	set("log-format", "log.format", r.flags.logFormat)
	set("metrics-file", "metrics.textfile_path", r.flags.metricsFile)
	set("host", "server.host", r.flags.host)
	set("port", "server.port", r.flags.port)
	set("watch", "doctrine.watch", r.flags.watch)

	return out
}

func (r *runner) open(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:      r.flags.settingsFile,
		Overrides: r.overrides(cmd),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, r.opts.Stderr)

	tp, err := telemetry.New(cmd.Context(), &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	rec := metrics.NewRecorder(nil)
	source := yamldoc.NewFileSource(cfg.Doctrine.Path)

	return &session{
		cfg:     cfg,
		logger:  logger,
		metrics: rec,
		source:  source,
		service: app.NewDoctrineService(app.DoctrineServiceConfig{
			Source:  source,
			Logger:  logger,
			Metrics: rec,
		}),
		telemetry: tp,
	}, nil
}

// close flushes metrics and telemetry. Failures are logged, never returned,
// so they cannot mask the command's own result.
func (s *session) close(ctx context.Context) {
	logger := logging.FromContext(ctx)

	if path := s.cfg.Metrics.TextfilePath; path != "" {
		if err := s.metrics.WriteTextfile(path); err != nil {
			logger.WarnContext(ctx, "writing metrics textfile failed",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}
	}

	if err := s.telemetry.Shutdown(ctx); err != nil {
		logger.WarnContext(ctx, "telemetry shutdown failed", slog.Any("error", err))
	}
}

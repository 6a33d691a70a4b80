package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	xuphttp "github.com/jsamuelsen/xup/internal/adapters/http"
	"github.com/jsamuelsen/xup/internal/adapters/http/handlers"
	"github.com/jsamuelsen/xup/internal/adapters/yamldoc"
	"github.com/jsamuelsen/xup/internal/ports"
)

func (r *runner) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the doctrine read API over HTTP",
		Args:  cobra.NoArgs,
		RunE: r.run("serve", func(ctx context.Context, s *session, _ *cobra.Command, _ []string) error {
			return r.serve(ctx, s)
		}),
	}

	cmd.Flags().StringVar(&r.flags.host, "host", "", "listen host (default 127.0.0.1)")
	cmd.Flags().IntVar(&r.flags.port, "port", 0, "listen port, 0 for any free port (default 8080)")
	cmd.Flags().BoolVar(&r.flags.watch, "watch", false, "log as soon as an edit leaves the doctrine file invalid")

	return cmd
}

func (r *runner) serve(ctx context.Context, s *session) error {
	logger := s.logger

	registry := ports.NewHealthRegistry()
	if err := registry.Register(s.source); err != nil {
		return fmt.Errorf("registering doctrine health check: %w", err)
	}

	s.metrics.RegisterRuntime()

	server := xuphttp.New(&s.cfg.Server, logger)
	xuphttp.SetupRouter(server.Engine(), xuphttp.RouterConfig{
		Logger:      logger,
		ServiceName: s.cfg.Telemetry.ServiceName,
		HealthHandler: handlers.NewHealthHandler(
			registry,
			handlers.NewBuildInfo(r.opts.Version, r.opts.Commit, r.opts.BuildTime),
			s.metrics.Handler(),
		),
		DoctrineHandler: handlers.NewDoctrineHandler(s.service, xuphttp.RespondWithError),
		Timeout:         s.cfg.Server.RequestTimeout,
	})

	// Watch before listening: an unwatchable path must fail with no port open.
	var watcher *yamldoc.Watcher
	if s.cfg.Doctrine.Watch {
		w, err := yamldoc.NewWatcher(s.cfg.Doctrine.Path, s.cfg.Doctrine.WatchDebounce, s.reload)
		if err != nil {
			return err
		}
		defer w.Close()

		watcher = w
	}

	l, err := net.Listen("tcp", server.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", server.Addr(), err)
	}

	if r.opts.OnServe != nil {
		r.opts.OnServe(l.Addr())
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Serve(l)
	})

	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("initiating graceful shutdown",
			slog.Duration("timeout", s.cfg.Server.ShutdownTimeout),
		)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// reload loads the doctrine file after a change and logs the outcome.
func (s *session) reload(ctx context.Context) {
	catalog, err := s.service.Catalog(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "doctrine file changed but does not load",
			slog.String("path", s.cfg.Doctrine.Path),
			slog.Any("error", err),
		)
		return
	}

	s.logger.InfoContext(ctx, "doctrine file reloaded",
		slog.String("path", s.cfg.Doctrine.Path),
		slog.Int("doctrines", catalog.Len()),
	)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nais/usersync/internal/config"
	"github.com/nais/usersync/internal/controller"
	"github.com/nais/usersync/internal/logger"
	"github.com/nais/usersync/internal/metrics"
	"github.com/nais/usersync/internal/screen"
	"github.com/nais/usersync/internal/users"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.New(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.Logger, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("usersync stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	provider, err := metrics.NewPrometheusProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown(context.Background())

	m, err := metrics.New(provider.Meter(metrics.MeterName))
	if err != nil {
		return err
	}

	client := users.New(cfg.Endpoint, m, log.WithField("component", "users-client"))

	scr := screen.New(os.Stdin, os.Stdout, log.WithField("component", "screen"))
	ctrl := controller.New(
		client,
		log.WithField("component", "controller"),
		controller.WithNotifier(scr),
		controller.WithStateListener(scr.StateChanged),
	)
	scr.Attach(ctrl)

	g, ctx := errgroup.WithContext(ctx)
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.MetricsAddress, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			log.Infof("serving metrics on http://%s/metrics", cfg.MetricsAddress)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving metrics: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer stop()
		return scr.Run(ctx)
	})

	return g.Wait()
}

// Package app assembles the engine and its adapters from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apiroster "github.com/skyopshq/skyops/api/roster"
	"github.com/skyopshq/skyops/config"
	"github.com/skyopshq/skyops/core/audit"
	"github.com/skyopshq/skyops/core/engine"
	"github.com/skyopshq/skyops/core/identity"
	"github.com/skyopshq/skyops/core/match"
	coremetrics "github.com/skyopshq/skyops/core/metrics"
	"github.com/skyopshq/skyops/core/roster"
	"github.com/skyopshq/skyops/infra/flatfile"
	"github.com/skyopshq/skyops/infra/logger"
	"github.com/skyopshq/skyops/infra/metrics"
	"github.com/skyopshq/skyops/infra/syncnotify"
	"github.com/skyopshq/skyops/internal/eventbus"
)

// Service owns the engine and its HTTP surface.
type Service struct {
	Engine      *engine.Engine
	addr        string
	token       string
	promEnabled bool
	promPort    int
	log         logger.Logger
}

// New creates a Service from the configuration and loads the roster CSVs.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	ids := identity.NewNormalizer(cfg.Identity.Aliases)

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	var auditStore audit.Store
	var err error
	switch cfg.Audit.Backend {
	case "sqlite":
		auditStore, err = audit.NewSQLiteStore(cfg.Audit.Path)
	default:
		auditStore, err = audit.NewJSONLStore(cfg.Audit.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("audit store: %w", err)
	}

	var notifier engine.SyncNotifier
	if cfg.Sync.Enabled {
		var notifiers []engine.SyncNotifier
		if cfg.Sync.MQTT.Broker != "" {
			n, err := syncnotify.NewMQTTNotifier(cfg.Sync.MQTT, logger.New("sync"))
			if err != nil {
				return nil, fmt.Errorf("mqtt notifier: %w", err)
			}
			notifiers = append(notifiers, n)
		}
		if cfg.Sync.Webhook.URL != "" {
			n, err := syncnotify.NewWebhookNotifier(cfg.Sync.Webhook, logger.New("sync"))
			if err != nil {
				return nil, fmt.Errorf("webhook notifier: %w", err)
			}
			notifiers = append(notifiers, n)
		}
		if len(notifiers) == 1 {
			notifier = notifiers[0]
		} else if len(notifiers) > 1 {
			notifier = syncnotify.NewMultiNotifier(notifiers...)
		}
	}

	store := roster.New()
	matcher := match.Matcher{Pilot: cfg.Matching.Pilot, Drone: cfg.Matching.Drone}
	eng, err := engine.New(store, ids, engine.Options{
		Matcher: &matcher,
		Logger:  logger.New("engine"),
		Metrics: sink,
		Bus:     eventbus.New(),
		Audit:   auditStore,
		Sync:    notifier,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	snap, err := flatfile.NewLoader(cfg.Data.Dir, ids).Load()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	eng.LoadRoster(snap, cfg.Data.Dir)

	return &Service{
		Engine:      eng,
		addr:        cfg.Server.Addr,
		token:       cfg.Server.Token,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
		log:         logg,
	}, nil
}

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, fmt.Sprintf(":%d", s.promPort)); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           apiroster.NewMux(s.Engine, s.token),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("api listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.Engine.Close() }

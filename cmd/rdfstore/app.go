package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/aleksaelezovic/rdfstore/internal/config"
	"github.com/aleksaelezovic/rdfstore/internal/graph"
	"github.com/aleksaelezovic/rdfstore/internal/metrics"
	"github.com/aleksaelezovic/rdfstore/internal/storage"
	"github.com/aleksaelezovic/rdfstore/pkg/rdf"
	"github.com/aleksaelezovic/rdfstore/pkg/store"
)

// App is one store opened from config
type App struct {
	Store     *store.QuadStore
	Datatypes *rdf.Datatypes
	Logger    *slog.Logger

	registry *prometheus.Registry
	storage  storage.Storage
}

func NewApp(cfg *config.Config, logOutput io.Writer) (*App, error) {
	logger, err := newLogger(cfg.Log, logOutput)
	if err != nil {
		return nil, err
	}

	a := &App{
		Datatypes: rdf.DefaultDatatypes(),
		Logger:    logger,
	}

	opts := []store.Option{store.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		opts = append(opts, store.WithMetrics(metrics.New(a.registry)))
	}

	var g store.Graph
	switch cfg.Backend {
	case config.BackendBadger:
		s, err := storage.NewBadgerStorage(cfg.Badger.Dir, storage.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		a.storage = s
		g = graph.NewKV(s)
	default:
		g = graph.NewMemory()
	}

	logger.Debug("store opened", "backend", cfg.Backend, "dir", cfg.Badger.Dir)
	a.Store = store.NewQuadStore(g, opts...)
	return a, nil
}

func newLogger(cfg config.Log, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}

// WriteMetrics dumps the collected metrics in the prometheus text format.
// It does nothing when metrics are disabled.
func (a *App) WriteMetrics(w io.Writer) error {
	if a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	return a.storage.Close()
}

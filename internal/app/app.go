package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/specialistvlad/addressspace/internal/addressspace"
	"github.com/specialistvlad/addressspace/internal/builder"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/metric"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	ctx      context.Context
	logger   *slog.Logger
	config   *Config
	registry *prometheus.Registry
	space    *addressspace.AddressSpace
	result   *builder.Result

	httpServer *http.Server
}

// NewApp is the constructor for the main application. It creates an
// isolated logger and metrics registry, then loads every configured
// nodeset into a fresh address space. A nodeset that cannot be loaded or
// applied is a fatal startup error and panics.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	space := addressspace.New(ctx,
		addressspace.WithMetrics(metric.New(reg)),
		addressspace.WithLogger(logger),
	)

	a := &App{
		outW:     outW,
		ctx:      ctx,
		logger:   logger,
		config:   cfg,
		registry: reg,
		space:    space,
	}

	model, err := a.loadNodesets(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to load nodesets: %w", err))
	}
	logger.Debug("Nodesets loaded and translated into unified model.", "nodes", len(model.Nodes))

	res, err := builder.Build(ctx, space, model)
	if err != nil {
		panic(fmt.Errorf("failed to build address space: %w", err))
	}
	a.result = res
	return a
}

// Space returns the address space the app owns.
func (a *App) Space() *addressspace.AddressSpace {
	return a.space
}

// Result describes what the nodesets created.
func (a *App) Result() *builder.Result {
	return a.result
}

// Registry returns the Prometheus registry served on /metrics.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

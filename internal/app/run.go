package app

import (
	"context"

	"github.com/specialistvlad/addressspace/internal/ctxlog"
)

// Run reports the loaded model and, when the health check server is
// enabled, serves it until ctx is done. The address space is disposed
// before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer a.space.Dispose(ctx)

	nodes, refs := a.space.Counts(ctx)
	a.logger.Info("Address space ready.",
		"nodes", nodes,
		"references", refs,
		"created", len(a.result.Order),
		"namespaces", a.space.NamespaceArray(),
	)

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		<-ctx.Done()
		a.logger.Info("Shutdown requested.", "reason", context.Cause(ctx))
		if err := a.closeHealthCheckServer(); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

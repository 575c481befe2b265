package app

import (
	"context"

	"github.com/vk/modcore/internal/ctxlog"
)

// Run drives the composed application's lifecycle: construct every module,
// start the autostart set, block until the context is cancelled, then stop
// everything. Unit faults surface as bus events and mirrored log records,
// never as an error from Run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.logger.Info("🚀 Starting composition...", "modules", len(a.manifest.ModuleOrder))
	a.core.Init().Start()

	<-ctx.Done()

	a.logger.Info("🏁 Stopping composition...")
	a.core.Stop()

	a.logger.Debug("App.Run method finished.")
	return nil
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/modcore/core"
	"github.com/vk/modcore/internal/ctxlog"
	"github.com/vk/modcore/internal/hclcfg"
	"github.com/vk/modcore/mediator"
)

// App encapsulates one composed application: its logger, manifest and facade.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	manifest *hclcfg.Manifest
	core     *core.Core
}

// NewApp assembles the application: isolated logger, composition manifest,
// core facade wired to a mediator bus, and registration of every unit the
// manifest selects. A failure to load the manifest or to produce the facade
// is a fatal startup error and panics; the CLI entrypoint recovers it.
func NewApp(outW io.Writer, appConfig *Config, loader *hclcfg.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	manifest, err := loader.Load(ctx, appConfig.CompositionPath)
	if err != nil {
		panic(fmt.Errorf("failed to load composition: %w", err))
	}
	if appConfig.Debug {
		manifest.Debug = true
	}

	c, err := core.New(core.Config{
		Debug:           manifest.Debug,
		SilenceFaultLog: !manifest.LogFaults,
		CascadeChannels: manifest.CascadeChannels,
		Logger:          logger,
		Modules:         manifest.Modules,
		Extensions:      manifest.Extensions,
		NewBus: func(cascade bool) core.Bus {
			return mediator.New(mediator.Config{CascadeChannels: cascade})
		},
	})
	if err != nil {
		panic(fmt.Errorf("failed to create facade: %w", err))
	}

	for _, id := range manifest.ModuleOrder {
		creator, ok := moduleCatalog[id]
		if !ok {
			logger.Warn("No compiled-in module body for id, skipping.", "id", id)
			continue
		}
		c.RegisterModule(id, creator)
	}
	for _, id := range manifest.ExtensionOrder {
		creator, ok := extensionCatalog[id]
		if !ok {
			logger.Warn("No compiled-in extension body for id, skipping.", "id", id)
			continue
		}
		c.RegisterExtension(id, creator)
	}
	logger.Debug("All composition units registered.",
		"modules", len(manifest.ModuleOrder), "extensions", len(manifest.ExtensionOrder))

	return &App{
		outW:     outW,
		logger:   logger,
		manifest: manifest,
		core:     c,
	}
}

// Core returns the application's facade. This is primarily for testing.
func (a *App) Core() *core.Core {
	return a.core
}

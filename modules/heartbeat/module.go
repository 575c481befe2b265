// Package heartbeat provides a built-in module that emits a counter on the
// bus at a fixed interval while started. It demonstrates a module owning a
// background resource that its stop hook must tear down.
package heartbeat

import (
	"log/slog"
	"time"

	"github.com/vk/modcore/core"
)

// Module owns the ticker goroutine between Start and Stop.
type Module struct {
	sb       *core.Sandbox
	channel  string
	interval time.Duration
	done     chan struct{}
}

// New is the module creator. Settings: "channel" (string, default
// "heartbeat") and "interval" (duration string, default "1s").
func New(sb *core.Sandbox, settings map[string]any) (any, error) {
	channel, _ := settings["channel"].(string)
	if channel == "" {
		channel = "heartbeat"
	}
	interval := time.Second
	if raw, ok := settings["interval"].(string); ok {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			slog.Warn("Failed to parse heartbeat interval, using default 1s",
				"module", sb.ModuleID, "interval", raw, "error", err)
		} else {
			interval = parsed
		}
	}
	return &Module{sb: sb, channel: channel, interval: interval}, nil
}

// Start launches the ticker goroutine. Starting an already-started module
// is a no-op so the previous ticker is never orphaned.
func (m *Module) Start() error {
	if m.done != nil {
		return nil
	}
	m.done = make(chan struct{})
	go func(done chan struct{}) {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		beat := 0
		for {
			select {
			case <-done:
				return
			case at := <-ticker.C:
				beat++
				m.sb.Emit(m.channel, beat, at)
			}
		}
	}(m.done)
	return nil
}

// Stop tears the ticker goroutine down.
func (m *Module) Stop() error {
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
	return nil
}

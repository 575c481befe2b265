// Package print provides a built-in module that writes every payload
// published on a configured bus channel to standard output. It is the
// minimal reference shape for a module body: a creator plus optional
// start/stop hooks.
package print

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/modcore/core"
)

// Module subscribes to one channel while started.
type Module struct {
	sb      *core.Sandbox
	channel string
	out     io.Writer
	off     func()
}

// New is the module creator. Settings: "channel" (string, default "print").
func New(sb *core.Sandbox, settings map[string]any) (any, error) {
	channel, _ := settings["channel"].(string)
	if channel == "" {
		channel = "print"
	}
	return &Module{sb: sb, channel: channel, out: os.Stdout}, nil
}

// Start subscribes to the configured channel. Starting an already-started
// module is a no-op so subscriptions never stack.
func (m *Module) Start() error {
	if m.off != nil {
		return nil
	}
	slog.Debug("print module subscribing", "module", m.sb.ModuleID, "channel", m.channel)
	m.off = m.sb.On(m.channel, func(args ...any) {
		for _, arg := range args {
			fmt.Fprintf(m.out, "      [%s] %s: %v\n", m.sb.ModuleID, m.channel, arg)
		}
	})
	return nil
}

// Stop drops the subscription.
func (m *Module) Stop() error {
	if m.off != nil {
		m.off()
		m.off = nil
	}
	return nil
}

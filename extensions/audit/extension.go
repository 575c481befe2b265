// Package audit provides a built-in extension that keeps a tally of the
// fault and warning reports crossing the bus and republishes a summary when
// the facade finishes stopping. Extensions are constructed eagerly at
// registration, so the tally covers registration-time faults too.
package audit

import (
	"github.com/vk/modcore/core"
)

// Summary is the payload published on the summary channel after each
// afterStop checkpoint.
type Summary struct {
	Errors   int
	Warnings int
	Sites    map[string]int
}

// Extension accumulates reports for the facade's lifetime.
type Extension struct {
	channel  string
	errors   int
	warnings int
	sites    map[string]int
}

// New is the extension creator. Settings: "channel" (string, default
// "audit/summary").
func New(c *core.Core, settings map[string]any) (any, error) {
	channel, _ := settings["channel"].(string)
	if channel == "" {
		channel = "audit/summary"
	}
	ext := &Extension{channel: channel, sites: make(map[string]int)}

	bus := c.Bus()
	bus.On(core.EventError, func(args ...any) {
		ext.errors++
		if len(args) > 0 {
			if fault, ok := args[0].(core.Fault); ok {
				ext.sites[fault.Site]++
			}
		}
	})
	bus.On(core.EventWarning, func(args ...any) {
		ext.warnings++
		if len(args) > 0 {
			if notice, ok := args[0].(core.Notice); ok {
				ext.sites[notice.Site]++
			}
		}
	})
	bus.On(core.EventAfterStop, func(...any) {
		bus.Emit(channel, ext.Snapshot())
	})

	return ext, nil
}

// Snapshot returns a copy of the current tally.
func (e *Extension) Snapshot() Summary {
	sites := make(map[string]int, len(e.sites))
	for k, v := range e.sites {
		sites[k] = v
	}
	return Summary{Errors: e.errors, Warnings: e.warnings, Sites: sites}
}

// Package envreport provides a built-in module that publishes a snapshot of
// the process environment on the bus when started. It carries no stop hook
// on purpose: hook absence is a legitimate module shape.
package envreport

import (
	"os"
	"strings"

	"github.com/vk/modcore/core"
)

// Module publishes one environment snapshot per start.
type Module struct {
	sb      *core.Sandbox
	channel string
	prefix  string
}

// New is the module creator. Settings: "channel" (string, default
// "envreport") and "prefix" (string, only variables with this prefix are
// included; empty means all).
func New(sb *core.Sandbox, settings map[string]any) (any, error) {
	channel, _ := settings["channel"].(string)
	if channel == "" {
		channel = "envreport"
	}
	prefix, _ := settings["prefix"].(string)
	return &Module{sb: sb, channel: channel, prefix: prefix}, nil
}

// Start emits the snapshot.
func (m *Module) Start() error {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 {
			continue
		}
		if m.prefix != "" && !strings.HasPrefix(pair[0], m.prefix) {
			continue
		}
		envMap[pair[0]] = pair[1]
	}
	m.sb.Emit(m.channel, envMap)
	return nil
}

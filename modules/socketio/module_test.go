package socketio_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/modcore/core"
	"github.com/vk/modcore/mediator"
	"github.com/vk/modcore/modules/socketio"
)

func newSandbox() *core.Sandbox {
	return &core.Sandbox{
		Bus:      mediator.New(mediator.Config{}),
		ModuleID: "socketio",
	}
}

func TestNew_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := socketio.New(newSandbox(), nil)
	require.ErrorContains(t, err, `"url" is required`)

	_, err = socketio.New(newSandbox(), map[string]any{"url": ""})
	require.ErrorContains(t, err, `"url" is required`)
}

func TestNew_AcceptsFullSettings(t *testing.T) {
	t.Parallel()

	inst, err := socketio.New(newSandbox(), map[string]any{
		"url":                  "https://example.com/socket.io",
		"namespace":            "/metrics",
		"channels":             []any{"pulse", "envreport"},
		"connect_timeout":      "2s",
		"insecure_skip_verify": true,
	})
	require.NoError(t, err)
	require.IsType(t, &socketio.Module{}, inst)
}

func TestNew_BadTimeoutFallsBackToDefault(t *testing.T) {
	t.Parallel()

	inst, err := socketio.New(newSandbox(), map[string]any{
		"url":             "https://example.com/socket.io",
		"connect_timeout": "soon",
	})
	require.NoError(t, err, "a bad timeout degrades to the default, not an error")
	require.NotNil(t, inst)
}

func TestStop_BeforeStartIsHarmless(t *testing.T) {
	t.Parallel()

	inst, err := socketio.New(newSandbox(), map[string]any{
		"url": "https://example.com/socket.io",
	})
	require.NoError(t, err)
	require.NoError(t, inst.(*socketio.Module).Stop())
}

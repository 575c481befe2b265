package print_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/modcore/core"
	"github.com/vk/modcore/mediator"
	"github.com/vk/modcore/modules/print"
)

func TestNew_DefaultChannel(t *testing.T) {
	t.Parallel()

	bus := mediator.New(mediator.Config{})
	sb := &core.Sandbox{Bus: bus, ModuleID: "print"}

	inst, err := print.New(sb, nil)
	require.NoError(t, err)

	m, ok := inst.(*print.Module)
	require.True(t, ok)
	require.NoError(t, m.Start())
	require.NoError(t, m.Stop())
	require.NoError(t, m.Stop(), "stopping twice must be harmless")
}

func TestStartStop_SubscriptionLifecycle(t *testing.T) {
	t.Parallel()

	bus := mediator.New(mediator.Config{})
	sb := &core.Sandbox{Bus: bus, ModuleID: "print"}

	inst, err := print.New(sb, map[string]any{"channel": "pulse"})
	require.NoError(t, err)
	m := inst.(*print.Module)

	require.NoError(t, m.Start())
	// Emitting while started exercises the subscription path; payloads go
	// to stdout, so this only asserts nothing blows up.
	bus.Emit("pulse", map[string]any{"beat": 1})
	require.NoError(t, m.Stop())
	bus.Emit("pulse", "after stop")
}

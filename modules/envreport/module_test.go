package envreport_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/modcore/core"
	"github.com/vk/modcore/mediator"
	"github.com/vk/modcore/modules/envreport"
)

func TestStart_PublishesFilteredSnapshot(t *testing.T) {
	t.Setenv("MODCORE_TEST_ALPHA", "1")
	t.Setenv("MODCORE_TEST_BETA", "2")
	t.Setenv("OTHER_VARIABLE", "3")

	bus := mediator.New(mediator.Config{})
	sb := &core.Sandbox{Bus: bus, ModuleID: "envreport"}

	inst, err := envreport.New(sb, map[string]any{
		"channel": "environment",
		"prefix":  "MODCORE_TEST_",
	})
	require.NoError(t, err)

	var got map[string]string
	bus.On("environment", func(args ...any) {
		got = args[0].(map[string]string)
	})

	m := inst.(*envreport.Module)
	require.NoError(t, m.Start())

	require.Equal(t, map[string]string{
		"MODCORE_TEST_ALPHA": "1",
		"MODCORE_TEST_BETA":  "2",
	}, got)
}

func TestNew_DefaultChannel(t *testing.T) {
	t.Setenv("MODCORE_TEST_DEFAULT", "1")

	bus := mediator.New(mediator.Config{})
	sb := &core.Sandbox{Bus: bus, ModuleID: "envreport"}

	inst, err := envreport.New(sb, nil)
	require.NoError(t, err)

	var published bool
	bus.On("envreport", func(...any) { published = true })

	require.NoError(t, inst.(*envreport.Module).Start())
	require.True(t, published)
}

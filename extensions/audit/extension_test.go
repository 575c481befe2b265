package audit_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/modcore/core"
	"github.com/vk/modcore/extensions/audit"
	"github.com/vk/modcore/mediator"
)

func newCore(t *testing.T, cfg core.Config) *core.Core {
	t.Helper()
	cfg.Logger = slog.New(slog.DiscardHandler)
	cfg.NewBus = func(cascade bool) core.Bus {
		return mediator.New(mediator.Config{CascadeChannels: cascade})
	}
	c, err := core.New(cfg)
	require.NoError(t, err)
	return c
}

func TestAudit_TalliesFaultsAndWarnings(t *testing.T) {
	t.Parallel()

	c := newCore(t, core.Config{})
	c.RegisterExtension("audit", audit.New)

	inst := c.Inspect()
	require.Nil(t, inst, "non-debug facades expose no inspector")

	// A broken creator produces a fault at init, a duplicate id a warning
	// at registration.
	c.RegisterModule("flaky", func(*core.Sandbox, map[string]any) (any, error) {
		return nil, errors.New("boom")
	})
	c.RegisterModule("flaky", func(*core.Sandbox, map[string]any) (any, error) {
		return struct{}{}, nil
	})

	var summary audit.Summary
	c.Bus().On("audit/summary", func(args ...any) {
		require.Len(t, args, 1)
		summary = args[0].(audit.Summary)
	})

	c.Init().Start().Stop()

	require.Equal(t, 1, summary.Errors)
	require.Equal(t, 1, summary.Warnings)
	require.Equal(t, 2, summary.Sites["flaky"])
}

func TestAudit_CustomChannelAndSnapshotIsolation(t *testing.T) {
	t.Parallel()

	c := newCore(t, core.Config{
		Debug:      true,
		Extensions: map[string]map[string]any{"audit": {"channel": "reports"}},
	})
	c.RegisterExtension("audit", audit.New)

	got := 0
	c.Bus().On("reports", func(...any) { got++ })

	c.Init().Start().Stop()
	require.Equal(t, 1, got)

	ext, ok := c.Inspect().Extension("audit").(*audit.Extension)
	require.True(t, ok)

	snap := ext.Snapshot()
	snap.Sites["tamper"] = 99
	require.NotContains(t, ext.Snapshot().Sites, "tamper")
}

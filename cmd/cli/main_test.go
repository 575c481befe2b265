package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// An HCL syntax error makes app.NewApp panic during manifest loading;
	// run must recover it and hand back a plain error.
	invalidHCL := `
		module "print" {
			settings = {
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "composition.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0o600))

	out := &bytes.Buffer{}
	runErr := run(context.Background(), out, []string{filePath})

	require.Error(t, runErr)
	require.ErrorContains(t, runErr, "application startup panicked")
	require.ErrorContains(t, runErr, "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "expected help text on the output buffer")
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, nil)

	require.NoError(t, err)
	require.Contains(t, out.String(), "COMPOSITION_PATH")
}

func TestRun_ComposesStartsAndStops(t *testing.T) {
	t.Parallel()

	manifest := `
		settings {
			debug = true
		}

		module "print" {
			settings = { channel = "pulse" }
		}

		extension "audit" {}
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "composition.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(manifest), 0o600))

	// A pre-cancelled context makes Run fall straight through to Stop.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &bytes.Buffer{}
	err := run(ctx, out, []string{"-log-level", "debug", filePath})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Starting composition")
	require.Contains(t, out.String(), "Stopping composition")
}

func TestRun_InvalidFlagValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{name: "bad log format", args: []string{"-log-format", "xml", "whatever.hcl"}},
		{name: "bad log level", args: []string{"-log-level", "loud", "whatever.hcl"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := run(context.Background(), &bytes.Buffer{}, tc.args)
			require.Error(t, err)
		})
	}
}

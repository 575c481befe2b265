package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/modcore/internal/hclcfg"
)

// setupAppTest assembles an App over an on-disk manifest, capturing its log
// output at debug level.
func setupAppTest(t *testing.T, manifest string, debug bool) (*App, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "composition.hcl")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	cfg, err := NewConfig(Config{
		CompositionPath: path,
		LogFormat:       "text",
		LogLevel:        "debug",
		Debug:           debug,
	})
	require.NoError(t, err)

	logBuffer := &bytes.Buffer{}
	return NewApp(logBuffer, cfg, hclcfg.NewLoader()), logBuffer
}

func TestNewApp_WarnsOnUncatalogedIDs(t *testing.T) {
	t.Parallel()

	testApp, logBuffer := setupAppTest(t, `
		module "print" {}
		module "nosuch" {}
		extension "nosuchext" {}
	`, true)

	logs := logBuffer.String()
	require.Contains(t, logs, "No compiled-in module body")
	require.Contains(t, logs, "No compiled-in extension body")

	// Only the cataloged unit makes it into the facade pools.
	inspect := testApp.Core().Inspect()
	require.Equal(t, []string{"print"}, inspect.ModuleIDs())
	require.Empty(t, inspect.ExtensionIDs())
}

func TestNewApp_DebugFlagOverridesManifest(t *testing.T) {
	t.Parallel()

	// Manifest says nothing about debug; the CLI flag forces it on.
	testApp, _ := setupAppTest(t, `module "print" {}`, true)
	require.NotNil(t, testApp.Core().Inspect())

	// The flag never forces debug off when the manifest asked for it.
	testApp, _ = setupAppTest(t, `
		settings { debug = true }
		module "print" {}
	`, false)
	require.NotNil(t, testApp.Core().Inspect())

	// Neither source asks for debug: no inspection surface.
	testApp, _ = setupAppTest(t, `module "print" {}`, false)
	require.Nil(t, testApp.Core().Inspect())
}

func TestNewApp_BadManifestPanics(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{
		CompositionPath: filepath.Join(t.TempDir(), "missing.hcl"),
		LogFormat:       "text",
		LogLevel:        "debug",
	})
	require.NoError(t, err)

	require.Panics(t, func() {
		NewApp(&bytes.Buffer{}, cfg, hclcfg.NewLoader())
	})
}

func TestNewConfig_RequiresCompositionPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.ErrorContains(t, err, "CompositionPath")
}

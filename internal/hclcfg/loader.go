// Package hclcfg loads HCL composition manifests: which compiled-in modules
// and extensions a host assembly should register, with what settings, plus
// the facade-level switches (debug, channel cascading, fault logging).
package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/modcore/internal/ctxlog"
	"github.com/vk/modcore/internal/fsutil"
)

// Loader parses .hcl manifest files into the format-agnostic Manifest model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a manifest loader with its own parser state.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads every .hcl file under the given paths (files or directories)
// and folds them into a single Manifest. Later files override the top-level
// settings; a unit id defined twice is a manifest error, mirroring the
// registry's no-overwrite rule.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	manifest := newManifest()

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk composition path %s: %w", path, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl composition files found under %v", paths)
	}
	logger.Debug("Found composition files to load.", "files", files)

	for _, filePath := range files {
		hclFile, diags := l.parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", filePath, diags)
		}
		if err := l.fold(manifest, hclFile, filePath); err != nil {
			return nil, err
		}
		logger.Debug("Loaded composition file.", "file", filePath)
	}

	logger.Debug("Composition manifest assembled.",
		"modules", len(manifest.ModuleOrder), "extensions", len(manifest.ExtensionOrder))
	return manifest, nil
}

func (l *Loader) fold(m *Manifest, file *hcl.File, filePath string) error {
	var parsed fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("failed to decode %s: %w", filePath, diags)
	}

	if s := parsed.Settings; s != nil {
		if s.Debug != nil {
			m.Debug = *s.Debug
		}
		if s.CascadeChannels != nil {
			m.CascadeChannels = *s.CascadeChannels
		}
		if s.LogFaults != nil {
			m.LogFaults = *s.LogFaults
		}
	}

	for _, blk := range parsed.Modules {
		if _, dup := m.Modules[blk.ID]; dup {
			return fmt.Errorf("%s: module %q defined more than once", filePath, blk.ID)
		}
		settings, err := decodeSettings(blk.Settings, "module", blk.ID)
		if err != nil {
			return err
		}
		if blk.Autostart != nil {
			if settings == nil {
				settings = make(map[string]any, 1)
			}
			settings["autostart"] = *blk.Autostart
		}
		m.Modules[blk.ID] = settings
		m.ModuleOrder = append(m.ModuleOrder, blk.ID)
	}

	for _, blk := range parsed.Extensions {
		if _, dup := m.Extensions[blk.ID]; dup {
			return fmt.Errorf("%s: extension %q defined more than once", filePath, blk.ID)
		}
		settings, err := decodeSettings(blk.Settings, "extension", blk.ID)
		if err != nil {
			return err
		}
		m.Extensions[blk.ID] = settings
		m.ExtensionOrder = append(m.ExtensionOrder, blk.ID)
	}

	return nil
}

// decodeSettings evaluates a unit's settings expression into map[string]any.
// The HCL decoder hands optional attributes back as non-nil zero-width
// expressions, so presence is detected through the source range.
func decodeSettings(expr hcl.Expression, kind, id string) (map[string]any, error) {
	if !isExprDefined(expr) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid settings for %s %q: %w", kind, id, diags)
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, fmt.Errorf("invalid settings for %s %q: %w", kind, id, err)
	}
	if native == nil {
		return nil, nil
	}
	m, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings for %s %q must be an object", kind, id)
	}
	return m, nil
}

func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}

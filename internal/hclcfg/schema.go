package hclcfg

import "github.com/hashicorp/hcl/v2"

// settingsBlock is the optional top-level `settings` block of a composition
// manifest. Pointer fields distinguish "omitted" from an explicit false.
type settingsBlock struct {
	Debug           *bool `hcl:"debug,optional"`
	CascadeChannels *bool `hcl:"cascade_channels,optional"`
	LogFaults       *bool `hcl:"log_faults,optional"`
}

// moduleBlock selects a compiled-in module body and carries its settings.
// The settings attribute stays an unevaluated expression until translation.
type moduleBlock struct {
	ID        string         `hcl:"id,label"`
	Autostart *bool          `hcl:"autostart,optional"`
	Settings  hcl.Expression `hcl:"settings,optional"`
}

// extensionBlock selects a compiled-in extension body.
type extensionBlock struct {
	ID       string         `hcl:"id,label"`
	Settings hcl.Expression `hcl:"settings,optional"`
}

// fileSchema is the top-level structure of one manifest file.
type fileSchema struct {
	Settings   *settingsBlock    `hcl:"settings,block"`
	Modules    []*moduleBlock    `hcl:"module,block"`
	Extensions []*extensionBlock `hcl:"extension,block"`
}

package hclcfg

// Manifest is the format-agnostic model of a composition: the facade-level
// switches plus the per-unit settings, keyed by id with block order
// preserved (registration order is insertion order downstream).
type Manifest struct {
	Debug           bool
	CascadeChannels bool
	LogFaults       bool

	Modules     map[string]map[string]any
	ModuleOrder []string

	Extensions     map[string]map[string]any
	ExtensionOrder []string
}

func newManifest() *Manifest {
	return &Manifest{
		LogFaults:  true,
		Modules:    make(map[string]map[string]any),
		Extensions: make(map[string]map[string]any),
	}
}

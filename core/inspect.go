package core

import "slices"

// Inspector reads facade internals for diagnostics: pools, instances,
// retained sandboxes and effective settings. Only facades constructed with
// Config.Debug carry one; production configurations keep the pools
// unreachable from outside the facade.
type Inspector struct {
	core *Core
}

// Inspect returns the facade's inspector, or nil when the facade was not
// built in debug mode. The decision is made once, at construction time.
func (c *Core) Inspect() *Inspector {
	return c.inspector
}

// ModuleIDs lists registered module ids in registration order.
func (i *Inspector) ModuleIDs() []string {
	return slices.Clone(i.core.order)
}

// ExtensionIDs lists registered extension ids in registration order.
func (i *Inspector) ExtensionIDs() []string {
	return slices.Clone(i.core.extOrder)
}

// Instance returns the constructed instance of a module, or nil while the
// module is registered-but-not-instantiated or stopped.
func (i *Inspector) Instance(id string) any {
	if ent, ok := i.core.modules[id]; ok {
		return ent.instance
	}
	return nil
}

// Extension returns the long-lived instance stored for an extension id.
func (i *Inspector) Extension(id string) any {
	return i.core.extensions[id]
}

// Sandbox returns the sandbox retained for a module's current instance.
func (i *Inspector) Sandbox(id string) *Sandbox {
	if ent, ok := i.core.modules[id]; ok {
		return ent.sandbox
	}
	return nil
}

// Settings returns a module's effective settings, defaults already merged
// under the module's own configuration slice.
func (i *Inspector) Settings(id string) map[string]any {
	if ent, ok := i.core.modules[id]; ok {
		return ent.settings
	}
	return nil
}

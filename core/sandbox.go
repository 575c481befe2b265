package core

// Sandbox is a module's sole view into the wider system: the shared bus
// capabilities plus the owning module's id. Every construction gets a fresh
// sandbox; it is owned by that instance for the instance's lifetime and is
// not reused across stop cycles.
type Sandbox struct {
	Bus
	ModuleID string
}

func (c *Core) newSandbox(id string) *Sandbox {
	return &Sandbox{Bus: c.bus, ModuleID: id}
}

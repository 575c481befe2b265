package core

import (
	"fmt"

	"github.com/vk/modcore/merge"
)

// Kind tags a registration variant in the dispatch table.
type Kind string

const (
	// KindModule is the standard registration: the creator is stored and
	// constructed lazily during Init.
	KindModule Kind = "module"

	// KindExtension registers a system-augmenting unit that is constructed
	// immediately, at registration time.
	KindExtension Kind = "extension"
)

// RegisterFunc validates and inserts one registration kind. Custom kinds can
// be added through RegisterKind before any Register call.
type RegisterFunc func(c *Core, id string, creator any)

// RegisterKind extends the dispatch table with a new registration kind.
// Redefining an existing kind is rejected with a warning.
func (c *Core) RegisterKind(kind Kind, fn RegisterFunc) *Core {
	switch {
	case kind == "" || fn == nil:
		c.warn(string(kind), "registerKind: kind tag and handler are both required")
	case c.kinds[kind] != nil:
		c.warn(string(kind), fmt.Sprintf("registerKind: kind %q already defined", kind))
	default:
		c.kinds[kind] = fn
	}
	return c
}

// Register dispatches a registration through the kind table. An empty kind
// selects the standard module path; an unknown kind degrades to a warning.
func (c *Core) Register(kind Kind, id string, creator any) *Core {
	if kind == "" {
		kind = KindModule
	}
	fn, ok := c.kinds[kind]
	if !ok {
		c.warn(id, fmt.Sprintf("register: unknown kind %q", kind))
		return c
	}
	fn(c, id, creator)
	return c
}

// RegisterModule stores a module creator under a unique id. The creator is
// not invoked here; construction happens during Init. Violations (empty id,
// duplicate id, non-constructible creator) degrade to a warning event and
// leave the pool untouched: registrations are never overwritten.
func (c *Core) RegisterModule(id string, creator Creator) *Core {
	registerModule(c, id, creator)
	return c
}

// RegisterExtension invokes an extension creator immediately and stores the
// resulting instance under a unique id. Violations and creator faults are
// reported as error events; a faulting extension is not stored.
func (c *Core) RegisterExtension(id string, creator ExtensionCreator) *Core {
	registerExtension(c, id, creator)
	return c
}

func registerModule(c *Core, id string, creator any) {
	fn := asCreator(creator)
	switch {
	case id == "":
		c.warn(id, "registerModule: id must be a non-empty string")
	case fn == nil:
		c.warn(id, "registerModule: creator is not constructible")
	case c.modules[id] != nil:
		c.warn(id, fmt.Sprintf("registerModule: id %q already registered", id))
	default:
		c.modules[id] = &moduleEntry{
			creator:  fn,
			settings: merge.Deep(map[string]any{}, c.defaults, c.modCfg[id]),
		}
		c.order = append(c.order, id)
	}
}

func registerExtension(c *Core, id string, creator any) {
	fn := asExtensionCreator(creator)
	switch {
	case id == "":
		c.fail(id, "register", fmt.Errorf("registerExtension: id must be a non-empty string"))
		return
	case fn == nil:
		c.fail(id, "register", fmt.Errorf("registerExtension: creator is not constructible"))
		return
	case c.hasExtension(id):
		c.fail(id, "register", fmt.Errorf("registerExtension: id %q already registered", id))
		return
	}
	inst, err := extend(fn, c, merge.Clone(c.extCfg[id]))
	if err != nil {
		c.fail(id, "register", err)
		return
	}
	c.extensions[id] = inst
	c.extOrder = append(c.extOrder, id)
}

// hasExtension distinguishes "registered with a nil instance" from "never
// registered", which a plain map lookup on the any values cannot.
func (c *Core) hasExtension(id string) bool {
	_, ok := c.extensions[id]
	return ok
}

func asCreator(v any) Creator {
	switch fn := v.(type) {
	case Creator:
		return fn
	case func(*Sandbox, map[string]any) (any, error):
		return fn
	default:
		return nil
	}
}

func asExtensionCreator(v any) ExtensionCreator {
	switch fn := v.(type) {
	case ExtensionCreator:
		return fn
	case func(*Core, map[string]any) (any, error):
		return fn
	default:
		return nil
	}
}

func extend(fn ExtensionCreator, c *Core, settings map[string]any) (inst any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extension creator panicked: %v", r)
		}
	}()
	return fn(c, settings)
}

package core

import (
	"fmt"
	"slices"

	"github.com/vk/modcore/merge"
)

// Init constructs every registered module, in registration order, each with
// a fresh sandbox and an isolated copy of its effective settings. A fault
// inside one creator is caught, reported as an error event and does not
// disturb the construction of the others.
//
// Init runs exactly once per facade: after the first walk it emits afterInit
// with the facade as payload and seals itself into a no-op.
func (c *Core) Init() *Core {
	if c.initialized {
		return c
	}
	for _, id := range c.order {
		ent := c.modules[id]
		if ent.instance != nil {
			continue
		}
		sb := c.newSandbox(id)
		if c.debug {
			ent.sandbox = sb
		}
		inst, err := construct(ent.creator, sb, merge.Clone(ent.settings))
		switch {
		case err != nil:
			c.fail(id, "init", err)
		case inst == nil:
			c.fail(id, "init", fmt.Errorf("creator returned no instance"))
		default:
			ent.instance = inst
		}
	}
	c.initialized = true
	c.bus.Emit(EventAfterInit, c)
	return c
}

// Start runs the start hooks of the named modules, or of every module in
// registration order when no ids are given. Bulk starts honor the
// per-module "autostart": false opt-out; an explicit id is started
// regardless of it. Unknown ids warn and are skipped; modules without an
// instance or without a Start hook are silent no-ops. Emits afterStart with
// the facade once all requested starts completed.
func (c *Core) Start(ids ...string) *Core {
	targets := ids
	if len(targets) == 0 {
		for _, id := range c.order {
			if c.autostart(id) {
				targets = append(targets, id)
			}
		}
	}
	for _, id := range targets {
		c.startOne(id)
	}
	c.bus.Emit(EventAfterStart, c)
	return c
}

// Stop runs the stop hooks of the named modules, or of all modules when no
// ids are given. A successful stop (including the no-hook case) clears the
// stored instance; a faulting stop hook leaves the instance in place - the
// module is still considered running - and raises a warning. Emits afterStop
// with the facade once all requested stops completed.
func (c *Core) Stop(ids ...string) *Core {
	targets := ids
	if len(targets) == 0 {
		targets = slices.Clone(c.order)
	}
	for _, id := range targets {
		c.stopOne(id)
	}
	c.bus.Emit(EventAfterStop, c)
	return c
}

func (c *Core) autostart(id string) bool {
	if v, ok := c.modules[id].settings["autostart"].(bool); ok {
		return v
	}
	return true
}

func (c *Core) startOne(id string) {
	ent, ok := c.modules[id]
	if id == "" || !ok {
		c.warn(id, "start: unknown module id")
		return
	}
	if ent.instance == nil {
		return
	}
	s, ok := ent.instance.(Starter)
	if !ok {
		return
	}
	if err := invoke(s.Start); err != nil {
		c.fail(id, "start", err)
	}
}

func (c *Core) stopOne(id string) {
	ent, ok := c.modules[id]
	if id == "" || !ok {
		c.warn(id, "stop: unknown module id")
		return
	}
	if ent.instance == nil {
		return
	}
	if s, ok := ent.instance.(Stopper); ok {
		if err := invoke(s.Stop); err != nil {
			c.warn(id, fmt.Sprintf("stop hook failed, module still running: %v", err))
			return
		}
	}
	ent.instance = nil
	ent.sandbox = nil
}

func construct(fn Creator, sb *Sandbox, settings map[string]any) (inst any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("creator panicked: %v", r)
		}
	}()
	return fn(sb, settings)
}

func invoke(hook func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panicked: %v", r)
		}
	}()
	return hook()
}

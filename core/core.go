package core

import (
	"errors"
	"log/slog"

	"github.com/vk/modcore/merge"
)

// Bus is the contract the event-bus collaborator must satisfy. The facade
// creates exactly one instance per Core and copies its capabilities onto
// every sandbox, so all units share one communication channel.
type Bus interface {
	// Emit delivers args to every subscriber of the named channel.
	Emit(name string, args ...any)
	// On subscribes fn to a channel and returns its unsubscribe function.
	On(name string, fn func(args ...any)) func()
}

// Creator constructs a module instance from its sandbox and an isolated copy
// of its effective settings. The returned instance is opaque to the core;
// optional lifecycle hooks are discovered through Starter and Stopper.
type Creator func(sb *Sandbox, settings map[string]any) (any, error)

// ExtensionCreator constructs an extension. Extensions augment the system
// itself rather than performing end-user behavior; they are invoked eagerly
// at registration time and their instance is kept for the facade's lifetime.
type ExtensionCreator func(c *Core, settings map[string]any) (any, error)

// Starter is the optional start hook of a module instance. Instances without
// it are legitimate; starting them is a silent no-op.
type Starter interface {
	Start() error
}

// Stopper is the optional stop hook of a module instance.
type Stopper interface {
	Stop() error
}

// ErrNoBus is returned by New when the required event-bus collaborator is
// missing. No facade can be produced without one.
var ErrNoBus = errors.New("core: event bus factory is required")

// Config assembles a facade instance.
type Config struct {
	// Debug wires the internal-inspection accessors onto the facade (see
	// Inspect) and retains each module's sandbox for diagnostics.
	Debug bool

	// SilenceFaultLog turns off the mirroring of caught faults and warnings
	// to the logger. The bus remains the primary report channel either way.
	SilenceFaultLog bool

	// CascadeChannels is handed to the bus factory as its channel-visibility
	// option.
	CascadeChannels bool

	// Logger receives mirrored fault reports. Nil selects slog.Default().
	Logger *slog.Logger

	// Defaults is merged under every module's own settings when the
	// effective per-module configuration is computed.
	Defaults map[string]any

	// Modules maps module ids to their settings, including the optional
	// "autostart": false opt-out honored by bulk Start.
	Modules map[string]map[string]any

	// Extensions maps extension ids to their settings.
	Extensions map[string]map[string]any

	// NewBus constructs the shared event bus. Required.
	NewBus func(cascade bool) Bus
}

type moduleEntry struct {
	creator  Creator
	instance any
	sandbox  *Sandbox // retained only on debug facades
	settings map[string]any
}

// Core is the facade returned to the host application. Pools are owned
// exclusively by the facade and are reachable from outside only through a
// debug-configured Inspector. All methods are meant for single-threaded use;
// registration and lifecycle run to completion synchronously.
type Core struct {
	bus       Bus
	logger    *slog.Logger
	debug     bool
	logFaults bool

	modules  map[string]*moduleEntry
	order    []string
	defaults map[string]any
	modCfg   map[string]map[string]any

	extensions map[string]any
	extOrder   []string
	extCfg     map[string]map[string]any

	kinds       map[Kind]RegisterFunc
	initialized bool
	inspector   *Inspector
}

// New produces a facade from cfg. The only fatal condition is a missing bus
// collaborator; every later failure is reported through bus events instead.
func New(cfg Config) (*Core, error) {
	if cfg.NewBus == nil {
		return nil, ErrNoBus
	}
	bus := cfg.NewBus(cfg.CascadeChannels)
	if bus == nil {
		return nil, ErrNoBus
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Core{
		bus:        bus,
		logger:     logger,
		debug:      cfg.Debug,
		logFaults:  !cfg.SilenceFaultLog,
		modules:    make(map[string]*moduleEntry),
		defaults:   merge.Clone(cfg.Defaults),
		modCfg:     cfg.Modules,
		extensions: make(map[string]any),
		extCfg:     cfg.Extensions,
	}
	c.kinds = map[Kind]RegisterFunc{
		KindModule:    registerModule,
		KindExtension: registerExtension,
	}
	if cfg.Debug {
		c.inspector = &Inspector{core: c}
	}
	return c, nil
}

// Bus returns the shared event bus. The facade and every sandbox publish and
// subscribe on this one instance.
func (c *Core) Bus() Bus {
	return c.bus
}

func (c *Core) fail(site, op string, err error) {
	if c.logFaults {
		c.logger.Error("unit fault reported", "site", site, "op", op, "error", err)
	}
	c.bus.Emit(EventError, Fault{Site: site, Op: op, Err: err})
}

func (c *Core) warn(site, msg string) {
	if c.logFaults {
		c.logger.Warn(msg, "site", site)
	}
	c.bus.Emit(EventWarning, Notice{Site: site, Message: msg})
}

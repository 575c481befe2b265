// Package mediator provides the reference publish/subscribe bus wired into
// the core facade by the host. Delivery is synchronous and in subscription
// order; the facade and every module sandbox share a single instance, so one
// emit reaches every interested unit.
package mediator

import (
	"strings"
	"sync"
)

// Config carries the per-instance bus options.
type Config struct {
	// CascadeChannels makes an emit on "a/b" also reach subscribers of the
	// parent channel "a" (and so on up the "/" hierarchy).
	CascadeChannels bool
}

type subscriber struct {
	id int
	fn func(args ...any)
}

// Mediator is a minimal in-process event bus.
type Mediator struct {
	mu       sync.Mutex
	cascade  bool
	nextID   int
	channels map[string][]subscriber
}

// New creates an isolated bus instance.
func New(cfg Config) *Mediator {
	return &Mediator{
		cascade:  cfg.CascadeChannels,
		channels: make(map[string][]subscriber),
	}
}

// On subscribes fn to a channel. The returned function removes exactly this
// subscription; calling it more than once is harmless.
func (m *Mediator) On(name string, fn func(args ...any)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.channels[name] = append(m.channels[name], subscriber{id: id, fn: fn})
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subs := m.channels[name]
		for i, s := range subs {
			if s.id == id {
				m.channels[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Off drops every subscriber of a channel.
func (m *Mediator) Off(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.channels, name)
}

// Emit delivers args to every subscriber of the channel, synchronously and
// in subscription order. With cascading enabled, parent channels are
// notified after the channel itself.
func (m *Mediator) Emit(name string, args ...any) {
	for _, ch := range m.fanout(name) {
		m.mu.Lock()
		subs := make([]subscriber, len(m.channels[ch]))
		copy(subs, m.channels[ch])
		m.mu.Unlock()
		for _, s := range subs {
			s.fn(args...)
		}
	}
}

func (m *Mediator) fanout(name string) []string {
	out := []string{name}
	if !m.cascade {
		return out
	}
	for {
		idx := strings.LastIndex(name, "/")
		if idx < 0 {
			return out
		}
		name = name[:idx]
		out = append(out, name)
	}
}

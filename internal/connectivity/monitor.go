package connectivity

import (
	"sync"

	"go.uber.org/zap"

	"github.com/faizlzm/cashier-offline/pkg/logger"
)

// Monitor is the single source of truth for "can we reach the network" from
// the client's point of view. The embedding UI pushes the environment's
// connectivity signal through SetOnline; this is a local interface signal,
// not a round-trip probe, so captive portals can fool it. Accepted.
type Monitor struct {
	mu        sync.Mutex
	online    bool
	listeners []func(online bool)
	trigger   func()
	logger    logger.ZapLogger
}

// NewMonitor starts in the given state. The sync trigger is attached later
// by the facade, after the engine exists.
func NewMonitor(initiallyOnline bool, log logger.ZapLogger) *Monitor {
	return &Monitor{online: initiallyOnline, logger: log}
}

// SetTrigger installs the drain trigger fired on each offline-to-online
// transition. This is the sole automatic sync trigger.
func (m *Monitor) SetTrigger(trigger func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trigger = trigger
}

// IsOnline returns the current state.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// OnChange registers a listener fired exactly once per actual transition.
func (m *Monitor) OnChange(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// SetOnline records the environment signal. Repeated identical signals are
// no-ops; a real transition notifies listeners once, and coming back online
// kicks off exactly one background drain.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	trigger := m.trigger
	m.mu.Unlock()

	m.logger.Info("connectivity changed", zap.Bool("online", online))

	for _, fn := range listeners {
		fn(online)
	}
	if online && trigger != nil {
		go trigger()
	}
}

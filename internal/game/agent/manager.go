package agent

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/event"
	"github.com/cory-johannsen/arena/internal/game/geo"
	"github.com/cory-johannsen/arena/internal/game/nav"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

// SpawnDeps carries the collaborators every spawned agent is wired to.
type SpawnDeps struct {
	// Bounds is the walkable region for the agent's navigator.
	Bounds nav.Rect
	// Events receives the agent's outbound notifications; may be nil.
	Events *event.Queue
	// Rng drives wander-goal sampling.
	Rng rng.Source
	// Resolver resolves the agent's attacks.
	Resolver *combat.Resolver
}

// Manager tracks all live agent controllers in spawn order.
// All methods are safe for concurrent use; in practice only the driver
// goroutine mutates it.
type Manager struct {
	mu     sync.RWMutex
	byID   map[string]*Controller
	order  []string
	logger *zap.Logger
}

// NewManager creates an empty Manager.
//
// Precondition: logger may be nil.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		byID:   make(map[string]*Controller),
		logger: logger,
	}
}

// Spawn creates a live agent from tmpl at home and registers its
// controller.
//
// Precondition: tmpl must be validated; deps.Rng and deps.Resolver must
// not be nil.
// Postcondition: Returns a controller whose instance has full health and
// a unique ID derived from the template ID.
func (m *Manager) Spawn(tmpl *Template, home geo.Vec2, deps SpawnDeps) (*Controller, error) {
	if tmpl == nil {
		return nil, fmt.Errorf("agent.Manager.Spawn: tmpl must not be nil")
	}
	if deps.Rng == nil || deps.Resolver == nil {
		return nil, fmt.Errorf("agent.Manager.Spawn: rng and resolver are required")
	}

	id := fmt.Sprintf("%s-%s", tmpl.ID, uuid.NewString()[:8])
	navigator := nav.NewPlaneNavigator(deps.Bounds, home, tmpl.MoveSpeed, deps.Rng)
	inst := newInstance(id, tmpl, home, navigator, deps.Events)
	ctrl := NewController(inst, deps.Resolver, m.logger)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id] = ctrl
	m.order = append(m.order, id)

	m.logger.Debug("agent spawned",
		zap.String("agent", id),
		zap.String("template", tmpl.ID),
		zap.Float64("x", home.X),
		zap.Float64("y", home.Y),
	)
	return ctrl, nil
}

// Get returns the controller for id.
func (m *Manager) Get(id string) (*Controller, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctrl, ok := m.byID[id]
	return ctrl, ok
}

// Remove deletes the agent with the given id.
//
// Postcondition: Returns an error iff id is unknown.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("agent.Manager.Remove: unknown agent %q", id)
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Controllers returns all live controllers in spawn order. The returned
// slice is a snapshot; removing agents does not invalidate it.
func (m *Manager) Controllers() []*Controller {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Controller, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Count returns the number of live agents.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

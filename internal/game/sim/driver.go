package sim

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/agent"
	"github.com/cory-johannsen/arena/internal/game/event"
	"github.com/cory-johannsen/arena/internal/game/player"
)

// defaultFixedStep is the movement integration step used when the
// configured value is missing.
const defaultFixedStep = 20 * time.Millisecond

// EventSink receives each tick's drained event batch. Presentation
// layers hang off this; the core never waits on them.
type EventSink func([]event.Event)

// Config holds the driver's timing knobs.
type Config struct {
	// FixedStep is the movement integration step.
	FixedStep time.Duration
	// DeathGracePeriod is how long a dead agent lingers before removal.
	DeathGracePeriod time.Duration
}

// Driver steps the whole simulation on a single goroutine. Within one
// Step every actor's decision logic (agent Think, player input) runs
// before any action advancement, so a decision made this tick and its
// resolution can never race.
type Driver struct {
	cfg      Config
	player   *player.Controller
	agents   *agent.Manager
	registry *Registry
	reaper   *agent.Reaper
	events   *event.Queue
	sink     EventSink
	logger   *zap.Logger

	accumulator time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewDriver wires the simulation together.
//
// Precondition: pc, agents, registry, and events must not be nil; sink
// and logger may be nil.
func NewDriver(cfg Config, pc *player.Controller, agents *agent.Manager, registry *Registry, events *event.Queue, sink EventSink, logger *zap.Logger) *Driver {
	if cfg.FixedStep <= 0 {
		cfg.FixedStep = defaultFixedStep
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		cfg:      cfg,
		player:   pc,
		agents:   agents,
		registry: registry,
		reaper:   agent.NewReaper(cfg.DeathGracePeriod),
		events:   events,
		sink:     sink,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Step advances the simulation by one frame of frameDt at wall time now.
//
// Ordering within a step: decisions (input, agent Think), fixed-rate
// movement, action advancement, reaping, event hand-off.
func (d *Driver) Step(now time.Time, frameDt time.Duration) {
	ctrls := d.agents.Controllers()

	// Decisions first. A transition made here is visible to this tick's
	// action advancement, never the other way around.
	d.player.HandleInput()
	for _, ctrl := range ctrls {
		ctrl.Think(frameDt, d.player)
	}

	// Fixed-rate movement integration.
	d.accumulator += frameDt
	for d.accumulator >= d.cfg.FixedStep {
		step := d.cfg.FixedStep
		d.player.Move(step)
		for _, ctrl := range ctrls {
			ctrl.Instance().Navigator().Advance(step.Seconds())
		}
		d.accumulator -= step
	}

	// Timed actions.
	d.player.Advance(frameDt)
	for _, ctrl := range ctrls {
		ctrl.Instance().AdvanceAction(frameDt)
	}

	// Dead agents linger for the grace period, then leave the manager
	// and the spatial registry in the same step.
	for _, ctrl := range ctrls {
		inst := ctrl.Instance()
		if !inst.Alive() && !d.reaper.Pending(inst.ID()) {
			d.reaper.Schedule(inst.ID(), now)
		}
	}
	for _, id := range d.reaper.Due(now) {
		if err := d.agents.Remove(id); err != nil {
			d.logger.Warn("reaping unknown agent", zap.String("agent", id), zap.Error(err))
		}
		d.registry.Remove(id)
		d.logger.Debug("agent removed", zap.String("agent", id))
	}

	if batch := d.events.Drain(); len(batch) > 0 && d.sink != nil {
		d.sink(batch)
	}
}

// Reaper exposes the driver's removal scheduler, mainly for tests.
func (d *Driver) Reaper() *agent.Reaper { return d.reaper }

// Start runs the tick loop at the fixed-step cadence until Stop.
// It blocks, satisfying the server.Service contract.
func (d *Driver) Start() error {
	ticker := time.NewTicker(d.cfg.FixedStep)
	defer ticker.Stop()

	d.logger.Info("simulation started",
		zap.Duration("fixed_step", d.cfg.FixedStep),
		zap.Duration("death_grace_period", d.cfg.DeathGracePeriod),
	)

	last := time.Now()
	for {
		select {
		case <-d.stop:
			d.logger.Info("simulation stopped")
			return nil
		case now := <-ticker.C:
			d.Step(now, now.Sub(last))
			last = now
		}
	}
}

// Stop terminates the tick loop. Safe to call more than once.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

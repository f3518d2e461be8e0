// Package main provides the headless arena simulation server. It wires
// together configuration, agent templates, the combat core, and the tick
// driver.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/agent"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/event"
	"github.com/cory-johannsen/arena/internal/game/geo"
	"github.com/cory-johannsen/arena/internal/game/input"
	"github.com/cory-johannsen/arena/internal/game/nav"
	"github.com/cory-johannsen/arena/internal/game/player"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/sim"
	"github.com/cory-johannsen/arena/internal/observability"
	"github.com/cory-johannsen/arena/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/sim.yaml", "path to configuration file")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed for agent placement and wandering")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting arena simulation server",
		zap.Duration("fixed_step", cfg.Simulation.FixedStep),
		zap.Uint64("seed", *seed),
	)

	// Load agent archetypes
	templates, err := agent.LoadTemplates(cfg.Agents.TemplateDir)
	if err != nil {
		logger.Fatal("loading agent templates", zap.Error(err))
	}
	logger.Info("agent templates loaded",
		zap.String("dir", cfg.Agents.TemplateDir),
		zap.Int("templates", len(templates)),
	)

	// Build the world
	bounds := nav.Rect{
		Min: geo.Vec2{X: -cfg.Arena.Width / 2, Y: -cfg.Arena.Height / 2},
		Max: geo.Vec2{X: cfg.Arena.Width / 2, Y: cfg.Arena.Height / 2},
	}
	registry := sim.NewRegistry()
	events := event.NewQueue(cfg.Simulation.EventQueueSize)
	resolver := combat.NewResolver(registry, events, logger)
	src := rng.New(*seed)

	// Headless server: the player holds still until a presentation layer
	// supplies a real input device.
	pc := player.NewController(playerSpec(cfg.Player), bounds, geo.Vec2{}, input.NewScript(), resolver, events, logger)
	registry.Add(pc)

	manager := agent.NewManager(logger)
	deps := agent.SpawnDeps{Bounds: bounds, Events: events, Rng: src, Resolver: resolver}
	spawned := 0
	for _, tmpl := range templates {
		for i := 0; i < cfg.Agents.SpawnCount; i++ {
			home := geo.Vec2{
				X: bounds.Min.X + src.Float64()*cfg.Arena.Width,
				Y: bounds.Min.Y + src.Float64()*cfg.Arena.Height,
			}
			ctrl, err := manager.Spawn(tmpl, home, deps)
			if err != nil {
				logger.Fatal("spawning agent", zap.String("template", tmpl.ID), zap.Error(err))
			}
			registry.Add(ctrl.Instance())
			spawned++
		}
	}
	logger.Info("world populated",
		zap.Int("agents", spawned),
		zap.Float64("arena_width", cfg.Arena.Width),
		zap.Float64("arena_height", cfg.Arena.Height),
	)

	driver := sim.NewDriver(sim.Config{
		FixedStep:        cfg.Simulation.FixedStep,
		DeathGracePeriod: cfg.Simulation.DeathGracePeriod,
	}, pc, manager, registry, events, logEvents(logger), logger)

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("simulation", driver)

	logger.Info("server initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// playerSpec maps configuration onto the player's balance sheet.
func playerSpec(p config.PlayerConfig) player.Spec {
	return player.Spec{
		MaxHP:             p.MaxHP,
		MaxEnergy:         p.MaxEnergy,
		MoveSpeed:         p.MoveSpeed,
		SpecialEnergyCost: p.SpecialEnergyCost,
		Attack: combat.AttackSpec{
			Damage:          p.AttackDamage,
			Range:           p.AttackRange,
			ArcHalfAngleDeg: p.AttackArcDegrees,
			RecoveryDelay:   p.AttackCooldown,
		},
		SpecialRadiusMult:   p.SpecialRadiusMult,
		SpecialDamageMult:   p.SpecialDamageMult,
		SpecialCooldownMult: p.SpecialCooldownMult,
	}
}

// logEvents is the default sink: every drained event becomes a debug log
// line until a presentation layer takes over.
func logEvents(logger *zap.Logger) sim.EventSink {
	return func(batch []event.Event) {
		for _, e := range batch {
			logger.Debug("event",
				zap.String("kind", string(e.Kind)),
				zap.String("actor", e.Actor),
				zap.Strings("targets", e.Targets),
				zap.Int("current", e.Current),
				zap.Int("max", e.Max),
				zap.Bool("special", e.Special),
			)
		}
	}
}

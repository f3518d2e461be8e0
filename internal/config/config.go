// Package config provides Viper-based configuration loading for the
// arena simulation server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SimulationConfig holds the tick driver's timing settings.
type SimulationConfig struct {
	// FixedStep is the movement integration step.
	FixedStep time.Duration `mapstructure:"fixed_step"`
	// ThinkInterval caps the variable-rate decision cadence.
	ThinkInterval time.Duration `mapstructure:"think_interval"`
	// DeathGracePeriod is how long a dead agent lingers before removal.
	DeathGracePeriod time.Duration `mapstructure:"death_grace_period"`
	// EventQueueSize bounds the outbound notification buffer.
	EventQueueSize int `mapstructure:"event_queue_size"`
}

// ArenaConfig holds the walkable region.
type ArenaConfig struct {
	// Width and Height are the plane dimensions, centered on the origin.
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// PlayerConfig holds the player's balance settings.
type PlayerConfig struct {
	MaxHP     int     `mapstructure:"max_hp"`
	MaxEnergy int     `mapstructure:"max_energy"`
	MoveSpeed float64 `mapstructure:"move_speed"`
	// SpecialEnergyCost is the energy price of one special attack.
	SpecialEnergyCost int `mapstructure:"special_energy_cost"`
	// Basic attack balance. AttackCooldown is the post-swing recovery.
	AttackDamage     int           `mapstructure:"attack_damage"`
	AttackRange      float64       `mapstructure:"attack_range"`
	AttackArcDegrees float64       `mapstructure:"attack_arc_degrees"`
	AttackCooldown   time.Duration `mapstructure:"attack_cooldown"`
	// Special attack scaling over the basic attack.
	SpecialRadiusMult   float64 `mapstructure:"special_radius_mult"`
	SpecialDamageMult   float64 `mapstructure:"special_damage_mult"`
	SpecialCooldownMult float64 `mapstructure:"special_cooldown_mult"`
}

// AgentsConfig holds agent archetype loading settings.
type AgentsConfig struct {
	// TemplateDir is the directory of YAML agent archetypes.
	TemplateDir string `mapstructure:"template_dir"`
	// SpawnCount is how many agents to spawn per template at startup.
	SpawnCount int `mapstructure:"spawn_count"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Arena      ArenaConfig      `mapstructure:"arena"`
	Player     PlayerConfig     `mapstructure:"player"`
	Agents     AgentsConfig     `mapstructure:"agents"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePlayer(c.Player); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateAgents(c.Agents); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.FixedStep <= 0 {
		errs = append(errs, "simulation.fixed_step must be positive")
	}
	if s.ThinkInterval <= 0 {
		errs = append(errs, "simulation.think_interval must be positive")
	}
	if s.DeathGracePeriod < 0 {
		errs = append(errs, "simulation.death_grace_period must not be negative")
	}
	if s.EventQueueSize < 1 {
		errs = append(errs, fmt.Sprintf("simulation.event_queue_size must be >= 1, got %d", s.EventQueueSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("arena dimensions must be positive, got %gx%g", a.Width, a.Height)
	}
	return nil
}

func validatePlayer(p PlayerConfig) error {
	var errs []string
	if p.MaxHP < 1 {
		errs = append(errs, fmt.Sprintf("player.max_hp must be >= 1, got %d", p.MaxHP))
	}
	if p.MaxEnergy < 1 {
		errs = append(errs, fmt.Sprintf("player.max_energy must be >= 1, got %d", p.MaxEnergy))
	}
	if p.MoveSpeed <= 0 {
		errs = append(errs, "player.move_speed must be positive")
	}
	if p.SpecialEnergyCost < 0 {
		errs = append(errs, "player.special_energy_cost must not be negative")
	}
	if p.AttackDamage < 1 {
		errs = append(errs, fmt.Sprintf("player.attack_damage must be >= 1, got %d", p.AttackDamage))
	}
	if p.AttackRange <= 0 {
		errs = append(errs, "player.attack_range must be positive")
	}
	if p.AttackArcDegrees <= 0 || p.AttackArcDegrees > 180 {
		errs = append(errs, fmt.Sprintf("player.attack_arc_degrees must be in (0, 180], got %g", p.AttackArcDegrees))
	}
	if p.AttackCooldown < 0 {
		errs = append(errs, "player.attack_cooldown must not be negative")
	}
	if p.SpecialRadiusMult < 1 || p.SpecialDamageMult < 1 || p.SpecialCooldownMult < 1 {
		errs = append(errs, "player special multipliers must be >= 1")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateAgents(a AgentsConfig) error {
	var errs []string
	if a.TemplateDir == "" {
		errs = append(errs, "agents.template_dir must not be empty")
	}
	if a.SpawnCount < 0 {
		errs = append(errs, fmt.Sprintf("agents.spawn_count must be >= 0, got %d", a.SpawnCount))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ARENA_ prefix
	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.fixed_step", "20ms")
	v.SetDefault("simulation.think_interval", "50ms")
	v.SetDefault("simulation.death_grace_period", "3s")
	v.SetDefault("simulation.event_queue_size", 256)

	v.SetDefault("arena.width", 200.0)
	v.SetDefault("arena.height", 200.0)

	v.SetDefault("player.max_hp", 100)
	v.SetDefault("player.max_energy", 50)
	v.SetDefault("player.move_speed", 5.0)
	v.SetDefault("player.special_energy_cost", 10)
	v.SetDefault("player.attack_damage", 10)
	v.SetDefault("player.attack_range", 2.0)
	v.SetDefault("player.attack_arc_degrees", 60.0)
	v.SetDefault("player.attack_cooldown", "500ms")
	v.SetDefault("player.special_radius_mult", 1.5)
	v.SetDefault("player.special_damage_mult", 2.0)
	v.SetDefault("player.special_cooldown_mult", 1.5)

	v.SetDefault("agents.template_dir", "assets/agents")
	v.SetDefault("agents.spawn_count", 1)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Package agent implements the hostile-agent side of the arena core:
// YAML archetype templates, live instances implementing the combat
// protocol, the wander/chase/attack behavior state machine, and the
// post-death reaper.
package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arena/internal/game/combat"
)

// AttackDef is the YAML shape of an agent's attack.
type AttackDef struct {
	Damage int     `yaml:"damage"`
	Range  float64 `yaml:"range"`
	// ArcHalfAngleDeg is the half-angle of the frontal hit arc in degrees.
	ArcHalfAngleDeg float64 `yaml:"arc_half_angle"`
	// Startup and Recovery are duration strings (e.g. "600ms").
	Startup  string `yaml:"startup"`
	Recovery string `yaml:"recovery"`
}

// Template defines a reusable agent archetype loaded from YAML.
type Template struct {
	ID               string    `yaml:"id"`
	Name             string    `yaml:"name"`
	MaxHP            int       `yaml:"max_hp"`
	MoveSpeed        float64   `yaml:"move_speed"`
	PerceptionRadius float64   `yaml:"perception_radius"`
	AttackRadius     float64   `yaml:"attack_radius"`
	WanderRadius     float64   `yaml:"wander_radius"`
	Attack           AttackDef `yaml:"attack"`
	// WanderRepickInterval and AttackCooldown are duration strings.
	WanderRepickInterval string `yaml:"wander_repick_interval"`
	AttackCooldown       string `yaml:"attack_cooldown"`
	// TurnRateDeg is the maximum facing change in degrees per second
	// while attacking. Zero falls back to 360.
	TurnRateDeg float64 `yaml:"turn_rate_degrees"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff all fields are in range and every
// duration string parses; returns an error naming the first violation.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("agent template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("agent template %q: name must not be empty", t.ID)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("agent template %q: max_hp must be >= 1", t.ID)
	}
	if t.MoveSpeed <= 0 {
		return fmt.Errorf("agent template %q: move_speed must be > 0", t.ID)
	}
	if t.PerceptionRadius <= 0 {
		return fmt.Errorf("agent template %q: perception_radius must be > 0", t.ID)
	}
	if t.AttackRadius <= 0 || t.AttackRadius > t.PerceptionRadius {
		return fmt.Errorf("agent template %q: attack_radius must be in (0, perception_radius]", t.ID)
	}
	if t.WanderRadius <= 0 {
		return fmt.Errorf("agent template %q: wander_radius must be > 0", t.ID)
	}
	if t.Attack.Damage < 1 {
		return fmt.Errorf("agent template %q: attack.damage must be >= 1", t.ID)
	}
	if t.Attack.Range <= 0 {
		return fmt.Errorf("agent template %q: attack.range must be > 0", t.ID)
	}
	if t.Attack.ArcHalfAngleDeg <= 0 || t.Attack.ArcHalfAngleDeg > 180 {
		return fmt.Errorf("agent template %q: attack.arc_half_angle must be in (0, 180]", t.ID)
	}
	for field, s := range map[string]string{
		"attack.startup":         t.Attack.Startup,
		"attack.recovery":        t.Attack.Recovery,
		"wander_repick_interval": t.WanderRepickInterval,
		"attack_cooldown":        t.AttackCooldown,
	} {
		if s == "" {
			continue
		}
		if d, err := time.ParseDuration(s); err != nil {
			return fmt.Errorf("agent template %q: %s %q is not a valid duration: %w", t.ID, field, s, err)
		} else if d < 0 {
			return fmt.Errorf("agent template %q: %s must not be negative", t.ID, field)
		}
	}
	if t.WanderRepickInterval == "" {
		return fmt.Errorf("agent template %q: wander_repick_interval must be set", t.ID)
	}
	if t.TurnRateDeg < 0 {
		return fmt.Errorf("agent template %q: turn_rate_degrees must not be negative", t.ID)
	}
	return nil
}

// AttackSpec converts the template's attack definition into the combat
// protocol's spec. Duration strings are assumed valid (Validate ran).
func (t *Template) AttackSpec() combat.AttackSpec {
	startup, _ := time.ParseDuration(t.Attack.Startup)
	recovery, _ := time.ParseDuration(t.Attack.Recovery)
	return combat.AttackSpec{
		Damage:          t.Attack.Damage,
		Range:           t.Attack.Range,
		ArcHalfAngleDeg: t.Attack.ArcHalfAngleDeg,
		StartupDelay:    startup,
		RecoveryDelay:   recovery,
	}
}

// RepickInterval returns the parsed wander goal repick interval.
func (t *Template) RepickInterval() time.Duration {
	d, _ := time.ParseDuration(t.WanderRepickInterval)
	return d
}

// Cooldown returns the parsed attack cooldown (zero when unset).
func (t *Template) Cooldown() time.Duration {
	if t.AttackCooldown == "" {
		return 0
	}
	d, _ := time.ParseDuration(t.AttackCooldown)
	return d
}

// TurnRate returns the facing turn rate in degrees per second, with the
// 360 fallback applied.
func (t *Template) TurnRate() float64 {
	if t.TurnRateDeg == 0 {
		return 360
	}
	return t.TurnRateDeg
}

// LoadTemplateFromBytes parses a single agent template from raw YAML.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed
// templates keyed by ID.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse,
// validate, or duplicate-ID failure; on error the partial result is
// discarded.
func LoadTemplates(dir string) (map[string]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading agent template dir %q: %w", dir, err)
	}

	templates := make(map[string]*Template)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, dup := templates[tmpl.ID]; dup {
			return nil, fmt.Errorf("loading %q: duplicate template id %q", path, tmpl.ID)
		}
		templates[tmpl.ID] = tmpl
	}
	return templates, nil
}

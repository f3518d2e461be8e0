package agent_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cory-johannsen/arena/internal/game/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gruntYAML = `
id: grunt
name: Grunt
max_hp: 40
move_speed: 3.5
perception_radius: 10
attack_radius: 2
wander_radius: 5
wander_repick_interval: 4s
attack_cooldown: 1.5s
turn_rate_degrees: 270
attack:
  damage: 8
  range: 2.2
  arc_half_angle: 60
  startup: 600ms
  recovery: 400ms
`

func TestLoadTemplateFromBytes(t *testing.T) {
	tmpl, err := agent.LoadTemplateFromBytes([]byte(gruntYAML))
	require.NoError(t, err)

	assert.Equal(t, "grunt", tmpl.ID)
	assert.Equal(t, 40, tmpl.MaxHP)
	assert.Equal(t, 10.0, tmpl.PerceptionRadius)
	assert.Equal(t, 2.0, tmpl.AttackRadius)

	spec := tmpl.AttackSpec()
	assert.Equal(t, 8, spec.Damage)
	assert.Equal(t, 2.2, spec.Range)
	assert.Equal(t, 60.0, spec.ArcHalfAngleDeg)
	assert.Equal(t, 600*time.Millisecond, spec.StartupDelay)
	assert.Equal(t, 400*time.Millisecond, spec.RecoveryDelay)

	assert.Equal(t, 4*time.Second, tmpl.RepickInterval())
	assert.Equal(t, 1500*time.Millisecond, tmpl.Cooldown())
	assert.Equal(t, 270.0, tmpl.TurnRate())
}

func TestTemplate_TurnRateFallback(t *testing.T) {
	tmpl, err := agent.LoadTemplateFromBytes([]byte(`
id: slow
name: Slow
max_hp: 10
move_speed: 1
perception_radius: 5
attack_radius: 1
wander_radius: 2
wander_repick_interval: 2s
attack:
  damage: 1
  range: 1
  arc_half_angle: 45
`))
	require.NoError(t, err)
	assert.Equal(t, 360.0, tmpl.TurnRate())
	assert.Equal(t, time.Duration(0), tmpl.Cooldown())
}

func TestTemplate_Validate_Rejections(t *testing.T) {
	valid := func() *agent.Template {
		tmpl, err := agent.LoadTemplateFromBytes([]byte(gruntYAML))
		require.NoError(t, err)
		return tmpl
	}

	tests := []struct {
		name   string
		mutate func(*agent.Template)
	}{
		{"empty id", func(m *agent.Template) { m.ID = "" }},
		{"empty name", func(m *agent.Template) { m.Name = "" }},
		{"zero hp", func(m *agent.Template) { m.MaxHP = 0 }},
		{"zero speed", func(m *agent.Template) { m.MoveSpeed = 0 }},
		{"zero perception", func(m *agent.Template) { m.PerceptionRadius = 0 }},
		{"attack radius above perception", func(m *agent.Template) { m.AttackRadius = 11 }},
		{"zero wander radius", func(m *agent.Template) { m.WanderRadius = 0 }},
		{"zero damage", func(m *agent.Template) { m.Attack.Damage = 0 }},
		{"zero attack range", func(m *agent.Template) { m.Attack.Range = 0 }},
		{"arc above 180", func(m *agent.Template) { m.Attack.ArcHalfAngleDeg = 181 }},
		{"bad startup duration", func(m *agent.Template) { m.Attack.Startup = "soon" }},
		{"negative cooldown", func(m *agent.Template) { m.AttackCooldown = "-1s" }},
		{"missing repick interval", func(m *agent.Template) { m.WanderRepickInterval = "" }},
		{"negative turn rate", func(m *agent.Template) { m.TurnRateDeg = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpl := valid()
			tc.mutate(tmpl)
			assert.Error(t, tmpl.Validate())
		})
	}
}

func TestLoadTemplates_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grunt.yaml"), []byte(gruntYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	templates, err := agent.LoadTemplates(dir)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Contains(t, templates, "grunt")
}

func TestLoadTemplates_DuplicateIDRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(gruntYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(gruntYAML), 0o644))

	_, err := agent.LoadTemplates(dir)
	assert.ErrorContains(t, err, "duplicate template id")
}

func TestLoadTemplates_MissingDir(t *testing.T) {
	_, err := agent.LoadTemplates(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadTemplateFromBytes_BadYAML(t *testing.T) {
	_, err := agent.LoadTemplateFromBytes([]byte("{not yaml"))
	assert.Error(t, err)
}

// Package entity composes the movement, combat, and stat components into
// the concrete simulation actors: the player and NPCs.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/emberwood/internal/combat"
	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/movement"
	"github.com/samdwyer/emberwood/internal/stats"
)

// PlayerConfig holds the construction-time tuning for the player.
type PlayerConfig struct {
	Strength           float64
	Vitality           float64
	DamageBase         float64
	StrengthMultiplier float64
	HealthBase         float64
	VitalityMultiplier float64
	AttackCooldown     time.Duration
	AttackRange        float64
	MoveSpeed          float64
}

// DefaultPlayerConfig returns the baseline player tuning.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Strength:           5,
		Vitality:           5,
		DamageBase:         3,
		StrengthMultiplier: 1,
		HealthBase:         20,
		VitalityMultiplier: 6,
		AttackCooldown:     600 * time.Millisecond,
		AttackRange:        48,
		MoveSpeed:          4,
	}
}

// Player is the singleton player actor. NPC controllers receive it as a
// transient parameter each tick; nothing retains an owning reference.
type Player struct {
	ID       string
	Movement *movement.Component
	Combat   *combat.Component
}

// NewPlayer creates the player at the given tile.
func NewPlayer(tileX, tileY int, cfg PlayerConfig, sink events.Sink, now time.Time) *Player {
	p := &Player{
		ID:       uuid.NewString(),
		Movement: movement.NewComponent(tileX, tileY, cfg.MoveSpeed, false),
	}
	block := stats.New(map[stats.Attribute]float64{
		stats.Strength: cfg.Strength,
		stats.Vitality: cfg.Vitality,
	}, stats.Coefficients{
		DamageBase:         cfg.DamageBase,
		StrengthMultiplier: cfg.StrengthMultiplier,
		HealthBase:         cfg.HealthBase,
		VitalityMultiplier: cfg.VitalityMultiplier,
	})
	p.Combat = combat.NewComponent(block, combat.Config{
		ActorID:        p.ID,
		AttackCooldown: cfg.AttackCooldown,
		AttackRange:    cfg.AttackRange,
		Center:         p.Movement.Center,
		Orient:         func(d movement.Direction) { p.Movement.Facing = d },
		Sink:           sink,
	}, now)
	return p
}

// Update advances the player's timers and in-progress movement. Input-driven
// decisions (Move, Attack) arrive separately from the controller layer.
func (p *Player) Update(now time.Time) {
	p.Combat.Update(now)
	p.Movement.Advance()
}

// Move attempts a one-tile step in the given direction. Facing updates even
// when the step is blocked.
func (p *Player) Move(dx, dy int, grid movement.Grid, others []movement.Occupant) bool {
	tileX, tileY := p.Movement.Tile()
	return p.Movement.AttemptMove(tileX+dx, tileY+dy, dx, dy, grid, others)
}

// Attack swings at the target. Zero damage or range fall back to the
// stat-derived damage and configured range.
func (p *Player) Attack(now time.Time, target combat.Target, damage, rng float64) bool {
	return p.Combat.Attack(now, target, damage, rng)
}

// Center implements combat.Target and movement.Locator.
func (p *Player) Center() (float64, float64) {
	return p.Movement.Center()
}

// TakeDamage implements combat.Target.
func (p *Player) TakeDamage(amount float64) bool {
	return p.Combat.TakeDamage(amount)
}

// MarkDamaged forwards the renderer hit flag to the combat component.
func (p *Player) MarkDamaged(now time.Time) {
	p.Combat.MarkDamaged(now)
}

var _ combat.Target = (*Player)(nil)

// Package combat provides the per-entity combat component: health, attack
// cooldown, and the damage/defeat lifecycle. Failure outcomes (cooldown not
// elapsed, target out of range) are normal per-tick results expressed as
// boolean returns, never errors.
package combat

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/logger"
	"github.com/samdwyer/emberwood/internal/movement"
	"github.com/samdwyer/emberwood/internal/stats"
)

// damagedFlash is how long the "just hit" visual flag stays set after a hit.
// Presentation state only; the simulation never reads it back.
const damagedFlash = 300 * time.Millisecond

// Target is anything an attack can land on.
type Target interface {
	movement.Locator
	// TakeDamage applies damage and reports whether it caused defeat.
	TakeDamage(amount float64) bool
}

// Config wires a component to its owning entity.
type Config struct {
	// ActorID identifies the owner in emitted events and logs.
	ActorID string
	// AttackCooldown is the minimum interval between delivered attacks.
	AttackCooldown time.Duration
	// AttackRange is the default maximum center-to-center attack distance.
	AttackRange float64
	// Center yields the owner's pixel center for range checks.
	Center func() (float64, float64)
	// Orient turns the owner to face a direction when an attack lands.
	Orient func(movement.Direction)
	// OnDefeat is invoked exactly once when health reaches zero.
	OnDefeat func()
	// Sink receives hit/heal/defeat presentation events. Nil means no events.
	Sink events.Sink
}

// Component owns the combat state for a single entity. Exclusively owned;
// never shared between entities.
type Component struct {
	stats *stats.Block
	cfg   Config

	health       float64
	maxHealth    float64
	defeated     bool
	nextAttackAt time.Time
	damagedUntil time.Time
}

// NewComponent creates a component at full health for the given time.
func NewComponent(block *stats.Block, cfg Config, now time.Time) *Component {
	if cfg.Sink == nil {
		cfg.Sink = events.NopSink{}
	}
	max := block.MaxHealth(now)
	return &Component{
		stats:     block,
		cfg:       cfg,
		health:    max,
		maxHealth: max,
	}
}

// Update sweeps expired buffs and re-derives maximum health. A vitality buff
// expiring shrinks the maximum without clamping current health down; the
// overshoot persists until the next Heal or TakeDamage re-clamps naturally.
func (c *Component) Update(now time.Time) {
	for _, buff := range c.stats.Update(now) {
		c.cfg.Sink.Publish(events.Event{
			Type:  events.TypeBuffExpired,
			Actor: c.cfg.ActorID,
			Text:  buff.Name,
			At:    now,
		})
	}
	c.maxHealth = c.stats.MaxHealth(now)
}

// Health returns current health.
func (c *Component) Health() float64 { return c.health }

// MaxHealth returns the maximum health derived on the last Update.
func (c *Component) MaxHealth() float64 { return c.maxHealth }

// Defeated reports whether the entity has reached the terminal combat state.
func (c *Component) Defeated() bool { return c.defeated }

// Stats returns the owned stat block.
func (c *Component) Stats() *stats.Block { return c.stats }

// Damaged reports whether the "just hit" visual flag is still set.
func (c *Component) Damaged(now time.Time) bool {
	return now.Before(c.damagedUntil)
}

// MarkDamaged schedules the transient "just hit" visual flag. Consumed by
// renderers only; the simulation never reads it back.
func (c *Component) MarkDamaged(now time.Time) {
	c.damagedUntil = now.Add(damagedFlash)
}

// TakeDamage reduces health by amount, flooring at zero. Negative amounts
// are clamped to zero rather than rejected. The first call that brings
// health to zero transitions to Defeated, fires the defeat hook, and returns
// true; the state is sticky and the hook never re-fires.
func (c *Component) TakeDamage(amount float64) bool {
	if amount < 0 {
		amount = 0
	}
	if c.defeated {
		return false
	}
	c.health -= amount
	if c.health < 0 {
		c.health = 0
	}
	if c.health > 0 {
		return false
	}
	c.defeated = true
	if c.cfg.OnDefeat != nil {
		c.cfg.OnDefeat()
	}
	return true
}

// Heal restores health up to the current maximum and reports the amount
// actually recovered. Healing a Defeated entity is a no-op; defeat is
// terminal.
func (c *Component) Heal(amount float64) float64 {
	if amount <= 0 || c.defeated {
		return 0
	}
	before := c.health
	c.health += amount
	if c.health > c.maxHealth {
		c.health = c.maxHealth
	}
	healed := c.health - before
	if healed <= 0 {
		return 0
	}
	c.cfg.Sink.Publish(events.Event{
		Type:   events.TypeHeal,
		Actor:  c.cfg.ActorID,
		Amount: healed,
	})
	return healed
}

// Attack tries to hit the target. Before the cooldown has elapsed it fails
// silently with no side effects. In range, the owner is turned to face the
// target on the dominant axis, damage is delivered, and the cooldown
// restarts. A damage or rng value <= 0 falls back to the stat-derived damage
// and the configured range. Returns true iff an attack was delivered.
func (c *Component) Attack(now time.Time, target Target, damage, rng float64) bool {
	if c.defeated || target == nil {
		return false
	}
	if now.Before(c.nextAttackAt) {
		return false
	}
	if damage <= 0 {
		damage = c.stats.Damage(now)
	}
	if rng <= 0 {
		rng = c.cfg.AttackRange
	}

	cx, cy := c.cfg.Center()
	tx, ty := target.Center()
	dx := tx - cx
	dy := ty - cy
	if dx*dx+dy*dy > rng*rng {
		return false
	}

	if c.cfg.Orient != nil {
		c.cfg.Orient(movement.DirectionTowards(dx, dy))
	}
	defeated := target.TakeDamage(damage)
	if marker, ok := target.(interface{ MarkDamaged(time.Time) }); ok {
		marker.MarkDamaged(now)
	}
	c.nextAttackAt = now.Add(c.cfg.AttackCooldown)

	logger.Log.WithFields(logrus.Fields{
		"component": "combat",
		"actor":     c.cfg.ActorID,
		"damage":    damage,
		"defeated":  defeated,
	}).Debug("attack delivered")

	c.cfg.Sink.Publish(events.Event{
		Type:   events.TypeHit,
		Actor:  c.cfg.ActorID,
		Amount: damage,
		At:     now,
	})
	return true
}

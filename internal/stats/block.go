// Package stats provides per-entity attribute blocks with time-limited
// buffs and the derived combat math built on top of them.
package stats

import (
	"time"

	"github.com/google/uuid"
)

// Attribute names a primary stat. Unknown attributes read as zero.
type Attribute string

const (
	// Strength scales outgoing attack damage.
	Strength Attribute = "strength"
	// Vitality scales maximum health.
	Vitality Attribute = "vitality"
)

// Buff is a time-limited additive modifier to one or more attributes.
type Buff struct {
	ID        string
	Name      string
	Effects   map[Attribute]float64
	AppliedAt time.Time
	ExpiresAt time.Time
	Debuff    bool
}

// Active reports whether the buff still contributes at the given time.
func (b Buff) Active(now time.Time) bool {
	return now.Before(b.ExpiresAt)
}

// Coefficients hold the derive formula constants for a stat block.
type Coefficients struct {
	DamageBase         float64
	StrengthMultiplier float64
	HealthBase         float64
	VitalityMultiplier float64
}

// Block owns the stat state for a single entity. It is never shared
// between entities.
type Block struct {
	base     map[Attribute]float64
	modifier map[Attribute]float64
	buffs    []Buff
	coeff    Coefficients
}

// New creates a block seeded with the given base attribute values.
func New(base map[Attribute]float64, coeff Coefficients) *Block {
	b := &Block{
		base:     make(map[Attribute]float64, len(base)),
		modifier: make(map[Attribute]float64),
		coeff:    coeff,
	}
	for name, value := range base {
		b.base[name] = value
	}
	return b
}

// Get returns base + permanent modifier + the sum of active buff deltas
// for the attribute. Unknown attributes yield 0; Get never fails.
func (b *Block) Get(name Attribute, now time.Time) float64 {
	total := b.base[name] + b.modifier[name]
	for _, buff := range b.buffs {
		if !buff.Active(now) {
			continue
		}
		total += buff.Effects[name]
	}
	return total
}

// Base returns the raw base value of an attribute, without modifiers or buffs.
func (b *Block) Base(name Attribute) float64 {
	return b.base[name]
}

// SetBase replaces the base value of an attribute.
func (b *Block) SetBase(name Attribute, value float64) {
	b.base[name] = value
}

// AddModifier adjusts the permanent modifier of an attribute by delta.
func (b *Block) AddModifier(name Attribute, delta float64) {
	b.modifier[name] += delta
}

// ApplyBuff appends a buff lasting the given duration and returns its ID.
// Buffs affecting the same attribute stack additively.
func (b *Block) ApplyBuff(effects map[Attribute]float64, duration time.Duration, name string, debuff bool, now time.Time) string {
	buff := Buff{
		ID:        uuid.NewString(),
		Name:      name,
		Effects:   make(map[Attribute]float64, len(effects)),
		AppliedAt: now,
		ExpiresAt: now.Add(duration),
		Debuff:    debuff,
	}
	for attr, delta := range effects {
		buff.Effects[attr] = delta
	}
	b.buffs = append(b.buffs, buff)
	return buff.ID
}

// RemoveBuff removes the buff with the given ID, reporting whether it was found.
func (b *Block) RemoveBuff(id string) bool {
	for i, buff := range b.buffs {
		if buff.ID == id {
			b.buffs = append(b.buffs[:i], b.buffs[i+1:]...)
			return true
		}
	}
	return false
}

// Buffs returns the currently tracked buffs, expired entries included until
// the next Update sweep.
func (b *Block) Buffs() []Buff {
	return b.buffs
}

// Update purges expired buffs and returns them. It must be called once per
// simulation tick; a buff stops contributing to Get the instant it expires,
// but is only removed from the list here (lazy sweep, at-least-once expiry).
func (b *Block) Update(now time.Time) []Buff {
	var expired []Buff
	remaining := b.buffs[:0]
	for _, buff := range b.buffs {
		if buff.Active(now) {
			remaining = append(remaining, buff)
		} else {
			expired = append(expired, buff)
		}
	}
	b.buffs = remaining
	return expired
}

// Damage derives attack damage from the current strength total.
// Pure; safe to call any number of times per tick.
func (b *Block) Damage(now time.Time) float64 {
	return b.coeff.DamageBase + b.Get(Strength, now)*b.coeff.StrengthMultiplier
}

// MaxHealth derives maximum health from the current vitality total.
// Pure; safe to call any number of times per tick.
func (b *Block) MaxHealth(now time.Time) float64 {
	return b.coeff.HealthBase + b.Get(Vitality, now)*b.coeff.VitalityMultiplier
}

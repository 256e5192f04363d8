package entity

import (
	"time"

	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/gamedata"
	"github.com/samdwyer/emberwood/internal/stats"
)

// ApplyBuffDef applies a data-driven buff template to a stat block and
// returns the buff instance ID. The sink receives a BuffApplied event.
func ApplyBuffDef(block *stats.Block, def *gamedata.BuffDef, actorID string, sink events.Sink, now time.Time) string {
	if block == nil || def == nil {
		return ""
	}
	effects := make(map[stats.Attribute]float64, len(def.Effects))
	for name, delta := range def.Effects {
		effects[stats.Attribute(name)] = delta
	}
	id := block.ApplyBuff(effects, time.Duration(def.DurationMs)*time.Millisecond, def.Name, def.Debuff, now)
	if sink != nil {
		sink.Publish(events.Event{
			Type:  events.TypeBuffApplied,
			Actor: actorID,
			Text:  def.Name,
			At:    now,
		})
	}
	return id
}

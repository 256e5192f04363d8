package entity

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/emberwood/internal/combat"
	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/gamedata"
	"github.com/samdwyer/emberwood/internal/logger"
	"github.com/samdwyer/emberwood/internal/movement"
	"github.com/samdwyer/emberwood/internal/stats"
)

// NPC is a non-player actor: one generic controller driven by kind
// configuration instead of subtypes. Aggressive kinds run the
// roam/aggro/chase/attack state machine; passive kinds only roam.
type NPC struct {
	ID       string
	Kind     *gamedata.NPCKind
	Movement *movement.Component
	Combat   *combat.Component

	// Aggroed is true while the NPC is actively targeting the player.
	Aggroed bool

	// OnDefeat, when set, is notified once after the combat component
	// reaches the Defeated state. The NPC never removes itself from the
	// world; the owning map culls defeated entities on its next pass.
	OnDefeat func(*NPC)

	sink        events.Sink
	rng         *rand.Rand
	nextRoamAt  time.Time
	dialogIndex int
}

// NewNPC creates an NPC of the given kind at a tile.
func NewNPC(kind *gamedata.NPCKind, tileX, tileY int, sink events.Sink, rng *rand.Rand, now time.Time) *NPC {
	if sink == nil {
		sink = events.NopSink{}
	}
	n := &NPC{
		ID:       uuid.NewString(),
		Kind:     kind,
		Movement: movement.NewComponent(tileX, tileY, kind.MoveSpeed, kind.PhasesWalls),
		sink:     sink,
		rng:      rng,
	}
	block := stats.New(map[stats.Attribute]float64{
		stats.Strength: kind.Strength,
		stats.Vitality: kind.Vitality,
	}, stats.Coefficients{
		DamageBase:         kind.DamageBase,
		StrengthMultiplier: kind.StrengthMultiplier,
		HealthBase:         kind.HealthBase,
		VitalityMultiplier: kind.VitalityMultiplier,
	})
	n.Combat = combat.NewComponent(block, combat.Config{
		ActorID:        n.ID,
		AttackCooldown: time.Duration(kind.AttackCooldownMs) * time.Millisecond,
		AttackRange:    kind.AttackRange,
		Center:         n.Movement.Center,
		Orient:         func(d movement.Direction) { n.Movement.Facing = d },
		OnDefeat:       n.handleDefeat,
		Sink:           sink,
	}, now)
	return n
}

// Defeated reports whether the NPC has been defeated and awaits culling.
func (n *NPC) Defeated() bool {
	return n.Combat.Defeated()
}

// Update runs one behavior tick. The player reference is transient; a nil
// player skips decision logic for the tick without failing.
func (n *NPC) Update(player *Player, now time.Time, grid movement.Grid, others []movement.Occupant) {
	if n.Defeated() {
		return
	}
	n.Combat.Update(now)
	n.Movement.Advance()
	if player == nil {
		return
	}

	if n.Kind.Aggressive {
		dist := n.distanceTo(player)
		wasAggroed := n.Aggroed
		n.Aggroed = dist <= n.Kind.AggroRange
		if n.Aggroed != wasAggroed {
			logger.Log.WithFields(logrus.Fields{
				"component": "npc_behavior",
				"npc":       n.Kind.ID,
				"aggroed":   n.Aggroed,
				"distance":  dist,
			}).Debug("aggro state changed")
		}
		if n.Aggroed {
			if dist > n.Kind.FollowDistance {
				n.Movement.FollowTarget(player, grid, others, n.Kind.FollowDistance)
			} else {
				n.Combat.Attack(now, player, 0, 0)
			}
			return
		}
	}

	n.roam(now, grid, others)
}

// roam performs the idle wander step. Decisions run on the kind's roam
// interval rather than every tick; an NPC displaced beyond its roam range
// is pulled back toward its spawn tile instead of wandering further.
func (n *NPC) roam(now time.Time, grid movement.Grid, others []movement.Occupant) {
	if now.Before(n.nextRoamAt) {
		return
	}
	n.nextRoamAt = now.Add(time.Duration(n.Kind.RoamIntervalMs) * time.Millisecond)

	tileX, tileY := n.Movement.Tile()
	dx := tileX - n.Movement.SpawnTileX
	dy := tileY - n.Movement.SpawnTileY
	if max(abs(dx), abs(dy)) > n.Kind.RoamRange {
		n.Movement.StepToward(n.Movement.SpawnTileX, n.Movement.SpawnTileY, grid, others)
		return
	}
	if n.rng != nil {
		n.Movement.MoveRandomly(n.rng, grid, others)
	}
}

// Interact speaks the NPC's next dialog line, cycling through the kind's
// lines. Returns false when the kind has no dialog.
func (n *NPC) Interact(now time.Time) bool {
	if len(n.Kind.Dialog) == 0 {
		return false
	}
	line := n.Kind.Dialog[n.dialogIndex%len(n.Kind.Dialog)]
	n.dialogIndex++
	n.sink.Publish(events.Event{
		Type:  events.TypeDialog,
		Actor: n.ID,
		Text:  line,
		At:    now,
	})
	return true
}

// Center implements combat.Target and movement.Locator.
func (n *NPC) Center() (float64, float64) {
	return n.Movement.Center()
}

// TakeDamage implements combat.Target.
func (n *NPC) TakeDamage(amount float64) bool {
	return n.Combat.TakeDamage(amount)
}

// MarkDamaged forwards the renderer hit flag to the combat component.
func (n *NPC) MarkDamaged(now time.Time) {
	n.Combat.MarkDamaged(now)
}

func (n *NPC) distanceTo(player *Player) float64 {
	cx, cy := n.Movement.Center()
	px, py := player.Center()
	return math.Hypot(px-cx, py-cy)
}

func (n *NPC) handleDefeat() {
	logger.Log.WithFields(logrus.Fields{
		"component": "npc_behavior",
		"npc":       n.Kind.ID,
	}).Info("npc defeated")
	n.sink.Publish(events.Event{
		Type:  events.TypeDefeat,
		Actor: n.ID,
		Text:  n.Kind.Name,
	})
	if n.OnDefeat != nil {
		n.OnDefeat(n)
	}
}

var _ combat.Target = (*NPC)(nil)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

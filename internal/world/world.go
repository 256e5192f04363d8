package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/emberwood/internal/entity"
	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/gamedata"
	"github.com/samdwyer/emberwood/internal/movement"
	"github.com/samdwyer/emberwood/internal/telemetry"
)

// World owns the tile grid and the NPC roster. The roster is the only
// shared mutable collection in the simulation: additions happen at
// construction or explicit spawn calls, removals only in the defeat-cull
// pass at the top of Update. NPCs never mutate it themselves.
type World struct {
	Grid *Grid

	npcs []*entity.NPC
	rng  *rand.Rand
	sink events.Sink
}

// New creates a world over the given grid.
func New(ctx context.Context, grid *Grid, rng *rand.Rand, sink events.Sink) *World {
	if sink == nil {
		sink = events.NopSink{}
	}
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.init")
	span.SetAttributes(
		attribute.Int("world.width", grid.Width),
		attribute.Int("world.height", grid.Height),
	)
	span.End()

	return &World{
		Grid: grid,
		rng:  rng,
		sink: sink,
	}
}

// Spawn creates an NPC of the given kind at a tile and adds it to the roster.
func (w *World) Spawn(kind *gamedata.NPCKind, tileX, tileY int, now time.Time) *entity.NPC {
	npc := entity.NewNPC(kind, tileX, tileY, w.sink, w.rng, now)
	w.npcs = append(w.npcs, npc)
	return npc
}

// SpawnRandom places a weighted-random kind from the registry at a tile.
// Returns nil if the registry has no spawnable kinds.
func (w *World) SpawnRandom(reg *gamedata.NPCRegistry, tileX, tileY int, now time.Time) *entity.NPC {
	kind := reg.SpawnRandom(w.rng)
	if kind == nil {
		return nil
	}
	return w.Spawn(kind, tileX, tileY, now)
}

// NPCs returns the live roster.
func (w *World) NPCs() []*entity.NPC {
	return w.npcs
}

// NPCAtTile returns the first live NPC standing on the tile, or nil.
func (w *World) NPCAtTile(tileX, tileY int) *entity.NPC {
	for _, npc := range w.npcs {
		x, y := npc.Movement.Tile()
		if x == tileX && y == tileY {
			return npc
		}
	}
	return nil
}

// Update advances all NPCs by one tick. Defeated entities are removed
// first, so a stale entity never runs a decision in the tick after it died
// (it may still have been attacked in the tick it died; attack resolution
// and culling are separate passes).
func (w *World) Update(player *entity.Player, now time.Time) {
	w.cullDefeated()
	for _, npc := range w.npcs {
		npc.Update(player, now, w.Grid, w.occupantsExcept(npc, player))
	}
}

// Occupants returns the NPC occupancy snapshot the player controller
// validates its own moves against.
func (w *World) Occupants() []movement.Occupant {
	occupants := make([]movement.Occupant, 0, len(w.npcs))
	for _, npc := range w.npcs {
		occupants = append(occupants, npc.Movement)
	}
	return occupants
}

// occupantsExcept builds the occupancy snapshot one NPC validates against:
// every other NPC plus the player.
func (w *World) occupantsExcept(self *entity.NPC, player *entity.Player) []movement.Occupant {
	occupants := make([]movement.Occupant, 0, len(w.npcs))
	for _, npc := range w.npcs {
		if npc == self {
			continue
		}
		occupants = append(occupants, npc.Movement)
	}
	if player != nil {
		occupants = append(occupants, player.Movement)
	}
	return occupants
}

// cullDefeated drops defeated NPCs from the roster.
func (w *World) cullDefeated() {
	remaining := w.npcs[:0]
	for _, npc := range w.npcs {
		if npc.Defeated() {
			continue
		}
		remaining = append(remaining, npc)
	}
	// Clear the tail so culled NPCs can be collected.
	for i := len(remaining); i < len(w.npcs); i++ {
		w.npcs[i] = nil
	}
	w.npcs = remaining
}

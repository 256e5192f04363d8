// Package game provides the top-level simulation loop: config, world and
// player construction, tick ordering, and the player input surface.
package game

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/emberwood/internal/entity"
	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/gamedata"
	"github.com/samdwyer/emberwood/internal/logger"
	"github.com/samdwyer/emberwood/internal/telemetry"
	"github.com/samdwyer/emberwood/internal/world"
)

// Game holds the entire simulation state for one session.
type Game struct {
	cfg     *Config
	world   *world.World
	player  *entity.Player
	npcReg  *gamedata.NPCRegistry
	buffReg *gamedata.BuffRegistry
	sink    events.Sink
	rng     *rand.Rand

	// inTransition latches while the player stands inside a transition
	// zone so the event fires once per entry.
	inTransition bool
}

// New builds a game from the scenario config. The sink receives all
// presentation events; nil means events are dropped.
func New(ctx context.Context, cfg *Config, sink events.Sink, now time.Time) (*Game, error) {
	if cfg == nil {
		cfg = Default()
	}
	if sink == nil {
		sink = events.NopSink{}
	}

	tracer := telemetry.Tracer("game")
	_, initSpan := tracer.Start(ctx, "game.init")
	defer initSpan.End()

	seed := cfg.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	grid, err := world.NewGridFromRows(cfg.Map.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build map: %w", err)
	}
	for _, t := range cfg.Map.Transitions {
		grid.AddTransition(world.Transition{
			X: t.X, Y: t.Y, Width: t.Width, Height: t.Height,
			Dest: t.Dest, DestTileX: t.DestTileX, DestTileY: t.DestTileY,
		})
	}

	npcReg, err := gamedata.LoadNPCRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load NPC kinds: %w", err)
	}
	buffReg, err := gamedata.LoadBuffRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load buffs: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		world:   world.New(ctx, grid, rng, sink),
		npcReg:  npcReg,
		buffReg: buffReg,
		sink:    sink,
		rng:     rng,
	}

	playerCfg := entity.DefaultPlayerConfig()
	if cfg.Player.Strength > 0 {
		playerCfg.Strength = cfg.Player.Strength
	}
	if cfg.Player.Vitality > 0 {
		playerCfg.Vitality = cfg.Player.Vitality
	}
	g.player = entity.NewPlayer(cfg.Player.TileX, cfg.Player.TileY, playerCfg, sink, now)

	for _, spawn := range cfg.Spawns {
		if spawn.Kind == "" {
			g.world.SpawnRandom(npcReg, spawn.TileX, spawn.TileY, now)
			continue
		}
		kind := npcReg.GetByID(spawn.Kind)
		if kind == nil {
			return nil, fmt.Errorf("unknown NPC kind %q in config", spawn.Kind)
		}
		g.world.Spawn(kind, spawn.TileX, spawn.TileY, now)
	}

	initSpan.SetAttributes(
		attribute.Int("game.map_width", grid.Width),
		attribute.Int("game.map_height", grid.Height),
		attribute.Int("game.npc_count", len(g.world.NPCs())),
		attribute.Int64("game.seed", seed),
	)
	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"npcs":      len(g.world.NPCs()),
		"seed":      seed,
	}).Info("game initialized")

	return g, nil
}

// World returns the owned world.
func (g *Game) World() *world.World { return g.world }

// Player returns the player actor.
func (g *Game) Player() *entity.Player { return g.player }

// Buffs returns the loaded buff registry.
func (g *Game) Buffs() *gamedata.BuffRegistry { return g.buffReg }

// Step advances the simulation by one tick: the world's NPC pass runs
// first, then the player's timers and interpolation. The map-before-player
// order is deliberate; NPC distance checks see last tick's player position.
func (g *Game) Step(now time.Time) {
	g.world.Update(g.player, now)
	g.player.Update(now)
	g.checkTransition(now)
}

// Run drives Step on a wall-clock ticker until the context is cancelled or
// the player is defeated.
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(g.cfg.TickMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			g.Step(now)
			if g.player.Combat.Defeated() {
				logger.Log.WithField("component", "game").Info("player defeated, session over")
				return nil
			}
		}
	}
}

// MovePlayer attempts a one-tile player step in the given direction.
func (g *Game) MovePlayer(dx, dy int) bool {
	return g.player.Move(dx, dy, g.world.Grid, g.world.Occupants())
}

// PlayerAttack swings at the nearest live NPC within the player's attack
// range. Returns true iff a hit was delivered.
func (g *Game) PlayerAttack(now time.Time) bool {
	target := g.nearestNPC()
	if target == nil {
		return false
	}
	return g.player.Attack(now, target, 0, 0)
}

// InteractNearby speaks with an NPC on the tile the player faces.
func (g *Game) InteractNearby(now time.Time) bool {
	dx, dy := g.player.Movement.Facing.Delta()
	tileX, tileY := g.player.Movement.Tile()
	npc := g.world.NPCAtTile(tileX+dx, tileY+dy)
	if npc == nil {
		return false
	}
	return npc.Interact(now)
}

// ApplyPlayerBuff applies a buff from the catalog to the player by ID.
func (g *Game) ApplyPlayerBuff(id string, now time.Time) bool {
	def := g.buffReg.GetByID(id)
	if def == nil {
		return false
	}
	entity.ApplyBuffDef(g.player.Combat.Stats(), def, g.player.ID, g.sink, now)
	return true
}

// nearestNPC returns the closest live NPC to the player, or nil when the
// roster is empty.
func (g *Game) nearestNPC() *entity.NPC {
	px, py := g.player.Center()
	var nearest *entity.NPC
	best := math.Inf(1)
	for _, npc := range g.world.NPCs() {
		if npc.Defeated() {
			continue
		}
		cx, cy := npc.Center()
		d := math.Hypot(cx-px, cy-py)
		if d < best {
			best = d
			nearest = npc
		}
	}
	return nearest
}

// checkTransition emits a transition event once each time the player
// enters a transition zone.
func (g *Game) checkTransition(now time.Time) {
	tileX, tileY := g.player.Movement.Tile()
	tr, ok := g.world.Grid.TransitionAt(tileX, tileY)
	if !ok {
		g.inTransition = false
		return
	}
	if g.inTransition {
		return
	}
	g.inTransition = true
	g.sink.Publish(events.Event{
		Type:  events.TypeTransition,
		Actor: g.player.ID,
		Text:  tr.Dest,
		At:    now,
	})
}

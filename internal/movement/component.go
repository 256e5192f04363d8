// Package movement provides the tile-grid movement component shared by the
// player and NPCs: pixel-space interpolation between tiles, facing, and
// move validation against map solidity and entity occupancy.
package movement

import (
	"math"
	"math/rand"
)

// TileSize is the width and height of one grid tile in pixels. It is the
// unit of walkability: entities occupy exactly one tile when at rest.
const TileSize = 32

// Grid is the map surface movement validates against.
type Grid interface {
	// InBounds reports whether the tile coordinate lies inside the map.
	InBounds(tileX, tileY int) bool
	// Solid reports whether the tile blocks movement.
	Solid(tileX, tileY int) bool
}

// Occupant is the view of another entity used for destination-tile
// mutual exclusion.
type Occupant interface {
	// Tile returns the tile the entity currently stands on.
	Tile() (int, int)
	// MoveTarget returns the destination tile of an in-progress move.
	MoveTarget() (tileX, tileY int, moving bool)
	// PhasesWalls reports whether the entity ignores solidity. Phasing
	// entities never block a destination tile.
	PhasesWalls() bool
}

// Locator exposes a pixel-space center position.
type Locator interface {
	Center() (float64, float64)
}

// Component holds the movement state for a single entity.
type Component struct {
	// X, Y is the top-left pixel position of the entity's tile-sized box.
	X, Y float64
	// TargetX, TargetY is the pixel destination of the current move.
	TargetX, TargetY float64
	// Facing is the current cardinal orientation.
	Facing Direction
	// Moving is true while interpolating between tiles.
	Moving bool
	// Speed is the interpolation rate in pixels per tick.
	Speed float64
	// SpawnTileX, SpawnTileY record the spawn tile for roam-range clamping.
	SpawnTileX, SpawnTileY int

	phaseWalls bool
}

// NewComponent places a component at the given tile.
func NewComponent(tileX, tileY int, speed float64, phaseWalls bool) *Component {
	return &Component{
		X:          float64(tileX * TileSize),
		Y:          float64(tileY * TileSize),
		Facing:     DirDown,
		Speed:      speed,
		SpawnTileX: tileX,
		SpawnTileY: tileY,
		phaseWalls: phaseWalls,
	}
}

// Center returns the pixel center of the entity's box.
func (c *Component) Center() (float64, float64) {
	return c.X + TileSize/2, c.Y + TileSize/2
}

// Tile returns the tile the entity's center currently lies on.
func (c *Component) Tile() (int, int) {
	cx, cy := c.Center()
	return int(math.Floor(cx / TileSize)), int(math.Floor(cy / TileSize))
}

// MoveTarget implements Occupant.
func (c *Component) MoveTarget() (int, int, bool) {
	if !c.Moving {
		return 0, 0, false
	}
	return int(c.TargetX) / TileSize, int(c.TargetY) / TileSize, true
}

// PhasesWalls implements Occupant.
func (c *Component) PhasesWalls() bool {
	return c.phaseWalls
}

// IsValidTileMove reports whether the entity may start a move onto the given
// tile. Out-of-bounds tiles are always invalid. Solid tiles are invalid
// unless the mover phases walls. A tile that another non-phasing occupant
// stands on, or is mid-move targeting, is invalid: this is the only
// inter-entity mutual-exclusion rule, and it is checked at move-start time
// only, not re-validated mid-interpolation.
func (c *Component) IsValidTileMove(tileX, tileY int, grid Grid, others []Occupant) bool {
	if grid == nil || !grid.InBounds(tileX, tileY) {
		return false
	}
	if !c.phaseWalls && grid.Solid(tileX, tileY) {
		return false
	}
	for _, other := range others {
		if other == nil || Occupant(c) == other || other.PhasesWalls() {
			continue
		}
		ox, oy := other.Tile()
		if ox == tileX && oy == tileY {
			return false
		}
		if tx, ty, moving := other.MoveTarget(); moving && tx == tileX && ty == tileY {
			return false
		}
	}
	return true
}

// AttemptMove tries to start a one-tile move to (tileX, tileY). The facing
// direction is updated from (dx, dy) first, even when the move itself fails.
// An entity already mid-move cannot start another; the in-progress move must
// complete first. Returns true iff a move was started.
func (c *Component) AttemptMove(tileX, tileY, dx, dy int, grid Grid, others []Occupant) bool {
	if dx != 0 || dy != 0 {
		c.Facing = DirectionTowards(float64(dx), float64(dy))
	}
	if c.Moving {
		return false
	}
	if !c.IsValidTileMove(tileX, tileY, grid, others) {
		return false
	}
	c.TargetX = float64(tileX * TileSize)
	c.TargetY = float64(tileY * TileSize)
	c.Moving = true
	return true
}

// Advance steps the position toward the move target by Speed pixels and
// reports whether the target was reached this tick. When the remaining
// distance drops below Speed the position snaps exactly onto the target,
// so repeated moves never accumulate drift.
func (c *Component) Advance() bool {
	if !c.Moving {
		return false
	}
	dx := c.TargetX - c.X
	dy := c.TargetY - c.Y
	dist := math.Hypot(dx, dy)
	if dist < c.Speed {
		c.X = c.TargetX
		c.Y = c.TargetY
		c.Moving = false
		return true
	}
	c.X += dx / dist * c.Speed
	c.Y += dy / dist * c.Speed
	return false
}

// FollowTarget takes one greedy step toward the target: the axis with the
// larger tile distance is tried first and the other axis serves as a
// fallback when blocked (ties resolve to the vertical axis). No pathfinding
// beyond that; concave obstacles can stall the follower. Returns true iff a
// step was started. No-op while already moving or within followDistance.
func (c *Component) FollowTarget(target Locator, grid Grid, others []Occupant, followDistance float64) bool {
	if c.Moving || target == nil {
		return false
	}
	cx, cy := c.Center()
	tx, ty := target.Center()
	if math.Hypot(tx-cx, ty-cy) <= followDistance {
		return false
	}

	curX, curY := c.Tile()
	dtx := int(math.Floor(tx/TileSize)) - curX
	dty := int(math.Floor(ty/TileSize)) - curY
	sx := sign(dtx)
	sy := sign(dty)

	horizontalFirst := abs(dtx) > abs(dty)
	if horizontalFirst {
		if sx != 0 && c.AttemptMove(curX+sx, curY, sx, 0, grid, others) {
			return true
		}
		if sy != 0 && c.AttemptMove(curX, curY+sy, 0, sy, grid, others) {
			return true
		}
		return false
	}
	if sy != 0 && c.AttemptMove(curX, curY+sy, 0, sy, grid, others) {
		return true
	}
	if sx != 0 && c.AttemptMove(curX+sx, curY, sx, 0, grid, others) {
		return true
	}
	return false
}

// MoveRandomly picks one of the four cardinal directions uniformly at random
// and attempts a single tile step. A blocked pick simply fails this tick;
// there is no retry.
func (c *Component) MoveRandomly(rng *rand.Rand, grid Grid, others []Occupant) bool {
	dir := Direction(rng.Intn(4))
	dx, dy := dir.Delta()
	curX, curY := c.Tile()
	return c.AttemptMove(curX+dx, curY+dy, dx, dy, grid, others)
}

// StepToward attempts a single tile step toward the given tile along the
// dominant axis (ties vertical). Used for pulling a roamer back to spawn.
func (c *Component) StepToward(tileX, tileY int, grid Grid, others []Occupant) bool {
	if c.Moving {
		return false
	}
	curX, curY := c.Tile()
	dtx := tileX - curX
	dty := tileY - curY
	if dtx == 0 && dty == 0 {
		return false
	}
	sx := sign(dtx)
	sy := sign(dty)
	if abs(dtx) > abs(dty) {
		if c.AttemptMove(curX+sx, curY, sx, 0, grid, others) {
			return true
		}
		if sy != 0 {
			return c.AttemptMove(curX, curY+sy, 0, sy, grid, others)
		}
		return false
	}
	if c.AttemptMove(curX, curY+sy, 0, sy, grid, others) {
		return true
	}
	if sx != 0 {
		return c.AttemptMove(curX+sx, curY, sx, 0, grid, others)
	}
	return false
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

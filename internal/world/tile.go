// Package world provides the tile map, the NPC roster, and the per-tick
// update orchestration.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall is an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor is a passable floor tile.
	TileFloor Tile = '.'
	// TileGrass is a passable overgrown tile.
	TileGrass Tile = ','
	// TileWater is an impassable water tile.
	TileWater Tile = '~'
)

// Solid returns true if the tile blocks movement.
func (t Tile) Solid() bool {
	return t == TileWall || t == TileWater
}

// Walkable returns true if the tile can be walked on.
func (t Tile) Walkable() bool {
	return !t.Solid()
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

package world

import (
	"fmt"
	"math"

	"github.com/samdwyer/emberwood/internal/movement"
)

// Transition is a tile rectangle that moves the player to another map when
// entered. The scene layer that performs the switch is out of scope here;
// the grid only reports the hit.
type Transition struct {
	X, Y          int    // top-left tile of the zone
	Width, Height int    // extent in tiles
	Dest          string // destination map identifier
	DestTileX     int    // arrival tile on the destination map
	DestTileY     int
}

// Contains reports whether the tile lies inside the zone.
func (t Transition) Contains(tileX, tileY int) bool {
	return tileX >= t.X && tileX < t.X+t.Width && tileY >= t.Y && tileY < t.Y+t.Height
}

// Grid is the tile map: solidity lookups plus transition zones. Layouts are
// construction-time data the simulation treats as opaque input.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile

	transitions []Transition
}

// NewGridFromRows parses a map layout from equal-length strings of tile
// runes. Unknown runes are an error so layout typos fail loudly at load.
func NewGridFromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("map has no rows")
	}
	width := len([]rune(rows[0]))
	tiles := make([][]Tile, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("map row %d has width %d, want %d", y, len(runes), width)
		}
		tiles[y] = make([]Tile, width)
		for x, r := range runes {
			tile := Tile(r)
			switch tile {
			case TileWall, TileFloor, TileGrass, TileWater:
				tiles[y][x] = tile
			default:
				return nil, fmt.Errorf("map row %d col %d: unknown tile %q", y, x, string(r))
			}
		}
	}
	return &Grid{
		Width:  width,
		Height: len(rows),
		Tiles:  tiles,
	}, nil
}

// AddTransition registers a transition zone.
func (g *Grid) AddTransition(t Transition) {
	g.transitions = append(g.transitions, t)
}

// TransitionAt returns the transition zone containing the tile, if any.
func (g *Grid) TransitionAt(tileX, tileY int) (Transition, bool) {
	for _, t := range g.transitions {
		if t.Contains(tileX, tileY) {
			return t, true
		}
	}
	return Transition{}, false
}

// InBounds implements movement.Grid.
func (g *Grid) InBounds(tileX, tileY int) bool {
	return tileX >= 0 && tileX < g.Width && tileY >= 0 && tileY < g.Height
}

// Solid implements movement.Grid. Out-of-bounds tiles read as solid.
func (g *Grid) Solid(tileX, tileY int) bool {
	if !g.InBounds(tileX, tileY) {
		return true
	}
	return g.Tiles[tileY][tileX].Solid()
}

// Walkable reports whether the tile can be walked on.
func (g *Grid) Walkable(tileX, tileY int) bool {
	return g.InBounds(tileX, tileY) && g.Tiles[tileY][tileX].Walkable()
}

// TileAt returns the tile at a tile coordinate. Out of bounds reads as wall.
func (g *Grid) TileAt(tileX, tileY int) Tile {
	if !g.InBounds(tileX, tileY) {
		return TileWall
	}
	return g.Tiles[tileY][tileX]
}

// TileAtPixel returns the tile under a pixel position.
func (g *Grid) TileAtPixel(pixelX, pixelY float64) Tile {
	return g.TileAt(
		int(math.Floor(pixelX/movement.TileSize)),
		int(math.Floor(pixelY/movement.TileSize)),
	)
}

var _ movement.Grid = (*Grid)(nil)

package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/emberwood/internal/entity"
	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/gamedata"
	"github.com/samdwyer/emberwood/internal/world"
)

// Renderer draws the simulation state as one terminal cell per tile. It is
// a consumer of the simulation's read surface and its event stream; nothing
// in the simulation calls back into it.
type Renderer struct {
	screen *Screen
	log    *events.Recorder
}

// NewRenderer creates a renderer over the given screen. The recorder, if
// non-nil, supplies the message line below the map.
func NewRenderer(screen *Screen, log *events.Recorder) *Renderer {
	return &Renderer{screen: screen, log: log}
}

// Render draws the grid, NPCs, and player.
func (r *Renderer) Render(w *world.World, player *entity.Player) {
	r.screen.Clear()

	for y := 0; y < w.Grid.Height; y++ {
		for x := 0; x < w.Grid.Width; x++ {
			tile := w.Grid.TileAt(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.tileStyle(tile))
		}
	}

	for _, npc := range w.NPCs() {
		x, y := npc.Movement.Tile()
		r.screen.SetContent(x, y, npc.Kind.GlyphRune(), r.npcStyle(npc.Kind))
	}

	px, py := player.Movement.Tile()
	playerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.screen.SetContent(px, py, '@', playerStyle)

	r.renderStatus(w, player)
	r.screen.Show()
}

// renderStatus draws the health line and the most recent event below the map.
func (r *Renderer) renderStatus(w *world.World, player *entity.Player) {
	y := w.Grid.Height + 1
	status := fmt.Sprintf("HP %.0f/%.0f  facing %s  npcs %d",
		player.Combat.Health(), player.Combat.MaxHealth(),
		player.Movement.Facing, len(w.NPCs()))
	r.renderLine(status, y)

	if r.log != nil {
		if recent := r.log.Recent(1); len(recent) == 1 {
			ev := recent[0]
			line := string(ev.Type)
			if ev.Text != "" {
				line += ": " + ev.Text
			}
			r.renderLine(line, y+1)
		}
	}
}

// renderLine writes a string starting at column 0 of the given row.
func (r *Renderer) renderLine(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}

// tileStyle returns the style for a tile type.
func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileWater:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case world.TileGrass:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// npcStyle returns the style for an NPC kind, using its color render hint.
func (r *Renderer) npcStyle(kind *gamedata.NPCKind) tcell.Style {
	color, err := gamedata.ParseHexColor(kind.Color)
	if err != nil {
		color = tcell.ColorWhite
	}
	return tcell.StyleDefault.Foreground(color)
}

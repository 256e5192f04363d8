package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/emberwood/internal/game"
)

// Viewer runs an interactive terminal session over a game: it steps the
// simulation on a fixed tick and translates key presses into player commands.
type Viewer struct {
	screen   *Screen
	renderer *Renderer
	game     *game.Game
	tick     time.Duration
}

// NewViewer creates a viewer for the given game.
func NewViewer(screen *Screen, renderer *Renderer, g *game.Game, tick time.Duration) *Viewer {
	return &Viewer{screen: screen, renderer: renderer, game: g, tick: tick}
}

// Run drives the session until the player quits, the context is cancelled,
// or the player is defeated.
func (v *Viewer) Run(ctx context.Context) error {
	quit := make(chan struct{})
	defer close(quit)
	keys := v.screen.EventChannel(quit)

	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()

	v.renderer.Render(v.game.World(), v.game.Player())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			v.game.Step(now)
			v.renderer.Render(v.game.World(), v.game.Player())
			if v.game.Player().Combat.Defeated() {
				return nil
			}
		case ev := <-keys:
			if done := v.handleEvent(ev); done {
				return nil
			}
		}
	}
}

// handleEvent dispatches a single terminal event. Returns true when the
// session should end.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	now := time.Now()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.game.MovePlayer(0, -1)
	case tcell.KeyDown:
		v.game.MovePlayer(0, 1)
	case tcell.KeyLeft:
		v.game.MovePlayer(-1, 0)
	case tcell.KeyRight:
		v.game.MovePlayer(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'w':
			v.game.MovePlayer(0, -1)
		case 's':
			v.game.MovePlayer(0, 1)
		case 'a':
			v.game.MovePlayer(-1, 0)
		case 'd':
			v.game.MovePlayer(1, 0)
		case ' ':
			v.game.PlayerAttack(now)
		case 'e':
			v.game.InteractNearby(now)
		}
	}
	return false
}

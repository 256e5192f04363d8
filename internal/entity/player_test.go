package entity

import (
	"testing"
	"time"

	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/gamedata"
	"github.com/samdwyer/emberwood/internal/movement"
	"github.com/samdwyer/emberwood/internal/stats"
)

func TestPlayerDefaults(t *testing.T) {
	now := time.Now()
	p := NewPlayer(2, 2, DefaultPlayerConfig(), nil, now)

	// 20 + 5*6 = 50
	if p.Combat.Health() != 50 {
		t.Errorf("Expected health 50, got %v", p.Combat.Health())
	}
	x, y := p.Movement.Tile()
	if x != 2 || y != 2 {
		t.Errorf("Expected tile (2, 2), got (%d, %d)", x, y)
	}
}

func TestPlayerMove(t *testing.T) {
	now := time.Now()
	grid := openGrid{10, 10}
	p := NewPlayer(2, 2, DefaultPlayerConfig(), nil, now)

	if !p.Move(1, 0, grid, nil) {
		t.Fatal("Move onto an open tile should start")
	}
	if p.Movement.Facing != movement.DirRight {
		t.Errorf("Expected facing right, got %v", p.Movement.Facing)
	}

	// Walk the interpolation out, then step against the map edge
	for p.Movement.Moving {
		p.Movement.Advance()
	}
	p2 := NewPlayer(0, 0, DefaultPlayerConfig(), nil, now)
	if p2.Move(-1, 0, grid, nil) {
		t.Error("Move off the map should fail")
	}
	if p2.Movement.Facing != movement.DirLeft {
		t.Errorf("Facing should update on a blocked move, got %v", p2.Movement.Facing)
	}
}

func TestPlayerAttackNPC(t *testing.T) {
	now := time.Now()
	p := NewPlayer(2, 2, DefaultPlayerConfig(), nil, now)
	n := NewNPC(testKind(), 3, 2, nil, testRNG(), now)

	// Stat-derived damage 3 + 5*1 = 8 against 30 health
	if !p.Attack(now, n, 0, 0) {
		t.Fatal("Adjacent attack should be delivered")
	}
	if n.Combat.Health() != 22 {
		t.Errorf("Expected NPC health 22, got %v", n.Combat.Health())
	}

	// 600ms cooldown gates the immediate follow-up
	if p.Attack(now.Add(300*time.Millisecond), n, 0, 0) {
		t.Error("Attack inside cooldown should be gated")
	}
	if !p.Attack(now.Add(600*time.Millisecond), n, 0, 0) {
		t.Error("Attack after cooldown should be delivered")
	}
}

func TestApplyBuffDef(t *testing.T) {
	now := time.Now()
	rec := &events.Recorder{}
	p := NewPlayer(2, 2, DefaultPlayerConfig(), rec, now)

	def := &gamedata.BuffDef{
		ID:         "ember_brew",
		Name:       "Ember Brew",
		Effects:    map[string]float64{"strength": 3},
		DurationMs: 10000,
	}
	id := ApplyBuffDef(p.Combat.Stats(), def, p.ID, rec, now)
	if id == "" {
		t.Fatal("ApplyBuffDef should return the buff instance ID")
	}

	// 5 + 3 = 8
	if got := p.Combat.Stats().Get(stats.Strength, now); got != 8 {
		t.Errorf("Expected strength 8 under buff, got %v", got)
	}

	recent := rec.Recent(1)
	if len(recent) != 1 || recent[0].Type != events.TypeBuffApplied {
		t.Fatalf("Expected a buff-applied event, got %v", recent)
	}
	if recent[0].Text != "Ember Brew" {
		t.Errorf("Expected buff name in event, got %q", recent[0].Text)
	}

	// Nil inputs are inert
	if ApplyBuffDef(nil, def, p.ID, rec, now) != "" {
		t.Error("Nil block should yield an empty ID")
	}
	if ApplyBuffDef(p.Combat.Stats(), nil, p.ID, rec, now) != "" {
		t.Error("Nil def should yield an empty ID")
	}
}

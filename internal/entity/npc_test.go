package entity

import (
	"math/rand"
	"testing"
	"time"

	"github.com/samdwyer/emberwood/internal/events"
	"github.com/samdwyer/emberwood/internal/gamedata"
)

// openGrid is an unbounded-ish empty map for behavior tests.
type openGrid struct{ width, height int }

func (g openGrid) InBounds(tileX, tileY int) bool {
	return tileX >= 0 && tileY >= 0 && tileX < g.width && tileY < g.height
}

func (g openGrid) Solid(tileX, tileY int) bool { return false }

func testKind() *gamedata.NPCKind {
	return &gamedata.NPCKind{
		ID:                 "slime",
		Name:               "Slime",
		Strength:           3,
		Vitality:           4,
		DamageBase:         2,
		StrengthMultiplier: 1,
		HealthBase:         10,
		VitalityMultiplier: 5,
		AttackCooldownMs:   1200,
		AttackRange:        48,
		Aggressive:         true,
		AggroRange:         96,
		FollowDistance:     40,
		RoamRange:          3,
		RoamIntervalMs:     1500,
		MoveSpeed:          2,
		SpawnWeight:        10,
	}
}

func passiveKind() *gamedata.NPCKind {
	k := testKind()
	k.ID = "villager"
	k.Name = "Villager"
	k.Aggressive = false
	k.Dialog = []string{"Hello.", "Nice weather."}
	return k
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNPCStartsAtFullHealth(t *testing.T) {
	now := time.Now()
	n := NewNPC(testKind(), 2, 2, nil, testRNG(), now)

	// 10 + 4*5 = 30
	if n.Combat.Health() != 30 {
		t.Errorf("Expected health 30, got %v", n.Combat.Health())
	}
	if n.Defeated() {
		t.Error("Fresh NPC should not be defeated")
	}
}

func TestAggroThreshold(t *testing.T) {
	now := time.Now()
	grid := openGrid{20, 20}
	n := NewNPC(testKind(), 0, 0, nil, testRNG(), now)

	// NPC center is (16, 16). Put the player's center 100px away,
	// just outside the 96px aggro range.
	player := NewPlayer(0, 0, DefaultPlayerConfig(), nil, now)
	player.Movement.X = 100
	player.Movement.Y = 0
	n.Update(player, now, grid, nil)
	if n.Aggroed {
		t.Error("NPC should not aggro at distance 100")
	}

	// 90px away: inside the range
	player.Movement.X = 90
	n.Update(player, now.Add(time.Millisecond), grid, nil)
	if !n.Aggroed {
		t.Error("NPC should aggro at distance 90")
	}

	// Exactly 96px: the boundary is inclusive
	n2 := NewNPC(testKind(), 0, 0, nil, testRNG(), now)
	player.Movement.X = 96
	n2.Update(player, now, grid, nil)
	if !n2.Aggroed {
		t.Error("NPC should aggro at its exact aggro range")
	}

	// Moving back out drops the aggro again
	player.Movement.X = 200
	n.Update(player, now.Add(2*time.Millisecond), grid, nil)
	if n.Aggroed {
		t.Error("NPC should drop aggro once the player leaves the range")
	}
}

func TestAggroedNPCChases(t *testing.T) {
	now := time.Now()
	grid := openGrid{20, 20}
	n := NewNPC(testKind(), 0, 0, nil, testRNG(), now)
	player := NewPlayer(3, 0, DefaultPlayerConfig(), nil, now)

	n.Update(player, now, grid, nil)
	if !n.Aggroed {
		t.Fatal("NPC should have aggroed")
	}
	// Distance 96 > followDistance 40: the NPC steps toward the player
	tx, ty, moving := n.Movement.MoveTarget()
	if !moving {
		t.Fatal("Aggroed NPC outside follow distance should chase")
	}
	if tx != 1 || ty != 0 {
		t.Errorf("Expected chase step onto (1, 0), got (%d, %d)", tx, ty)
	}
}

func TestAggroedNPCAttacksInFollowDistance(t *testing.T) {
	now := time.Now()
	grid := openGrid{20, 20}
	n := NewNPC(testKind(), 0, 0, nil, testRNG(), now)
	// Adjacent: centers 32 apart, within followDistance 40 and range 48
	player := NewPlayer(1, 0, DefaultPlayerConfig(), nil, now)

	before := player.Combat.Health()
	n.Update(player, now, grid, nil)
	if player.Combat.Health() >= before {
		t.Errorf("Adjacent aggroed NPC should have attacked, health still %v", player.Combat.Health())
	}
	// Stat-derived damage: 2 + 3*1 = 5
	if got := before - player.Combat.Health(); got != 5 {
		t.Errorf("Expected 5 damage, got %v", got)
	}
	if n.Movement.Moving {
		t.Error("Attacking NPC should not also be chasing")
	}

	// Next tick is inside the 1200ms cooldown; no second hit
	mid := player.Combat.Health()
	n.Update(player, now.Add(500*time.Millisecond), grid, nil)
	if player.Combat.Health() != mid {
		t.Error("Attack inside cooldown should have been gated")
	}
}

func TestPassiveNPCNeverAggros(t *testing.T) {
	now := time.Now()
	grid := openGrid{20, 20}
	n := NewNPC(passiveKind(), 0, 0, nil, testRNG(), now)
	player := NewPlayer(1, 0, DefaultPlayerConfig(), nil, now)

	before := player.Combat.Health()
	n.Update(player, now, grid, nil)
	if n.Aggroed {
		t.Error("Passive NPC should never aggro")
	}
	if player.Combat.Health() != before {
		t.Error("Passive NPC should never attack")
	}
}

func TestRoamIntervalGating(t *testing.T) {
	now := time.Now()
	grid := openGrid{20, 20}
	n := NewNPC(passiveKind(), 10, 10, nil, testRNG(), now)
	player := NewPlayer(18, 18, DefaultPlayerConfig(), nil, now)

	// First tick picks a roam step
	n.Update(player, now, grid, nil)
	if !n.Movement.Moving {
		t.Fatal("First roam tick on an open map should have started a step")
	}

	// Finish the step, then tick again before the interval elapses
	for n.Movement.Moving {
		n.Movement.Advance()
	}
	n.Update(player, now.Add(100*time.Millisecond), grid, nil)
	if n.Movement.Moving {
		t.Error("Roam decision inside the interval should have been gated")
	}

	// After the interval the NPC roams again
	n.Update(player, now.Add(2*time.Second), grid, nil)
	if !n.Movement.Moving {
		t.Error("Roam decision after the interval should have run")
	}
}

func TestRoamRangePullsBackToSpawn(t *testing.T) {
	now := time.Now()
	grid := openGrid{40, 40}
	n := NewNPC(passiveKind(), 10, 10, nil, testRNG(), now)
	player := NewPlayer(30, 30, DefaultPlayerConfig(), nil, now)

	// Displace the NPC well beyond its roam range of 3
	n.Movement.X = 20 * 32
	n.Movement.Y = 10 * 32

	n.Update(player, now, grid, nil)
	tx, ty, moving := n.Movement.MoveTarget()
	if !moving {
		t.Fatal("Out-of-range NPC should step back toward spawn")
	}
	// Dominant axis is x; one step from (20,10) toward (10,10)
	if tx != 19 || ty != 10 {
		t.Errorf("Expected pull-back step onto (19, 10), got (%d, %d)", tx, ty)
	}
}

func TestNPCDefeatLifecycle(t *testing.T) {
	now := time.Now()
	grid := openGrid{20, 20}
	rec := &events.Recorder{}
	culled := 0
	n := NewNPC(testKind(), 2, 2, rec, testRNG(), now)
	n.OnDefeat = func(got *NPC) {
		if got != n {
			t.Error("Defeat notification should carry the defeated NPC")
		}
		culled++
	}

	// 30 health, overkill hit
	if !n.TakeDamage(50) {
		t.Fatal("Lethal damage should report defeat")
	}
	if !n.Defeated() {
		t.Error("NPC should be defeated")
	}
	if culled != 1 {
		t.Errorf("Defeat notification should fire once, fired %d times", culled)
	}

	found := false
	for _, ev := range rec.Recent(10) {
		if ev.Type == events.TypeDefeat && ev.Actor == n.ID {
			found = true
		}
	}
	if !found {
		t.Error("Expected a defeat event")
	}

	// Updates on a defeated NPC are inert
	player := NewPlayer(3, 2, DefaultPlayerConfig(), nil, now)
	before := player.Combat.Health()
	n.Update(player, now, grid, nil)
	if n.Movement.Moving || player.Combat.Health() != before {
		t.Error("Defeated NPC must not act")
	}

	// And repeated damage is a no-op
	if n.TakeDamage(10) {
		t.Error("Damage after defeat should report false")
	}
	if culled != 1 {
		t.Errorf("Defeat notification re-fired, count %d", culled)
	}
}

func TestInteractCyclesDialog(t *testing.T) {
	now := time.Now()
	rec := &events.Recorder{}
	n := NewNPC(passiveKind(), 2, 2, rec, testRNG(), now)

	if !n.Interact(now) {
		t.Fatal("NPC with dialog should speak")
	}
	if !n.Interact(now) {
		t.Fatal("Second interaction should speak the next line")
	}
	if !n.Interact(now) {
		t.Fatal("Dialog should wrap around")
	}

	lines := []string{}
	for _, ev := range rec.Recent(10) {
		if ev.Type == events.TypeDialog {
			lines = append(lines, ev.Text)
		}
	}
	want := []string{"Hello.", "Nice weather.", "Hello."}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d dialog events, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Dialog line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestInteractWithoutDialog(t *testing.T) {
	now := time.Now()
	n := NewNPC(testKind(), 2, 2, nil, testRNG(), now)

	if n.Interact(now) {
		t.Error("NPC without dialog should not speak")
	}
}

func TestNilPlayerSkipsBehavior(t *testing.T) {
	now := time.Now()
	grid := openGrid{20, 20}
	n := NewNPC(testKind(), 2, 2, nil, testRNG(), now)

	n.Update(nil, now, grid, nil)
	if n.Aggroed || n.Movement.Moving {
		t.Error("Nil player should skip decision logic without failing")
	}
}

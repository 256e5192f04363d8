package gamedata

// NPCKind defines an NPC archetype loaded from JSON. Behavior differences
// between kinds (boss stats, wall phasing, aggression) are configuration
// consumed by one generic controller, not subtypes.
type NPCKind struct {
	ID    string `json:"id"`    // Unique identifier (e.g., "slime")
	Name  string `json:"name"`  // Display name (e.g., "Slime")
	Glyph string `json:"glyph"` // Single character render hint
	Color string `json:"color"` // Hex color render hint (e.g., "#00FF00")

	// Base attributes and derive coefficients
	Strength           float64 `json:"strength"`
	Vitality           float64 `json:"vitality"`
	DamageBase         float64 `json:"damageBase"`
	StrengthMultiplier float64 `json:"strengthMultiplier"`
	HealthBase         float64 `json:"healthBase"`
	VitalityMultiplier float64 `json:"vitalityMultiplier"`

	// Combat tuning
	AttackCooldownMs int     `json:"attackCooldownMs"`
	AttackRange      float64 `json:"attackRange"` // pixels, center to center

	// Behavior tuning
	Aggressive     bool    `json:"aggressive"`
	AggroRange     float64 `json:"aggroRange"`     // pixels
	FollowDistance float64 `json:"followDistance"` // stop-chasing threshold, pixels
	RoamRange      int     `json:"roamRange"`      // max tile distance from spawn
	RoamIntervalMs int     `json:"roamIntervalMs"` // decision interval while roaming
	MoveSpeed      float64 `json:"moveSpeed"`      // pixels per tick
	PhasesWalls    bool    `json:"phasesWalls"`    // ghost-types skip solidity checks

	Dialog      []string `json:"dialog"`      // lines spoken on interaction
	SpawnWeight int      `json:"spawnWeight"` // relative random-spawn frequency
}

// GlyphRune returns the glyph as a rune for rendering.
func (k *NPCKind) GlyphRune() rune {
	if len(k.Glyph) == 0 {
		return '?'
	}
	return rune(k.Glyph[0])
}

// NPCsFile represents the structure of npcs.json.
type NPCsFile struct {
	NPCs []NPCKind `json:"npcs"`
}

// LoadNPCKinds loads NPC kind definitions from the embedded npcs.json file.
func LoadNPCKinds() ([]NPCKind, error) {
	file, err := Load[NPCsFile]("npcs.json")
	if err != nil {
		return nil, err
	}
	return file.NPCs, nil
}

// MustLoadNPCKinds loads NPC kind definitions, panicking on error.
func MustLoadNPCKinds() []NPCKind {
	kinds, err := LoadNPCKinds()
	if err != nil {
		panic(err)
	}
	return kinds
}

package gamedata

// BuffDef defines a named buff or debuff template loaded from JSON.
// Effects map attribute names (e.g., "strength", "vitality") to additive
// deltas; multiple active buffs on the same attribute stack additively.
type BuffDef struct {
	ID         string             `json:"id"`         // Unique identifier (e.g., "ember_brew")
	Name       string             `json:"name"`       // Display name (e.g., "Ember Brew")
	Effects    map[string]float64 `json:"effects"`    // attribute -> additive delta
	DurationMs int                `json:"durationMs"` // lifetime once applied
	Debuff     bool               `json:"debuff"`     // true for negative effects
}

// BuffsFile represents the structure of buffs.json.
type BuffsFile struct {
	Buffs []BuffDef `json:"buffs"`
}

// LoadBuffs loads buff definitions from the embedded buffs.json file.
func LoadBuffs() ([]BuffDef, error) {
	file, err := Load[BuffsFile]("buffs.json")
	if err != nil {
		return nil, err
	}
	return file.Buffs, nil
}

// MustLoadBuffs loads buff definitions, panicking on error.
func MustLoadBuffs() []BuffDef {
	buffs, err := LoadBuffs()
	if err != nil {
		panic(err)
	}
	return buffs
}

package gamedata

import (
	"errors"
	"math/rand"
)

// NPCRegistry holds loaded NPC kind definitions and provides spawning utilities.
type NPCRegistry struct {
	kinds       []NPCKind
	totalWeight int
}

// NewNPCRegistry creates a registry from loaded NPC kind definitions.
func NewNPCRegistry(kinds []NPCKind) *NPCRegistry {
	totalWeight := 0
	for _, k := range kinds {
		totalWeight += k.SpawnWeight
	}
	return &NPCRegistry{
		kinds:       kinds,
		totalWeight: totalWeight,
	}
}

// LoadNPCRegistry loads and creates a registry from the embedded npcs.json.
func LoadNPCRegistry() (*NPCRegistry, error) {
	kinds, err := LoadNPCKinds()
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		return nil, errors.New("no NPC kinds loaded from npcs.json")
	}
	return NewNPCRegistry(kinds), nil
}

// MustLoadNPCRegistry loads a registry, panicking on error.
func MustLoadNPCRegistry() *NPCRegistry {
	registry, err := LoadNPCRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random NPC kind using weighted probability.
// Kinds with higher spawnWeight are more likely to be selected.
func (r *NPCRegistry) SpawnRandom(rng *rand.Rand) *NPCKind {
	if r.totalWeight <= 0 || len(r.kinds) == 0 {
		return nil
	}

	// Pick a random value in the total weight range
	roll := rng.Intn(r.totalWeight)

	// Find which kind this roll corresponds to
	cumulative := 0
	for i := range r.kinds {
		cumulative += r.kinds[i].SpawnWeight
		if roll < cumulative {
			return &r.kinds[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.kinds[0]
}

// GetByID returns the NPC kind with the given ID, or nil if not found.
func (r *NPCRegistry) GetByID(id string) *NPCKind {
	for i := range r.kinds {
		if r.kinds[i].ID == id {
			return &r.kinds[i]
		}
	}
	return nil
}

// All returns all NPC kind definitions.
func (r *NPCRegistry) All() []NPCKind {
	return r.kinds
}

// Count returns the number of NPC kinds in the registry.
func (r *NPCRegistry) Count() int {
	return len(r.kinds)
}

// =============================================================================
// BuffRegistry
// =============================================================================

// BuffRegistry holds loaded buff definitions and provides lookup utilities.
type BuffRegistry struct {
	buffs map[string]*BuffDef
	all   []BuffDef
}

// NewBuffRegistry creates a registry from loaded buff definitions.
func NewBuffRegistry(buffs []BuffDef) *BuffRegistry {
	registry := &BuffRegistry{
		buffs: make(map[string]*BuffDef),
		all:   buffs,
	}
	for i := range buffs {
		registry.buffs[buffs[i].ID] = &buffs[i]
	}
	return registry
}

// LoadBuffRegistry loads and creates a registry from the embedded buffs.json.
func LoadBuffRegistry() (*BuffRegistry, error) {
	buffs, err := LoadBuffs()
	if err != nil {
		return nil, err
	}
	if len(buffs) == 0 {
		return nil, errors.New("no buffs loaded from buffs.json")
	}
	return NewBuffRegistry(buffs), nil
}

// MustLoadBuffRegistry loads a registry, panicking on error.
func MustLoadBuffRegistry() *BuffRegistry {
	registry, err := LoadBuffRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the buff definition with the given ID, or nil if not found.
func (r *BuffRegistry) GetByID(id string) *BuffDef {
	return r.buffs[id]
}

// All returns all buff definitions.
func (r *BuffRegistry) All() []BuffDef {
	return r.all
}

// Count returns the number of buffs in the registry.
func (r *BuffRegistry) Count() int {
	return len(r.all)
}

package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

// =============================================================================
// SkillRegistry
// =============================================================================

// SkillRegistry interns skill definitions. Every lookup of an ID returns the
// same pointer, so combatants share definitions instead of copying them.
type SkillRegistry struct {
	skills map[string]*SkillDef
	all    []SkillDef
}

// NewSkillRegistry creates a registry from loaded skill definitions.
func NewSkillRegistry(skills []SkillDef) *SkillRegistry {
	registry := &SkillRegistry{
		skills: make(map[string]*SkillDef, len(skills)),
		all:    skills,
	}
	for i := range skills {
		registry.skills[skills[i].ID] = &skills[i]
	}
	return registry
}

// LoadSkillRegistry loads and creates a registry from the embedded skills.json.
func LoadSkillRegistry() (*SkillRegistry, error) {
	skills, err := LoadSkills()
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, errors.New("no skills loaded from skills.json")
	}
	for i := range skills {
		if !skills[i].TargetShape.Valid() {
			return nil, fmt.Errorf("skill %q: unknown target type %q", skills[i].ID, skills[i].TargetShape)
		}
	}
	return NewSkillRegistry(skills), nil
}

// MustLoadSkillRegistry loads a registry, panicking on error.
func MustLoadSkillRegistry() *SkillRegistry {
	registry, err := LoadSkillRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the skill definition with the given ID, or nil if not found.
func (r *SkillRegistry) GetByID(id string) *SkillDef {
	return r.skills[id]
}

// GetMultiple returns skill definitions for a list of IDs.
// Missing IDs are silently skipped.
func (r *SkillRegistry) GetMultiple(ids []string) []*SkillDef {
	result := make([]*SkillDef, 0, len(ids))
	for _, id := range ids {
		if skill := r.skills[id]; skill != nil {
			result = append(result, skill)
		}
	}
	return result
}

// Resolve returns skill definitions for a list of IDs, failing on the first
// unknown ID.
func (r *SkillRegistry) Resolve(ids []string) ([]*SkillDef, error) {
	result := make([]*SkillDef, 0, len(ids))
	for _, id := range ids {
		skill := r.skills[id]
		if skill == nil {
			return nil, fmt.Errorf("unknown skill %q", id)
		}
		result = append(result, skill)
	}
	return result, nil
}

// All returns all skill definitions.
func (r *SkillRegistry) All() []SkillDef {
	return r.all
}

// Count returns the number of skills in the registry.
func (r *SkillRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// UnitRegistry
// =============================================================================

// UnitRegistry holds unit templates keyed by ID.
type UnitRegistry struct {
	units map[string]*UnitDef
	all   []UnitDef
}

// NewUnitRegistry creates a registry from loaded unit templates.
func NewUnitRegistry(units []UnitDef) *UnitRegistry {
	registry := &UnitRegistry{
		units: make(map[string]*UnitDef, len(units)),
		all:   units,
	}
	for i := range units {
		registry.units[units[i].ID] = &units[i]
	}
	return registry
}

// LoadUnitRegistry loads and creates a registry from the embedded units.json.
func LoadUnitRegistry() (*UnitRegistry, error) {
	units, err := LoadUnits()
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, errors.New("no units loaded from units.json")
	}
	return NewUnitRegistry(units), nil
}

// GetByID returns the unit template with the given ID, or nil if not found.
func (r *UnitRegistry) GetByID(id string) *UnitDef {
	return r.units[id]
}

// All returns all unit templates.
func (r *UnitRegistry) All() []UnitDef {
	return r.all
}

// Count returns the number of unit templates in the registry.
func (r *UnitRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds consumable definitions keyed by ID.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef, len(items)),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	return NewItemRegistry(items), nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	if r == nil {
		return nil
	}
	return r.items[id]
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of items in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// EncounterRegistry
// =============================================================================

// EncounterRegistry holds encounter templates and provides weighted selection.
type EncounterRegistry struct {
	encounters  []EncounterDef
	totalWeight int
}

// NewEncounterRegistry creates a registry from loaded encounter templates.
func NewEncounterRegistry(encounters []EncounterDef) *EncounterRegistry {
	totalWeight := 0
	for _, e := range encounters {
		totalWeight += e.SpawnWeight
	}
	return &EncounterRegistry{
		encounters:  encounters,
		totalWeight: totalWeight,
	}
}

// LoadEncounterRegistry loads and creates a registry from the embedded encounters.json.
func LoadEncounterRegistry() (*EncounterRegistry, error) {
	encounters, err := LoadEncounters()
	if err != nil {
		return nil, err
	}
	if len(encounters) == 0 {
		return nil, errors.New("no encounters loaded from encounters.json")
	}
	return NewEncounterRegistry(encounters), nil
}

// SpawnRandom selects a random encounter using weighted probability.
// Encounters with higher spawnWeight are more likely to be selected.
func (r *EncounterRegistry) SpawnRandom(rng *rand.Rand) *EncounterDef {
	if r.totalWeight <= 0 || len(r.encounters) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.encounters {
		cumulative += r.encounters[i].SpawnWeight
		if roll < cumulative {
			return &r.encounters[i]
		}
	}

	return &r.encounters[0]
}

// GetByID returns the encounter with the given ID, or nil if not found.
func (r *EncounterRegistry) GetByID(id string) *EncounterDef {
	for i := range r.encounters {
		if r.encounters[i].ID == id {
			return &r.encounters[i]
		}
	}
	return nil
}

// All returns all encounter templates.
func (r *EncounterRegistry) All() []EncounterDef {
	return r.encounters
}

// Count returns the number of encounters in the registry.
func (r *EncounterRegistry) Count() int {
	return len(r.encounters)
}

package gamedata

import "fmt"

// Catalog bundles every registry the battle layer looks definitions up in.
type Catalog struct {
	Units      *UnitRegistry
	Skills     *SkillRegistry
	Items      *ItemRegistry
	Encounters *EncounterRegistry
}

// LoadCatalog loads all embedded data files and cross-checks references
// between them.
func LoadCatalog() (*Catalog, error) {
	units, err := LoadUnitRegistry()
	if err != nil {
		return nil, err
	}
	skills, err := LoadSkillRegistry()
	if err != nil {
		return nil, err
	}
	items, err := LoadItemRegistry()
	if err != nil {
		return nil, err
	}
	encounters, err := LoadEncounterRegistry()
	if err != nil {
		return nil, err
	}

	c := &Catalog{Units: units, Skills: skills, Items: items, Encounters: encounters}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	for _, u := range c.Units.All() {
		if _, err := c.Skills.Resolve(u.SkillIDs); err != nil {
			return fmt.Errorf("unit %q: %w", u.ID, err)
		}
	}
	for _, e := range c.Encounters.All() {
		if len(e.EnemyIDs) == 0 {
			return fmt.Errorf("encounter %q: no enemies", e.ID)
		}
		for _, id := range e.EnemyIDs {
			if c.Units.GetByID(id) == nil {
				return fmt.Errorf("encounter %q: unknown unit %q", e.ID, id)
			}
		}
		for _, id := range e.Drops {
			if c.Items.GetByID(id) == nil {
				return fmt.Errorf("encounter %q: unknown item %q", e.ID, id)
			}
		}
	}
	return nil
}

// UnitTemplate returns the unit template and its resolved skills.
func (c *Catalog) UnitTemplate(id string) (*UnitDef, []*SkillDef, error) {
	def := c.Units.GetByID(id)
	if def == nil {
		return nil, nil, fmt.Errorf("unknown unit template %q", id)
	}
	skills, err := c.Skills.Resolve(def.SkillIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("unit template %q: %w", id, err)
	}
	return def, skills, nil
}

// Encounter returns the encounter template with the given ID.
func (c *Catalog) Encounter(id string) (*EncounterDef, error) {
	def := c.Encounters.GetByID(id)
	if def == nil {
		return nil, fmt.Errorf("unknown encounter %q", id)
	}
	return def, nil
}

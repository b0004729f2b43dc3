package gamedata

import "github.com/gdamore/tcell/v2"

// StatBlock holds the base stats of a unit template.
type StatBlock struct {
	HP      int `json:"hp"`
	MP      int `json:"mp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Magic   int `json:"magic"`
	Speed   int `json:"speed"`
}

// UnitDef defines a unit template loaded from JSON. Player classes and
// enemies share the same shape; affiliation is decided when a unit spawns.
type UnitDef struct {
	ID          string    `json:"id"`          // Unique identifier (e.g., "warrior")
	Name        string    `json:"name"`        // Display name (e.g., "Warrior")
	Class       string    `json:"class"`       // Archetype (warrior, mage, rogue, cleric, archer)
	Symbol      string    `json:"symbol"`      // Single character for rendering (e.g., "W")
	Color       string    `json:"color"`       // Hex color code (e.g., "#00FF00")
	Description string    `json:"description"` // Flavour text
	Stats       StatBlock `json:"baseStats"`   // Base stats
	SkillIDs    []string  `json:"skillIds"`    // Skills the unit starts with
}

// SymbolRune returns the symbol as a rune for rendering.
func (u *UnitDef) SymbolRune() rune {
	if len(u.Symbol) == 0 {
		return '?'
	}
	return rune(u.Symbol[0])
}

// TCellColor returns the color as a tcell.Color.
func (u *UnitDef) TCellColor() tcell.Color {
	return ColorOr(u.Color, tcell.ColorWhite)
}

// UnitsFile represents the structure of units.json.
type UnitsFile struct {
	Units []UnitDef `json:"units"`
}

// LoadUnits loads unit templates from the embedded units.json file.
func LoadUnits() ([]UnitDef, error) {
	file, err := Load[UnitsFile]("units.json")
	if err != nil {
		return nil, err
	}
	return file.Units, nil
}

package gamedata

// EncounterDef defines a group of enemies fought together.
type EncounterDef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	EnemyIDs    []string `json:"enemyIds"`
	Difficulty  int      `json:"difficulty"`
	SpawnWeight int      `json:"spawnWeight"` // Relative frequency (higher = more common)
	Drops       []string `json:"itemIds"`     // Items awarded on victory
}

// EncountersFile represents the structure of encounters.json.
type EncountersFile struct {
	Encounters []EncounterDef `json:"encounters"`
}

// LoadEncounters loads encounter templates from the embedded encounters.json file.
func LoadEncounters() ([]EncounterDef, error) {
	file, err := Load[EncountersFile]("encounters.json")
	if err != nil {
		return nil, err
	}
	return file.Encounters, nil
}

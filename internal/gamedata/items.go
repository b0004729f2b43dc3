package gamedata

// ItemDef defines a consumable usable in battle.
type ItemDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	HealHP      int    `json:"healHp,omitempty"`    // HP restored to the target
	RestoreMP   int    `json:"restoreMp,omitempty"` // MP restored to the target
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}

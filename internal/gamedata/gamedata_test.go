package gamedata

import (
	"math/rand"
	"testing"
	"testing/fstest"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if c.Units.Count() != 10 {
		t.Errorf("Expected 10 unit templates, got %d", c.Units.Count())
	}
	if c.Items.Count() != 3 {
		t.Errorf("Expected 3 items, got %d", c.Items.Count())
	}

	expectedIDs := map[string]bool{"warrior": false, "mage": false, "cleric": false, "goblin": false, "orc": false}
	for _, u := range c.Units.All() {
		if _, ok := expectedIDs[u.ID]; ok {
			expectedIDs[u.ID] = true
		}
	}
	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected unit %q not found", id)
		}
	}
}

func TestSkillRegistryInterns(t *testing.T) {
	registry := MustLoadSkillRegistry()

	a := registry.GetByID("heal")
	b := registry.GetByID("heal")
	if a == nil {
		t.Fatal("heal skill not found")
	}
	if a != b {
		t.Error("GetByID should return the same pointer for the same ID")
	}

	multi := registry.GetMultiple([]string{"heal", "missing", "firebolt"})
	if len(multi) != 2 {
		t.Errorf("GetMultiple should skip unknown IDs, got %d results", len(multi))
	}
	if multi[0] != a {
		t.Error("GetMultiple should hand out interned pointers")
	}

	if _, err := registry.Resolve([]string{"heal", "missing"}); err == nil {
		t.Error("Resolve should fail on unknown IDs")
	}
}

func TestUnitTemplate(t *testing.T) {
	c := MustLoadCatalog()

	def, skills, err := c.UnitTemplate("warrior")
	if err != nil {
		t.Fatalf("UnitTemplate(warrior) failed: %v", err)
	}
	if def.Stats.HP != 120 || def.Stats.Attack != 15 || def.Stats.Defense != 12 {
		t.Errorf("Unexpected warrior stats: %+v", def.Stats)
	}
	if len(skills) != len(def.SkillIDs) {
		t.Errorf("Expected %d skills, got %d", len(def.SkillIDs), len(skills))
	}

	if _, _, err := c.UnitTemplate("dragon"); err == nil {
		t.Error("UnitTemplate should fail for unknown IDs")
	}
}

func TestEncounterRegistrySpawnDeterministic(t *testing.T) {
	registry, err := LoadEncounterRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 10; i++ {
		a := registry.SpawnRandom(rng1).ID
		b := registry.SpawnRandom(rng2).ID
		if a != b {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a, b)
		}
	}

	empty := NewEncounterRegistry(nil)
	if empty.SpawnRandom(rng1) != nil {
		t.Error("SpawnRandom on an empty registry should return nil")
	}
}

func TestStatusKindClassification(t *testing.T) {
	tests := []struct {
		kind     StatusKind
		dot      bool
		hot      bool
		positive bool
		stat     Stat
		sign     int
	}{
		{StatusPoison, true, false, false, "", 0},
		{StatusBurn, true, false, false, "", 0},
		{StatusRegeneration, false, true, true, "", 0},
		{StatusBlessed, false, false, true, "", 0},
		{StatusAttackUp, false, false, true, StatAttack, 1},
		{StatusDefenseDown, false, false, false, StatDefense, -1},
		{StatusKind("blinded"), false, false, false, "", 0},
		{StatusKind("luck_up"), false, false, false, "", 0},
	}

	for _, tt := range tests {
		if got := tt.kind.IsDamageOverTime(); got != tt.dot {
			t.Errorf("%s.IsDamageOverTime() = %v, want %v", tt.kind, got, tt.dot)
		}
		if got := tt.kind.IsHealOverTime(); got != tt.hot {
			t.Errorf("%s.IsHealOverTime() = %v, want %v", tt.kind, got, tt.hot)
		}
		if got := tt.kind.IsPositive(); got != tt.positive {
			t.Errorf("%s.IsPositive() = %v, want %v", tt.kind, got, tt.positive)
		}
		stat, sign, _ := tt.kind.Modifier()
		if stat != tt.stat || sign != tt.sign {
			t.Errorf("%s.Modifier() = (%q, %d), want (%q, %d)", tt.kind, stat, sign, tt.stat, tt.sign)
		}
	}

	if BuffOf(StatMagic) != StatusMagicUp || DebuffOf(StatSpeed) != StatusSpeedDown {
		t.Error("BuffOf/DebuffOf should build <stat>_up and <stat>_down")
	}
}

func TestLoadFSErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json": &fstest.MapFile{Data: []byte("{not json")},
	}

	if _, err := LoadFS[SkillsFile](fsys, "missing.json"); err == nil {
		t.Error("Expected error for a missing file")
	}
	if _, err := LoadFS[SkillsFile](fsys, "broken.json"); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00ff00", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GGGGGG", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestUnitDefMethods(t *testing.T) {
	def := UnitDef{ID: "test", Name: "Test", Symbol: "T", Color: "#FF0000"}

	if def.SymbolRune() != 'T' {
		t.Errorf("Expected symbol 'T', got %c", def.SymbolRune())
	}
	if def.TCellColor() == 0 {
		t.Error("TCellColor returned zero color")
	}

	blank := UnitDef{}
	if blank.SymbolRune() != '?' {
		t.Errorf("Expected fallback symbol '?', got %c", blank.SymbolRune())
	}
}

package gamedata

// =============================================================================
// SKILL DATA
// =============================================================================
//
// Skills are immutable, data-driven definitions shared by every combatant
// that knows them. Combatants hold *SkillDef pointers handed out by the
// SkillRegistry and never copy or mutate them.
//
// A skill may carry any mix of components. All present components apply to
// every resolved target:
//
//   power > 0         damage of kind damageType
//   healPower > 0     healing
//   statusEffect      timed status effect (statusDuration, statusPower)
//   buffStats         <stat>_up effects, magnitude = delta
//   debuffStats       <stat>_down effects, magnitude = delta
//
// JSON Schema:
// ------------
// {
//   "id": "firebolt",
//   "name": "Firebolt",
//   "description": "A magical fire attack that may burn the target",
//   "mpCost": 12,
//   "power": 30,
//   "damageType": "magical",
//   "targetType": "single_enemy",
//   "statusEffect": "burn",
//   "statusDuration": 2,
//   "statusPower": 5
// }
//
// Raw output (before the target mitigates it):
// --------------------------------------------
// Physical: power + caster.Attack
// Magical:  power + caster.Magic * 2
// True:     power
// Healing:  healPower + caster.Magic (0 when healPower is 0)

// DamageKind selects how a target mitigates incoming damage.
type DamageKind string

const (
	DamagePhysical DamageKind = "physical"
	DamageMagical  DamageKind = "magical"
	DamageTrue     DamageKind = "true"
)

// TargetShape is the declared legal target pool of a skill.
type TargetShape string

const (
	TargetSelf        TargetShape = "self"
	TargetSingleAlly  TargetShape = "single_ally"
	TargetAllAllies   TargetShape = "all_allies"
	TargetSingleEnemy TargetShape = "single_enemy"
	TargetAllEnemies  TargetShape = "all_enemies"
	TargetRandomEnemy TargetShape = "random_enemy"
)

// IsSingle reports whether the caller must narrow the candidates to one target.
func (t TargetShape) IsSingle() bool {
	return t == TargetSingleAlly || t == TargetSingleEnemy
}

// IsOffensive reports whether the shape points at the opposing side.
func (t TargetShape) IsOffensive() bool {
	return t == TargetSingleEnemy || t == TargetAllEnemies || t == TargetRandomEnemy
}

// Valid reports whether t is a known target shape.
func (t TargetShape) Valid() bool {
	switch t {
	case TargetSelf, TargetSingleAlly, TargetAllAllies, TargetSingleEnemy, TargetAllEnemies, TargetRandomEnemy:
		return true
	}
	return false
}

// StatModifierDuration is how many phase ticks buff/debuff stat deltas last.
const StatModifierDuration = 3

// SkillDef defines a skill loaded from JSON.
type SkillDef struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	MPCost         int          `json:"mpCost"`
	Power          int          `json:"power"`
	DamageKind     DamageKind   `json:"damageType,omitempty"`
	HealPower      int          `json:"healPower,omitempty"`
	TargetShape    TargetShape  `json:"targetType"`
	StatusEffect   StatusKind   `json:"statusEffect,omitempty"`
	StatusDuration int          `json:"statusDuration,omitempty"`
	StatusPower    int          `json:"statusPower,omitempty"`
	BuffStats      map[Stat]int `json:"buffStats,omitempty"`
	DebuffStats    map[Stat]int `json:"debuffStats,omitempty"`
}

// NeedsTarget returns true if the skill requires target selection.
func (s *SkillDef) NeedsTarget() bool {
	return s.TargetShape.IsSingle()
}

// IsOffensive returns true if the skill targets the opposing side.
func (s *SkillDef) IsOffensive() bool {
	return s.TargetShape.IsOffensive()
}

// HasStatus reports whether the skill applies its named status effect.
func (s *SkillDef) HasStatus() bool {
	return s.StatusEffect != StatusNone && s.StatusDuration > 0
}

// Kind returns the damage kind, defaulting to physical when unset.
func (s *SkillDef) Kind() DamageKind {
	if s.DamageKind == "" {
		return DamagePhysical
	}
	return s.DamageKind
}

// SkillsFile represents the structure of skills.json.
type SkillsFile struct {
	Skills []SkillDef `json:"skills"`
}

// LoadSkills loads skill definitions from the embedded skills.json file.
func LoadSkills() ([]SkillDef, error) {
	file, err := Load[SkillsFile]("skills.json")
	if err != nil {
		return nil, err
	}
	return file.Skills, nil
}

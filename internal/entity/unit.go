// Package entity provides the battle-scoped combatant model.
package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Side is the affiliation of a combatant.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the opposing side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// StatusEffect is an active, timed effect attached to one unit.
type StatusEffect struct {
	Kind      gamedata.StatusKind
	Remaining int // Phase ticks left
	Magnitude int // Damage/heal per tick, or stat delta
}

// EffectResult describes one status effect resolving during a tick.
type EffectResult struct {
	Kind       gamedata.StatusKind
	Magnitude  int  // HP lost or gained, or the stat delta for modifiers
	IsPositive bool // True if the effect benefits its bearer
	Expired    bool // True if the effect was removed by this tick
}

// Unit is a combatant. HP and MP are kept in [0, max] by every mutator.
type Unit struct {
	ID         string // Unique per battle-scoped copy
	TemplateID string
	Name       string
	Class      string
	Side       Side

	MaxHP, MaxMP int
	BaseAttack   int
	BaseDefense  int
	BaseMagic    int
	BaseSpeed    int

	// Skills are shared definitions, never private copies.
	Skills []*gamedata.SkillDef

	Defending bool

	hp, mp         int
	effects        []StatusEffect
	defeatReported bool
}

// NewUnit creates a unit at full HP and MP. Negative stats are clamped to zero.
func NewUnit(name string, side Side, stats gamedata.StatBlock, skills []*gamedata.SkillDef) *Unit {
	u := &Unit{
		ID:          uuid.NewString(),
		Name:        name,
		Side:        side,
		MaxHP:       nonNegative(stats.HP),
		MaxMP:       nonNegative(stats.MP),
		BaseAttack:  nonNegative(stats.Attack),
		BaseDefense: nonNegative(stats.Defense),
		BaseMagic:   nonNegative(stats.Magic),
		BaseSpeed:   nonNegative(stats.Speed),
		Skills:      skills,
	}
	u.hp = u.MaxHP
	u.mp = u.MaxMP
	return u
}

// NewUnitFromDef creates a unit from a template definition.
func NewUnitFromDef(def *gamedata.UnitDef, side Side, skills []*gamedata.SkillDef) *Unit {
	u := NewUnit(def.Name, side, def.Stats, skills)
	u.TemplateID = def.ID
	u.Class = def.Class
	return u
}

// CloneForBattle returns a fresh copy for use in one battle: new ID, full
// HP and MP, no effects, not defending. Skill definitions stay shared.
func (u *Unit) CloneForBattle() *Unit {
	c := &Unit{
		ID:          uuid.NewString(),
		TemplateID:  u.TemplateID,
		Name:        u.Name,
		Class:       u.Class,
		Side:        u.Side,
		MaxHP:       u.MaxHP,
		MaxMP:       u.MaxMP,
		BaseAttack:  u.BaseAttack,
		BaseDefense: u.BaseDefense,
		BaseMagic:   u.BaseMagic,
		BaseSpeed:   u.BaseSpeed,
		Skills:      append([]*gamedata.SkillDef(nil), u.Skills...),
	}
	c.hp = c.MaxHP
	c.mp = c.MaxMP
	return c
}

// IsAlive returns true if the unit has HP remaining.
func (u *Unit) IsAlive() bool { return u.hp > 0 }

// HP returns current HP.
func (u *Unit) HP() int { return u.hp }

// MP returns current MP.
func (u *Unit) MP() int { return u.mp }

// Attack returns the attack stat including active modifiers.
func (u *Unit) Attack() int { return u.effective(gamedata.StatAttack, u.BaseAttack) }

// Defense returns the defense stat including active modifiers.
func (u *Unit) Defense() int { return u.effective(gamedata.StatDefense, u.BaseDefense) }

// Magic returns the magic stat including active modifiers.
func (u *Unit) Magic() int { return u.effective(gamedata.StatMagic, u.BaseMagic) }

// Speed returns the speed stat including active modifiers.
func (u *Unit) Speed() int { return u.effective(gamedata.StatSpeed, u.BaseSpeed) }

func (u *Unit) effective(stat gamedata.Stat, base int) int {
	value := base
	for _, e := range u.effects {
		if s, sign, ok := e.Kind.Modifier(); ok && s == stat {
			value += sign * e.Magnitude
		}
	}
	return nonNegative(value)
}

// Mitigate returns the damage a raw hit of the given kind would deal to u,
// before clamping to remaining HP. The result is never below 1.
//
//	physical: raw - defense, halved when defending
//	magical:  raw - magic/2
//	true:     raw
func (u *Unit) Mitigate(raw int, kind gamedata.DamageKind) int {
	damage := raw
	switch kind {
	case gamedata.DamageMagical:
		damage -= u.Magic() / 2
	case gamedata.DamageTrue:
	default:
		damage -= u.Defense()
		if u.Defending {
			damage /= 2
		}
	}
	if damage < 1 {
		damage = 1
	}
	return damage
}

// ApplyDamage mitigates and applies a hit, returning the HP actually lost.
// Hitting a defeated unit is a no-op that returns 0.
func (u *Unit) ApplyDamage(raw int, kind gamedata.DamageKind) int {
	if !u.IsAlive() {
		return 0
	}
	actual := u.Mitigate(raw, kind)
	if actual > u.hp {
		actual = u.hp
	}
	u.hp -= actual
	return actual
}

// Heal restores HP and returns the amount actually healed.
// Defeated units cannot be healed.
func (u *Unit) Heal(amount int) int {
	if amount <= 0 || !u.IsAlive() {
		return 0
	}
	actual := amount
	if missing := u.MaxHP - u.hp; actual > missing {
		actual = missing
	}
	u.hp += actual
	return actual
}

// SpendMP reduces MP and returns false, without mutating, if insufficient.
func (u *Unit) SpendMP(amount int) bool {
	if amount < 0 || u.mp < amount {
		return false
	}
	u.mp -= amount
	return true
}

// RestoreMP restores MP and returns the amount actually restored.
func (u *Unit) RestoreMP(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if missing := u.MaxMP - u.mp; actual > missing {
		actual = missing
	}
	u.mp += actual
	return actual
}

// Defend raises the defending flag until the unit's side starts a new phase.
func (u *Unit) Defend() { u.Defending = true }

// ResetForPhase clears per-phase state at the start of the unit's own phase.
func (u *Unit) ResetForPhase() { u.Defending = false }

// ConsumeDefeat reports the alive-to-defeated transition. It returns true
// exactly once, on the first call after HP reached zero.
func (u *Unit) ConsumeDefeat() bool {
	if u.IsAlive() || u.defeatReported {
		return false
	}
	u.defeatReported = true
	return true
}

// StatusEffects returns a copy of the active status effects.
func (u *Unit) StatusEffects() []StatusEffect {
	return append([]StatusEffect(nil), u.effects...)
}

// HasStatusEffect reports whether an effect of the given kind is active.
func (u *Unit) HasStatusEffect(kind gamedata.StatusKind) bool {
	for _, e := range u.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// AddStatusEffect appends an effect. Effects of the same kind stack and
// tick independently. Effects without remaining duration are ignored.
func (u *Unit) AddStatusEffect(effect StatusEffect) {
	if effect.Remaining <= 0 || effect.Kind == gamedata.StatusNone {
		return
	}
	u.effects = append(u.effects, effect)
}

// RemoveStatusEffect removes every active effect of the given kind.
func (u *Unit) RemoveStatusEffect(kind gamedata.StatusKind) {
	kept := u.effects[:0]
	for _, existing := range u.effects {
		if existing.Kind != kind {
			kept = append(kept, existing)
		}
	}
	u.effects = kept
}

// TickStatusEffects resolves every active effect once, decrements its
// duration and drops expired effects.
func (u *Unit) TickStatusEffects() []EffectResult {
	if len(u.effects) == 0 {
		return nil
	}

	results := make([]EffectResult, 0, len(u.effects))
	remaining := u.effects[:0]

	for _, effect := range u.effects {
		result := EffectResult{Kind: effect.Kind, IsPositive: effect.Kind.IsPositive()}

		switch {
		case effect.Kind.IsDamageOverTime():
			result.Magnitude = u.ApplyDamage(effect.Magnitude, gamedata.DamageTrue)
		case effect.Kind.IsHealOverTime():
			result.Magnitude = u.Heal(effect.Magnitude)
		default:
			result.Magnitude = effect.Magnitude
		}

		effect.Remaining--
		if effect.Remaining <= 0 {
			result.Expired = true
		} else {
			remaining = append(remaining, effect)
		}
		results = append(results, result)
	}

	u.effects = remaining
	return results
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

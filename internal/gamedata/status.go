package gamedata

import "strings"

// Stat names a combatant stat that buffs and debuffs can shift.
type Stat string

const (
	StatAttack  Stat = "attack"
	StatDefense Stat = "defense"
	StatMagic   Stat = "magic"
	StatSpeed   Stat = "speed"
)

// Stats lists the modifiable stats in a fixed order. Map-driven skill data
// is walked in this order so resolution stays deterministic.
var Stats = []Stat{StatAttack, StatDefense, StatMagic, StatSpeed}

// StatusKind names a status effect.
type StatusKind string

const (
	StatusNone         StatusKind = ""
	StatusPoison       StatusKind = "poison"
	StatusBurn         StatusKind = "burn"
	StatusRegen        StatusKind = "regen"
	StatusRegeneration StatusKind = "regeneration"
	StatusBlessed      StatusKind = "blessed"
	StatusAttackUp     StatusKind = "attack_up"
	StatusAttackDown   StatusKind = "attack_down"
	StatusDefenseUp    StatusKind = "defense_up"
	StatusDefenseDown  StatusKind = "defense_down"
	StatusMagicUp      StatusKind = "magic_up"
	StatusMagicDown    StatusKind = "magic_down"
	StatusSpeedUp      StatusKind = "speed_up"
	StatusSpeedDown    StatusKind = "speed_down"
)

// BuffOf returns the status kind that raises stat.
func BuffOf(stat Stat) StatusKind { return StatusKind(string(stat) + "_up") }

// DebuffOf returns the status kind that lowers stat.
func DebuffOf(stat Stat) StatusKind { return StatusKind(string(stat) + "_down") }

// IsDamageOverTime reports whether the effect hurts its bearer each tick.
func (k StatusKind) IsDamageOverTime() bool {
	return k == StatusPoison || k == StatusBurn
}

// IsHealOverTime reports whether the effect heals its bearer each tick.
func (k StatusKind) IsHealOverTime() bool {
	return k == StatusRegen || k == StatusRegeneration
}

// Modifier returns the stat shifted by the effect and the sign of the shift.
// ok is false for effects that do not touch stats.
func (k StatusKind) Modifier() (stat Stat, sign int, ok bool) {
	s := string(k)
	switch {
	case strings.HasSuffix(s, "_up"):
		stat, sign = Stat(strings.TrimSuffix(s, "_up")), 1
	case strings.HasSuffix(s, "_down"):
		stat, sign = Stat(strings.TrimSuffix(s, "_down")), -1
	default:
		return "", 0, false
	}
	for _, known := range Stats {
		if known == stat {
			return stat, sign, true
		}
	}
	return "", 0, false
}

// IsPositive reports whether the effect benefits its bearer.
func (k StatusKind) IsPositive() bool {
	if k.IsHealOverTime() || k == StatusBlessed {
		return true
	}
	_, sign, ok := k.Modifier()
	return ok && sign > 0
}

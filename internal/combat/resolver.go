// Package combat resolves skills, basic attacks, items and status ticks
// against battle-scoped units.
package combat

import (
	"errors"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

var (
	// ErrInsufficientMP is returned when the caster cannot pay the skill cost.
	ErrInsufficientMP = errors.New("insufficient MP")
	// ErrNoTargets is returned when a skill resolves to an empty target list.
	ErrNoTargets = errors.New("no legal targets")
	// ErrUnknownSkill is returned when a nil skill is resolved.
	ErrUnknownSkill = errors.New("unknown skill")
)

// Hit is the outcome of one resolved component set against one target.
type Hit struct {
	Target     *entity.Unit
	Damage     int // HP actually lost
	DamageKind gamedata.DamageKind
	Healed     int // HP actually restored
	MPRestored int
	Applied    []entity.StatusEffect // Status effects attached, in application order
}

// SkillResult describes a resolved skill.
type SkillResult struct {
	Skill  *gamedata.SkillDef
	Caster *entity.Unit
	Hits   []Hit
}

// Targets returns the units the skill resolved against.
func (r SkillResult) Targets() []*entity.Unit {
	targets := make([]*entity.Unit, len(r.Hits))
	for i, h := range r.Hits {
		targets[i] = h.Target
	}
	return targets
}

// DamageAgainst returns the raw damage a skill deals before the target
// mitigates it.
func DamageAgainst(skill *gamedata.SkillDef, caster *entity.Unit) int {
	switch skill.Kind() {
	case gamedata.DamageMagical:
		return skill.Power + caster.Magic()*2
	case gamedata.DamageTrue:
		return skill.Power
	default:
		return skill.Power + caster.Attack()
	}
}

// HealAmount returns the healing a skill restores, or 0 if it does not heal.
func HealAmount(skill *gamedata.SkillDef, caster *entity.Unit) int {
	if skill.HealPower <= 0 {
		return 0
	}
	return skill.HealPower + caster.Magic()
}

// CanCast checks if the caster has enough MP for the skill.
func CanCast(skill *gamedata.SkillDef, caster *entity.Unit) bool {
	if skill == nil {
		return false
	}
	return caster.MP() >= skill.MPCost
}

// PreviewDamage calculates the damage a skill would deal to target without
// applying it. Skills without a damage component preview as 0.
func PreviewDamage(skill *gamedata.SkillDef, caster, target *entity.Unit) int {
	if skill == nil || skill.Power <= 0 || !target.IsAlive() {
		return 0
	}
	return min(target.Mitigate(DamageAgainst(skill, caster), skill.Kind()), target.HP())
}

// PreviewAttack calculates basic attack damage without applying it.
func PreviewAttack(attacker, target *entity.Unit) int {
	if !target.IsAlive() {
		return 0
	}
	return min(target.Mitigate(attacker.Attack(), gamedata.DamagePhysical), target.HP())
}

// Resolve casts skill from caster onto targets. The cast is all-or-nothing:
// on error no MP is spent and no target is touched.
func Resolve(skill *gamedata.SkillDef, caster *entity.Unit, targets []*entity.Unit) (SkillResult, error) {
	if skill == nil {
		return SkillResult{}, ErrUnknownSkill
	}
	if !CanCast(skill, caster) {
		return SkillResult{}, ErrInsufficientMP
	}
	if len(targets) == 0 {
		return SkillResult{}, ErrNoTargets
	}

	caster.SpendMP(skill.MPCost)

	// Raw output is fixed at cast time so self-inflicted modifiers do not
	// change later hits of the same cast.
	raw := DamageAgainst(skill, caster)
	heal := HealAmount(skill, caster)

	result := SkillResult{Skill: skill, Caster: caster, Hits: make([]Hit, 0, len(targets))}
	for _, target := range targets {
		result.Hits = append(result.Hits, resolveHit(skill, raw, heal, target))
	}
	return result, nil
}

func resolveHit(skill *gamedata.SkillDef, raw, heal int, target *entity.Unit) Hit {
	hit := Hit{Target: target}

	if skill.Power > 0 {
		hit.DamageKind = skill.Kind()
		hit.Damage = target.ApplyDamage(raw, hit.DamageKind)
	}
	if heal > 0 {
		hit.Healed = target.Heal(heal)
	}

	if skill.HasStatus() {
		hit.Applied = append(hit.Applied, entity.StatusEffect{
			Kind:      skill.StatusEffect,
			Remaining: skill.StatusDuration,
			Magnitude: skill.StatusPower,
		})
	}
	for _, stat := range gamedata.Stats {
		if delta := skill.BuffStats[stat]; delta > 0 {
			hit.Applied = append(hit.Applied, entity.StatusEffect{
				Kind:      gamedata.BuffOf(stat),
				Remaining: gamedata.StatModifierDuration,
				Magnitude: delta,
			})
		}
	}
	for _, stat := range gamedata.Stats {
		if delta := skill.DebuffStats[stat]; delta > 0 {
			hit.Applied = append(hit.Applied, entity.StatusEffect{
				Kind:      gamedata.DebuffOf(stat),
				Remaining: gamedata.StatModifierDuration,
				Magnitude: delta,
			})
		}
	}
	for _, effect := range hit.Applied {
		target.AddStatusEffect(effect)
	}
	return hit
}

// Attack resolves a basic physical attack using the attacker's attack stat
// as raw power.
func Attack(attacker, target *entity.Unit) Hit {
	return Hit{
		Target:     target,
		DamageKind: gamedata.DamagePhysical,
		Damage:     target.ApplyDamage(attacker.Attack(), gamedata.DamagePhysical),
	}
}

// UseItem applies a consumable to target.
func UseItem(item *gamedata.ItemDef, target *entity.Unit) Hit {
	hit := Hit{Target: target}
	if item.HealHP > 0 {
		hit.Healed = target.Heal(item.HealHP)
	}
	if item.RestoreMP > 0 && target.IsAlive() {
		hit.MPRestored = target.RestoreMP(item.RestoreMP)
	}
	return hit
}

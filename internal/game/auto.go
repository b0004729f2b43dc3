package game

import (
	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// AutoPlayer picks player actions with a fixed policy, so a seeded battle
// played by it always ends the same way:
//
//  1. heal the most wounded ally when one is below half HP
//  2. otherwise use the affordable skill that deals the most total damage,
//     if it beats a basic attack
//  3. otherwise attack the weakest enemy
type AutoPlayer struct{}

// Choose returns the action for the battle's current unit, or nil if no
// player unit may act.
func (AutoPlayer) Choose(b *battle.Battle) battle.Action {
	actor := b.CurrentUnit()
	if actor == nil || !b.CanPlayerAct() {
		return nil
	}

	if a := chooseHeal(b, actor); a != nil {
		return a
	}

	target := entity.Roster(b.ValidTargets(nil)).LowestHP()
	if target == nil {
		return battle.Defend{Unit: actor}
	}

	if a := chooseStrike(b, actor, target); a != nil {
		return a
	}
	return battle.BasicAttack{Unit: actor, Target: target}
}

func chooseHeal(b *battle.Battle, actor *entity.Unit) battle.Action {
	wounded := entity.Roster(b.Players()).LowestHP()
	if wounded == nil || wounded.HP()*2 >= wounded.MaxHP {
		return nil
	}
	for _, s := range actor.Skills {
		if s == nil || s.HealPower <= 0 || !combat.CanCast(s, actor) {
			continue
		}
		pool := entity.Roster(b.ValidTargets(s))
		if !pool.Contains(wounded) {
			continue
		}
		if s.NeedsTarget() {
			return battle.UseSkill{Unit: actor, Skill: s, Targets: []*entity.Unit{wounded}}
		}
		return battle.UseSkill{Unit: actor, Skill: s}
	}
	return nil
}

func chooseStrike(b *battle.Battle, actor, target *entity.Unit) battle.Action {
	var best *gamedata.SkillDef
	bestDamage := combat.PreviewAttack(actor, target)

	for _, s := range actor.Skills {
		if s == nil || s.Power <= 0 || !s.IsOffensive() || !combat.CanCast(s, actor) {
			continue
		}
		damage := expectedDamage(b, s, actor, target)
		if damage > bestDamage {
			best, bestDamage = s, damage
		}
	}
	if best == nil {
		return nil
	}
	if best.NeedsTarget() {
		return battle.UseSkill{Unit: actor, Skill: best, Targets: []*entity.Unit{target}}
	}
	return battle.UseSkill{Unit: actor, Skill: best}
}

// expectedDamage sums a skill's preview over every unit it would hit.
// Random-target skills are valued against the chosen target.
func expectedDamage(b *battle.Battle, s *gamedata.SkillDef, actor, target *entity.Unit) int {
	if s.TargetShape != gamedata.TargetAllEnemies {
		return combat.PreviewDamage(s, actor, target)
	}
	total := 0
	for _, u := range b.ValidTargets(s) {
		total += combat.PreviewDamage(s, actor, u)
	}
	return total
}

package battle

import (
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// AISkillChance is the probability that an enemy with a usable skill casts
// it instead of attacking.
const AISkillChance = 0.3

// decide picks the action for an enemy unit. A skill is usable when it is
// affordable and has at least one legal target.
func (b *Battle) decide(actor *entity.Unit) Action {
	var usable []*gamedata.SkillDef
	for _, skill := range actor.Skills {
		if skill == nil || !combat.CanCast(skill, actor) {
			continue
		}
		if len(combat.Candidates(skill.TargetShape, actor, b.players, b.enemies)) == 0 {
			continue
		}
		usable = append(usable, skill)
	}

	if len(usable) > 0 && b.rng.Float64() < AISkillChance {
		skill := usable[b.rng.Intn(len(usable))]
		return UseSkill{Unit: actor, Skill: skill, Targets: b.aiTargets(actor, skill)}
	}

	targets := b.players.Alive()
	if len(targets) == 0 {
		return BasicAttack{Unit: actor}
	}
	return BasicAttack{Unit: actor, Target: targets[b.rng.Intn(len(targets))]}
}

// aiTargets narrows single_* skills: a random opponent for offensive skills,
// the most wounded ally for supportive ones. Other shapes resolve their own
// targets.
func (b *Battle) aiTargets(actor *entity.Unit, skill *gamedata.SkillDef) []*entity.Unit {
	pool := combat.Candidates(skill.TargetShape, actor, b.players, b.enemies)
	switch skill.TargetShape {
	case gamedata.TargetSingleEnemy:
		return combat.PickRandom(pool, b.rng)
	case gamedata.TargetSingleAlly:
		if lowest := pool.LowestHP(); lowest != nil {
			return []*entity.Unit{lowest}
		}
	}
	return nil
}

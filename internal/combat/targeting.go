package combat

import (
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Rand is the random source used for random-enemy picks and AI choices.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Candidates returns the full legal pool for a target shape. single_* shapes
// return every living candidate; narrowing is the caller's job. random_enemy
// returns the whole living opposing side.
func Candidates(shape gamedata.TargetShape, caster *entity.Unit, players, enemies entity.Roster) entity.Roster {
	allies, opponents := players, enemies
	if caster.Side == entity.SideEnemy {
		allies, opponents = enemies, players
	}

	switch shape {
	case gamedata.TargetSelf:
		if !caster.IsAlive() {
			return nil
		}
		return entity.Roster{caster}
	case gamedata.TargetSingleAlly, gamedata.TargetAllAllies:
		return allies.Alive()
	case gamedata.TargetSingleEnemy, gamedata.TargetAllEnemies, gamedata.TargetRandomEnemy:
		return opponents.Alive()
	default:
		return nil
	}
}

// ValidTargets maps a target shape to the units a skill may resolve against.
// random_enemy yields one uniformly chosen living opponent, or nothing.
func ValidTargets(shape gamedata.TargetShape, caster *entity.Unit, players, enemies entity.Roster, rng Rand) entity.Roster {
	candidates := Candidates(shape, caster, players, enemies)
	if shape == gamedata.TargetRandomEnemy {
		return PickRandom(candidates, rng)
	}
	return candidates
}

// PickRandom returns a one-element roster chosen uniformly, or nil if empty.
func PickRandom(candidates entity.Roster, rng Rand) entity.Roster {
	if len(candidates) == 0 {
		return nil
	}
	return entity.Roster{candidates[rng.Intn(len(candidates))]}
}

// SelectTargets narrows the skill's legal pool to the resolved target list.
// For single_* shapes chosen must hold exactly one unit from the pool; other
// shapes ignore chosen. ok is false when chosen is not a legal selection.
func SelectTargets(skill *gamedata.SkillDef, caster *entity.Unit, chosen []*entity.Unit, players, enemies entity.Roster, rng Rand) (targets entity.Roster, ok bool) {
	if !skill.TargetShape.IsSingle() {
		return ValidTargets(skill.TargetShape, caster, players, enemies, rng), true
	}
	if len(chosen) != 1 {
		return nil, false
	}
	pool := Candidates(skill.TargetShape, caster, players, enemies)
	if !pool.Contains(chosen[0]) {
		return nil, false
	}
	return entity.Roster{chosen[0]}, true
}

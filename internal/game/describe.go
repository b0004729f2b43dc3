package game

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/entity"
)

// Describe turns an engine event into a battle log message. Events with
// nothing worth showing return "".
func Describe(ev battle.Event) string {
	switch e := ev.(type) {
	case battle.BattleStarted:
		return "Combat begins!"
	case battle.PhaseChanged:
		if e.PlayerPhase {
			return fmt.Sprintf("Round %d: your turn.", e.Round)
		}
		return "The enemies act."
	case battle.UnitTurnStarted:
		if e.IsPlayer {
			return fmt.Sprintf("%s is ready.", name(e.Unit))
		}
		return ""
	case battle.Attacked:
		return fmt.Sprintf("%s attacks %s!", name(e.Attacker), name(e.Target))
	case battle.DamageDealt:
		return fmt.Sprintf("%s takes %d damage.", name(e.Target), e.Amount)
	case battle.HealingDone:
		return fmt.Sprintf("%s recovers %d HP.", name(e.Target), e.Amount)
	case battle.MPRestored:
		return fmt.Sprintf("%s recovers %d MP.", name(e.Target), e.Amount)
	case battle.SkillUsed:
		skill := "a skill"
		if e.Skill != nil {
			skill = e.Skill.Name
		}
		return fmt.Sprintf("%s uses %s!", name(e.Caster), skill)
	case battle.ItemUsed:
		item := "an item"
		if e.Item != nil {
			item = e.Item.Name
		}
		if e.Target == nil || e.Target == e.Unit {
			return fmt.Sprintf("%s uses %s.", name(e.Unit), item)
		}
		return fmt.Sprintf("%s uses %s on %s.", name(e.Unit), item, name(e.Target))
	case battle.StatusEffectApplied:
		if e.Effect.IsPositive() {
			return fmt.Sprintf("%s gains %s.", name(e.Target), e.Effect)
		}
		return fmt.Sprintf("%s is afflicted with %s.", name(e.Target), e.Effect)
	case battle.StatusTicked:
		return describeTick(e.Unit, e.Result)
	case battle.UnitDefended:
		return fmt.Sprintf("%s defends.", name(e.Unit))
	case battle.UnitDefeated:
		return fmt.Sprintf("%s is defeated!", name(e.Unit))
	case battle.ActionFailed:
		if e.Unit == nil {
			return "That won't work: " + reasonText(e.Reason) + "."
		}
		return fmt.Sprintf("%s can't do that: %s.", name(e.Unit), reasonText(e.Reason))
	case battle.BattleEnded:
		switch e.Outcome.Result {
		case battle.ResultVictory:
			return "Victory! All enemies defeated!"
		case battle.ResultDefeat:
			return "Your party has been defeated!"
		default:
			return "The party escaped!"
		}
	}
	return ""
}

func describeTick(u *entity.Unit, r entity.EffectResult) string {
	var msg string
	switch {
	case r.Kind.IsDamageOverTime():
		msg = fmt.Sprintf("%s takes %d %s damage.", name(u), r.Magnitude, r.Kind)
	case r.Kind.IsHealOverTime():
		msg = fmt.Sprintf("%s regenerates %d HP.", name(u), r.Magnitude)
	}
	if r.Expired {
		wore := fmt.Sprintf("%s's %s wore off.", name(u), r.Kind)
		if msg == "" {
			return wore
		}
		return msg + " " + wore
	}
	return msg
}

func reasonText(r battle.Reason) string {
	switch r {
	case battle.ReasonNotYourTurn:
		return "it is not their turn"
	case battle.ReasonWrongPhase:
		return "not now"
	case battle.ReasonActorDead:
		return "they are down"
	case battle.ReasonTargetDead:
		return "the target is already down"
	case battle.ReasonInvalidTarget:
		return "invalid target"
	case battle.ReasonInsufficientMP:
		return "not enough MP"
	case battle.ReasonNoTargets:
		return "no targets"
	case battle.ReasonUnknownItem:
		return "no such item"
	case battle.ReasonUnknownSkill:
		return "they don't know that skill"
	case battle.ReasonBattleOver:
		return "the battle is over"
	case battle.ReasonBusy:
		return "still resolving"
	default:
		return string(r)
	}
}

func name(u *entity.Unit) string {
	if u == nil {
		return "Someone"
	}
	return u.Name
}

package battle

import (
	"context"
	"log/slog"
)

// Observer receives events synchronously, in resolution order. Observers
// must not call back into the battle; such calls are rejected as busy.
type Observer func(Event)

// LogObserver writes one structured log line per event.
func LogObserver(logger *slog.Logger) Observer {
	return func(ev Event) {
		attrs := []any{"event", string(ev.Kind())}
		level := slog.LevelDebug

		switch e := ev.(type) {
		case BattleStarted:
			attrs = append(attrs, "players", len(e.Players), "enemies", len(e.Enemies))
			level = slog.LevelInfo
		case PhaseChanged:
			attrs = append(attrs, "phase", e.Phase.String(), "round", e.Round)
		case UnitTurnStarted:
			attrs = append(attrs, "unit", e.Unit.Name, "player", e.IsPlayer)
		case Attacked:
			attrs = append(attrs, "attacker", e.Attacker.Name, "target", e.Target.Name)
		case DamageDealt:
			attrs = append(attrs, "target", e.Target.Name, "amount", e.Amount, "kind", string(e.DamageKind))
		case HealingDone:
			attrs = append(attrs, "target", e.Target.Name, "amount", e.Amount)
		case MPRestored:
			attrs = append(attrs, "target", e.Target.Name, "amount", e.Amount)
		case SkillUsed:
			attrs = append(attrs, "caster", e.Caster.Name, "skill", e.Skill.ID, "targets", len(e.Targets))
		case ItemUsed:
			attrs = append(attrs, "unit", e.Unit.Name, "item", e.Item.ID, "target", e.Target.Name)
		case StatusEffectApplied:
			attrs = append(attrs, "target", e.Target.Name, "effect", string(e.Effect), "duration", e.Duration)
		case StatusTicked:
			attrs = append(attrs, "unit", e.Unit.Name, "effect", string(e.Result.Kind),
				"magnitude", e.Result.Magnitude, "expired", e.Result.Expired)
		case UnitDefended:
			attrs = append(attrs, "unit", e.Unit.Name)
		case UnitDefeated:
			attrs = append(attrs, "unit", e.Unit.Name)
			level = slog.LevelInfo
		case ActionFailed:
			if e.Unit != nil {
				attrs = append(attrs, "unit", e.Unit.Name)
			}
			attrs = append(attrs, "reason", string(e.Reason))
			level = slog.LevelWarn
		case BattleEnded:
			attrs = append(attrs, "result", e.Outcome.Result.String(), "turns", e.Outcome.Turns,
				"experience", e.Outcome.Rewards.Experience, "gold", e.Outcome.Rewards.Gold)
			level = slog.LevelInfo
		}

		logger.Log(context.Background(), level, "battle event", attrs...)
	}
}

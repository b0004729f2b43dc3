package battle

import (
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// EventKind names an event type.
type EventKind string

const (
	KindBattleStarted       EventKind = "battle_started"
	KindPhaseChanged        EventKind = "phase_changed"
	KindUnitTurnStarted     EventKind = "unit_turn_started"
	KindAttacked            EventKind = "attacked"
	KindDamageDealt         EventKind = "damage_dealt"
	KindHealingDone         EventKind = "healing_done"
	KindMPRestored          EventKind = "mp_restored"
	KindSkillUsed           EventKind = "skill_used"
	KindItemUsed            EventKind = "item_used"
	KindStatusEffectApplied EventKind = "status_effect_applied"
	KindStatusTicked        EventKind = "status_ticked"
	KindUnitDefended        EventKind = "unit_defended"
	KindUnitDefeated        EventKind = "unit_defeated"
	KindActionFailed        EventKind = "action_failed"
	KindBattleEnded         EventKind = "battle_ended"
)

// Event is a notification emitted while the battle resolves. Events are
// returned from every engine call in resolution order and are also handed
// to registered observers.
type Event interface {
	Kind() EventKind
}

// BattleStarted is emitted once by Start.
type BattleStarted struct {
	Players []*entity.Unit
	Enemies []*entity.Unit
}

// PhaseChanged is emitted when a player or enemy phase begins.
type PhaseChanged struct {
	Phase       Phase
	PlayerPhase bool
	Round       int
}

// UnitTurnStarted is emitted before a unit may act.
type UnitTurnStarted struct {
	Unit     *entity.Unit
	IsPlayer bool
}

// Attacked is emitted when a unit makes a basic attack, before its damage.
type Attacked struct {
	Attacker *entity.Unit
	Target   *entity.Unit
}

// DamageDealt is emitted for instantaneous damage. Source is nil when no
// unit caused it.
type DamageDealt struct {
	Source     *entity.Unit
	Target     *entity.Unit
	Amount     int
	DamageKind gamedata.DamageKind
}

// HealingDone is emitted for instantaneous healing.
type HealingDone struct {
	Source *entity.Unit
	Target *entity.Unit
	Amount int
}

// MPRestored is emitted when a unit regains MP.
type MPRestored struct {
	Target *entity.Unit
	Amount int
}

// SkillUsed is emitted before the per-target effects of a cast.
type SkillUsed struct {
	Caster  *entity.Unit
	Skill   *gamedata.SkillDef
	Targets []*entity.Unit
}

// ItemUsed is emitted before the effects of a consumed item.
type ItemUsed struct {
	Unit   *entity.Unit
	Item   *gamedata.ItemDef
	Target *entity.Unit
}

// StatusEffectApplied is emitted when a skill attaches a status effect.
type StatusEffectApplied struct {
	Target   *entity.Unit
	Effect   gamedata.StatusKind
	Duration int
}

// StatusTicked is emitted for each status effect resolved at a phase start.
type StatusTicked struct {
	Unit   *entity.Unit
	Result entity.EffectResult
}

// UnitDefended is emitted when a unit takes the defend action.
type UnitDefended struct {
	Unit *entity.Unit
}

// UnitDefeated is emitted exactly once per unit, when it first reaches 0 HP.
type UnitDefeated struct {
	Unit *entity.Unit
}

// ActionFailed is emitted for every rejected or no-op action.
type ActionFailed struct {
	Unit   *entity.Unit // May be nil
	Reason Reason
}

// BattleEnded is emitted once, on the terminal transition.
type BattleEnded struct {
	Outcome Outcome
}

func (BattleStarted) Kind() EventKind       { return KindBattleStarted }
func (PhaseChanged) Kind() EventKind        { return KindPhaseChanged }
func (UnitTurnStarted) Kind() EventKind     { return KindUnitTurnStarted }
func (Attacked) Kind() EventKind            { return KindAttacked }
func (DamageDealt) Kind() EventKind         { return KindDamageDealt }
func (HealingDone) Kind() EventKind         { return KindHealingDone }
func (MPRestored) Kind() EventKind          { return KindMPRestored }
func (SkillUsed) Kind() EventKind           { return KindSkillUsed }
func (ItemUsed) Kind() EventKind            { return KindItemUsed }
func (StatusEffectApplied) Kind() EventKind { return KindStatusEffectApplied }
func (StatusTicked) Kind() EventKind        { return KindStatusTicked }
func (UnitDefended) Kind() EventKind        { return KindUnitDefended }
func (UnitDefeated) Kind() EventKind        { return KindUnitDefeated }
func (ActionFailed) Kind() EventKind        { return KindActionFailed }
func (BattleEnded) Kind() EventKind         { return KindBattleEnded }

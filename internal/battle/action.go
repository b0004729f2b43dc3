package battle

import (
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// ActionKind identifies the variant of an Action.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionSkill
	ActionDefend
	ActionItem
	ActionFlee
)

// String returns a human-readable action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionSkill:
		return "skill"
	case ActionDefend:
		return "defend"
	case ActionItem:
		return "item"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Action is a request for one unit to act. It is one of BasicAttack,
// UseSkill, Defend, UseItem or Flee.
type Action interface {
	Actor() *entity.Unit
	Kind() ActionKind
	action()
}

// BasicAttack hits one opposing unit with the actor's attack stat.
type BasicAttack struct {
	Unit   *entity.Unit
	Target *entity.Unit
}

// UseSkill casts a known skill. Targets must hold exactly one unit for
// single_* skills and is ignored for every other target shape.
type UseSkill struct {
	Unit    *entity.Unit
	Skill   *gamedata.SkillDef
	Targets []*entity.Unit
}

// Defend halves physical damage taken until the actor's next phase.
type Defend struct {
	Unit *entity.Unit
}

// UseItem consumes an item. A nil Target means the actor.
type UseItem struct {
	Unit   *entity.Unit
	ItemID string
	Target *entity.Unit
}

// Flee ends the battle as escaped.
type Flee struct {
	Unit *entity.Unit
}

func (a BasicAttack) Actor() *entity.Unit { return a.Unit }
func (a UseSkill) Actor() *entity.Unit    { return a.Unit }
func (a Defend) Actor() *entity.Unit      { return a.Unit }
func (a UseItem) Actor() *entity.Unit     { return a.Unit }
func (a Flee) Actor() *entity.Unit        { return a.Unit }

func (BasicAttack) Kind() ActionKind { return ActionAttack }
func (UseSkill) Kind() ActionKind    { return ActionSkill }
func (Defend) Kind() ActionKind      { return ActionDefend }
func (UseItem) Kind() ActionKind     { return ActionItem }
func (Flee) Kind() ActionKind        { return ActionFlee }

func (BasicAttack) action() {}
func (UseSkill) action()    {}
func (Defend) action()      {}
func (UseItem) action()     {}
func (Flee) action()        {}

package battle

import (
	"github.com/samdwyer/skirmish/internal/entity"
)

// UnitView is a read-only copy of one unit's state.
type UnitView struct {
	ID         string
	TemplateID string
	Name       string
	Class      string
	Side       entity.Side
	HP, MaxHP  int
	MP, MaxMP  int
	Attack     int
	Defense    int
	Magic      int
	Speed      int
	Defending  bool
	Alive      bool
	Effects    []entity.StatusEffect
	SkillIDs   []string
}

// Snapshot is a read-only view of the battle for presentation layers.
type Snapshot struct {
	ID        string
	Phase     Phase
	Round     int
	Turns     int
	CurrentID string // Empty when nobody may act
	Players   []UnitView
	Enemies   []UnitView
	Outcome   *Outcome
}

// Snapshot copies the current battle state.
func (b *Battle) Snapshot() Snapshot {
	s := Snapshot{
		ID:      b.id,
		Phase:   b.machine.current(),
		Round:   b.rounds,
		Turns:   b.turns,
		Players: viewRoster(b.players),
		Enemies: viewRoster(b.enemies),
	}
	if u := b.CurrentUnit(); u != nil {
		s.CurrentID = u.ID
	}
	if b.outcome != nil {
		o := b.outcome.clone()
		s.Outcome = &o
	}
	return s
}

func viewRoster(r entity.Roster) []UnitView {
	views := make([]UnitView, len(r))
	for i, u := range r {
		views[i] = viewUnit(u)
	}
	return views
}

func viewUnit(u *entity.Unit) UnitView {
	v := UnitView{
		ID:         u.ID,
		TemplateID: u.TemplateID,
		Name:       u.Name,
		Class:      u.Class,
		Side:       u.Side,
		HP:         u.HP(),
		MaxHP:      u.MaxHP,
		MP:         u.MP(),
		MaxMP:      u.MaxMP,
		Attack:     u.Attack(),
		Defense:    u.Defense(),
		Magic:      u.Magic(),
		Speed:      u.Speed(),
		Defending:  u.Defending,
		Alive:      u.IsAlive(),
		Effects:    u.StatusEffects(),
		SkillIDs:   make([]string, len(u.Skills)),
	}
	for i, s := range u.Skills {
		if s != nil {
			v.SkillIDs[i] = s.ID
		}
	}
	return v
}

package entity

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Roster is an ordered list of units on one side.
type Roster []*Unit

// Alive returns the living units in roster order.
func (r Roster) Alive() Roster {
	alive := make(Roster, 0, len(r))
	for _, u := range r {
		if u.IsAlive() {
			alive = append(alive, u)
		}
	}
	return alive
}

// AliveCount returns the number of living units.
func (r Roster) AliveCount() int {
	count := 0
	for _, u := range r {
		if u.IsAlive() {
			count++
		}
	}
	return count
}

// Contains reports whether u is a member of the roster.
func (r Roster) Contains(u *Unit) bool {
	for _, m := range r {
		if m == u {
			return true
		}
	}
	return false
}

// LowestHP returns the living unit with the lowest HP, or nil.
func (r Roster) LowestHP() *Unit {
	var lowest *Unit
	for _, u := range r {
		if u.IsAlive() && (lowest == nil || u.HP() < lowest.HP()) {
			lowest = u
		}
	}
	return lowest
}

// CloneForBattle duplicates every unit with CloneForBattle.
func (r Roster) CloneForBattle() Roster {
	clones := make(Roster, len(r))
	for i, u := range r {
		clones[i] = u.CloneForBattle()
	}
	return clones
}

// TotalHP returns the sum of current HP.
func (r Roster) TotalHP() int {
	total := 0
	for _, u := range r {
		total += u.HP()
	}
	return total
}

// Spawn builds a unit from a catalog template.
func Spawn(catalog *gamedata.Catalog, templateID string, side Side) (*Unit, error) {
	def, skills, err := catalog.UnitTemplate(templateID)
	if err != nil {
		return nil, err
	}
	return NewUnitFromDef(def, side, skills), nil
}

// SpawnParty builds the player roster from template IDs.
func SpawnParty(catalog *gamedata.Catalog, templateIDs []string) (Roster, error) {
	party := make(Roster, 0, len(templateIDs))
	for _, id := range templateIDs {
		u, err := Spawn(catalog, id, SidePlayer)
		if err != nil {
			return nil, fmt.Errorf("party: %w", err)
		}
		party = append(party, u)
	}
	return party, nil
}

// SpawnEncounter builds the enemy roster of an encounter and returns its drop list.
func SpawnEncounter(catalog *gamedata.Catalog, encounterID string) (Roster, []string, error) {
	def, err := catalog.Encounter(encounterID)
	if err != nil {
		return nil, nil, err
	}
	enemies := make(Roster, 0, len(def.EnemyIDs))
	for _, id := range def.EnemyIDs {
		u, err := Spawn(catalog, id, SideEnemy)
		if err != nil {
			return nil, nil, fmt.Errorf("encounter %q: %w", encounterID, err)
		}
		enemies = append(enemies, u)
	}
	labelDuplicates(enemies)
	return enemies, append([]string(nil), def.Drops...), nil
}

// labelDuplicates suffixes repeated names with A, B, C... so log lines stay
// unambiguous.
func labelDuplicates(r Roster) {
	counts := make(map[string]int, len(r))
	for _, u := range r {
		counts[u.Name]++
	}
	seen := make(map[string]int, len(r))
	for _, u := range r {
		if counts[u.Name] < 2 {
			continue
		}
		base := u.Name
		u.Name = fmt.Sprintf("%s %c", base, 'A'+rune(seen[base]))
		seen[base]++
	}
}

package combat

import "github.com/samdwyer/skirmish/internal/entity"

// Tick is one status effect resolving on one unit.
type Tick struct {
	Unit   *entity.Unit
	Result entity.EffectResult
}

// TickAll processes status effects for every living unit, players first and
// then enemies, each in roster order. Units already at 0 HP are skipped.
func TickAll(players, enemies entity.Roster) []Tick {
	var ticks []Tick
	for _, roster := range []entity.Roster{players, enemies} {
		for _, u := range roster {
			if !u.IsAlive() {
				continue
			}
			for _, result := range u.TickStatusEffects() {
				ticks = append(ticks, Tick{Unit: u, Result: result})
			}
		}
	}
	return ticks
}

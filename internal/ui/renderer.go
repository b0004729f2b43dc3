package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// MaxLogLines is how many recent messages the battle screen shows.
const MaxLogLines = 8

// View is everything the battle screen draws.
type View struct {
	Snapshot battle.Snapshot
	Log      []string
	Prompt   string          // Key help or the current menu
	Targets  map[string]bool // Unit IDs selectable in target mode
	Cursor   string          // Highlighted target ID
}

// Span is a run of text in one style.
type Span struct {
	Text  string
	Style tcell.Style
}

// Line is one screen row.
type Line []Span

// String returns the plain text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHeader = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleGood   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBad    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Renderer handles drawing the battle to the screen.
type Renderer struct {
	screen  *Screen
	catalog *gamedata.Catalog
}

// NewRenderer creates a new renderer for the given screen. catalog supplies
// unit colours and skill names.
func NewRenderer(screen *Screen, catalog *gamedata.Catalog) *Renderer {
	return &Renderer{screen: screen, catalog: catalog}
}

// Render draws the battle view to the screen.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	for y, line := range r.Layout(v) {
		x := 0
		for _, span := range line {
			x = r.screen.DrawText(x, y, span.Text, span.Style)
		}
	}
	r.screen.Show()
}

// Layout builds the screen rows for v without drawing them.
func (r *Renderer) Layout(v View) []Line {
	s := v.Snapshot
	lines := []Line{
		{{Text: fmt.Sprintf("Round %d  %s", s.Round, s.Phase), Style: styleHeader}},
		nil,
		{{Text: "Enemies", Style: styleHeader}},
	}
	for _, u := range s.Enemies {
		lines = append(lines, r.unitLine(u, v))
	}
	lines = append(lines, nil, Line{{Text: "Party", Style: styleHeader}})
	for _, u := range s.Players {
		lines = append(lines, r.unitLine(u, v))
	}
	lines = append(lines, nil)

	if s.Outcome != nil {
		lines = append(lines, outcomeLine(*s.Outcome))
	} else if current := findView(s.Players, s.CurrentID); current != nil {
		lines = append(lines, r.skillLine(*current))
	}
	if v.Prompt != "" {
		lines = append(lines, Line{{Text: v.Prompt, Style: styleDim}})
	}
	lines = append(lines, nil)

	log := v.Log
	if len(log) > MaxLogLines {
		log = log[len(log)-MaxLogLines:]
	}
	for _, msg := range log {
		lines = append(lines, Line{{Text: msg, Style: styleText}})
	}
	return lines
}

func (r *Renderer) unitLine(u battle.UnitView, v View) Line {
	marker := "  "
	switch {
	case u.ID == v.Cursor:
		marker = "> "
	case u.ID == v.Snapshot.CurrentID:
		marker = "* "
	}

	symbol, color := "?", tcell.ColorWhite
	if r.catalog != nil {
		if def := r.catalog.Units.GetByID(u.TemplateID); def != nil {
			symbol, color = string(def.SymbolRune()), def.TCellColor()
		}
	}

	style := tcell.StyleDefault.Foreground(color)
	if !u.Alive {
		style = styleDim
	} else if v.Targets != nil && !v.Targets[u.ID] {
		style = style.Dim(true)
	}

	stats := fmt.Sprintf("HP %3d/%-3d  MP %2d/%-2d", u.HP, u.MaxHP, u.MP, u.MaxMP)
	line := Line{
		{Text: marker, Style: styleHeader},
		{Text: symbol + " ", Style: style.Bold(true)},
		{Text: fmt.Sprintf("%-12s ", u.Name), Style: style},
		{Text: stats, Style: style},
	}
	if u.Defending {
		line = append(line, Span{Text: "  DEF", Style: styleGood})
	}
	if !u.Alive {
		line = append(line, Span{Text: "  KO", Style: styleBad})
	}
	for _, e := range u.Effects {
		st := styleBad
		if e.Kind.IsPositive() {
			st = styleGood
		}
		line = append(line, Span{Text: fmt.Sprintf("  %s(%d)", e.Kind, e.Remaining), Style: st})
	}
	return line
}

func (r *Renderer) skillLine(u battle.UnitView) Line {
	parts := make([]string, 0, len(u.SkillIDs))
	for i, id := range u.SkillIDs {
		if id == "" {
			continue
		}
		name, cost := id, 0
		if r.catalog != nil {
			if def := r.catalog.Skills.GetByID(id); def != nil {
				name, cost = def.Name, def.MPCost
			}
		}
		parts = append(parts, fmt.Sprintf("%d %s (%d MP)", i+1, name, cost))
	}
	return Line{{Text: strings.Join(parts, "  "), Style: styleText}}
}

func outcomeLine(o battle.Outcome) Line {
	switch o.Result {
	case battle.ResultVictory:
		text := fmt.Sprintf("Victory! +%d exp  +%d gold", o.Rewards.Experience, o.Rewards.Gold)
		if len(o.Rewards.Items) > 0 {
			text += "  found " + strings.Join(o.Rewards.Items, ", ")
		}
		return Line{{Text: text, Style: styleGood}}
	case battle.ResultDefeat:
		return Line{{Text: "Your party has been defeated!", Style: styleBad}}
	default:
		return Line{{Text: "You fled the battle.", Style: styleHeader}}
	}
}

func findView(views []battle.UnitView, id string) *battle.UnitView {
	if id == "" {
		return nil
	}
	for i := range views {
		if views[i].ID == id && views[i].Side == entity.SidePlayer {
			return &views[i]
		}
	}
	return nil
}

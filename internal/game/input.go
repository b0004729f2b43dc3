package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/ui"
)

const (
	promptCommand = "a attack  1-9 skill  d defend  h health potion  m mana potion  f flee  q quit"
	promptTarget  = "arrows choose target  enter confirm  esc back"
	promptOver    = "q quit"
)

// menu is a command waiting for its target.
type menu struct {
	kind    battle.ActionKind
	skill   *gamedata.SkillDef
	itemID  string
	targets []*entity.Unit
	index   int
}

func (m menu) target() *entity.Unit {
	if m.index < 0 || m.index >= len(m.targets) {
		return nil
	}
	return m.targets[m.index]
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyEscape:
		if g.state == StateTarget {
			g.state = StateCommand
			g.menu = menu{}
			return
		}
		g.running = false
		return
	}
	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
		g.running = false
		return
	}

	switch g.state {
	case StateCommand:
		g.handleCommand(ctx, ev)
	case StateTarget:
		g.handleTarget(ctx, ev)
	}
}

func (g *Game) handleCommand(ctx context.Context, ev *tcell.EventKey) {
	actor := g.battle.CurrentUnit()
	if ev.Key() != tcell.KeyRune || actor == nil || !g.battle.CanPlayerAct() {
		return
	}

	switch r := ev.Rune(); {
	case r == 'a':
		g.beginTargeting(ctx, menu{kind: battle.ActionAttack, targets: g.battle.ValidTargets(nil)})
	case r >= '1' && r <= '9':
		slot := int(r - '1')
		if slot >= len(actor.Skills) {
			return
		}
		skill := actor.Skills[slot]
		if skill == nil {
			return
		}
		if !skill.NeedsTarget() {
			g.submit(ctx, battle.UseSkill{Unit: actor, Skill: skill})
			return
		}
		g.beginTargeting(ctx, menu{kind: battle.ActionSkill, skill: skill, targets: g.battle.ValidTargets(skill)})
	case r == 'd':
		g.submit(ctx, battle.Defend{Unit: actor})
	case r == 'h':
		g.beginItem(ctx, actor, "health_potion")
	case r == 'm':
		g.beginItem(ctx, actor, "mana_potion")
	case r == 'f':
		g.submit(ctx, battle.Flee{Unit: actor})
	}
}

// beginItem targets the user first, then the other living allies.
func (g *Game) beginItem(ctx context.Context, actor *entity.Unit, itemID string) {
	targets := entity.Roster(g.battle.Players()).Alive()
	m := menu{kind: battle.ActionItem, itemID: itemID, targets: targets}
	for i, u := range targets {
		if u == actor {
			m.index = i
		}
	}
	g.beginTargeting(ctx, m)
}

// beginTargeting enters target mode. With no candidates the command is
// submitted untargeted and the engine reports why it cannot resolve.
func (g *Game) beginTargeting(ctx context.Context, m menu) {
	if len(m.targets) == 0 {
		g.submit(ctx, g.buildAction(m))
		return
	}
	g.menu = m
	g.state = StateTarget
}

func (g *Game) handleTarget(ctx context.Context, ev *tcell.EventKey) {
	n := len(g.menu.targets)
	switch ev.Key() {
	case tcell.KeyLeft, tcell.KeyUp:
		g.menu.index = (g.menu.index - 1 + n) % n
	case tcell.KeyRight, tcell.KeyDown, tcell.KeyTab:
		g.menu.index = (g.menu.index + 1) % n
	case tcell.KeyEnter:
		g.submit(ctx, g.buildAction(g.menu))
	}
}

func (g *Game) buildAction(m menu) battle.Action {
	actor := g.battle.CurrentUnit()
	target := m.target()
	switch m.kind {
	case battle.ActionSkill:
		var targets []*entity.Unit
		if target != nil {
			targets = []*entity.Unit{target}
		}
		return battle.UseSkill{Unit: actor, Skill: m.skill, Targets: targets}
	case battle.ActionItem:
		return battle.UseItem{Unit: actor, ItemID: m.itemID, Target: target}
	default:
		return battle.BasicAttack{Unit: actor, Target: target}
	}
}

func (g *Game) submit(ctx context.Context, action battle.Action) {
	events, err := g.battle.Submit(ctx, action)
	if err != nil {
		g.logger.Debug("action rejected", "action", action.Kind().String(), "error", err)
	}
	g.afterSubmit(ctx, events)
}

// view assembles what the renderer draws.
func (g *Game) view() ui.View {
	v := ui.View{Snapshot: g.battle.Snapshot(), Log: g.log}
	switch g.state {
	case StateTarget:
		v.Prompt = promptTarget
		v.Targets = make(map[string]bool, len(g.menu.targets))
		for _, u := range g.menu.targets {
			v.Targets[u.ID] = true
		}
		if t := g.menu.target(); t != nil {
			v.Cursor = t.ID
		}
	case StateOver:
		v.Prompt = promptOver
	default:
		v.Prompt = promptCommand
	}
	return v
}

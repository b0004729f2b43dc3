// Package battle runs one turn-based battle between a player roster and an
// enemy roster.
//
// The engine is single-threaded and call-driven. Start opens the first
// player phase; each Submit resolves one player action and, when the player
// phase is exhausted, runs the whole enemy phase before returning. Every call
// returns the events it produced, in resolution order, and hands the same
// events to registered observers.
package battle

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

// Battle holds the battle-scoped rosters and turn state.
type Battle struct {
	id         string
	players    entity.Roster
	enemies    entity.Roster
	enemyCount int
	drops      []string

	machine *phaseMachine
	cursor  int
	acting  *entity.Unit
	turns   int
	rounds  int
	outcome *Outcome

	rng       combat.Rand
	items     *gamedata.ItemRegistry
	logger    *slog.Logger
	tracer    trace.Tracer
	observers []Observer

	pending []Event
	busy    bool
}

// New creates a battle from copies of the given rosters. The caller's units
// are never mutated.
func New(players, enemies []*entity.Unit, opts ...Option) (*Battle, error) {
	if len(players) == 0 || len(enemies) == 0 {
		return nil, ErrEmptyRoster
	}
	for _, u := range append(append([]*entity.Unit(nil), players...), enemies...) {
		if u == nil {
			return nil, errors.New("battle: nil unit in roster")
		}
	}

	b := &Battle{
		id:         uuid.NewString(),
		players:    entity.Roster(players).CloneForBattle(),
		enemies:    entity.Roster(enemies).CloneForBattle(),
		enemyCount: len(enemies),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     slog.New(slog.DiscardHandler),
		tracer:     telemetry.Tracer("battle"),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.items == nil {
		b.items = gamedata.MustLoadItemRegistry()
	}
	for _, u := range b.players {
		u.Side = entity.SidePlayer
	}
	for _, u := range b.enemies {
		u.Side = entity.SideEnemy
	}
	b.logger = b.logger.With("battle_id", b.id)
	b.machine = newPhaseMachine(b.logger)
	return b, nil
}

// ID returns the battle's unique identifier.
func (b *Battle) ID() string { return b.id }

// Phase returns the current phase.
func (b *Battle) Phase() Phase { return b.machine.current() }

// Players returns the battle-scoped player units in roster order.
func (b *Battle) Players() []*entity.Unit { return append([]*entity.Unit(nil), b.players...) }

// Enemies returns the battle-scoped enemy units in roster order.
func (b *Battle) Enemies() []*entity.Unit { return append([]*entity.Unit(nil), b.enemies...) }

// Turns returns the number of actions resolved so far.
func (b *Battle) Turns() int { return b.turns }

// Round returns the number of player phases entered so far.
func (b *Battle) Round() int { return b.rounds }

// Outcome returns the terminal outcome once the battle has ended.
func (b *Battle) Outcome() (Outcome, bool) {
	if b.outcome == nil {
		return Outcome{}, false
	}
	return b.outcome.clone(), true
}

// CurrentUnit returns the unit whose turn it is, or nil.
func (b *Battle) CurrentUnit() *entity.Unit {
	switch b.machine.current() {
	case PhasePlayer:
		if alive := b.players.Alive(); b.cursor < len(alive) {
			return alive[b.cursor]
		}
	case PhaseEnemy:
		if alive := b.enemies.Alive(); b.cursor < len(alive) {
			return alive[b.cursor]
		}
	case PhaseAnimating:
		return b.acting
	}
	return nil
}

// CanPlayerAct reports whether Submit would accept an action from the
// current unit.
func (b *Battle) CanPlayerAct() bool {
	return !b.busy && b.machine.current() == PhasePlayer && b.CurrentUnit() != nil
}

// ValidTargets returns the legal target pool of skill for the current unit.
// A nil skill means a basic attack.
func (b *Battle) ValidTargets(skill *gamedata.SkillDef) []*entity.Unit {
	actor := b.CurrentUnit()
	if actor == nil {
		return nil
	}
	if skill == nil {
		return b.opponentsOf(actor).Alive()
	}
	return combat.Candidates(skill.TargetShape, actor, b.players, b.enemies)
}

// Start opens the battle and enters the first player phase.
func (b *Battle) Start(ctx context.Context) ([]Event, error) {
	if b.busy {
		return nil, ErrBusy
	}
	if b.machine.current() != PhaseSetup {
		return nil, ErrAlreadyStarted
	}

	b.busy = true
	defer func() { b.busy = false }()
	b.pending = nil

	ctx, span := b.tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.Int("party_size", len(b.players)),
		attribute.Int("enemy_count", len(b.enemies)),
	)
	defer span.End()

	b.logger.Info("battle started", "players", len(b.players), "enemies", len(b.enemies))
	b.emit(BattleStarted{Players: b.Players(), Enemies: b.Enemies()})
	b.transition(ctx, eventBegin)
	b.startPlayerPhase(ctx)

	return b.drain(), nil
}

// Submit resolves one player action. Rejected actions return an
// *ActionError and leave the battle unchanged, apart from ReasonNoTargets,
// which consumes the actor's turn. When the action ends the player phase,
// the enemy phase runs before Submit returns.
func (b *Battle) Submit(ctx context.Context, action Action) ([]Event, error) {
	if b.busy {
		var actor *entity.Unit
		if action != nil {
			actor = action.Actor()
		}
		err := reject(ReasonBusy, nameOf(actor), "battle is resolving another call")
		return []Event{ActionFailed{Unit: actor, Reason: ReasonBusy}}, err
	}

	b.busy = true
	defer func() { b.busy = false }()
	b.pending = nil

	err := b.submit(ctx, action)
	return b.drain(), err
}

func (b *Battle) submit(ctx context.Context, action Action) error {
	var actor *entity.Unit
	if action != nil {
		actor = action.Actor()
	}

	phase := b.machine.current()
	switch {
	case phase.IsTerminal():
		return b.fail(actor, reject(ReasonBattleOver, nameOf(actor), "battle ended in %s", phase))
	case phase != PhasePlayer:
		return b.fail(actor, reject(ReasonWrongPhase, nameOf(actor), "phase is %s", phase))
	case actor == nil || !b.players.Contains(actor):
		return b.fail(actor, reject(ReasonNotYourTurn, nameOf(actor), "not a player unit of this battle"))
	case !actor.IsAlive():
		return b.fail(actor, reject(ReasonActorDead, actor.Name, ""))
	case actor != b.CurrentUnit():
		return b.fail(actor, reject(ReasonNotYourTurn, actor.Name, "waiting for %s", nameOf(b.CurrentUnit())))
	}

	ctx, span := b.tracer.Start(ctx, "battle.action")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("actor", actor.Name),
		attribute.String("action", action.Kind().String()),
		attribute.Int("turn", b.turns),
	)
	defer span.End()

	if _, ok := action.(Flee); ok {
		b.turns++
		b.logger.Info("party fled", "actor", actor.Name)
		b.finish(ctx, ResultEscaped, eventFlee)
		return nil
	}

	exec, aerr := b.prepare(actor, action)
	if aerr != nil && aerr.Reason != ReasonNoTargets {
		span.SetAttributes(attribute.Bool("failed", true), attribute.String("reason", string(aerr.Reason)))
		return b.fail(actor, aerr)
	}

	b.resolve(ctx, actor, exec, aerr)
	if b.ended() {
		return errOrNil(aerr)
	}

	b.cursor++
	if b.cursor < b.players.AliveCount() {
		b.transition(ctx, eventToPlayer)
		b.announceTurn()
		return errOrNil(aerr)
	}

	b.transition(ctx, eventToEnemy)
	b.runEnemyPhase(ctx)
	return errOrNil(aerr)
}

// resolve runs a validated action inside the animating phase. A no-target
// action is reported and consumes the turn.
func (b *Battle) resolve(ctx context.Context, actor *entity.Unit, exec func(), aerr *ActionError) {
	b.transition(ctx, eventAct)
	b.acting = actor
	if aerr != nil {
		b.emit(ActionFailed{Unit: actor, Reason: aerr.Reason})
	} else {
		exec()
	}
	b.turns++
	b.acting = nil
	b.checkEnd(ctx)
}

// prepare validates an action without mutating anything and returns the
// closure that applies it.
func (b *Battle) prepare(actor *entity.Unit, action Action) (func(), *ActionError) {
	switch a := action.(type) {
	case BasicAttack:
		return b.prepareAttack(actor, a)
	case UseSkill:
		return b.prepareSkill(actor, a)
	case Defend:
		return func() {
			actor.Defend()
			b.emit(UnitDefended{Unit: actor})
		}, nil
	case UseItem:
		return b.prepareItem(actor, a)
	default:
		return nil, reject(ReasonInvalidTarget, actor.Name, "unsupported action %T", action)
	}
}

func (b *Battle) prepareAttack(actor *entity.Unit, a BasicAttack) (func(), *ActionError) {
	target := a.Target
	switch {
	case target == nil:
		if len(b.opponentsOf(actor).Alive()) == 0 {
			return nil, reject(ReasonNoTargets, actor.Name, "")
		}
		return nil, reject(ReasonInvalidTarget, actor.Name, "attack needs a target")
	case !b.opponentsOf(actor).Contains(target):
		return nil, reject(ReasonInvalidTarget, actor.Name, "%s is not an opponent", target.Name)
	case !target.IsAlive():
		return nil, reject(ReasonTargetDead, actor.Name, "%s is already defeated", target.Name)
	}

	return func() {
		b.emit(Attacked{Attacker: actor, Target: target})
		hit := combat.Attack(actor, target)
		b.emit(DamageDealt{Source: actor, Target: target, Amount: hit.Damage, DamageKind: hit.DamageKind})
	}, nil
}

func (b *Battle) prepareSkill(actor *entity.Unit, a UseSkill) (func(), *ActionError) {
	skill := a.Skill
	switch {
	case skill == nil:
		return nil, reject(ReasonUnknownSkill, actor.Name, "no skill given")
	case !knowsSkill(actor, skill):
		return nil, reject(ReasonUnknownSkill, actor.Name, "%s does not know %s", actor.Name, skill.ID)
	case !combat.CanCast(skill, actor):
		return nil, reject(ReasonInsufficientMP, actor.Name, "%s needs %d MP, has %d", skill.ID, skill.MPCost, actor.MP())
	}

	var targets entity.Roster
	if skill.TargetShape.IsSingle() {
		if len(a.Targets) == 1 && a.Targets[0] != nil && !a.Targets[0].IsAlive() {
			return nil, reject(ReasonTargetDead, actor.Name, "%s is already defeated", a.Targets[0].Name)
		}
		selected, ok := combat.SelectTargets(skill, actor, a.Targets, b.players, b.enemies, b.rng)
		if !ok {
			if len(combat.Candidates(skill.TargetShape, actor, b.players, b.enemies)) == 0 {
				return nil, reject(ReasonNoTargets, actor.Name, "%s has no legal targets", skill.ID)
			}
			return nil, reject(ReasonInvalidTarget, actor.Name, "%s needs one %s target", skill.ID, skill.TargetShape)
		}
		targets = selected
	} else {
		targets = combat.ValidTargets(skill.TargetShape, actor, b.players, b.enemies, b.rng)
	}
	if len(targets) == 0 {
		return nil, reject(ReasonNoTargets, actor.Name, "%s has no legal targets", skill.ID)
	}

	return func() {
		result, err := combat.Resolve(skill, actor, targets)
		if err != nil {
			// Validated above; reaching this means the rosters changed underneath us.
			b.logger.Error("skill resolution failed", "skill", skill.ID, "error", err)
			b.emit(ActionFailed{Unit: actor, Reason: ReasonNoTargets})
			return
		}
		b.emit(SkillUsed{Caster: actor, Skill: skill, Targets: result.Targets()})
		for _, hit := range result.Hits {
			if skill.Power > 0 {
				b.emit(DamageDealt{Source: actor, Target: hit.Target, Amount: hit.Damage, DamageKind: hit.DamageKind})
			}
			if skill.HealPower > 0 {
				b.emit(HealingDone{Source: actor, Target: hit.Target, Amount: hit.Healed})
			}
			for _, effect := range hit.Applied {
				b.emit(StatusEffectApplied{Target: hit.Target, Effect: effect.Kind, Duration: effect.Remaining})
			}
		}
	}, nil
}

func (b *Battle) prepareItem(actor *entity.Unit, a UseItem) (func(), *ActionError) {
	item := b.items.GetByID(a.ItemID)
	if item == nil {
		return nil, reject(ReasonUnknownItem, actor.Name, "no item %q", a.ItemID)
	}
	target := a.Target
	if target == nil {
		target = actor
	}
	switch {
	case !b.alliesOf(actor).Contains(target):
		return nil, reject(ReasonInvalidTarget, actor.Name, "%s is not an ally", target.Name)
	case !target.IsAlive():
		return nil, reject(ReasonTargetDead, actor.Name, "%s is already defeated", target.Name)
	}

	return func() {
		b.emit(ItemUsed{Unit: actor, Item: item, Target: target})
		hit := combat.UseItem(item, target)
		if item.HealHP > 0 {
			b.emit(HealingDone{Source: actor, Target: target, Amount: hit.Healed})
		}
		if item.RestoreMP > 0 {
			b.emit(MPRestored{Target: target, Amount: hit.MPRestored})
		}
	}, nil
}

// startPlayerPhase resets the cursor and defending flags, ticks status
// effects and announces the first unit.
func (b *Battle) startPlayerPhase(ctx context.Context) {
	b.rounds++
	ctx, span := b.tracer.Start(ctx, "battle.phase")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("phase", string(PhasePlayer)),
		attribute.Int("round", b.rounds),
	)
	defer span.End()

	b.cursor = 0
	for _, u := range b.players {
		u.ResetForPhase()
	}
	b.emit(PhaseChanged{Phase: PhasePlayer, PlayerPhase: true, Round: b.rounds})
	b.tickStatuses()
	if b.checkEnd(ctx) {
		return
	}
	b.announceTurn()
}

// runEnemyPhase lets every living enemy act once via the AI, then hands
// control back to the players.
func (b *Battle) runEnemyPhase(ctx context.Context) {
	phaseCtx, span := b.tracer.Start(ctx, "battle.phase")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("phase", string(PhaseEnemy)),
		attribute.Int("round", b.rounds),
	)
	if !b.enemyTurns(phaseCtx) {
		span.End()
		return
	}
	span.End()

	b.transition(ctx, eventToPlayer)
	b.startPlayerPhase(ctx)
}

// enemyTurns resolves one action per living enemy. It returns false if the
// battle ended during the phase.
func (b *Battle) enemyTurns(ctx context.Context) bool {
	b.cursor = 0
	for _, u := range b.enemies {
		u.ResetForPhase()
	}
	b.emit(PhaseChanged{Phase: PhaseEnemy, PlayerPhase: false, Round: b.rounds})
	b.tickStatuses()
	if b.checkEnd(ctx) {
		return false
	}

	for b.cursor < b.enemies.AliveCount() {
		actor := b.enemies.Alive()[b.cursor]
		b.emit(UnitTurnStarted{Unit: actor, IsPlayer: false})

		exec, aerr := b.prepare(actor, b.decide(actor))
		if aerr != nil {
			b.logger.Debug("enemy action skipped", "actor", actor.Name, "reason", string(aerr.Reason))
		}
		b.resolve(ctx, actor, exec, aerr)
		if b.ended() {
			return false
		}

		b.cursor++
		if b.cursor < b.enemies.AliveCount() {
			b.transition(ctx, eventToEnemy)
		}
	}
	return true
}

func (b *Battle) tickStatuses() {
	for _, tick := range combat.TickAll(b.players, b.enemies) {
		b.emit(StatusTicked{Unit: tick.Unit, Result: tick.Result})
	}
}

func (b *Battle) announceTurn() {
	if u := b.CurrentUnit(); u != nil {
		b.emit(UnitTurnStarted{Unit: u, IsPlayer: true})
	}
}

// checkEnd reports new defeats and ends the battle if a side is wiped out.
// Defeat is checked before victory.
func (b *Battle) checkEnd(ctx context.Context) bool {
	for _, roster := range []entity.Roster{b.players, b.enemies} {
		for _, u := range roster {
			if u.ConsumeDefeat() {
				b.emit(UnitDefeated{Unit: u})
			}
		}
	}

	switch {
	case b.ended():
		return true
	case b.players.AliveCount() == 0:
		b.finish(ctx, ResultDefeat, eventLose)
		return true
	case b.enemies.AliveCount() == 0:
		b.finish(ctx, ResultVictory, eventWin)
		return true
	}
	return false
}

func (b *Battle) finish(ctx context.Context, result Result, event string) {
	b.transition(ctx, event)

	outcome := Outcome{Result: result, Turns: b.turns, Rounds: b.rounds}
	if result == ResultVictory {
		outcome.Rewards = CalculateRewards(b.enemyCount, b.drops)
	}
	b.outcome = &outcome

	_, span := b.tracer.Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("outcome", result.String()),
		attribute.Int("turns_taken", b.turns),
		attribute.Int("party_hp_remaining", b.players.TotalHP()),
		attribute.Int("experience", outcome.Rewards.Experience),
	)
	span.End()

	b.logger.Info("battle ended", "result", result.String(), "turns", b.turns, "rounds", b.rounds)
	b.emit(BattleEnded{Outcome: outcome})
}

func (b *Battle) ended() bool {
	return b.outcome != nil
}

func (b *Battle) transition(ctx context.Context, event string) {
	if err := b.machine.fire(ctx, event); err != nil {
		b.logger.Error("phase transition rejected", "event", event, "phase", b.machine.current().String(), "error", err)
	}
}

func (b *Battle) fail(actor *entity.Unit, err *ActionError) error {
	b.logger.Debug("action rejected", "actor", nameOf(actor), "reason", string(err.Reason), "detail", err.Detail)
	b.emit(ActionFailed{Unit: actor, Reason: err.Reason})
	return err
}

func (b *Battle) emit(ev Event) {
	b.pending = append(b.pending, ev)
	for _, o := range b.observers {
		o(ev)
	}
}

func (b *Battle) drain() []Event {
	events := b.pending
	b.pending = nil
	return events
}

func (b *Battle) alliesOf(u *entity.Unit) entity.Roster {
	if u.Side == entity.SideEnemy {
		return b.enemies
	}
	return b.players
}

func (b *Battle) opponentsOf(u *entity.Unit) entity.Roster {
	if u.Side == entity.SideEnemy {
		return b.players
	}
	return b.enemies
}

func knowsSkill(u *entity.Unit, skill *gamedata.SkillDef) bool {
	for _, s := range u.Skills {
		if s == nil {
			continue
		}
		if s == skill || s.ID == skill.ID {
			return true
		}
	}
	return false
}

func nameOf(u *entity.Unit) string {
	if u == nil {
		return ""
	}
	return u.Name
}

// errOrNil avoids returning a typed nil as a non-nil error.
func errOrNil(err *ActionError) error {
	if err == nil {
		return nil
	}
	return err
}

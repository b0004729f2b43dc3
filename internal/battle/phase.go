package battle

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"
)

// Phase is a state of the battle state machine.
type Phase string

const (
	PhaseSetup     Phase = "setup"
	PhasePlayer    Phase = "player_phase"
	PhaseAnimating Phase = "animating" // Transient, while one action resolves
	PhaseEnemy     Phase = "enemy_phase"
	PhaseVictory   Phase = "victory"
	PhaseDefeat    Phase = "defeat"
	PhaseEscaped   Phase = "escaped"
)

// IsTerminal reports whether no further actions are accepted.
func (p Phase) IsTerminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseEscaped
}

// String returns the phase name.
func (p Phase) String() string { return string(p) }

// State machine events.
const (
	eventBegin    = "begin"
	eventAct      = "act"
	eventToPlayer = "to_player"
	eventToEnemy  = "to_enemy"
	eventWin      = "win"
	eventLose     = "lose"
	eventFlee     = "flee"
)

// phaseMachine wraps the fsm with the battle's transition table.
//
//	setup ──begin──▶ player_phase ──act──▶ animating ──to_player──▶ player_phase
//	                 enemy_phase  ──act──▶ animating ──to_enemy───▶ enemy_phase
//	any live phase ──win|lose──▶ victory|defeat
//	player_phase|animating ──flee──▶ escaped
type phaseMachine struct {
	fsm *fsm.FSM
}

func newPhaseMachine(logger *slog.Logger) *phaseMachine {
	live := []string{string(PhasePlayer), string(PhaseAnimating), string(PhaseEnemy)}

	f := fsm.NewFSM(
		string(PhaseSetup),
		fsm.Events{
			{Name: eventBegin, Src: []string{string(PhaseSetup)}, Dst: string(PhasePlayer)},
			{Name: eventAct, Src: []string{string(PhasePlayer), string(PhaseEnemy)}, Dst: string(PhaseAnimating)},
			{Name: eventToPlayer, Src: []string{string(PhaseAnimating)}, Dst: string(PhasePlayer)},
			{Name: eventToEnemy, Src: []string{string(PhaseAnimating)}, Dst: string(PhaseEnemy)},
			{Name: eventWin, Src: live, Dst: string(PhaseVictory)},
			{Name: eventLose, Src: live, Dst: string(PhaseDefeat)},
			{Name: eventFlee, Src: []string{string(PhasePlayer), string(PhaseAnimating)}, Dst: string(PhaseEscaped)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("phase transition", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)
	return &phaseMachine{fsm: f}
}

// current returns the current phase.
func (m *phaseMachine) current() Phase {
	return Phase(m.fsm.Current())
}

// fire triggers a transition.
func (m *phaseMachine) fire(ctx context.Context, event string) error {
	return m.fsm.Event(ctx, event)
}

// can reports whether event is legal from the current phase.
func (m *phaseMachine) can(event string) bool {
	return m.fsm.Can(event)
}

package battle

import (
	"errors"
	"fmt"
)

// Reason is the machine-readable cause of a rejected or failed action.
type Reason string

const (
	ReasonNotYourTurn    Reason = "not_your_turn"
	ReasonWrongPhase     Reason = "wrong_phase"
	ReasonActorDead      Reason = "actor_dead"
	ReasonTargetDead     Reason = "target_dead"
	ReasonInvalidTarget  Reason = "invalid_target"
	ReasonInsufficientMP Reason = "insufficient_mp"
	ReasonNoTargets      Reason = "no_targets"
	ReasonUnknownItem    Reason = "unknown_item"
	ReasonUnknownSkill   Reason = "unknown_skill"
	ReasonBattleOver     Reason = "battle_over"
	ReasonBusy           Reason = "busy"
)

// ActionError reports a rejected action. Rejections never change battle
// state, except ReasonNoTargets which consumes the actor's turn.
type ActionError struct {
	Reason Reason
	Actor  string // Name of the acting unit, if known
	Detail string
}

func (e *ActionError) Error() string {
	msg := string(e.Reason)
	if e.Actor != "" {
		msg = e.Actor + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return "action failed: " + msg
}

// Is matches any *ActionError with the same Reason, so sentinel errors work
// with errors.Is.
func (e *ActionError) Is(target error) bool {
	var other *ActionError
	if !errors.As(target, &other) {
		return false
	}
	return other.Reason == e.Reason
}

// Sentinels for errors.Is.
var (
	ErrNotYourTurn    = &ActionError{Reason: ReasonNotYourTurn}
	ErrWrongPhase     = &ActionError{Reason: ReasonWrongPhase}
	ErrActorDead      = &ActionError{Reason: ReasonActorDead}
	ErrTargetDead     = &ActionError{Reason: ReasonTargetDead}
	ErrInvalidTarget  = &ActionError{Reason: ReasonInvalidTarget}
	ErrInsufficientMP = &ActionError{Reason: ReasonInsufficientMP}
	ErrNoTargets      = &ActionError{Reason: ReasonNoTargets}
	ErrUnknownItem    = &ActionError{Reason: ReasonUnknownItem}
	ErrUnknownSkill   = &ActionError{Reason: ReasonUnknownSkill}
	ErrBattleOver     = &ActionError{Reason: ReasonBattleOver}
	ErrBusy           = &ActionError{Reason: ReasonBusy}
)

// Construction and lifecycle errors.
var (
	ErrEmptyRoster    = errors.New("battle: both sides need at least one unit")
	ErrAlreadyStarted = errors.New("battle: already started")
)

func reject(reason Reason, actor string, format string, args ...any) *ActionError {
	return &ActionError{Reason: reason, Actor: actor, Detail: fmt.Sprintf(format, args...)}
}

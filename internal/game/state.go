// Package game runs one battle session, interactively in a terminal or
// headless, and records its outcome.
package game

// State represents the current input mode.
type State int

const (
	// StateCommand waits for the current unit's command.
	StateCommand State = iota
	// StateTarget cycles through the targets of a chosen command.
	StateTarget
	// StateOver shows the outcome until the player quits.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCommand:
		return "command"
	case StateTarget:
		return "target"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

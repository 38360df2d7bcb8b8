package states

import "fmt"

// GamePhase represents the current phase of a match
type GamePhase int

const (
	// PhaseInitializing - Match object creation, map generation
	PhaseInitializing GamePhase = iota

	// PhaseTurnStart - Per-turn resets and recomputation for the mover
	PhaseTurnStart

	// PhaseAwaitingAction - The mover may move the cursor, use an ability, capture or pass
	PhaseAwaitingAction

	// PhaseTurnEnd - Hand the turn to the opponent
	PhaseTurnEnd

	// PhaseMatchOver - A king changed hands; terminal
	PhaseMatchOver
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseTurnStart:
		return "TurnStart"
	case PhaseAwaitingAction:
		return "AwaitingAction"
	case PhaseTurnEnd:
		return "TurnEnd"
	case PhaseMatchOver:
		return "MatchOver"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseMatchOver
}

// CanReceiveCommands returns true if the match can process player commands in this phase
func (p GamePhase) CanReceiveCommands() bool {
	return p == PhaseAwaitingAction
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseTurnStart}
	case PhaseTurnStart:
		return []GamePhase{PhaseAwaitingAction}
	case PhaseAwaitingAction:
		return []GamePhase{PhaseTurnEnd, PhaseMatchOver}
	case PhaseTurnEnd:
		return []GamePhase{PhaseTurnStart}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	for p := PhaseInitializing; p <= PhaseMatchOver; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseInitializing, fmt.Errorf("unknown phase %q", s)
}

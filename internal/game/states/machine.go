package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/events"
)

// ErrInvalidTransition is returned for a phase change the phase graph forbids.
var ErrInvalidTransition = errors.New("invalid transition")

// State is the behavior attached to one phase.
type State interface {
	Phase() GamePhase
	Enter(ctx *GameContext) error
	Exit(ctx *GameContext) error
	// Validate is checked before the machine leaves its current phase.
	Validate(ctx *GameContext) error
}

// Transition is one entry of the phase history.
type Transition struct {
	From      GamePhase
	To        GamePhase
	Turn      int
	Player    int // 1 or 2; the player to move when the transition happened
	Timestamp time.Time
	Reason    string
}

// StateMachine drives a match through its phases. The phase is guarded by a
// mutex so a render loop may read it while commands run; the transition event
// is published after the lock is released so subscribers can query the
// machine.
type StateMachine struct {
	mu           sync.RWMutex
	currentPhase GamePhase
	states       map[GamePhase]State
	context      *GameContext
	history      []Transition
	maxHistory   int
	publisher    events.Publisher
}

const defaultMaxHistory = 256

// NewStateMachine creates a machine in PhaseInitializing with the default
// states registered. publisher may be nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase: PhaseInitializing,
		states:       make(map[GamePhase]State, 5),
		context:      ctx,
		history:      make([]Transition, 0, 64),
		maxHistory:   defaultMaxHistory,
		publisher:    publisher,
	}
	for _, s := range []State{
		NewInitializingState(),
		NewTurnStartState(),
		NewAwaitingActionState(),
		NewTurnEndState(),
		NewMatchOverState(),
	} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the state for its phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current game phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo moves to targetPhase. On any error the machine stays in its
// current phase, records nothing and publishes nothing.
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	transition, err := sm.transition(targetPhase, reason)
	if err != nil {
		return err
	}

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.MatchID,
			transition.From.String(),
			transition.To.String(),
			reason,
		))
	}
	sm.context.Logger.Debug().
		Str("from_phase", transition.From.String()).
		Str("to_phase", transition.To.String()).
		Int("turn", transition.Turn).
		Str("reason", reason).
		Msg("State transition completed")
	return nil
}

func (sm *StateMachine) transition(targetPhase GamePhase, reason string) (Transition, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.currentPhase
	if !from.CanTransitionTo(targetPhase) {
		return Transition{}, fmt.Errorf("%w from %s to %s", ErrInvalidTransition, from, targetPhase)
	}
	target, ok := sm.states[targetPhase]
	if !ok {
		return Transition{}, fmt.Errorf("no state implementation for phase %s", targetPhase)
	}
	if err := target.Validate(sm.context); err != nil {
		return Transition{}, fmt.Errorf("%s validation failed: %w", targetPhase, err)
	}

	if current, ok := sm.states[from]; ok {
		if err := current.Exit(sm.context); err != nil {
			// exit errors are reported but do not block the match
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	sm.currentPhase = targetPhase
	if err := target.Enter(sm.context); err != nil {
		sm.currentPhase = from
		return Transition{}, fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	t := Transition{
		From:      from,
		To:        targetPhase,
		Turn:      sm.context.Turn,
		Player:    sm.context.CurrentPlayer + 1,
		Timestamp: time.Now(),
		Reason:    reason,
	}
	sm.history = append(sm.history, t)
	sm.trimHistory()
	return t, nil
}

// trimHistory keeps the most recent maxHistory entries. Callers hold mu.
func (sm *StateMachine) trimHistory() {
	if len(sm.history) > sm.maxHistory {
		sm.history = append(sm.history[:0:0], sm.history[len(sm.history)-sm.maxHistory:]...)
	}
}

// GetHistory returns a copy of the transition history, oldest first
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// LastTransition returns the most recent transition, if any
func (sm *StateMachine) LastTransition() (Transition, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.history) == 0 {
		return Transition{}, false
	}
	return sm.history[len(sm.history)-1], true
}

// GetContext returns the game context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}

// SetMaxHistory bounds the number of transitions kept. Values below 1 keep one.
func (sm *StateMachine) SetMaxHistory(n int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.maxHistory = max(n, 1)
	sm.trimHistory()
}

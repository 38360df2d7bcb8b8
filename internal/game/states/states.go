package states

import (
	"fmt"
	"time"
)

// InitializingState represents match construction
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Match initialized")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// TurnStartState marks the beginning of a player's turn
type TurnStartState struct{}

func NewTurnStartState() State {
	return &TurnStartState{}
}

func (s *TurnStartState) Phase() GamePhase {
	return PhaseTurnStart
}

func (s *TurnStartState) Enter(ctx *GameContext) error {
	ctx.TurnStartTime = time.Now()
	if ctx.StartTime.IsZero() {
		ctx.StartTime = ctx.TurnStartTime
	}
	ctx.Logger.Debug().
		Int("turn", ctx.Turn).
		Int("player", ctx.CurrentPlayer+1).
		Msg("Turn starting")
	return nil
}

func (s *TurnStartState) Exit(ctx *GameContext) error {
	return nil
}

func (s *TurnStartState) Validate(ctx *GameContext) error {
	return validatePlayer(ctx)
}

// AwaitingActionState accepts commands from the player to move
type AwaitingActionState struct{}

func NewAwaitingActionState() State {
	return &AwaitingActionState{}
}

func (s *AwaitingActionState) Phase() GamePhase {
	return PhaseAwaitingAction
}

func (s *AwaitingActionState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("turn", ctx.Turn).
		Int("player", ctx.CurrentPlayer+1).
		Msg("Awaiting action")
	return nil
}

func (s *AwaitingActionState) Exit(ctx *GameContext) error {
	return nil
}

func (s *AwaitingActionState) Validate(ctx *GameContext) error {
	if ctx.Turn < 1 {
		return fmt.Errorf("turn must be at least 1, got %d", ctx.Turn)
	}
	return validatePlayer(ctx)
}

// TurnEndState closes the current turn
type TurnEndState struct{}

func NewTurnEndState() State {
	return &TurnEndState{}
}

func (s *TurnEndState) Phase() GamePhase {
	return PhaseTurnEnd
}

func (s *TurnEndState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("turn", ctx.Turn).
		Dur("turn_duration", time.Since(ctx.TurnStartTime)).
		Msg("Turn ended")
	return nil
}

func (s *TurnEndState) Exit(ctx *GameContext) error {
	return nil
}

func (s *TurnEndState) Validate(ctx *GameContext) error {
	return nil
}

// MatchOverState is the terminal state after a king falls
type MatchOverState struct{}

func NewMatchOverState() State {
	return &MatchOverState{}
}

func (s *MatchOverState) Phase() GamePhase {
	return PhaseMatchOver
}

func (s *MatchOverState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Int("turns", ctx.Turn).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Match over")
	return nil
}

func (s *MatchOverState) Exit(ctx *GameContext) error {
	return fmt.Errorf("cannot leave terminal phase %s", PhaseMatchOver)
}

func (s *MatchOverState) Validate(ctx *GameContext) error {
	if ctx.Winner < 1 || ctx.Winner > 2 {
		return fmt.Errorf("match over requires a winner, got %d", ctx.Winner)
	}
	return nil
}

func validatePlayer(ctx *GameContext) error {
	if ctx.CurrentPlayer < 0 || ctx.CurrentPlayer > 1 {
		return fmt.Errorf("invalid current player index %d", ctx.CurrentPlayer)
	}
	return nil
}

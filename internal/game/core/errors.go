package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrDirectionRequired  = errors.New("ability requires a direction")
	ErrInvalidPlayer      = errors.New("invalid player ID")
	ErrGameOver           = errors.New("game is over")
	ErrNotYourTurn        = errors.New("not in an action phase")

	ErrNotCapturable      = errors.New("cell is not capturable")
	ErrCellFortified      = errors.New("cell is fortified")
	ErrNotOwned           = errors.New("not your cell")
	ErrAlreadyOwned       = errors.New("cell already belongs to you")
	ErrAlreadyFortified   = errors.New("cell is already fortified")
	ErrKingCell           = errors.New("king cells cannot be targeted")
	ErrKingAlreadyPlaced  = errors.New("king already placed")
	ErrTooCloseToKing     = errors.New("too close to the enemy king")
	ErrNothingToClaim     = errors.New("no claimable cell in line")
	ErrUnknownAbility     = errors.New("unknown ability")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrInsufficientScore  = errors.New("insufficient score")
	ErrAbilityAlreadyUsed = errors.New("ability already used this turn")
	ErrCommanderActive    = errors.New("commander already active")
)

// CommandError attaches the acting player and command name to a rejection.
type CommandError struct {
	PlayerID int
	Command  string
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("player %d %s: %v", e.PlayerID, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// WrapCommandError wraps err with player and command context. nil stays nil.
func WrapCommandError(playerID int, command string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{PlayerID: playerID, Command: command, Err: err}
}

// WrapGameStateError wraps errors that occur while advancing the match.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// GameError is a structured error carrying turn and player context.
type GameError struct {
	Turn      int
	PlayerID  int
	Operation string
	Err       error
}

func (e *GameError) Error() string {
	if e.PlayerID > 0 {
		return fmt.Sprintf("turn %d: player %d %s: %v", e.Turn, e.PlayerID, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }

// NewGameError creates a GameError. A playerID of 0 means no player context.
func NewGameError(turn, playerID int, operation string, err error) *GameError {
	return &GameError{Turn: turn, PlayerID: playerID, Operation: operation, Err: err}
}

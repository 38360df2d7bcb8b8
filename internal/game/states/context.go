package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides match information to states for making decisions
type GameContext struct {
	// MatchID uniquely identifies this match
	MatchID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Turn is the 1-based turn number; 0 before the first turn starts
	Turn int

	// CurrentPlayer is the index (0 or 1) of the player to move
	CurrentPlayer int

	// Winner is the owner value of the winner, 0 while the match is running
	Winner int

	// StartTime is when the first turn started
	StartTime time.Time

	// TurnStartTime is when the current turn started
	TurnStartTime time.Time
}

// NewGameContext creates a new match context
func NewGameContext(matchID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		MatchID: matchID,
		Logger:  logger.With().Str("match_id", matchID).Logger(),
	}
}

// GetElapsedTime returns the time elapsed since the first turn
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}

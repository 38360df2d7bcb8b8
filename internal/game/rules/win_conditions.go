package rules

import (
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// Check reports whether a king cell has changed hands. The winner is the
// owner now holding the captured king.
func (wc *WinConditionChecker) Check(board *core.Board) (bool, core.Owner) {
	for pid := 0; pid < core.NumPlayers; pid++ {
		original := core.OwnerFor(pid)
		king, ok := board.KingOf(original)
		if !ok {
			continue
		}
		holder := board.Cell(king).Owner
		if holder != original && holder != core.OwnerNone {
			wc.logger.Info().
				Str("king", king.String()).
				Int("lost_by", int(original)).
				Int("winner_player_id", int(holder)).
				Msg("King captured")
			return true, holder
		}
	}
	return false, core.OwnerNone
}

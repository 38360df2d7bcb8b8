package rules

import (
	"testing"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func legalMoveBoard(t *testing.T) *core.Board {
	return testutil.MustParseBoard(t,
		"a1f..",
		"2....",
		".....",
		".....",
		"....b",
	)
}

func TestLegalMoveCalculator_NoFog(t *testing.T) {
	board := legalMoveBoard(t)
	lmc := NewLegalMoveCalculator(false)

	tests := []struct {
		name      string
		mover     core.Owner
		available []core.Coordinate
	}{
		{
			name:      "player 1 skips fortified and own cells",
			mover:     core.OwnerPlayer1,
			available: []core.Coordinate{{X: 1, Y: 1}, {X: 0, Y: 1}},
		},
		{
			name:      "player 2 never targets the enemy king",
			mover:     core.OwnerPlayer2,
			available: []core.Coordinate{{X: 1, Y: 1}, {X: 0, Y: 2}, {X: 4, Y: 3}, {X: 3, Y: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := lmc.Recompute(board, tt.mover)
			assert.Equal(t, len(tt.available), count)
			assert.ElementsMatch(t, tt.available, AvailableCells(board))
		})
	}
}

func TestLegalMoveCalculator_ClearsPreviousMover(t *testing.T) {
	board := legalMoveBoard(t)
	lmc := NewLegalMoveCalculator(false)

	lmc.Recompute(board, core.OwnerPlayer2)
	lmc.Recompute(board, core.OwnerPlayer1)

	assert.False(t, board.Cell(core.NewCoordinate(3, 4)).Available)
	assert.False(t, board.Cell(core.NewCoordinate(0, 0)).Available, "kings are never available")
}

func TestLegalMoveCalculator_RequiresVisibility(t *testing.T) {
	board := legalMoveBoard(t)
	players := testutil.CreateTestPlayers(board)
	lmc := NewLegalMoveCalculator(true)

	assert.Equal(t, 0, lmc.Recompute(board, core.OwnerPlayer1), "nothing visible yet")

	NewVisibilityCalculator(testutil.NopLogger(), 1, true).Recompute(board, &players[0], nil)
	assert.Equal(t, 2, lmc.Recompute(board, core.OwnerPlayer1))
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"small board", 5, 5},
		{"tier board", 16, 16},
		{"minimum board", 1, 1},
		{"non-positive size clamps to one", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard(tt.size)

			assert.Equal(t, tt.expected, board.Size)
			assert.Len(t, board.T, tt.expected*tt.expected)
			for i, cell := range board.T {
				assert.Equal(t, OwnerNone, cell.Owner, "cell %d should be neutral", i)
				assert.False(t, cell.IsKing(), "cell %d should not be a king", i)
				assert.False(t, cell.Fortified, "cell %d should not be fortified", i)
			}
		})
	}
}

func TestBoard_IdxAndXY(t *testing.T) {
	board := NewBoard(5)

	tests := []struct {
		x, y int
		idx  int
	}{
		{0, 0, 0},
		{4, 0, 4},
		{0, 1, 5},
		{2, 2, 12},
		{4, 4, 24},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.idx, board.Idx(tt.x, tt.y))
		assert.Equal(t, NewCoordinate(tt.x, tt.y), board.Coord(tt.idx))
	}
}

func TestBoard_CellOutOfBounds(t *testing.T) {
	board := NewBoard(4)

	assert.NotNil(t, board.Cell(NewCoordinate(0, 0)))
	assert.NotNil(t, board.Cell(NewCoordinate(3, 3)))
	assert.Nil(t, board.Cell(NewCoordinate(-1, 0)))
	assert.Nil(t, board.Cell(NewCoordinate(4, 0)))
	assert.Nil(t, board.Cell(NewCoordinate(0, 4)))
}

func TestBoard_IsBorder(t *testing.T) {
	board := NewBoard(5)

	assert.True(t, board.IsBorder(NewCoordinate(0, 2)))
	assert.True(t, board.IsBorder(NewCoordinate(4, 4)))
	assert.True(t, board.IsBorder(NewCoordinate(2, 0)))
	assert.False(t, board.IsBorder(NewCoordinate(2, 2)))
	assert.False(t, board.IsBorder(NewCoordinate(1, 3)))
}

func TestBoard_Neighbors(t *testing.T) {
	board := NewBoard(5)

	assert.Len(t, board.Neighbors4(NewCoordinate(0, 0)), 2)
	assert.Len(t, board.Neighbors4(NewCoordinate(2, 0)), 3)
	assert.Len(t, board.Neighbors4(NewCoordinate(2, 2)), 4)

	assert.Len(t, board.Neighbors8(NewCoordinate(0, 0)), 3)
	assert.Len(t, board.Neighbors8(NewCoordinate(2, 0)), 5)
	assert.Len(t, board.Neighbors8(NewCoordinate(2, 2)), 8)
}

func TestBoard_PlaceKing(t *testing.T) {
	board := NewBoard(5)
	origin := NewCoordinate(0, 0)

	cell := board.Cell(origin)
	cell.Sabotage = true
	cell.SabotageValue = 4
	cell.Fortified = true

	require.NoError(t, board.PlaceKing(origin, OwnerPlayer1))
	assert.True(t, cell.IsKing())
	assert.Equal(t, OwnerPlayer1, cell.Owner)
	assert.False(t, cell.Sabotage, "kings never carry sabotage")
	assert.False(t, cell.Fortified, "kings are never fortified")

	king, ok := board.KingOf(OwnerPlayer1)
	assert.True(t, ok)
	assert.Equal(t, origin, king)

	_, ok = board.KingOf(OwnerPlayer2)
	assert.False(t, ok)

	t.Run("second king for same owner", func(t *testing.T) {
		assert.ErrorIs(t, board.PlaceKing(NewCoordinate(2, 2), OwnerPlayer1), ErrKingAlreadyPlaced)
	})
	t.Run("king on occupied king cell", func(t *testing.T) {
		assert.ErrorIs(t, board.PlaceKing(origin, OwnerPlayer2), ErrKingAlreadyPlaced)
	})
	t.Run("out of bounds", func(t *testing.T) {
		assert.ErrorIs(t, board.PlaceKing(NewCoordinate(5, 5), OwnerPlayer2), ErrInvalidCoordinates)
	})
	t.Run("neutral owner", func(t *testing.T) {
		assert.ErrorIs(t, board.PlaceKing(NewCoordinate(3, 3), OwnerNone), ErrInvalidPlayer)
	})
}

func TestBoard_SetOwnerKeepsKingFlag(t *testing.T) {
	board := NewBoard(3)
	king := NewCoordinate(2, 2)
	require.NoError(t, board.PlaceKing(king, OwnerPlayer2))

	require.NoError(t, board.SetOwner(king, OwnerPlayer1))
	assert.True(t, board.Cell(king).IsKing())
	assert.Equal(t, OwnerPlayer1, board.Cell(king).Owner)

	loc, ok := board.KingOf(OwnerPlayer2)
	assert.True(t, ok)
	assert.Equal(t, king, loc, "king location never moves")

	assert.ErrorIs(t, board.SetOwner(NewCoordinate(-1, 0), OwnerPlayer1), ErrInvalidCoordinates)
}

func TestBoard_SetFortified(t *testing.T) {
	board := NewBoard(3)
	require.NoError(t, board.PlaceKing(NewCoordinate(0, 0), OwnerPlayer1))

	assert.ErrorIs(t, board.SetFortified(NewCoordinate(0, 0), true), ErrKingCell)
	assert.ErrorIs(t, board.SetFortified(NewCoordinate(3, 0), true), ErrInvalidCoordinates)

	require.NoError(t, board.SetFortified(NewCoordinate(1, 1), true))
	assert.True(t, board.Cell(NewCoordinate(1, 1)).Fortified)
}

func TestBoard_TakeSabotage(t *testing.T) {
	board := NewBoard(3)
	c := NewCoordinate(1, 1)
	cell := board.Cell(c)
	cell.Sabotage = true
	cell.SabotageValue = 3

	assert.Equal(t, 3, board.TakeSabotage(c))
	assert.False(t, cell.Sabotage)
	assert.Equal(t, 0, cell.SabotageValue)
	assert.Equal(t, 0, board.TakeSabotage(c), "sabotage pays out once")
	assert.Equal(t, 0, board.TakeSabotage(NewCoordinate(9, 9)))
}

func TestBoard_ClearVisibility(t *testing.T) {
	board := NewBoard(3)
	for i := range board.T {
		board.T[i].Observe(0)
		board.T[i].Observe(1)
	}

	board.ClearVisibility(0)
	for i := range board.T {
		assert.False(t, board.T[i].IsVisibleTo(0))
		assert.True(t, board.T[i].IsExploredBy(0), "exploration is sticky")
		assert.True(t, board.T[i].IsVisibleTo(1), "other player untouched")
	}
}

func TestBoard_CountOwnedAndClone(t *testing.T) {
	board := NewBoard(4)
	require.NoError(t, board.PlaceKing(NewCoordinate(0, 0), OwnerPlayer1))
	require.NoError(t, board.SetOwner(NewCoordinate(1, 0), OwnerPlayer1))
	require.NoError(t, board.SetOwner(NewCoordinate(3, 3), OwnerPlayer2))

	assert.Equal(t, 2, board.CountOwned(OwnerPlayer1))
	assert.Equal(t, 1, board.CountOwned(OwnerPlayer2))
	assert.Equal(t, 13, board.CountOwned(OwnerNone))

	king, ok := board.KingOf(OwnerPlayer1)
	assert.True(t, ok)
	assert.Equal(t, NewCoordinate(0, 0), king)
	assert.Len(t, board.Owners(), 16)
}

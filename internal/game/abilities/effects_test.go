package abilities

import (
	"testing"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// effectBoard is a 12x12 board with kings in opposite corners.
func effectBoard(t *testing.T) (*core.Board, []core.Player) {
	board := testutil.MustParseBoard(t,
		"a11.........",
		"11..........",
		"............",
		"............",
		"......$.....",
		"....2222....",
		"....2G22....",
		"....2222....",
		"............",
		"............",
		"..........22",
		"..........2b",
	)
	players := testutil.CreateTestPlayers(board)
	players[0].Score = 100
	players[1].Score = 100
	return board, players
}

func request(board *core.Board, p *core.Player, kind Kind, target core.Coordinate, dir core.Direction) Request {
	return Request{Kind: kind, Board: board, Caster: p, Target: target, Direction: dir, ScoutingRadius: 3}
}

func TestInvoke_ChargesAndMarksUsed(t *testing.T) {
	board, players := effectBoard(t)
	p1 := &players[0]

	effect, err := Invoke(DefaultConfig(), request(board, p1, Paratrooper, core.NewCoordinate(3, 3), core.NoDirection))
	require.NoError(t, err)

	assert.Equal(t, 18, effect.Cost)
	assert.Equal(t, 82, p1.Balance())
	assert.Equal(t, 100, p1.Score, "score is cumulative")
	assert.True(t, p1.AbilityUsedThisTurn)
	assert.Equal(t, core.OwnerPlayer1, board.Cell(core.NewCoordinate(3, 3)).Owner)

	_, err = Invoke(DefaultConfig(), request(board, p1, Scouting, core.NewCoordinate(3, 3), core.NoDirection))
	assert.ErrorIs(t, err, core.ErrAbilityAlreadyUsed)
}

func TestInvoke_DiscountedCharge(t *testing.T) {
	board, players := effectBoard(t)
	p1 := &players[0]
	p1.CommanderActive = true

	effect, err := Invoke(DefaultConfig(), request(board, p1, Artillery, core.NewCoordinate(6, 6), core.NoDirection))
	require.NoError(t, err)
	assert.Equal(t, 13, effect.Cost)
	assert.Equal(t, 13, p1.Spent)
}

func TestInvoke_RejectionChangesNothing(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		target core.Coordinate
		dir    core.Direction
		setup  func(p *core.Player)
		err    error
	}{
		{"insufficient score", Commander, core.NewCoordinate(0, 0), core.NoDirection, func(p *core.Player) { p.Score = 49 }, core.ErrInsufficientScore},
		{"paratrooper near enemy king", Paratrooper, core.NewCoordinate(7, 8), core.NoDirection, nil, core.ErrTooCloseToKing},
		{"paratrooper on fortified cell", Paratrooper, core.NewCoordinate(5, 6), core.NoDirection, nil, core.ErrCellFortified},
		{"paratrooper on own cell", Paratrooper, core.NewCoordinate(1, 1), core.NoDirection, nil, core.ErrAlreadyOwned},
		{"assault without direction", AssaultLine, core.NewCoordinate(3, 0), core.NoDirection, nil, core.ErrDirectionRequired},
		{"assault with nothing to claim", AssaultLine, core.NewCoordinate(0, 0), core.Right, nil, core.ErrNothingToClaim},
		{"fortification on enemy cell", Fortification, core.NewCoordinate(4, 5), core.Right, nil, core.ErrNotOwned},
		{"fortification off the board", Fortification, core.NewCoordinate(0, 1), core.Left, nil, core.ErrInvalidCoordinates},
		{"fortification on king", Fortification, core.NewCoordinate(0, 0), core.Right, nil, core.ErrKingCell},
		{"target out of bounds", Scouting, core.NewCoordinate(12, 0), core.NoDirection, nil, core.ErrInvalidCoordinates},
		{"commander already active", Commander, core.NewCoordinate(0, 0), core.NoDirection, func(p *core.Player) { p.CommanderActive = true }, core.ErrCommanderActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, players := effectBoard(t)
			p1 := &players[0]
			if tt.setup != nil {
				tt.setup(p1)
			}
			before := testutil.CopyCells(board)
			playerBefore := *p1

			_, err := Invoke(DefaultConfig(), request(board, p1, tt.kind, tt.target, tt.dir))

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, before, board.T, "board unchanged")
			assert.Equal(t, playerBefore, *p1, "player unchanged")
		})
	}
}

func TestParatrooper_Sabotage(t *testing.T) {
	board, players := effectBoard(t)
	target := core.NewCoordinate(6, 4)

	effect, err := Apply(DefaultConfig(), request(board, &players[0], Paratrooper, target, core.NoDirection))
	require.NoError(t, err)

	assert.Equal(t, testutil.DefaultSabotageValue, effect.SabotageBonus)
	assert.Equal(t, 100+testutil.DefaultSabotageValue, players[0].Score)
	assert.False(t, board.Cell(target).Sabotage)
}

func TestParatrooper_KingDistanceBoundary(t *testing.T) {
	board, players := effectBoard(t)
	// Chebyshev distance 5 from (11,11) is allowed, 4 is not.
	_, err := Apply(DefaultConfig(), request(board, &players[0], Paratrooper, core.NewCoordinate(6, 9), core.NoDirection))
	assert.NoError(t, err)
	_, err = Apply(DefaultConfig(), request(board, &players[0], Paratrooper, core.NewCoordinate(7, 2), core.NoDirection))
	assert.NoError(t, err)
	_, err = Apply(DefaultConfig(), request(board, &players[0], Paratrooper, core.NewCoordinate(7, 7), core.NoDirection))
	assert.ErrorIs(t, err, core.ErrTooCloseToKing)
}

func TestClusterBomb(t *testing.T) {
	board, players := effectBoard(t)
	center := core.NewCoordinate(5, 6)

	effect, err := Apply(DefaultConfig(), request(board, &players[0], ClusterBomb, center, core.NoDirection))
	require.NoError(t, err)

	assert.True(t, board.Cell(center).Fortified, "fortified cells survive")
	assert.Equal(t, core.OwnerPlayer2, board.Cell(center).Owner)
	assert.Len(t, effect.Changed, 8)
	for _, c := range center.Ring() {
		assert.Equal(t, core.OwnerNone, board.Cell(c).Owner, "%v", c)
	}
	assert.Equal(t, core.OwnerPlayer2, board.Cell(core.NewCoordinate(7, 6)).Owner, "outside radius")
}

func TestClusterBomb_SparesKingAndClearsSabotage(t *testing.T) {
	board, players := effectBoard(t)

	_, err := Apply(DefaultConfig(), request(board, &players[1], ClusterBomb, core.NewCoordinate(0, 0), core.NoDirection))
	require.NoError(t, err)
	assert.Equal(t, core.OwnerPlayer1, board.Cell(core.NewCoordinate(0, 0)).Owner)
	assert.True(t, board.Cell(core.NewCoordinate(0, 0)).IsKing())
	assert.Equal(t, core.OwnerNone, board.Cell(core.NewCoordinate(1, 1)).Owner)

	effect, err := Apply(DefaultConfig(), request(board, &players[1], ClusterBomb, core.NewCoordinate(6, 4), core.NoDirection))
	require.NoError(t, err)
	assert.Equal(t, 1, effect.SabotageCleared)
	assert.Equal(t, 100, players[1].Score, "destroyed sabotage pays nothing")
	assert.False(t, board.Cell(core.NewCoordinate(6, 4)).Sabotage)
}

func TestAssaultLine(t *testing.T) {
	board, players := effectBoard(t)
	p1 := &players[0]

	effect, err := Apply(DefaultConfig(), request(board, p1, AssaultLine, core.NewCoordinate(4, 6), core.Right))
	require.NoError(t, err)

	assert.Equal(t, core.OwnerPlayer1, board.Cell(core.NewCoordinate(4, 6)).Owner)
	assert.Equal(t, core.OwnerPlayer2, board.Cell(core.NewCoordinate(5, 6)).Owner, "fortified cell skipped")
	assert.Equal(t, core.OwnerPlayer1, board.Cell(core.NewCoordinate(6, 6)).Owner)
	assert.Equal(t, core.OwnerPlayer2, board.Cell(core.NewCoordinate(7, 6)).Owner, "line length is 3")
	assert.Len(t, effect.Changed, 2)
	assert.False(t, effect.KingCaptured)
}

func TestAssaultLine_ClipsAtEdge(t *testing.T) {
	board, players := effectBoard(t)

	effect, err := Apply(DefaultConfig(), request(board, &players[0], AssaultLine, core.NewCoordinate(3, 10), core.Down))
	require.NoError(t, err)
	assert.Len(t, effect.Changed, 2)
}

func TestAssaultLine_CapturesEnemyKing(t *testing.T) {
	board, players := effectBoard(t)

	effect, err := Apply(DefaultConfig(), request(board, &players[0], AssaultLine, core.NewCoordinate(9, 11), core.Right))
	require.NoError(t, err)

	assert.True(t, effect.KingCaptured)
	assert.Equal(t, core.OwnerPlayer1, board.Cell(core.NewCoordinate(11, 11)).Owner)
	assert.True(t, board.Cell(core.NewCoordinate(11, 11)).IsKing(), "king stays in place")
}

func TestAssaultLine_SkipsOwnCells(t *testing.T) {
	board, players := effectBoard(t)

	effect, err := Apply(DefaultConfig(), request(board, &players[1], AssaultLine, core.NewCoordinate(11, 9), core.Down))
	require.NoError(t, err)
	assert.Equal(t, []core.Coordinate{{X: 11, Y: 9}}, effect.Changed)
	assert.Equal(t, core.OwnerPlayer2, board.Cell(core.NewCoordinate(11, 11)).Owner)
	assert.True(t, board.Cell(core.NewCoordinate(11, 11)).IsKing())
}

func TestCommander(t *testing.T) {
	board, players := effectBoard(t)
	p1 := &players[0]
	before := testutil.CopyCells(board)

	_, err := Invoke(DefaultConfig(), request(board, p1, Commander, p1.Cursor, core.NoDirection))
	require.NoError(t, err)
	assert.True(t, p1.CommanderActive)
	assert.Equal(t, 50, p1.Spent)
	assert.Equal(t, before, board.T, "no board effect")

	p1.AbilityUsedThisTurn = false
	_, err = Invoke(DefaultConfig(), request(board, p1, Commander, p1.Cursor, core.NoDirection))
	assert.ErrorIs(t, err, core.ErrCommanderActive)
}

func TestArtillery(t *testing.T) {
	board, players := effectBoard(t)
	center := core.NewCoordinate(6, 6)

	effect, err := Apply(DefaultConfig(), request(board, &players[0], Artillery, center, core.NoDirection))
	require.NoError(t, err)

	assert.Equal(t, 1, effect.FortificationsDestroyed)
	assert.Equal(t, 1, effect.SabotageCleared)
	assert.Len(t, effect.Changed, 12)
	for _, c := range center.Square(2, board.Size) {
		cell := board.Cell(c)
		assert.Equal(t, core.OwnerNone, cell.Owner, "%v", c)
		assert.False(t, cell.Fortified)
		assert.False(t, cell.Sabotage)
	}
}

func TestArtillery_SparesKing(t *testing.T) {
	board, players := effectBoard(t)

	_, err := Apply(DefaultConfig(), request(board, &players[0], Artillery, core.NewCoordinate(10, 10), core.NoDirection))
	require.NoError(t, err)

	king := board.Cell(core.NewCoordinate(11, 11))
	assert.True(t, king.IsKing())
	assert.Equal(t, core.OwnerPlayer2, king.Owner)
	assert.Equal(t, core.OwnerNone, board.Cell(core.NewCoordinate(10, 11)).Owner)
}

func TestFortification(t *testing.T) {
	board, players := effectBoard(t)

	effect, err := Apply(DefaultConfig(), request(board, &players[0], Fortification, core.NewCoordinate(1, 0), core.Right))
	require.NoError(t, err)

	assert.Equal(t, []core.Coordinate{{X: 1, Y: 0}, {X: 2, Y: 0}}, effect.Fortified)
	assert.True(t, board.Cell(core.NewCoordinate(1, 0)).Fortified)
	assert.True(t, board.Cell(core.NewCoordinate(2, 0)).Fortified)

	_, err = Apply(DefaultConfig(), request(board, &players[0], Fortification, core.NewCoordinate(1, 0), core.Down))
	assert.ErrorIs(t, err, core.ErrAlreadyFortified)
}

func TestFortification_EnemyCellMessage(t *testing.T) {
	board, players := effectBoard(t)

	_, err := Invoke(DefaultConfig(), request(board, &players[0], Fortification, core.NewCoordinate(6, 5), core.Down))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not your cell")
}

func TestScouting(t *testing.T) {
	board, players := effectBoard(t)

	effect, err := Apply(DefaultConfig(), request(board, &players[0], Scouting, core.NewCoordinate(8, 8), core.NoDirection))
	require.NoError(t, err)

	assert.Len(t, effect.Revealed, 49)
	for _, c := range effect.Revealed {
		cell := board.Cell(c)
		assert.True(t, cell.IsExploredBy(0))
		assert.False(t, cell.IsExploredBy(1), "scouting only informs the caster")
		assert.Equal(t, cell.Owner, cell.Fog[0].LastSeenOwner)
	}
}

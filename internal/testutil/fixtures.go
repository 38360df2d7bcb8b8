package testutil

import (
	"fmt"
	"testing"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// DefaultSabotageValue is the payout given to '$' cells in ASCII fixtures.
const DefaultSabotageValue = 3

// ParseBoard builds a square board from ASCII rows:
//
//	.  neutral          1 2  owned by player 1 / player 2
//	a b  king of player 1 / player 2
//	F G  fortified cell of player 1 / player 2
//	f  fortified neutral
//	$  neutral sabotage cell worth DefaultSabotageValue
func ParseBoard(rows ...string) (*core.Board, error) {
	size := len(rows)
	board := core.NewBoard(size)

	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), size)
		}
		for x, ch := range row {
			c := core.NewCoordinate(x, y)
			cell := board.Cell(c)
			switch ch {
			case '.':
			case '1':
				cell.Owner = core.OwnerPlayer1
			case '2':
				cell.Owner = core.OwnerPlayer2
			case 'a', 'b':
				owner := core.OwnerPlayer1
				if ch == 'b' {
					owner = core.OwnerPlayer2
				}
				if err := board.PlaceKing(c, owner); err != nil {
					return nil, fmt.Errorf("king at %v: %w", c, err)
				}
			case 'F':
				cell.Owner = core.OwnerPlayer1
				cell.Fortified = true
			case 'G':
				cell.Owner = core.OwnerPlayer2
				cell.Fortified = true
			case 'f':
				cell.Fortified = true
			case '$':
				cell.Sabotage = true
				cell.SabotageValue = DefaultSabotageValue
			default:
				return nil, fmt.Errorf("unknown cell %q at %v", ch, c)
			}
		}
	}
	return board, nil
}

// MustParseBoard is ParseBoard that fails the test on error.
func MustParseBoard(t testing.TB, rows ...string) *core.Board {
	t.Helper()
	board, err := ParseBoard(rows...)
	if err != nil {
		t.Fatalf("parse board: %v", err)
	}
	return board
}

// CreateTestPlayers creates both players with cursors on their kings. Players
// without a king on the board get their conventional corner.
func CreateTestPlayers(board *core.Board) []core.Player {
	corners := [core.NumPlayers]core.Coordinate{
		core.NewCoordinate(0, 0),
		core.NewCoordinate(board.Size-1, board.Size-1),
	}
	players := make([]core.Player, core.NumPlayers)
	for pid := range players {
		owner := core.OwnerFor(pid)
		king, ok := board.KingOf(owner)
		if !ok {
			king = corners[pid]
		}
		players[pid] = core.NewPlayer(owner, king)
	}
	return players
}

// OwnershipRows renders board ownership back into ASCII rows using the
// characters ParseBoard accepts (sabotage is not rendered).
func OwnershipRows(board *core.Board) []string {
	rows := make([]string, board.Size)
	for y := 0; y < board.Size; y++ {
		buf := make([]byte, board.Size)
		for x := 0; x < board.Size; x++ {
			cell := board.Cell(core.NewCoordinate(x, y))
			buf[x] = cellRune(cell)
		}
		rows[y] = string(buf)
	}
	return rows
}

func cellRune(cell *core.Cell) byte {
	switch {
	case cell.IsKing() && cell.Owner == core.OwnerPlayer1:
		return 'a'
	case cell.IsKing():
		return 'b'
	case cell.Fortified && cell.Owner == core.OwnerPlayer1:
		return 'F'
	case cell.Fortified && cell.Owner == core.OwnerPlayer2:
		return 'G'
	case cell.Fortified:
		return 'f'
	case cell.Owner == core.OwnerPlayer1:
		return '1'
	case cell.Owner == core.OwnerPlayer2:
		return '2'
	default:
		return '.'
	}
}

// CopyCells snapshots a board's cells so a test can assert nothing changed.
func CopyCells(b *core.Board) []core.Cell {
	return append([]core.Cell(nil), b.T...)
}

package rules

import "github.com/mitchelldurbincs/CellWarfare/internal/game/core"

// LegalMoveCalculator marks the cells a player may capture this turn
type LegalMoveCalculator struct {
	fogOfWar bool
}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator(fogOfWar bool) *LegalMoveCalculator {
	return &LegalMoveCalculator{fogOfWar: fogOfWar}
}

// Recompute clears every Available flag and sets it on each orthogonal
// neighbor of mover's territory that mover could capture. It returns the
// number of available cells.
func (lmc *LegalMoveCalculator) Recompute(board *core.Board, mover core.Owner) int {
	board.ClearAvailability()
	pid := mover.PlayerIndex()

	count := 0
	for idx := range board.T {
		if board.T[idx].Owner != mover {
			continue
		}
		for _, n := range board.Neighbors4(board.Coord(idx)) {
			cell := board.Cell(n)
			if cell.Available || !lmc.capturable(cell, mover, pid) {
				continue
			}
			cell.Available = true
			count++
		}
	}
	return count
}

func (lmc *LegalMoveCalculator) capturable(cell *core.Cell, mover core.Owner, pid int) bool {
	if cell.Owner == mover || cell.IsKing() || cell.Fortified {
		return false
	}
	if lmc.fogOfWar && !cell.IsVisibleTo(pid) {
		return false
	}
	return true
}

// AvailableCells lists every cell currently flagged as available.
func AvailableCells(board *core.Board) []core.Coordinate {
	var out []core.Coordinate
	for idx := range board.T {
		if board.T[idx].Available {
			out = append(out, board.Coord(idx))
		}
	}
	return out
}

package rules

import (
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/rs/zerolog"
)

// VisibilityCalculator recomputes one player's fog of war.
type VisibilityCalculator struct {
	logger   zerolog.Logger
	radius   int
	fogOfWar bool
}

// NewVisibilityCalculator creates a calculator for a tier visibility radius.
func NewVisibilityCalculator(logger zerolog.Logger, radius int, fogOfWar bool) *VisibilityCalculator {
	return &VisibilityCalculator{
		logger:   logger.With().Str("component", "VisibilityCalculator").Logger(),
		radius:   radius,
		fogOfWar: fogOfWar,
	}
}

// Recompute rebuilds the viewer's Visible flags from scratch and returns how
// many cells the viewer can see. Explored flags are only ever added.
// revealed holds extra coordinates kept visible this turn (scouting).
func (vc *VisibilityCalculator) Recompute(board *core.Board, viewer *core.Player, revealed []core.Coordinate) int {
	pid := viewer.Index()

	if !vc.fogOfWar {
		for i := range board.T {
			for p := 0; p < core.NumPlayers; p++ {
				board.T[i].Observe(p)
			}
		}
		return len(board.T)
	}

	board.ClearVisibility(pid)

	for idx := range board.T {
		if board.T[idx].Owner != viewer.ID {
			continue
		}
		for _, c := range board.Coord(idx).Square(vc.radius, board.Size) {
			board.Cell(c).Observe(pid)
		}
	}

	for _, c := range []core.Coordinate{viewer.King, viewer.Cursor} {
		if cell := board.Cell(c); cell != nil {
			cell.Observe(pid)
		}
	}

	for _, c := range revealed {
		if cell := board.Cell(c); cell != nil {
			cell.Observe(pid)
		}
	}

	enemy := viewer.ID.Opponent()
	for i := range board.T {
		cell := &board.T[i]
		if !cell.IsExploredBy(pid) || cell.IsVisibleTo(pid) {
			continue
		}
		if cell.Fog[pid].LastSeenOwner == enemy || cell.IsKing() || cell.Fortified {
			cell.Observe(pid)
		}
	}

	visible := 0
	for i := range board.T {
		if board.T[i].IsVisibleTo(pid) {
			visible++
		}
	}
	vc.logger.Debug().Int("player", int(viewer.ID)).Int("visible_cells", visible).Msg("Visibility recomputed")
	return visible
}

// Reveal explores the square of radius around center for the viewer and
// returns the coordinates it covers so they can be kept visible.
func Reveal(board *core.Board, viewer *core.Player, center core.Coordinate, radius int) []core.Coordinate {
	area := center.Square(radius, board.Size)
	pid := viewer.Index()
	for _, c := range area {
		board.Cell(c).Observe(pid)
	}
	return area
}

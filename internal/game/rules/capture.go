package rules

import "github.com/mitchelldurbincs/CellWarfare/internal/game/core"

// Points awarded for an ordinary capture.
const (
	PointsNeutralCapture = 1
	PointsEnemyCapture   = 2
)

// CaptureOutcome describes a successful ordinary capture.
type CaptureOutcome struct {
	Target        core.Coordinate
	PreviousOwner core.Owner
	Points        int // includes SabotageBonus
	SabotageBonus int
	KingCaptured  bool
}

// ValidateCapture checks whether mover may capture target without changing anything.
func ValidateCapture(board *core.Board, mover *core.Player, target core.Coordinate) error {
	if mover.AbilityUsedThisTurn {
		return core.ErrAbilityAlreadyUsed
	}
	cell := board.Cell(target)
	if cell == nil {
		return core.ErrInvalidCoordinates
	}
	if cell.Fortified {
		return core.ErrCellFortified
	}
	if !cell.Available {
		return core.ErrNotCapturable
	}
	return nil
}

// Capture takes target for mover. Legal moves must have been recomputed for
// mover beforehand; the caller runs reclamation and recomputation afterwards.
func Capture(board *core.Board, mover *core.Player, target core.Coordinate) (CaptureOutcome, error) {
	if err := ValidateCapture(board, mover, target); err != nil {
		return CaptureOutcome{}, err
	}

	cell := board.Cell(target)
	out := CaptureOutcome{Target: target, PreviousOwner: cell.Owner}

	out.SabotageBonus = board.TakeSabotage(target)
	if out.PreviousOwner == core.OwnerNone {
		out.Points = PointsNeutralCapture
	} else {
		out.Points = PointsEnemyCapture
	}
	out.Points += out.SabotageBonus

	cell.Owner = mover.ID
	cell.Available = false
	cell.Observe(mover.Index())
	mover.Award(out.Points)

	if cell.IsKing() {
		if king, ok := board.KingOf(mover.ID.Opponent()); ok && king == target {
			out.KingCaptured = true
		}
	}
	return out, nil
}

// Claim gives c to player and pays out any sabotage on it. Ability effects use
// it; it awards no base points.
func Claim(board *core.Board, player *core.Player, c core.Coordinate) int {
	cell := board.Cell(c)
	if cell == nil {
		return 0
	}
	bonus := board.TakeSabotage(c)
	cell.Owner = player.ID
	player.Award(bonus)
	return bonus
}

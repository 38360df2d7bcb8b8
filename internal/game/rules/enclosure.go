package rules

import (
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/rs/zerolog"
)

// Points awarded by enclosure reclamation.
const (
	PointsSingleEnclosure = 2
	PointsRegionCell      = 1
)

// Reclamation records one cell transferred by enclosure.
type Reclamation struct {
	Coord         core.Coordinate
	From          core.Owner
	To            core.Owner
	Points        int
	SabotageBonus int
	Region        bool // true for neutral-region enclosure, false for single-cell
}

// ReclaimReport summarises a Reclaim call.
type ReclaimReport struct {
	Cells  []Reclamation
	Passes int
	Points [core.NumPlayers]int
	Counts [core.NumPlayers]int
}

// Changed reports whether any cell was transferred.
func (r ReclaimReport) Changed() bool { return len(r.Cells) > 0 }

// Reclaimer runs enclosure reclamation over the full board.
type Reclaimer struct {
	logger zerolog.Logger
}

// NewReclaimer creates a reclaimer.
func NewReclaimer(logger zerolog.Logger) *Reclaimer {
	return &Reclaimer{logger: logger.With().Str("component", "Reclaimer").Logger()}
}

// Reclaim repeats single-cell and neutral-region enclosure until a pass makes
// no change, awarding points to players as cells transfer. It does not look at
// visibility. players is indexed by player index.
func (r *Reclaimer) Reclaim(board *core.Board, players []core.Player) ReclaimReport {
	var report ReclaimReport

	for pass := 0; pass < len(board.T); pass++ {
		before := len(report.Cells)
		r.singleCellPass(board, players, &report)
		r.regionPass(board, players, &report)
		report.Passes++
		if len(report.Cells) == before {
			break
		}
	}

	if report.Changed() {
		r.logger.Debug().
			Int("cells", len(report.Cells)).
			Int("passes", report.Passes).
			Ints("points", report.Points[:]).
			Msg("Enclosures reclaimed")
	}
	return report
}

func (r *Reclaimer) singleCellPass(board *core.Board, players []core.Player, report *ReclaimReport) {
	owners := board.Owners()

	for idx := range board.T {
		c := board.Coord(idx)
		cell := &board.T[idx]
		if board.IsBorder(c) || cell.Fortified || cell.IsKing() {
			continue
		}

		surrounding := core.OwnerNone
		enclosed := true
		for _, n := range board.Neighbors8(c) {
			o := owners[board.Idx(n.X, n.Y)]
			if o == core.OwnerNone || (surrounding != core.OwnerNone && o != surrounding) {
				enclosed = false
				break
			}
			surrounding = o
		}
		if !enclosed || surrounding == owners[idx] {
			continue
		}

		r.transfer(board, players, report, c, surrounding, PointsSingleEnclosure, false)
	}
}

func (r *Reclaimer) regionPass(board *core.Board, players []core.Player, report *ReclaimReport) {
	visited := make([]bool, len(board.T))

	for start := range board.T {
		if visited[start] || !regionCell(&board.T[start]) {
			continue
		}

		region, owner, ok := r.exploreRegion(board, start, visited)
		if !ok {
			continue
		}
		for _, c := range region {
			r.transfer(board, players, report, c, owner, PointsRegionCell, true)
		}
	}
}

// exploreRegion flood-fills the neutral component containing start and decides
// whether a single player encloses it.
func (r *Reclaimer) exploreRegion(board *core.Board, start int, visited []bool) ([]core.Coordinate, core.Owner, bool) {
	queue := []int{start}
	visited[start] = true
	var region []core.Coordinate

	enclosed := true
	owner := core.OwnerNone

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		c := board.Coord(idx)
		region = append(region, c)

		if board.IsBorder(c) {
			enclosed = false
		}

		for _, n := range board.Neighbors4(c) {
			nIdx := board.Idx(n.X, n.Y)
			neighbor := &board.T[nIdx]
			if regionCell(neighbor) {
				if !visited[nIdx] {
					visited[nIdx] = true
					queue = append(queue, nIdx)
				}
				continue
			}
			switch {
			case neighbor.Fortified, neighbor.IsNeutral():
				enclosed = false
			case owner == core.OwnerNone:
				owner = neighbor.Owner
			case owner != neighbor.Owner:
				enclosed = false
			}
		}
	}

	return region, owner, enclosed && owner != core.OwnerNone
}

func regionCell(c *core.Cell) bool {
	return c.IsNeutral() && !c.Fortified && !c.IsKing()
}

func (r *Reclaimer) transfer(board *core.Board, players []core.Player, report *ReclaimReport, c core.Coordinate, to core.Owner, base int, region bool) {
	cell := board.Cell(c)
	rec := Reclamation{Coord: c, From: cell.Owner, To: to, Region: region}

	rec.SabotageBonus = board.TakeSabotage(c)
	rec.Points = base + rec.SabotageBonus
	cell.Owner = to

	pid := to.PlayerIndex()
	if pid >= 0 && pid < len(players) {
		players[pid].Award(rec.Points)
		report.Points[pid] += rec.Points
		report.Counts[pid]++
	}
	report.Cells = append(report.Cells, rec)
}

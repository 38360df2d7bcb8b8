package game

import (
	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/states"
)

// CellView is one cell as seen by the player to move.
type CellView struct {
	Owner         core.Owner
	King          bool
	Sabotage      bool
	SabotageValue int
	Fortified     bool
	Available     bool
	Visible       bool
	Explored      bool
	LastSeenOwner core.Owner
}

// PlayerView is the public state of one player.
type PlayerView struct {
	ID                  core.Owner
	Score               int
	Spent               int
	Balance             int
	Cursor              core.Coordinate
	King                core.Coordinate
	CommanderActive     bool
	AbilityUsedThisTurn bool
	AbilityUses         AbilityCounts
}

// Snapshot is a deep copy of everything a renderer needs. Mutating it never
// affects the engine.
type Snapshot struct {
	MatchID       string
	Size          int
	Tier          core.Tier
	FogOfWar      bool
	Cells         []CellView // row-major, Size*Size
	Players       [core.NumPlayers]PlayerView
	CurrentPlayer core.Owner
	Turn          int
	Phase         states.GamePhase
	GameOver      bool
	Winner        core.Owner
	Abilities     []abilities.Entry // menu for the current player
	LastRejection string
}

// Snapshot captures the match from the current mover's perspective.
func (e *Engine) Snapshot() Snapshot {
	pid := e.current
	s := Snapshot{
		MatchID:       e.matchID,
		Size:          e.board.Size,
		Tier:          e.tier,
		FogOfWar:      e.fogOfWar,
		Cells:         make([]CellView, len(e.board.T)),
		CurrentPlayer: e.players[pid].ID,
		Turn:          e.turn,
		Phase:         e.stateMachine.CurrentPhase(),
		GameOver:      e.gameOver,
		Winner:        e.winner,
		Abilities:     e.Catalog(),
		LastRejection: e.lastRejection,
	}

	for i := range e.board.T {
		cell := &e.board.T[i]
		fog := cell.Fog[pid]
		s.Cells[i] = CellView{
			Owner:         cell.Owner,
			King:          cell.IsKing(),
			Sabotage:      cell.Sabotage,
			SabotageValue: cell.SabotageValue,
			Fortified:     cell.Fortified,
			Available:     cell.Available,
			Visible:       fog.Visible,
			Explored:      fog.Explored,
			LastSeenOwner: fog.LastSeenOwner,
		}
	}

	for i := range e.players {
		p := &e.players[i]
		s.Players[i] = PlayerView{
			ID:                  p.ID,
			Score:               p.Score,
			Spent:               p.Spent,
			Balance:             p.Balance(),
			Cursor:              p.Cursor,
			King:                p.King,
			CommanderActive:     p.CommanderActive,
			AbilityUsedThisTurn: p.AbilityUsedThisTurn,
			AbilityUses:         AbilityCounts(e.stats.abilityUses[i]),
		}
	}
	return s
}

// Cell returns the view of c, or false when c is off the board.
func (s Snapshot) Cell(c core.Coordinate) (CellView, bool) {
	if !c.IsValid(s.Size) {
		return CellView{}, false
	}
	return s.Cells[c.ToIndex(s.Size)], true
}

// Mover returns the view of the player to move.
func (s Snapshot) Mover() PlayerView {
	if pid := s.CurrentPlayer.PlayerIndex(); pid >= 0 && pid < core.NumPlayers {
		return s.Players[pid]
	}
	return PlayerView{}
}

// Shows reports whether the mover currently sees the true state of the cell.
func (cv CellView) Shows(fogOfWar bool) bool {
	return !fogOfWar || cv.Visible
}

// DisplayOwner is the owner a renderer should draw: the real owner when the
// cell is visible, the remembered one otherwise.
func (cv CellView) DisplayOwner(fogOfWar bool) core.Owner {
	if cv.Shows(fogOfWar) {
		return cv.Owner
	}
	return cv.LastSeenOwner
}

package game

import (
	"time"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// matchCounters accumulates per-player statistics during a match.
type matchCounters struct {
	captures                [core.NumPlayers]int
	reclaimed               [core.NumPlayers]int
	sabotage                [core.NumPlayers]int
	fortificationsDestroyed [core.NumPlayers]int
	abilityUses             [core.NumPlayers][abilities.NumKinds]int
}

func (m *matchCounters) recordAbility(pid int, effect abilities.Effect) {
	m.abilityUses[pid][effect.Kind]++
	m.fortificationsDestroyed[pid] += effect.FortificationsDestroyed
	m.sabotage[pid] += effect.SabotageBonus
}

// PlayerStats is one player's line in MatchStats.
type PlayerStats struct {
	ID                      core.Owner
	Score                   int
	Spent                   int
	Balance                 int
	CellsOwned              int
	Captures                int
	CellsReclaimed          int
	SabotageCollected       int
	FortificationsDestroyed int
	AbilityUses             AbilityCounts
	CommanderActive         bool
}

// AbilityCounts is how often each ability kind was invoked, indexed by kind.
type AbilityCounts [abilities.NumKinds]int

// Total sums the per-kind counts.
func (c AbilityCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// TotalAbilityUses sums the per-kind usage counts.
func (ps PlayerStats) TotalAbilityUses() int {
	return ps.AbilityUses.Total()
}

// MatchStats summarises a match in progress or a finished one.
type MatchStats struct {
	MatchID  string
	Turns    int
	GameOver bool
	Winner   core.Owner
	Duration time.Duration
	Players  [core.NumPlayers]PlayerStats
}

// Stats builds the statistics from the current board and counters.
func (e *Engine) Stats() MatchStats {
	ms := MatchStats{
		MatchID:  e.matchID,
		Turns:    e.turn,
		GameOver: e.gameOver,
		Winner:   e.winner,
	}
	if !e.startTime.IsZero() {
		ms.Duration = time.Since(e.startTime)
	}

	for pid := range e.players {
		p := &e.players[pid]
		ms.Players[pid] = PlayerStats{
			ID:                      p.ID,
			Score:                   p.Score,
			Spent:                   p.Spent,
			Balance:                 p.Balance(),
			CellsOwned:              e.board.CountOwned(p.ID),
			Captures:                e.stats.captures[pid],
			CellsReclaimed:          e.stats.reclaimed[pid],
			SabotageCollected:       e.stats.sabotage[pid],
			FortificationsDestroyed: e.stats.fortificationsDestroyed[pid],
			AbilityUses:             AbilityCounts(e.stats.abilityUses[pid]),
			CommanderActive:         p.CommanderActive,
		}
	}
	return ms
}

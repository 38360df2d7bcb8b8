package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/events"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/rules"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/states"
)

// GameConfig holds the settings for one match.
type GameConfig struct {
	Size      int // requested board size; snapped to the tier table
	Rng       *rand.Rand
	Logger    zerolog.Logger
	MatchID   string // generated when empty
	FogOfWar  bool
	Tiers     core.TierTable   // defaults to core.DefaultTiers
	Abilities abilities.Config // zero value means abilities.DefaultConfig

	// Sabotage value range and placement draws; zero fields use mapgen defaults
	MinSabotageValue int
	MaxSabotageValue int
	PlacementRetries int

	// EventBus lets callers subscribe before match.started is published.
	EventBus *events.EventBus

	// Board replaces map generation when set. It must have both kings placed.
	Board *core.Board
}

// Engine runs a single two-player match. It is not safe for concurrent use;
// callers drive it from one goroutine.
type Engine struct {
	board    *core.Board
	tier     core.Tier
	players  [core.NumPlayers]core.Player
	current  int // index of the player to move
	turn     int
	gameOver bool
	winner   core.Owner
	fogOfWar bool

	// revealed is the scouting area kept visible for the rest of the turn
	revealed []core.Coordinate

	abilityCfg    abilities.Config
	logger        zerolog.Logger
	matchID       string
	lastRejection string
	startTime     time.Time
	turnStartTime time.Time
	stats         matchCounters

	visibility    *rules.VisibilityCalculator
	legalMoves    *rules.LegalMoveCalculator
	reclaimer     *rules.Reclaimer
	winCondition  *rules.WinConditionChecker
	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	turnProcessor *TurnProcessor
}

// NewEngine creates a match and starts the first turn for Player 1.
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// recompute refreshes the mover's visibility and capture targets. It runs on
// turn start, after every cursor move and after every board mutation.
func (e *Engine) recompute() (visible, available int) {
	mover := &e.players[e.current]
	visible = e.visibility.Recompute(e.board, mover, e.revealed)
	available = e.legalMoves.Recompute(e.board, mover.ID)
	return visible, available
}

// reclaim runs enclosure reclamation and publishes one event per player that
// gained cells.
func (e *Engine) reclaim() rules.ReclaimReport {
	report := e.reclaimer.Reclaim(e.board, e.players[:])
	if !report.Changed() {
		return report
	}

	var cells [core.NumPlayers][]core.Coordinate
	for _, rec := range report.Cells {
		if pid := rec.To.PlayerIndex(); pid >= 0 {
			cells[pid] = append(cells[pid], rec.Coord)
			e.stats.sabotage[pid] += rec.SabotageBonus
		}
	}
	for pid := range cells {
		if len(cells[pid]) == 0 {
			continue
		}
		e.stats.reclaimed[pid] += len(cells[pid])
		e.eventBus.Publish(events.NewRegionReclaimedEvent(
			e.matchID, int(core.OwnerFor(pid)), e.turn, cells[pid], report.Points[pid]))
	}
	return report
}

// Public accessors

func (e *Engine) MatchID() string { return e.matchID }
func (e *Engine) Turn() int { return e.turn }
func (e *Engine) IsGameOver() bool { return e.gameOver }
func (e *Engine) Tier() core.Tier { return e.tier }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }
func (e *Engine) Phase() states.GamePhase { return e.stateMachine.CurrentPhase() }
func (e *Engine) FogOfWar() bool { return e.fogOfWar }
func (e *Engine) AbilityConfig() abilities.Config { return e.abilityCfg }

// CurrentPlayer returns the owner value (1 or 2) of the player to move.
func (e *Engine) CurrentPlayer() core.Owner { return e.players[e.current].ID }

// GetWinner returns the winner, or OwnerNone while the match is running.
func (e *Engine) GetWinner() core.Owner { return e.winner }

// Player returns a copy of the player with the given owner value.
func (e *Engine) Player(id core.Owner) (core.Player, bool) {
	pid := id.PlayerIndex()
	if pid < 0 || pid >= core.NumPlayers {
		return core.Player{}, false
	}
	return e.players[pid], true
}

// Catalog lists the abilities with prices for the player to move.
func (e *Engine) Catalog() []abilities.Entry {
	return abilities.Catalog(e.abilityCfg, &e.players[e.current], e.stats.abilityUses[e.current][:])
}

// TransitionHistory exposes the phase history for debugging tools.
func (e *Engine) TransitionHistory() []states.Transition {
	return e.stateMachine.GetHistory()
}

package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/events"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/states"
)

// Turn end reasons reported in turn.ended events
const (
	EndReasonCapture = "capture"
	EndReasonPass    = "pass"
)

// TurnProcessor drives the phase transitions around a player's turn
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// BeginTurn starts the next turn for the current player: resets the mover's
// once-per-turn flag, drops last turn's scouting reveal, recomputes, and opens
// the action phase.
func (tp *TurnProcessor) BeginTurn() error {
	e := tp.engine
	e.turn++

	ctx := e.stateMachine.GetContext()
	ctx.Turn = e.turn
	ctx.CurrentPlayer = e.current

	if err := e.stateMachine.TransitionTo(states.PhaseTurnStart, "turn started"); err != nil {
		return core.WrapGameStateError(e.turn, states.PhaseTurnStart.String(), err)
	}
	if e.startTime.IsZero() {
		e.startTime = ctx.StartTime
	}
	e.turnStartTime = ctx.TurnStartTime

	mover := &e.players[e.current]
	mover.AbilityUsedThisTurn = false
	e.revealed = nil
	visible, available := e.recompute()

	e.eventBus.Publish(events.NewTurnStartedEvent(e.matchID, e.turn, int(mover.ID), available, visible))

	turnLog := tp.turnLogger()
	turnLog.Debug().
		Int("available_cells", available).
		Int("visible_cells", visible).
		Msg("Turn started")

	if err := e.stateMachine.TransitionTo(states.PhaseAwaitingAction, "awaiting action"); err != nil {
		return core.WrapGameStateError(e.turn, states.PhaseAwaitingAction.String(), err)
	}
	return nil
}

// EndTurn closes the current turn and hands the move to the opponent.
func (tp *TurnProcessor) EndTurn(reason string) error {
	e := tp.engine

	if err := e.stateMachine.TransitionTo(states.PhaseTurnEnd, reason); err != nil {
		return core.WrapGameStateError(e.turn, states.PhaseTurnEnd.String(), err)
	}

	mover := e.players[e.current]
	e.eventBus.Publish(events.NewTurnEndedEvent(e.matchID, e.turn, int(mover.ID), reason, time.Since(e.turnStartTime)))
	turnLog := tp.turnLogger()
	turnLog.Debug().Str("reason", reason).Msg("Turn ended")

	e.current = core.Opponent(e.current)
	return tp.BeginTurn()
}

// FinishMatch records the winner and moves to the terminal phase.
func (tp *TurnProcessor) FinishMatch(winner core.Owner, reason string) error {
	e := tp.engine

	e.gameOver = true
	e.winner = winner
	e.stateMachine.GetContext().Winner = int(winner)

	if err := e.stateMachine.TransitionTo(states.PhaseMatchOver, reason); err != nil {
		return core.WrapGameStateError(e.turn, states.PhaseMatchOver.String(), err)
	}

	var scores [core.NumPlayers]int
	for pid := range e.players {
		scores[pid] = e.players[pid].Score
	}
	e.eventBus.Publish(events.NewGameEndedEvent(e.matchID, int(winner), time.Since(e.startTime), e.turn, scores))

	tp.logger.Info().
		Int("winner", int(winner)).
		Int("final_turn", e.turn).
		Ints("scores", scores[:]).
		Msg("Match over")
	return nil
}

// checkWin ends the match if a king has changed hands. It reports whether
// the match ended.
func (tp *TurnProcessor) checkWin(reason string) (bool, error) {
	over, winner := tp.engine.winCondition.Check(tp.engine.board)
	if !over {
		return false, nil
	}
	return true, tp.FinishMatch(winner, reason)
}

func (tp *TurnProcessor) turnLogger() zerolog.Logger {
	e := tp.engine
	return tp.logger.With().
		Int("turn", e.turn).
		Int("player", int(e.players[e.current].ID)).
		Logger()
}

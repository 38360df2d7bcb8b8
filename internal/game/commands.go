package game

import (
	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/events"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/rules"
)

// Result reports what an accepted command did.
type Result struct {
	Command                 core.CommandType
	PlayerID                core.Owner
	Points                  int // score gained by the acting player
	CellsChanged            int
	FortificationsDestroyed int
	TurnEnded               bool
	MatchEnded              bool
}

// MoveCursor moves the current player's cursor one cell. It never ends the turn.
func (e *Engine) MoveCursor(dir core.Direction) (Result, error) {
	if err := e.checkCanAct(); err != nil {
		return e.reject(core.CommandMoveCursor, err)
	}
	mover := &e.players[e.current]
	from := mover.Cursor
	if err := core.MoveCursor(e.board, mover, dir); err != nil {
		return e.reject(core.CommandMoveCursor, err)
	}

	e.lastRejection = ""
	e.recompute()
	e.eventBus.Publish(events.NewCursorMovedEvent(e.matchID, int(mover.ID), e.turn, dir, from, mover.Cursor))

	return Result{Command: core.CommandMoveCursor, PlayerID: mover.ID}, nil
}

// AttemptCapture captures the cell under the cursor. Success ends the turn.
func (e *Engine) AttemptCapture() (Result, error) {
	if err := e.checkCanAct(); err != nil {
		return e.reject(core.CommandCapture, err)
	}
	mover := &e.players[e.current]
	before := mover.Score

	outcome, err := rules.Capture(e.board, mover, mover.Cursor)
	if err != nil {
		return e.reject(core.CommandCapture, err)
	}
	e.lastRejection = ""
	e.stats.captures[e.current]++
	e.stats.sabotage[e.current] += outcome.SabotageBonus

	e.eventBus.Publish(events.NewCellCapturedEvent(
		e.matchID, int(mover.ID), e.turn, outcome.Target,
		int(outcome.PreviousOwner), outcome.Points, outcome.SabotageBonus, outcome.KingCaptured))

	res := Result{Command: core.CommandCapture, PlayerID: mover.ID, CellsChanged: 1}

	if outcome.KingCaptured {
		res.MatchEnded = true
		res.Points = mover.Score - before
		return res, e.turnProcessor.FinishMatch(mover.ID, "king captured")
	}

	report := e.reclaim()
	res.CellsChanged += len(report.Cells)
	e.recompute()
	res.Points = mover.Score - before

	over, err := e.turnProcessor.checkWin("king enclosed")
	if err != nil || over {
		res.MatchEnded = over
		return res, err
	}

	res.TurnEnded = true
	return res, e.turnProcessor.EndTurn(EndReasonCapture)
}

// InvokeAbility uses the ability at index (table order) on the cursor cell.
// dir is only read by directional abilities. The turn continues afterwards.
func (e *Engine) InvokeAbility(index int, dir core.Direction) (Result, error) {
	if err := e.checkCanAct(); err != nil {
		return e.reject(core.CommandAbility, err)
	}
	kind, err := abilities.FromIndex(index)
	if err != nil {
		return e.reject(core.CommandAbility, err)
	}

	mover := &e.players[e.current]
	before := mover.Score

	effect, err := abilities.Invoke(e.abilityCfg, abilities.Request{
		Kind:           kind,
		Board:          e.board,
		Caster:         mover,
		Target:         mover.Cursor,
		Direction:      dir,
		ScoutingRadius: e.tier.ScoutingRadius,
	})
	if err != nil {
		return e.reject(core.CommandAbility, err)
	}
	e.lastRejection = ""
	if len(effect.Revealed) > 0 {
		e.revealed = append(e.revealed, effect.Revealed...)
	}
	e.stats.recordAbility(e.current, effect)

	res := Result{
		Command:                 core.CommandAbility,
		PlayerID:                mover.ID,
		CellsChanged:            len(effect.Changed),
		FortificationsDestroyed: effect.FortificationsDestroyed,
	}

	report := e.reclaim()
	res.CellsChanged += len(report.Cells)
	e.recompute()
	res.Points = mover.Score - before

	e.eventBus.Publish(events.NewAbilityUsedEvent(
		e.matchID, int(mover.ID), e.turn, kind.String(), mover.Cursor, dir,
		effect.Cost, len(effect.Changed), effect.FortificationsDestroyed, effect.SabotageBonus))

	e.logger.Debug().
		Int("turn", e.turn).
		Int("player", int(mover.ID)).
		Str("ability", kind.String()).
		Int("cost", effect.Cost).
		Int("balance", mover.Balance()).
		Msg("Ability used")

	if effect.KingCaptured {
		res.MatchEnded = true
		return res, e.turnProcessor.FinishMatch(mover.ID, kind.String()+" took the king")
	}
	over, err := e.turnProcessor.checkWin("king enclosed")
	res.MatchEnded = over
	return res, err
}

// PassTurn ends the turn without capturing.
func (e *Engine) PassTurn() (Result, error) {
	if err := e.checkCanAct(); err != nil {
		return e.reject(core.CommandPass, err)
	}
	e.lastRejection = ""
	res := Result{Command: core.CommandPass, PlayerID: e.players[e.current].ID, TurnEnded: true}
	return res, e.turnProcessor.EndTurn(EndReasonPass)
}

// Execute dispatches a Command from the input layer. Commands from the player
// not on the move are rejected.
func (e *Engine) Execute(cmd core.Command) (Result, error) {
	if cmd.PlayerID != int(e.players[e.current].ID) {
		return e.reject(cmd.Type, core.ErrNotYourTurn)
	}
	switch cmd.Type {
	case core.CommandMoveCursor:
		return e.MoveCursor(cmd.Direction)
	case core.CommandCapture:
		return e.AttemptCapture()
	case core.CommandAbility:
		return e.InvokeAbility(cmd.Ability, cmd.Direction)
	case core.CommandPass:
		return e.PassTurn()
	default:
		return e.reject(cmd.Type, core.ErrUnknownCommand)
	}
}

func (e *Engine) checkCanAct() error {
	if e.gameOver {
		return core.ErrGameOver
	}
	if !e.stateMachine.CurrentPhase().CanReceiveCommands() {
		return core.ErrNotYourTurn
	}
	return nil
}

// reject records and publishes a refused command. Nothing else changes.
func (e *Engine) reject(cmd core.CommandType, err error) (Result, error) {
	playerID := int(e.players[e.current].ID)
	wrapped := core.WrapCommandError(playerID, cmd.String(), err)
	e.lastRejection = wrapped.Error()

	e.logger.Debug().
		Err(err).
		Int("turn", e.turn).
		Int("player", playerID).
		Str("command", cmd.String()).
		Msg("Command rejected")

	e.eventBus.Publish(events.NewCommandRejectedEvent(e.matchID, playerID, e.turn, cmd.String(), err))
	return Result{Command: cmd, PlayerID: e.players[e.current].ID}, wrapped
}

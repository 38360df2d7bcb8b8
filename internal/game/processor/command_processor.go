// Package processor replays scripted command sequences against a match. The
// preview tool and the engine tests use it to drive games without a UI.
package processor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CellWarfare/internal/game"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// Executor is the part of the engine the processor drives.
type Executor interface {
	Execute(cmd core.Command) (game.Result, error)
	CurrentPlayer() core.Owner
	IsGameOver() bool
}

// Summary describes one Process run.
type Summary struct {
	Applied  int
	Rejected int
	Results  []game.Result
	Stopped  bool // the match ended before the script did
}

// CommandProcessor feeds commands to an Executor on behalf of the player to move
type CommandProcessor struct {
	logger zerolog.Logger
}

// NewCommandProcessor creates a new command processor
func NewCommandProcessor(logger zerolog.Logger) *CommandProcessor {
	return &CommandProcessor{
		logger: logger.With().Str("component", "CommandProcessor").Logger(),
	}
}

// Process executes cmds in order. Commands with PlayerID 0 are issued for the
// player to move. Rejected commands are skipped; the first rejection is
// returned once the script has run.
func (cp *CommandProcessor) Process(ctx context.Context, exec Executor, cmds []core.Command) (Summary, error) {
	var summary Summary
	var encounteredError error

	for i, cmd := range cmds {
		select {
		case <-ctx.Done():
			cp.logger.Warn().Err(ctx.Err()).Int("step", i).Msg("Command processing interrupted by context cancellation")
			return summary, ctx.Err()
		default:
		}

		if exec.IsGameOver() {
			cp.logger.Debug().Int("step", i).Int("remaining", len(cmds)-i).Msg("Match over, dropping remaining commands")
			summary.Stopped = true
			break
		}

		if cmd.PlayerID == 0 {
			cmd.PlayerID = int(exec.CurrentPlayer())
		}

		res, err := exec.Execute(cmd)
		if err != nil {
			summary.Rejected++
			cp.logger.Debug().Err(err).
				Int("step", i).
				Int("player_id", cmd.PlayerID).
				Str("command", core.GetCommandType(&cmd)).
				Msg("Command rejected")
			if encounteredError == nil {
				encounteredError = fmt.Errorf("step %d: %w", i+1, err)
			}
			continue
		}
		summary.Applied++
		summary.Results = append(summary.Results, res)
	}

	return summary, encounteredError
}

// ParseScript decodes a whitespace or comma separated command script:
//
//	w a s d up down left right   move the cursor
//	c capture                    capture the cursor cell
//	p pass                       end the turn
//	3 3:right assault:up         ability by menu number (1-7) or name,
//	                             with an optional direction
func ParseScript(script string) ([]core.Command, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == ';'
	})

	cmds := make([]core.Command, 0, len(fields))
	for _, tok := range fields {
		cmd, err := ParseCommand(tok)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// ParseCommand decodes one script token.
func ParseCommand(tok string) (core.Command, error) {
	tok = strings.ToLower(strings.TrimSpace(tok))
	switch tok {
	case "c", "capture":
		return core.Command{Type: core.CommandCapture, Direction: core.NoDirection}, nil
	case "p", "pass":
		return core.Command{Type: core.CommandPass, Direction: core.NoDirection}, nil
	}
	if dir, err := core.ParseDirection(tok); err == nil {
		return core.Command{Type: core.CommandMoveCursor, Direction: dir}, nil
	}

	name, dirPart, hasDir := strings.Cut(tok, ":")
	cmd := core.Command{Type: core.CommandAbility, Direction: core.NoDirection}

	if n, err := strconv.Atoi(name); err == nil {
		if _, err := abilities.FromIndex(n - 1); err != nil {
			return core.Command{}, fmt.Errorf("command %q: %w", tok, err)
		}
		cmd.Ability = n - 1
	} else {
		kind, err := abilities.ParseKind(name)
		if err != nil {
			return core.Command{}, fmt.Errorf("command %q: %w", tok, core.ErrUnknownCommand)
		}
		cmd.Ability = int(kind)
	}

	if hasDir {
		dir, err := core.ParseDirection(dirPart)
		if err != nil {
			return core.Command{}, fmt.Errorf("command %q: %w", tok, err)
		}
		cmd.Direction = dir
	}
	return cmd, nil
}

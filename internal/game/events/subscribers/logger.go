package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id       string
	logger   zerolog.Logger
	logLevel zerolog.Level
	filter   events.TypeSet // empty means log all
	devMode  bool           // log the full event as JSON
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	ls.filter = events.NewTypeSet(eventTypes...)
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	return ls.filter.Matches(eventType)
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	ctx := ls.logger.With().
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID()).
		Time("timestamp", event.Timestamp())
	if scope := event.Scope(); scope.PlayerID != 0 || scope.Turn != 0 {
		ctx = ctx.Int("player_id", scope.PlayerID).Int("turn", scope.Turn)
	}
	eventLogger := ctx.Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Int("board_size", e.BoardSize).
			Int("sabotage_cells", e.SabotageCells).
			Bool("fog_of_war", e.FogOfWar).
			Int("initial_player", e.InitialPlayer)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn).
			Ints("scores", e.Scores[:])

	case *events.TurnStartedEvent:
		logEvent.
			Int("available_cells", e.AvailableCells).
			Int("visible_cells", e.VisibleCells)

	case *events.TurnEndedEvent:
		logEvent.
			Str("reason", e.Reason).
			Dur("turn_time", e.Duration)

	case *events.CursorMovedEvent:
		logEvent.
			Str("direction", e.Direction.String()).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y)

	case *events.CellCapturedEvent:
		logEvent.
			Int("location_x", e.Location.X).
			Int("location_y", e.Location.Y).
			Int("previous_owner", e.PreviousOwner).
			Int("points", e.Points).
			Int("sabotage_bonus", e.SabotageBonus).
			Bool("king_captured", e.KingCaptured)

	case *events.AbilityUsedEvent:
		logEvent.
			Str("ability", e.Ability).
			Int("target_x", e.Target.X).
			Int("target_y", e.Target.Y).
			Int("cost", e.Cost).
			Int("cells_changed", e.CellsChanged).
			Int("fortifications_destroyed", e.FortificationsDestroyed).
			Int("sabotage_bonus", e.SabotageBonus)

	case *events.RegionReclaimedEvent:
		logEvent.
			Int("cells", len(e.Cells)).
			Int("points", e.Points)

	case *events.CommandRejectedEvent:
		logEvent.
			Str("command", e.Command).
			Str("reason", e.Reason)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Match event")
}

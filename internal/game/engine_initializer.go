package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/events"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/mapgen"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/rules"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/states"
)

// EngineInitializer handles the construction of a match engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize builds the board and players, wires the rule components and
// starts turn 1 for Player 1.
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before start")
		return nil, ctx.Err()
	default:
	}

	if err := ei.setupDefaults(); err != nil {
		return nil, err
	}

	tier := ei.config.Tiers.Select(ei.config.Size)
	if ei.config.Board != nil {
		tier = ei.config.Tiers.Select(ei.config.Board.Size)
	}
	if tier.Size != ei.config.Size && ei.config.Board == nil {
		ei.logger.Info().
			Int("requested_size", ei.config.Size).
			Int("board_size", tier.Size).
			Msg("Board size snapped to tier")
	}

	board, err := ei.buildBoard(tier)
	if err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	players, err := ei.initializePlayers(board)
	if err != nil {
		return nil, err
	}

	engine := ei.createEngine(board, tier, players)

	sabotageCells, sabotageTotal := mapgen.SabotageSummary(board)
	engine.eventBus.Publish(events.NewMatchStartedEvent(
		engine.matchID,
		board.Size,
		sabotageCells,
		engine.fogOfWar,
	))

	if err := engine.turnProcessor.BeginTurn(); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.logger.Info().
		Int("board_size", board.Size).
		Int("sabotage_cells", sabotageCells).
		Int("sabotage_total", sabotageTotal).
		Bool("fog_of_war", engine.fogOfWar).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in missing configuration
func (ei *EngineInitializer) setupDefaults() error {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.MatchID == "" {
		ei.config.MatchID = uuid.NewString()
	}

	if len(ei.config.Tiers) == 0 {
		ei.config.Tiers = core.DefaultTiers()
	}
	if err := ei.config.Tiers.Validate(); err != nil {
		return fmt.Errorf("invalid tier table: %w", err)
	}

	if ei.config.Abilities == (abilities.Config{}) {
		ei.config.Abilities = abilities.DefaultConfig()
	}
	if err := ei.config.Abilities.Validate(); err != nil {
		return fmt.Errorf("invalid ability config: %w", err)
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.config.Logger)
	}

	return nil
}

// buildBoard generates the map or adopts the prebuilt board
func (ei *EngineInitializer) buildBoard(tier core.Tier) (*core.Board, error) {
	if ei.config.Board != nil {
		return ei.config.Board, nil
	}
	mapCfg := mapgen.DefaultMapConfig(tier)
	if ei.config.MinSabotageValue > 0 {
		mapCfg.MinSabotageValue = ei.config.MinSabotageValue
	}
	if ei.config.MaxSabotageValue > 0 {
		mapCfg.MaxSabotageValue = ei.config.MaxSabotageValue
	}
	if ei.config.PlacementRetries > 0 {
		mapCfg.MaxAttempts = ei.config.PlacementRetries
	}
	generator := mapgen.NewGenerator(mapCfg, ei.config.Rng)
	return generator.GenerateMap()
}

// initializePlayers creates both players on their king cells
func (ei *EngineInitializer) initializePlayers(board *core.Board) ([core.NumPlayers]core.Player, error) {
	var players [core.NumPlayers]core.Player
	for pid := 0; pid < core.NumPlayers; pid++ {
		owner := core.OwnerFor(pid)
		king, ok := board.KingOf(owner)
		if !ok {
			return players, core.NewGameError(0, int(owner), "initialize players", core.ErrInvalidPlayer)
		}
		players[pid] = core.NewPlayer(owner, king)
	}
	return players, nil
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(board *core.Board, tier core.Tier, players [core.NumPlayers]core.Player) *Engine {
	logger := ei.logger.With().Str("match_id", ei.config.MatchID).Logger()
	eventBus := ei.config.EventBus

	// Every domain event goes to the debug log
	eventLogger := subscribers.NewLoggerSubscriber("engine-event-logger", logger, zerolog.DebugLevel)
	eventBus.Subscribe(eventLogger)

	gameContext := states.NewGameContext(ei.config.MatchID, ei.logger)
	stateMachine := states.NewStateMachine(gameContext, eventBus)

	engine := &Engine{
		board:        board,
		tier:         tier,
		players:      players,
		current:      0,
		fogOfWar:     ei.config.FogOfWar,
		abilityCfg:   ei.config.Abilities,
		logger:       logger,
		matchID:      ei.config.MatchID,
		visibility:   rules.NewVisibilityCalculator(logger, tier.VisibilityRadius, ei.config.FogOfWar),
		legalMoves:   rules.NewLegalMoveCalculator(ei.config.FogOfWar),
		reclaimer:    rules.NewReclaimer(logger),
		winCondition: rules.NewWinConditionChecker(logger),
		eventBus:     eventBus,
		stateMachine: stateMachine,
	}
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

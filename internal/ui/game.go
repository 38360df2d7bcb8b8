package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/CellWarfare/internal/common"
	"github.com/mitchelldurbincs/CellWarfare/internal/config"
	"github.com/mitchelldurbincs/CellWarfare/internal/game"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
	"github.com/mitchelldurbincs/CellWarfare/internal/ui/input"
	"github.com/mitchelldurbincs/CellWarfare/internal/ui/renderer"
)

// MatchFactory builds a fresh engine. It is called at startup and whenever a
// finished match is restarted, so it should read the current configuration.
type MatchFactory func() (*game.Engine, error)

// UIGame holds the engine instance and UI-specific state. It implements
// ebiten.Game for a hot-seat match between two people at one keyboard.
type UIGame struct {
	engine   *game.Engine
	newMatch MatchFactory

	boardRenderer *renderer.BoardRenderer
	hudRenderer   *renderer.HUDRenderer
	input         *input.Handler
	defaultFont   font.Face
	palette       common.Palette

	// layout is fixed for the life of a match
	layout common.ScreenLayout

	logger   zerolog.Logger
	lastTurn int
}

// NewUIGame creates a new Ebitengine game and starts the first match.
func NewUIGame(newMatch MatchFactory, logger zerolog.Logger) (*UIGame, error) {
	if newMatch == nil {
		return nil, fmt.Errorf("ui: nil match factory")
	}
	g := &UIGame{
		newMatch:    newMatch,
		defaultFont: basicfont.Face7x13,
		logger:      logger.With().Str("component", "UIGame").Logger(),
	}
	if err := g.startMatch(); err != nil {
		return nil, err
	}
	return g, nil
}

// startMatch builds a new engine and sizes the renderers for its board.
func (g *UIGame) startMatch() error {
	engine, err := g.newMatch()
	if err != nil {
		return fmt.Errorf("failed to start match: %w", err)
	}
	g.engine = engine
	g.lastTurn = engine.Turn()

	cfg := config.Get()
	g.palette = common.NewPalette(cfg.Colors)

	snap := engine.Snapshot()
	g.layout = common.NewScreenLayout(cfg.UI, snap.Size)
	tile := g.layout.TileSize

	g.boardRenderer = renderer.NewBoardRenderer(tile, g.defaultFont, g.palette)
	g.boardRenderer.SetOffset(g.layout.OffsetX, g.layout.OffsetY)
	g.boardRenderer.SetDebug(cfg.Development.ShowAllTiles, cfg.Development.ShowCoordinates)
	g.hudRenderer = renderer.NewHUDRenderer(g.defaultFont, g.palette)

	if g.input == nil {
		g.input = input.NewHandler(tile)
	}
	g.input.SetBoard(g.layout.OffsetX, g.layout.OffsetY, snap.Size, tile)
	g.input.Reset()

	g.logger.Info().
		Str("match_id", engine.MatchID()).
		Int("size", snap.Size).
		Int("visibility_radius", snap.Tier.VisibilityRadius).
		Int("tile_size", tile).
		Msg("Match started")
	return nil
}

// Update proceeds the game state.
func (g *UIGame) Update() error {
	if g.engine.IsGameOver() {
		g.input.Update(g.cursor())
		if g.input.RestartRequested() {
			if err := g.startMatch(); err != nil {
				return err
			}
		}
		return nil
	}

	for _, cmd := range g.input.Update(g.cursor()) {
		cmd.PlayerID = int(g.engine.CurrentPlayer())
		res, err := g.engine.Execute(cmd)
		if err != nil {
			// the rejection is shown in the HUD
			g.logger.Debug().Err(err).Str("command", cmd.Type.String()).Msg("Command rejected")
			g.input.Reset()
			break
		}
		if res.MatchEnded {
			g.logger.Info().
				Int("winner", int(g.engine.GetWinner())).
				Int("turn", g.engine.Turn()).
				Msg("Match finished")
			break
		}
	}

	if turn := g.engine.Turn(); turn != g.lastTurn {
		g.lastTurn = turn
		g.input.Reset()
	}
	return nil
}

// cursor returns the mover's cursor.
func (g *UIGame) cursor() core.Coordinate {
	p, _ := g.engine.Player(g.engine.CurrentPlayer())
	return p.Cursor
}

// Draw draws the game screen.
func (g *UIGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	snap := g.engine.Snapshot()
	g.boardRenderer.Draw(screen, snap)

	kind, pending := g.input.Pending()
	l := g.layout
	g.hudRenderer.Draw(screen, snap, renderer.Prompt{Kind: kind, Active: pending}, l.BoardAreaHeight(), l.Width, l.HUDHeight)
}

// Layout takes the outside size (e.g., the window size) and returns the (logical) screen size.
func (g *UIGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout.Width, g.layout.Height
}

// WindowSize is the window size the current match was laid out for.
func (g *UIGame) WindowSize() (int, int) {
	return g.layout.Width, g.layout.Height
}

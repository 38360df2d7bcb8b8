package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Tier             core.Tier
	MinSabotageValue int
	MaxSabotageValue int
	MaxAttempts      int // random draws allowed while scattering sabotage
}

// DefaultMapConfig returns a sensible default configuration for a tier
func DefaultMapConfig(tier core.Tier) MapConfig {
	return MapConfig{
		Tier:             tier,
		MinSabotageValue: 2,
		MaxSabotageValue: 5,
		MaxAttempts:      1000,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a new board with kings, home territory and sabotage cells
func (g *Generator) GenerateMap() (*core.Board, error) {
	board := core.NewBoard(g.config.Tier.Size)

	if err := g.placeKings(board); err != nil {
		return nil, err
	}
	g.paintHomeTerritory(board)
	g.placeSabotage(board)

	return board, nil
}

// KingPlacements returns the fixed king corners for a board size.
func KingPlacements(size int) [core.NumPlayers]core.Coordinate {
	return [core.NumPlayers]core.Coordinate{
		core.NewCoordinate(0, 0),
		core.NewCoordinate(size-1, size-1),
	}
}

func (g *Generator) placeKings(b *core.Board) error {
	for pid, c := range KingPlacements(b.Size) {
		if err := b.PlaceKing(c, core.OwnerFor(pid)); err != nil {
			return fmt.Errorf("placing king for player %d at %v: %w", pid+1, c, err)
		}
	}
	return nil
}

func (g *Generator) paintHomeTerritory(b *core.Board) {
	edge := g.config.Tier.InitialTerritory
	if edge > b.Size {
		edge = b.Size
	}

	for pid, king := range KingPlacements(b.Size) {
		owner := core.OwnerFor(pid)
		// Player 1 grows right/down from (0,0), player 2 left/up from the far corner.
		step := 1
		if pid == 1 {
			step = -1
		}
		for dy := 0; dy < edge; dy++ {
			for dx := 0; dx < edge; dx++ {
				c := core.NewCoordinate(king.X+step*dx, king.Y+step*dy)
				cell := b.Cell(c)
				if cell == nil || cell.IsKing() {
					continue
				}
				cell.Owner = owner
			}
		}
	}
}

func (g *Generator) placeSabotage(b *core.Board) int {
	want := g.config.Tier.SabotageTarget()

	free := 0
	for i := range b.T {
		if sabotageCandidate(&b.T[i]) {
			free++
		}
	}
	if want > free {
		want = free
	}

	spread := g.config.MaxSabotageValue - g.config.MinSabotageValue + 1
	if spread < 1 {
		spread = 1
	}

	placed := 0
	for attempts := 0; placed < want && attempts < g.config.MaxAttempts; attempts++ {
		x, y := g.rng.Intn(b.Size), g.rng.Intn(b.Size)
		cell := &b.T[b.Idx(x, y)]

		if !sabotageCandidate(cell) {
			continue
		}
		cell.Sabotage = true
		cell.SabotageValue = g.config.MinSabotageValue + g.rng.Intn(spread)
		placed++
	}
	return placed
}

func sabotageCandidate(c *core.Cell) bool {
	return c.IsNeutral() && !c.IsKing() && !c.Sabotage
}

// SabotageSummary counts sabotage cells and their combined payout.
func SabotageSummary(b *core.Board) (cells, total int) {
	for i := range b.T {
		if b.T[i].Sabotage {
			cells++
			total += b.T[i].SabotageValue
		}
	}
	return cells, total
}

package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CellWarfare/internal/config"
)

// DefaultGameConfig builds a GameConfig from the loaded configuration. Rng and
// MatchID are left empty so the initializer seeds and generates them.
func DefaultGameConfig(logger zerolog.Logger) GameConfig {
	c := config.Get()
	return GameConfig{
		Size:             c.Game.Board.DefaultSize,
		Logger:           logger,
		FogOfWar:         c.Game.FogOfWar.Enabled,
		Tiers:            c.Tiers(),
		Abilities:        c.Abilities(),
		MinSabotageValue: c.Game.Board.MinSabotageValue,
		MaxSabotageValue: c.Game.Board.MaxSabotageValue,
		PlacementRetries: c.Game.Board.PlacementRetries,
	}
}

// ApplyFogMode overrides FogOfWar from a command line value: "on", "off", or
// empty to keep the configured setting.
func (gc *GameConfig) ApplyFogMode(mode string) error {
	switch mode {
	case "":
	case "on":
		gc.FogOfWar = true
	case "off":
		gc.FogOfWar = false
	default:
		return fmt.Errorf("invalid fog mode %q (want on, off or empty)", mode)
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/CellWarfare/internal/config"
	"github.com/mitchelldurbincs/CellWarfare/internal/game"
	"github.com/mitchelldurbincs/CellWarfare/internal/ui"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay merged from config.<env>.yaml next to the config file")
	size := flag.Int("size", 0, "Board size (0 to use config default)")
	seed := flag.Int64("seed", 0, "Random seed for the first match (0 for time based)")
	fog := flag.String("fog", "", "Fog of war: on, off or empty to use config default")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	watch := flag.Bool("watch", true, "Reload the config file when it changes; the next match uses it")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	setupLogging(*logLevel, cfg.Logging.Format)

	if *watch && config.ConfigFilePath() != "" {
		config.WatchConfig(func() {
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded; applies from the next match")
		})
	}

	firstSeed := *seed
	newMatch := func() (*game.Engine, error) {
		gc := game.DefaultGameConfig(log.Logger)
		if *size > 0 {
			gc.Size = *size
		}
		if err := gc.ApplyFogMode(*fog); err != nil {
			return nil, err
		}
		s := time.Now().UnixNano()
		if firstSeed != 0 {
			s, firstSeed = firstSeed, 0
		}
		gc.Rng = rand.New(rand.NewSource(s))
		log.Debug().Int64("seed", s).Msg("Seeding match")
		return game.NewEngine(context.Background(), gc)
	}

	uiGame, err := ui.NewUIGame(newMatch, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	ebiten.SetWindowSize(uiGame.WindowSize())
	ebiten.SetWindowTitle(config.Get().UI.Window.Title)

	if err := ebiten.RunGame(uiGame); err != nil {
		log.Fatal().Err(err).Msg("Game loop exited")
	}
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	// Pretty console output for development
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}

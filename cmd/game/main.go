package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/CellWarfare/internal/config"
	"github.com/mitchelldurbincs/CellWarfare/internal/game"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/processor"
)

// Prints a generated board and optionally replays a command script on it,
// for example: game -size 16 -seed 7 -script "d d c p 1:right"
func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay merged from config.<env>.yaml next to the config file")
	size := flag.Int("size", 0, "Board size (0 to use config default)")
	seed := flag.Int64("seed", 0, "Random seed (0 for time based)")
	color := flag.Bool("color", true, "Use ANSI colors")
	script := flag.String("script", "", "Commands to replay, e.g. \"d d c p 1:right\"")
	fog := flag.String("fog", "", "Fog of war: on, off or empty to use config default")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Get().Development.VerboseLogging {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gc := game.DefaultGameConfig(log.Logger)
	if *size > 0 {
		gc.Size = *size
	}
	if err := gc.ApplyFogMode(*fog); err != nil {
		fmt.Fprintf(os.Stderr, "fog: %v\n", err)
		os.Exit(2)
	}
	gc.Rng = rand.New(rand.NewSource(*seed))

	engine, err := game.NewEngine(context.Background(), gc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create engine")
	}
	snap := engine.Snapshot()
	sabotageCells, sabotageTotal := 0, 0
	for _, cv := range snap.Cells {
		if cv.Sabotage {
			sabotageCells++
			sabotageTotal += cv.SabotageValue
		}
	}
	log.Info().
		Int64("seed", *seed).
		Str("match_id", snap.MatchID).
		Int("size", snap.Size).
		Int("sabotage_cells", sabotageCells).
		Int("sabotage_total", sabotageTotal).
		Msg("Board generated")
	fmt.Print(snap.Render(*color))

	if *script == "" {
		return
	}
	cmds, err := processor.ParseScript(*script)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid script")
	}
	summary, err := processor.NewCommandProcessor(log.Logger).Process(context.Background(), engine, cmds)
	if err != nil {
		log.Warn().Err(err).Msg("Script had rejected commands")
	}
	fmt.Println()
	fmt.Print(engine.Snapshot().Render(*color))

	stats := engine.Stats()
	for _, p := range stats.Players {
		log.Info().
			Int("player", int(p.ID)).
			Int("score", p.Score).
			Int("cells", p.CellsOwned).
			Int("sabotage", p.SabotageCollected).
			Int("abilities", p.TotalAbilityUses()).
			Msg("Player summary")
	}
	log.Info().
		Int("applied", summary.Applied).
		Int("rejected", summary.Rejected).
		Bool("stopped", summary.Stopped).
		Msg("Script finished")
}

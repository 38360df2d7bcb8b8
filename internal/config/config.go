package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/CellWarfare/internal/game/abilities"
	"github.com/mitchelldurbincs/CellWarfare/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	UI          UIConfig          `mapstructure:"ui"`
	Colors      ColorsConfig      `mapstructure:"colors"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Board     BoardConfig     `mapstructure:"board"`
	FogOfWar  FogOfWarConfig  `mapstructure:"fog_of_war"`
	Abilities AbilitiesConfig `mapstructure:"abilities"`
}

// BoardConfig holds board size settings
type BoardConfig struct {
	DefaultSize      int          `mapstructure:"default_size"`
	MinSabotageValue int          `mapstructure:"min_sabotage_value"`
	MaxSabotageValue int          `mapstructure:"max_sabotage_value"`
	PlacementRetries int          `mapstructure:"placement_retries"`
	Tiers            []TierConfig `mapstructure:"tiers"`
}

// TierConfig is one row of the tier table
type TierConfig struct {
	Size             int `mapstructure:"size"`
	VisibilityRadius int `mapstructure:"visibility_radius"`
	ScoutingRadius   int `mapstructure:"scouting_radius"`
	InitialTerritory int `mapstructure:"initial_territory"`
	SabotageDivisor  int `mapstructure:"sabotage_divisor"`
	MinSabotage      int `mapstructure:"min_sabotage"`
}

// FogOfWarConfig holds fog of war settings
type FogOfWarConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// AbilitiesConfig holds ability prices and shapes
type AbilitiesConfig struct {
	Costs                      AbilityCostsConfig `mapstructure:"costs"`
	CommanderDiscount          int                `mapstructure:"commander_discount"`
	ParatrooperMinKingDistance int                `mapstructure:"paratrooper_min_king_distance"`
	ClusterBombRadius          int                `mapstructure:"cluster_bomb_radius"`
	ArtilleryRadius            int                `mapstructure:"artillery_radius"`
	AssaultLineLength          int                `mapstructure:"assault_line_length"`
	FortificationLength        int                `mapstructure:"fortification_length"`
}

// AbilityCostsConfig holds the base cost of each ability
type AbilityCostsConfig struct {
	Paratrooper   int `mapstructure:"paratrooper"`
	ClusterBomb   int `mapstructure:"cluster_bomb"`
	AssaultLine   int `mapstructure:"assault_line"`
	Commander     int `mapstructure:"commander"`
	Artillery     int `mapstructure:"artillery"`
	Fortification int `mapstructure:"fortification"`
	Scouting      int `mapstructure:"scouting"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds UI/client configuration
type UIConfig struct {
	Window WindowConfig `mapstructure:"window"`
	Game   UIGameConfig `mapstructure:"game"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// UIGameConfig holds UI game settings
type UIGameConfig struct {
	TileSize  int `mapstructure:"tile_size"`
	HUDHeight int `mapstructure:"hud_height"`
}

// ColorsConfig holds all color configurations
type ColorsConfig struct {
	Players PlayerColorsConfig `mapstructure:"players"`
	UI      UIColorsConfig     `mapstructure:"ui"`
}

// PlayerColorsConfig holds player color settings
type PlayerColorsConfig struct {
	Neutral [3]int `mapstructure:"neutral"`
	Player1 [3]int `mapstructure:"player_1"`
	Player2 [3]int `mapstructure:"player_2"`
}

// UIColorsConfig holds UI color settings
type UIColorsConfig struct {
	Background [3]int `mapstructure:"background"`
	GridLines  [3]int `mapstructure:"grid_lines"`
	Cursor     [3]int `mapstructure:"cursor"`
	Available  [4]int `mapstructure:"available"`
	Fortified  [3]int `mapstructure:"fortified"`
	Sabotage   [3]int `mapstructure:"sabotage"`
	FogOfWar   [4]int `mapstructure:"fog_of_war"`
	FogUnknown [4]int `mapstructure:"fog_unknown"`
	Text       [3]int `mapstructure:"text"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging  bool `mapstructure:"verbose_logging"`
	ShowAllTiles    bool `mapstructure:"show_all_tiles"`
	ShowCoordinates bool `mapstructure:"show_coordinates"`
}

var (
	// current is swapped whole on reload; readers never see a partial update.
	current atomic.Pointer[Config]

	// mu serializes access to v, which viper does not make goroutine safe.
	mu sync.Mutex
	v  *viper.Viper

	// overlay is the environment file merged by LoadEnvironmentConfig. It is
	// merged again after every reload of the base file.
	overlay string
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Board defaults
	v.SetDefault("game.board.default_size", 16)
	v.SetDefault("game.board.min_sabotage_value", 2)
	v.SetDefault("game.board.max_sabotage_value", 5)
	v.SetDefault("game.board.placement_retries", 1000)
	tiers := make([]map[string]interface{}, 0, 3)
	for _, t := range core.DefaultTiers() {
		tiers = append(tiers, map[string]interface{}{
			"size":              t.Size,
			"visibility_radius": t.VisibilityRadius,
			"scouting_radius":   t.ScoutingRadius,
			"initial_territory": t.InitialTerritory,
			"sabotage_divisor":  t.SabotageDivisor,
			"min_sabotage":      t.MinSabotage,
		})
	}
	v.SetDefault("game.board.tiers", tiers)

	// Fog of war defaults
	v.SetDefault("game.fog_of_war.enabled", true)

	// Ability defaults
	ab := abilities.DefaultConfig()
	v.SetDefault("game.abilities.costs.paratrooper", ab.Costs[abilities.Paratrooper])
	v.SetDefault("game.abilities.costs.cluster_bomb", ab.Costs[abilities.ClusterBomb])
	v.SetDefault("game.abilities.costs.assault_line", ab.Costs[abilities.AssaultLine])
	v.SetDefault("game.abilities.costs.commander", ab.Costs[abilities.Commander])
	v.SetDefault("game.abilities.costs.artillery", ab.Costs[abilities.Artillery])
	v.SetDefault("game.abilities.costs.fortification", ab.Costs[abilities.Fortification])
	v.SetDefault("game.abilities.costs.scouting", ab.Costs[abilities.Scouting])
	v.SetDefault("game.abilities.commander_discount", ab.DiscountPercent)
	v.SetDefault("game.abilities.paratrooper_min_king_distance", ab.ParatrooperMinKingDistance)
	v.SetDefault("game.abilities.cluster_bomb_radius", ab.ClusterBombRadius)
	v.SetDefault("game.abilities.artillery_radius", ab.ArtilleryRadius)
	v.SetDefault("game.abilities.assault_line_length", ab.AssaultLineLength)
	v.SetDefault("game.abilities.fortification_length", ab.FortificationLength)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// UI defaults
	v.SetDefault("ui.window.width", 960)
	v.SetDefault("ui.window.height", 720)
	v.SetDefault("ui.window.title", "Cell Warfare")
	v.SetDefault("ui.game.tile_size", 36)
	v.SetDefault("ui.game.hud_height", 150)

	// Color defaults
	v.SetDefault("colors.players.neutral", []int{120, 120, 120})
	v.SetDefault("colors.players.player_1", []int{200, 50, 50})
	v.SetDefault("colors.players.player_2", []int{50, 100, 200})

	v.SetDefault("colors.ui.background", []int{0, 0, 0})
	v.SetDefault("colors.ui.grid_lines", []int{50, 50, 50})
	v.SetDefault("colors.ui.cursor", []int{255, 220, 0})
	v.SetDefault("colors.ui.available", []int{255, 255, 255, 60})
	v.SetDefault("colors.ui.fortified", []int{230, 230, 230})
	v.SetDefault("colors.ui.sabotage", []int{250, 170, 30})
	v.SetDefault("colors.ui.fog_of_war", []int{0, 0, 0, 140})
	v.SetDefault("colors.ui.fog_unknown", []int{25, 25, 25, 255})
	v.SetDefault("colors.ui.text", []int{255, 255, 255})

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_all_tiles", false)
	v.SetDefault("development.show_coordinates", false)
}

// Init initializes the configuration system
func Init(configPath string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(configPath)
}

func initLocked(configPath string) error {
	v = viper.New()
	overlay = ""

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/cellwarfare")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("CW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
		// Config file not found; use defaults
	}

	next, err := decode(v)
	if err != nil {
		return err
	}
	current.Store(next)
	return nil
}

// decode unmarshals and validates a fresh Config from w.
func decode(w *viper.Viper) (*Config, error) {
	next := &Config{}
	if err := w.Unmarshal(next); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return next, nil
}

// Get returns the global configuration instance. The returned value is
// never mutated; a reload replaces it.
func Get() *Config {
	if c := current.Load(); c != nil {
		return c
	}
	mu.Lock()
	defer mu.Unlock()
	if c := current.Load(); c != nil {
		return c
	}
	// Initialize with defaults if not already initialized
	if err := initLocked(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	return current.Load()
}

// LoadEnvironmentConfig merges config.<env>.yaml, looked up next to the
// loaded config file, over the current settings. A missing overlay is not
// an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	if v == nil {
		if err := initLocked(""); err != nil {
			return err
		}
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if base := v.ConfigFileUsed(); base != "" {
		envFile = filepath.Join(filepath.Dir(base), envFile)
	}
	if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := mergeOverlay(v, envFile); err != nil {
		return err
	}
	overlay = envFile

	next, err := decode(v)
	if err != nil {
		return fmt.Errorf("environment %s: %w", env, err)
	}
	current.Store(next)
	return nil
}

// mergeOverlay merges file into w and points w back at its base file so a
// watcher keeps following the base.
func mergeOverlay(w *viper.Viper, file string) error {
	base := w.ConfigFileUsed()
	w.SetConfigFile(file)
	err := w.MergeInConfig()
	if base != "" {
		w.SetConfigFile(base)
	}
	if err != nil {
		return fmt.Errorf("error merging environment config %s: %w", file, err)
	}
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	mu.Lock()
	defer mu.Unlock()
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. A reloaded config that
// fails validation is discarded and the previous one stays active.
func WatchConfig(onChange func()) {
	mu.Lock()
	defer mu.Unlock()
	w, env := v, overlay
	w.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		var err error
		if env != "" {
			err = mergeOverlay(w, env)
		}
		var next *Config
		if err == nil {
			next, err = decode(w)
		}
		mu.Unlock()
		if err != nil {
			return
		}
		current.Store(next)
		if onChange != nil {
			onChange()
		}
	})
	w.WatchConfig()
}

// Tiers converts the configured tier rows into a core tier table.
func (c *Config) Tiers() core.TierTable {
	table := make(core.TierTable, 0, len(c.Game.Board.Tiers))
	for _, t := range c.Game.Board.Tiers {
		table = append(table, core.Tier{
			Size:             t.Size,
			VisibilityRadius: t.VisibilityRadius,
			ScoutingRadius:   t.ScoutingRadius,
			InitialTerritory: t.InitialTerritory,
			SabotageDivisor:  t.SabotageDivisor,
			MinSabotage:      t.MinSabotage,
		})
	}
	return table
}

// Abilities converts the configured ability settings into an abilities.Config.
func (c *Config) Abilities() abilities.Config {
	a := c.Game.Abilities
	var costs [abilities.NumKinds]int
	costs[abilities.Paratrooper] = a.Costs.Paratrooper
	costs[abilities.ClusterBomb] = a.Costs.ClusterBomb
	costs[abilities.AssaultLine] = a.Costs.AssaultLine
	costs[abilities.Commander] = a.Costs.Commander
	costs[abilities.Artillery] = a.Costs.Artillery
	costs[abilities.Fortification] = a.Costs.Fortification
	costs[abilities.Scouting] = a.Costs.Scouting

	return abilities.Config{
		Costs:                      costs,
		DiscountPercent:            a.CommanderDiscount,
		ParatrooperMinKingDistance: a.ParatrooperMinKingDistance,
		ClusterBombRadius:          a.ClusterBombRadius,
		ArtilleryRadius:            a.ArtilleryRadius,
		AssaultLineLength:          a.AssaultLineLength,
		FortificationLength:        a.FortificationLength,
	}
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate board settings
	if c.Game.Board.DefaultSize < 3 {
		return fmt.Errorf("game.board.default_size must be at least 3")
	}
	if c.Game.Board.MinSabotageValue < 1 || c.Game.Board.MaxSabotageValue < c.Game.Board.MinSabotageValue {
		return fmt.Errorf("game.board sabotage values must satisfy 1 <= min <= max")
	}
	if c.Game.Board.PlacementRetries < 1 {
		return fmt.Errorf("game.board.placement_retries must be positive")
	}
	if err := c.Tiers().Validate(); err != nil {
		return fmt.Errorf("game.board.tiers: %w", err)
	}
	if err := c.Abilities().Validate(); err != nil {
		return fmt.Errorf("game.abilities: %w", err)
	}

	// Validate logging
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a zerolog level", c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	// Validate UI configuration
	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.Game.TileSize <= 0 {
		return fmt.Errorf("ui.game.tile_size must be positive")
	}
	if c.UI.Game.HUDHeight < 0 {
		return fmt.Errorf("ui.game.hud_height must be non-negative")
	}

	// Validate color values
	validateRGB := func(rgb [3]int, name string) error {
		for i, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
			}
		}
		return nil
	}
	validateRGBA := func(rgba [4]int, name string) error {
		for i, v := range rgba {
			if v < 0 || v > 255 {
				return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
			}
		}
		return nil
	}

	rgb := map[string][3]int{
		"colors.players.neutral":  c.Colors.Players.Neutral,
		"colors.players.player_1": c.Colors.Players.Player1,
		"colors.players.player_2": c.Colors.Players.Player2,
		"colors.ui.background":    c.Colors.UI.Background,
		"colors.ui.grid_lines":    c.Colors.UI.GridLines,
		"colors.ui.cursor":        c.Colors.UI.Cursor,
		"colors.ui.fortified":     c.Colors.UI.Fortified,
		"colors.ui.sabotage":      c.Colors.UI.Sabotage,
		"colors.ui.text":          c.Colors.UI.Text,
	}
	for name, value := range rgb {
		if err := validateRGB(value, name); err != nil {
			return err
		}
	}
	rgba := map[string][4]int{
		"colors.ui.available":   c.Colors.UI.Available,
		"colors.ui.fog_of_war":  c.Colors.UI.FogOfWar,
		"colors.ui.fog_unknown": c.Colors.UI.FogUnknown,
	}
	for name, value := range rgba {
		if err := validateRGBA(value, name); err != nil {
			return err
		}
	}

	return nil
}

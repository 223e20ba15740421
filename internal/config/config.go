package config

import (
	"errors"
	"io"
	"os"
	"time"

	"highlow-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// ErrInvalidHandSize is returned when the configured hand size is not five
var ErrInvalidHandSize = errors.New("game.handSize must be 5")

// ErrInvalidMinPlayers is returned when fewer than two players could start a game
var ErrInvalidMinPlayers = errors.New("game.minPlayers must be at least 2")

// ErrInvalidDefaultRounds is returned when the default number of rounds is negative
var ErrInvalidDefaultRounds = errors.New("game.defaultRounds cannot be negative")

// Config provides configuration for the high/low server
type Config struct {
	loaded bool
	Addr   string    `yaml:"addr" envconfig:"addr"`
	Log    LogConfig `yaml:"log"`
	Game   Game      `yaml:"game"`
	Redis  Redis     `yaml:"redis"`
}

// LogConfig configures logging
type LogConfig struct {
	Level             string `yaml:"level" envconfig:"level"`
	DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
}

// Game configures new games
type Game struct {
	HandSize      int `yaml:"handSize" envconfig:"hand_size"`
	DefaultRounds int `yaml:"defaultRounds" envconfig:"default_rounds"`
	MinPlayers    int `yaml:"minPlayers" envconfig:"min_players"`
}

// Redis configures the event bus
type Redis struct {
	Enabled     bool          `yaml:"enabled" envconfig:"enabled"`
	URL         string        `yaml:"url" envconfig:"url"`
	Channel     string        `yaml:"channel" envconfig:"channel"`
	HistorySize int64         `yaml:"historySize" envconfig:"history_size"`
	HistoryTTL  time.Duration `yaml:"historyTTL" envconfig:"history_ttl"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Addr: ":5000",
		Log: LogConfig{
			Level: "info",
		},
		Game: Game{
			HandSize:      5,
			DefaultRounds: 5,
			MinPlayers:    2,
		},
		Redis: Redis{
			Enabled:     false,
			URL:         "redis://localhost:6379",
			Channel:     "highlow:events",
			HistorySize: 50,
			HistoryTTL:  24 * time.Hour,
		},
	}
}

// Validate checks the game settings
func (c Config) Validate() error {
	if c.Game.HandSize != 5 {
		return ErrInvalidHandSize
	}

	if c.Game.MinPlayers < 2 {
		return ErrInvalidMinPlayers
	}

	if c.Game.DefaultRounds < 0 {
		return ErrInvalidDefaultRounds
	}

	return nil
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values come from the defaults, then the YAML file in HLS_CONFIG_FILE (if it exists),
// then HLS_ prefixed environment variables
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HLS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && err != io.EOF {
			return err
		}
	case !os.IsNotExist(err):
		return err
	}

	if err := envconfig.Process("hls", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

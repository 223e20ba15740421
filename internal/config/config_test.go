package config

import (
	"os"
	"testing"
	"time"

	"highlow-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	config = Config{}
	clear1 := util.SetEnv("HLS_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("HLS_REDIS_CHANNEL", "tables")
	defer clear2()

	a := assert.New(t)
	cfg := Instance()
	a.Equal(":6000", cfg.Addr)
	a.Equal("debug", cfg.Log.Level)
	a.True(cfg.Log.DisableAccessLogs)
	a.Equal(3, cfg.Game.DefaultRounds)
	a.True(cfg.Redis.Enabled)
	a.Equal("redis://cache:6379/1", cfg.Redis.URL)
	a.Equal(time.Hour, cfg.Redis.HistoryTTL)
	a.Equal("tables", cfg.Redis.Channel)

	// not in the file
	a.Equal(5, cfg.Game.HandSize)
	a.Equal(2, cfg.Game.MinPlayers)
	a.Equal(int64(50), cfg.Redis.HistorySize)

	// ensure that it's only loaded once
	_ = os.Setenv("HLS_REDIS_CHANNEL", "tables2")
	// ensure we aren't using a pointer
	cfg.Redis.Channel = "bad"
	cfg = Instance()
	a.Equal("tables", cfg.Redis.Channel)
}

func TestLoad_missingFile(t *testing.T) {
	clear1 := util.SetEnv("HLS_CONFIG_FILE", "testdata/missing.yaml")
	defer clear1()
	clear2 := util.SetEnv("HLS_GAME_DEFAULT_ROUNDS", "8")
	defer clear2()

	assert.NoError(t, Load())
	cfg := Instance()

	expected := DefaultConfig()
	expected.loaded = true
	expected.Game.DefaultRounds = 8
	assert.Equal(t, expected, cfg)
}

func TestLoad_invalid(t *testing.T) {
	a := assert.New(t)

	clear1 := util.SetEnv("HLS_CONFIG_FILE", "testdata/invalid.yaml")
	a.Equal(ErrInvalidHandSize, Load())
	clear1()

	clear2 := util.SetEnv("HLS_CONFIG_FILE", "testdata/missing.yaml")
	defer clear2()

	clear3 := util.SetEnv("HLS_GAME_MIN_PLAYERS", "1")
	a.Equal(ErrInvalidMinPlayers, Load())
	clear3()

	clear4 := util.SetEnv("HLS_GAME_DEFAULT_ROUNDS", "-1")
	a.Equal(ErrInvalidDefaultRounds, Load())
	clear4()

	clear5 := util.SetEnv("HLS_GAME_MIN_PLAYERS", "two")
	a.Error(Load())
	clear5()
}

func TestDefaultConfig(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"skullking/engine"
	"skullking/experiments/metrics"
	"skullking/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skullking.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.Equal(t, Default(), config)
	require.NoError(t, config.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
config_id = 3
nb_games = 12
log_level = "DEBUG"
last_game_round = 6
mcts_type = "puremcts"
goroutines = 4
seed = 99

player "1" {
  type = "mcts"
  cheater = true
}

player "0" {
  type = "random"
}

player "2" {
  type = "mcts"
  iterations = 50
}
`)
	config, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	require.Equal(t, 3, config.ConfigID)
	require.Equal(t, 12, config.NbGames)
	require.Equal(t, 1, config.FirstGameRound, "Missing values get defaults")
	require.Equal(t, 6, config.LastGameRound)
	require.Equal(t, "games.csv", config.CSVName)
	require.Equal(t, int64(99), config.Seed)
	require.Equal(t, 3, config.NbPlayers())

	players := config.Sorted()
	require.Equal(t, "0", players[0].ID)
	require.Equal(t, PlayerMCTS, players[1].Type)
	require.Equal(t, DefaultIterations, players[1].Iterations)
	require.True(t, players[1].Cheater)
	require.Equal(t, 50, players[2].Iterations)

	level, err := config.Level()
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, level)
}

func TestLoadInvalidSyntax(t *testing.T) {
	_, err := Load(writeConfig(t, `nb_games = `))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `player "0" {}`))
	require.Error(t, err, "Player type is required")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"single player", func(c *Config) { c.Players = c.Players[:1] }},
		{"no games", func(c *Config) { c.NbGames = 0 }},
		{"no goroutines", func(c *Config) { c.Goroutines = 0 }},
		{"first round too low", func(c *Config) { c.FirstGameRound = 0 }},
		{"last round too high", func(c *Config) { c.LastGameRound = 11 }},
		{"rounds reversed", func(c *Config) { c.FirstGameRound, c.LastGameRound = 5, 4 }},
		{"unknown search", func(c *Config) { c.MCTSType = "uct" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"unknown player type", func(c *Config) { c.Players[0].Type = "oracle" }},
		{"player id not a number", func(c *Config) { c.Players[0].ID = "first" }},
		{"player id out of range", func(c *Config) { c.Players[0].ID = "2" }},
		{"duplicated player", func(c *Config) { c.Players[0].ID = "1" }},
		{"mcts without iterations", func(c *Config) { c.Players[1].Iterations = 0 }},
		{"deck too small", func(c *Config) {
			for i := 2; i < 7; i++ {
				c.Players = append(c.Players, PlayerConfig{ID: strconv.Itoa(i), Type: PlayerRandom})
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modify(config)
			require.ErrorIs(t, config.Validate(), ErrConfiguration)
		})
	}

	t.Run("six players fit ten rounds", func(t *testing.T) {
		config := Default()
		for i := 2; i < 6; i++ {
			config.Players = append(config.Players, PlayerConfig{ID: strconv.Itoa(i), Type: PlayerRandom})
		}
		require.NoError(t, config.Validate())
	})
}

func TestPolicies(t *testing.T) {
	config := Default()
	config.Players = []PlayerConfig{
		{ID: "3", Type: PlayerMCTS, Iterations: 10},
		{ID: "0", Type: PlayerHuman},
		{ID: "1", Type: PlayerRandom},
		{ID: "2", Type: PlayerHuman},
	}

	policies, err := config.Policies(1, strings.NewReader(""), &bytes.Buffer{}, metrics.NewDummyCollector())
	require.NoError(t, err)
	require.Len(t, policies, 4)
	require.IsType(t, &engine.Human{}, policies[0])
	require.Equal(t, engine.Random{}, policies[1])
	require.Same(t, policies[0], policies[2], "Human players share one input")
	require.IsType(t, &searcher.FlatMC{}, policies[3])

	config.MCTSType = searcher.AlgorithmPureMCTS
	policies, err = config.Policies(1, nil, nil, nil)
	require.NoError(t, err)
	require.IsType(t, &searcher.PureMCTS{}, policies[3])

	config.Players[0].Type = "oracle"
	_, err = config.Policies(1, nil, nil, nil)
	require.ErrorIs(t, err, ErrConfiguration)
}

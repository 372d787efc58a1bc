package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"skullking/engine"
	"skullking/experiments/metrics"
	"skullking/game"
	"skullking/searcher"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
)

const (
	PlayerRandom = "random"
	PlayerHuman  = "human"
	PlayerMCTS   = "mcts"

	DefaultIterations = 20
)

var ErrConfiguration = errors.New("config error")

// Config describes a run of games between configured players.
type Config struct {
	ConfigID       int            `hcl:"config_id,optional"`
	NbGames        int            `hcl:"nb_games,optional"`
	LogLevel       string         `hcl:"log_level,optional"`
	FirstGameRound int            `hcl:"first_game_round,optional"`
	LastGameRound  int            `hcl:"last_game_round,optional"`
	MCTSType       string         `hcl:"mcts_type,optional"`
	Goroutines     int            `hcl:"goroutines,optional"`
	Seed           int64          `hcl:"seed,optional"` // 0 picks a time based seed
	CSVName        string         `hcl:"csv_name,optional"`
	Players        []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig is one seat at the table. The label is the player index.
type PlayerConfig struct {
	ID         string `hcl:"id,label"`
	Type       string `hcl:"type"`
	Iterations int    `hcl:"iterations,optional"`
	Cheater    bool   `hcl:"cheater,optional"`
}

func (p PlayerConfig) Index() (int, error) {
	i, err := strconv.Atoi(p.ID)
	if err != nil {
		return -1, fmt.Errorf("%w: player id %q is not a number", ErrConfiguration, p.ID)
	}
	return i, nil
}

func Default() *Config {
	return &Config{
		NbGames:        5,
		LogLevel:       "info",
		FirstGameRound: game.MinRound,
		LastGameRound:  game.MaxRound,
		MCTSType:       searcher.AlgorithmFlatMC,
		Goroutines:     1,
		CSVName:        "games.csv",
		Players: []PlayerConfig{
			{ID: "0", Type: PlayerRandom},
			{ID: "1", Type: PlayerMCTS, Iterations: DefaultIterations},
		},
	}
}

// Load reads an HCL configuration file. A missing file gives the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.NbGames == 0 {
		c.NbGames = defaults.NbGames
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.FirstGameRound == 0 {
		c.FirstGameRound = defaults.FirstGameRound
	}
	if c.LastGameRound == 0 {
		c.LastGameRound = defaults.LastGameRound
	}
	if c.MCTSType == "" {
		c.MCTSType = defaults.MCTSType
	}
	if c.Goroutines == 0 {
		c.Goroutines = defaults.Goroutines
	}
	if c.CSVName == "" {
		c.CSVName = defaults.CSVName
	}
	if len(c.Players) == 0 {
		c.Players = defaults.Players
	}
	for i := range c.Players {
		if c.Players[i].Type == PlayerMCTS && c.Players[i].Iterations == 0 {
			c.Players[i].Iterations = DefaultIterations
		}
	}
}

func (c *Config) NbPlayers() int {
	return len(c.Players)
}

// Validate checks the configuration is consistent. Every error wraps
// ErrConfiguration.
func (c *Config) Validate() error {
	n := c.NbPlayers()
	if n < 2 {
		return fmt.Errorf("%w: at least 2 players are required, got %d", ErrConfiguration, n)
	}
	if c.NbGames < 1 {
		return fmt.Errorf("%w: nb_games must be positive", ErrConfiguration)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("%w: goroutines must be positive", ErrConfiguration)
	}
	if c.FirstGameRound < game.MinRound || c.LastGameRound > game.MaxRound || c.FirstGameRound > c.LastGameRound {
		return fmt.Errorf("%w: rounds must satisfy %d <= first_game_round <= last_game_round <= %d, got %d and %d",
			ErrConfiguration, game.MinRound, game.MaxRound, c.FirstGameRound, c.LastGameRound)
	}
	if n*c.LastGameRound > game.CatalogSize {
		return fmt.Errorf("%w: %d players cannot be dealt %d cards each from %d", ErrConfiguration, n, c.LastGameRound, game.CatalogSize)
	}
	if c.MCTSType != searcher.AlgorithmFlatMC && c.MCTSType != searcher.AlgorithmPureMCTS {
		return fmt.Errorf("%w: mcts_type must be one of %s, %s, got %q",
			ErrConfiguration, searcher.AlgorithmFlatMC, searcher.AlgorithmPureMCTS, c.MCTSType)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	seen := make([]bool, n)
	for _, p := range c.Players {
		i, err := p.Index()
		if err != nil {
			return err
		}
		if i < 0 || i >= n {
			return fmt.Errorf("%w: player id %d outside [0,%d]", ErrConfiguration, i, n-1)
		}
		if seen[i] {
			return fmt.Errorf("%w: player %d is configured twice", ErrConfiguration, i)
		}
		seen[i] = true

		switch p.Type {
		case PlayerRandom, PlayerHuman:
		case PlayerMCTS:
			if p.Iterations < 1 {
				return fmt.Errorf("%w: player %d needs a positive number of iterations", ErrConfiguration, i)
			}
		default:
			return fmt.Errorf("%w: player %d has unknown type %q", ErrConfiguration, i, p.Type)
		}
	}
	return nil
}

// Level maps log_level onto a zerolog level. The names of the original
// Python logging levels are accepted as well.
func (c *Config) Level() (zerolog.Level, error) {
	name := strings.ToLower(c.LogLevel)
	if name == "warning" {
		name = "warn"
	}
	switch name {
	case "debug", "info", "warn", "error":
		return zerolog.ParseLevel(name)
	}
	return zerolog.NoLevel, fmt.Errorf("%w: log_level must be one of debug, info, warning, error, got %q", ErrConfiguration, c.LogLevel)
}

// Sorted returns the players ordered by index. The configuration must be
// valid.
func (c *Config) Sorted() []PlayerConfig {
	players := append([]PlayerConfig(nil), c.Players...)
	sort.Slice(players, func(i, j int) bool {
		a, _ := players[i].Index()
		b, _ := players[j].Index()
		return a < b
	})
	return players
}

// Policies builds one policy per player. Human players share the input,
// searchers get their own generator derived from seed and report to the
// collector.
func (c *Config) Policies(seed int64, in io.Reader, out io.Writer, collector metrics.Collector) ([]engine.Policy, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var human *engine.Human
	policies := make([]engine.Policy, c.NbPlayers())
	for i, p := range c.Sorted() {
		switch p.Type {
		case PlayerRandom:
			policies[i] = engine.Random{}
		case PlayerHuman:
			if human == nil {
				human = engine.NewHuman(in, out)
			}
			policies[i] = human
		case PlayerMCTS:
			options := []searcher.Option{
				searcher.WithSeed(seed + int64(i)),
				searcher.WithGoroutines(c.Goroutines),
				searcher.WithMetrics(collector),
			}
			if c.MCTSType == searcher.AlgorithmPureMCTS {
				policies[i] = searcher.NewPureMCTS(options...)
			} else {
				policies[i] = searcher.NewFlatMC(p.Iterations, p.Cheater, options...)
			}
		}
	}
	return policies, nil
}

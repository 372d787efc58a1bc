package experiments

import (
	"context"
	"path/filepath"
	"testing"

	"skullking/config"
	"skullking/engine"
	"skullking/game"
	"skullking/searcher"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.NbGames = 3
	cfg.FirstGameRound = 1
	cfg.LastGameRound = 3
	cfg.Seed = 7
	cfg.Players = []config.PlayerConfig{
		{ID: "0", Type: config.PlayerRandom},
		{ID: "1", Type: config.PlayerMCTS, Iterations: 8},
	}
	return cfg
}

type decision struct {
	phase string
	round int
	move  string
}

func decisions(summary Summary) []decision {
	var d []decision
	for _, s := range summary.Searches {
		d = append(d, decision{phase: s.Phase, round: s.Round, move: s.BestMove})
	}
	return d
}

func TestRunner(t *testing.T) {
	rounds := 0
	tracer := engine.TracerFunc(func(s *game.GameState, e engine.Event) {
		if e.Kind == engine.EventScore && e.Player == 0 {
			rounds++
		}
	})
	summary, err := NewRunner(testConfig(), WithClock(quartz.NewMock(t)), WithTracer(tracer)).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, summary.Games)
	require.Equal(t, 3, summary.Victories[0]+summary.Victories[1])
	require.InDelta(t, 1.0, summary.Ratio[0]+summary.Ratio[1], 1e-9)
	require.Equal(t, 9, rounds, "Three rounds in each of three games")

	// Three bids and six cards per game for the searching player
	require.Len(t, summary.Searches, 3*(3+6))
	for _, s := range summary.Searches {
		require.Equal(t, searcher.AlgorithmFlatMC, s.Algorithm)
		require.Equal(t, 1, s.Player)
	}
}

func TestRunnerDeterministic(t *testing.T) {
	first, err := NewRunner(testConfig()).Run(context.Background())
	require.NoError(t, err)
	second, err := NewRunner(testConfig()).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.Victories, second.Victories)
	require.Equal(t, decisions(first), decisions(second), "Same seed gives the same decisions")
}

func TestRunnerPureMCTS(t *testing.T) {
	cfg := testConfig()
	cfg.MCTSType = searcher.AlgorithmPureMCTS
	cfg.NbGames = 5

	summary, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, summary.Games)

	nodes := 0
	for _, s := range summary.Searches {
		require.Equal(t, searcher.AlgorithmPureMCTS, s.Algorithm)
		require.GreaterOrEqual(t, s.TreeNodes, nodes, "The tree never shrinks between games")
		nodes = s.TreeNodes
	}
}

func TestRunnerCSV(t *testing.T) {
	cfg := testConfig()
	cfg.CSVName = filepath.Join(t.TempDir(), "games.csv")

	_, err := NewRunner(cfg, WithCSV()).Run(context.Background())
	require.NoError(t, err)
	require.FileExists(t, cfg.CSVName)
	require.FileExists(t, filepath.Join(filepath.Dir(cfg.CSVName), "games_searches.csv"))
}

func TestRunnerErrors(t *testing.T) {
	t.Run("invalid configuration", func(t *testing.T) {
		cfg := testConfig()
		cfg.MCTSType = "uct"
		_, err := NewRunner(cfg).Run(context.Background())
		require.ErrorIs(t, err, config.ErrConfiguration)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewRunner(testConfig()).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunThroughput(t *testing.T) {
	cfg := testConfig()
	cfg.NbGames = 1

	results, err := RunThroughput(context.Background(), cfg, []int{1, 4})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, 4, results[1].Goroutines)
	require.Equal(t, results[0].Decisions, results[1].Decisions)
	require.Equal(t, results[0].Trials, results[1].Trials, "Trial counts do not depend on parallelism")
}

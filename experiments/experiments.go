package experiments

import (
	"context"
	"fmt"
	"io"
	"os"

	"skullking/config"
	"skullking/engine"
	"skullking/experiments/metrics"
	"skullking/game"
	"skullking/randutil"
	"skullking/searcher"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Summary counts the games each player won. A game is won by the player with
// the highest final score, the lowest index on ties.
type Summary struct {
	Games     int
	Victories []int
	Ratio     []float64
	Searches  []metrics.SearchRecord
}

// Runner plays the configured number of games. Policies are built once so
// search trees carry over from one game to the next.
type Runner struct {
	config    *config.Config
	in        io.Reader
	out       io.Writer
	clock     quartz.Clock
	collector metrics.Collector
	tracer    engine.Tracer
	csv       bool
}

type Option func(r *Runner)

// WithInput sets where human players read moves and see prompts.
func WithInput(in io.Reader, out io.Writer) Option {
	return func(r *Runner) {
		r.in = in
		r.out = out
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

func WithTracer(tracer engine.Tracer) Option {
	return func(r *Runner) {
		r.tracer = tracer
	}
}

// WithCSV stores game and search records under the configured csv_name.
func WithCSV() Option {
	return func(r *Runner) {
		r.csv = true
	}
}

func NewRunner(cfg *config.Config, options ...Option) *Runner {
	r := &Runner{
		config: cfg,
		in:     os.Stdin,
		out:    os.Stdout,
		clock:  quartz.NewReal(),
	}
	for _, option := range options {
		option(r)
	}
	r.collector = metrics.NewCollector(r.clock)
	return r
}

func (r *Runner) Run(ctx context.Context) (Summary, error) {
	cfg := r.config
	seed := cfg.Seed
	if seed == 0 {
		seed = r.clock.Now().UnixNano()
	}
	log.Info().Msgf("starting %d games with seed %d...", cfg.NbGames, seed)

	policies, err := cfg.Policies(seed, r.in, r.out, r.collector)
	if err != nil {
		return Summary{}, err
	}
	types := r.playerTypes()
	rng := randutil.New(seed)

	n := cfg.NbPlayers()
	summary := Summary{Victories: make([]int, n), Ratio: make([]float64, n)}
	gameRecords := []metrics.GameRecord{}
	for i := 0; i < cfg.NbGames; i++ {
		first := rng.IntN(n)
		state := game.NewGameState(uuid.New(), n, cfg.FirstGameRound, cfg.LastGameRound, first)
		options := []engine.Option{
			engine.WithRand(randutil.New(rng.Int64())),
			engine.WithLogger(log.Logger),
		}
		if r.tracer != nil {
			options = append(options, engine.WithTracer(r.tracer))
		}
		g, err := engine.New(state, policies, options...)
		if err != nil {
			return summary, err
		}

		log.Info().Msgf("starting game %d of %d (%s), first player %d...", i+1, cfg.NbGames, state.ID, first)
		start := r.clock.Now()
		if err := g.PlayGame(ctx); err != nil {
			return summary, fmt.Errorf("game %s: %w", state.ID, err)
		}
		end := r.clock.Now()

		winner := state.Leader()
		summary.Games++
		summary.Victories[winner]++
		for p := 0; p < n; p++ {
			gameRecords = append(gameRecords, metrics.GameRecord{
				Game:      state.ID,
				ConfigID:  cfg.ConfigID,
				Player:    p,
				Type:      types[p],
				Score:     state.Scores[p],
				Winner:    p == winner,
				StartTime: start,
				EndTime:   end,
			})
		}
		for _, m := range r.collector.Drain() {
			summary.Searches = append(summary.Searches, metrics.SearchRecord{Game: state.ID, SearchMetric: m})
		}
		log.Info().Msgf("completed game %d of %d with winner: %d, scores %v", i+1, cfg.NbGames, winner, state.Scores)
	}

	for p := range summary.Ratio {
		summary.Ratio[p] = float64(summary.Victories[p]) / float64(summary.Games)
	}

	if r.csv {
		if err := r.store(gameRecords, summary.Searches); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// playerTypes labels players for the records, naming the search algorithm
// for searching players.
func (r *Runner) playerTypes() []string {
	types := make([]string, r.config.NbPlayers())
	for i, p := range r.config.Sorted() {
		types[i] = p.Type
		if p.Type == config.PlayerMCTS {
			types[i] = r.config.MCTSType
			if p.Cheater && r.config.MCTSType == searcher.AlgorithmFlatMC {
				types[i] += "-cheater"
			}
		}
	}
	return types
}

func (r *Runner) store(games []metrics.GameRecord, searches []metrics.SearchRecord) error {
	writer, err := metrics.NewWriter(r.config.CSVName)
	if err != nil {
		return err
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return err
	}
	log.Info().Msgf("stored game records in %s", writer.GamesPath())

	if err := writer.WriteSearchRecords(searches); err != nil {
		return err
	}
	log.Info().Msgf("stored search records in %s", writer.SearchesPath())
	return nil
}

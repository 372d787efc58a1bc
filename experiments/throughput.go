package experiments

import (
	"context"
	"time"

	"skullking/config"

	"github.com/rs/zerolog/log"
)

// ThroughputResult measures how fast searchers decide with a given number of
// goroutines.
type ThroughputResult struct {
	Goroutines      int
	Decisions       int
	Trials          int
	Duration        time.Duration // Spent searching
	TrialsPerSecond float64
}

// RunThroughput replays the configuration once per goroutine count, each with
// the same seed, and reports the search throughput of each run.
func RunThroughput(ctx context.Context, base *config.Config, goroutines []int, options ...Option) ([]ThroughputResult, error) {
	seed := base.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := []ThroughputResult{}
	for _, g := range goroutines {
		cfg := *base
		cfg.Goroutines = g
		cfg.Seed = seed
		log.Info().Msgf("starting throughput run with %d goroutines...", g)

		summary, err := NewRunner(&cfg, options...).Run(ctx)
		if err != nil {
			return results, err
		}

		result := ThroughputResult{Goroutines: g, Decisions: len(summary.Searches)}
		for _, s := range summary.Searches {
			result.Trials += s.Trials
			result.Duration += s.Duration
		}
		if result.Duration > 0 {
			result.TrialsPerSecond = float64(result.Trials) / result.Duration.Seconds()
		}
		log.Info().Msgf("completed throughput run with %d goroutines: %d trials in %s", g, result.Trials, result.Duration)
		results = append(results, result)
	}
	return results, nil
}

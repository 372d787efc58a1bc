package searcher

import (
	"errors"
	"math/rand/v2"
	"time"

	"skullking/experiments/metrics"
	"skullking/randutil"
)

const (
	AlgorithmFlatMC   = "flatmc"
	AlgorithmPureMCTS = "puremcts"
)

// Phase is the kind of decision being searched.
type Phase string

const (
	PhaseBid  Phase = "bid"
	PhaseCard Phase = "play_card"
)

// ErrNoCandidates is returned when a decision has nothing to choose from.
var ErrNoCandidates = errors.New("no candidate moves")

type settings struct {
	goroutines int
	rng        *rand.Rand
	metrics    metrics.Collector
}

type Option func(s *settings)

// WithGoroutines bounds how many trials of one candidate run in parallel.
func WithGoroutines(goroutines int) Option {
	return func(s *settings) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.rng = randutil.New(seed)
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		goroutines: 1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	if s.rng == nil {
		s.rng = randutil.New(time.Now().UnixNano())
	}
	return s
}

package searcher

import (
	"fmt"
	"math"
	"strconv"

	"skullking/engine"

	"golang.org/x/sync/errgroup"
)

// FlatMC gives every candidate move the same share of the iteration budget.
// Each trial copies the game, hides the opponents' hands behind plausible
// resamples unless the searcher cheats, plays the candidate, finishes the
// round with random play and records the score the round brought. The
// candidate with the highest total wins, the first one on ties.
type FlatMC struct {
	settings
	iterations int
	cheater    bool
}

func NewFlatMC(iterations int, cheater bool, options ...Option) *FlatMC {
	if iterations < 0 {
		panic("iterations cannot be negative")
	}
	return &FlatMC{
		settings:   newSettings(options),
		iterations: iterations,
		cheater:    cheater,
	}
}

func (f *FlatMC) Bid(d engine.Decision) (int, error) {
	candidates := make([]int, d.Game.State.Round+1)
	for bid := range candidates {
		candidates[bid] = bid
	}
	return f.choose(d, PhaseBid, candidates)
}

func (f *FlatMC) ChooseCard(d engine.Decision, legal []int) (int, error) {
	return f.choose(d, PhaseCard, legal)
}

func (f *FlatMC) choose(d engine.Decision, phase Phase, candidates []int) (int, error) {
	if len(candidates) == 0 {
		return -1, fmt.Errorf("%w: %s of player %d", ErrNoCandidates, phase, d.Player)
	}
	s := d.Game.State
	f.metrics.Start(AlgorithmFlatMC, string(phase), s.Round, d.Player, len(candidates))

	// Integer division: a budget below the number of candidates runs no trial
	// and keeps the first candidate.
	trials := f.iterations / len(candidates)

	best, bestSum := -1, math.MinInt
	for _, move := range candidates {
		sum, err := f.evaluate(d, phase, move, trials)
		if err != nil {
			return -1, err
		}
		if sum > bestSum {
			best, bestSum = move, sum
		}
	}

	label := strconv.Itoa(best)
	if phase == PhaseCard {
		label = s.Hands[d.Player][best].String()
	}
	f.metrics.Complete(label, bestSum)
	return best, nil
}

// evaluate sums the round scores of independent trials of one move. Trial
// seeds are drawn up front so the total does not depend on scheduling.
func (f *FlatMC) evaluate(d engine.Decision, phase Phase, move, trials int) (int, error) {
	seeds := make([]int64, trials)
	for i := range seeds {
		seeds[i] = f.rng.Int64()
	}

	scores := make([]int, trials)
	var g errgroup.Group
	g.SetLimit(f.goroutines)
	for i, seed := range seeds {
		g.Go(func() error {
			score, err := f.trial(d, phase, move, seed)
			if err != nil {
				return err
			}
			scores[i] = score
			f.metrics.AddTrial()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	sum := 0
	for _, score := range scores {
		sum += score
	}
	return sum, nil
}

func (f *FlatMC) trial(d engine.Decision, phase Phase, move int, seed int64) (int, error) {
	clone := d.Game.Clone(seed)
	s := clone.State
	if !f.cheater {
		if err := s.ResampleHands(d.Player, clone.Rand()); err != nil {
			return 0, err
		}
	}
	before := s.Scores[d.Player]

	var err error
	switch phase {
	case PhaseBid:
		err = clone.ApplyBid(d.Player, move)
	case PhaseCard:
		err = clone.ApplyCard(d.Player, move)
	default:
		err = fmt.Errorf("unknown phase %q", phase)
	}
	if err != nil {
		return 0, err
	}
	if err := clone.PlayRound(); err != nil {
		return 0, err
	}
	return s.Scores[d.Player] - before, nil
}

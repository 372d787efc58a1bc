package engine

import (
	"context"
	"fmt"
	"math/rand/v2"

	"skullking/game"
	"skullking/randutil"
	"skullking/utils"

	"github.com/rs/zerolog"
)

// Game drives one game through its rounds, asking each player's policy for
// bids and cards. It is resumable: the cursors on the state record where a
// paused round continues, which is how searchers play a decided move on a
// clone and run the rest of the round.
type Game struct {
	State    *game.GameState
	policies []Policy
	rng      *rand.Rand
	logger   zerolog.Logger
	tracer   Tracer
}

type Option func(g *Game)

func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

func WithTracer(tracer Tracer) Option {
	return func(g *Game) {
		g.tracer = tracer
	}
}

func New(state *game.GameState, policies []Policy, options ...Option) (*Game, error) {
	if len(policies) != state.NbPlayers {
		return nil, fmt.Errorf("%w: %d policies for %d players", game.ErrPrecondition, len(policies), state.NbPlayers)
	}
	for p, policy := range policies {
		if policy == nil {
			return nil, fmt.Errorf("%w: player %d has no policy", game.ErrPrecondition, p)
		}
	}
	g := &Game{
		State:    state,
		policies: policies,
		rng:      randutil.New(0),
		logger:   zerolog.Nop(),
	}
	for _, option := range options {
		option(g)
	}
	return g, nil
}

func (g *Game) Rand() *rand.Rand {
	return g.rng
}

// Clone returns an independent rollout copy of the game: deep copied state,
// its own generator, no logging and no tracing.
func (g *Game) Clone(seed int64) *Game {
	state := g.State.Clone()
	state.IsRollout = true
	return &Game{
		State:    state,
		policies: g.policies,
		rng:      randutil.New(seed),
		logger:   zerolog.Nop(),
	}
}

func (g *Game) log() *zerolog.Logger {
	if g.State.IsRollout {
		nop := zerolog.Nop()
		return &nop
	}
	return &g.logger
}

func (g *Game) trace(event Event) {
	if g.tracer != nil && !g.State.IsRollout {
		g.tracer.Trace(g.State, event)
	}
}

// PlayGame plays every round from the current one to the last, then lets
// observing policies know the game is over.
func (g *Game) PlayGame(ctx context.Context) error {
	s := g.State
	if s.Round < game.MinRound || s.Round > game.MaxRound {
		return fmt.Errorf("%w: round %d outside [%d,%d]", game.ErrPrecondition, s.Round, game.MinRound, game.MaxRound)
	}
	if s.Round > s.LastRound {
		return fmt.Errorf("%w: round %d after last round %d", game.ErrPrecondition, s.Round, s.LastRound)
	}

	g.notifyStarted()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.InitRound()
		if err := g.PlayRound(); err != nil {
			return err
		}
		if s.Round == s.LastRound {
			break
		}
		s.Round++
	}
	return g.notifyFinished()
}

// InitRound shuffles a fresh deck and deals Round cards to every player.
func (g *Game) InitRound() {
	g.State.Deal(game.NewDeck(g.rng))
	g.log().Debug().Msgf("init round %d (deal cards)", g.State.Round)
	for p, hand := range g.State.Hands {
		g.log().Debug().Msgf("cards player %d: %v", p, hand)
		g.trace(Event{Kind: EventDeal, Round: g.State.Round, Player: p, Hand: hand})
	}
}

// PlayRound runs the bidding phase then the tricks of the round, resuming
// from the state's cursors, and scores the round. Each cursor is advanced
// before the policy is asked so a copy taken during the decision continues
// right after the decided move.
func (g *Game) PlayRound() error {
	s := g.State
	if s.RoundOver {
		return nil
	}
	n := s.NbPlayers

	for s.BidCursor < n {
		player := s.BidCursor
		s.BidCursor++
		bid, err := g.bid(player)
		if err != nil {
			return fmt.Errorf("bid of player %d: %w", player, err)
		}
		if err := g.ApplyBid(player, bid); err != nil {
			return err
		}
	}

	for s.TrickCursor < s.Round {
		for s.TurnCursor < n {
			player := (s.FirstTrickPlayer + s.TurnCursor) % n
			s.TurnCursor++
			slot, err := g.chooseCard(player, s.LegalMoves(player))
			if err != nil {
				return fmt.Errorf("card of player %d: %w", player, err)
			}
			if err := g.ApplyCard(player, slot); err != nil {
				return err
			}
		}

		g.log().Debug().Msgf("played cards: %v", s.TrickCards)
		trick := s.TrickCards
		winner, err := s.ResolveTrick()
		if err != nil {
			return err
		}
		g.log().Debug().Msgf("fold %d winner: %d", s.TrickCursor+1, winner)
		g.trace(Event{Kind: EventTrick, Round: s.Round, Player: winner, Trick: trick, TrickWinner: winner})
		s.TrickCursor++
		s.TurnCursor = 0
	}

	deltas := s.ApplyRoundScore()
	s.FirstRoundPlayer = (s.FirstRoundPlayer + 1) % n
	s.RoundOver = true

	if !s.IsRollout {
		g.logger.Info().Msgf("round %d", s.Round)
		for p := 0; p < n; p++ {
			g.logger.Info().Msgf("score player %d; folds: %d/%d -> score: %d (%+d)",
				p, s.WonFolds[p], s.PredictedFolds[p], s.Scores[p], deltas[p])
			g.trace(Event{Kind: EventScore, Round: s.Round, Player: p, Prediction: s.PredictedFolds[p],
				Won: s.WonFolds[p], Score: s.Scores[p]})
		}
	}
	return nil
}

// ApplyBid records a bid without touching the bid cursor.
func (g *Game) ApplyBid(player, bid int) error {
	if err := g.State.SetBid(player, bid); err != nil {
		return err
	}
	g.log().Debug().Msgf("prediction player %d: %d", player, bid)
	g.trace(Event{Kind: EventBid, Round: g.State.Round, Player: player, Prediction: bid})
	return nil
}

// ApplyCard plays a legal hand slot without touching the turn cursor.
func (g *Game) ApplyCard(player, slot int) error {
	legal := g.State.LegalMoves(player)
	if utils.FindIndex(legal, slot) < 0 {
		return fmt.Errorf("%w: player %d cannot play slot %d, legal slots %v", game.ErrIllegalMove, player, slot, legal)
	}
	return g.State.PlayCard(player, slot)
}

func (g *Game) policy(player int) Policy {
	if g.State.IsRollout {
		return Random{}
	}
	return g.policies[player]
}

func (g *Game) bid(player int) (int, error) {
	return g.policy(player).Bid(Decision{Game: g, Player: player})
}

func (g *Game) chooseCard(player int, legal []int) (int, error) {
	if len(legal) == 0 {
		return -1, fmt.Errorf("%w: player %d has no card to play", game.ErrLogic, player)
	}
	return g.policy(player).ChooseCard(Decision{Game: g, Player: player}, legal)
}

func (g *Game) notifyStarted() {
	if g.State.IsRollout {
		return
	}
	g.logger.Info().Msgf("start game %s", g.State.ID)
	for _, policy := range uniquePolicies(g.policies) {
		if observer, ok := policy.(GameObserver); ok {
			observer.GameStarted(g)
		}
	}
}

func (g *Game) notifyFinished() error {
	if g.State.IsRollout {
		return nil
	}
	g.logger.Info().Msgf("end game %s, scores %v", g.State.ID, g.State.Scores)
	for _, policy := range uniquePolicies(g.policies) {
		if observer, ok := policy.(GameObserver); ok {
			if err := observer.GameFinished(g); err != nil {
				return err
			}
		}
	}
	return nil
}

func uniquePolicies(policies []Policy) []Policy {
	var unique []Policy
	for _, p := range policies {
		if utils.FindIndex(unique, p) < 0 {
			unique = append(unique, p)
		}
	}
	return unique
}

package game

import (
	"fmt"
	"skullking/utils"

	"github.com/google/uuid"
)

// PlayedCard is a card laid down in the current trick.
type PlayedCard struct {
	Player int
	Card   Card
}

// GameState is the mutable record of one game in progress. A search rollout
// works on a Clone and never touches the original.
type GameState struct {
	ID        uuid.UUID
	NbPlayers int
	Round     int // 1 to LastRound
	LastRound int

	Scores         []int    // Cumulative score per player
	Hands          [][]Card // Cards dealt this round, per player
	Played         [][]bool // Hand slots already played, per player
	Observed       [][]bool // Catalog indexes seen by each player this round
	PredictedFolds []int
	WonFolds       []int

	LeadSuit   Suit // NoSuit while unset
	TrickCards []PlayedCard

	FirstRoundPlayer int
	FirstTrickPlayer int

	// Resume position inside a round
	BidCursor   int
	TrickCursor int
	TurnCursor  int
	RoundOver   bool

	IsRollout bool
}

func NewGameState(id uuid.UUID, nbPlayers, firstRound, lastRound, firstRoundPlayer int) *GameState {
	return &GameState{
		ID:               id,
		NbPlayers:        nbPlayers,
		Round:            firstRound,
		LastRound:        lastRound,
		Scores:           make([]int, nbPlayers),
		Hands:            make([][]Card, nbPlayers),
		Played:           make([][]bool, nbPlayers),
		Observed:         make([][]bool, nbPlayers),
		PredictedFolds:   make([]int, nbPlayers),
		WonFolds:         make([]int, nbPlayers),
		FirstRoundPlayer: firstRoundPlayer % nbPlayers,
		FirstTrickPlayer: firstRoundPlayer % nbPlayers,
	}
}

// Clone returns a deep copy sharing no container with gs.
func (gs *GameState) Clone() *GameState {
	clone := *gs
	clone.Scores = cloneSlice(gs.Scores)
	clone.Hands = cloneMatrix(gs.Hands)
	clone.Played = cloneMatrix(gs.Played)
	clone.Observed = cloneMatrix(gs.Observed)
	clone.PredictedFolds = cloneSlice(gs.PredictedFolds)
	clone.WonFolds = cloneSlice(gs.WonFolds)
	clone.TrickCards = cloneSlice(gs.TrickCards)
	return &clone
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}

func cloneMatrix[T any](m [][]T) [][]T {
	if m == nil {
		return nil
	}
	c := make([][]T, len(m))
	for i, row := range m {
		c[i] = cloneSlice(row)
	}
	return c
}

// Deal starts a round from a freshly shuffled deck: hands, played slots,
// observations, predictions, won folds and cursors are all reset, and every
// player observes their own hand.
func (gs *GameState) Deal(deck *Deck) {
	for p := 0; p < gs.NbPlayers; p++ {
		gs.Hands[p] = deck.Deal(p, gs.Round)
		gs.Played[p] = make([]bool, gs.Round)
		gs.Observed[p] = make([]bool, CatalogSize)
		for _, card := range gs.Hands[p] {
			gs.Observe(p, card)
		}
	}
	for p := range gs.PredictedFolds {
		gs.PredictedFolds[p] = 0
		gs.WonFolds[p] = 0
	}
	gs.LeadSuit = NoSuit
	gs.TrickCards = nil
	gs.FirstTrickPlayer = gs.FirstRoundPlayer
	gs.BidCursor = 0
	gs.TrickCursor = 0
	gs.TurnCursor = 0
	gs.RoundOver = false
}

// Observe marks the first catalog slot of the card the player has not seen
// yet, so every copy of a duplicated card takes its own slot. Observing more
// copies than the catalog holds is a no-op.
func (gs *GameState) Observe(player int, card Card) {
	first, ok := CatalogIndex(card)
	if !ok {
		return
	}
	for i := first; i < CatalogSize && catalog[i] == card; i++ {
		if !gs.Observed[player][i] {
			gs.Observed[player][i] = true
			return
		}
	}
}

// SetBid records a player's prediction for the round.
func (gs *GameState) SetBid(player, bid int) error {
	if bid < 0 || bid > gs.Round {
		return fmt.Errorf("%w: bid %d outside [0,%d]", ErrIllegalMove, bid, gs.Round)
	}
	gs.PredictedFolds[player] = bid
	return nil
}

// PlayCard lays the card in the given hand slot into the current trick. The
// other players observe it, and the first suit-bearing card sets the lead
// suit. Scary mary is reserved and rejected.
func (gs *GameState) PlayCard(player, slot int) error {
	if slot < 0 || slot >= len(gs.Hands[player]) {
		return fmt.Errorf("%w: player %d has no slot %d", ErrIllegalMove, player, slot)
	}
	if gs.Played[player][slot] {
		return fmt.Errorf("%w: player %d already played slot %d", ErrIllegalMove, player, slot)
	}
	card := gs.Hands[player][slot]
	if card.Rank == ScaryMary {
		return fmt.Errorf("%w: %s is not playable", ErrLogic, card.Rank)
	}
	gs.Played[player][slot] = true
	for p := 0; p < gs.NbPlayers; p++ {
		if p != player { // The owner observed it when dealt
			gs.Observe(p, card)
		}
	}
	gs.TrickCards = append(gs.TrickCards, PlayedCard{Player: player, Card: card})

	if gs.LeadSuit == NoSuit {
		switch {
		case card.Rank.IsNumber():
			gs.LeadSuit = card.Suit
		case card.Rank.IsSpecial():
			gs.LeadSuit = LeadAny
		case card.Rank == Escape:
			// Deferred to the next card
		default:
			return fmt.Errorf("%w: unknown card %v", ErrLogic, card)
		}
	}
	return nil
}

// LegalMoves returns the unplayed hand slots a player may play. A player
// holding the lead suit must follow it unless it is black or unset; special
// cards and escapes stay playable.
func (gs *GameState) LegalMoves(player int) []int {
	hand := gs.Hands[player]
	mustFollow := false
	if gs.LeadSuit != Black && gs.LeadSuit != NoSuit {
		for i, card := range hand {
			if !gs.Played[player][i] && card.Suit == gs.LeadSuit {
				mustFollow = true
				break
			}
		}
	}

	moves := make([]int, 0, len(hand))
	for i, card := range hand {
		if gs.Played[player][i] {
			continue
		}
		if mustFollow && card.Suit != gs.LeadSuit && card.Suit != NoSuit {
			continue
		}
		moves = append(moves, i)
	}
	return moves
}

// ResolveTrick finds the winner of the completed trick, credits the fold and
// makes the winner lead the next trick.
func (gs *GameState) ResolveTrick() (int, error) {
	cards := make([]Card, len(gs.TrickCards))
	for i, pc := range gs.TrickCards {
		cards[i] = pc.Card
	}
	index, err := WinnerIndex(cards)
	if err != nil {
		return -1, err
	}
	winner := gs.TrickCards[index].Player
	gs.WonFolds[winner]++
	gs.FirstTrickPlayer = winner
	gs.TrickCards = nil
	gs.LeadSuit = NoSuit
	return winner, nil
}

// ApplyRoundScore adds every player's round score to the cumulative scores
// and returns the round deltas.
func (gs *GameState) ApplyRoundScore() []int {
	deltas := make([]int, gs.NbPlayers)
	for p := range deltas {
		deltas[p] = Score(gs.Round, gs.PredictedFolds[p], gs.WonFolds[p])
		gs.Scores[p] += deltas[p]
	}
	return deltas
}

// Leader returns the player with the highest score, the lowest id on ties.
func (gs *GameState) Leader() int {
	return utils.ArgMax(gs.Scores)
}

package engine

import "skullking/game"

// Decision is the point in a game where a player has to act.
type Decision struct {
	Game   *Game
	Player int
}

// Policy chooses a player's actions. Bid returns a prediction in [0, Round],
// ChooseCard returns one of the legal hand slots.
type Policy interface {
	Bid(d Decision) (int, error)
	ChooseCard(d Decision, legal []int) (int, error)
}

// GameObserver is implemented by policies that keep per-game state, such as
// a search tree cursor. Rollout games never notify observers.
type GameObserver interface {
	GameStarted(g *Game)
	GameFinished(g *Game) error
}

type EventKind string

const (
	EventDeal  EventKind = "deal"
	EventBid   EventKind = "bid"
	EventTrick EventKind = "trick"
	EventScore EventKind = "score"
)

// Event is one line of the per-decision trace of a real game.
type Event struct {
	Kind        EventKind
	Round       int
	Player      int
	Hand        []game.Card
	Prediction  int
	Trick       []game.PlayedCard
	TrickWinner int
	Won         int
	Score       int
}

type Tracer interface {
	Trace(game *game.GameState, event Event)
}

type TracerFunc func(game *game.GameState, event Event)

func (f TracerFunc) Trace(game *game.GameState, event Event) {
	f(game, event)
}

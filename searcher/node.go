package searcher

import (
	"fmt"
	"strconv"

	"skullking/game"
)

// move is one action of the search tree. Cards are identified by value so
// that duplicated physical cards share a child.
type move struct {
	phase Phase
	bid   int
	card  game.Card
}

func bidMove(bid int) move {
	return move{phase: PhaseBid, bid: bid}
}

func cardMove(card game.Card) move {
	return move{phase: PhaseCard, card: card}
}

func (m move) String() string {
	if m.phase == PhaseBid {
		return "bid=" + strconv.Itoa(m.bid)
	}
	return "card=" + m.card.String()
}

// allMoves lists every action of a phase, legal or not at a given state.
func allMoves(phase Phase, round int) []move {
	var moves []move
	switch phase {
	case PhaseBid:
		for bid := 0; bid <= round; bid++ {
			moves = append(moves, bidMove(bid))
		}
	case PhaseCard:
		for _, card := range game.DistinctCards() {
			moves = append(moves, cardMove(card))
		}
	}
	return moves
}

// node keeps win statistics for the history reaching it. The parent link
// does not own the parent: the tree is owned from the root down.
type node struct {
	signature string
	move      move
	parent    *node
	children  []*node
	wins      int
	visits    int
	terminal  bool
}

func newRoot() *node {
	return &node{signature: "root"}
}

func newNode(parent *node, m move) *node {
	return &node{
		signature: fmt.Sprintf("%s/%s", parent.signature, m),
		move:      m,
		parent:    parent,
	}
}

func (n *node) addChild(child *node) {
	n.children = append(n.children, child)
}

// weight is the selection weight of a node: its win rate, or 1 while it has
// never been visited.
func (n *node) weight() float64 {
	if n.visits == 0 {
		return unvisitedWeight
	}
	return float64(n.wins) / float64(n.visits)
}

// backup records the outcome of one game and returns the parent.
func (n *node) backup(won bool) *node {
	n.visits++
	if won {
		n.wins++
	}
	return n.parent
}

func (n *node) child(m move) *node {
	for _, c := range n.children {
		if c.move == m {
			return c
		}
	}
	return nil
}

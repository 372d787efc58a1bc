package searcher

import (
	"sync"

	"skullking/engine"
	"skullking/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type cursorKey struct {
	game   uuid.UUID
	player int
}

// cursor is where one player of one game stands in the tree. Once the walk
// leaves the known tree the rest of that player's decisions are random.
type cursor struct {
	node      *node
	exhausted bool
}

// PureMCTS grows one search tree over the games of a run. During a real game
// it descends the tree by sampling children in proportion to their win rate;
// at a leaf it expands every possible move, picks one at random and plays
// randomly from there. When the game ends each visited node gains a visit,
// and a win when the player finished first.
type PureMCTS struct {
	settings
	mu      sync.Mutex
	root    *node
	nodes   int
	cursors map[cursorKey]*cursor
}

func NewPureMCTS(options ...Option) *PureMCTS {
	return &PureMCTS{
		settings: newSettings(options),
		root:     newRoot(),
		nodes:    1,
		cursors:  make(map[cursorKey]*cursor),
	}
}

// Size returns the number of nodes in the tree.
func (m *PureMCTS) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.nodes
}

func (m *PureMCTS) Bid(d engine.Decision) (int, error) {
	moves := make([]move, d.Game.State.Round+1)
	for bid := range moves {
		moves[bid] = bidMove(bid)
	}
	chosen, err := m.decide(d, PhaseBid, moves)
	if err != nil {
		return -1, err
	}
	return chosen.bid, nil
}

func (m *PureMCTS) ChooseCard(d engine.Decision, legal []int) (int, error) {
	hand := d.Game.State.Hands[d.Player]
	slots := make(map[game.Card]int, len(legal))
	var moves []move
	for _, slot := range legal {
		card := hand[slot]
		if _, ok := slots[card]; !ok {
			slots[card] = slot
			moves = append(moves, cardMove(card))
		}
	}
	chosen, err := m.decide(d, PhaseCard, moves)
	if err != nil {
		return -1, err
	}
	return slots[chosen.card], nil
}

func (m *PureMCTS) decide(d engine.Decision, phase Phase, legal []move) (move, error) {
	if len(legal) == 0 {
		return move{}, ErrNoCandidates
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s := d.Game.State
	m.metrics.Start(AlgorithmPureMCTS, string(phase), s.Round, d.Player, len(legal))
	c := m.cursor(s.ID, d.Player)

	var chosen move
	switch {
	case c.exhausted:
		chosen = legal[m.rng.IntN(len(legal))]
	case len(c.node.children) > 0:
		child := m.selectChild(c.node, legal)
		if child == nil { // Tree was grown for other moves
			chosen = legal[m.rng.IntN(len(legal))]
			c.exhausted = true
			break
		}
		c.node = child
		chosen = child.move
	default:
		chosen = legal[m.rng.IntN(len(legal))]
		c.node = m.expand(c.node, phase, s.Round, chosen)
		c.exhausted = true
	}

	m.metrics.SetTreeNodes(m.nodes)
	m.metrics.Complete(chosen.String(), 0)
	return chosen, nil
}

func (m *PureMCTS) cursor(id uuid.UUID, player int) *cursor {
	key := cursorKey{game: id, player: player}
	c, ok := m.cursors[key]
	if !ok {
		c = &cursor{node: m.root}
		m.cursors[key] = c
	}
	return c
}

// selectChild samples among the children playable now, weighted by their
// win rate.
func (m *PureMCTS) selectChild(parent *node, legal []move) *node {
	var candidates []*node
	var weights []float64
	for _, mv := range legal {
		if child := parent.child(mv); child != nil {
			candidates = append(candidates, child)
			weights = append(weights, child.weight())
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[newRouletteWheel(weights).spin(m.rng)]
}

// expand creates one child per possible move of the phase and returns the
// child of the chosen move.
func (m *PureMCTS) expand(parent *node, phase Phase, round int, chosen move) *node {
	var next *node
	for _, mv := range allMoves(phase, round) {
		child := newNode(parent, mv)
		parent.addChild(child)
		m.nodes++
		if mv == chosen {
			next = child
		}
	}
	return next
}

func (m *PureMCTS) GameStarted(g *engine.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log.Debug().Msgf("puremcts tree has %d nodes at start of game %s", m.nodes, g.State.ID)
}

// GameFinished back-propagates the result of a game from the deepest node
// each player reached up to the root.
func (m *PureMCTS) GameFinished(g *engine.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	winner := g.State.Leader()
	for key, c := range m.cursors {
		if key.game != g.State.ID {
			continue
		}
		if !c.exhausted && len(c.node.children) == 0 {
			c.node.terminal = true
		}
		won := key.player == winner
		for n := c.node; n != nil; {
			n = n.backup(won)
		}
		delete(m.cursors, key)
	}
	return nil
}

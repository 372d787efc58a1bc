package game

import (
	"fmt"
	"math/rand/v2"
)

// ResampleHands replaces the hand of every player other than pov with Round
// distinct catalog cards pov has not observed, drawn without replacement.
// Observations are left untouched: the new hands are only a belief held by
// this copy of the game.
func (gs *GameState) ResampleHands(pov int, rng *rand.Rand) error {
	var unseen []int
	for i, seen := range gs.Observed[pov] {
		if !seen {
			unseen = append(unseen, i)
		}
	}
	if len(unseen) < gs.Round {
		return fmt.Errorf("%w: %d unseen cards left, need %d", ErrLogic, len(unseen), gs.Round)
	}

	for p := 0; p < gs.NbPlayers; p++ {
		if p == pov {
			continue
		}
		pool := make([]int, len(unseen))
		copy(pool, unseen)
		hand := make([]Card, gs.Round)
		for i := range hand {
			j := i + rng.IntN(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
			hand[i] = CatalogCard(pool[i])
		}
		gs.Hands[p] = hand
	}
	return nil
}

package game

import "math/rand/v2"

// Shuffle returns a uniformly random permutation of the catalog.
func Shuffle(rng *rand.Rand) []Card {
	cards := Catalog()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// Deck is one shuffled catalog, drawn once per round.
type Deck struct {
	cards []Card
}

func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{cards: Shuffle(rng)}
}

// Deal returns the hand of a player for a round of the given size: the slice
// [player*size, player*size+size) of the shuffled cards.
func (d *Deck) Deal(player, size int) []Card {
	hand := make([]Card, size)
	copy(hand, d.cards[player*size:player*size+size])
	return hand
}

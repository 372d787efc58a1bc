package game

import "fmt"

// WinnerIndex returns the position of the winning card in a completed trick.
//
// Black trumps the colours when no special card is present. Without black,
// the highest card of the first non-escape card's suit wins, and a trick made
// only of escapes goes to the first card. When special cards are present only
// they can win: skull king beats pirate, mermaid beats skull king, pirate
// beats mermaid, and any other pairing keeps the earlier card.
func WinnerIndex(cards []Card) (int, error) {
	if len(cards) < 2 {
		return -1, fmt.Errorf("%w: trick resolved with %d card(s)", ErrLogic, len(cards))
	}
	special := false
	for _, card := range cards {
		switch {
		case card.Rank == ScaryMary:
			return -1, fmt.Errorf("%w: %s effect not implemented", ErrLogic, card.Rank)
		case card.Rank.IsSpecial():
			special = true
		case card.Rank.IsNumber(), card.Rank == Escape:
		default:
			return -1, fmt.Errorf("%w: unknown card %v", ErrLogic, card)
		}
	}
	if special {
		return specialWinner(cards)
	}
	return colourWinner(cards), nil
}

func colourWinner(cards []Card) int {
	best := -1
	for i, card := range cards {
		if card.Suit == Black && (best < 0 || card.Rank > cards[best].Rank) {
			best = i
		}
	}
	if best >= 0 {
		return best
	}

	lead := -1
	for i, card := range cards {
		if card.Rank != Escape {
			lead = i
			break
		}
	}
	if lead < 0 {
		return 0
	}

	// An equal card played later takes the trick.
	best = lead
	for i, card := range cards {
		if card.Suit == cards[lead].Suit && card.Rank >= cards[best].Rank {
			best = i
		}
	}
	return best
}

func specialWinner(cards []Card) (int, error) {
	best := -1
	for i, card := range cards {
		if !card.Rank.IsSpecial() {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		if beats(card.Rank, cards[best].Rank) {
			best = i
		}
	}
	if best < 0 {
		return -1, fmt.Errorf("%w: no special card among %v", ErrLogic, cards)
	}
	return best, nil
}

func beats(challenger, current Rank) bool {
	switch {
	case challenger == SkullKing && current == Pirate:
		return true
	case challenger == Mermaid && current == SkullKing:
		return true
	case challenger == Pirate && current == Mermaid:
		return true
	}
	return false
}

package game

import (
	"fmt"
	"strconv"
)

// Rank is the face of a card. Numbered cards use their value (1 to 13), the
// special cards use the constants below.
type Rank int

const (
	MinNumber Rank = 1
	MaxNumber Rank = 13
)

const (
	Escape Rank = iota + 14
	Pirate
	Mermaid
	SkullKing
	ScaryMary // Reserved, never part of the catalog
)

func (r Rank) IsNumber() bool {
	return r >= MinNumber && r <= MaxNumber
}

// IsSpecial reports whether the rank bypasses suit following and has its own
// precedence rules. Escapes are not special.
func (r Rank) IsSpecial() bool {
	return r == Pirate || r == Mermaid || r == SkullKing || r == ScaryMary
}

func (r Rank) String() string {
	switch r {
	case Escape:
		return "escape"
	case Pirate:
		return "pirate"
	case Mermaid:
		return "mermaid"
	case SkullKing:
		return "skull_king"
	case ScaryMary:
		return "scary_mary"
	}
	if r.IsNumber() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

// Suit is the colour of a numbered card. Special cards and escapes carry
// NoSuit. LeadAny is only ever used as a trick's lead suit.
type Suit int

const (
	NoSuit Suit = iota
	Red
	Blue
	Yellow
	Black
	LeadAny
)

var colours = []Suit{Red, Blue, Yellow, Black}

func (s Suit) String() string {
	switch s {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Black:
		return "black"
	case LeadAny:
		return "no-suit-required"
	default:
		return "none"
	}
}

type Card struct {
	Rank Rank
	Suit Suit
}

func NewNumber(rank int, suit Suit) Card {
	return Card{Rank: Rank(rank), Suit: suit}
}

func NewSpecial(rank Rank) Card {
	return Card{Rank: rank, Suit: NoSuit}
}

func (c Card) String() string {
	if c.Rank.IsNumber() {
		return fmt.Sprintf("%d-%s", c.Rank, c.Suit)
	}
	return c.Rank.String()
}

// CatalogSize is the number of physical cards in one deck.
const CatalogSize = 66

var catalog = buildCatalog()

var catalogIndex = buildCatalogIndex()

func buildCatalog() []Card {
	cards := make([]Card, 0, CatalogSize)
	for rank := MinNumber; rank <= MaxNumber; rank++ {
		for _, suit := range colours {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	specials := []struct {
		rank  Rank
		count int
	}{
		{Escape, 6},
		{Pirate, 5},
		{Mermaid, 2},
		{SkullKing, 1},
	}
	for _, s := range specials {
		for i := 0; i < s.count; i++ {
			cards = append(cards, NewSpecial(s.rank))
		}
	}
	return cards
}

func buildCatalogIndex() map[Card]int {
	index := make(map[Card]int, len(catalog))
	for i, card := range catalog {
		if _, ok := index[card]; !ok {
			index[card] = i
		}
	}
	return index
}

// Catalog returns a fresh copy of the canonical card ordering.
func Catalog() []Card {
	cards := make([]Card, len(catalog))
	copy(cards, catalog)
	return cards
}

// CatalogIndex returns the canonical index of a card. Duplicated cards share
// the index of their first catalog slot; their copies follow it contiguously.
func CatalogIndex(card Card) (int, bool) {
	i, ok := catalogIndex[card]
	return i, ok
}

// CatalogCard returns the card at a canonical index.
func CatalogCard(i int) Card {
	return catalog[i]
}

// DistinctCards returns every card identity once, in catalog order.
func DistinctCards() []Card {
	seen := make(map[Card]bool, len(catalogIndex))
	cards := make([]Card, 0, len(catalogIndex))
	for _, card := range catalog {
		if !seen[card] {
			seen[card] = true
			cards = append(cards, card)
		}
	}
	return cards
}

package cards

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ShoeSize is the number of cards in a single-deck shoe
const ShoeSize = 52

// ErrEmptyShoe is returned when drawing from a shoe with no cards left
var ErrEmptyShoe = errors.New("shoe is empty")

// ConfigurationError reports a shoe built from a non-standard card set
type ConfigurationError struct {
	Card   Card
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid shoe configuration: " + e.Reason
}

// Shoe is the finite supply of cards for a single round. Cards are drawn from
// the end of the slice and never come back. The remaining order is private.
type Shoe struct {
	cards []Card
}

// NewShoe creates a freshly shuffled 52-card shoe using rng
func NewShoe(rng *rand.Rand) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}

	s := &Shoe{cards: standardCards()}
	shuffle(rng, s.cards)
	return s
}

// NewStackedShoe creates a shoe whose first draws are top, in order, followed
// by the rest of the deck shuffled with rng. It fails with a
// *ConfigurationError if top holds an invalid or duplicated card.
func NewStackedShoe(rng *rand.Rand, top ...Card) (*Shoe, error) {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if len(top) > ShoeSize {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("%d cards exceed a %d card shoe", len(top), ShoeSize)}
	}

	seen := make(map[Card]bool, len(top))
	for _, c := range top {
		if !c.Valid() {
			return nil, &ConfigurationError{Card: c, Reason: fmt.Sprintf("non-standard card (suit %d, rank %d)", c.Suit, c.Rank)}
		}
		if seen[c] {
			return nil, &ConfigurationError{Card: c, Reason: "duplicate card " + c.String()}
		}
		seen[c] = true
	}

	rest := make([]Card, 0, ShoeSize-len(top))
	for _, c := range standardCards() {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	shuffle(rng, rest)

	// Draw pops from the end, so the stacked cards go last in reverse order
	cards := rest
	for i := len(top) - 1; i >= 0; i-- {
		cards = append(cards, top[i])
	}

	return &Shoe{cards: cards}, nil
}

// Draw removes and returns the next card
func (s *Shoe) Draw() (Card, error) {
	n := len(s.cards)
	if n == 0 {
		return Card{}, ErrEmptyShoe
	}
	card := s.cards[n-1]
	s.cards = s.cards[:n-1]
	return card, nil
}

// Remaining returns how many cards are left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

func standardCards() []Card {
	cards := make([]Card, 0, ShoeSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// shuffle is an in-place Fisher-Yates shuffle
func shuffle(rng *rand.Rand, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

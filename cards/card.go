// Package cards provides the playing cards and the dealing shoe used by the
// blackjack engine.
package cards

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

// Suits lists every suit in shoe-building order
var Suits = [...]Suit{Diamonds, Clubs, Hearts, Spades}

// String returns the symbol for the suit
func (s Suit) String() string {
	switch s {
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the lower-case suit name ("diamond", "club", "heart", "spade")
func (s Suit) Name() string {
	switch s {
	case Diamonds:
		return "diamond"
	case Clubs:
		return "club"
	case Hearts:
		return "heart"
	case Spades:
		return "spade"
	default:
		return "unknown"
	}
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four standard suits
func (s Suit) Valid() bool {
	return s <= Spades
}

// Rank represents a card rank
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in shoe-building order
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the rank as printed on the card
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r.Valid() {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Valid reports whether r is one of the thirteen standard ranks
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Value returns the nominal blackjack value of the rank. Aces count 11 here;
// hands downgrade them to 1 as needed.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Card is an immutable suit and rank pair
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Value returns the nominal blackjack value of the card
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce returns true if the card is an ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsTenValue returns true for 10, J, Q and K
func (c Card) IsTenValue() bool {
	return c.Rank.Value() == 10
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Valid reports whether both suit and rank are standard
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// String returns the short form of the card, e.g. "A♠" or "10♦"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Long returns the spelled out form of the card, e.g. "A of spade"
func (c Card) Long() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit.Name())
}

// ParseCard parses a single card such as "As", "Td" or "10h".
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("expected exactly one card in %q, got %d", s, len(cards))
	}
	return cards[0], nil
}

// ParseCards parses a run of cards in [Rank][Suit] notation, e.g. "AsKd10h".
// Ranks: A, 2-9, T or 10, J, Q, K. Suits: d, c, h, s. Case and spaces are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))

	cards := []Card{}
	for i := 0; i < len(s); {
		rank, width, err := parseRank(s[i:])
		if err != nil {
			return nil, fmt.Errorf("invalid rank at position %d: %w", i, err)
		}
		i += width
		if i >= len(s) {
			return nil, fmt.Errorf("missing suit at position %d", i)
		}
		suit, err := parseSuit(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid suit at position %d: %w", i, err)
		}
		i++
		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCard is like ParseCard but panics on error
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(s string) (Rank, int, error) {
	if strings.HasPrefix(s, "10") {
		return Ten, 2, nil
	}
	switch c := s[0]; c {
	case 'a':
		return Ace, 1, nil
	case 'k':
		return King, 1, nil
	case 'q':
		return Queen, 1, nil
	case 'j':
		return Jack, 1, nil
	case 't':
		return Ten, 1, nil
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(c - '0'), 1, nil
	default:
		return 0, 0, fmt.Errorf("unknown rank %q", c)
	}
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'd':
		return Diamonds, nil
	case 'c':
		return Clubs, nil
	case 'h':
		return Hearts, nil
	case 's':
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", c)
	}
}

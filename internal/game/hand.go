package game

import (
	"strings"

	"github.com/lox/blackjack/cards"
)

// HandState is the lifecycle state of a hand
type HandState uint8

const (
	Pending HandState = iota
	Finished
)

// String returns the string representation of the state
func (s HandState) String() string {
	if s == Finished {
		return "finished"
	}
	return "pending"
}

// Hand is an ordered set of cards with a wager. The wager is the amount in
// play; the stake is the part of it that was actually taken from the bankroll.
// Free promotions raise the wager without raising the stake.
type Hand struct {
	cards     []cards.Card
	wager     int
	stake     int
	state     HandState
	fromSplit bool
	doubled   bool
}

// NewHand creates a pending hand funded with wager
func NewHand(wager int, initial ...cards.Card) *Hand {
	h := &Hand{
		cards: make([]cards.Card, 0, 6),
		wager: wager,
		stake: wager,
	}
	for _, c := range initial {
		h.add(c)
	}
	return h
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []cards.Card {
	out := make([]cards.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// UpCard returns the first card dealt to the hand
func (h *Hand) UpCard() cards.Card {
	if len(h.cards) == 0 {
		return cards.Card{}
	}
	return h.cards[0]
}

// Wager returns the amount in play on the hand
func (h *Hand) Wager() int { return h.wager }

// Stake returns the amount of the wager taken from the bankroll
func (h *Hand) Stake() int { return h.stake }

// State returns the lifecycle state of the hand
func (h *Hand) State() HandState { return h.state }

// FromSplit reports whether the hand was produced by a split
func (h *Hand) FromSplit() bool { return h.fromSplit }

// Doubled reports whether the hand has been doubled
func (h *Hand) Doubled() bool { return h.doubled }

// Finished reports whether the hand accepts no further actions
func (h *Hand) Finished() bool { return h.state == Finished }

// Sum returns the blackjack total of the hand
func (h *Hand) Sum() int {
	total, _ := h.SumSoft()
	return total
}

// SumSoft returns the total and whether it is soft. Every ace starts at 11
// and is downgraded to 1, one at a time, while the total is over 21. A hand
// is soft when it holds an ace and none had to be downgraded.
func (h *Hand) SumSoft() (int, bool) {
	total, aces, downgraded := h.evaluate()
	return total, aces > 0 && downgraded == 0
}

// evaluate returns the total along with the ace bookkeeping behind it.
// 0 <= downgraded <= aces always holds.
func (h *Hand) evaluate() (total, aces, downgraded int) {
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && downgraded < aces {
		total -= 10
		downgraded++
	}
	return total, aces, downgraded
}

// Bust reports whether the total is over 21
func (h *Hand) Bust() bool {
	return h.Sum() > 21
}

// Blackjack reports a natural: 21 with the two original cards. Hands created
// by a split never count as blackjack.
func (h *Hand) Blackjack() bool {
	return !h.fromSplit && len(h.cards) == 2 && h.Sum() == 21
}

// Soft17 reports a soft total of 17
func (h *Hand) Soft17() bool {
	total, soft := h.SumSoft()
	return soft && total == 17
}

// CanSplit reports a two-card pair of equal value. Mixed ten-value pairs such
// as 10-K are splittable.
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Value() == h.cards[1].Value()
}

// CanFreeSplit reports a pair of identical ranks that is not ten-valued. The
// house splits those for free.
func (h *Hand) CanFreeSplit() bool {
	return h.CanSplit() && h.cards[0].Rank == h.cards[1].Rank && !h.cards[0].IsTenValue()
}

// CanDouble reports a two-card hand
func (h *Hand) CanDouble() bool {
	return len(h.cards) == 2 && !h.doubled
}

// CanFreeDouble reports a two-card 9, 10 or 11
func (h *Hand) CanFreeDouble() bool {
	if !h.CanDouble() {
		return false
	}
	switch h.Sum() {
	case 9, 10, 11:
		return true
	}
	return false
}

// DealerStay is the dealer's standing rule: stand on hard 17 or anything
// above it, hit soft 17.
func (h *Hand) DealerStay() bool {
	sum := h.Sum()
	return sum > 17 || (sum == 17 && !h.Soft17())
}

// Hit adds a card. The hand finishes on 21 or more.
func (h *Hand) Hit(card cards.Card) error {
	if h.Finished() {
		return ErrHandFinished
	}
	h.add(card)
	return nil
}

// Stand finishes the hand
func (h *Hand) Stand() error {
	if h.Finished() {
		return ErrHandFinished
	}
	h.finish()
	return nil
}

// Double doubles the wager, takes exactly one card and finishes the hand
func (h *Hand) Double(card cards.Card) error {
	if h.Finished() {
		return ErrHandFinished
	}
	if !h.CanDouble() {
		return ErrCannotDouble
	}
	h.wager *= 2
	h.doubled = true
	h.add(card)
	h.finish()
	return nil
}

// Split moves the first card into a new sibling hand. The receiver keeps its
// second card plus card1; the sibling gets the first card plus card2 and the
// same wager. The sibling starts unfunded; the caller decides its stake.
func (h *Hand) Split(card1, card2 cards.Card) (*Hand, error) {
	if h.Finished() {
		return nil, ErrHandFinished
	}
	if !h.CanSplit() {
		return nil, ErrCannotSplit
	}

	first := h.cards[0]
	h.cards = h.cards[1:2:2]
	h.fromSplit = true
	h.add(card1)

	sibling := &Hand{
		cards:     make([]cards.Card, 0, 6),
		wager:     h.wager,
		fromSplit: true,
	}
	sibling.add(first)
	sibling.add(card2)

	return sibling, nil
}

// String lists the cards, e.g. "A♠, K♥"
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func (h *Hand) add(card cards.Card) {
	h.cards = append(h.cards, card)
	if h.Sum() >= 21 {
		h.finish()
	}
}

func (h *Hand) fund(amount int) {
	h.stake += amount
}

func (h *Hand) finish() {
	h.state = Finished
}

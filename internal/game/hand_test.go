package game

import (
	"errors"
	"testing"

	"github.com/lox/blackjack/cards"
)

func hand(notation string) *Hand {
	return NewHand(10, cards.MustParseCards(notation)...)
}

func cardsOf(notation string) []cards.Card {
	return cards.MustParseCards(notation)
}

func TestHandSum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards string
		sum   int
		soft  bool
	}{
		{"AsKh", 21, true},
		{"As6h", 17, true},
		{"AsAh", 12, false},
		{"AsAh9d", 21, false},
		{"AsAhAdAc", 14, false},
		{"10s7h", 17, false},
		{"10s6h5d", 21, false},
		{"10sQhKd", 30, false},
		{"As5h5d", 21, true},
		{"As6h10d", 17, false},
		{"2s3h", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			sum, soft := hand(tt.cards).SumSoft()
			if sum != tt.sum {
				t.Errorf("sum = %d, want %d", sum, tt.sum)
			}
			if soft != tt.soft {
				t.Errorf("soft = %v, want %v", soft, tt.soft)
			}
		})
	}
}

func TestHandNeverOverDowngradesAces(t *testing.T) {
	t.Parallel()

	// Every combination of up to four aces mixed with other ranks
	others := []cards.Rank{cards.Two, cards.Five, cards.Nine, cards.King}
	for aces := 0; aces <= 4; aces++ {
		for _, other := range others {
			for n := 0; n <= 3; n++ {
				h := &Hand{}
				for i := 0; i < aces; i++ {
					h.cards = append(h.cards, cards.NewCard(cards.Suits[i], cards.Ace))
				}
				for i := 0; i < n; i++ {
					h.cards = append(h.cards, cards.NewCard(cards.Suits[i], other))
				}

				total, counted, downgraded := h.evaluate()
				if counted != aces {
					t.Fatalf("%s: counted %d aces, want %d", h, counted, aces)
				}
				if downgraded < 0 || downgraded > counted {
					t.Fatalf("%s: downgraded %d of %d aces", h, downgraded, counted)
				}
				if downgraded < counted && total > 21 {
					t.Fatalf("%s: total %d with %d aces still at 11", h, total, counted-downgraded)
				}
			}
		}
	}
}

func TestHandBlackjack(t *testing.T) {
	t.Parallel()

	if h := hand("AsKh"); !h.Blackjack() || h.Sum() != 21 {
		t.Errorf("A-K should be a blackjack, sum %d", h.Sum())
	}
	if h := hand("As5h5d"); h.Blackjack() {
		t.Error("three-card 21 is not a blackjack")
	}

	h := hand("AsAh")
	sibling, err := h.Split(cards.MustParseCard("Kd"), cards.MustParseCard("2c"))
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if h.Sum() != 21 || h.Len() != 2 {
		t.Fatalf("split hand = %s (%d), want two cards totalling 21", h, h.Sum())
	}
	if h.Blackjack() {
		t.Error("a 21 reached by splitting must not count as blackjack")
	}
	if sibling.Blackjack() {
		t.Error("split sibling must not count as blackjack")
	}
}

func TestHandSoft17(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards  string
		soft17 bool
	}{
		{"As6h", true},
		{"AsAh9d", false},
		{"10s7h", false},
		{"As2h4d", true},
		{"As6h10d", false},
		{"As7h", false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			if got := hand(tt.cards).Soft17(); got != tt.soft17 {
				t.Errorf("Soft17() = %v, want %v", got, tt.soft17)
			}
		})
	}
}

func TestHandSplitEligibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards     string
		canSplit  bool
		freeSplit bool
	}{
		{"7s7h", true, true},
		{"AsAh", true, true},
		{"10sKh", true, false},
		{"QsQh", true, false},
		{"7s8h", false, false},
		{"7s7h2d", false, false},
		{"9s", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			h := hand(tt.cards)
			if got := h.CanSplit(); got != tt.canSplit {
				t.Errorf("CanSplit() = %v, want %v", got, tt.canSplit)
			}
			if got := h.CanFreeSplit(); got != tt.freeSplit {
				t.Errorf("CanFreeSplit() = %v, want %v", got, tt.freeSplit)
			}
		})
	}
}

func TestHandDoubleEligibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards      string
		canDouble  bool
		freeDouble bool
	}{
		{"4s5h", true, true},
		{"6s4h", true, true},
		{"9s2h", true, true},
		{"As8h", true, false},
		{"10s2h", true, false},
		{"2s3h4d", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			h := hand(tt.cards)
			if got := h.CanDouble(); got != tt.canDouble {
				t.Errorf("CanDouble() = %v, want %v", got, tt.canDouble)
			}
			if got := h.CanFreeDouble(); got != tt.freeDouble {
				t.Errorf("CanFreeDouble() = %v, want %v", got, tt.freeDouble)
			}
		})
	}
}

func TestDealerStay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards string
		stay  bool
	}{
		{"10s7h", true},
		{"As6h", false},
		{"10s6h", false},
		{"10s8h", true},
		{"As7h", true},
		{"As2h4d", false},
		{"10s6hAd", true},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			if got := hand(tt.cards).DealerStay(); got != tt.stay {
				t.Errorf("DealerStay() = %v, want %v", got, tt.stay)
			}
		})
	}
}

func TestHandHitFinishesOn21OrMore(t *testing.T) {
	t.Parallel()

	h := hand("10s9h")
	if h.Finished() {
		t.Fatal("19 should still be pending")
	}
	if err := h.Hit(cards.MustParseCard("6d")); err != nil {
		t.Fatalf("Hit: %v", err)
	}
	if !h.Bust() || !h.Finished() {
		t.Errorf("25 should be bust and finished, got %d finished=%v", h.Sum(), h.Finished())
	}
	if err := h.Hit(cards.MustParseCard("2d")); !errors.Is(err, ErrHandFinished) {
		t.Errorf("hit on finished hand error = %v, want ErrHandFinished", err)
	}

	h = hand("5s6h")
	_ = h.Hit(cards.MustParseCard("Kd"))
	if !h.Finished() || h.Bust() {
		t.Errorf("21 should finish without busting, got %d", h.Sum())
	}

	if !hand("AsKh").Finished() {
		t.Error("a natural should be finished on the deal")
	}
}

func TestHandDouble(t *testing.T) {
	t.Parallel()

	h := hand("2s3h")
	if err := h.Double(cards.MustParseCard("4d")); err != nil {
		t.Fatalf("Double: %v", err)
	}
	if h.Wager() != 20 {
		t.Errorf("wager = %d, want 20", h.Wager())
	}
	if h.Len() != 3 || !h.Finished() || !h.Doubled() {
		t.Errorf("double should take one card and finish, got %s finished=%v", h, h.Finished())
	}
	if h.Stake() != 10 {
		t.Errorf("stake = %d, want 10 until the double is funded", h.Stake())
	}

	if err := hand("2s3h4d").Double(cards.MustParseCard("5d")); !errors.Is(err, ErrCannotDouble) {
		t.Errorf("three-card double error = %v, want ErrCannotDouble", err)
	}
}

func TestHandSplit(t *testing.T) {
	t.Parallel()

	h := hand("8s8h")
	sibling, err := h.Split(cards.MustParseCard("3d"), cards.MustParseCard("2c"))
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if got := h.String(); got != "8♥, 3♦" {
		t.Errorf("hand = %s, want 8♥, 3♦", got)
	}
	if got := sibling.String(); got != "8♠, 2♣" {
		t.Errorf("sibling = %s, want 8♠, 2♣", got)
	}
	if sibling.Wager() != h.Wager() {
		t.Errorf("sibling wager = %d, want %d", sibling.Wager(), h.Wager())
	}
	if sibling.Stake() != 0 {
		t.Errorf("sibling stake = %d, want 0 until funded", sibling.Stake())
	}
	if !h.FromSplit() || !sibling.FromSplit() {
		t.Error("both halves should be marked as split hands")
	}
	if h.Finished() || sibling.Finished() {
		t.Error("split hands under 21 should be pending")
	}

	if _, err := hand("8s9h").Split(cards.MustParseCard("3d"), cards.MustParseCard("2c")); !errors.Is(err, ErrCannotSplit) {
		t.Errorf("split of non-pair error = %v, want ErrCannotSplit", err)
	}
}

func TestHandSplitCanResplit(t *testing.T) {
	t.Parallel()

	h := hand("8s8h")
	sibling, err := h.Split(cards.MustParseCard("8d"), cards.MustParseCard("5c"))
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !h.CanSplit() {
		t.Errorf("%s should be splittable again", h)
	}
	if sibling.CanSplit() {
		t.Errorf("%s should not be splittable", sibling)
	}
}

func TestHandCardsIsACopy(t *testing.T) {
	t.Parallel()

	h := hand("As2h")
	cs := h.Cards()
	cs[0] = cards.MustParseCard("Kd")
	if h.UpCard() != cards.MustParseCard("As") {
		t.Error("mutating Cards() changed the hand")
	}
}

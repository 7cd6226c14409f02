package cards

import "testing"

func TestCardValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rank Rank
		want int
	}{
		{Ace, 11},
		{Two, 2},
		{Five, 5},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
	}

	for _, tt := range tests {
		t.Run(tt.rank.String(), func(t *testing.T) {
			c := NewCard(Spades, tt.rank)
			if got := c.Value(); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	if got := NewCard(Spades, Ace).String(); got != "A♠" {
		t.Errorf("String() = %q, want A♠", got)
	}
	if got := NewCard(Diamonds, Ten).String(); got != "10♦" {
		t.Errorf("String() = %q, want 10♦", got)
	}
	if got := NewCard(Hearts, Queen).Long(); got != "Q of heart" {
		t.Errorf("Long() = %q, want 'Q of heart'", got)
	}
}

func TestCardPredicates(t *testing.T) {
	t.Parallel()

	if !NewCard(Clubs, Ace).IsAce() {
		t.Error("ace should report IsAce")
	}
	if !NewCard(Clubs, Jack).IsTenValue() {
		t.Error("jack should be ten-valued")
	}
	if NewCard(Clubs, Nine).IsTenValue() {
		t.Error("nine should not be ten-valued")
	}
	if !NewCard(Hearts, Two).IsRed() || NewCard(Spades, Two).IsRed() {
		t.Error("IsRed mismatch")
	}
	if (Card{Suit: 9, Rank: Ace}).Valid() || (Card{Suit: Spades, Rank: 0}).Valid() {
		t.Error("non-standard cards must not be valid")
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []Card
		wantErr bool
	}{
		{
			name:  "blackjack",
			input: "AsKh",
			want:  []Card{{Spades, Ace}, {Hearts, King}},
		},
		{
			name:  "ten spelled two ways",
			input: "Td10c",
			want:  []Card{{Diamonds, Ten}, {Clubs, Ten}},
		},
		{
			name:  "spaces and case",
			input: "7S 7d",
			want:  []Card{{Spades, Seven}, {Diamonds, Seven}},
		},
		{
			name:  "empty",
			input: "",
			want:  []Card{},
		},
		{name: "bad rank", input: "Xs", wantErr: true},
		{name: "bad suit", input: "Ax", wantErr: true},
		{name: "missing suit", input: "AsK", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCards(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseCards(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("card %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	c, err := ParseCard("Qc")
	if err != nil {
		t.Fatalf("ParseCard: %v", err)
	}
	if c != NewCard(Clubs, Queen) {
		t.Errorf("ParseCard(Qc) = %v", c)
	}

	if _, err := ParseCard("QcKc"); err == nil {
		t.Error("ParseCard should reject more than one card")
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCards() should panic on invalid input")
		}
	}()
	MustParseCards("nope")
}

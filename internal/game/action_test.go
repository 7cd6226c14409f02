package game

import (
	"slices"
	"testing"
)

func TestParseAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"h", Hit, false},
		{"HIT", Hit, false},
		{" s ", Stand, false},
		{"stay", Stand, false},
		{"p", Split, false},
		{"fp", FreeSplit, false},
		{"free-split", FreeSplit, false},
		{"d", Double, false},
		{"fd", FreeDouble, false},
		{"free_double", FreeDouble, false},
		{"fold", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAction(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestActionShortcutsRoundTrip(t *testing.T) {
	t.Parallel()

	for _, a := range []Action{Hit, Stand, Split, FreeSplit, Double, FreeDouble} {
		got, err := ParseAction(a.Shortcut())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v; want %v", a.Shortcut(), got, err, a)
		}
		got, err = ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v; want %v", a.String(), got, err, a)
		}
	}
}

func TestValidActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		bankroll int
		want     []Action
	}{
		{"free split and free double", "5s5h", 0, []Action{Stand, Hit, FreeSplit, FreeDouble}},
		{"free split, paid double", "7s7h", 100, []Action{Stand, Hit, FreeSplit, Double}},
		{"paid split of ten values", "10sKh", 100, []Action{Stand, Hit, Split, Double}},
		{"paid options need the bankroll", "10sKh", 5, []Action{Stand, Hit}},
		{"free double only", "6s4h", 0, []Action{Stand, Hit, FreeDouble}},
		{"three cards", "2s3h4d", 100, []Action{Stand, Hit}},
		{"finished hand", "AsKh", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidActions(hand(tt.cards), tt.bankroll)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ValidActions(%s, %d) = %v, want %v", tt.cards, tt.bankroll, got, tt.want)
			}
		})
	}
}

func TestFreeAndPaidActionsAreExclusive(t *testing.T) {
	t.Parallel()

	for _, notation := range []string{"5s5h", "7s7h", "AsAh", "10sKh", "4s5h", "9s2h"} {
		valid := ValidActions(hand(notation), 1000)
		if IsValidAction(Split, valid) && IsValidAction(FreeSplit, valid) {
			t.Errorf("%s offers both split kinds: %v", notation, valid)
		}
		if IsValidAction(Double, valid) && IsValidAction(FreeDouble, valid) {
			t.Errorf("%s offers both double kinds: %v", notation, valid)
		}
	}
}

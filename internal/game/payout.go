package game

import "github.com/lox/blackjack/cards"

// Outcome is how a player hand settled against the dealer
type Outcome uint8

const (
	Blackjack Outcome = iota + 1
	Win
	DealerBust
	Push
	DealerPush22
	Lose
	Bust
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Blackjack:
		return "blackjack"
	case Win:
		return "win"
	case DealerBust:
		return "dealer bust"
	case Push:
		return "push"
	case DealerPush22:
		return "dealer 22 push"
	case Lose:
		return "lose"
	case Bust:
		return "bust"
	default:
		return "unknown"
	}
}

// Won reports an outcome that pays winnings
func (o Outcome) Won() bool {
	return o == Blackjack || o == Win || o == DealerBust
}

// Pushed reports an outcome that returns the stake only
func (o Outcome) Pushed() bool {
	return o == Push || o == DealerPush22
}

// Lost reports an outcome that forfeits the stake
func (o Outcome) Lost() bool {
	return o == Lose || o == Bust
}

// potOfGold holds the side bet multiplier indexed by gold coins collected
var potOfGold = [...]int{0, 3, 10, 30, 60, 100, 300, 1000}

// PotOfGoldMultiplier returns the side bet multiplier for a number of gold
// coins. Counts above seven pay the seven-coin rate.
func PotOfGoldMultiplier(coins int) int {
	if coins <= 0 {
		return 0
	}
	if coins >= len(potOfGold) {
		coins = len(potOfGold) - 1
	}
	return potOfGold[coins]
}

// HandResult is the settlement of one player hand
type HandResult struct {
	Cards    []cards.Card
	Sum      int
	Wager    int
	Stake    int
	Outcome  Outcome
	Winnings int // profit on top of the returned stake
	Credit   int // amount credited back to the bankroll
}

// Net returns the hand's effect on the bankroll
func (r HandResult) Net() int {
	return r.Credit - r.Stake
}

// RoundResult is the settlement of a whole round
type RoundResult struct {
	ID            string
	Hands         []HandResult
	Dealer        HandView
	MainBet       int
	SideBet       int
	GoldCoins     int
	SideBetCredit int
	Debited       int // everything taken from the bankroll during the round
	Credit        int // everything paid back at resolution
	Net           int
	Bankroll      int
	CanContinue   bool
}

// settle resolves a finished player hand against the dealer's final hand.
// The checks run in order: natural, player bust, dealer 22, dealer bust, then
// the totals.
func settle(h *Hand, dealer *Hand) HandResult {
	result := HandResult{
		Cards: h.Cards(),
		Sum:   h.Sum(),
		Wager: h.Wager(),
		Stake: h.Stake(),
	}

	dealerSum := dealer.Sum()

	switch {
	case h.Blackjack():
		result.Outcome = Blackjack
		result.Winnings = h.Wager() * 3 / 2
	case h.Bust():
		result.Outcome = Bust
	case dealerSum == 22:
		result.Outcome = DealerPush22
	case dealerSum > 21:
		result.Outcome = DealerBust
		result.Winnings = h.Wager()
	case result.Sum > dealerSum:
		result.Outcome = Win
		result.Winnings = h.Wager()
	case result.Sum < dealerSum:
		result.Outcome = Lose
	default:
		result.Outcome = Push
	}

	switch {
	case result.Outcome.Won():
		result.Credit = h.Stake() + result.Winnings
	case result.Outcome.Pushed():
		result.Credit = h.Stake()
	}

	return result
}

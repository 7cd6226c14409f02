// Package statistics aggregates blackjack round results into running
// summaries for simulation reports.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// MaxGoldCoins is the highest gold coin count tracked separately; larger
// counts share its bucket, matching the pot-of-gold table
const MaxGoldCoins = 7

// RoundResult represents the outcome of a single round
type RoundResult struct {
	Net         int // bankroll change over the round
	Wagered     int // everything staked during the round
	HandsWon    int
	HandsLost   int
	HandsPushed int
	Blackjacks  int
	GoldCoins   int
	Bonus       int // pot-of-gold side bet credit
}

// Statistics tracks round results with a running mean and variance
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	TotalWagered int
	HandsWon     int
	HandsLost    int
	HandsPushed  int
	Blackjacks   int

	// Pot of gold analytics
	GoldCoins   [MaxGoldCoins + 1]int // rounds by gold coins collected
	BonusRounds int
	BonusTotal  int
	MaxBonus    int
}

// Mean returns the mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of round results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
	return max(v, 0)
}

// StdDev returns the sample standard deviation of round results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a round result
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	s.TotalWagered += result.Wagered
	s.HandsWon += result.HandsWon
	s.HandsLost += result.HandsLost
	s.HandsPushed += result.HandsPushed
	s.Blackjacks += result.Blackjacks

	s.GoldCoins[min(max(result.GoldCoins, 0), MaxGoldCoins)]++
	if result.Bonus > 0 {
		s.BonusRounds++
		s.BonusTotal += result.Bonus
		s.MaxBonus = max(s.MaxBonus, result.Bonus)
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)

	s.TotalWagered += other.TotalWagered
	s.HandsWon += other.HandsWon
	s.HandsLost += other.HandsLost
	s.HandsPushed += other.HandsPushed
	s.Blackjacks += other.Blackjacks

	for i, n := range other.GoldCoins {
		s.GoldCoins[i] += n
	}
	s.BonusRounds += other.BonusRounds
	s.BonusTotal += other.BonusTotal
	s.MaxBonus = max(s.MaxBonus, other.MaxBonus)
}

// Hands returns the number of settled hands
func (s *Statistics) Hands() int {
	return s.HandsWon + s.HandsLost + s.HandsPushed
}

// WinRate returns the share of hands won
func (s *Statistics) WinRate() float64 {
	if s.Hands() == 0 {
		return 0
	}
	return float64(s.HandsWon) / float64(s.Hands())
}

// ReturnRate returns net winnings per unit wagered. A negative value is the
// house edge experienced by the player.
func (s *Statistics) ReturnRate() float64 {
	if s.TotalWagered == 0 {
		return 0
	}
	return s.SumNet / float64(s.TotalWagered)
}

// BonusFrequency returns the share of rounds whose side bet paid
func (s *Statistics) BonusFrequency() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.BonusRounds) / float64(s.Rounds)
}

// Median returns the median round result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the accumulated data
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	bucketed := 0
	for _, n := range s.GoldCoins {
		bucketed += n
	}
	if bucketed != s.Rounds {
		return fmt.Errorf("gold coin buckets total (%d) does not match rounds count (%d)", bucketed, s.Rounds)
	}

	if s.BonusRounds > s.Rounds {
		return fmt.Errorf("bonus rounds (%d) exceed total rounds (%d)", s.BonusRounds, s.Rounds)
	}

	if s.Blackjacks > s.HandsWon {
		return fmt.Errorf("blackjacks (%d) exceed hands won (%d)", s.Blackjacks, s.HandsWon)
	}

	return nil
}

// Summary is a flat, serialisable view of the statistics
type Summary struct {
	Rounds         int                   `json:"rounds"`
	Hands          int                   `json:"hands"`
	MeanNet        float64               `json:"mean_net"`
	StdDev         float64               `json:"std_dev"`
	CI95Low        float64               `json:"ci95_low"`
	CI95High       float64               `json:"ci95_high"`
	Median         float64               `json:"median"`
	TotalWagered   int                   `json:"total_wagered"`
	ReturnRate     float64               `json:"return_rate"`
	WinRate        float64               `json:"win_rate"`
	HandsWon       int                   `json:"hands_won"`
	HandsLost      int                   `json:"hands_lost"`
	HandsPushed    int                   `json:"hands_pushed"`
	Blackjacks     int                   `json:"blackjacks"`
	GoldCoins      [MaxGoldCoins + 1]int `json:"gold_coins"`
	BonusFrequency float64               `json:"bonus_frequency"`
	BonusTotal     int                   `json:"bonus_total"`
	MaxBonus       int                   `json:"max_bonus"`
}

// Summary returns a snapshot for reporting
func (s *Statistics) Summary() Summary {
	low, high := s.ConfidenceInterval95()
	return Summary{
		Rounds:         s.Rounds,
		Hands:          s.Hands(),
		MeanNet:        s.Mean(),
		StdDev:         s.StdDev(),
		CI95Low:        low,
		CI95High:       high,
		Median:         s.Median(),
		TotalWagered:   s.TotalWagered,
		ReturnRate:     s.ReturnRate(),
		WinRate:        s.WinRate(),
		HandsWon:       s.HandsWon,
		HandsLost:      s.HandsLost,
		HandsPushed:    s.HandsPushed,
		Blackjacks:     s.Blackjacks,
		GoldCoins:      s.GoldCoins,
		BonusFrequency: s.BonusFrequency(),
		BonusTotal:     s.BonusTotal,
		MaxBonus:       s.MaxBonus,
	}
}

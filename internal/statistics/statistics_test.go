package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate() != 0 || stats.ReturnRate() != 0 || stats.BonusFrequency() != 0 {
		t.Error("Expected zero rates for empty stats")
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_MultipleRounds(t *testing.T) {
	stats := &Statistics{}

	rounds := []RoundResult{
		{Net: 150, Wagered: 100, HandsWon: 1, Blackjacks: 1},
		{Net: -100, Wagered: 100, HandsLost: 1},
		{Net: 0, Wagered: 100, HandsPushed: 1},
		{Net: 690, Wagered: 110, HandsWon: 2, GoldCoins: 3, Bonus: 300},
		{Net: -210, Wagered: 210, HandsLost: 2, GoldCoins: 9},
	}
	for _, r := range rounds {
		stats.Add(r)
	}

	expectedMean := (150.0 - 100 + 0 + 690 - 210) / 5
	if math.Abs(stats.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, stats.Mean())
	}
	// sorted: -210, -100, 0, 150, 690
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
	if stats.Hands() != 7 {
		t.Errorf("Expected 7 hands, got %d", stats.Hands())
	}
	if math.Abs(stats.WinRate()-3.0/7.0) > 1e-9 {
		t.Errorf("Expected win rate 3/7, got %f", stats.WinRate())
	}
	if math.Abs(stats.ReturnRate()-530.0/620.0) > 1e-9 {
		t.Errorf("Expected return rate 530/620, got %f", stats.ReturnRate())
	}
	if stats.GoldCoins[0] != 3 || stats.GoldCoins[3] != 1 || stats.GoldCoins[MaxGoldCoins] != 1 {
		t.Errorf("Unexpected gold coin buckets %v", stats.GoldCoins)
	}
	if stats.BonusRounds != 1 || stats.MaxBonus != 300 {
		t.Errorf("Expected one 300 bonus, got %d rounds max %d", stats.BonusRounds, stats.MaxBonus)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []int{2, 4, 4, 4, 5, 5, 7, 9} {
		stats.Add(RoundResult{Net: v})
	}

	// Sample variance of the set is 32/7
	if math.Abs(stats.Variance()-32.0/7.0) > 1e-9 {
		t.Errorf("Expected variance %f, got %f", 32.0/7.0, stats.Variance())
	}

	low, high := stats.ConfidenceInterval95()
	if math.Abs((low+high)/2-stats.Mean()) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean: %f..%f", low, high)
	}
	if high <= low {
		t.Errorf("Confidence interval should have positive width, got %f", high-low)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(RoundResult{Net: i})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_MergeMatchesSequentialAdds(t *testing.T) {
	results := []RoundResult{
		{Net: 10, Wagered: 10, HandsWon: 1},
		{Net: -20, Wagered: 20, HandsLost: 1, GoldCoins: 1},
		{Net: 30, Wagered: 10, HandsWon: 1, GoldCoins: 2, Bonus: 100},
		{Net: 0, Wagered: 10, HandsPushed: 1},
	}

	all := &Statistics{}
	a, b := &Statistics{}, &Statistics{}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}
	a.Merge(b)

	if a.Rounds != all.Rounds || a.SumNet != all.SumNet || a.SumNet2 != all.SumNet2 {
		t.Errorf("merged totals differ: %+v vs %+v", a, all)
	}
	if a.GoldCoins != all.GoldCoins || a.BonusTotal != all.BonusTotal || a.MaxBonus != all.MaxBonus {
		t.Errorf("merged gold coin data differs")
	}
	if math.Abs(a.Median()-all.Median()) > 1e-9 {
		t.Errorf("merged median %f, want %f", a.Median(), all.Median())
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStatistics_Summary(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 100, Wagered: 100, HandsWon: 1})
	stats.Add(RoundResult{Net: -100, Wagered: 100, HandsLost: 1})

	s := stats.Summary()
	if s.Rounds != 2 || s.Hands != 2 || s.MeanNet != 0 || s.WinRate != 0.5 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.CI95Low >= s.CI95High {
		t.Errorf("expected a widening interval, got %f..%f", s.CI95Low, s.CI95High)
	}
}

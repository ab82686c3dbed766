package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Error(t, stats.Validate())
}

func TestStatisticsSingleValue(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.5, Position: 3, WentToShowdown: true, PotChips: 100, PotBB: 5, StreetReached: "river"})

	assert.Equal(t, 1, stats.Hands)
	assert.Equal(t, 2.5, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 2.5, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Zero(t, stats.UncontestedWins)
	assert.Equal(t, 1, stats.Streets["river"])
	assert.True(t, stats.IsLedgerBalanced())
	require.NoError(t, stats.Validate())
}

func TestStatisticsMultipleValues(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	for _, r := range []HandResult{
		{NetBB: 1.0, Position: 1},
		{NetBB: -2.0, Position: 2, WentToShowdown: true},
		{NetBB: 3.0, Position: 3, WentToShowdown: true},
		{NetBB: 0.0, Position: 1},
		{NetBB: -1.0, Position: 2},
	} {
		stats.Add(r)
	}

	assert.Equal(t, 5, stats.Hands)
	assert.InDelta(t, 0.2, stats.Mean(), 1e-9)
	assert.Equal(t, 0.0, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 1, stats.UncontestedWins)
	assert.InDelta(t, 1.0, stats.ShowdownBB, 1e-9)
	assert.InDelta(t, -2.0, stats.UncontestedBB, 1e-9)
	assert.Equal(t, 2, stats.PositionResults[1].Hands)
	assert.Equal(t, 2, stats.PositionResults[2].Hands)
	assert.Equal(t, 1, stats.PositionResults[3].Hands)
	require.NoError(t, stats.Validate())
}

func TestStatisticsPercentiles(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
		{0.1, 1.4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, stats.Percentile(tt.p), 1e-9, "percentile %.2f", tt.p)
	}
}

func TestStatisticsVarianceAndInterval(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		stats.Add(HandResult{NetBB: v})
	}

	// sample variance of the classic example set
	assert.InDelta(t, 32.0/7.0, stats.Variance(), 1e-9)

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9)
	assert.Greater(t, high-low, 0.0)
}

func TestStatisticsPositions(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.0, Position: 0})
	stats.Add(HandResult{NetBB: 3.0, Position: 0})
	stats.Add(HandResult{NetBB: -1.0, Position: 2})
	stats.Add(HandResult{NetBB: 1.0, Position: 2})

	assert.InDelta(t, 2.5, stats.PositionMean(0), 1e-9)
	assert.InDelta(t, 0.0, stats.PositionMean(2), 1e-9)
	assert.Zero(t, stats.PositionMean(-1))
	assert.Zero(t, stats.PositionMean(MaxPositions))
}

func TestStatisticsPotTracking(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.0, PotChips: 200, PotBB: 10})
	stats.Add(HandResult{NetBB: 5.0, PotChips: 2000, PotBB: 100})
	stats.Add(HandResult{NetBB: -1.0, PotChips: 40, PotBB: 2})

	assert.Equal(t, 2000, stats.MaxPotChips)
	assert.Equal(t, 100.0, stats.MaxPotBB)
	assert.Equal(t, 1, stats.BigPots)
	assert.Equal(t, 5.0, stats.BigPotsBB)
}

func TestStatisticsMerge(t *testing.T) {
	t.Parallel()

	a, b := &Statistics{}, &Statistics{}
	a.Add(HandResult{NetBB: 1, Position: 0, StreetReached: "flop", PotChips: 30, PotBB: 1.5})
	b.Add(HandResult{NetBB: -3, Position: 1, WentToShowdown: true, StreetReached: "flop", PotChips: 60, PotBB: 3})
	b.Add(HandResult{NetBB: 4, Position: 1, WentToShowdown: true, StreetReached: "river"})

	a.Merge(b)

	assert.Equal(t, 3, a.Hands)
	assert.InDelta(t, 2.0/3.0, a.Mean(), 1e-9)
	assert.Equal(t, 1, a.ShowdownWins)
	assert.Equal(t, 1, a.UncontestedWins)
	assert.Equal(t, 2, a.PositionResults[1].Hands)
	assert.Equal(t, 60, a.MaxPotChips)
	assert.Equal(t, map[string]int{"flop": 2, "river": 1}, a.Streets)
	require.NoError(t, a.Validate())
}

func TestStatisticsValidateDetectsMismatch(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1})
	stats.AllBB += 5
	assert.ErrorContains(t, stats.Validate(), "ledger mismatch")

	stats = &Statistics{}
	stats.Add(HandResult{NetBB: 1})
	stats.Values = nil
	assert.ErrorContains(t, stats.Validate(), "does not match hands count")
}

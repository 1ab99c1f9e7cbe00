package rebalance

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/invest/pkg/invest/types"
)

func entries(percents ...float64) []types.AllocationEntry {
	out := make([]types.AllocationEntry, len(percents))
	for i, p := range percents {
		out[i] = types.AllocationEntry{Name: string(rune('A' + i)), Percentage: p, RiskLevel: types.RiskMedium, ExpectedReturn: 10}
	}
	return out
}

func TestRebalance_TwoEntries(t *testing.T) {
	out, err := Rebalance(entries(50, 50), 0, 70)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 70.0, out[0].Percentage, 1e-9)
	assert.InDelta(t, 30.0, out[1].Percentage, 1e-9)
	assert.Equal(t, "A", out[0].Name)
	assert.Equal(t, "B", out[1].Name)
}

func TestRebalance_Proportional(t *testing.T) {
	out, err := Rebalance(DefaultAllocation(), 0, 60)
	require.NoError(t, err)

	// the other 60% shrinks to 40%, keeping relative shares
	assert.InDelta(t, 60.0, out[0].Percentage, 1e-9)
	assert.InDelta(t, 20.0*40/60, out[1].Percentage, 1e-9)
	assert.InDelta(t, 15.0*40/60, out[2].Percentage, 1e-9)
	assert.InDelta(t, 15.0*40/60, out[3].Percentage, 1e-9)
	assert.InDelta(t, 10.0*40/60, out[4].Percentage, 1e-9)
	assert.InDelta(t, 100.0, Total(out), 1e-6)
}

func TestRebalance_SumsTo100(t *testing.T) {
	cases := []struct {
		start  []float64
		index  int
		target float64
	}{
		{[]float64{40, 20, 15, 15, 10}, 1, 0},
		{[]float64{40, 20, 15, 15, 10}, 4, 100},
		{[]float64{40, 20, 15, 15, 10}, 2, 33.3},
		{[]float64{33.3, 33.3, 33.4}, 2, 12.7},
		{[]float64{100}, 0, 40},
		{[]float64{100, 0, 0}, 0, 40},
		{[]float64{0, 100}, 1, 99.5},
	}
	for _, tc := range cases {
		out, err := Rebalance(entries(tc.start...), tc.index, tc.target)
		require.NoError(t, err)
		assert.Len(t, out, len(tc.start))
		assert.InDelta(t, 100.0, Total(out), 1e-6, "start=%v index=%d target=%v", tc.start, tc.index, tc.target)
	}
}

func TestRebalance_AllOthersZero(t *testing.T) {
	// only the residual step runs: 60 spread over three entries
	out, err := Rebalance(entries(100, 0, 0), 0, 40)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, out[0].Percentage, 1e-9)
	assert.InDelta(t, 20.0, out[1].Percentage, 1e-9)
	assert.InDelta(t, 20.0, out[2].Percentage, 1e-9)
}

func TestRebalance_DoesNotMutateInput(t *testing.T) {
	in := DefaultAllocation()
	before := DefaultAllocation()
	out, err := Rebalance(in, 1, 35)
	require.NoError(t, err)
	assert.Equal(t, before, in)
	assert.NotEqual(t, in[1].Percentage, out[1].Percentage)
}

func TestRebalance_InvalidArguments(t *testing.T) {
	cases := []struct {
		name   string
		alloc  []types.AllocationEntry
		index  int
		target float64
	}{
		{"empty", nil, 0, 10},
		{"negative index", entries(50, 50), -1, 10},
		{"index past end", entries(50, 50), 2, 10},
		{"negative percent", entries(50, 50), 0, -1},
		{"percent over 100", entries(50, 50), 0, 100.5},
		{"nan percent", entries(50, 50), 0, math.NaN()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Rebalance(tc.alloc, tc.index, tc.target)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
			assert.Nil(t, out)
		})
	}
}

func TestApplyPreset(t *testing.T) {
	out, s, err := ApplyPreset(DefaultAllocation(), "Aggressive")
	require.NoError(t, err)
	assert.Equal(t, 15.0, s.TargetCAGR)
	assert.Equal(t, "Aggressive Growth", s.Name)
	got := make([]float64, len(out))
	for i, a := range out {
		got[i] = a.Percentage
	}
	assert.Equal(t, []float64{30, 30, 15, 20, 5}, got)
	assert.Equal(t, "Real Estate", out[4].Name)

	for _, k := range PresetKeys() {
		out, _, err := ApplyPreset(DefaultAllocation(), k)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, Total(out), 1e-9, k)
	}
}

func TestApplyPreset_Errors(t *testing.T) {
	_, _, err := ApplyPreset(DefaultAllocation(), "yolo")
	var unknown *UnknownPresetError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"aggressive", "balanced", "conservative"}, unknown.Available)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, _, err = ApplyPreset(entries(50, 50), "balanced")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

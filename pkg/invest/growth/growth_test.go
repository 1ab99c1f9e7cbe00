package growth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/invest/pkg/invest/types"
)

func TestProject_OneYear(t *testing.T) {
	points, err := Project(100000, 2000, 12, 1)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, 0, points[0].Year)
	assert.Equal(t, 100000.0, points[0].PortfolioValue)
	assert.Equal(t, 100000.0, points[0].Contributions)
	assert.Equal(t, 0.0, points[0].Gains)

	assert.Equal(t, 1, points[1].Year)
	assert.InDelta(t, 138880.0, points[1].PortfolioValue, 1e-6)
	assert.InDelta(t, 124000.0, points[1].Contributions, 1e-6)
	assert.InDelta(t, 14880.0, points[1].Gains, 1e-6)
}

func TestProject_LengthAndStart(t *testing.T) {
	for _, years := range []int{0, 1, 5, 20, 40} {
		points, err := Project(2500, 100, 7.5, years)
		require.NoError(t, err)
		assert.Len(t, points, years+1)
		assert.Equal(t, 2500.0, points[0].PortfolioValue)
		for i, p := range points {
			assert.Equal(t, i, p.Year)
			assert.InDelta(t, p.PortfolioValue-p.Contributions, p.Gains, 1e-9)
		}
	}
}

func TestProject_NonDecreasing(t *testing.T) {
	cases := []struct {
		initial, monthly, ret float64
	}{
		{0, 0, 0},
		{100000, 0, 0},
		{0, 500, 0},
		{100000, 2000, 13.5},
		{1, 1, 200},
	}
	for _, tc := range cases {
		points, err := Project(tc.initial, tc.monthly, tc.ret, 30)
		require.NoError(t, err)
		for i := 1; i < len(points); i++ {
			assert.GreaterOrEqual(t, points[i].PortfolioValue, points[i-1].PortfolioValue)
		}
	}
}

func TestProject_NegativeReturnShrinks(t *testing.T) {
	points, err := Project(1000, 0, -10, 2)
	require.NoError(t, err)
	assert.InDelta(t, 900.0, points[1].PortfolioValue, 1e-9)
	assert.InDelta(t, 810.0, points[2].PortfolioValue, 1e-9)
	assert.InDelta(t, -190.0, points[2].Gains, 1e-9)
}

func TestProject_InvalidArguments(t *testing.T) {
	cases := []struct {
		name                 string
		initial, monthly, rt float64
		years                int
	}{
		{"negative years", 1000, 0, 5, -1},
		{"negative initial", -1, 0, 5, 10},
		{"negative monthly", 1000, -5, 5, 10},
		{"nan return", 1000, 0, math.NaN(), 10},
		{"inf initial", math.Inf(1), 0, 5, 10},
		{"years above max", 1000, 0, 5, MaxYears + 1},
		{"max int years", 1, 1, 1, math.MaxInt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			points, err := Project(tc.initial, tc.monthly, tc.rt, tc.years)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
			assert.Nil(t, points)
		})
	}
}

func TestSummarize(t *testing.T) {
	points, err := Project(100000, 2000, 12, 1)
	require.NoError(t, err)

	s := Summarize(points)
	assert.InDelta(t, 138880.0, s.FinalValue, 1e-6)
	assert.InDelta(t, 14880.0, s.TotalGains, 1e-6)
	assert.InDelta(t, 124000.0, s.TotalContributions, 1e-6)
	assert.InDelta(t, 138880.0/124000.0, s.Multiple, 1e-9)

	assert.Equal(t, types.GrowthSummary{}, Summarize(nil))

	zero, err := Project(0, 0, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, Summarize(zero).Multiple)
}

func TestScenarios(t *testing.T) {
	assert.InDelta(t, 112000.0, Scenario(100000, 0, 12, 1), 1e-6)
	assert.InDelta(t, (100000.0+24000)*1.12, Scenario(100000, 2000, 12, 1), 1e-6)

	res := Scenarios(100000, 2000, 20)
	require.Len(t, res, 3)
	assert.Equal(t, "Conservative", res[0].Name)
	assert.Equal(t, 13.5, res[1].Return)
	assert.Equal(t, "Aggressive", res[2].Name)
	principal := 100000.0 + 2000*12*20
	for _, r := range res {
		assert.InDelta(t, r.Value/principal, r.Multiple, 1e-9)
	}
	assert.Less(t, res[0].Value, res[2].Value)

	assert.Equal(t, 0.0, Scenarios(0, 0, 10)[0].Multiple)
	assert.Empty(t, Scenarios(1000, 100, MaxYears+1))
	assert.Len(t, Scenarios(1000, 100, MaxYears), 3)
}

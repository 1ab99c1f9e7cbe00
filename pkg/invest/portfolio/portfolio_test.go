package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/invest/pkg/invest/growth"
	"github.com/komsit37/invest/pkg/invest/rebalance"
	"github.com/komsit37/invest/pkg/invest/types"
)

func TestReport_Default(t *testing.T) {
	r, err := Report(Default())
	require.NoError(t, err)

	assert.InDelta(t, 13.85, r.Metrics.ExpectedReturn, 1e-9)
	assert.InDelta(t, 2.25, r.Metrics.OverallRisk, 1e-9)
	assert.Equal(t, "Moderate", r.RiskLabel)
	assert.True(t, r.TargetMet)
	assert.Equal(t, 13.5, r.TargetCAGR)

	require.Len(t, r.Growth, growth.DefaultYears+1)
	assert.Equal(t, 100000.0, r.Growth[0].PortfolioValue)
	last := r.Growth[len(r.Growth)-1]
	assert.Equal(t, last.PortfolioValue, r.Summary.FinalValue)
	assert.Equal(t, 100000.0+2000*12*20, r.Summary.TotalContributions)

	require.Len(t, r.Rules, 4)
	assert.Equal(t, types.RuleWarning, r.Rules[0].Status) // 40% core position
	assert.Equal(t, types.RulePass, r.Rules[2].Status)    // 35% high risk

	require.Len(t, r.Scenarios, 3)
	assert.Equal(t, "Balanced", r.Scenarios[1].Name)
}

func TestReport_ProjectsAtWeightedReturn(t *testing.T) {
	s := Default().WithInvestment(10000, 100).WithYears(5)
	r, err := Report(s)
	require.NoError(t, err)
	want, err := growth.Project(10000, 100, r.Metrics.ExpectedReturn, 5)
	require.NoError(t, err)
	assert.Equal(t, want, r.Growth)
}

func TestReport_Errors(t *testing.T) {
	_, err := Report(State{})
	assert.ErrorIs(t, err, types.ErrUndefined)

	_, err = Report(Default().WithYears(-1))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = Report(Default().WithYears(growth.MaxYears + 1))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestState_WithPresetIsImmutable(t *testing.T) {
	base := Default()
	next, err := base.WithPreset("Aggressive")
	require.NoError(t, err)

	assert.Equal(t, 15.0, next.TargetCAGR)
	assert.Equal(t, 30.0, next.Allocation[0].Percentage)
	assert.Equal(t, 13.5, base.TargetCAGR)
	assert.Equal(t, rebalance.DefaultAllocation(), base.Allocation)

	r, err := Report(next)
	require.NoError(t, err)
	assert.InDelta(t, 14.85, r.Metrics.ExpectedReturn, 1e-9)
	assert.False(t, r.TargetMet)

	_, err = base.WithPreset("yolo")
	var unknown *rebalance.UnknownPresetError
	assert.ErrorAs(t, err, &unknown)
}

func TestState_WithPercentage(t *testing.T) {
	base := Default()
	next, err := base.WithPercentage(0, 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, next.Allocation[0].Percentage)
	assert.InDelta(t, 100, rebalance.Total(next.Allocation), 1e-9)
	assert.Equal(t, 40.0, base.Allocation[0].Percentage)

	_, err = base.WithPercentage(9, 10)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestState_SettersCopy(t *testing.T) {
	base := Default()
	next := base.WithTarget(20)
	next.Allocation[0].Name = "changed"
	assert.Equal(t, "Core Growth Equity", base.Allocation[0].Name)
	assert.Equal(t, 13.5, base.TargetCAGR)
	assert.Equal(t, 20.0, next.TargetCAGR)
}

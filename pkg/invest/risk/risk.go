// Package risk aggregates weighted risk and return statistics over an
// allocation and checks it against the portfolio rules.
package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/komsit37/invest/pkg/invest/types"
)

// RiskFreeRate is the assumed annual risk-free return, in percent.
const RiskFreeRate = 3.0

// Weight is the ordinal risk score of a tier.
func Weight(l types.RiskLevel) float64 {
	switch l {
	case types.RiskLow:
		return 1
	case types.RiskMedium:
		return 2
	case types.RiskHigh:
		return 3
	}
	return 0
}

// Volatility is the assumed annualised volatility of a tier, in percent.
func Volatility(l types.RiskLevel) float64 {
	switch l {
	case types.RiskLow:
		return 8
	case types.RiskMedium:
		return 15
	case types.RiskHigh:
		return 25
	}
	return 0
}

// Compute derives RiskMetrics from the allocation, using percentage/100 as
// the weight of each entry. It fails with types.ErrUndefined when the
// weighted volatility is zero, since the Sharpe ratio has no value then.
func Compute(allocation []types.AllocationEntry) (types.RiskMetrics, error) {
	n := len(allocation)
	weights := make([]float64, n)
	riskScores := make([]float64, n)
	vols := make([]float64, n)
	returns := make([]float64, n)
	percents := make([]float64, n)
	for i, a := range allocation {
		if !a.RiskLevel.Valid() {
			return types.RiskMetrics{}, fmt.Errorf("%w: entry %q has unknown risk level %q", types.ErrInvalidArgument, a.Name, a.RiskLevel)
		}
		if !finite(a.Percentage) || !finite(a.ExpectedReturn) {
			return types.RiskMetrics{}, fmt.Errorf("%w: entry %q has a non-finite percentage or expected return", types.ErrInvalidArgument, a.Name)
		}
		weights[i] = a.Percentage / 100
		riskScores[i] = Weight(a.RiskLevel)
		vols[i] = Volatility(a.RiskLevel)
		returns[i] = a.ExpectedReturn
		percents[i] = a.Percentage
	}

	m := types.RiskMetrics{Diversification: n}
	if n > 0 {
		m.OverallRisk = floats.Dot(weights, riskScores)
		m.ExpectedVolatility = floats.Dot(weights, vols)
		m.ExpectedReturn = floats.Dot(weights, returns)
		m.MaxPosition = floats.Max(percents)
	}
	if m.ExpectedVolatility == 0 || math.IsNaN(m.ExpectedVolatility) {
		return types.RiskMetrics{}, fmt.Errorf("%w: sharpe ratio over zero expected volatility", types.ErrUndefined)
	}
	m.SharpeRatio = (m.ExpectedReturn - RiskFreeRate) / m.ExpectedVolatility
	return m, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// WeightedReturn is the allocation's expected annual return in percent.
func WeightedReturn(allocation []types.AllocationEntry) float64 {
	var total float64
	for _, a := range allocation {
		total += a.Percentage / 100 * a.ExpectedReturn
	}
	return total
}

// Label buckets an overall risk score.
func Label(overallRisk float64) string {
	switch {
	case overallRisk < 1.5:
		return "Conservative"
	case overallRisk < 2.5:
		return "Moderate"
	default:
		return "Aggressive"
	}
}

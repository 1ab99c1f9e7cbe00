// Package growth projects portfolio value under yearly compounding with
// regular contributions.
package growth

import (
	"fmt"
	"math"

	"github.com/komsit37/invest/pkg/invest/types"
)

// DefaultYears is the horizon used by the portfolio page.
const DefaultYears = 20

// MaxYears bounds the projection horizon.
const MaxYears = 100

// Project returns years+1 points starting at year 0. Each year adds twelve
// monthly contributions and then compounds the whole value once.
func Project(initial, monthly, annualReturnPct float64, years int) ([]types.GrowthPoint, error) {
	if err := CheckYears(years); err != nil {
		return nil, err
	}
	if err := checkAmount("initial investment", initial); err != nil {
		return nil, err
	}
	if err := checkAmount("monthly contribution", monthly); err != nil {
		return nil, err
	}
	if math.IsNaN(annualReturnPct) || math.IsInf(annualReturnPct, 0) {
		return nil, fmt.Errorf("%w: annual return must be finite", types.ErrInvalidArgument)
	}

	points := make([]types.GrowthPoint, 0, years+1)
	value := initial
	contributed := initial
	yearly := monthly * 12
	factor := 1 + annualReturnPct/100
	for year := 0; year <= years; year++ {
		if year > 0 {
			contributed += yearly
			value = (value + yearly) * factor
		}
		points = append(points, types.GrowthPoint{
			Year:           year,
			PortfolioValue: value,
			Contributions:  contributed,
			Gains:          value - contributed,
		})
	}
	return points, nil
}

// CheckYears accepts a horizon within [0, MaxYears].
func CheckYears(years int) error {
	if years < 0 || years > MaxYears {
		return fmt.Errorf("%w: years must be within [0,%d], got %d", types.ErrInvalidArgument, MaxYears, years)
	}
	return nil
}

func checkAmount(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite", types.ErrInvalidArgument, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %g", types.ErrInvalidArgument, name, v)
	}
	return nil
}

// Summarize reports the final point of a projection.
func Summarize(points []types.GrowthPoint) types.GrowthSummary {
	if len(points) == 0 {
		return types.GrowthSummary{}
	}
	last := points[len(points)-1]
	s := types.GrowthSummary{
		FinalValue:         last.PortfolioValue,
		TotalGains:         last.Gains,
		TotalContributions: last.Contributions,
	}
	if last.Contributions > 0 {
		s.Multiple = last.PortfolioValue / last.Contributions
	}
	return s
}

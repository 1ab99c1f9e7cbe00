package growth

import (
	"math"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Rate is a named fixed annual return.
type Rate struct {
	Name   string
	Return float64
}

// DefaultScenarios are the comparison rates shown next to a projection.
var DefaultScenarios = []Rate{
	{Name: "Conservative", Return: 12},
	{Name: "Balanced", Return: 13.5},
	{Name: "Aggressive", Return: 15},
}

// Scenario is the quick closed-form estimate: everything that will be
// contributed over the horizon compounds for the full horizon. It
// overstates Project for monthly > 0.
func Scenario(initial, monthly, annualReturnPct float64, years int) float64 {
	principal := initial + monthly*12*float64(years)
	return principal * math.Pow(1+annualReturnPct/100, float64(years))
}

// Scenarios evaluates Scenario at every rate in DefaultScenarios. A
// horizon outside [0, MaxYears] yields no results.
func Scenarios(initial, monthly float64, years int) []types.ScenarioResult {
	if CheckYears(years) != nil {
		return nil
	}
	principal := initial + monthly*12*float64(years)
	out := make([]types.ScenarioResult, 0, len(DefaultScenarios))
	for _, r := range DefaultScenarios {
		v := Scenario(initial, monthly, r.Return, years)
		res := types.ScenarioResult{Name: r.Name, Return: r.Return, Value: v}
		if principal > 0 {
			res.Multiple = v / principal
		}
		out = append(out, res)
	}
	return out
}

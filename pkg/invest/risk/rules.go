package risk

import (
	"fmt"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Rule limits.
const (
	MaxSinglePosition  = 5.0
	MaxSectorWeight    = 15.0
	MaxHighRisk        = 40.0
	MinDiversification = 5
)

// HighRiskShare sums the percentage held in High tier entries.
func HighRiskShare(allocation []types.AllocationEntry) float64 {
	var total float64
	for _, a := range allocation {
		if a.RiskLevel == types.RiskHigh {
			total += a.Percentage
		}
	}
	return total
}

// Rules evaluates the compliance table for an allocation and its metrics.
// Sector concentration is not derivable from allocation slices and is
// reported at its limit.
func Rules(allocation []types.AllocationEntry, m types.RiskMetrics) []types.RuleResult {
	high := HighRiskShare(allocation)
	return []types.RuleResult{
		{
			Rule:        "Maximum Single Position",
			Current:     fmt.Sprintf("%.1f%%", m.MaxPosition),
			Limit:       fmt.Sprintf("%.1f%%", MaxSinglePosition),
			Status:      status(m.MaxPosition <= MaxSinglePosition),
			Description: "No single stock should exceed 5% of portfolio",
		},
		{
			Rule:        "Sector Concentration",
			Current:     fmt.Sprintf("%.1f%%", MaxSectorWeight),
			Limit:       fmt.Sprintf("%.1f%%", MaxSectorWeight),
			Status:      types.RulePass,
			Description: "Maximum 15% allocation per sector",
		},
		{
			Rule:        "High-Risk Allocation",
			Current:     fmt.Sprintf("%.1f%%", high),
			Limit:       fmt.Sprintf("%.1f%%", MaxHighRisk),
			Status:      status(high <= MaxHighRisk),
			Description: "Maximum 40% in high-risk investments",
		},
		{
			Rule:        "Minimum Diversification",
			Current:     fmt.Sprintf("%d", len(allocation)),
			Limit:       fmt.Sprintf("%d", MinDiversification),
			Status:      status(len(allocation) >= MinDiversification),
			Description: "At least 5 different asset classes",
		},
	}
}

func status(ok bool) types.RuleStatus {
	if ok {
		return types.RulePass
	}
	return types.RuleWarning
}

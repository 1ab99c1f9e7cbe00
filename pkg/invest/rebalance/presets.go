package rebalance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/komsit37/invest/pkg/invest/types"
)

// DefaultPreset is the strategy applied on reset.
const DefaultPreset = "balanced"

// DefaultAllocation returns a fresh copy of the five-slice starting allocation.
func DefaultAllocation() []types.AllocationEntry {
	return []types.AllocationEntry{
		{
			Name:           "Core Growth Equity",
			Percentage:     40,
			Color:          "hsl(215 85% 25%)",
			Description:    "Blue-chip growth stocks and ETFs",
			RiskLevel:      types.RiskMedium,
			ExpectedReturn: 12,
		},
		{
			Name:           "Swing/Algorithmic Trading",
			Percentage:     20,
			Color:          "hsl(195 75% 35%)",
			Description:    "Active trading strategies",
			RiskLevel:      types.RiskHigh,
			ExpectedReturn: 18,
		},
		{
			Name:           "Options Income Strategies",
			Percentage:     15,
			Color:          "hsl(142 76% 36%)",
			Description:    "Covered calls, cash-secured puts",
			RiskLevel:      types.RiskMedium,
			ExpectedReturn: 15,
		},
		{
			Name:           "Private/Alternative Investments",
			Percentage:     15,
			Color:          "hsl(45 93% 47%)",
			Description:    "REITs, commodities, crypto",
			RiskLevel:      types.RiskHigh,
			ExpectedReturn: 16,
		},
		{
			Name:           "Real Estate",
			Percentage:     10,
			Color:          "hsl(0 84% 60%)",
			Description:    "Direct real estate, REITs",
			RiskLevel:      types.RiskLow,
			ExpectedReturn: 8,
		},
	}
}

// Strategy is a named target CAGR with percentages for the leading entries.
type Strategy struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	TargetCAGR  float64   `json:"targetCAGR"`
	Percentages []float64 `json:"percentages"`
}

// Presets maps strategy keys to their definitions.
var Presets = map[string]Strategy{
	"conservative": {Key: "conservative", Name: "Conservative Growth", TargetCAGR: 12, Percentages: []float64{50, 10, 20, 10, 10}},
	"balanced":     {Key: "balanced", Name: "Balanced Strategy", TargetCAGR: 13.5, Percentages: []float64{40, 20, 15, 15, 10}},
	"aggressive":   {Key: "aggressive", Name: "Aggressive Growth", TargetCAGR: 15, Percentages: []float64{30, 30, 15, 20, 5}},
}

// PresetKeys lists strategy keys in a stable order.
func PresetKeys() []string {
	keys := make([]string, 0, len(Presets))
	for k := range Presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnknownPresetError reports an unknown strategy key.
type UnknownPresetError struct {
	Name      string
	Available []string
}

func (e *UnknownPresetError) Error() string {
	return "unknown strategy preset: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}

func (e *UnknownPresetError) Unwrap() error { return types.ErrInvalidArgument }

// Lookup finds a strategy by key, case-insensitively.
func Lookup(key string) (Strategy, error) {
	s, ok := Presets[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Strategy{}, &UnknownPresetError{Name: key, Available: PresetKeys()}
	}
	return s, nil
}

// ApplyPreset copies the strategy's percentages onto the leading entries of
// a copy of allocation. Entries beyond the preset keep their percentage.
func ApplyPreset(allocation []types.AllocationEntry, key string) ([]types.AllocationEntry, Strategy, error) {
	s, err := Lookup(key)
	if err != nil {
		return nil, Strategy{}, err
	}
	if len(allocation) < len(s.Percentages) {
		return nil, Strategy{}, fmt.Errorf("%w: preset %s needs %d entries, allocation has %d",
			types.ErrInvalidArgument, s.Key, len(s.Percentages), len(allocation))
	}
	out := make([]types.AllocationEntry, len(allocation))
	copy(out, allocation)
	for i, p := range s.Percentages {
		out[i].Percentage = p
	}
	return out, s, nil
}

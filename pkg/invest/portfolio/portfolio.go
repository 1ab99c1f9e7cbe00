// Package portfolio holds the state of the allocation builder as an
// immutable value and assembles the full report shown for it.
package portfolio

import (
	"fmt"

	"github.com/komsit37/invest/pkg/invest/growth"
	"github.com/komsit37/invest/pkg/invest/rebalance"
	"github.com/komsit37/invest/pkg/invest/risk"
	"github.com/komsit37/invest/pkg/invest/types"
)

const (
	DefaultInitialInvestment   = 100000
	DefaultMonthlyContribution = 2000
	DefaultTargetCAGR          = 13.5
)

// State is one snapshot of the builder. Methods never modify the receiver.
type State struct {
	Allocation          []types.AllocationEntry `json:"allocation" yaml:"allocation"`
	InitialInvestment   float64                 `json:"initialInvestment" yaml:"initialInvestment"`
	MonthlyContribution float64                 `json:"monthlyContribution" yaml:"monthlyContribution"`
	Years               int                     `json:"years" yaml:"years"`
	TargetCAGR          float64                 `json:"targetCAGR" yaml:"targetCAGR"`
}

// Default is the builder's starting state.
func Default() State {
	return State{
		Allocation:          rebalance.DefaultAllocation(),
		InitialInvestment:   DefaultInitialInvestment,
		MonthlyContribution: DefaultMonthlyContribution,
		Years:               growth.DefaultYears,
		TargetCAGR:          DefaultTargetCAGR,
	}
}

func (s State) clone() State {
	s.Allocation = append([]types.AllocationEntry(nil), s.Allocation...)
	return s
}

// WithPercentage rebalances the allocation around entry index.
func (s State) WithPercentage(index int, pct float64) (State, error) {
	alloc, err := rebalance.Rebalance(s.Allocation, index, pct)
	if err != nil {
		return s, err
	}
	out := s.clone()
	out.Allocation = alloc
	return out, nil
}

// WithPreset applies a strategy preset and adopts its target CAGR.
func (s State) WithPreset(key string) (State, error) {
	alloc, strategy, err := rebalance.ApplyPreset(s.Allocation, key)
	if err != nil {
		return s, err
	}
	out := s.clone()
	out.Allocation = alloc
	out.TargetCAGR = strategy.TargetCAGR
	return out, nil
}

func (s State) WithInvestment(initial, monthly float64) State {
	out := s.clone()
	out.InitialInvestment = initial
	out.MonthlyContribution = monthly
	return out
}

func (s State) WithTarget(cagr float64) State {
	out := s.clone()
	out.TargetCAGR = cagr
	return out
}

func (s State) WithYears(years int) State {
	out := s.clone()
	out.Years = years
	return out
}

// Report derives metrics, compliance rules, the growth projection at the
// allocation's expected return and the fixed-rate scenarios.
func Report(s State) (types.PortfolioReport, error) {
	m, err := risk.Compute(s.Allocation)
	if err != nil {
		return types.PortfolioReport{}, fmt.Errorf("risk metrics: %w", err)
	}
	points, err := growth.Project(s.InitialInvestment, s.MonthlyContribution, m.ExpectedReturn, s.Years)
	if err != nil {
		return types.PortfolioReport{}, fmt.Errorf("growth projection: %w", err)
	}
	return types.PortfolioReport{
		Allocation: s.clone().Allocation,
		Metrics:    m,
		RiskLabel:  risk.Label(m.OverallRisk),
		Rules:      risk.Rules(s.Allocation, m),
		Growth:     points,
		Summary:    growth.Summarize(points),
		Scenarios:  growth.Scenarios(s.InitialInvestment, s.MonthlyContribution, s.Years),
		TargetCAGR: s.TargetCAGR,
		TargetMet:  m.ExpectedReturn >= s.TargetCAGR,
	}, nil
}

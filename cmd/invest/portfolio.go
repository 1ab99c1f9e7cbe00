package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/komsit37/invest/pkg/invest/growth"
	"github.com/komsit37/invest/pkg/invest/portfolio"
	"github.com/komsit37/invest/pkg/invest/rebalance"
	"github.com/komsit37/invest/pkg/invest/render"
	"github.com/komsit37/invest/pkg/invest/risk"
	"github.com/komsit37/invest/pkg/invest/screen"
)

func newGrowCmd(a *app) *cobra.Command {
	var (
		initial, monthly, ret float64
		years                 int
		allocPath, format     string
	)
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Project portfolio growth with yearly compounding",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(format)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("years") {
				years = a.cfg.Growth.Years
			}
			if !cmd.Flags().Changed("return") {
				alloc, err := loadAllocation(allocPath)
				if err != nil {
					return err
				}
				ret = risk.WeightedReturn(alloc)
			}
			points, err := growth.Project(initial, monthly, ret, years)
			if err != nil {
				return err
			}
			summary := growth.Summarize(points)
			a.log.Debug().Float64("return", ret).Int("years", years).Float64("final", summary.FinalValue).Msg("projection")
			if format == "json" {
				return render.WriteJSON(a.out, map[string]any{"annualReturn": ret, "points": points, "summary": summary}, true)
			}
			fmt.Fprintf(a.out, "annual return %.2f%% over %d years\n", ret, years)
			return render.Growth(a.out, points, a.renderOptions(true))
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&initial, "initial", portfolio.DefaultInitialInvestment, "initial investment ($)")
	fl.Float64Var(&monthly, "monthly", portfolio.DefaultMonthlyContribution, "monthly contribution ($)")
	fl.Float64Var(&ret, "return", 0, "annual return (%); default: the allocation's expected return")
	fl.IntVar(&years, "years", growth.DefaultYears, "projection horizon in years")
	fl.StringVar(&allocPath, "allocation", "", "allocation YAML file (default: built-in allocation)")
	fl.StringVarP(&format, "format", "f", "table", "output format: table, json")
	return cmd
}

func newRiskCmd(a *app) *cobra.Command {
	var allocPath, preset, format string
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Compute risk metrics and compliance rules for an allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(format)
			if err != nil {
				return err
			}
			alloc, err := loadAllocation(allocPath)
			if err != nil {
				return err
			}
			if preset != "" {
				if alloc, _, err = rebalance.ApplyPreset(alloc, preset); err != nil {
					return err
				}
			}
			m, err := risk.Compute(alloc)
			if err != nil {
				return err
			}
			label, rules := risk.Label(m.OverallRisk), risk.Rules(alloc, m)
			if format == "json" {
				return render.WriteJSON(a.out, map[string]any{"metrics": m, "label": label, "rules": rules}, true)
			}
			return render.Risk(a.out, m, label, rules, a.renderOptions(true))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&allocPath, "allocation", "", "allocation YAML file (default: built-in allocation)")
	fl.StringVar(&preset, "preset", "", "apply a strategy preset first (conservative, balanced, aggressive)")
	fl.StringVarP(&format, "format", "f", "table", "output format: table, json")
	return cmd
}

func newRebalanceCmd(a *app) *cobra.Command {
	var (
		allocPath, format string
		index             int
		pct               float64
	)
	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Set one entry's percentage and rebalance the others to 100%",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(format)
			if err != nil {
				return err
			}
			alloc, err := loadAllocation(allocPath)
			if err != nil {
				return err
			}
			out, err := rebalance.Rebalance(alloc, index, pct)
			if err != nil {
				return err
			}
			if format == "json" {
				return render.WriteJSON(a.out, map[string]any{"allocation": out}, true)
			}
			return render.Allocation(a.out, out, a.renderOptions(true))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&allocPath, "allocation", "", "allocation YAML file (default: built-in allocation)")
	fl.IntVar(&index, "index", 0, "entry to change (0-based)")
	fl.Float64Var(&pct, "percent", 0, "new percentage for the entry (0-100)")
	fl.StringVarP(&format, "format", "f", "table", "output format: table, json")
	_ = cmd.MarkFlagRequired("percent")
	return cmd
}

func newPortfolioCmd(a *app) *cobra.Command {
	var (
		allocPath, preset, format string
		target, initial, monthly  float64
		years                     int
	)
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Full portfolio report: allocation, risk, growth, scenarios and target check",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(format)
			if err != nil {
				return err
			}
			st := portfolio.Default()
			if allocPath != "" {
				if st.Allocation, err = loadAllocation(allocPath); err != nil {
					return err
				}
			}
			if preset != "" {
				if st, err = st.WithPreset(preset); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("target") {
				st = st.WithTarget(target)
			}
			if !cmd.Flags().Changed("years") {
				years = a.cfg.Growth.Years
			}
			st = st.WithInvestment(initial, monthly).WithYears(years)

			rep, err := portfolio.Report(st)
			if err != nil {
				return err
			}
			if format == "json" {
				return render.WriteJSON(a.out, rep, true)
			}
			return render.Portfolio(a.out, rep, a.renderOptions(true))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&allocPath, "allocation", "", "allocation YAML file (default: built-in allocation)")
	fl.StringVar(&preset, "preset", "", "strategy preset (conservative, balanced, aggressive)")
	fl.Float64Var(&target, "target", portfolio.DefaultTargetCAGR, "target CAGR (%)")
	fl.Float64Var(&initial, "initial", portfolio.DefaultInitialInvestment, "initial investment ($)")
	fl.Float64Var(&monthly, "monthly", portfolio.DefaultMonthlyContribution, "monthly contribution ($)")
	fl.IntVar(&years, "years", growth.DefaultYears, "projection horizon in years")
	fl.StringVarP(&format, "format", "f", "table", "output format: table, json")
	return cmd
}

func newPresetsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List preset screens and strategy presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(format)
			if err != nil {
				return err
			}
			screens := map[string]any{}
			for _, name := range screen.PresetNames() {
				f, err := screen.PresetFilters(name)
				if err != nil {
					return err
				}
				screens[name] = f
			}
			strategies := make([]rebalance.Strategy, 0, len(rebalance.Presets))
			for _, k := range rebalance.PresetKeys() {
				strategies = append(strategies, rebalance.Presets[k])
			}
			if format == "json" {
				return render.WriteJSON(a.out, map[string]any{"screens": screens, "strategies": strategies}, true)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(a.out)
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"SCREEN", "SORT", "12M MIN", "P/E MAX", "DIV MIN", "CAP MIN"})
			for _, name := range screen.PresetNames() {
				f, _ := screen.PresetFilters(name)
				tw.AppendRow(table.Row{name, f.SortBy, f.Return12MMin, f.PERatioMax, f.DividendYieldMin, f.MarketCapMin})
			}
			tw.Render()
			fmt.Fprintln(a.out)

			sw := table.NewWriter()
			sw.SetOutputMirror(a.out)
			sw.SetStyle(table.StyleLight)
			sw.AppendHeader(table.Row{"STRATEGY", "NAME", "TARGET CAGR", "ALLOCATION"})
			for _, s := range strategies {
				sw.AppendRow(table.Row{s.Key, s.Name, fmt.Sprintf("%.1f%%", s.TargetCAGR), fmt.Sprint(s.Percentages)})
			}
			sw.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json")
	return cmd
}

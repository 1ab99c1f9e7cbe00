package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/invest/pkg/invest/columns"
	"github.com/komsit37/invest/pkg/invest/types"
)

// Allocation renders allocation entries with their share of the total.
func Allocation(w io.Writer, alloc []types.AllocationEntry, opts RenderOptions) error {
	tw := newWriter(w, opts)
	tw.AppendHeader(table.Row{"#", "NAME", "RISK", "ALLOC", "EXP RETURN", "DESCRIPTION"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 6, WidthMax: maxWidth(opts)},
	})
	var total float64
	for i, a := range alloc {
		total += a.Percentage
		tw.AppendRow(table.Row{i, a.Name, string(a.RiskLevel), fmt.Sprintf("%.1f%%", a.Percentage), fmt.Sprintf("%.1f%%", a.ExpectedReturn), a.Description})
	}
	tw.AppendFooter(table.Row{"", "total", "", fmt.Sprintf("%.1f%%", total)})
	tw.Render()
	return nil
}

// Risk renders metrics followed by the compliance table.
func Risk(w io.Writer, m types.RiskMetrics, label string, rules []types.RuleResult, opts RenderOptions) error {
	tw := newWriter(w, opts)
	tw.AppendHeader(table.Row{"METRIC", "VALUE"})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignRight}})
	tw.AppendRows([]table.Row{
		{"Overall risk", fmt.Sprintf("%.2f (%s)", m.OverallRisk, label)},
		{"Expected return", fmt.Sprintf("%.2f%%", m.ExpectedReturn)},
		{"Expected volatility", fmt.Sprintf("%.2f%%", m.ExpectedVolatility)},
		{"Sharpe ratio", fmt.Sprintf("%.2f", m.SharpeRatio)},
		{"Max position", fmt.Sprintf("%.1f%%", m.MaxPosition)},
		{"Diversification", fmt.Sprintf("%d", m.Diversification)},
	})
	tw.Render()
	if len(rules) == 0 {
		return nil
	}
	fmt.Fprintln(w)

	rw := newWriter(w, opts)
	rw.AppendHeader(table.Row{"RULE", "CURRENT", "LIMIT", "STATUS"})
	for _, r := range rules {
		status := string(r.Status)
		if opts.Color {
			c := text.Colors{text.FgGreen}
			if r.Status != types.RulePass {
				c = text.Colors{text.FgYellow}
			}
			status = c.Sprint(status)
		}
		rw.AppendRow(table.Row{r.Rule, r.Current, r.Limit, status})
	}
	rw.Render()
	return nil
}

// Growth renders a projection year by year.
func Growth(w io.Writer, points []types.GrowthPoint, opts RenderOptions) error {
	tw := newWriter(w, opts)
	tw.AppendHeader(table.Row{"YEAR", "VALUE", "CONTRIBUTIONS", "GAINS"})
	right := func(n int) table.ColumnConfig {
		return table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignRight}
	}
	tw.SetColumnConfigs([]table.ColumnConfig{right(1), right(2), right(3), right(4)})
	for _, p := range points {
		tw.AppendRow(table.Row{p.Year, columns.FormatUSD(p.PortfolioValue), columns.FormatUSD(p.Contributions), columns.FormatUSD(p.Gains)})
	}
	tw.Render()
	return nil
}

// Portfolio renders every section of a report.
func Portfolio(w io.Writer, r types.PortfolioReport, opts RenderOptions) error {
	section := func(name string) { fmt.Fprintln(w, title(name, opts.Color)) }

	section("Allocation")
	if err := Allocation(w, r.Allocation, opts); err != nil {
		return err
	}
	fmt.Fprintln(w)
	section("Risk")
	if err := Risk(w, r.Metrics, r.RiskLabel, r.Rules, opts); err != nil {
		return err
	}
	fmt.Fprintln(w)
	section("Growth")
	if err := Growth(w, r.Growth, opts); err != nil {
		return err
	}
	fmt.Fprintf(w, "final %s  contributed %s  gains %s  multiple %.1fx\n",
		columns.FormatUSD(r.Summary.FinalValue), columns.FormatUSD(r.Summary.TotalContributions),
		columns.FormatUSD(r.Summary.TotalGains), r.Summary.Multiple)
	fmt.Fprintln(w)

	section("Scenarios")
	tw := newWriter(w, opts)
	tw.AppendHeader(table.Row{"SCENARIO", "RETURN", "VALUE", "MULTIPLE"})
	for _, s := range r.Scenarios {
		tw.AppendRow(table.Row{s.Name, fmt.Sprintf("%.1f%%", s.Return), columns.FormatUSD(s.Value), fmt.Sprintf("%.1fx", s.Multiple)})
	}
	tw.Render()
	fmt.Fprintln(w)

	diff := r.Metrics.ExpectedReturn - r.TargetCAGR
	if r.TargetMet {
		fmt.Fprintf(w, "target %.1f%% CAGR: exceeded by %.1f%%\n", r.TargetCAGR, diff)
	} else {
		fmt.Fprintf(w, "target %.1f%% CAGR: short by %.1f%%\n", r.TargetCAGR, -diff)
	}
	return nil
}

// Thesis renders a thesis as titled text sections followed by its price history.
func Thesis(w io.Writer, t types.ThesisRecord, opts RenderOptions) error {
	rec := string(t.Recommendation)
	if opts.Color {
		rec = recommendationColors(t.Recommendation).Sprint(rec)
	}
	fmt.Fprintf(w, "%s (%s, %s)  %s\n", title(t.Company.Name, opts.Color), t.Company.Ticker, t.Market, rec)
	fmt.Fprintf(w, "%s / %s\n\n", t.Company.Industry, t.Company.Sector)

	para := func(name, body string) {
		fmt.Fprintln(w, title(name, opts.Color))
		fmt.Fprintln(w, text.WrapSoft(body, 80))
		fmt.Fprintln(w)
	}
	para("Business model", t.Company.BusinessModel)
	para("Key products", t.Company.KeyProducts)
	para("Recent performance", t.Company.RecentPerformance)
	para("Growth drivers", t.Rationale.GrowthDrivers)
	para("Competitive advantages", t.Rationale.CompetitiveAdvantages)
	para("Industry trends", t.Rationale.IndustryTrends)
	para("Catalysts", "- "+strings.Join(t.Catalysts, "\n- "))
	para("Risks", t.Risks.Risks)
	para("Mitigants", t.Risks.Mitigants)

	v := t.Valuation
	tw := newWriter(w, opts)
	tw.AppendHeader(table.Row{"CURRENT", "TARGET", "UPSIDE", "DOWNSIDE", "METHOD"})
	tw.AppendRow(table.Row{fmt.Sprintf("$%.2f", v.CurrentPrice), fmt.Sprintf("$%.2f", v.TargetPrice),
		fmt.Sprintf("+%.0f%%", v.Upside), fmt.Sprintf("-%.0f%%", v.Downside), v.Method})
	tw.Render()
	fmt.Fprintln(w)

	para("Short term", t.Horizon.ShortTerm)
	para("Long term", t.Horizon.LongTerm)
	para("Exit criteria", t.Horizon.ExitCriteria)

	if len(t.History) > 0 {
		hw := newWriter(w, opts)
		hw.AppendHeader(table.Row{"MONTH", "PRICE", "VOLUME"})
		hw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignRight},
			{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight},
		})
		for _, p := range t.History {
			hw.AppendRow(table.Row{p.Label, fmt.Sprintf("$%.2f", p.Price), p.Volume})
		}
		hw.Render()
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, title("Thesis", opts.Color))
	fmt.Fprintln(w, text.WrapSoft(t.FinalThesis, 80))
	return nil
}

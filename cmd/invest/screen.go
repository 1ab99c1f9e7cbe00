package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/komsit37/invest/pkg/invest/columns"
	"github.com/komsit37/invest/pkg/invest/pipeline"
	"github.com/komsit37/invest/pkg/invest/render"
	"github.com/komsit37/invest/pkg/invest/screen"
	"github.com/komsit37/invest/pkg/invest/types"
)

func newScreenCmd(a *app) *cobra.Command {
	var (
		f       = screen.DefaultFilters()
		order   string
		preset  string
		query   string
		cols    []string
		sets    []string
		format  string
		color   bool
		pretty  bool
		latency time.Duration
	)
	cmd := &cobra.Command{
		Use:   "screen [dataset.yaml|dir]",
		Short: "Filter and sort the stock dataset",
		Example: `  invest screen --market US,UK --ret-min 10 --sort peRatio --order asc
  invest screen --preset "dividend champions" --format json
  invest screen --query '/^A/' --sets performance,valuation`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset != "" {
				pf, err := screen.PresetFilters(preset)
				if err != nil {
					return err
				}
				// explicit flags win over the preset
				fl := cmd.Flags()
				override := func(name string, apply func()) {
					if fl.Changed(name) {
						apply()
					}
				}
				override("market", func() { pf.Market = f.Market })
				override("sector", func() { pf.Sector = f.Sector })
				override("cap-min", func() { pf.MarketCapMin = f.MarketCapMin })
				override("cap-max", func() { pf.MarketCapMax = f.MarketCapMax })
				override("ret-min", func() { pf.Return12MMin = f.Return12MMin })
				override("ret-max", func() { pf.Return12MMax = f.Return12MMax })
				override("pe-min", func() { pf.PERatioMin = f.PERatioMin })
				override("pe-max", func() { pf.PERatioMax = f.PERatioMax })
				override("div-min", func() { pf.DividendYieldMin = f.DividendYieldMin })
				override("sort", func() { pf.SortBy = f.SortBy })
				override("order", func() { pf.SortOrder = types.SortOrder(order) })
				f = pf
			} else {
				f.SortOrder = types.SortOrder(order)
			}

			if len(sets) > 0 {
				extra, err := columns.ExpandSets(sets)
				if err != nil {
					return err
				}
				if len(cols) == 0 {
					cols = append([]string{"ticker", "name"}, extra...)
				} else {
					cols = append(cols, extra...)
				}
			}

			r, err := render.For(format)
			if err != nil {
				return err
			}
			src, path := a.dataset(args)
			runner := &pipeline.Runner{Source: src, Renderer: r, Writer: a.out, Log: a.log}
			opts := a.renderOptions(color)
			return runner.Execute(cmd.Context(), path, pipeline.ExecuteOptions{
				Filters:     f,
				Query:       query,
				Columns:     cols,
				Color:       opts.Color,
				PrettyJSON:  pretty,
				MaxColWidth: opts.MaxColWidth,
				Latency:     latency,
			})
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVar(&f.Market, "market", nil, "markets to include (US, UK, EU; case-insensitive); empty = all")
	fl.StringSliceVar(&f.Sector, "sector", nil, "sectors to include; empty = all")
	fl.Float64Var(&f.MarketCapMin, "cap-min", f.MarketCapMin, "minimum market cap (USD millions)")
	fl.Float64Var(&f.MarketCapMax, "cap-max", f.MarketCapMax, "maximum market cap (USD millions)")
	fl.Float64Var(&f.Return12MMin, "ret-min", f.Return12MMin, "minimum 12-month return (%)")
	fl.Float64Var(&f.Return12MMax, "ret-max", f.Return12MMax, "maximum 12-month return (%)")
	fl.Float64Var(&f.PERatioMin, "pe-min", f.PERatioMin, "minimum P/E")
	fl.Float64Var(&f.PERatioMax, "pe-max", f.PERatioMax, "maximum P/E")
	fl.Float64Var(&f.DividendYieldMin, "div-min", f.DividendYieldMin, "minimum dividend yield (%)")
	fl.StringVar(&f.SortBy, "sort", f.SortBy, "sort field")
	fl.StringVar(&order, "order", string(types.SortDesc), "sort order: asc or desc")
	fl.StringVar(&preset, "preset", "", "preset screen (top performers, value stocks, dividend champions, large cap growth)")
	fl.StringVarP(&query, "query", "q", "", "ticker/name query: AAPL,MSFT | A* | /re/ | substring")
	fl.StringSliceVarP(&cols, "columns", "c", nil, "columns to show")
	fl.StringSliceVar(&sets, "sets", nil, "column sets to append (performance, valuation, fundamentals)")
	fl.StringVarP(&format, "format", "f", "table", "output format: table, json, tickers")
	fl.BoolVar(&color, "color", true, "colour performance bands and signals")
	fl.BoolVar(&pretty, "pretty", true, "indent JSON output")
	fl.DurationVar(&latency, "latency", 0, "simulated screening delay")
	return cmd
}

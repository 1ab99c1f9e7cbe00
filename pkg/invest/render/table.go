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

const defaultMaxColWidth = 40

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, screens []types.Screen, opts RenderOptions) error {
	multi := len(screens) > 1
	for si, s := range screens {
		cols := s.Columns
		if len(opts.Columns) > 0 {
			cols = opts.Columns
		}

		// Print screen name as a standalone line spanning full width
		if multi && strings.TrimSpace(s.Name) != "" {
			fmt.Fprintln(w, title(s.Name, opts.Color))
		}

		tw := newWriter(w, opts)

		hdr := make(table.Row, len(cols))
		for i, c := range cols {
			hdr[i] = strings.ToUpper(c)
			if d, ok := columns.GetDef(c); ok {
				hdr[i] = d.Header
			}
		}
		tw.AppendHeader(hdr)

		cfgs := make([]table.ColumnConfig, 0, len(cols))
		for i, c := range cols {
			cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth(opts)}
			if d, ok := columns.GetDef(c); ok && d.Numeric {
				cfg.Align = text.AlignRight
				cfg.AlignHeader = text.AlignRight
			}
			cfgs = append(cfgs, cfg)
		}
		if len(cfgs) > 0 {
			tw.SetColumnConfigs(cfgs)
		}

		for _, st := range s.Stocks {
			row := make(table.Row, len(cols))
			for i, c := range cols {
				row[i] = cell(c, st, opts.Color)
			}
			tw.AppendRow(row)
		}
		if len(s.Stocks) == 0 {
			tw.AppendFooter(table.Row{"no stocks match the current filters"})
		}

		tw.Render()
		if si < len(screens)-1 {
			// blank line between tables
			fmt.Fprintln(w)
		}
	}
	return nil
}

func newWriter(w io.Writer, opts RenderOptions) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if opts.Color {
		tw.SetStyle(table.StyleColoredDark)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	return tw
}

func maxWidth(opts RenderOptions) int {
	if opts.MaxColWidth <= 0 {
		return defaultMaxColWidth
	}
	return opts.MaxColWidth
}

func cell(col string, st types.StockRecord, color bool) string {
	v := columns.RenderValue(col, st)
	if !color {
		return v
	}
	d, ok := columns.GetDef(col)
	switch {
	case ok && d.Banded:
		return bandColors(columns.BandOf(d.Raw(st))).Sprint(v)
	case col == "signal":
		return recommendationColors(types.Recommendation(v)).Sprint(v)
	}
	return v
}

func bandColors(b columns.Band) text.Colors {
	switch b {
	case columns.BandPositive:
		return text.Colors{text.FgGreen}
	case columns.BandWarning:
		return text.Colors{text.FgYellow}
	case columns.BandNegative:
		return text.Colors{text.FgRed}
	}
	return text.Colors{}
}

func recommendationColors(r types.Recommendation) text.Colors {
	switch r {
	case types.Buy:
		return text.Colors{text.FgGreen, text.Bold}
	case types.Sell:
		return text.Colors{text.FgRed, text.Bold}
	}
	return text.Colors{text.FgYellow}
}

func title(s string, color bool) string {
	s = strings.ToUpper(s)
	if color {
		return text.Bold.Sprint(s)
	}
	return s
}

package columns

import (
	"fmt"
	"strings"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Def describes one column: how to render it and how to colour it.
type Def struct {
	Header string
	// Value renders the cell text.
	Value func(s types.StockRecord) string
	// Raw is the numeric value behind the cell, nil for text columns.
	Raw func(s types.StockRecord) float64
	// Banded columns are coloured by BandOf(Raw).
	Banded bool
	// Right-aligned in tables.
	Numeric bool
}

// Registry maps column keys to definitions.
var Registry = map[string]Def{}

// aliases map alternate spellings onto registry keys.
var aliases = map[string]string{
	"sym":           "ticker",
	"symbol":        "ticker",
	"marketcap":     "mcap",
	"cap":           "mcap",
	"return1m":      "1m",
	"return3m":      "3m",
	"return12m":     "12m",
	"returnytd":     "ytd",
	"peratio":       "pe",
	"pbratio":       "pb",
	"psratio":       "ps",
	"debttoequity":  "d/e",
	"dividendyield": "div",
	"dividend":      "div",
	"badge":         "signal",
	"rec":           "signal",
}

func init() {
	text := func(header string, f func(types.StockRecord) string) Def {
		return Def{Header: header, Value: f}
	}
	number := func(header string, f func(types.StockRecord) float64, render func(float64) string) Def {
		return Def{Header: header, Raw: f, Numeric: true, Value: func(s types.StockRecord) string { return render(f(s)) }}
	}
	perf := func(header string, f func(types.StockRecord) float64) Def {
		d := number(header, f, FormatPercent)
		d.Banded = true
		return d
	}
	fixed := func(decimals int, suffix string) func(float64) string {
		return func(v float64) string { return fmt.Sprintf("%.*f%s", decimals, v, suffix) }
	}

	Registry["ticker"] = text("TICKER", func(s types.StockRecord) string { return s.Ticker })
	Registry["name"] = text("NAME", func(s types.StockRecord) string { return s.Name })
	Registry["market"] = text("MARKET", func(s types.StockRecord) string { return s.Market })
	Registry["sector"] = text("SECTOR", func(s types.StockRecord) string { return s.Sector })
	Registry["mcap"] = number("MKT CAP", func(s types.StockRecord) float64 { return s.MarketCap }, FormatMarketCap)
	Registry["price"] = number("PRICE", func(s types.StockRecord) float64 { return s.Price }, func(v float64) string { return fmt.Sprintf("$%.2f", v) })
	Registry["1m"] = perf("1M", func(s types.StockRecord) float64 { return s.Return1M })
	Registry["3m"] = perf("3M", func(s types.StockRecord) float64 { return s.Return3M })
	Registry["12m"] = perf("12M", func(s types.StockRecord) float64 { return s.Return12M })
	Registry["ytd"] = perf("YTD", func(s types.StockRecord) float64 { return s.ReturnYTD })
	Registry["pe"] = number("P/E", func(s types.StockRecord) float64 { return s.PERatio }, fixed(1, ""))
	Registry["pb"] = number("P/B", func(s types.StockRecord) float64 { return s.PBRatio }, fixed(1, ""))
	Registry["ps"] = number("P/S", func(s types.StockRecord) float64 { return s.PSRatio }, fixed(1, ""))
	Registry["d/e"] = number("D/E", func(s types.StockRecord) float64 { return s.DebtToEquity }, fixed(2, ""))
	Registry["div"] = number("DIV", func(s types.StockRecord) float64 { return s.DividendYield }, fixed(1, "%"))
	Registry["roe"] = number("ROE", func(s types.StockRecord) float64 { return s.ROE }, fixed(1, "%"))
	Registry["signal"] = text("SIGNAL", func(s types.StockRecord) string { return string(RecommendRecord(s)) })
}

// Canonical resolves a column name or alias to its registry key.
func Canonical(col string) (string, bool) {
	k := strings.ToLower(strings.TrimSpace(col))
	if a, ok := aliases[k]; ok {
		k = a
	}
	_, ok := Registry[k]
	return k, ok
}

// GetDef returns the definition of a canonical key.
func GetDef(key string) (Def, bool) {
	d, ok := Registry[key]
	return d, ok
}

// Compute determines the final column order. Explicit columns are
// canonicalised and de-duplicated keeping the first occurrence; with none
// the default set is used.
func Compute(explicit []string) ([]string, error) {
	if len(explicit) == 0 {
		return append([]string(nil), Sets["default"]...), nil
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(explicit))
	for _, c := range explicit {
		if strings.TrimSpace(c) == "" {
			continue
		}
		k, ok := Canonical(c)
		if !ok {
			return nil, &UnknownColumnError{Name: c}
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out, nil
}

// RenderValue renders one cell; unknown columns render empty.
func RenderValue(col string, s types.StockRecord) string {
	if d, ok := Registry[col]; ok {
		return d.Value(s)
	}
	return ""
}

// Row maps every column to its cell text, keyed by column.
func Row(cols []string, s types.StockRecord) map[string]string {
	row := make(map[string]string, len(cols))
	for _, c := range cols {
		row[c] = RenderValue(c, s)
	}
	return row
}

// UnknownColumnError reports a column name with no definition.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return "unknown column: " + e.Name
}

func (e *UnknownColumnError) Unwrap() error { return types.ErrInvalidArgument }

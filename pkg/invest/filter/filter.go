package filter

import (
	"fmt"
	"strings"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Filter matches a stock record.
type Filter interface {
	Match(s types.StockRecord) bool
}

// FromScreening builds the conjunction of every predicate in f: market
// and sector sets (empty matches all, market codes ignore case), inclusive market cap, 12M return
// and P/E ranges, and a dividend yield floor.
func FromScreening(f types.ScreeningFilters) Filter {
	return All{
		NewSet(Market, upper(f.Market)),
		NewSet(Sector, f.Sector),
		Range{Field: "marketCap", Min: f.MarketCapMin, Max: f.MarketCapMax, Value: marketCap},
		Range{Field: "return12M", Min: f.Return12MMin, Max: f.Return12MMax, Value: return12M},
		Range{Field: "peRatio", Min: f.PERatioMin, Max: f.PERatioMax, Value: peRatio},
		AtLeast{Field: "dividendYield", Min: f.DividendYieldMin, Value: dividendYield},
	}
}

func upper(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(strings.TrimSpace(v))
	}
	return out
}

// Implementations

type Always bool

func (a Always) Match(types.StockRecord) bool { return bool(a) }

// All matches when every member matches.
type All []Filter

func (a All) Match(s types.StockRecord) bool {
	for _, f := range a {
		if !f.Match(s) {
			return false
		}
	}
	return true
}

// Attr selects a string attribute of a record.
type Attr func(types.StockRecord) string

func Market(s types.StockRecord) string { return strings.ToUpper(s.Market) }
func Sector(s types.StockRecord) string { return s.Sector }

// Set matches records whose attribute is one of the values. An empty set
// matches everything.
type Set struct {
	attr Attr
	set  map[string]struct{}
}

func NewSet(attr Attr, values []string) Set {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return Set{attr: attr, set: set}
}

func (e Set) Match(s types.StockRecord) bool {
	if len(e.set) == 0 {
		return true
	}
	_, ok := e.set[e.attr(s)]
	return ok
}

// Range matches Min <= value <= Max.
type Range struct {
	Field    string
	Min, Max float64
	Value    func(types.StockRecord) float64
}

func (r Range) Match(s types.StockRecord) bool {
	v := r.Value(s)
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string { return fmt.Sprintf("%s:[%g,%g]", r.Field, r.Min, r.Max) }

// AtLeast matches value >= Min.
type AtLeast struct {
	Field string
	Min   float64
	Value func(types.StockRecord) float64
}

func (a AtLeast) Match(s types.StockRecord) bool { return a.Value(s) >= a.Min }

func (a AtLeast) String() string { return fmt.Sprintf("%s:>=%g", a.Field, a.Min) }

func marketCap(s types.StockRecord) float64     { return s.MarketCap }
func return12M(s types.StockRecord) float64     { return s.Return12M }
func peRatio(s types.StockRecord) float64       { return s.PERatio }
func dividendYield(s types.StockRecord) float64 { return s.DividendYield }

// String lists the set for logs.
func (e Set) String() string {
	vals := make([]string, 0, len(e.set))
	for v := range e.set {
		vals = append(vals, v)
	}
	return "set:" + strings.Join(vals, ",")
}

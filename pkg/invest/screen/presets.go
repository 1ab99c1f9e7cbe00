package screen

import (
	"fmt"
	"strings"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Preset is a named quick screen. Apply is merged onto DefaultFilters.
type Preset struct {
	Name  string
	Apply func(*types.ScreeningFilters)
}

// Presets are the quick screens in display order.
var Presets = []Preset{
	{Name: "Top Performers", Apply: func(f *types.ScreeningFilters) {
		f.Return12MMin = 20
		f.SortBy = "return12M"
	}},
	{Name: "Value Stocks", Apply: func(f *types.ScreeningFilters) {
		f.PERatioMax = 15
		f.SortBy = "peRatio"
	}},
	{Name: "Dividend Champions", Apply: func(f *types.ScreeningFilters) {
		f.DividendYieldMin = 3
		f.SortBy = "dividendYield"
	}},
	{Name: "Large Cap Growth", Apply: func(f *types.ScreeningFilters) {
		f.MarketCapMin = 10000
		f.Return12MMin = 15
		f.SortBy = "marketCap"
	}},
}

// PresetNames lists the preset names in display order.
func PresetNames() []string {
	out := make([]string, 0, len(Presets))
	for _, p := range Presets {
		out = append(out, p.Name)
	}
	return out
}

// PresetFilters resolves a preset by name (case-insensitive; spaces,
// dashes and underscores are interchangeable) onto the defaults.
func PresetFilters(name string) (types.ScreeningFilters, error) {
	want := normalize(name)
	for _, p := range Presets {
		if normalize(p.Name) == want {
			f := DefaultFilters()
			p.Apply(&f)
			return f, nil
		}
	}
	return types.ScreeningFilters{}, fmt.Errorf("%w: unknown screen preset %q; available: %s",
		types.ErrInvalidArgument, name, strings.Join(PresetNames(), ", "))
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

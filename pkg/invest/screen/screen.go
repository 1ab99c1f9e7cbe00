// Package screen filters a stock dataset against ScreeningFilters and
// sorts the matches.
package screen

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/komsit37/invest/pkg/invest/filter"
	"github.com/komsit37/invest/pkg/invest/types"
)

// Fields maps sortable field names to their accessors.
var Fields = map[string]func(types.StockRecord) float64{
	"marketCap":     func(s types.StockRecord) float64 { return s.MarketCap },
	"price":         func(s types.StockRecord) float64 { return s.Price },
	"return1M":      func(s types.StockRecord) float64 { return s.Return1M },
	"return3M":      func(s types.StockRecord) float64 { return s.Return3M },
	"return12M":     func(s types.StockRecord) float64 { return s.Return12M },
	"returnYTD":     func(s types.StockRecord) float64 { return s.ReturnYTD },
	"peRatio":       func(s types.StockRecord) float64 { return s.PERatio },
	"pbRatio":       func(s types.StockRecord) float64 { return s.PBRatio },
	"psRatio":       func(s types.StockRecord) float64 { return s.PSRatio },
	"debtToEquity":  func(s types.StockRecord) float64 { return s.DebtToEquity },
	"dividendYield": func(s types.StockRecord) float64 { return s.DividendYield },
	"roe":           func(s types.StockRecord) float64 { return s.ROE },
}

// FieldNames lists the sortable fields alphabetically.
func FieldNames() []string {
	names := make([]string, 0, len(Fields))
	for k := range Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultFilters are the widest bounds: every record of the bundled
// dataset passes, sorted by 12-month return descending.
func DefaultFilters() types.ScreeningFilters {
	return types.ScreeningFilters{
		Market:           []string{},
		Sector:           []string{},
		MarketCapMin:     0,
		MarketCapMax:     10000000,
		Return12MMin:     -100,
		Return12MMax:     1000,
		PERatioMin:       0,
		PERatioMax:       100,
		DividendYieldMin: 0,
		SortBy:           "return12M",
		SortOrder:        types.SortDesc,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks ranges, the sort key and the sort order. An empty order
// is read as descending.
func Validate(f types.ScreeningFilters) error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", types.ErrInvalidArgument, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %v", types.ErrInvalidArgument, err)
	}
	if _, ok := Fields[f.SortBy]; !ok {
		return fmt.Errorf("%w: unknown sort field %q; available: %s",
			types.ErrInvalidArgument, f.SortBy, strings.Join(FieldNames(), ", "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gtefield":
		return fmt.Sprintf("%s %v is below %s", fe.Field(), fe.Value(), fe.Param())
	case "oneof":
		return fmt.Sprintf("unknown sort order %q (want %s)", fe.Value(), strings.ReplaceAll(fe.Param(), " ", " or "))
	case "required":
		return fmt.Sprintf("%s is required; available: %s", fe.Field(), strings.Join(FieldNames(), ", "))
	}
	return fe.Error()
}

// Screen returns the records of dataset passing every filter, stably
// sorted on f.SortBy. The dataset is not modified. No match yields an
// empty, non-nil slice.
func Screen(dataset []types.StockRecord, f types.ScreeningFilters) ([]types.StockRecord, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	match := filter.FromScreening(f)
	out := make([]types.StockRecord, 0, len(dataset))
	for _, s := range dataset {
		if match.Match(s) {
			out = append(out, s)
		}
	}

	key := Fields[f.SortBy]
	desc := f.SortOrder != types.SortAsc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out, nil
}

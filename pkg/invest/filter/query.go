package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Parse builds a ticker/name query from an expression:
// - Comma-separated exact tickers: "AAPL,MSFT"
// - Glob on the ticker: "A*"
// - Regex on ticker or name: "/^SAP/"
// - Otherwise a case-insensitive substring of ticker or name.
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Always(true), nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, fmt.Errorf("%w: query %q: %v", types.ErrInvalidArgument, expr, err)
		}
		return Regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		var tickers []string
		for _, p := range strings.Split(expr, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			tickers = append(tickers, strings.ToUpper(p))
		}
		return NewSet(upperTicker, tickers), nil
	}
	if strings.ContainsAny(expr, "*?[") {
		if _, err := filepath.Match(expr, ""); err != nil {
			return nil, fmt.Errorf("%w: query %q: %v", types.ErrInvalidArgument, expr, err)
		}
		return Glob{pattern: strings.ToUpper(expr)}, nil
	}
	return SubstrCI{needle: strings.ToLower(expr)}, nil
}

func upperTicker(s types.StockRecord) string { return strings.ToUpper(s.Ticker) }

type Glob struct{ pattern string }

func (g Glob) Match(s types.StockRecord) bool {
	ok, _ := filepath.Match(g.pattern, strings.ToUpper(s.Ticker))
	return ok
}

func (g Glob) String() string { return fmt.Sprintf("glob:%s", g.pattern) }

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(s types.StockRecord) bool {
	return r.re.MatchString(s.Ticker) || r.re.MatchString(s.Name)
}

// SubstrCI matches if ticker or name contains needle, case-insensitively.
type SubstrCI struct{ needle string }

func (q SubstrCI) Match(s types.StockRecord) bool {
	if q.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Ticker), q.needle) ||
		strings.Contains(strings.ToLower(s.Name), q.needle)
}

func (q SubstrCI) String() string { return fmt.Sprintf("substr-ci:%s", q.needle) }

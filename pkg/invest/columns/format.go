package columns

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Recommend derives the screener's BUY/HOLD/SELL badge.
func Recommend(return12M, peRatio, dividendYield float64) types.Recommendation {
	if return12M > 20 && peRatio < 25 {
		return types.Buy
	}
	if return12M > 10 || dividendYield > 3 {
		return types.Hold
	}
	if return12M < -20 {
		return types.Sell
	}
	return types.Hold
}

// RecommendRecord applies Recommend to a record.
func RecommendRecord(s types.StockRecord) types.Recommendation {
	return Recommend(s.Return12M, s.PERatio, s.DividendYield)
}

// Band is the colour banding of a performance figure.
type Band string

const (
	BandPositive Band = "positive"
	BandNeutral  Band = "neutral"
	BandWarning  Band = "warning"
	BandNegative Band = "negative"
)

// BandOf buckets a percentage return.
func BandOf(v float64) Band {
	switch {
	case v >= 10:
		return BandPositive
	case v >= 0:
		return BandNeutral
	case v >= -10:
		return BandWarning
	default:
		return BandNegative
	}
}

// FormatMarketCap renders a market cap given in USD millions.
func FormatMarketCap(millions float64) string {
	switch {
	case millions >= 1000000:
		return fmt.Sprintf("$%.1fT", millions/1000000)
	case millions >= 1000:
		return fmt.Sprintf("$%.1fB", millions/1000)
	default:
		return fmt.Sprintf("$%.1fM", millions)
	}
}

// FormatPercent renders a signed percentage with one decimal.
func FormatPercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatUSD rounds to whole dollars and renders with currency formatting.
func FormatUSD(v float64) string {
	cents := decimal.NewFromFloat(v).Round(0).Mul(decimal.NewFromInt(100))
	return money.New(cents.IntPart(), "USD").Display()
}

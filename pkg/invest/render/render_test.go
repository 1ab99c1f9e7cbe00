package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/invest/pkg/invest/types"
)

func screens() []types.Screen {
	return []types.Screen{{
		Name:    "global",
		Columns: []string{"ticker", "name", "mcap", "12m", "signal"},
		Stocks: []types.StockRecord{
			{Ticker: "AAA", Name: "Alpha Corp", MarketCap: 500000, Return12M: 25, PERatio: 20},
			{Ticker: "CCC", Name: "Gamma AG", MarketCap: 9000, Return12M: -30, PERatio: 40},
		},
	}}
}

func TestFor(t *testing.T) {
	for _, f := range []string{"", "table", "JSON", "tickers"} {
		r, err := For(f)
		require.NoError(t, err, f)
		assert.NotNil(t, r)
	}
	_, err := For("xml")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableRenderer().Render(&buf, screens(), RenderOptions{}))
	out := buf.String()

	assert.Contains(t, out, "TICKER")
	assert.Contains(t, out, "MKT CAP")
	assert.Contains(t, out, "Alpha Corp")
	assert.Contains(t, out, "$500.0B")
	assert.Contains(t, out, "+25.0%")
	assert.Contains(t, out, "-30.0%")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "SELL")
	assert.NotContains(t, out, "\x1b[")
	assert.Less(t, strings.Index(out, "AAA"), strings.Index(out, "CCC"))
}

func TestTableRenderer_ColorAndEmpty(t *testing.T) {
	text.EnableColors()
	var buf bytes.Buffer
	require.NoError(t, NewTableRenderer().Render(&buf, screens(), RenderOptions{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")

	buf.Reset()
	empty := []types.Screen{{Name: "none", Columns: []string{"ticker"}}}
	require.NoError(t, NewTableRenderer().Render(&buf, empty, RenderOptions{}))
	assert.Contains(t, strings.ToLower(buf.String()), "no stocks match")
}

func TestTableRenderer_ExplicitColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableRenderer().Render(&buf, screens(), RenderOptions{Columns: []string{"ticker"}}))
	assert.Contains(t, buf.String(), "AAA")
	assert.NotContains(t, buf.String(), "Alpha Corp")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer().Render(&buf, screens(), RenderOptions{PrettyJSON: true}))

	var got []struct {
		Name    string   `json:"name"`
		Columns []string `json:"columns"`
		Items   []struct {
			Ticker         string            `json:"ticker"`
			MarketCap      float64           `json:"marketCap"`
			Recommendation string            `json:"recommendation"`
			Fields         map[string]string `json:"fields"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "global", got[0].Name)
	require.Len(t, got[0].Items, 2)
	first := got[0].Items[0]
	assert.Equal(t, "AAA", first.Ticker)
	assert.Equal(t, 500000.0, first.MarketCap)
	assert.Equal(t, "BUY", first.Recommendation)
	assert.Equal(t, "$500.0B", first.Fields["mcap"])
	assert.Equal(t, "SELL", got[0].Items[1].Recommendation)
}

func TestTickersRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTickersRenderer().Render(&buf, screens(), RenderOptions{}))
	assert.Equal(t, "AAA,CCC\n", buf.String())
}

func TestPortfolio(t *testing.T) {
	r := types.PortfolioReport{
		Allocation: []types.AllocationEntry{{Name: "Core", Percentage: 100, RiskLevel: types.RiskLow, ExpectedReturn: 8}},
		Metrics:    types.RiskMetrics{OverallRisk: 1, ExpectedReturn: 8, ExpectedVolatility: 8, SharpeRatio: 0.625, MaxPosition: 100, Diversification: 1},
		RiskLabel:  "Conservative",
		Rules:      []types.RuleResult{{Rule: "Maximum Single Position", Current: "100.0%", Limit: "5%", Status: types.RuleWarning}},
		Growth:     []types.GrowthPoint{{Year: 0, PortfolioValue: 1000, Contributions: 1000}, {Year: 1, PortfolioValue: 1080, Contributions: 1000, Gains: 80}},
		Summary:    types.GrowthSummary{FinalValue: 1080, TotalContributions: 1000, TotalGains: 80, Multiple: 1.08},
		Scenarios:  []types.ScenarioResult{{Name: "Balanced", Return: 13.5, Value: 1135, Multiple: 1.135}},
		TargetCAGR: 13.5,
	}
	var buf bytes.Buffer
	require.NoError(t, Portfolio(&buf, r, RenderOptions{}))
	out := buf.String()
	assert.Contains(t, out, "ALLOCATION")
	assert.Contains(t, out, "Conservative")
	assert.Contains(t, out, "Maximum Single Position")
	assert.Contains(t, out, "$1,080.00")
	assert.Contains(t, out, "Balanced")
	assert.Contains(t, out, "short by 5.5%")
}

func TestThesis(t *testing.T) {
	rec := types.ThesisRecord{
		Market:         "US",
		GeneratedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Company:        types.Company{Name: "AAPL Corporation", Ticker: "AAPL"},
		Catalysts:      []string{"Product launches"},
		Valuation:      types.Valuation{CurrentPrice: 120, TargetPrice: 200, Upside: 20, Downside: 10},
		FinalThesis:    "AAPL represents a compelling investment opportunity.",
		Recommendation: types.Buy,
		History:        []types.PricePoint{{Label: "Current", Price: 120, Volume: 600000}},
	}
	var buf bytes.Buffer
	require.NoError(t, Thesis(&buf, rec, RenderOptions{}))
	out := buf.String()
	assert.Contains(t, out, "AAPL CORPORATION")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "- Product launches")
	assert.Contains(t, out, "$200.00")
	assert.Contains(t, out, "Current")
	assert.Contains(t, out, "compelling investment")
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/invest/pkg/invest/types"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestScreenCmd_Tickers(t *testing.T) {
	out, err := run(t, "screen", "--preset", "top performers", "--format", "tickers", "--market", "US")
	require.NoError(t, err)
	tickers := strings.Split(strings.TrimSpace(out), ",")
	require.NotEmpty(t, tickers)
	assert.NotContains(t, tickers, "")
}

func TestScreenCmd_DatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: mini
stocks:
  - {ticker: AAA, name: Alpha, market: US, sector: Technology, marketCap: 1000, price: 10, return12M: 5, peRatio: 10, dividendYield: 1}
  - {ticker: BBB, name: Beta, market: UK, sector: Energy, marketCap: 2000, price: 20, return12M: 15, peRatio: 12, dividendYield: 2}
`), 0o644))

	out, err := run(t, "screen", path, "-f", "tickers", "--sort", "price", "--order", "asc")
	require.NoError(t, err)
	assert.Equal(t, "AAA,BBB\n", out)

	out, err = run(t, "screen", path, "-f", "tickers", "--market", "uk")
	require.NoError(t, err)
	assert.Equal(t, "BBB\n", out)

	out, err = run(t, "screen", path, "-f", "table", "--color=false", "-c", "ticker,12m,signal")
	require.NoError(t, err)
	assert.Contains(t, out, "+15.0%")
	assert.Contains(t, out, "HOLD")

	_, err = run(t, "screen", path, "--order", "sideways")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestGrowCmd_JSON(t *testing.T) {
	out, err := run(t, "grow", "--initial", "10000", "--monthly", "500", "--return", "10", "--years", "2", "-f", "json")
	require.NoError(t, err)
	var got struct {
		Points []types.GrowthPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Points, 3)
	assert.InDelta(t, 25960, got.Points[2].PortfolioValue, 1e-6)
}

func TestRiskCmd(t *testing.T) {
	out, err := run(t, "risk", "--preset", "conservative", "-f", "json")
	require.NoError(t, err)
	var got struct {
		Metrics types.RiskMetrics `json:"metrics"`
		Label   string            `json:"label"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 5, got.Metrics.Diversification)
	assert.Equal(t, 50.0, got.Metrics.MaxPosition)
}

func TestRebalanceCmd(t *testing.T) {
	out, err := run(t, "rebalance", "--index", "1", "--percent", "30", "-f", "json")
	require.NoError(t, err)
	var got struct {
		Allocation []types.AllocationEntry `json:"allocation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Allocation, 5)
	assert.Equal(t, 30.0, got.Allocation[1].Percentage)

	_, err = run(t, "rebalance", "--index", "9", "--percent", "30")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestPortfolioCmd(t *testing.T) {
	out, err := run(t, "portfolio", "--years", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIOS")
	assert.Contains(t, out, "exceeded by")
}

func TestThesisCmd(t *testing.T) {
	out, err := run(t, "thesis", "sap", "eu", "--seed", "9", "-f", "json")
	require.NoError(t, err)
	var rec types.ThesisRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "SAP", rec.Company.Ticker)
	assert.Equal(t, "EU", rec.Market)

	_, err = run(t, "thesis", "sap", "mars")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestPresetsCmd(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "Dividend Champions")
	assert.Contains(t, out, "Balanced Strategy")
}

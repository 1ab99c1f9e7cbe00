package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/invest/pkg/invest/types"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestBuiltin(t *testing.T) {
	ds, err := Builtin{}.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "global", ds.Name)
	require.NotEmpty(t, ds.Stocks)

	markets := map[string]bool{}
	for _, s := range ds.Stocks {
		assert.NotEmpty(t, s.Ticker)
		assert.NotEmpty(t, s.Sector)
		markets[s.Market] = true
	}
	assert.Equal(t, map[string]bool{"US": true, "UK": true, "EU": true}, markets)
}

func TestFor(t *testing.T) {
	assert.IsType(t, Builtin{}, For(""))
	assert.IsType(t, YAMLSource{}, For("stocks.yaml"))
}

func TestYAMLSource_File(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tech.yaml", `
stocks:
  - ticker: AAA
    market: US
    sector: Technology
    marketCap: 1200
    return12M: 30
  - ticker: BBB
    market: EU
    sector: Energy
`)
	ds, err := YAMLSource{}.Load(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "tech", ds.Name)
	require.Len(t, ds.Stocks, 2)
	assert.Equal(t, 1200.0, ds.Stocks[0].MarketCap)
	assert.Equal(t, 30.0, ds.Stocks[0].Return12M)
}

func TestYAMLSource_ListShape(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "list.yml", "- {ticker: X, market: UK, sector: Utilities}\n")
	ds, err := YAMLSource{}.Load(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "list", ds.Name)
	require.Len(t, ds.Stocks, 1)
	assert.Equal(t, "UK", ds.Stocks[0].Market)
}

func TestYAMLSource_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/eu.yaml", "stocks:\n  - {ticker: SAP, market: EU}\n")
	writeFile(t, dir, "a.yaml", "stocks:\n  - {ticker: AAPL, market: US}\n")
	writeFile(t, dir, "notes.txt", "ignored")

	ds, err := YAMLSource{}.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, ds.Stocks, 2)
	assert.Equal(t, "AAPL", ds.Stocks[0].Ticker)
	assert.Equal(t, "SAP", ds.Stocks[1].Ticker)
}

func TestYAMLSource_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := YAMLSource{}.Load(context.Background(), 42)
	assert.Error(t, err)

	_, err = YAMLSource{}.Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	p := writeFile(t, dir, "noticker.yaml", "stocks:\n  - {name: Nameless}\n")
	_, err = YAMLSource{}.Load(context.Background(), p)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	p = writeFile(t, dir, "dup.yaml", "stocks:\n  - {ticker: A}\n  - {ticker: A}\n")
	_, err = YAMLSource{}.Load(context.Background(), p)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	dupDir := filepath.Join(dir, "dupdir")
	writeFile(t, dupDir, "one.yaml", "stocks:\n  - {ticker: A}\n")
	writeFile(t, dupDir, "two.yaml", "stocks:\n  - {ticker: A}\n")
	_, err = YAMLSource{}.Load(context.Background(), dupDir)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestParseAllocation(t *testing.T) {
	list := `
- name: Equity
  percentage: 70
  riskLevel: Medium
  expectedReturn: 11
- name: Bonds
  percentage: 30
  riskLevel: Low
  expectedReturn: 4
`
	alloc, err := ParseAllocation([]byte(list))
	require.NoError(t, err)
	require.Len(t, alloc, 2)
	assert.Equal(t, types.RiskMedium, alloc[0].RiskLevel)
	assert.Equal(t, 4.0, alloc[1].ExpectedReturn)

	wrapped := "allocation:\n  - {name: Cash, percentage: 100, riskLevel: Low, expectedReturn: 2}\n"
	alloc, err = ParseAllocation([]byte(wrapped))
	require.NoError(t, err)
	require.Len(t, alloc, 1)
	assert.Equal(t, "Cash", alloc[0].Name)
}

func TestParseAllocation_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":       "allocation: []\n",
		"no name":     "- {percentage: 100, riskLevel: Low}\n",
		"bad risk":    "- {name: X, percentage: 100, riskLevel: Extreme}\n",
		"bad percent": "- {name: X, percentage: 140, riskLevel: Low}\n",
		"nan percent": "- {name: X, percentage: .nan, riskLevel: Low}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAllocation([]byte(body))
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
		})
	}
}

func TestLoadAllocation(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "alloc.yaml", "- {name: X, percentage: 100, riskLevel: High, expectedReturn: 20}\n")
	alloc, err := LoadAllocation(p)
	require.NoError(t, err)
	assert.Equal(t, types.RiskHigh, alloc[0].RiskLevel)

	_, err = LoadAllocation(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

package types

import "time"

// RiskLevel is the risk tier of an allocation entry.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Valid reports whether l is one of the known tiers.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// AllocationEntry is one named slice of a portfolio.
// Color and Description are display-only.
type AllocationEntry struct {
	Name           string    `json:"name" yaml:"name"`
	Percentage     float64   `json:"percentage" yaml:"percentage"`
	RiskLevel      RiskLevel `json:"riskLevel" yaml:"riskLevel"`
	ExpectedReturn float64   `json:"expectedReturn" yaml:"expectedReturn"`
	Color          string    `json:"color,omitempty" yaml:"color,omitempty"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// GrowthPoint is one year of a projection. Gains = PortfolioValue - Contributions.
type GrowthPoint struct {
	Year           int     `json:"year"`
	PortfolioValue float64 `json:"portfolioValue"`
	Contributions  float64 `json:"contributions"`
	Gains          float64 `json:"gains"`
}

// StockRecord is static reference data for the screener.
// MarketCap is expressed in USD millions.
type StockRecord struct {
	Ticker        string  `json:"ticker" yaml:"ticker"`
	Name          string  `json:"name" yaml:"name"`
	Market        string  `json:"market" yaml:"market"`
	Sector        string  `json:"sector" yaml:"sector"`
	MarketCap     float64 `json:"marketCap" yaml:"marketCap"`
	Price         float64 `json:"price" yaml:"price"`
	Return1M      float64 `json:"return1M" yaml:"return1M"`
	Return3M      float64 `json:"return3M" yaml:"return3M"`
	Return12M     float64 `json:"return12M" yaml:"return12M"`
	ReturnYTD     float64 `json:"returnYTD" yaml:"returnYTD"`
	PERatio       float64 `json:"peRatio" yaml:"peRatio"`
	PBRatio       float64 `json:"pbRatio" yaml:"pbRatio"`
	PSRatio       float64 `json:"psRatio" yaml:"psRatio"`
	DebtToEquity  float64 `json:"debtToEquity" yaml:"debtToEquity"`
	DividendYield float64 `json:"dividendYield" yaml:"dividendYield"`
	ROE           float64 `json:"roe" yaml:"roe"`
}

// SortOrder is the direction of the screener sort stage.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ScreeningFilters is the predicate set and sort key applied by the screener.
// Empty Market/Sector sets match every record.
type ScreeningFilters struct {
	Market           []string  `json:"market" yaml:"market"`
	Sector           []string  `json:"sector" yaml:"sector"`
	MarketCapMin     float64   `json:"marketCapMin" yaml:"marketCapMin"`
	MarketCapMax     float64   `json:"marketCapMax" yaml:"marketCapMax" validate:"gtefield=MarketCapMin"`
	Return12MMin     float64   `json:"return12MMin" yaml:"return12MMin"`
	Return12MMax     float64   `json:"return12MMax" yaml:"return12MMax" validate:"gtefield=Return12MMin"`
	PERatioMin       float64   `json:"peRatioMin" yaml:"peRatioMin"`
	PERatioMax       float64   `json:"peRatioMax" yaml:"peRatioMax" validate:"gtefield=PERatioMin"`
	DividendYieldMin float64   `json:"dividendYieldMin" yaml:"dividendYieldMin"`
	SortBy           string    `json:"sortBy" yaml:"sortBy" validate:"required"`
	SortOrder        SortOrder `json:"sortOrder" yaml:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// RiskMetrics is derived from an allocation on every call.
type RiskMetrics struct {
	OverallRisk        float64 `json:"overallRisk"`
	ExpectedVolatility float64 `json:"expectedVolatility"`
	MaxPosition        float64 `json:"maxPosition"`
	Diversification    int     `json:"diversification"`
	ExpectedReturn     float64 `json:"expectedReturn"`
	SharpeRatio        float64 `json:"sharpeRatio"`
}

// RuleStatus is the outcome of one compliance rule.
type RuleStatus string

const (
	RulePass    RuleStatus = "pass"
	RuleWarning RuleStatus = "warning"
)

// RuleResult is one row of the risk-rules compliance table.
type RuleResult struct {
	Rule        string     `json:"rule"`
	Current     string     `json:"current"`
	Limit       string     `json:"limit"`
	Status      RuleStatus `json:"status"`
	Description string     `json:"description"`
}

// Recommendation is a BUY/HOLD/SELL call.
type Recommendation string

const (
	Buy  Recommendation = "BUY"
	Hold Recommendation = "HOLD"
	Sell Recommendation = "SELL"
)

// Company describes the analysed company in a thesis.
type Company struct {
	Name              string `json:"name"`
	Ticker            string `json:"ticker"`
	Industry          string `json:"industry"`
	Sector            string `json:"sector"`
	BusinessModel     string `json:"businessModel"`
	KeyProducts       string `json:"keyProducts"`
	RecentPerformance string `json:"recentPerformance"`
}

type Rationale struct {
	GrowthDrivers         string `json:"growthDrivers"`
	CompetitiveAdvantages string `json:"competitiveAdvantages"`
	IndustryTrends        string `json:"industryTrends"`
}

type Risks struct {
	Risks     string `json:"risks"`
	Mitigants string `json:"mitigants"`
}

// Valuation holds the mocked price targets. Upside and Downside are percents.
type Valuation struct {
	CurrentPrice float64 `json:"currentPrice"`
	TargetPrice  float64 `json:"targetPrice"`
	Method       string  `json:"method"`
	Upside       float64 `json:"upside"`
	Downside     float64 `json:"downside"`
}

type Horizon struct {
	ShortTerm    string `json:"shortTerm"`
	LongTerm     string `json:"longTerm"`
	ExitCriteria string `json:"exitCriteria"`
}

// PricePoint is one point of a mock price history.
type PricePoint struct {
	Label  string  `json:"month"`
	Price  float64 `json:"price"`
	Volume int     `json:"volume"`
}

// ThesisRecord is a generated investment thesis for a ticker/market pair.
type ThesisRecord struct {
	ID             string         `json:"id"`
	Market         string         `json:"market"`
	GeneratedAt    time.Time      `json:"generatedAt"`
	Company        Company        `json:"company"`
	Rationale      Rationale      `json:"rationale"`
	Catalysts      []string       `json:"catalysts"`
	Risks          Risks          `json:"risks"`
	Valuation      Valuation      `json:"valuation"`
	Horizon        Horizon        `json:"horizon"`
	FinalThesis    string         `json:"finalThesis"`
	Recommendation Recommendation `json:"recommendation"`
	History        []PricePoint   `json:"history"`
}

// Dataset is a named set of stock records loaded from a source.
type Dataset struct {
	Name   string        `json:"name" yaml:"name"`
	Stocks []StockRecord `json:"stocks" yaml:"stocks"`
}

// Screen is one named screening result ready for rendering.
type Screen struct {
	Name    string
	Columns []string
	Stocks  []StockRecord
}

// GrowthSummary condenses a projection to its final figures.
type GrowthSummary struct {
	FinalValue         float64 `json:"finalValue"`
	TotalGains         float64 `json:"totalGains"`
	TotalContributions float64 `json:"totalContributions"`
	Multiple           float64 `json:"multiple"`
}

// ScenarioResult is a closed-form projection at a fixed return.
type ScenarioResult struct {
	Name     string  `json:"scenario"`
	Return   float64 `json:"return"`
	Value    float64 `json:"value"`
	Multiple float64 `json:"multiple"`
}

// PortfolioReport is everything the portfolio page shows for one state.
type PortfolioReport struct {
	Allocation []AllocationEntry `json:"allocation"`
	Metrics    RiskMetrics       `json:"metrics"`
	RiskLabel  string            `json:"riskLabel"`
	Rules      []RuleResult      `json:"rules"`
	Growth     []GrowthPoint     `json:"growth"`
	Summary    GrowthSummary     `json:"summary"`
	Scenarios  []ScenarioResult  `json:"scenarios"`
	TargetCAGR float64           `json:"targetCAGR"`
	TargetMet  bool              `json:"targetMet"`
}

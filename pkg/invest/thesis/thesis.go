package thesis

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Markets are the accepted market codes.
var Markets = []string{"us", "uk", "eu"}

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Service produces a thesis for a ticker on a market.
type Service interface {
	Generate(ctx context.Context, ticker, market string) (types.ThesisRecord, error)
}

// Generator builds mocked theses from its own random source.
// It is safe for concurrent use.
type Generator struct {
	// Delay is waited before each result is returned.
	Delay time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator seeded with seed; 0 seeds from the clock.
func NewGenerator(seed int64, delay time.Duration) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{Delay: delay, rnd: rand.New(rand.NewSource(seed)), now: time.Now}
}

// NormalizeMarket lower-cases market and checks it against Markets.
func NormalizeMarket(market string) (string, error) {
	m := strings.ToLower(strings.TrimSpace(market))
	if m == "" {
		return "", fmt.Errorf("%w: market is required", types.ErrInvalidArgument)
	}
	for _, k := range Markets {
		if k == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown market %q (want one of %s)", types.ErrInvalidArgument, market, strings.Join(Markets, ", "))
}

func (g *Generator) Generate(ctx context.Context, ticker, market string) (types.ThesisRecord, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return types.ThesisRecord{}, fmt.Errorf("%w: ticker is required", types.ErrInvalidArgument)
	}
	m, err := NormalizeMarket(market)
	if err != nil {
		return types.ThesisRecord{}, err
	}
	if err := wait(ctx, g.Delay); err != nil {
		return types.ThesisRecord{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.build(ticker, strings.ToUpper(m)), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// build must be called with g.mu held.
func (g *Generator) build(ticker, market string) types.ThesisRecord {
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		id = uuid.New()
	}
	price := g.intn(200) + 50
	rec := types.ThesisRecord{
		ID:          id.String(),
		Market:      market,
		GeneratedAt: g.now().UTC(),
		Company: types.Company{
			Name:              ticker + " Corporation",
			Ticker:            ticker,
			Industry:          "Technology",
			Sector:            "Software & Services",
			BusinessModel:     "Leading technology company providing innovative solutions across multiple segments with recurring revenue streams and strong market position.",
			KeyProducts:       "Cloud services, enterprise software, AI solutions, and digital platforms serving millions of users globally.",
			RecentPerformance: fmt.Sprintf("Strong FY2024 performance with revenue growth of 15-25%% YoY, expanding margins, and solid cash generation. %s market leadership maintained.", market),
		},
		Rationale: types.Rationale{
			GrowthDrivers:         "Digital transformation acceleration, cloud adoption, AI integration, expanding market share in emerging segments.",
			CompetitiveAdvantages: "Strong brand recognition, extensive ecosystem, R&D capabilities, strategic partnerships, and market leadership position.",
			IndustryTrends:        "Continued digital transformation, AI adoption, remote work trends, and increasing demand for cloud-based solutions.",
		},
		Catalysts: []string{
			"Product launches and feature expansions",
			"Strategic acquisitions and partnerships",
			"Market expansion into new geographies",
			"AI and automation integration",
		},
		Risks: types.Risks{
			Risks:     "Market competition, regulatory changes, economic downturn impact, technology disruption, and execution risks.",
			Mitigants: "Diversified revenue streams, strong balance sheet, continuous innovation, strategic positioning, and risk management frameworks.",
		},
		Valuation: types.Valuation{
			CurrentPrice: price,
			TargetPrice:  g.intn(250) + 100,
			Method:       "DCF analysis and peer comparison methodology",
			Upside:       g.intn(30) + 10,
			Downside:     g.intn(20) + 5,
		},
		Horizon: types.Horizon{
			ShortTerm:    "Continued execution on strategic initiatives with steady performance expected over next 12 months.",
			LongTerm:     "Strong secular growth trends support long-term value creation over 3-5 year horizon.",
			ExitCriteria: "Loss of competitive position, structural market changes, or valuation reaching fair value targets.",
		},
		FinalThesis: ticker + " represents a compelling investment opportunity with strong fundamentals, clear growth catalysts, and attractive risk-reward profile in the current market environment.",
	}
	rec.Recommendation = g.recommend()
	rec.History = g.history(price)
	return rec
}

// intn mirrors floor(u*n) for u in [0,1).
func (g *Generator) intn(n int) float64 {
	return math.Floor(g.rnd.Float64() * float64(n))
}

func (g *Generator) recommend() types.Recommendation {
	if g.rnd.Float64() > 0.3 {
		return types.Buy
	}
	if g.rnd.Float64() > 0.5 {
		return types.Hold
	}
	return types.Sell
}

// history walks linearly from 80% of price to price with +/-5% noise
// and appends the current price as the last point.
func (g *Generator) history(price float64) []types.PricePoint {
	start := price * 0.8
	out := make([]types.PricePoint, 0, len(months)+1)
	for i, m := range months {
		variation := (g.rnd.Float64() - 0.5) * 0.1
		p := start + (price-start)*(float64(i)/11) + start*variation
		out = append(out, types.PricePoint{Label: m, Price: math.Round(p*100) / 100, Volume: g.volume()})
	}
	return append(out, types.PricePoint{Label: "Current", Price: price, Volume: g.volume()})
}

func (g *Generator) volume() int {
	return int(g.intn(1000000)) + 500000
}

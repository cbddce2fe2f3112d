package risk

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/domain"
)

// Config holds the tunable parameters of the risk calculator.
type Config struct {
	AccountBalance   float64
	MonteCarloTrials int
	RiskFreeRate     float64
	ShortfallFactor  float64
	// Seed fixes the random source for deterministic output. Zero means
	// a fresh time-based seed per calculation.
	Seed int64
}

// DefaultConfig returns the standard calculator parameters.
func DefaultConfig() Config {
	return Config{
		AccountBalance:   10000,
		MonteCarloTrials: 10000,
		RiskFreeRate:     0.02,
		ShortfallFactor:  1.3,
	}
}

// Calculator is the portfolio risk engine. All public operations are
// synchronous and never return an error: failed calculations degrade to
// zeroed results with the cause logged.
type Calculator struct {
	profiles       *ProfileStore
	analyzer       *Analyzer
	shortfall      ShortfallFunc
	accountBalance float64
	trials         int
	riskFreeRate   float64
	seed           int64
	log            zerolog.Logger
}

// NewCalculator builds a calculator with the default simulated quoter and
// flat shortfall policy.
func NewCalculator(profiles *ProfileStore, cfg Config, log zerolog.Logger) *Calculator {
	log = log.With().Str("component", "risk-calculator").Logger()

	quoterRNG := rand.New(rand.NewSource(seedOr(cfg.Seed)))
	return &Calculator{
		profiles:       profiles,
		analyzer:       NewAnalyzer(profiles, NewSimulatedQuoter(profiles, quoterRNG), log),
		shortfall:      FlatShortfall(cfg.ShortfallFactor),
		accountBalance: cfg.AccountBalance,
		trials:         cfg.MonteCarloTrials,
		riskFreeRate:   cfg.RiskFreeRate,
		seed:           cfg.Seed,
		log:            log,
	}
}

// SetQuoter replaces the current-price source.
func (c *Calculator) SetQuoter(quoter Quoter) {
	c.analyzer.quoter = quoter
}

// SetShortfall replaces the expected-shortfall policy.
func (c *Calculator) SetShortfall(fn ShortfallFunc) {
	c.shortfall = fn
}

func seedOr(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// newRNG returns a fresh random source per calculation so concurrent
// requests never share one.
func (c *Calculator) newRNG() *rand.Rand {
	return rand.New(rand.NewSource(seedOr(c.seed)))
}

// timeframeDays maps a timeframe label to a holding period in days.
// Unknown labels default to one day.
func timeframeDays(timeframe string) int {
	days := map[string]int{
		"1d": 1, "5d": 5, "10d": 10,
		"1w": 7, "2w": 14,
		"1m": 22, "3m": 66, "6m": 132, "1y": 252,
	}
	if d, ok := days[timeframe]; ok {
		return d
	}
	return 1
}

// CalculateRisk produces the full risk report for a portfolio. An empty
// portfolio or a total calculation failure yields the all-zero report.
func (c *Calculator) CalculateRisk(portfolio []domain.Position, timeframe string, confidence float64) (report domain.RiskReport) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("risk calculation failed")
			report = domain.EmptyRiskReport()
		}
	}()

	if len(portfolio) == 0 {
		return domain.EmptyRiskReport()
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.95
	}

	days := timeframeDays(timeframe)
	rng := c.newRNG()

	positions := c.analyzer.Analyze(portfolio)
	net, gross := exposures(positions)

	leverage := 0.0
	if c.accountBalance > 0 {
		leverage = gross / c.accountBalance
	}

	// Monte Carlo is the primary estimate; VaRByMethod exposes the
	// historical and parametric figures for comparison.
	valueAtRisk := c.monteCarloVaR(portfolio, days, confidence, c.trials, rng)

	ratios := c.computeRatios(c.simulateReturns(portfolio, rng))

	c.log.Debug().
		Str("timeframe", timeframe).
		Int("days", days).
		Float64("var", valueAtRisk).
		Float64("leverage", leverage).
		Int("positions", len(portfolio)).
		Msg("portfolio risk calculated")

	return domain.RiskReport{
		NetExposure:       net,
		GrossExposure:     gross,
		Leverage:          leverage,
		VaR:               valueAtRisk,
		ExpectedShortfall: c.shortfall(valueAtRisk),
		MaxDrawdown:       ratios.MaxDrawdown,
		SharpeRatio:       ratios.SharpeRatio,
		SortinoRatio:      ratios.SortinoRatio,
		CalmarRatio:       ratios.CalmarRatio,
		VolatilityAnnual:  ratios.VolatilityAnnual,
		Positions:         positions,
		Recommendations:   c.generateRecommendations(leverage, valueAtRisk, ratios),
	}
}

// VaRByMethod exposes all three VaR estimates side by side so callers can
// compare the methods.
func (c *Calculator) VaRByMethod(portfolio []domain.Position, timeframe string, confidence float64) map[string]float64 {
	if len(portfolio) == 0 {
		return map[string]float64{"historical": 0, "parametric": 0, "monte_carlo": 0}
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.95
	}

	days := timeframeDays(timeframe)
	rng := c.newRNG()

	return map[string]float64{
		"historical":  c.historicalVaR(portfolio, days, confidence, rng),
		"parametric":  c.parametricVaR(portfolio, days, confidence),
		"monte_carlo": c.monteCarloVaR(portfolio, days, confidence, c.trials, rng),
	}
}

// RunScenarios evaluates the named stress scenarios against the
// portfolio. Unknown scenario names are logged and skipped.
func (c *Calculator) RunScenarios(portfolio []domain.Position, scenarios []string) (results map[string]domain.ScenarioResult) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("scenario analysis failed")
			results = map[string]domain.ScenarioResult{}
		}
	}()

	if len(scenarios) == 0 {
		scenarios = AllScenarios()
	}

	results = make(map[string]domain.ScenarioResult, len(scenarios))
	for _, name := range scenarios {
		switch name {
		case ScenarioMarketCrash:
			results[name] = c.scenarioMarketCrash(portfolio)
		case ScenarioHighVolatility:
			results[name] = c.scenarioHighVolatility(portfolio)
		case ScenarioTrendReversal:
			results[name] = c.scenarioTrendReversal(portfolio)
		case ScenarioCorrelationBreakdown:
			results[name] = c.scenarioCorrelationBreakdown(portfolio)
		default:
			c.log.Warn().Str("scenario", name).Msg("unknown scenario")
		}
	}
	return results
}

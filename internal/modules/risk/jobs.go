package risk

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/database"
	"github.com/tradeinsight/analytics/internal/marketdata"
	"github.com/tradeinsight/analytics/internal/scheduler"
	"github.com/tradeinsight/analytics/pkg/formulas"
)

// refreshLookback is the number of daily closes used for realized
// volatility and correlation estimates.
const refreshLookback = 252

// RefreshJob recomputes realized volatility and pairwise correlation
// estimates from local price history, persists them to the app database,
// and merges them into the live profile store.
type RefreshJob struct {
	history  *marketdata.HistoryStore
	profiles *ProfileStore
	db       *database.DB
	log      zerolog.Logger
}

// NewRefreshJob creates the profile refresh job
func NewRefreshJob(history *marketdata.HistoryStore, profiles *ProfileStore, db *database.DB, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		history:  history,
		profiles: profiles,
		db:       db,
		log:      log.With().Str("job", "risk-profile-refresh").Logger(),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "risk-profile-refresh"
}

// Run refreshes all volatility and correlation estimates. Symbols with
// too little history are skipped, not failed.
func (j *RefreshJob) Run() error {
	if !scheduler.IsFXTradingDay(time.Now()) {
		j.log.Debug().Msg("Market closed, skipping refresh")
		return nil
	}

	symbols, err := j.history.Symbols()
	if err != nil {
		return fmt.Errorf("failed to list history symbols: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	returnsBySymbol := make(map[string][]float64, len(symbols))

	var refreshed []string
	for _, symbol := range symbols {
		closes, err := j.history.GetCloses(symbol, refreshLookback+1)
		if err != nil {
			j.log.Warn().Err(err).Str("symbol", symbol).Msg("Skipping symbol")
			continue
		}

		returns := formulas.CalculateReturns(closes)
		if len(returns) < 30 {
			j.log.Debug().Str("symbol", symbol).Int("samples", len(returns)).Msg("Not enough history")
			continue
		}

		vol := formulas.AnnualizedVolatility(returns)
		j.profiles.SetVolatility(symbol, vol)
		returnsBySymbol[symbol] = returns
		refreshed = append(refreshed, symbol)

		_, err = j.db.Exec(`
			INSERT INTO volatility_estimates (symbol, annual_vol, sample_size, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(symbol) DO UPDATE SET
				annual_vol = excluded.annual_vol,
				sample_size = excluded.sample_size,
				updated_at = excluded.updated_at
		`, symbol, vol, len(returns), now)
		if err != nil {
			return fmt.Errorf("failed to persist volatility for %s: %w", symbol, err)
		}
	}

	var pairs int
	for i, a := range refreshed {
		for _, b := range refreshed[i+1:] {
			ra, rb := alignTails(returnsBySymbol[a], returnsBySymbol[b])
			corr := formulas.Correlation(ra, rb)
			j.profiles.SetCorrelation(a, b, corr)
			pairs++

			key := orderedPair(a, b)
			_, err := j.db.Exec(`
				INSERT INTO correlation_estimates (symbol_a, symbol_b, correlation, sample_size, updated_at)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(symbol_a, symbol_b) DO UPDATE SET
					correlation = excluded.correlation,
					sample_size = excluded.sample_size,
					updated_at = excluded.updated_at
			`, key.a, key.b, corr, len(ra), now)
			if err != nil {
				return fmt.Errorf("failed to persist correlation %s/%s: %w", a, b, err)
			}
		}
	}

	j.log.Info().
		Int("symbols", len(refreshed)).
		Int("pairs", pairs).
		Msg("Risk profiles refreshed")

	return nil
}

// alignTails truncates two return series to their common most-recent
// length so correlation is computed over the same window.
func alignTails(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[len(a)-n:], b[len(b)-n:]
}

// LoadEstimates seeds the profile store from previously persisted
// estimates at startup.
func LoadEstimates(db *database.DB, profiles *ProfileStore, log zerolog.Logger) error {
	rows, err := db.Query(`SELECT symbol, annual_vol FROM volatility_estimates`)
	if err != nil {
		return fmt.Errorf("failed to load volatility estimates: %w", err)
	}
	defer rows.Close()

	var vols int
	for rows.Next() {
		var symbol string
		var vol float64
		if err := rows.Scan(&symbol, &vol); err != nil {
			return fmt.Errorf("failed to scan volatility estimate: %w", err)
		}
		profiles.SetVolatility(symbol, vol)
		vols++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate volatility estimates: %w", err)
	}

	corrRows, err := db.Query(`SELECT symbol_a, symbol_b, correlation FROM correlation_estimates`)
	if err != nil {
		return fmt.Errorf("failed to load correlation estimates: %w", err)
	}
	defer corrRows.Close()

	var corrs int
	for corrRows.Next() {
		var a, b string
		var corr float64
		if err := corrRows.Scan(&a, &b, &corr); err != nil {
			return fmt.Errorf("failed to scan correlation estimate: %w", err)
		}
		profiles.SetCorrelation(a, b, corr)
		corrs++
	}
	if err := corrRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate correlation estimates: %w", err)
	}

	log.Info().Int("volatilities", vols).Int("correlations", corrs).Msg("Loaded persisted risk profiles")
	return nil
}

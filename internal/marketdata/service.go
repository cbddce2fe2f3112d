package marketdata

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/domain"
)

// Service resolves price series for analysis requests. It prefers the
// local history store and falls back to the upstream provider. Failures
// degrade to an empty series so callers can treat "no data" uniformly.
type Service struct {
	history  *HistoryStore
	provider *Provider
	log      zerolog.Logger
}

// NewService creates a new market-data service
func NewService(history *HistoryStore, provider *Provider, log zerolog.Logger) *Service {
	return &Service{
		history:  history,
		provider: provider,
		log:      log.With().Str("component", "marketdata").Logger(),
	}
}

// GetSeries returns a candle series for a symbol. The timeframe selects
// the provider interval; local history is daily only.
func (s *Service) GetSeries(ctx context.Context, symbol, timeframe string, lookbackDays int) domain.Series {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}

	// Daily analysis can be served from local history
	if timeframe == "" || timeframe == "1d" {
		series, err := s.history.GetSeries(symbol, lookbackDays)
		if err == nil && !series.IsEmpty() {
			return series
		}
		if err != nil {
			s.log.Debug().Err(err).Str("symbol", symbol).Msg("No local history, trying provider")
		}
	}

	interval := timeframe
	if interval == "" {
		interval = "1d"
	}

	series, err := s.provider.FetchSeries(ctx, symbol, interval, lookbackDays)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Provider fetch failed, returning empty series")
		return domain.Series{Symbol: symbol}
	}

	return series
}

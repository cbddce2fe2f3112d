package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/domain"
)

// Provider fetches OHLCV candles from the upstream market-data service.
type Provider struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewProvider creates a new market-data provider client
func NewProvider(baseURL string, log zerolog.Logger) *Provider {
	return &Provider{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "marketdata").Logger(),
	}
}

// chartResponse mirrors the provider's chart API payload
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// FetchSeries fetches OHLCV candles for a symbol. The interval maps to the
// analysis timeframe ("1d", "4h", "1h") and lookbackDays bounds the range.
func (p *Provider) FetchSeries(ctx context.Context, symbol, interval string, lookbackDays int) (domain.Series, error) {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", p.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Series{Symbol: symbol}, fmt.Errorf("failed to build chart request: %w", err)
	}

	q := req.URL.Query()
	q.Set("interval", interval)
	q.Set("range", fmt.Sprintf("%dd", lookbackDays))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; analytics)")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Series{Symbol: symbol}, fmt.Errorf("chart request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Series{Symbol: symbol}, fmt.Errorf("chart request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Series{Symbol: symbol}, fmt.Errorf("failed to read chart response: %w", err)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.Series{Symbol: symbol}, fmt.Errorf("failed to parse chart response: %w", err)
	}

	series := domain.Series{Symbol: symbol}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		// No data is a valid result, not an error
		return series, nil
	}

	result := parsed.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		// Skip gaps (null quotes for halted/holiday bars)
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}

		volume := 0.0
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}

		series.Candles = append(series.Candles, domain.Candle{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      *quote.Open[i],
			High:      *quote.High[i],
			Low:       *quote.Low[i],
			Close:     *quote.Close[i],
			Volume:    volume,
		})
	}

	return series, nil
}

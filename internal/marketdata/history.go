package marketdata

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/domain"
)

// HistoryStore provides access to locally synced per-symbol OHLCV history.
// Each symbol lives in its own SQLite file under the history directory.
type HistoryStore struct {
	historyDir string
	log        zerolog.Logger
}

// NewHistoryStore creates a new history store accessor
func NewHistoryStore(historyDir string, log zerolog.Logger) *HistoryStore {
	return &HistoryStore{
		historyDir: historyDir,
		log:        log.With().Str("component", "history_store").Logger(),
	}
}

// dbPath builds the SQLite file path for a symbol
func (h *HistoryStore) dbPath(symbol string) string {
	safe := strings.ReplaceAll(symbol, "/", "_")
	return filepath.Join(h.historyDir, safe+".db")
}

func (h *HistoryStore) open(symbol string) (*sql.DB, error) {
	path := h.dbPath(symbol)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no history database for %s: %w", symbol, err)
	}

	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database for %s: %w", symbol, err)
	}

	return db, nil
}

// Symbols lists all symbols with a local history database.
func (h *HistoryStore) Symbols() ([]string, error) {
	entries, err := os.ReadDir(h.historyDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var symbols []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		symbols = append(symbols, strings.TrimSuffix(e.Name(), ".db"))
	}

	return symbols, nil
}

// GetSeries fetches the most recent candles for a symbol, time-ascending.
func (h *HistoryStore) GetSeries(symbol string, limit int) (domain.Series, error) {
	series := domain.Series{Symbol: symbol}

	db, err := h.open(symbol)
	if err != nil {
		return series, err
	}
	defer db.Close()

	query := `
		SELECT date, open_price, high_price, low_price, close_price, volume
		FROM daily_prices
		ORDER BY date DESC
		LIMIT ?
	`

	rows, err := db.Query(query, limit)
	if err != nil {
		return series, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	var candles []domain.Candle
	for rows.Next() {
		var date string
		var c domain.Candle
		var volume sql.NullFloat64

		if err := rows.Scan(&date, &c.Open, &c.High, &c.Low, &c.Close, &volume); err != nil {
			return series, fmt.Errorf("failed to scan daily price: %w", err)
		}

		ts, err := time.Parse("2006-01-02", date)
		if err != nil {
			h.log.Warn().Str("symbol", symbol).Str("date", date).Msg("Skipping row with bad date")
			continue
		}
		c.Timestamp = ts.UTC()

		if volume.Valid {
			c.Volume = volume.Float64
		}

		candles = append(candles, c)
	}
	if err := rows.Err(); err != nil {
		return series, fmt.Errorf("failed to iterate daily prices: %w", err)
	}

	// Rows come newest-first; reverse to time-ascending
	for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
		candles[i], candles[j] = candles[j], candles[i]
	}
	series.Candles = candles

	return series, nil
}

// GetCloses fetches the most recent close prices, time-ascending.
func (h *HistoryStore) GetCloses(symbol string, limit int) ([]float64, error) {
	series, err := h.GetSeries(symbol, limit)
	if err != nil {
		return nil, err
	}
	return series.Closes(), nil
}

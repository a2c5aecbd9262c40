package feeds

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const stooqDefaultBaseURL = "https://stooq.com"

// StocksFetcher pulls delayed quotes from the stooq CSV endpoint, which
// needs no API key. One request covers all configured symbols.
type StocksFetcher struct {
	BaseURL string
	Symbols []string
	Client  *http.Client
}

// NewStocksFetcher returns a fetcher for the given ticker symbols.
func NewStocksFetcher(symbols []string) *StocksFetcher {
	return &StocksFetcher{
		BaseURL: stooqDefaultBaseURL,
		Symbols: symbols,
		Client:  http.DefaultClient,
	}
}

// Fetch implements Fetcher. Returns []StockQuote.
//
// CSV columns: Symbol,Date,Time,Open,High,Low,Close,Volume. A close of
// "N/D" marks an unknown symbol and is skipped.
func (f *StocksFetcher) Fetch(ctx context.Context) (any, error) {
	if len(f.Symbols) == 0 {
		return nil, fmt.Errorf("stocks: no symbols configured")
	}

	url := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2ohlcv&h&e=csv",
		f.BaseURL, strings.ToLower(strings.Join(f.Symbols, "+")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stocks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stocks: unexpected status %s", resp.Status)
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("stocks: parse csv: %w", err)
	}

	var quotes []StockQuote
	for i, row := range rows {
		if i == 0 || len(row) < 7 { // header row
			continue
		}
		closePrice, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			continue // "N/D" for unknown symbols
		}
		open, _ := strconv.ParseFloat(row[3], 64)
		q := StockQuote{
			Symbol: strings.ToUpper(row[0]),
			Price:  closePrice,
		}
		if open > 0 {
			q.Change = closePrice - open
			q.ChangePercent = q.Change / open * 100
		}
		quotes = append(quotes, q)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("stocks: no quotes in response")
	}
	return quotes, nil
}

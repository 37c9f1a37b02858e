package collector

import "time"

// DailyClose is one raw daily closing price for a single symbol, before
// alignment across tickers.
type DailyClose struct {
	Date  time.Time
	Close float64
}

// Fetcher defines the market-data source.
type Fetcher interface {
	// FetchDailyCloses returns the daily closes from start to now, oldest first.
	FetchDailyCloses(symbol string, start time.Time) ([]DailyClose, error)
	// FetchLastPrice returns the most recent trade price, pre/post market
	// sessions included.
	FetchLastPrice(symbol string) (float64, error)
	Name() string
}

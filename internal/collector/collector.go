package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

// Tracked tickers. The FX pair feeds the KRW valuation, not the indicators.
const (
	TickerTQQQ = "TQQQ"
	TickerQQQ  = "QQQ"
	TickerQLD  = "QLD"
	TickerFX   = "KRW=X"
)

// ErrNoUsableHistory means the aligned series came back empty; downstream
// computation halts rather than showing partial results.
var ErrNoUsableHistory = errors.New("no usable price history after alignment")

// MockFetcher returns canned data for development and testing.
type MockFetcher struct {
	Daily map[string][]DailyClose
	Last  map[string]float64
	// LastErr simulates a live-quote outage per symbol.
	LastErr map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(symbol string, _ time.Time) ([]DailyClose, error) {
	closes, ok := m.Daily[symbol]
	if !ok {
		return nil, fmt.Errorf("mock: no daily data for %s", symbol)
	}
	return closes, nil
}

func (m *MockFetcher) FetchLastPrice(symbol string) (float64, error) {
	if err := m.LastErr[symbol]; err != nil {
		return 0, err
	}
	price, ok := m.Last[symbol]
	if !ok {
		return 0, fmt.Errorf("mock: no live price for %s", symbol)
	}
	return price, nil
}

// Collector builds immutable snapshots from the fetcher. It never mutates a
// snapshot after returning it.
type Collector struct {
	Fetcher   Fetcher
	Start     time.Time
	DefaultFX float64
}

// NewCollector creates a Collector fetching history from start onward.
func NewCollector(fetcher Fetcher, start time.Time, defaultFX float64) *Collector {
	return &Collector{Fetcher: fetcher, Start: start, DefaultFX: defaultFX}
}

// Refresh fetches everything and assembles a new snapshot: TQQQ and QQQ
// aligned by trading day (days missing either are dropped), QLD attached
// where available, FX forward-filled and defaulted when absent, and live
// quotes with a deterministic fallback to the last daily close.
func (c *Collector) Refresh() (*model.Snapshot, error) {
	tqqq, err := c.Fetcher.FetchDailyCloses(TickerTQQQ, c.Start)
	if err != nil {
		return nil, fmt.Errorf("fetch TQQQ history: %w", err)
	}
	qqq, err := c.Fetcher.FetchDailyCloses(TickerQQQ, c.Start)
	if err != nil {
		return nil, fmt.Errorf("fetch QQQ history: %w", err)
	}

	qld, err := c.Fetcher.FetchDailyCloses(TickerQLD, c.Start)
	if err != nil {
		log.Printf("[WARN] QLD history unavailable: %v", err)
	}
	fx, err := c.Fetcher.FetchDailyCloses(TickerFX, c.Start)
	if err != nil {
		log.Printf("[WARN] USD/KRW history unavailable, defaulting to %.0f: %v", c.DefaultFX, err)
	}

	series := c.align(tqqq, qqq, qld, fx)
	if len(series.Rows) == 0 {
		return nil, ErrNoUsableHistory
	}

	return &model.Snapshot{
		Series: series,
		Live:   c.liveQuotes(&series),
	}, nil
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func (c *Collector) align(tqqq, qqq, qld, fx []DailyClose) model.PriceSeries {
	qqqByDay := make(map[string]float64, len(qqq))
	for _, d := range qqq {
		qqqByDay[dayKey(d.Date)] = d.Close
	}
	qldByDay := make(map[string]float64, len(qld))
	for _, d := range qld {
		qldByDay[dayKey(d.Date)] = d.Close
	}
	fxByDay := make(map[string]float64, len(fx))
	for _, d := range fx {
		fxByDay[dayKey(d.Date)] = d.Close
	}

	lastFX := c.DefaultFX
	rows := make([]model.PriceRow, 0, len(tqqq))
	for _, d := range tqqq {
		key := dayKey(d.Date)
		qqqClose, ok := qqqByDay[key]
		if !ok {
			continue
		}
		if rate, ok := fxByDay[key]; ok && rate > 0 {
			lastFX = rate
		}
		row := model.PriceRow{
			Date:   d.Date,
			TQQQ:   d.Close,
			QQQ:    qqqClose,
			USDKRW: lastFX,
		}
		if qldClose, ok := qldByDay[key]; ok {
			row.QLD = qldClose
			row.HasQLD = true
		}
		rows = append(rows, row)
	}
	return model.PriceSeries{Rows: rows, FetchedAt: time.Now()}
}

// liveQuotes fetches last-trade prices, falling back to the series' final
// close when a symbol has no live quote. The outage never surfaces as an
// error.
func (c *Collector) liveQuotes(series *model.PriceSeries) model.LiveQuotes {
	last, _ := series.Last()
	quotes := model.LiveQuotes{
		TQQQ:   last.TQQQ,
		QQQ:    last.QQQ,
		QLD:    last.QLD,
		USDKRW: last.USDKRW,
	}
	if p, err := c.Fetcher.FetchLastPrice(TickerTQQQ); err == nil && p > 0 {
		quotes.TQQQ = p
	} else if err != nil {
		log.Printf("[WARN] live TQQQ unavailable, using last close: %v", err)
	}
	if p, err := c.Fetcher.FetchLastPrice(TickerQQQ); err == nil && p > 0 {
		quotes.QQQ = p
	} else if err != nil {
		log.Printf("[WARN] live QQQ unavailable, using last close: %v", err)
	}
	if p, err := c.Fetcher.FetchLastPrice(TickerQLD); err == nil && p > 0 {
		quotes.QLD = p
	} else if err != nil {
		log.Printf("[WARN] live QLD unavailable, using last close: %v", err)
	}
	return quotes
}

package model

import "time"

// PriceRow is one aligned trading day of closing prices for the tracked
// tickers plus the USD/KRW rate. QLD coverage starts later than the others,
// so its close is optional per row.
type PriceRow struct {
	Date   time.Time
	TQQQ   float64
	QQQ    float64
	QLD    float64
	HasQLD bool
	USDKRW float64
}

// PriceSeries holds aligned daily closes in strictly increasing date order.
type PriceSeries struct {
	Rows      []PriceRow
	FetchedAt time.Time
}

// Last returns the most recent row. ok is false for an empty series.
func (s *PriceSeries) Last() (row PriceRow, ok bool) {
	if len(s.Rows) == 0 {
		return PriceRow{}, false
	}
	return s.Rows[len(s.Rows)-1], true
}

// LiveQuotes holds the most recent trade price per ticker. Values fall back
// to the last daily close when no live quote is available, so they are always
// usable for display.
type LiveQuotes struct {
	TQQQ   float64
	QQQ    float64
	QLD    float64
	USDKRW float64
}

// Snapshot is one immutable refresh result: the daily series plus live
// quotes. All computation within a single pass reads from the same snapshot.
type Snapshot struct {
	Series PriceSeries
	Live   LiveQuotes
}

// Quote returns the live price for a ticker, 0 if the ticker is unknown.
func (s *Snapshot) Quote(ticker string) float64 {
	switch ticker {
	case "TQQQ":
		return s.Live.TQQQ
	case "QQQ":
		return s.Live.QQQ
	case "QLD":
		return s.Live.QLD
	default:
		return 0
	}
}

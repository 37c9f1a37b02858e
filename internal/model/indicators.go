package model

import "time"

// IndicatorRow holds the derived indicators for one trading day. Rows exist
// only for days where the full 200-day lookback is available.
type IndicatorRow struct {
	Date     time.Time
	QQQClose float64
	MA50     float64
	MA200    float64
	ExitLine float64 // MA200 * 0.975, structural break threshold
	RSI3     float64
	Accel    bool // slope of the 20-day MA is itself rising
}

package calculator

import (
	"errors"
	"math"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

const (
	ma50Window  = 50
	ma200Window = 200
	momentumMA  = 20
	rsiPeriod   = 3
	exitBuffer  = 0.975 // 2.5% below MA200
	minLookback = ma200Window
)

// ErrInsufficientHistory is returned when the aligned series is too short to
// emit a single indicator row.
var ErrInsufficientHistory = errors.New("fewer than 200 trading days of history")

// Compute derives the indicator series from an aligned price series. It is a
// pure function of its input: days without the full 200-day lookback are
// dropped, not interpolated, so the output starts at the 200th trading day.
func Compute(series *model.PriceSeries) ([]model.IndicatorRow, error) {
	n := len(series.Rows)
	if n < minLookback {
		return nil, ErrInsufficientHistory
	}

	closes := make([]float64, n)
	for i, r := range series.Rows {
		closes[i] = r.QQQ
	}

	ma50 := RollingMean(closes, ma50Window)
	ma200 := RollingMean(closes, ma200Window)
	rsi := RSISeries(closes, rsiPeriod)
	accel := AccelSeries(closes, momentumMA)

	rows := make([]model.IndicatorRow, 0, n-minLookback+1)
	for i := minLookback - 1; i < n; i++ {
		if math.IsNaN(ma50[i]) || math.IsNaN(ma200[i]) {
			continue
		}
		rows = append(rows, model.IndicatorRow{
			Date:     series.Rows[i].Date,
			QQQClose: closes[i],
			MA50:     ma50[i],
			MA200:    ma200[i],
			ExitLine: ma200[i] * exitBuffer,
			RSI3:     rsi[i],
			Accel:    accel[i],
		})
	}
	if len(rows) == 0 {
		return nil, ErrInsufficientHistory
	}
	return rows, nil
}

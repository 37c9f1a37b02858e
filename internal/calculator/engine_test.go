package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

func seriesFromCloses(closes []float64) *model.PriceSeries {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rows := make([]model.PriceRow, len(closes))
	for i, c := range closes {
		rows[i] = model.PriceRow{
			Date:   base.AddDate(0, 0, i),
			TQQQ:   c / 8,
			QQQ:    c,
			USDKRW: 1450,
		}
	}
	return &model.PriceSeries{Rows: rows}
}

func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func TestCompute_RequiresFullLookback(t *testing.T) {
	if _, err := Compute(seriesFromCloses(flatCloses(199, 400))); err != ErrInsufficientHistory {
		t.Fatalf("expected ErrInsufficientHistory for 199 rows, got %v", err)
	}

	rows, err := Compute(seriesFromCloses(flatCloses(250, 400)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Row for day 200 and every day after it, nothing before.
	if len(rows) != 51 {
		t.Fatalf("expected 51 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if math.IsNaN(r.MA50) || math.IsNaN(r.MA200) {
			t.Fatalf("undefined moving average in emitted row %v", r.Date)
		}
	}
}

func TestCompute_FlatSeriesValues(t *testing.T) {
	rows, err := Compute(seriesFromCloses(flatCloses(200, 400)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := rows[len(rows)-1]
	if last.MA50 != 400 || last.MA200 != 400 {
		t.Errorf("flat series should have MA == price, got MA50=%.2f MA200=%.2f", last.MA50, last.MA200)
	}
	want := 400 * 0.975
	if math.Abs(last.ExitLine-want) > 1e-9 {
		t.Errorf("exit line: want %.4f, got %.4f", want, last.ExitLine)
	}
	// No gains, no losses: epsilon substitution keeps RS finite and RSI at 0.
	if math.IsNaN(last.RSI3) || math.IsInf(last.RSI3, 0) {
		t.Errorf("RSI must be finite on a flat series, got %v", last.RSI3)
	}
	if last.Accel {
		t.Error("flat series cannot have accelerating momentum")
	}
}

func TestCompute_Idempotent(t *testing.T) {
	closes := make([]float64, 260)
	for i := range closes {
		closes[i] = 300 + 50*math.Sin(float64(i)/9)
	}
	s := seriesFromCloses(closes)
	a, err := Compute(s)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	b, err := Compute(s)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRSISeries_Bounds(t *testing.T) {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 30*math.Sin(float64(i)/3) + float64(i%7)
	}
	for i, v := range RSISeries(closes, 3) {
		if v < 0 || v > 100 {
			t.Fatalf("RSI out of [0,100] at %d: %v", i, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("RSI not finite at %d: %v", i, v)
		}
	}
}

func TestRSISeries_AllGainsApproaches100(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104, 105}
	rsi := RSISeries(closes, 3)
	last := rsi[len(rsi)-1]
	if last <= 99 || last >= 100 {
		t.Errorf("pure-gain RSI should approach but not reach 100, got %v", last)
	}
}

func TestRSISeries_InsufficientDataNeutral(t *testing.T) {
	rsi := RSISeries([]float64{100, 101}, 3)
	for i, v := range rsi {
		if v != 50 {
			t.Errorf("index %d: want neutral 50, got %v", i, v)
		}
	}
}

func TestAccelSeries(t *testing.T) {
	// Quadratic growth: each day's MA slope exceeds the slope two days back.
	accelerating := make([]float64, 60)
	for i := range accelerating {
		accelerating[i] = 100 + float64(i*i)
	}
	acc := AccelSeries(accelerating, 20)
	if !acc[len(acc)-1] {
		t.Error("expected acceleration on a quadratic uptrend")
	}

	// Linear growth: slope of the MA is constant, strict comparison fails.
	linear := make([]float64, 60)
	for i := range linear {
		linear[i] = 100 + float64(i)
	}
	lin := AccelSeries(linear, 20)
	if lin[len(lin)-1] {
		t.Error("constant slope must not count as acceleration")
	}
}

func TestCalculateSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	got, err := CalculateSMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("SMA(3) of tail [3 4 5]: want 4, got %v", got)
	}
	if _, err := CalculateSMA(prices, 6); err == nil {
		t.Error("expected error for period longer than series")
	}
	if _, err := CalculateSMA(prices, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestSafeQuotient(t *testing.T) {
	if got := SafeQuotient(10, 4, 0); got != 2.5 {
		t.Errorf("want 2.5, got %v", got)
	}
	if got := SafeQuotient(10, 0, -1); got != -1 {
		t.Errorf("zero denominator: want fallback -1, got %v", got)
	}
}

package calculator

import (
	"errors"
	"math"
)

// CalculateSMA computes the simple moving average of the given prices over
// the specified trailing period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// RollingMean computes the trailing simple moving average at every index.
// Positions without a full window hold NaN.
func RollingMean(prices []float64, window int) []float64 {
	out := make([]float64, len(prices))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 0 || len(prices) < window {
		return out
	}
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

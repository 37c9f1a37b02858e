package calculator

import "math"

// lossEpsilon replaces a zero average loss so RS stays finite and RSI
// approaches, but never reaches, 100.
const lossEpsilon = 0.00001

// neutralRSI is the sentinel for days where RSI is undefined.
const neutralRSI = 50.0

// RSISeries computes the simple-average RSI over the given period at every
// index. Deltas are averaged over a plain rolling window (no Wilder
// smoothing, matching a short 3-period oscillator). Positions without a full
// window of deltas hold the neutral value 50.
func RSISeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = neutralRSI
	}
	if period <= 0 || len(closes) < period+1 {
		return out
	}
	for i := period; i < len(closes); i++ {
		var gain, loss float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gain += change
			} else {
				loss -= change
			}
		}
		avgGain := gain / float64(period)
		avgLoss := loss / float64(period)
		if avgLoss == 0 {
			avgLoss = lossEpsilon
		}
		rs := avgGain / avgLoss
		if math.IsNaN(rs) || math.IsInf(rs, 0) {
			continue // keep neutral 50
		}
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out
}

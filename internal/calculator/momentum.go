package calculator

import "math"

// slopeLag is how many days back the slope is compared against.
const slopeLag = 2

// AccelSeries reports, per index, whether the momentum of the 20-day moving
// average is accelerating: the 1-day percentage slope of the MA must exceed
// the slope measured slopeLag days earlier. Positions without enough history
// are false.
func AccelSeries(closes []float64, maWindow int) []bool {
	ma := RollingMean(closes, maWindow)
	slope := make([]float64, len(ma))
	for i := range slope {
		slope[i] = math.NaN()
		if i > 0 && !math.IsNaN(ma[i]) && !math.IsNaN(ma[i-1]) && ma[i-1] != 0 {
			slope[i] = (ma[i] - ma[i-1]) / ma[i-1] * 100
		}
	}
	out := make([]bool, len(closes))
	for i := slopeLag; i < len(slope); i++ {
		if math.IsNaN(slope[i]) || math.IsNaN(slope[i-slopeLag]) {
			continue
		}
		out[i] = slope[i] > slope[i-slopeLag]
	}
	return out
}

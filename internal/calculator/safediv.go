package calculator

// SafeQuotient divides num by den, returning fallback when the denominator
// is zero. Every division in the repo whose denominator can legitimately be
// zero (return rate with nothing invested, PnL percent with a zero average
// price) routes through here with an explicit sentinel.
func SafeQuotient(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

package strategy

import "github.com/jyoon8505-jpg/tqqq-bot/internal/model"

// Fixed rule parameters. The strategy is hand-specified: entry thresholds
// depend on the regime, exit levels are constants against the fill price.
const (
	BullRSIThreshold = 90.0
	BearRSIThreshold = 80.0

	StopLossPct = -6.0
	TakeHalfPct = 6.0
	TakeFullPct = 12.0
)

// DefaultRisk returns the exit levels attached to every signal.
func DefaultRisk() model.RiskParams {
	return model.RiskParams{
		StopLossPct: StopLossPct,
		TakeHalfPct: TakeHalfPct,
		TakeFullPct: TakeFullPct,
	}
}

// Assess classifies the latest indicator row into a regime and an entry
// decision. Both computations use the daily bar close: an intraday quote may
// override what is displayed, never what is decided.
//
// The entry is conjunctive: a low RSI during a stalling pullback is not
// enough, momentum must also be accelerating.
func Assess(ind model.IndicatorRow) *model.Assessment {
	regime := model.RegimeBear
	threshold := BearRSIThreshold
	if ind.QQQClose >= ind.MA200 {
		regime = model.RegimeBull
		threshold = BullRSIThreshold
	}

	return &model.Assessment{
		Date:         ind.Date,
		QQQClose:     ind.QQQClose,
		MA50:         ind.MA50,
		MA200:        ind.MA200,
		ExitLine:     ind.ExitLine,
		RSI3:         ind.RSI3,
		RSIThreshold: threshold,
		Accel:        ind.Accel,
		Regime:       regime,
		Enter:        ind.RSI3 < threshold && ind.Accel,
		Risk:         DefaultRisk(),
	}
}

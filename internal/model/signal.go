package model

import "time"

// Regime is the binary trend classification against MA200.
type Regime string

const (
	RegimeBull Regime = "Bull"
	RegimeBear Regime = "Bear"
)

// RiskParams are the exit levels attached to every entry signal, in percent
// relative to the eventual fill price.
type RiskParams struct {
	StopLossPct float64
	TakeHalfPct float64
	TakeFullPct float64
}

// Assessment is the daily signal decision. Regime and RSI are computed from
// the daily bar close for stability; live prices are display-only.
type Assessment struct {
	Date         time.Time
	QQQClose     float64
	MA50         float64
	MA200        float64
	ExitLine     float64
	RSI3         float64
	RSIThreshold float64
	Accel        bool
	Regime       Regime
	Enter        bool
	Risk         RiskParams
}

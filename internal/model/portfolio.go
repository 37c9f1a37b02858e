package model

import "time"

// Position is one long-horizon account holding. Level records the highest
// 20%-return tier already acted on, so the same tier never re-alerts once
// the user advances it.
type Position struct {
	Account  int
	Ticker   string
	Shares   float64
	AvgPrice float64
	Level    int
}

// TierAlert suggests a partial liquidation after the return crossed into a
// new 20%-wide tier.
type TierAlert struct {
	Account      int
	Ticker       string
	PnLPct       float64
	TargetTier   int
	SuggestedQty int // 10% of the current holding, floored
}

// AccountView is the per-account valuation for display.
type AccountView struct {
	Account      int
	Ticker       string
	Shares       float64
	AvgPrice     float64
	CurrentPrice float64
	PnLPct       float64
	EvalKRW      float64
}

// PortfolioSummary aggregates the long-horizon mode in KRW.
type PortfolioSummary struct {
	InvestedKRW   float64
	EvalKRW       float64
	CashKRW       float64
	TotalAssetKRW float64
	PnLKRW        float64
	ReturnRate    float64 // percent, 0 when nothing is invested
}

// LogEntry is one line of the long-horizon trade log.
type LogEntry struct {
	Date    time.Time
	Account int
	Action  string // "Buy", "Sell(TP)", "Sell(SL)"
	Qty     float64
	Price   float64
	Amount  float64
	Note    string
}

package model

import "time"

// Side distinguishes buy records from manually logged sells.
type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// TradeStatus is the lifecycle state of a trade record. Transitions are
// Open -> HalfOpen -> Closed or Open -> Closed, nothing else.
type TradeStatus string

const (
	StatusOpen     TradeStatus = "Open"
	StatusHalfOpen TradeStatus = "Half_Open"
	StatusClosed   TradeStatus = "Closed"
)

// TradeRecord is one entry in the short-term trade journal. IDs are assigned
// monotonically and never reused. Profit accumulates across partial exits.
type TradeRecord struct {
	ID       int64
	Date     time.Time
	Side     Side
	Price    float64
	Shares   float64
	TPHalf   float64 // target prices fixed at entry
	TPFull   float64
	StopLoss float64
	Status   TradeStatus
	Profit   float64
	Note     string
}

// IsOpen reports whether the record still holds shares.
func (r *TradeRecord) IsOpen() bool {
	return r.Status == StatusOpen || r.Status == StatusHalfOpen
}

// PositionView is the per-record reconciliation against a current price.
type PositionView struct {
	ID            int64
	Date          time.Time
	Status        TradeStatus
	Shares        float64
	Price         float64
	CurrentPrice  float64
	ReturnPct     float64
	Value         float64
	UnrealizedPnL float64
	ExpHalf       float64
	ExpFull       float64
	ExpSL         float64
	HoldingDays   int
}

// JournalSummary aggregates the whole journal against a current price.
type JournalSummary struct {
	TotalInvested  float64
	TotalEval      float64
	UnrealizedPnL  float64
	RealizedProfit float64 // over all records, closed ones included
	ReturnRate     float64 // percent, 0 when nothing is invested
}

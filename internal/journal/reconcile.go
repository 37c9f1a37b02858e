package journal

import (
	"time"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/calculator"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

// OpenPositions reconciles every open or half-open record against the
// current price. today anchors the holding-day count (calendar days).
func OpenPositions(trades []model.TradeRecord, currentPrice float64, today time.Time) []model.PositionView {
	var views []model.PositionView
	for _, r := range trades {
		if !r.IsOpen() || r.Side != model.SideBuy {
			continue
		}
		views = append(views, model.PositionView{
			ID:            r.ID,
			Date:          r.Date,
			Status:        r.Status,
			Shares:        r.Shares,
			Price:         r.Price,
			CurrentPrice:  currentPrice,
			ReturnPct:     calculator.SafeQuotient(currentPrice-r.Price, r.Price, 0) * 100,
			Value:         currentPrice * r.Shares,
			UnrealizedPnL: (currentPrice - r.Price) * r.Shares,
			ExpHalf:       r.TPHalf,
			ExpFull:       r.TPFull,
			ExpSL:         r.StopLoss,
			HoldingDays:   int(today.Sub(r.Date).Hours() / 24),
		})
	}
	return views
}

// Summarize aggregates the whole journal: invested and evaluation totals
// over open records, realized profit over all records. The return rate is 0
// when nothing is invested.
func Summarize(trades []model.TradeRecord, currentPrice float64) model.JournalSummary {
	var sum model.JournalSummary
	for _, r := range trades {
		sum.RealizedProfit += r.Profit
		if !r.IsOpen() || r.Side != model.SideBuy {
			continue
		}
		sum.TotalInvested += r.Price * r.Shares
		sum.TotalEval += currentPrice * r.Shares
	}
	sum.UnrealizedPnL = sum.TotalEval - sum.TotalInvested
	sum.ReturnRate = calculator.SafeQuotient(sum.UnrealizedPnL, sum.TotalInvested, 0) * 100
	return sum
}

package portfolio

import (
	"math"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/calculator"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

const (
	tierWidthPct  = 20.0
	tierSellRatio = 0.1
)

// QuoteFunc resolves a current price per ticker. A return of 0 means no
// usable price and the position is skipped.
type QuoteFunc func(ticker string) float64

// EvaluateTiers emits one alert per position whose cumulative return crossed
// into a 20%-wide tier above the last tier already acted on. The evaluator
// never advances the stored level itself; that stays an explicit user action,
// so an unacknowledged alert repeats on the next run.
//
// Tiers floor toward negative infinity: a -5% return targets tier -1, which
// can never exceed a non-negative stored level, so drawdowns stay silent.
func EvaluateTiers(positions []model.Position, quote QuoteFunc) []model.TierAlert {
	var alerts []model.TierAlert
	for _, p := range positions {
		cur := quote(p.Ticker)
		if cur <= 0 || p.AvgPrice <= 0 || p.Shares <= 0 {
			continue
		}
		pnlPct := calculator.SafeQuotient(cur-p.AvgPrice, p.AvgPrice, 0) * 100
		target := int(math.Floor(pnlPct / tierWidthPct))
		if target <= p.Level {
			continue
		}
		alerts = append(alerts, model.TierAlert{
			Account:      p.Account,
			Ticker:       p.Ticker,
			PnLPct:       pnlPct,
			TargetTier:   target,
			SuggestedQty: int(math.Floor(p.Shares * tierSellRatio)),
		})
	}
	return alerts
}

// Valuations computes the per-account KRW view against current prices.
func Valuations(positions []model.Position, quote QuoteFunc, usdKRW float64) []model.AccountView {
	views := make([]model.AccountView, 0, len(positions))
	for _, p := range positions {
		cur := quote(p.Ticker)
		views = append(views, model.AccountView{
			Account:      p.Account,
			Ticker:       p.Ticker,
			Shares:       p.Shares,
			AvgPrice:     p.AvgPrice,
			CurrentPrice: cur,
			PnLPct:       calculator.SafeQuotient(cur-p.AvgPrice, p.AvgPrice, 0) * 100,
			EvalKRW:      p.Shares * cur * usdKRW,
		})
	}
	return views
}

// Summarize aggregates the long-horizon mode in KRW.
func Summarize(positions []model.Position, quote QuoteFunc, usdKRW, cashKRW float64) model.PortfolioSummary {
	var sum model.PortfolioSummary
	sum.CashKRW = cashKRW
	for _, p := range positions {
		sum.InvestedKRW += p.Shares * p.AvgPrice * usdKRW
		sum.EvalKRW += p.Shares * quote(p.Ticker) * usdKRW
	}
	sum.TotalAssetKRW = cashKRW + sum.EvalKRW
	sum.PnLKRW = sum.EvalKRW - sum.InvestedKRW
	sum.ReturnRate = calculator.SafeQuotient(sum.PnLKRW, sum.InvestedKRW, 0) * 100
	return sum
}

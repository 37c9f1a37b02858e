package notifier

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

func krw(v float64) string { return humanize.CommafWithDigits(v, 0) }

// FormatAssessment renders the daily signal decision. The regime line uses
// the bar close the decision was made on; the live quote is shown separately.
func FormatAssessment(a *model.Assessment, live model.LiveQuotes) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🚦 <b>Daily signal</b> | %s\n\n", a.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Regime: <b>%s</b> (close %.2f vs MA200 %.2f)\n", a.Regime, a.QQQClose, a.MA200))
	b.WriteString(fmt.Sprintf("MA50: %.2f | Exit line: %.2f\n", a.MA50, a.ExitLine))
	b.WriteString(fmt.Sprintf("RSI(3): %.2f (threshold %.0f)\n", a.RSI3, a.RSIThreshold))
	b.WriteString(fmt.Sprintf("Momentum accel: %v\n", a.Accel))
	b.WriteString(fmt.Sprintf("QQQ live: $%.2f | TQQQ live: $%.2f\n\n", live.QQQ, live.TQQQ))

	if a.Enter {
		b.WriteString("🔥 <b>ENTRY</b> — buy at today's close (LOC)\n")
		b.WriteString(fmt.Sprintf("SL %.0f%% / half TP +%.0f%% / full TP +%.0f%%\n",
			a.Risk.StopLossPct, a.Risk.TakeHalfPct, a.Risk.TakeFullPct))
	} else {
		b.WriteString("💤 Hold — entry conditions not met\n")
	}
	if a.QQQClose < a.ExitLine {
		b.WriteString("🚨 Close is below the exit line — structural break\n")
	}
	return b.String()
}

// FormatPositions renders the open journal positions with their exit targets.
func FormatPositions(views []model.PositionView) string {
	if len(views) == 0 {
		return "📦 No open positions"
	}
	var b strings.Builder
	b.WriteString("📦 <b>Open positions</b>\n\n")
	for _, v := range views {
		b.WriteString(fmt.Sprintf("#%d %s | %g sh @ $%.2f | D+%d\n",
			v.ID, v.Date.Format("2006-01-02"), v.Shares, v.Price, v.HoldingDays))
		b.WriteString(fmt.Sprintf("   now $%.2f (%+.2f%%) | TP½ $%.2f | TP $%.2f | SL $%.2f\n",
			v.CurrentPrice, v.ReturnPct, v.ExpHalf, v.ExpFull, v.ExpSL))
		if v.Status == model.StatusHalfOpen {
			b.WriteString("   (half already taken)\n")
		}
	}
	return b.String()
}

// FormatJournalSummary renders the short-term aggregates.
func FormatJournalSummary(sum model.JournalSummary) string {
	var b strings.Builder
	b.WriteString("💰 <b>Assets (short-term)</b>\n\n")
	b.WriteString(fmt.Sprintf("Invested: $%.2f\n", sum.TotalInvested))
	b.WriteString(fmt.Sprintf("Evaluation: $%.2f (%+.2f)\n", sum.TotalEval, sum.UnrealizedPnL))
	b.WriteString(fmt.Sprintf("Realized: $%.2f\n", sum.RealizedProfit))
	b.WriteString(fmt.Sprintf("Return: %.2f%%\n", sum.ReturnRate))
	return b.String()
}

// FormatPortfolio renders the long-horizon accounts and KRW totals.
func FormatPortfolio(views []model.AccountView, sum model.PortfolioSummary) string {
	var b strings.Builder
	b.WriteString("🚜 <b>Long-horizon portfolio</b>\n\n")
	for _, v := range views {
		b.WriteString(fmt.Sprintf("#%d %s: %g sh @ $%.2f | now $%.2f (%+.2f%%) | ₩%s\n",
			v.Account, v.Ticker, v.Shares, v.AvgPrice, v.CurrentPrice, v.PnLPct, krw(v.EvalKRW)))
	}
	b.WriteString(fmt.Sprintf("\nCash: ₩%s\n", krw(sum.CashKRW)))
	b.WriteString(fmt.Sprintf("Total asset: ₩%s\n", krw(sum.TotalAssetKRW)))
	b.WriteString(fmt.Sprintf("Equity PnL: ₩%s (%.2f%%)\n", krw(sum.PnLKRW), sum.ReturnRate))
	return b.String()
}

// FormatTierAlerts renders tier take-profit suggestions.
func FormatTierAlerts(alerts []model.TierAlert) string {
	if len(alerts) == 0 {
		return "✅ No tier alerts"
	}
	var b strings.Builder
	b.WriteString("🔔 <b>Tier take-profit</b>\n\n")
	for _, a := range alerts {
		b.WriteString(fmt.Sprintf("#%d %s up %.1f%% (tier %d) — sell %d sh, then /level %d %d\n",
			a.Account, a.Ticker, a.PnLPct, a.TargetTier, a.SuggestedQty, a.Account, a.TargetTier))
	}
	return b.String()
}

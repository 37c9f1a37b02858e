package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/journal"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/notifier"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/portfolio"
)

const helpText = `Commands:
/signal — today's regime and entry decision
/positions — open journal positions
/assets — short-term totals
/portfolio — long-horizon accounts
/tiers — tier take-profit check
/log — long-horizon trade log
/buy [date] price shares — journal a buy
/sell date price shares profit — journal a manual sell
/half id [price] — half exit at price (default: live)
/close id [price] — full exit at price (default: live)
/delete id — remove a record
/deposit amount | /withdraw amount — KRW cash
/level account tier — acknowledge a tier alert
/set account ticker shares avg — edit a position
/record date account action qty price — append to the trade log
/undo — drop the last trade log entry
/refresh — drop the snapshot cache`

// HandleCommand processes one user command and returns the reply.
func (s *Scheduler) HandleCommand(text string) string {
	args := strings.Fields(text)
	if len(args) == 0 {
		return helpText
	}

	switch args[0] {
	case "/signal":
		snap, a, err := s.assess()
		if err != nil {
			return fmt.Sprintf("❌ assessment failed: %v", err)
		}
		return notifier.FormatAssessment(a, snap.Live)

	case "/positions":
		snap, err := s.Cache.Get()
		if err != nil {
			return fmt.Sprintf("❌ no snapshot: %v", err)
		}
		return notifier.FormatPositions(journal.OpenPositions(s.Book.Records(), snap.Live.TQQQ, time.Now()))

	case "/assets":
		snap, err := s.Cache.Get()
		if err != nil {
			return fmt.Sprintf("❌ no snapshot: %v", err)
		}
		return notifier.FormatJournalSummary(journal.Summarize(s.Book.Records(), snap.Live.TQQQ))

	case "/portfolio":
		snap, err := s.Cache.Get()
		if err != nil {
			return fmt.Sprintf("❌ no snapshot: %v", err)
		}
		positions := s.Portfolio.Positions()
		views := portfolio.Valuations(positions, snap.Quote, snap.Live.USDKRW)
		sum := portfolio.Summarize(positions, snap.Quote, snap.Live.USDKRW, s.Portfolio.Cash())
		return notifier.FormatPortfolio(views, sum)

	case "/tiers":
		snap, err := s.Cache.Get()
		if err != nil {
			return fmt.Sprintf("❌ no snapshot: %v", err)
		}
		return notifier.FormatTierAlerts(portfolio.EvaluateTiers(s.Portfolio.Positions(), snap.Quote))

	case "/log":
		return s.formatLog()

	case "/record":
		return s.cmdRecord(args[1:])

	case "/undo":
		if err := s.Portfolio.DropLastLog(); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return "↩️ last trade log entry dropped"

	case "/buy":
		return s.cmdBuy(args[1:])

	case "/sell":
		return s.cmdSell(args[1:])

	case "/half", "/close":
		return s.cmdExit(args[0], args[1:])

	case "/delete":
		if len(args) != 2 {
			return "usage: /delete id"
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return "bad id: " + args[1]
		}
		if err := s.Book.Delete(id); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("🗑️ record #%d deleted", id)

	case "/deposit", "/withdraw":
		return s.cmdCash(args[0], args[1:])

	case "/level":
		if len(args) != 3 {
			return "usage: /level account tier"
		}
		account, err1 := strconv.Atoi(args[1])
		level, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil {
			return "account and tier must be integers"
		}
		if err := s.Portfolio.AdvanceLevel(account, level); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("✅ account %d level advanced to %d", account, level)

	case "/set":
		return s.cmdSet(args[1:])

	case "/refresh":
		s.Cache.Invalidate()
		return "🔄 snapshot cache dropped"

	default:
		return helpText
	}
}

func (s *Scheduler) cmdBuy(args []string) string {
	date := time.Now()
	if len(args) == 3 {
		d, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return "bad date: " + args[0]
		}
		date = d
		args = args[1:]
	}
	if len(args) != 2 {
		return "usage: /buy [YYYY-MM-DD] price shares"
	}
	price, err1 := strconv.ParseFloat(args[0], 64)
	shares, err2 := strconv.ParseFloat(args[1], 64)
	if err1 != nil || err2 != nil {
		return "price and shares must be numbers"
	}
	r, err := s.Book.AddBuy(date, price, shares, "-")
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return fmt.Sprintf("✅ buy #%d saved: %g sh @ $%.2f (TP½ $%.2f, TP $%.2f, SL $%.2f)",
		r.ID, r.Shares, r.Price, r.TPHalf, r.TPFull, r.StopLoss)
}

func (s *Scheduler) cmdSell(args []string) string {
	if len(args) != 4 {
		return "usage: /sell YYYY-MM-DD price shares profit"
	}
	date, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return "bad date: " + args[0]
	}
	price, err1 := strconv.ParseFloat(args[1], 64)
	shares, err2 := strconv.ParseFloat(args[2], 64)
	profit, err3 := strconv.ParseFloat(args[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return "price, shares and profit must be numbers"
	}
	r, err := s.Book.AddManualSell(date, price, shares, profit, "manual sell")
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return fmt.Sprintf("✅ sell #%d saved: %g sh @ $%.2f, realized $%.2f", r.ID, r.Shares, r.Price, r.Profit)
}

func (s *Scheduler) cmdExit(cmd string, args []string) string {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Sprintf("usage: %s id [price]", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return "bad id: " + args[0]
	}

	var execPrice float64
	if len(args) == 2 {
		if execPrice, err = strconv.ParseFloat(args[1], 64); err != nil {
			return "bad price: " + args[1]
		}
	} else {
		snap, err := s.Cache.Get()
		if err != nil {
			return fmt.Sprintf("❌ no live price, pass one explicitly: %v", err)
		}
		execPrice = snap.Live.TQQQ
	}

	var profit float64
	if cmd == "/half" {
		profit, err = s.Book.HalfExit(id, execPrice)
	} else {
		profit, err = s.Book.FullExit(id, execPrice)
	}
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return fmt.Sprintf("✅ %s #%d at $%.2f, realized $%.2f", strings.TrimPrefix(cmd, "/"), id, execPrice, profit)
}

func (s *Scheduler) cmdCash(cmd string, args []string) string {
	if len(args) != 1 {
		return fmt.Sprintf("usage: %s amount", cmd)
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "bad amount: " + args[0]
	}
	if cmd == "/deposit" {
		err = s.Portfolio.Deposit(amount)
	} else {
		err = s.Portfolio.Withdraw(amount)
	}
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return fmt.Sprintf("✅ cash balance: ₩%.0f", s.Portfolio.Cash())
}

func (s *Scheduler) cmdSet(args []string) string {
	if len(args) != 4 {
		return "usage: /set account ticker shares avg"
	}
	account, err := strconv.Atoi(args[0])
	if err != nil {
		return "bad account: " + args[0]
	}
	shares, err1 := strconv.ParseFloat(args[2], 64)
	avg, err2 := strconv.ParseFloat(args[3], 64)
	if err1 != nil || err2 != nil {
		return "shares and avg must be numbers"
	}
	if err := s.Portfolio.SetPosition(account, strings.ToUpper(args[1]), shares, avg); err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return fmt.Sprintf("✅ account %d set: %s %g sh @ $%.2f", account, strings.ToUpper(args[1]), shares, avg)
}

func (s *Scheduler) cmdRecord(args []string) string {
	if len(args) != 5 {
		return "usage: /record YYYY-MM-DD account action qty price"
	}
	date, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return "bad date: " + args[0]
	}
	account, err := strconv.Atoi(args[1])
	if err != nil {
		return "bad account: " + args[1]
	}
	qty, err1 := strconv.ParseFloat(args[3], 64)
	price, err2 := strconv.ParseFloat(args[4], 64)
	if err1 != nil || err2 != nil {
		return "qty and price must be numbers"
	}
	entry := model.LogEntry{Date: date, Account: account, Action: args[2], Qty: qty, Price: price, Note: "-"}
	if err := s.Portfolio.AppendLog(entry); err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return fmt.Sprintf("✅ logged: %s #%d %s %g @ $%.2f", args[0], account, args[2], qty, price)
}

func (s *Scheduler) formatLog() string {
	entries, err := s.Portfolio.Log()
	if err != nil {
		return fmt.Sprintf("❌ load log: %v", err)
	}
	if len(entries) == 0 {
		return "📒 trade log is empty"
	}
	var b strings.Builder
	b.WriteString("📒 <b>Trade log</b>\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s #%d %s %g @ $%.2f = $%.2f\n",
			e.Date.Format("2006-01-02"), e.Account, e.Action, e.Qty, e.Price, e.Amount))
	}
	return b.String()
}

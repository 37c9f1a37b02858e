package store

import "github.com/jyoon8505-jpg/tqqq-bot/internal/model"

// Store persists the durable entities: the short-term trade journal, the
// long-horizon portfolio, the cash balance, and the trade log. Entity sets
// are read in full and rewritten in full on every change; there is exactly
// one logical writer. Assessment rows are append-only history.
type Store interface {
	LoadTrades() ([]model.TradeRecord, error)
	SaveTrades(trades []model.TradeRecord) error

	LoadPositions() ([]model.Position, error)
	SavePositions(positions []model.Position) error

	// LoadBalance reports found=false when no balance row exists yet, so the
	// caller can seed the initial amount.
	LoadBalance() (amount float64, found bool, err error)
	SaveBalance(amount float64) error

	LoadLog() ([]model.LogEntry, error)
	AppendLog(entry model.LogEntry) error
	DropLastLog() error

	RecordAssessment(a *model.Assessment) error

	Close() error
}

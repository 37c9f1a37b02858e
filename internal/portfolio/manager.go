package portfolio

import (
	"fmt"
	"sync"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/store"
)

// Seed values for a fresh install: one empty TQQQ account and the initial
// cash deposit.
const (
	seedAccount = 1
	seedTicker  = "TQQQ"
	seedCashKRW = 16_000_000
)

// Manager owns the long-horizon portfolio: account positions, the KRW cash
// balance, and the trade log. Every mutation is written back to the store in
// full before it returns.
type Manager struct {
	mu        sync.Mutex
	positions []model.Position
	cash      float64
	store     store.Store
}

// NewManager loads the portfolio, seeding initial state on first run.
func NewManager(st store.Store) (*Manager, error) {
	positions, err := st.LoadPositions()
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}
	if len(positions) == 0 {
		positions = []model.Position{{Account: seedAccount, Ticker: seedTicker}}
		if err := st.SavePositions(positions); err != nil {
			return nil, fmt.Errorf("seed positions: %w", err)
		}
	}

	cash, found, err := st.LoadBalance()
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	if !found {
		cash = seedCashKRW
		if err := st.SaveBalance(cash); err != nil {
			return nil, fmt.Errorf("seed balance: %w", err)
		}
	}

	return &Manager{positions: positions, cash: cash, store: st}, nil
}

// Positions returns a copy of all account positions.
func (m *Manager) Positions() []model.Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Position, len(m.positions))
	copy(out, m.positions)
	return out
}

// Cash returns the current KRW balance.
func (m *Manager) Cash() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cash
}

// Deposit adds to the cash balance.
func (m *Manager) Deposit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("deposit must be positive, got %.0f", amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cash += amount
	return m.store.SaveBalance(m.cash)
}

// Withdraw subtracts from the cash balance. Overdrawing is rejected; margin
// is not tracked here.
func (m *Manager) Withdraw(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("withdrawal must be positive, got %.0f", amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if amount > m.cash {
		return fmt.Errorf("withdrawal %.0f exceeds balance %.0f", amount, m.cash)
	}
	m.cash -= amount
	return m.store.SaveBalance(m.cash)
}

// SetPosition creates or replaces an account's holding. This is the manual
// data-editing path; nothing reconciles positions automatically.
func (m *Manager) SetPosition(account int, ticker string, shares, avgPrice float64) error {
	if shares < 0 || avgPrice < 0 {
		return fmt.Errorf("shares and avg price must be non-negative")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.positions {
		if m.positions[i].Account == account {
			m.positions[i].Ticker = ticker
			m.positions[i].Shares = shares
			m.positions[i].AvgPrice = avgPrice
			return m.store.SavePositions(m.positions)
		}
	}
	m.positions = append(m.positions, model.Position{
		Account: account, Ticker: ticker, Shares: shares, AvgPrice: avgPrice,
	})
	return m.store.SavePositions(m.positions)
}

// AdvanceLevel records that the user acted on a tier alert. The level only
// moves up; lowering it would re-arm tiers that were already taken.
func (m *Manager) AdvanceLevel(account, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.positions {
		if m.positions[i].Account != account {
			continue
		}
		if level <= m.positions[i].Level {
			return fmt.Errorf("account %d: level %d is not above current %d", account, level, m.positions[i].Level)
		}
		m.positions[i].Level = level
		return m.store.SavePositions(m.positions)
	}
	return fmt.Errorf("account %d not found", account)
}

// AppendLog records a long-horizon trade in the log.
func (m *Manager) AppendLog(entry model.LogEntry) error {
	entry.Amount = entry.Qty * entry.Price
	return m.store.AppendLog(entry)
}

// Log returns all trade log entries in insertion order.
func (m *Manager) Log() ([]model.LogEntry, error) {
	return m.store.LoadLog()
}

// DropLastLog removes the most recent log entry, the undo for a fat-fingered
// append.
func (m *Manager) DropLastLog() error {
	return m.store.DropLastLog()
}

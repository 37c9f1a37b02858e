package store

import (
	"sync"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

// Memory is an in-memory Store used in tests and when no database path is
// configured. Contents vanish on process exit.
type Memory struct {
	mu          sync.Mutex
	trades      []model.TradeRecord
	positions   []model.Position
	balance     float64
	balanceSet  bool
	log         []model.LogEntry
	assessments []model.Assessment
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) LoadTrades() ([]model.TradeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.TradeRecord, len(m.trades))
	copy(out, m.trades)
	return out, nil
}

func (m *Memory) SaveTrades(trades []model.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = make([]model.TradeRecord, len(trades))
	copy(m.trades, trades)
	return nil
}

func (m *Memory) LoadPositions() ([]model.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Position, len(m.positions))
	copy(out, m.positions)
	return out, nil
}

func (m *Memory) SavePositions(positions []model.Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = make([]model.Position, len(positions))
	copy(m.positions, positions)
	return nil
}

func (m *Memory) LoadBalance() (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance, m.balanceSet, nil
}

func (m *Memory) SaveBalance(amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance = amount
	m.balanceSet = true
	return nil
}

func (m *Memory) LoadLog() ([]model.LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.LogEntry, len(m.log))
	copy(out, m.log)
	return out, nil
}

func (m *Memory) AppendLog(entry model.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = append(m.log, entry)
	return nil
}

func (m *Memory) DropLastLog() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.log) > 0 {
		m.log = m.log[:len(m.log)-1]
	}
	return nil
}

func (m *Memory) RecordAssessment(a *model.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments = append(m.assessments, *a)
	return nil
}

func (m *Memory) Close() error { return nil }

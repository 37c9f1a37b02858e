package journal

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/store"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/strategy"
)

// Book is the short-term trade journal. Mutations go through guarded
// lifecycle transitions and the full record set is written back to the store
// after every change.
type Book struct {
	mu     sync.Mutex
	trades []model.TradeRecord
	store  store.Store
}

// NewBook loads the journal from the store.
func NewBook(st store.Store) (*Book, error) {
	trades, err := st.LoadTrades()
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return &Book{trades: trades, store: st}, nil
}

// Records returns a copy of all records in ID order.
func (b *Book) Records() []model.TradeRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.TradeRecord, len(b.trades))
	copy(out, b.trades)
	return out
}

// AddBuy appends a new Open buy record. Exit target prices are fixed at
// entry from the fill price and the strategy's risk constants.
func (b *Book) AddBuy(date time.Time, price, shares float64, note string) (model.TradeRecord, error) {
	if price <= 0 || shares <= 0 {
		return model.TradeRecord{}, fmt.Errorf("buy needs positive price and shares, got %.2f x %.2f", price, shares)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	r := model.TradeRecord{
		ID:       b.nextID(),
		Date:     date,
		Side:     model.SideBuy,
		Price:    price,
		Shares:   shares,
		TPHalf:   price * (1 + strategy.TakeHalfPct/100),
		TPFull:   price * (1 + strategy.TakeFullPct/100),
		StopLoss: price * (1 + strategy.StopLossPct/100),
		Status:   model.StatusOpen,
		Note:     note,
	}
	b.trades = append(b.trades, r)
	return r, b.save()
}

// AddManualSell logs a standalone sell with an externally computed profit.
// The record is born Closed and only contributes to realized profit.
func (b *Book) AddManualSell(date time.Time, price, shares, profit float64, note string) (model.TradeRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := model.TradeRecord{
		ID:     b.nextID(),
		Date:   date,
		Side:   model.SideSell,
		Price:  price,
		Shares: shares,
		Status: model.StatusClosed,
		Profit: profit,
		Note:   note,
	}
	b.trades = append(b.trades, r)
	return r, b.save()
}

// HalfExit sells 50% of an Open record at execPrice.
func (b *Book) HalfExit(id int64, execPrice float64) (profit float64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := b.find(id)
	if r == nil {
		return 0, fmt.Errorf("half exit %d: %w", id, ErrNotFound)
	}
	if profit, err = applyHalfExit(r, execPrice); err != nil {
		return 0, err
	}
	log.Printf("[INFO] half exit #%d at %.2f, realized %.2f", id, execPrice, profit)
	return profit, b.save()
}

// FullExit liquidates the remaining shares of a record at execPrice.
func (b *Book) FullExit(id int64, execPrice float64) (profit float64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := b.find(id)
	if r == nil {
		return 0, fmt.Errorf("full exit %d: %w", id, ErrNotFound)
	}
	if profit, err = applyFullExit(r, execPrice); err != nil {
		return 0, err
	}
	log.Printf("[INFO] full exit #%d at %.2f, realized %.2f", id, execPrice, profit)
	return profit, b.save()
}

// Delete removes a record entirely, regardless of status.
func (b *Book) Delete(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.trades {
		if b.trades[i].ID == id {
			b.trades = append(b.trades[:i], b.trades[i+1:]...)
			return b.save()
		}
	}
	return fmt.Errorf("delete %d: %w", id, ErrNotFound)
}

func (b *Book) find(id int64) *model.TradeRecord {
	for i := range b.trades {
		if b.trades[i].ID == id {
			return &b.trades[i]
		}
	}
	return nil
}

// nextID assigns monotonically: one past the highest ID still present.
func (b *Book) nextID() int64 {
	var highest int64
	for _, r := range b.trades {
		if r.ID > highest {
			highest = r.ID
		}
	}
	return highest + 1
}

func (b *Book) save() error {
	if err := b.store.SaveTrades(b.trades); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	return nil
}

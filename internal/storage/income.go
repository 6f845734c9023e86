package storage

import (
	"context"
	"fmt"
	"log/slog"

	"billfold/internal/core"
)

// IncomeRegistry gets and replaces the singleton income record. The
// record is created with a zero amount on first access and only ever
// replaced wholesale after that, never deleted.
type IncomeRegistry struct {
	store *DocumentStore
}

func NewIncomeRegistry(store *DocumentStore) *IncomeRegistry {
	return &IncomeRegistry{store: store}
}

// Get returns the current income record.
func (g *IncomeRegistry) Get(ctx context.Context) (core.Income, error) {
	g.store.incomeMu.Lock()
	inc, err := g.store.loadIncome()
	g.store.incomeMu.Unlock()
	if err != nil {
		return core.Income{}, fmt.Errorf("get income: %w", err)
	}
	return inc, nil
}

// Set replaces the income record with the given amount and refreshes
// the month stamp.
func (g *IncomeRegistry) Set(ctx context.Context, amount core.Money) (core.Income, error) {
	inc := core.Income{
		Amount: amount,
		Month:  g.store.now().Format(core.MonthLayout),
	}
	if err := inc.Validate(); err != nil {
		return core.Income{}, err
	}

	g.store.incomeMu.Lock()
	defer g.store.incomeMu.Unlock()

	if err := g.store.saveIncome(inc); err != nil {
		return core.Income{}, fmt.Errorf("set income: %w", err)
	}

	slog.InfoContext(ctx, "Income updated",
		"amount_cents", inc.Amount.Cents,
		"month", inc.Month)
	return inc, nil
}

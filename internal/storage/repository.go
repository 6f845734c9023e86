package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"billfold/internal/core"

	"github.com/google/uuid"
)

// ExpenseRepository provides CRUD and date-range queries over the
// expense family, each operation a read-modify-write cycle against the
// document store under the family lock.
type ExpenseRepository struct {
	store *DocumentStore
}

func NewExpenseRepository(store *DocumentStore) *ExpenseRepository {
	return &ExpenseRepository{store: store}
}

// ListFilter bounds a List call. Zero dates leave that side open; both
// bounds are inclusive.
type ListFilter struct {
	Start core.Date
	End   core.Date
}

// Create validates and persists a new expense, assigning it a fresh
// UUID. Validation failures surface before anything touches disk.
func (r *ExpenseRepository) Create(ctx context.Context, amount core.Money, category string, date core.Date, description string) (core.Expense, error) {
	exp := core.Expense{
		ID:          uuid.NewString(),
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Date:        date,
		Description: description,
	}
	if err := exp.Validate(); err != nil {
		return core.Expense{}, err
	}

	r.store.expensesMu.Lock()
	defer r.store.expensesMu.Unlock()

	items, err := r.store.loadExpenses()
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	if err := r.store.saveExpenses(append(items, exp)); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", exp.ID,
		"category", exp.Category,
		"amount_cents", exp.Amount.Cents,
		"date", exp.Date.String())
	return exp, nil
}

// List returns the expenses whose date falls within the filter bounds,
// in insertion order. An inverted range is rejected rather than
// silently returning an empty set.
func (r *ExpenseRepository) List(ctx context.Context, filter ListFilter) ([]core.Expense, error) {
	if err := core.ValidateRange(filter.Start, filter.End); err != nil {
		return nil, err
	}

	r.store.expensesMu.Lock()
	items, err := r.store.loadExpenses()
	r.store.expensesMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	out := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if e.Date.Within(filter.Start, filter.End) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Delete removes the expense with the given id and reports whether a
// record was actually removed. Deleting an absent id is a normal
// outcome, not an error: the UI double-submits.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.store.expensesMu.Lock()
	defer r.store.expensesMu.Unlock()

	items, err := r.store.loadExpenses()
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}

	idx := -1
	for i, e := range items {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.DebugContext(ctx, "Expense not found for delete", "id", id)
		return false, nil
	}

	items = append(items[:idx], items[idx+1:]...)
	if err := r.store.saveExpenses(items); err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return true, nil
}

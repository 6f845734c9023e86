// Package audit keeps a durable trail of expense events in SQLite.
// The ledger is append-only from the worker's point of view and lives
// outside the JSON record store: losing it never loses financial data.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded expense event.
type Entry struct {
	ID          int64
	Action      string
	ExpenseID   string
	AmountCents int64
	Category    string
	OccurredOn  string
	RecordedAt  time.Time
}

type Ledger struct {
	db *sql.DB
}

// NewLedger opens (or creates) the ledger database and applies
// migrations.
func NewLedger(dbPath string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping ledger database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger database: %w", err)
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Record appends one event to the trail.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO expense_events (action, expense_id, amount_cents, category, occurred_on)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Action, e.ExpenseID, e.AmountCents, e.Category, e.OccurredOn)
	if err != nil {
		return fmt.Errorf("record expense event: %w", err)
	}

	slog.InfoContext(ctx, "Expense event recorded",
		"action", e.Action,
		"expense_id", e.ExpenseID,
		"amount_cents", e.AmountCents)
	return nil
}

// Recent returns the newest entries, most recent first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, action, expense_id, amount_cents, category, occurred_on, recorded_at
		 FROM expense_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent events: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.ExpenseID, &e.AmountCents, &e.Category, &e.OccurredOn, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return out, nil
}

// CountByAction returns how many events were recorded per action.
func (l *Ledger) CountByAction(ctx context.Context) (map[string]int64, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT action, COUNT(*) FROM expense_events GROUP BY action`)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var action string
		var n int64
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("scan count row: %w", err)
		}
		counts[action] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate count rows: %w", err)
	}
	return counts, nil
}

// Package worker consumes the expense event stream and feeds the
// audit ledger.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"billfold/internal/amqp"
	"billfold/internal/audit"
)

// EventWorker turns expense events into audit ledger entries.
type EventWorker struct {
	ledger *audit.Ledger
}

func NewEventWorker(ledger *audit.Ledger) *EventWorker {
	return &EventWorker{ledger: ledger}
}

// HandleEvent records one expense event. An error requeues the
// delivery, so recording must stay idempotent-friendly: duplicates in
// the trail are acceptable, dropped events are not.
func (w *EventWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	entry := audit.Entry{
		Action:      msg.Action,
		ExpenseID:   msg.ExpenseID,
		AmountCents: msg.AmountCents,
		Category:    msg.Category,
		OccurredOn:  msg.Date,
	}
	if err := w.ledger.Record(ctx, entry); err != nil {
		return fmt.Errorf("handle expense event: %w", err)
	}
	return nil
}

// LogStats periodically logs per-action event counts until the context
// ends. It is a liveness signal for the trail, nothing more.
func (w *EventWorker) LogStats(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			counts, err := w.ledger.CountByAction(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to read audit stats", "error", err)
				continue
			}
			slog.InfoContext(ctx, "Audit trail stats",
				"created", counts[amqp.ActionCreated],
				"deleted", counts[amqp.ActionDeleted])
		}
	}
}

// Package services orchestrates repository writes with the expense
// event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"billfold/internal/amqp"
	"billfold/internal/core"
	"billfold/internal/storage"
)

// EventPublisher is the slice of the AMQP client the service needs.
// A nil publisher disables eventing entirely.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error
}

// ExpenseService wraps the expense repository and publishes an event
// after each successful write. The JSON documents stay the source of
// truth: a publish failure is logged and swallowed, never surfaced to
// the caller.
type ExpenseService struct {
	repo      *storage.ExpenseRepository
	publisher EventPublisher
}

func NewExpenseService(repo *storage.ExpenseRepository, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{repo: repo, publisher: publisher}
}

// Create persists a new expense and emits a created event.
func (s *ExpenseService) Create(ctx context.Context, amount core.Money, category string, date core.Date, description string) (core.Expense, error) {
	exp, err := s.repo.Create(ctx, amount, category, date, description)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseCreatedMessage(exp))
	return exp, nil
}

// List passes through to the repository.
func (s *ExpenseService) List(ctx context.Context, filter storage.ListFilter) ([]core.Expense, error) {
	return s.repo.List(ctx, filter)
}

// Delete removes the expense and, when something was actually removed,
// emits a deleted event.
func (s *ExpenseService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	if removed {
		s.publish(ctx, amqp.NewExpenseDeletedMessage(id))
	}
	return removed, nil
}

func (s *ExpenseService) publish(ctx context.Context, msg *amqp.ExpenseEventMessage) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Event publisher not configured, skipping event",
			"action", msg.Action, "expense_id", msg.ExpenseID)
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, msg); err != nil {
		// The record is already on disk; the event stream is best-effort.
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"error", err,
			"action", msg.Action,
			"expense_id", msg.ExpenseID)
	}
}

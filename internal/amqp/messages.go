package amqp

import (
	"encoding/json"
	"time"

	"billfold/internal/core"
)

// Event actions carried on the expense event stream.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// ExpenseEventMessage is the audit-trail event published after a
// repository write succeeds. It carries enough of the record to be
// useful on its own: the consumer never reads the JSON documents.
type ExpenseEventMessage struct {
	Action      string    `json:"action"`
	ExpenseID   string    `json:"expense_id"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseCreatedMessage builds the event for a freshly created
// expense.
func NewExpenseCreatedMessage(e core.Expense) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Action:      ActionCreated,
		ExpenseID:   e.ID,
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Date:        e.Date.String(),
		Timestamp:   time.Now(),
	}
}

// NewExpenseDeletedMessage builds the event for a deleted expense.
// Only the id is known at that point.
func NewExpenseDeletedMessage(id string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Action:    ActionDeleted,
		ExpenseID: id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

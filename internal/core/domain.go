package core

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDateRange = errors.New("start date is after end date")
)

// dateLayout is the wire and storage form of a calendar date.
const dateLayout = "2006-01-02"

// MonthLayout is the label form of a year+month period, e.g. "2024-06".
const MonthLayout = "2006-01"

// Date is a calendar date with no time-of-day component. The embedded
// time is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Validate rejects the zero date.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Within reports whether d falls inside [start, end], both bounds
// inclusive. A zero bound is treated as unbounded on that side.
func (d Date) Within(start, end Date) bool {
	if !start.IsZero() && d.Before(start.Time) {
		return false
	}
	if !end.IsZero() && d.After(end.Time) {
		return false
	}
	return true
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Expense is one discretionary spending event. The ID is assigned by
// the repository on creation and never changes; edits are modeled as
// delete-then-recreate by callers, so an edited expense gets a new ID.
type Expense struct {
	ID          string `json:"id"`
	Amount      Money  `json:"amount"`
	Category    string `json:"category"`
	Date        Date   `json:"date"`
	Description string `json:"description"`
}

// Validate checks the invariants every persisted expense must hold:
// a strictly positive amount and a real calendar date. Category is a
// free-form label and description may be empty.
func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// Income is the singleton monthly income record. Month carries the
// "2006-01" label of the last update; there is no income history.
type Income struct {
	Amount Money  `json:"amount"`
	Month  string `json:"month"`
}

// Validate allows a zero income but rejects negative amounts.
func (i Income) Validate() error {
	if i.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateRange rejects ranges where both bounds are set and inverted.
// A single open bound is fine.
func ValidateRange(start, end Date) error {
	if !start.IsZero() && !end.IsZero() && start.After(end.Time) {
		return ErrInvalidDateRange
	}
	return nil
}

package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-02")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.June || d.Day() != 2 {
		t.Fatalf("parsed wrong date: %v", d)
	}
	if _, err := ParseDate("02/06/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatalf("expected error for empty string")
	}
}

func TestDateWithin(t *testing.T) {
	d := NewDate(2024, 6, 2)
	cases := []struct {
		start, end Date
		want       bool
	}{
		{NewDate(2024, 6, 1), NewDate(2024, 6, 10), true},
		{NewDate(2024, 6, 2), NewDate(2024, 6, 2), true}, // bounds inclusive
		{NewDate(2024, 6, 3), NewDate(2024, 6, 10), false},
		{Date{}, NewDate(2024, 6, 1), false},
		{Date{}, NewDate(2024, 6, 2), true},
		{NewDate(2024, 6, 2), Date{}, true},
		{Date{}, Date{}, true},
	}
	for i, tc := range cases {
		if got := d.Within(tc.start, tc.end); got != tc.want {
			t.Fatalf("case %d: Within(%v, %v) = %v, want %v", i, tc.start, tc.end, got, tc.want)
		}
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(NewDate(2024, 6, 1), NewDate(2024, 6, 2)); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := ValidateRange(NewDate(2024, 6, 3), NewDate(2024, 6, 2)); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if err := ValidateRange(Date{}, NewDate(2024, 6, 2)); err != nil {
		t.Fatalf("open start bound should be valid, got %v", err)
	}
	if err := ValidateRange(NewDate(2024, 6, 3), Date{}); err != nil {
		t.Fatalf("open end bound should be valid, got %v", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		ID:          "abc",
		Amount:      Money{Cents: 100},
		Category:    "Food",
		Date:        NewDate(2024, 6, 1),
		Description: "",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: Money{Cents: 0}, Category: "Food", Date: NewDate(2024, 6, 1)},
		{Amount: Money{Cents: -100}, Category: "Food", Date: NewDate(2024, 6, 1)},
		{Amount: Money{Cents: 100}, Category: "Food", Date: Date{}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestIncomeValidate(t *testing.T) {
	if err := (Income{Amount: Money{Cents: 0}}).Validate(); err != nil {
		t.Fatalf("zero income should be valid, got %v", err)
	}
	if err := (Income{Amount: Money{Cents: 300000}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Income{Amount: Money{Cents: -1}}).Validate(); err == nil {
		t.Fatalf("expected error for negative income")
	}
}

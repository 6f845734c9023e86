package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"0.5", 50, true},
		{"1000", 100000, true},
		{"0", 0, true},
		{"-5", -500, true},
		{"-0.01", -1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"12e3", 0, false},
	}
	for _, tc := range cases {
		cents, err := ParseDecimalToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q) expected error", tc.in)
		}
		if tc.ok && cents != tc.cents {
			t.Fatalf("ParseDecimalToCents(%q) = %d, want %d", tc.in, cents, tc.cents)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	cases := []struct {
		m    Money
		want string
	}{
		{Money{Cents: 50000}, "500.00"},
		{Money{Cents: 1234}, "12.34"},
		{Money{Cents: -5}, "-0.05"},
		{Money{Cents: 0}, "0.00"},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.m)
		if err != nil {
			t.Fatalf("marshal %v: %v", tc.m, err)
		}
		if string(b) != tc.want {
			t.Fatalf("marshal %v = %s, want %s", tc.m, b, tc.want)
		}
		var back Money
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back.Cents != tc.m.Cents {
			t.Fatalf("round trip %v -> %v", tc.m, back)
		}
	}
}

func TestMoneyUnmarshalString(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"12.34"`), &m); err != nil {
		t.Fatalf("unmarshal quoted amount: %v", err)
	}
	if m.Cents != 1234 {
		t.Fatalf("got %d cents, want 1234", m.Cents)
	}
}

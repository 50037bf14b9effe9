package internal

import (
	"errors"
	"math"
	"testing"
)

func TestNewExpense_DerivedValues(t *testing.T) {
	e, err := NewExpense(RawExpense{
		Name:            "Gym",
		Category:        "Health",
		Value:           ptr(90.0),
		Currency:        "usd",
		RepeatEvery:     ptr(3),
		RepeatEveryUnit: "months",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", e.Currency)
	}

	tests := []struct {
		name string
		got  *float64
		want float64
	}{
		{"monthly", e.MonthlyValue, 30},
		{"monthly EUR", e.MonthlyValueEUR, 30 / 1.1570},
		{"yearly", e.YearlyValue, 360},
		{"yearly EUR", e.YearlyValueEUR, 360 / 1.1570},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got == nil {
				t.Fatal("expected a value")
			}
			if !approxEqual(*tt.got, tt.want, 1e-9) {
				t.Errorf("got %v, want %v", *tt.got, tt.want)
			}
		})
	}
}

func TestNewExpense_Defaults(t *testing.T) {
	e, err := NewExpense(RawExpense{Name: "Netflix", Value: ptr(12.99)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.RepeatEvery != 1 {
		t.Errorf("RepeatEvery = %d, want 1", e.RepeatEvery)
	}
	if e.RepeatEveryUnit != UnitMonths {
		t.Errorf("RepeatEveryUnit = %q, want months", e.RepeatEveryUnit)
	}
	// No currency means no FX conversion
	if *e.MonthlyValueEUR != 12.99 || *e.MonthlyValue != 12.99 {
		t.Errorf("monthly values = %v / %v, want 12.99", *e.MonthlyValue, *e.MonthlyValueEUR)
	}
	if e.IsCategorized() {
		t.Error("expense without category should not be categorized")
	}
}

func TestNewExpense_MissingValue(t *testing.T) {
	e, err := NewExpense(RawExpense{Name: "Unknown", Currency: "BRL", RepeatEveryUnit: "years"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.MonthlyValue != nil || e.MonthlyValueEUR != nil || e.YearlyValue != nil || e.YearlyValueEUR != nil {
		t.Error("derived values should be nil when value is missing")
	}
}

func TestNewExpense_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawExpense
		wantErr error
	}{
		{"missing name", RawExpense{Value: ptr(1.0)}, ErrMissingName},
		{"blank name", RawExpense{Name: "  ", Value: ptr(1.0)}, ErrMissingName},
		{"zero interval", RawExpense{Name: "x", Value: ptr(1.0), RepeatEvery: ptr(0)}, ErrInvalidInterval},
		{"bad unit", RawExpense{Name: "x", Value: ptr(1.0), RepeatEveryUnit: "quarters"}, ErrUnsupportedUnit},
		{"bad currency", RawExpense{Name: "x", Value: ptr(1.0), Currency: "JPY"}, ErrUnsupportedConversion},
		{"NaN value", RawExpense{Name: "x", Value: ptr(math.NaN())}, ErrInvalidValue},
		{"infinite value", RawExpense{Name: "x", Value: ptr(math.Inf(1))}, ErrInvalidValue},
		{"negative infinite value", RawExpense{Name: "x", Value: ptr(math.Inf(-1))}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExpense(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpense_RepeatString(t *testing.T) {
	tests := []struct {
		every int
		unit  RepeatUnit
		want  string
	}{
		{1, UnitDays, "daily"},
		{1, UnitWeeks, "weekly"},
		{1, UnitMonths, "monthly"},
		{1, UnitYears, "yearly"},
		{2, UnitWeeks, "every 2 weeks"},
		{6, UnitMonths, "every 6 months"},
	}

	for _, tt := range tests {
		e := Expense{RepeatEvery: tt.every, RepeatEveryUnit: tt.unit}
		if got := e.RepeatString(); got != tt.want {
			t.Errorf("RepeatString(%d %s) = %q, want %q", tt.every, tt.unit, got, tt.want)
		}
	}
}

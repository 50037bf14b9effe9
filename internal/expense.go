package internal

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMissingName  = errors.New("missing name")
	ErrInvalidValue = errors.New("invalid value")
)

// NewExpense validates a raw record and computes its four derived values.
// Normalization happens here and only here.
func NewExpense(raw RawExpense) (Expense, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Expense{}, ErrMissingName
	}

	if v := raw.Value; v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
		return Expense{}, fmt.Errorf("%w: %v (must be a finite number)", ErrInvalidValue, *v)
	}

	every := DefaultRepeatEvery
	if raw.RepeatEvery != nil {
		every = *raw.RepeatEvery
	}
	if every < 1 {
		return Expense{}, fmt.Errorf("%w: repeat_every %d (must be a positive integer)", ErrInvalidInterval, every)
	}

	unit := DefaultRepeatEveryUnit
	if strings.TrimSpace(raw.RepeatEveryUnit) != "" {
		u, err := ParseRepeatUnit(raw.RepeatEveryUnit)
		if err != nil {
			return Expense{}, err
		}
		unit = u
	}

	e := Expense{
		AccountID:       strings.TrimSpace(string(raw.AccountID)),
		Name:            name,
		Description:     raw.Description,
		Category:        strings.TrimSpace(raw.Category),
		Value:           raw.Value,
		Currency:        strings.ToUpper(strings.TrimSpace(raw.Currency)),
		RepeatEvery:     every,
		RepeatEveryUnit: unit,
	}

	targets := []struct {
		dst      **float64
		currency string
		unit     RepeatUnit
	}{
		{&e.MonthlyValue, "", UnitMonths},
		{&e.MonthlyValueEUR, BaseCurrency, UnitMonths},
		{&e.YearlyValue, "", UnitYears},
		{&e.YearlyValueEUR, BaseCurrency, UnitYears},
	}
	for _, t := range targets {
		v, err := Normalize(e.Value, e.Currency, e.RepeatEvery, e.RepeatEveryUnit, t.currency, t.unit)
		if err != nil {
			return Expense{}, err
		}
		*t.dst = v
	}

	return e, nil
}

// IsCategorized reports whether the expense has a category
func (e Expense) IsCategorized() bool {
	return e.Category != ""
}

// ValueEUR returns the EUR value for the given period (months or years)
func (e Expense) ValueEUR(period RepeatUnit) *float64 {
	if period == UnitYears {
		return e.YearlyValueEUR
	}
	return e.MonthlyValueEUR
}

// NativeValue returns the value in the expense's own currency for the given period
func (e Expense) NativeValue(period RepeatUnit) *float64 {
	if period == UnitYears {
		return e.YearlyValue
	}
	return e.MonthlyValue
}

// RepeatString renders the recurrence, e.g. "every 2 weeks" or "monthly"
func (e Expense) RepeatString() string {
	if e.RepeatEvery == 1 {
		switch e.RepeatEveryUnit {
		case UnitDays:
			return "daily"
		case UnitWeeks:
			return "weekly"
		case UnitMonths:
			return "monthly"
		case UnitYears:
			return "yearly"
		}
	}
	return fmt.Sprintf("every %d %s", e.RepeatEvery, e.RepeatEveryUnit)
}

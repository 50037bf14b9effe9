package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrUnsupportedUnit       = errors.New("unsupported unit")
	ErrInvalidInterval       = errors.New("invalid interval")
)

// ConversionError is returned when a currency pair is not in the rate table
type ConversionError struct {
	From string
	To   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrUnsupportedConversion, e.From, e.To)
}

func (e *ConversionError) Unwrap() error { return ErrUnsupportedConversion }

// UnitError is returned for a recurrence unit outside days|weeks|months|years
type UnitError struct {
	Unit string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: %q (expected one of days, weeks, months, years)", ErrUnsupportedUnit, e.Unit)
}

func (e *UnitError) Unwrap() error { return ErrUnsupportedUnit }

// ratesToEUR holds how many EUR one unit of each currency is worth
var ratesToEUR = map[string]float64{
	"EUR": 1.0,
	"USD": 1 / 1.1570,
	"BRL": 1 / 6.1690,
}

// daysPerUnit uses the Gregorian mean year (146097 days per 400 years)
var daysPerUnit = map[RepeatUnit]float64{
	UnitDays:   1,
	UnitWeeks:  7,
	UnitMonths: 146097.0 / 400 / 12,
	UnitYears:  146097.0 / 400,
}

// SupportedCurrencies returns the currency codes of the rate table, sorted
func SupportedCurrencies() []string {
	return []string{"BRL", "EUR", "USD"}
}

// ParseRepeatUnit validates a recurrence unit. Matching is case-insensitive.
func ParseRepeatUnit(s string) (RepeatUnit, error) {
	u := RepeatUnit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := daysPerUnit[u]; !ok {
		return "", &UnitError{Unit: s}
	}
	return u, nil
}

// DaysIn returns the canonical length of a unit in days
func DaysIn(unit RepeatUnit) (float64, error) {
	d, ok := daysPerUnit[unit]
	if !ok {
		return 0, &UnitError{Unit: string(unit)}
	}
	return d, nil
}

// FXRate returns the multiplier converting an amount in currency to targetCurrency.
// An empty target, an empty source or identical codes yield exactly 1.
func FXRate(currency, targetCurrency string) (float64, error) {
	from := strings.ToUpper(strings.TrimSpace(currency))
	to := strings.ToUpper(strings.TrimSpace(targetCurrency))
	if to == "" || from == "" || from == to {
		return 1.0, nil
	}

	fromRate, okFrom := ratesToEUR[from]
	toRate, okTo := ratesToEUR[to]
	if !okFrom || !okTo {
		return 0, &ConversionError{From: from, To: to}
	}
	return fromRate / toRate, nil
}

// TimeFactor returns the multiplier converting an amount paid every `every` units
// into an amount per targetUnit. An empty targetUnit keeps the native period.
func TimeFactor(every int, unit RepeatUnit, targetUnit RepeatUnit) (float64, error) {
	if every < 1 {
		return 0, fmt.Errorf("%w: repeat every %d (must be a positive integer)", ErrInvalidInterval, every)
	}
	sourceDays, err := DaysIn(unit)
	if err != nil {
		return 0, err
	}
	if targetUnit == "" {
		return 1.0, nil
	}
	targetDays, err := DaysIn(targetUnit)
	if err != nil {
		return 0, err
	}
	return targetDays / (float64(every) * sourceDays), nil
}

// Normalize converts a recurring amount into the requested (currency, period) basis.
// A nil value yields a nil result; configuration errors are reported regardless.
// The result is not rounded.
func Normalize(value *float64, currency string, every int, unit RepeatUnit, targetCurrency string, targetUnit RepeatUnit) (*float64, error) {
	timeFactor, err := TimeFactor(every, unit, targetUnit)
	if err != nil {
		return nil, err
	}
	fx, err := FXRate(currency, targetCurrency)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	v := *value * fx * timeFactor
	return &v, nil
}

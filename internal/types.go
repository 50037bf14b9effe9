package internal

import (
	"encoding/json"
	"fmt"
)

// RepeatUnit is the unit of an expense's recurrence interval
type RepeatUnit string

const (
	UnitDays   RepeatUnit = "days"
	UnitWeeks  RepeatUnit = "weeks"
	UnitMonths RepeatUnit = "months"
	UnitYears  RepeatUnit = "years"
)

const (
	DefaultRepeatEvery     = 1
	DefaultRepeatEveryUnit = UnitMonths

	// BaseCurrency is the pivot of all FX conversions
	BaseCurrency = "EUR"
)

// AccountID identifies an account. Input files may write it as a JSON string
// or a number; numbers keep their literal text, so 7 and "7" are the same id.
type AccountID string

func (a *AccountID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AccountID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("account id must be a string or a number, got %s", data)
	}
	*a = AccountID(n.String())
	return nil
}

// RawExpense is a single expense record as read from an input file.
// Every field is optional at this stage; NewExpense validates it.
type RawExpense struct {
	AccountID       AccountID `json:"account_id,omitempty"`
	Name            string    `json:"name,omitempty"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category,omitempty"`
	Value           *float64  `json:"value,omitempty"`
	Currency        string    `json:"currency,omitempty"`
	RepeatEvery     *int      `json:"repeat_every,omitempty"`
	RepeatEveryUnit string    `json:"repeat_every_unit,omitempty"`
}

// Expense is a validated, normalized recurring expense.
// The derived values are computed once by NewExpense and must not be modified.
type Expense struct {
	AccountID       string
	Name            string
	Description     string
	Category        string // empty means uncategorized
	Value           *float64
	Currency        string
	RepeatEvery     int
	RepeatEveryUnit RepeatUnit

	MonthlyValue    *float64 // original currency
	MonthlyValueEUR *float64
	YearlyValue     *float64 // original currency
	YearlyValueEUR  *float64
}

// Item is a single named, valued and categorized entry fed to the waterfall layout
type Item struct {
	Name     string
	Value    float64
	Category string
}

// RenderRow is one bar of a waterfall render plan
type RenderRow struct {
	Name     string
	Value    float64
	Offset   float64 // left edge of the bar (cumulative start)
	Category string
	Color    Color
	Label    string
	Bold     bool
	IsTotal  bool
}

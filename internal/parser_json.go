package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

const FormatJSON = "json"

// ParseJSON parses a JSON array of expense objects
// Example:
//
//	[
//	  {"name": "Rent", "category": "Housing", "value": 1000, "currency": "EUR"},
//	  {"name": "Gym", "category": "Health", "value": 240, "currency": "USD",
//	   "repeat_every": 3, "repeat_every_unit": "months"}
//	]
func ParseJSON(path string) ([]RawExpense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var raws []RawExpense
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return raws, nil
}

func init() {
	RegisterParser(FormatJSON, ParserFunc(ParseJSON))
}

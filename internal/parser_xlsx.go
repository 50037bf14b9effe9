package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const FormatXLSX = "xlsx"

// ParseXLSX reads expenses from the first sheet of an Excel workbook.
// The header row must contain "name" and "value"; the other columns
// (account_id, description, category, currency, repeat_every, repeat_every_unit)
// are optional. Header matching is case-insensitive.
func ParseXLSX(path string) ([]RawExpense, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	cols := map[string]int{}
	dataStartRow := -1
	for i, row := range rows {
		found := map[string]int{}
		for j, cell := range row {
			key := strings.ToLower(strings.TrimSpace(cell))
			switch key {
			case "account_id", "name", "description", "category", "value",
				"currency", "repeat_every", "repeat_every_unit":
				found[key] = j
			}
		}
		_, hasName := found["name"]
		_, hasValue := found["value"]
		if hasName && hasValue {
			cols = found
			dataStartRow = i + 1
			break
		}
	}
	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (name, value)")
	}

	cell := func(row []string, key string) string {
		j, ok := cols[key]
		if !ok || j >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[j])
	}

	var raws []RawExpense
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, "name")
		valueStr := cell(row, "value")

		// Skip empty rows
		if name == "" && valueStr == "" {
			continue
		}

		raw := RawExpense{
			AccountID:       AccountID(cell(row, "account_id")),
			Name:            name,
			Description:     cell(row, "description"),
			Category:        cell(row, "category"),
			Currency:        cell(row, "currency"),
			RepeatEveryUnit: cell(row, "repeat_every_unit"),
		}

		if valueStr != "" {
			v, err := strconv.ParseFloat(strings.ReplaceAll(valueStr, ",", "."), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing value %q: %w", i+1, valueStr, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d: %w: %q (must be a finite number)", i+1, ErrInvalidValue, valueStr)
			}
			raw.Value = &v
		}

		if s := cell(row, "repeat_every"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing repeat_every %q: %w", i+1, s, err)
			}
			raw.RepeatEvery = &n
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

func init() {
	RegisterParser(FormatXLSX, ParserFunc(ParseXLSX))
}

package internal

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "expenses.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func TestParseXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"My household costs"},
		{},
		{"Name", "Category", "Value", "Currency", "Repeat_Every", "Repeat_Every_Unit", "Account_ID"},
		{"Rent", "Housing", 1000, "EUR", 1, "months", "bank"},
		{"Gym", "Health", "240,50", "USD", 3, "months"},
		{},
		{"Insurance", "", 600, "", "", "years"},
		{"Pending", "Misc"},
	})

	raws, err := ParseXLSX(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 4 {
		t.Fatalf("expected 4 records, got %d: %+v", len(raws), raws)
	}

	if raws[0].Name != "Rent" || raws[0].AccountID != "bank" || *raws[0].Value != 1000 || *raws[0].RepeatEvery != 1 {
		t.Errorf("unexpected first record: %+v", raws[0])
	}
	if *raws[1].Value != 240.5 || raws[1].Currency != "USD" || *raws[1].RepeatEvery != 3 {
		t.Errorf("unexpected second record: %+v", raws[1])
	}
	if raws[2].Category != "" || raws[2].RepeatEvery != nil || raws[2].RepeatEveryUnit != "years" {
		t.Errorf("unexpected third record: %+v", raws[2])
	}
	if raws[3].Value != nil {
		t.Errorf("record without value should have nil value: %+v", raws[3])
	}
}

func TestParseXLSX_MissingColumns(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Name", "Category"},
		{"Rent", "Housing"},
	})
	_, err := ParseXLSX(path)
	if err == nil || !strings.Contains(err.Error(), "required columns") {
		t.Errorf("expected missing columns error, got %v", err)
	}
}

func TestParseXLSX_BadValue(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"name", "value"},
		{"Rent", "a lot"},
	})
	_, err := ParseXLSX(path)
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Errorf("expected value error on row 2, got %v", err)
	}
}

func TestParseXLSX_NonFiniteValue(t *testing.T) {
	for _, bad := range []string{"NaN", "Inf", "-Inf", "+inf"} {
		t.Run(bad, func(t *testing.T) {
			path := writeWorkbook(t, [][]interface{}{
				{"name", "value"},
				{"Rent", 1000},
				{"Bad", bad},
				{"Gym", 80},
			})
			_, err := ParseXLSX(path)
			if !errors.Is(err, ErrInvalidValue) || !strings.Contains(err.Error(), "row 3") {
				t.Errorf("expected invalid value error on row 3, got %v", err)
			}
		})
	}
}

func TestLoadExpenses_XLSXByExtension(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"name", "category", "value"},
		{"Rent", "Housing", 900},
	})

	expenses, err := LoadExpenses(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expenses) != 1 || *expenses[0].MonthlyValueEUR != 900 {
		t.Errorf("unexpected expenses: %+v", expenses)
	}
}

package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetExpenses   = "Expenses"
	SheetItems      = "Items"
	SheetCategories = "Categories"
)

var expenseHeader = []string{
	"name", "category", "account_id", "yearly_value_eur", "monthly_value_eur",
	"yearly_value", "monthly_value", "currency", "value", "repeat_every", "repeat_every_unit",
}

// ExportXLSX writes the report to an Excel workbook: the normalized expenses
// plus one sheet per waterfall, each with a stacked bar chart of the plan.
func ExportXLSX(path string, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetExpenses); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := writeExpensesSheet(f, r.Expenses); err != nil {
		return err
	}

	title := periodTitle(r.Period)
	if err := writeWaterfallSheet(f, SheetItems, title+" Expenses Waterfall (EUR)", r.Items); err != nil {
		return err
	}
	if err := writeWaterfallSheet(f, SheetCategories, title+" Expenses by Category Waterfall (EUR)", r.Categories); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeExpensesSheet(f *excelize.File, expenses []Expense) error {
	header := make([]interface{}, len(expenseHeader))
	for i, h := range expenseHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetExpenses, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		row := []interface{}{
			e.Name, e.Category, e.AccountID,
			cellValue(e.YearlyValueEUR), cellValue(e.MonthlyValueEUR),
			cellValue(e.YearlyValue), cellValue(e.MonthlyValue),
			e.Currency, cellValue(e.Value), e.RepeatEvery, string(e.RepeatEveryUnit),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetExpenses, cell, &row); err != nil {
			return fmt.Errorf("writing expense %q: %w", e.Name, err)
		}
	}
	return f.SetColWidth(SheetExpenses, "A", "C", 20)
}

func cellValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return RoundCents(*v)
}

func writeWaterfallSheet(f *excelize.File, sheet, title string, rows []RenderRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}

	header := []interface{}{"name", "offset", "value", "label", "category", "color"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	styles := map[Color]int{}
	for i, row := range rows {
		values := []interface{}{
			row.Name, RoundCents(row.Offset), RoundCents(row.Value),
			row.Label, row.Category, string(row.Color),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %q: %w", row.Name, err)
		}

		style, ok := styles[row.Color]
		if !ok || row.Bold {
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{string(row.Color)}},
				Font: &excelize.Font{Bold: row.Bold},
			})
			if err != nil {
				return fmt.Errorf("creating style: %w", err)
			}
			if !row.Bold {
				styles[row.Color] = style
			}
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("styling row %q: %w", row.Name, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	series, lastCol, err := writeColorSeries(f, sheet, rows)
	if err != nil {
		return err
	}
	anchor, err := excelize.CoordinatesToCellName(lastCol+2, 2)
	if err != nil {
		return err
	}

	return f.AddChart(sheet, anchor, &excelize.Chart{
		Type:      excelize.BarStacked,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: title}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 720, Height: 480},
	})
}

// writeColorSeries lays out the chart data: an invisible offset series, then one
// value column per color holding only the rows drawn in that color, so each
// stacked bar keeps its category color. Returns the series and the last column used.
func writeColorSeries(f *excelize.File, sheet string, rows []RenderRow) ([]excelize.ChartSeries, int, error) {
	const firstCol = 8 // H, one blank column after the data table
	last := len(rows) + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", sheet, last)

	series := []excelize.ChartSeries{{
		Name:       sheet + "!$B$1",
		Categories: categories,
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet, last),
		Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFFFF"}},
	}}

	var colors []Color
	columns := map[Color]int{}
	for _, row := range rows {
		if _, ok := columns[row.Color]; !ok {
			columns[row.Color] = firstCol + len(colors)
			colors = append(colors, row.Color)
		}
	}

	for _, c := range colors {
		col := columns[c]
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, 0, err
		}
		for i, row := range rows {
			if row.Color != c {
				continue
			}
			cell := fmt.Sprintf("%s%d", name, i+2)
			if err := f.SetCellValue(sheet, cell, RoundCents(row.Value)); err != nil {
				return nil, 0, fmt.Errorf("writing series value: %w", err)
			}
		}
		if err := f.SetCellValue(sheet, name+"1", seriesLabel(rows, c)); err != nil {
			return nil, 0, fmt.Errorf("writing series header: %w", err)
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", sheet, name),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, name, name, last),
			Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(string(c), "#")}},
		})
	}

	return series, firstCol + len(colors) - 1, nil
}

// seriesLabel names a color column after the first category drawn in it
func seriesLabel(rows []RenderRow, c Color) string {
	for _, row := range rows {
		if row.Color == c {
			if row.Category != "" {
				return row.Category
			}
			return row.Name
		}
	}
	return string(c)
}

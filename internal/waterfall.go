package internal

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

const (
	DefaultItemAnchor     = "Rent"
	DefaultCategoryAnchor = "Housing"
)

// LayoutOptions controls where the TOTAL bar goes and how rows are colored
type LayoutOptions struct {
	// Anchor is the name of the row after which the TOTAL row is inserted.
	// When no row matches, TOTAL becomes the first row.
	Anchor string
	Colors CategoryColorMap
}

// Layout turns items into a waterfall render plan: rows sorted ascending by value
// (ties keep input order), each offset by the sum of the rows before it, with a
// synthetic TOTAL row spliced in right after the anchor.
func Layout(items []Item, opts LayoutOptions) []RenderRow {
	if len(items) == 0 {
		return []RenderRow{}
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value < sorted[j].Value
	})

	var total float64
	rows := make([]RenderRow, 0, len(sorted)+1)
	insertAt := -1
	for i, item := range sorted {
		rows = append(rows, RenderRow{
			Name:     item.Name,
			Value:    item.Value,
			Offset:   total,
			Category: item.Category,
			Color:    opts.Colors.ColorOf(item.Category),
		})
		total += item.Value
		if insertAt < 0 && item.Name == opts.Anchor {
			insertAt = i + 1
		}
	}
	if insertAt < 0 {
		insertAt = 0
	}

	totalRow := RenderRow{
		Name:     TotalName,
		Value:    total,
		Offset:   0,
		Category: TotalCategory,
		Color:    TotalColor,
		Bold:     true,
		IsTotal:  true,
	}
	rows = append(rows, RenderRow{})
	copy(rows[insertAt+1:], rows[insertAt:])
	rows[insertAt] = totalRow

	for i := range rows {
		rows[i].Label = FormatLabel(rows[i].Value, total)
	}
	return rows
}

// FormatLabel renders "<value> - <percent>%" with both parts rounded half to even.
// The percent is 0 when the grand total is zero.
func FormatLabel(value, grandTotal float64) string {
	percent := 0.0
	if grandTotal != 0 {
		percent = math.RoundToEven(100 * value / grandTotal)
	}
	return fmt.Sprintf("%d - %d%%", int64(math.RoundToEven(value)), int64(percent))
}

// ItemsFromExpenses builds one item per expense valued in EUR for the given period.
// Expenses without a value are skipped; uncategorized ones fall into "Other".
func ItemsFromExpenses(expenses []Expense, period RepeatUnit, log zerolog.Logger) []Item {
	items := make([]Item, 0, len(expenses))
	for _, e := range expenses {
		v := e.ValueEUR(period)
		if v == nil {
			log.Debug().Str("expense", e.Name).Msg("skipping expense without value")
			continue
		}
		category := e.Category
		if category == "" {
			category = OtherCategory
		}
		items = append(items, Item{Name: e.Name, Value: *v, Category: category})
	}
	return items
}

// AggregateByCategory sums expense values per category. Uncategorized expenses
// are left out; valueless ones count as 0, so a category whose expenses all
// lack a value still gets a zero bar. Items are returned in alphabetical order.
func AggregateByCategory(expenses []Expense, period RepeatUnit) []Item {
	sums := make(map[string]float64)
	for _, e := range expenses {
		if !e.IsCategorized() {
			continue
		}
		var v float64
		if p := e.ValueEUR(period); p != nil {
			v = *p
		}
		sums[e.Category] += v
	}

	categories := make([]string, 0, len(sums))
	for c := range sums {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	items := make([]Item, 0, len(categories))
	for _, c := range categories {
		items = append(items, Item{Name: c, Value: sums[c], Category: c})
	}
	return items
}

// SumValues returns the sum of all non-total row values
func SumValues(rows []RenderRow) float64 {
	var sum float64
	for _, r := range rows {
		if !r.IsTotal {
			sum += r.Value
		}
	}
	return sum
}

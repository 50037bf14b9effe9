package internal

import (
	"testing"

	"github.com/rs/zerolog"
)

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func sampleExpenses(t *testing.T) []Expense {
	t.Helper()
	return []Expense{
		mustExpense(t, RawExpense{Name: "Rent", Category: "Housing", Value: ptr(1000.0), AccountID: "bank"}),
		mustExpense(t, RawExpense{Name: "Coffee", Category: "Food", Value: ptr(50.0), AccountID: "card"}),
		mustExpense(t, RawExpense{Name: "Gym", Category: "Health", Value: ptr(80.0)}),
		mustExpense(t, RawExpense{Name: "Streaming", Value: ptr(120.0), RepeatEveryUnit: "years"}),
		mustExpense(t, RawExpense{Name: "Pending", Category: "Misc"}),
	}
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(sampleExpenses(t), ReportOptions{
		ItemAnchor:     DefaultItemAnchor,
		CategoryAnchor: DefaultCategoryAnchor,
	}, nopLogger())

	if r.Period != UnitMonths {
		t.Errorf("Period = %q, want months", r.Period)
	}
	if r.Colors.Len() != 4 {
		t.Errorf("expected 4 categories (including the valueless one), got %d", r.Colors.Len())
	}
	if names := rowNames(r.Items); names != "Streaming,Coffee,Gym,Rent,TOTAL" {
		t.Errorf("items order = %s", names)
	}
	if names := rowNames(r.Categories); names != "Misc,Food,Health,Housing,TOTAL" {
		t.Errorf("categories order = %s", names)
	}
	if r.Items[0].Color != FallbackColor {
		t.Errorf("uncategorized item color = %s, want fallback", r.Items[0].Color)
	}
	if len(r.Expenses) != 5 || r.Expenses[0].Name != "Rent" || r.Expenses[4].Name != "Pending" {
		t.Errorf("unexpected expense order: %v", r.Expenses)
	}
}

func TestBuildReport_ExclusionsAndPeriod(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.yaml", "exclude: [\"coffee\"]\n"))
	if err != nil {
		t.Fatal(err)
	}

	r := BuildReport(sampleExpenses(t), ReportOptions{
		Period:         UnitYears,
		ItemAnchor:     "Rent",
		CategoryAnchor: "Housing",
		Config:         cfg,
	}, nopLogger())

	for _, e := range r.Expenses {
		if e.Name == "Coffee" {
			t.Error("Coffee should be excluded")
		}
	}
	if _, ok := r.Colors.Get("Food"); ok {
		t.Error("excluded expense category should not get a color")
	}
	total := r.Items[len(r.Items)-1]
	if !total.IsTotal || !approxEqual(total.Value, 12*1080+120, 1e-6) {
		t.Errorf("yearly total = %+v", total)
	}
}

func TestBuildReport_Empty(t *testing.T) {
	r := BuildReport(nil, ReportOptions{}, nopLogger())
	if len(r.Items) != 0 || len(r.Categories) != 0 || r.Colors.Len() != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
}

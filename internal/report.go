package internal

import (
	"github.com/rs/zerolog"
)

// ReportOptions selects the basis and anchors of a report
type ReportOptions struct {
	Period         RepeatUnit
	ItemAnchor     string
	CategoryAnchor string
	Palette        []Color
	Accounts       AccountOrder
	Config         *Config
}

// Report holds everything a renderer needs: the normalized expenses in display
// order, the shared color map and both waterfall render plans.
type Report struct {
	Period     RepeatUnit
	Expenses   []Expense
	Colors     CategoryColorMap
	Items      []RenderRow
	Categories []RenderRow
}

// BuildReport applies exclusions, assigns category colors across the whole
// dataset and lays out the per-item and per-category waterfalls.
func BuildReport(expenses []Expense, opts ReportOptions, log zerolog.Logger) Report {
	if opts.Period == "" {
		opts.Period = UnitMonths
	}

	kept := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if opts.Config.ShouldExclude(e.Name) {
			log.Debug().Str("expense", e.Name).Msg("excluded by config")
			continue
		}
		kept = append(kept, e)
	}

	colors := CategoryColorMapFor(kept, opts.Palette)

	items := Layout(ItemsFromExpenses(kept, opts.Period, log), LayoutOptions{
		Anchor: opts.ItemAnchor,
		Colors: colors,
	})
	categories := Layout(AggregateByCategory(kept, opts.Period), LayoutOptions{
		Anchor: opts.CategoryAnchor,
		Colors: colors,
	})

	log.Debug().
		Int("expenses", len(kept)).
		Int("categories", colors.Len()).
		Str("period", string(opts.Period)).
		Msg("built report")

	return Report{
		Period:     opts.Period,
		Expenses:   SortExpenses(kept, opts.Period, opts.Accounts),
		Colors:     colors,
		Items:      items,
		Categories: categories,
	}
}

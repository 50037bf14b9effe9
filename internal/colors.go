package internal

import "sort"

// Color is a hex color string such as "#1f77b4"
type Color string

const (
	// TotalColor marks the synthetic TOTAL bar
	TotalColor Color = "#ffa500"
	// FallbackColor is used for categories without an assigned color
	FallbackColor Color = "#808080"

	TotalName     = "TOTAL"
	TotalCategory = "Total"
	OtherCategory = "Other"
)

// DefaultPalette is the tab10 color cycle
var DefaultPalette = []Color{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// CategoryColorMap assigns a stable color to each category
type CategoryColorMap struct {
	categories []string // sorted
	colors     map[string]Color
}

// LegendEntry is one line of a chart legend
type LegendEntry struct {
	Label string
	Color Color
}

// NewCategoryColorMap assigns palette colors to the distinct non-empty categories
// in alphabetical order, cycling through the palette when it runs out.
// The result does not depend on the order of categories.
func NewCategoryColorMap(categories []string, palette []Color) CategoryColorMap {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	seen := make(map[string]bool)
	var unique []string
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	sort.Strings(unique)

	m := CategoryColorMap{
		categories: unique,
		colors:     make(map[string]Color, len(unique)),
	}
	for i, c := range unique {
		m.colors[c] = palette[i%len(palette)]
	}
	return m
}

// CategoryColorMapFor builds the color map from every category in the dataset
func CategoryColorMapFor(expenses []Expense, palette []Color) CategoryColorMap {
	categories := make([]string, 0, len(expenses))
	for _, e := range expenses {
		categories = append(categories, e.Category)
	}
	return NewCategoryColorMap(categories, palette)
}

// Get returns the color of a category
func (m CategoryColorMap) Get(category string) (Color, bool) {
	c, ok := m.colors[category]
	return c, ok
}

// ColorOf returns the color of a category, or FallbackColor
func (m CategoryColorMap) ColorOf(category string) Color {
	if c, ok := m.colors[category]; ok {
		return c
	}
	return FallbackColor
}

// Categories returns the mapped categories in alphabetical order
func (m CategoryColorMap) Categories() []string {
	out := make([]string, len(m.categories))
	copy(out, m.categories)
	return out
}

func (m CategoryColorMap) Len() int {
	return len(m.categories)
}

// Legend returns the TOTAL entry followed by every category in alphabetical order
func (m CategoryColorMap) Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(m.categories)+1)
	entries = append(entries, LegendEntry{Label: TotalName, Color: TotalColor})
	for _, c := range m.categories {
		entries = append(entries, LegendEntry{Label: c, Color: m.colors[c]})
	}
	return entries
}

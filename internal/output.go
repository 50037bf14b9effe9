package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputOptions controls how a report is displayed
type OutputOptions struct {
	View     string // table, items, categories or all
	Currency Currency
	Width    int // maximum bar width in characters
}

const (
	ViewTable      = "table"
	ViewItems      = "items"
	ViewCategories = "categories"
	ViewAll        = "all"

	DefaultBarWidth = 50
)

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Period     string        `json:"period"`
	Currency   string        `json:"currency"`
	Colors     []JSONColor   `json:"colors"`
	Items      []JSONRow     `json:"items"`
	Categories []JSONRow     `json:"categories"`
	Expenses   []JSONExpense `json:"expenses"`
}

type JSONColor struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

type JSONRow struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Offset   float64 `json:"offset"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Label    string  `json:"label"`
	Bold     bool    `json:"bold,omitempty"`
	Total    bool    `json:"total,omitempty"`
}

type JSONExpense struct {
	Name            string   `json:"name"`
	Category        string   `json:"category,omitempty"`
	AccountID       string   `json:"account_id,omitempty"`
	Description     string   `json:"description,omitempty"`
	YearlyValueEUR  *float64 `json:"yearly_value_eur"`
	MonthlyValueEUR *float64 `json:"monthly_value_eur"`
	YearlyValue     *float64 `json:"yearly_value"`
	MonthlyValue    *float64 `json:"monthly_value"`
	Currency        string   `json:"currency,omitempty"`
	Value           *float64 `json:"value"`
	RepeatEvery     int      `json:"repeat_every"`
	RepeatEveryUnit string   `json:"repeat_every_unit"`
}

// RoundCents rounds to two decimals
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundCentsPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := RoundCents(*v)
	return &r
}

// NewJSONOutput converts a report to its JSON form with amounts rounded to cents
func NewJSONOutput(r Report) JSONOutput {
	out := JSONOutput{
		Period:     string(r.Period),
		Currency:   BaseCurrency,
		Colors:     []JSONColor{},
		Items:      jsonRows(r.Items),
		Categories: jsonRows(r.Categories),
		Expenses:   []JSONExpense{},
	}
	for _, c := range r.Colors.Categories() {
		out.Colors = append(out.Colors, JSONColor{Category: c, Color: string(r.Colors.ColorOf(c))})
	}
	for _, e := range r.Expenses {
		out.Expenses = append(out.Expenses, JSONExpense{
			Name:            e.Name,
			Category:        e.Category,
			AccountID:       e.AccountID,
			Description:     e.Description,
			YearlyValueEUR:  roundCentsPtr(e.YearlyValueEUR),
			MonthlyValueEUR: roundCentsPtr(e.MonthlyValueEUR),
			YearlyValue:     roundCentsPtr(e.YearlyValue),
			MonthlyValue:    roundCentsPtr(e.MonthlyValue),
			Currency:        e.Currency,
			Value:           e.Value,
			RepeatEvery:     e.RepeatEvery,
			RepeatEveryUnit: string(e.RepeatEveryUnit),
		})
	}
	return out
}

func jsonRows(rows []RenderRow) []JSONRow {
	out := make([]JSONRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, JSONRow{
			Name:     row.Name,
			Value:    RoundCents(row.Value),
			Offset:   RoundCents(row.Offset),
			Category: row.Category,
			Color:    string(row.Color),
			Label:    row.Label,
			Bold:     row.Bold,
			Total:    row.IsTotal,
		})
	}
	return out
}

// PrintReportJSON outputs the report in JSON format
func PrintReportJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewJSONOutput(r))
}

// PrintReport renders the selected views of a report as text
func PrintReport(w io.Writer, r Report, opts OutputOptions) {
	view := opts.View
	if view == "" {
		view = ViewAll
	}
	title := periodTitle(r.Period)

	if view == ViewTable || view == ViewAll {
		PrintExpensesTable(w, r.Expenses, opts.Currency)
		fmt.Fprintln(w)
	}
	if view == ViewItems || view == ViewAll {
		PrintWaterfall(w, fmt.Sprintf("%s Expenses Waterfall (EUR)", title), r.Items, r.Colors, opts.Width)
		fmt.Fprintln(w)
	}
	if view == ViewCategories || view == ViewAll {
		PrintWaterfall(w, fmt.Sprintf("%s Expenses by Category Waterfall (EUR)", title), r.Categories, r.Colors, opts.Width)
	}
}

func periodTitle(period RepeatUnit) string {
	if period == UnitYears {
		return "Yearly"
	}
	return "Monthly"
}

// PrintExpensesTable outputs the normalized expenses as a formatted table.
// The EUR columns are converted to cur; native columns keep each expense's currency.
func PrintExpensesTable(w io.Writer, expenses []Expense, cur Currency) {
	cur, rate := displayCurrency(cur)

	t := table.NewWriter()
	t.SetOutputMirror(w)

	// Show the account column only when some expense has an account
	hasAccounts := false
	for _, e := range expenses {
		if e.AccountID != "" {
			hasAccounts = true
			break
		}
	}

	header := table.Row{"Name", "Category"}
	if hasAccounts {
		header = append(header, "Account")
	}
	header = append(header,
		fmt.Sprintf("Yearly (%s)", cur.Code), fmt.Sprintf("Monthly (%s)", cur.Code),
		"Yearly", "Monthly", "Value", "Repeats")
	t.AppendHeader(header)

	var totalMonthly, totalYearly float64
	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = text.FgHiBlack.Sprint("-")
		}
		row := table.Row{e.Name, category}
		if hasAccounts {
			row = append(row, e.AccountID)
		}

		// No currency code means the value is already in the base currency
		native := GetCurrency(e.Currency)
		if e.Currency == "" {
			native = GetCurrency(BaseCurrency)
		}
		row = append(row,
			formatAmount(cur, scaled(e.YearlyValueEUR, rate)),
			formatAmount(cur, scaled(e.MonthlyValueEUR, rate)),
			formatAmount(native, e.YearlyValue),
			formatAmount(native, e.MonthlyValue),
			formatAmount(native, e.Value),
			e.RepeatString(),
		)
		t.AppendRow(row)

		if e.MonthlyValueEUR != nil {
			totalMonthly += *e.MonthlyValueEUR
		}
		if e.YearlyValueEUR != nil {
			totalYearly += *e.YearlyValueEUR
		}
	}

	t.AppendSeparator()

	footer := table.Row{text.Bold.Sprint("Total"), ""}
	if hasAccounts {
		footer = append(footer, "")
	}
	footer = append(footer,
		text.Bold.Sprint(cur.FormatCents(totalYearly*rate)),
		text.Bold.Sprint(cur.FormatCents(totalMonthly*rate)),
		"", "", "", "")
	t.AppendFooter(footer)

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	// Right-align the amount columns
	first := 3
	if hasAccounts {
		first = 4
	}
	var configs []table.ColumnConfig
	for i := first; i < first+5; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	t.Render()
}

// displayCurrency resolves the currency EUR amounts are shown in and the
// rate converting to it. Unset or unsupported currencies fall back to EUR.
func displayCurrency(cur Currency) (Currency, float64) {
	if cur.Code == "" {
		return GetCurrency(BaseCurrency), 1
	}
	rate, err := FXRate(BaseCurrency, cur.Code)
	if err != nil {
		return GetCurrency(BaseCurrency), 1
	}
	return cur, rate
}

func scaled(v *float64, rate float64) *float64 {
	if v == nil {
		return nil
	}
	s := *v * rate
	return &s
}

func formatAmount(c Currency, v *float64) string {
	if v == nil {
		return text.FgHiBlack.Sprint("-")
	}
	return c.FormatCents(*v)
}

// PrintWaterfall draws a render plan as horizontal bars, one line per row.
// Each bar starts at the row's offset; bars and names are colored by category.
func PrintWaterfall(w io.Writer, title string, rows []RenderRow, colors CategoryColorMap, width int) {
	if width <= 0 {
		width = DefaultBarWidth
	}
	r := lipgloss.NewRenderer(w)

	fmt.Fprintln(w, r.NewStyle().Bold(true).Render(title))
	if len(rows) == 0 {
		fmt.Fprintln(w, "No expenses.")
		return
	}

	nameWidth := 0
	maxExtent := 0.0
	for _, row := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(row.Name))
		maxExtent = max(maxExtent, row.Offset+row.Value, row.Offset)
	}
	scale := 0.0
	if maxExtent > 0 {
		scale = float64(width) / maxExtent
	}

	for _, row := range rows {
		style := r.NewStyle().Foreground(lipgloss.Color(row.Color))
		labelStyle := r.NewStyle()
		if row.Bold {
			style = style.Bold(true)
			labelStyle = labelStyle.Bold(true)
		}

		start, length := barSpan(row, scale)
		bar := strings.Repeat(" ", start) + style.Render(strings.Repeat("█", length))
		name := style.Render(row.Name) + strings.Repeat(" ", nameWidth-lipgloss.Width(row.Name))

		fmt.Fprintf(w, "%s │%s %s\n", name, bar, labelStyle.Render(row.Label))
	}

	fmt.Fprintln(w)
	var legend []string
	for _, entry := range colors.Legend() {
		swatch := r.NewStyle().Foreground(lipgloss.Color(entry.Color)).Render("■")
		legend = append(legend, swatch+" "+entry.Label)
	}
	fmt.Fprintln(w, "Categories: "+strings.Join(legend, "  "))
}

// barSpan converts a row into a start column and a length in characters.
// Negative values are drawn leftwards from the offset.
func barSpan(row RenderRow, scale float64) (start, length int) {
	left, right := row.Offset, row.Offset+row.Value
	if right < left {
		left, right = right, left
	}
	left = max(left, 0)
	right = max(right, 0)
	start = int(math.Round(left * scale))
	length = int(math.Round(right*scale)) - start
	if length < 1 && row.Value != 0 {
		length = 1
	}
	return start, max(length, 0)
}

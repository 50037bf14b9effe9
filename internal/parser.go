package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Parser parses an expense file into raw records
type Parser interface {
	Parse(path string) ([]RawExpense, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]RawExpense, error)

func (f ParserFunc) Parse(path string) ([]RawExpense, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// RegisterParser registers a parser with the given name
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given format
func GetParser(format string) (Parser, error) {
	p, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (available: %v)", format, AvailableFormats())
	}
	return p, nil
}

// AvailableFormats returns the registered format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range parsers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "xlsx:costs.xlsx" → ("xlsx", "costs.xlsx")
// Example: "C:\path\file.json" → ("", "C:\path\file.json")
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// FormatForPath guesses the format from the file extension
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatJSON
	}
}

// LoadExpenses parses the file argument and validates and normalizes every record.
// The first invalid record aborts loading with its index and name in the error.
func LoadExpenses(arg string, log zerolog.Logger) ([]Expense, error) {
	format, path := ParseFileArg(arg)
	if format == "" {
		format = FormatForPath(path)
	}
	p, err := GetParser(format)
	if err != nil {
		return nil, err
	}

	raws, err := p.Parse(path)
	if err != nil {
		return nil, err
	}

	expenses := make([]Expense, 0, len(raws))
	for i, raw := range raws {
		e, err := NewExpense(raw)
		if err != nil {
			if raw.Name != "" {
				return nil, fmt.Errorf("expense %d (%s): %w", i, raw.Name, err)
			}
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}
		if e.Value == nil {
			log.Warn().Int("index", i).Str("expense", e.Name).Msg("expense has no value")
		}
		if raw.RepeatEveryUnit == "" {
			log.Debug().Str("expense", e.Name).Str("unit", string(e.RepeatEveryUnit)).Msg("defaulted repeat unit")
		}
		expenses = append(expenses, e)
	}

	log.Debug().Str("path", path).Str("format", format).Int("count", len(expenses)).Msg("loaded expenses")
	return expenses, nil
}

package internal

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats amounts in a currency using the currency's home locale
type Currency struct {
	Code    string // "EUR", "USD", "BRL"
	unit    currency.Unit
	symbol  string
	prefix  bool
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// homeLocales maps a currency to the locale its amounts are formatted in
var homeLocales = map[string]language.Tag{
	"EUR": language.German,
	"USD": language.AmericanEnglish,
	"BRL": language.BrazilianPortuguese,
	"GBP": language.BritishEnglish,
	"SEK": language.Swedish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
}

// prefixCurrencies place their symbol before the amount.
// golang.org/x/text/currency doesn't expose symbol positioning from CLDR patterns.
var prefixCurrencies = map[string]bool{
	"USD": true,
	"GBP": true,
	"JPY": true,
}

// GetCurrency returns the Currency for a given code. Unknown codes are
// formatted in English with the code as symbol.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))

	unit, err := currency.ParseISO(code)
	isUnknown := err != nil
	if isUnknown {
		unit = currency.EUR // fallback unit for number formatting only
	}

	tag, ok := homeLocales[code]
	if !ok {
		tag = language.English
	}

	c := Currency{
		Code:    code,
		unit:    unit,
		prefix:  prefixCurrencies[code],
		printer: message.NewPrinter(tag),
	}

	switch {
	case isUnknown:
		c.symbol = code
	case symbolOverrides[code] != "":
		c.symbol = symbolOverrides[code]
	default:
		c.symbol = c.printer.Sprint(currency.NarrowSymbol(unit))
	}
	return c
}

// Format formats a whole amount with the currency symbol
func (c Currency) Format(amount float64) string {
	return c.withSymbol(c.printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(0))))
}

// FormatCents formats an amount with exactly two decimals
func (c Currency) FormatCents(amount float64) string {
	return c.withSymbol(c.printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2))))
}

func (c Currency) withSymbol(formatted string) string {
	if c.prefix {
		return c.symbol + formatted
	}
	return formatted + " " + c.symbol
}

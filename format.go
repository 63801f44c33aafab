package household

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatCurrency formats m for display in the given language.
//
// Grouping and decimal marks follow the language, the number of fractional
// digits follows the currency (none for JPY or CLP, two for most others)
// and the symbol is placed where the currency usually puts it.
func FormatCurrency(m Money, lang language.Tag) string {
	p := message.NewPrinter(lang)
	digits := m.fraction()
	amount := p.Sprint(number.Decimal(m.value.Abs().InexactFloat64(), number.Scale(digits)))
	sign := ""
	if m.value.Round(int32(digits)).IsNegative() {
		sign = "-"
	}
	if m.cur == "" || !validCurrency(m.cur) {
		return strings.TrimSpace(sign + amount + " " + m.cur)
	}
	cur := m.currency()
	// go-money templates use "$" for the symbol and "1" for the amount.
	out := strings.Replace(cur.Template, "1", amount, 1)
	out = strings.Replace(out, "$", cur.Grapheme, 1)
	return sign + out
}

// FormatNumber formats v with a fixed number of decimals (2 when decimals
// is negative) using the grouping rules of the language.
func FormatNumber(v float64, decimals int, lang language.Tag) string {
	if decimals < 0 {
		decimals = 2
	}
	return message.NewPrinter(lang).Sprint(number.Decimal(v, number.Scale(decimals)))
}

// FormatPercent formats a percentage, or a 0-1 fraction, with two decimals.
func FormatPercent(v float64, lang language.Tag) string {
	return FormatNumber(float64(AsPercent(v)), 2, lang) + "%"
}

// FormatTotals formats per-currency totals, joined with " + ". Empty totals
// format as a zero in defaultCurrency.
func FormatTotals(t Totals, defaultCurrency string, lang language.Tag) string {
	curs := t.Currencies()
	if len(curs) == 0 {
		return FormatCurrency(M(0, defaultCurrency), lang)
	}
	parts := make([]string, 0, len(curs))
	for _, c := range curs {
		parts = append(parts, FormatCurrency(t[c], lang))
	}
	return strings.Join(parts, " + ")
}

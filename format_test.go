package household

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		m    Money
		lang language.Tag
		want string
	}{
		{M(1234.5, "USD"), language.English, "$1,234.50"},
		{M(-1234.5, "USD"), language.English, "-$1,234.50"},
		{M(1234, "JPY"), language.English, "¥1,234"},
		{M(0, "USD"), language.English, "$0.00"},
		{M(12.5, "XYZ"), language.English, "12.50 XYZ"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.m, tt.lang); got != tt.want {
			t.Errorf("FormatCurrency(%v, %v) = %q, want %q", tt.m.Amount(), tt.lang, got, tt.want)
		}
	}

	if got := FormatCurrency(M(1234.5, "EUR"), language.German); !strings.Contains(got, "1.234,50") || !strings.Contains(got, "€") {
		t.Errorf("FormatCurrency(EUR, de) = %q, want 1.234,50 and €", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		lang     language.Tag
		want     string
	}{
		{1234.5678, 2, language.English, "1,234.57"},
		{1234.5678, -1, language.English, "1,234.57"},
		{3, 0, language.English, "3"},
		{1234.5, 1, language.French, "1\u00a0234,5"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v, tt.decimals, tt.lang); got != tt.want {
			t.Errorf("FormatNumber(%v, %d, %v) = %q, want %q", tt.v, tt.decimals, tt.lang, got, tt.want)
		}
	}
}

func TestFormatNumber_Locale(t *testing.T) {
	// French is checked on its decimal mark only.
	if got := FormatNumber(1234.5, 1, language.French); !strings.HasSuffix(got, "234,5") {
		t.Errorf("FormatNumber(fr) = %q, want a comma decimal mark", got)
	}
	if got := FormatNumber(1234.5, 2, language.German); got != "1.234,50" {
		t.Errorf("FormatNumber(de) = %q, want 1.234,50", got)
	}
}

func TestAsPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want Percent
	}{
		{0.25, 25},
		{1, 100},
		{25, 25},
		{-0.5, -50},
		{-12, -12},
		{0, 0},
	}
	for _, tt := range tests {
		if got := AsPercent(tt.in); !got.Equal(tt.want) {
			t.Errorf("AsPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := FormatPercent(0.1234, language.English); got != "12.34%" {
		t.Errorf("FormatPercent(0.1234) = %q", got)
	}
}

func TestFormatTotals(t *testing.T) {
	if got := FormatTotals(nil, "USD", language.English); got != "$0.00" {
		t.Errorf("FormatTotals(nil) = %q", got)
	}
	tot := Totals{}.Add(M(5, "USD")).Add(M(3, "EUR"))
	if got := FormatTotals(tot, "USD", language.English); got != "€3.00 + $5.00" {
		t.Errorf("FormatTotals() = %q", got)
	}
}

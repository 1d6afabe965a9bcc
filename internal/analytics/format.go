package analytics

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Revenue figures are Brazilian reais, grouped and decimal-separated the
// pt-BR way: R$1.234,56.
var currencyPrinter = message.NewPrinter(language.BrazilianPortuguese)

func formatCurrency(v float64) string {
	return currencyPrinter.Sprintf("R$%.2f", v)
}

// shortDate renders M/D/YYYY without zero padding, matching how the original
// dashboard localized its dates.
func shortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// monthLabel renders a month as e.g. "Oct '17".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s '%02d", t.Format("Jan"), t.Year()%100)
}

// titleCase upper-cases the first byte only; order statuses are single
// lowercase words in the dataset.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

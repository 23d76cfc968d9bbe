package mapping

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frPrinter = message.NewPrinter(language.French)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// formatAmount renders v as French currency, e.g. "45,00 €".
func formatAmount(v float64) string {
	return frPrinter.Sprintf("%.2f €", v)
}

func formatPercent(rate float64) string {
	return frPrinter.Sprintf("%.0f %%", rate*100)
}

func itoa(n int) string { return strconv.Itoa(n) }

func uitoa(n uint) string { return strconv.FormatUint(uint64(n), 10) }

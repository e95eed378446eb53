package presentation

import (
	"fmt"
	"regexp"
	"strings"
)

// The extractor emits free-form Portuguese date fragments, not ISO dates.
// These formatters upgrade the two recognized patterns to narrative text and
// pass everything else through unchanged. Unparsable input is expected and
// cosmetic-only, so these must never fail.

var dayMonthPattern = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-zÀ-ÿ]{3})\.?$`)

var monthNames = map[string]string{
	"jan": "janeiro",
	"fev": "fevereiro",
	"mar": "março",
	"abr": "abril",
	"mai": "maio",
	"jun": "junho",
	"jul": "julho",
	"ago": "agosto",
	"set": "setembro",
	"out": "outubro",
	"nov": "novembro",
	"dez": "dezembro",
}

var weekdayNames = map[string]string{
	"seg": "segunda-feira",
	"ter": "terça-feira",
	"qua": "quarta-feira",
	"qui": "quinta-feira",
	"sex": "sexta-feira",
	"sab": "sábado",
	"sáb": "sábado",
	"dom": "domingo",
}

// FormatNarrativeDate turns "15 mar" into "15 de março". Input not matching
// the {day} {month-abbrev} pattern is returned unchanged.
func FormatNarrativeDate(s string) string {
	trimmed := strings.TrimSpace(s)
	m := dayMonthPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return s
	}
	month, ok := monthNames[strings.ToLower(m[2])]
	if !ok {
		return s
	}
	return fmt.Sprintf("%s de %s", m[1], month)
}

// FormatWeekday turns a three-letter Portuguese weekday abbreviation into its
// full name ("seg" -> "segunda-feira"). Anything else is returned unchanged.
func FormatWeekday(s string) string {
	if full, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return full
	}
	return s
}

package evaluator

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/value"
	"github.com/goodsign/monday"
)

// Locale controls locale-aware month/weekday names for Date's AS STRING
// conversion and the format() builtin. cmd/findit overrides it from
// pkg/findit/config's `locale` setting at startup; the zero value behaves
// as EnUS.
var Locale monday.Locale = monday.LocaleEnUS

// evalDateLiteral parses a DateLiteral's raw inner text (spec.md §6's
// thirteen accepted @(...) forms, a subset of what dateparse recognizes).
// An unparseable literal yields Empty rather than a compile error, per the
// evaluator's "everything but the three named cases is a value" design —
// the parser already accepted the token; only its content is in question.
func evalDateLiteral(d *ast.DateLiteral) value.Value {
	t, ok := parseFlexibleDate(d.Value)
	if !ok {
		return value.EmptyValue
	}
	return value.Date{T: t}
}

func parseFlexibleDate(s string) (time.Time, bool) {
	t, err := dateparse.ParseAny(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dateFormatForDisplay is the callback value.AsString uses for `AS
// STRING` and for every other total-string-rendering call site (join,
// format-display, debug logging): RFC3339 run through the configured
// locale's month/weekday names where the layout happens to spell one out.
func dateFormatForDisplay(t time.Time) string {
	return monday.Format(t, "2006-01-02T15:04:05Z07:00", Locale)
}

// strftimeToGoLayout translates the subset of strftime directives findit
// documents for format()/parse() (%Y %m %d %H %M %S %y %B %b %A %a %p %z %%)
// into a Go reference-time layout string.
func strftimeToGoLayout(pattern string) string {
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			sb.WriteByte(pattern[i])
			continue
		}
		i++
		switch pattern[i] {
		case 'Y':
			sb.WriteString("2006")
		case 'y':
			sb.WriteString("06")
		case 'm':
			sb.WriteString("01")
		case 'd':
			sb.WriteString("02")
		case 'H':
			sb.WriteString("15")
		case 'M':
			sb.WriteString("04")
		case 'S':
			sb.WriteString("05")
		case 'B':
			sb.WriteString("January")
		case 'b':
			sb.WriteString("Jan")
		case 'A':
			sb.WriteString("Monday")
		case 'a':
			sb.WriteString("Mon")
		case 'p':
			sb.WriteString("PM")
		case 'z':
			sb.WriteString("-0700")
		case '%':
			sb.WriteByte('%')
		default:
			sb.WriteByte('%')
			sb.WriteByte(pattern[i])
		}
	}
	return sb.String()
}

// formatDateWithPattern backs `format(date AS fmt)`.
func formatDateWithPattern(t time.Time, pattern string) string {
	return monday.Format(t, strftimeToGoLayout(pattern), Locale)
}

// parseDateWithPattern backs `parse(str FROM fmt)`, falling back to the
// flexible dateparse parser (the DOMAIN STACK's stated reason for carrying
// araddon/dateparse alongside a fixed-layout parse) when the declared
// pattern doesn't match.
func parseDateWithPattern(s, pattern string) (time.Time, bool) {
	if t, err := time.Parse(strftimeToGoLayout(pattern), s); err == nil {
		return t, true
	}
	return parseFlexibleDate(s)
}

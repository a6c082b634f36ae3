package tui

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// maxInputLen caps the runes typed into any text box.
const maxInputLen = 2000

// formatDate renders an absolute calendar date, e.g. "Mar 4, 2026".
func formatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}

// formatWhen renders a notification timestamp. A missing timestamp reads "Just now".
func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "Just now"
	}
	return formatDate(t) + " " + metaStyle.Render("("+humanize.Time(t)+")")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// initials returns up to two uppercase initials of name, "?" when empty.
func initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "?"
	}
	first, _ := utf8.DecodeRuneInString(parts[0])
	out := string(unicode.ToUpper(first))
	if len(parts) > 1 {
		last, _ := utf8.DecodeRuneInString(parts[len(parts)-1])
		out += string(unicode.ToUpper(last))
	}
	return out
}

// candidatesLabel renders "1 candidate" or "N candidates".
func candidatesLabel(n int) string {
	if n == 1 {
		return "1 candidate"
	}
	return humanize.Comma(int64(n)) + " candidates"
}

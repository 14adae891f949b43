package imdb

import (
	"strings"
	"time"
)

// Textual date encodings the site uses, most specific first. Month and day
// default to 1 when a format does not carry them.
var flexibleDateFormats = []string{
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

const isoDateFormat = "2006-01-02"

// parseFlexibleDate parses free text against the known date encodings and
// returns nil when none matches. An unparseable date is data absence, never
// an error: air dates and birth dates routinely vary in precision.
func parseFlexibleDate(text string) *time.Time {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.Trim(cleaned, "()")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return nil
	}
	for _, format := range flexibleDateFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return &t
		}
	}
	return nil
}

// parseYear parses a bare year, tolerating a parenthetical wrapper and a
// trailing range ("2010-2012" yields 2010). Returns nil when no year leads
// the text.
func parseYear(text string) *time.Time {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.Trim(cleaned, "()")
	if i := strings.Index(cleaned, "-"); i > -1 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.TrimSpace(cleaned)
	if t, err := time.Parse("2006", cleaned); err == nil {
		return &t
	}
	return nil
}

// parseISODate parses the yyyy-mm-dd attribute encoding.
func parseISODate(text string) (time.Time, error) {
	return time.Parse(isoDateFormat, strings.TrimSpace(text))
}

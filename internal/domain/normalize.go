package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugStripRegex  = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	hyphenRunRegex  = regexp.MustCompile(`-+`)
	clockRegex      = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\s*([AaPp][Mm]))?$`)
)

// dateLayouts are the accepted input forms for NormalizeDate, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// SlugifyTitle converts a human-entered title into URL-safe slug text:
// lowercase, trimmed, characters outside [word, whitespace, hyphen] stripped,
// whitespace runs and hyphen runs collapsed to a single hyphen, and no
// leading or trailing hyphen. Idempotent: re-slugging a slug is a no-op.
func SlugifyTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, "-")
	s = hyphenRunRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeDate parses input as a calendar date and returns the UTC date
// component in YYYY-MM-DD form, discarding any time of day.
// Returns ErrInvalidDate when no supported layout matches.
func NormalizeDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", ErrInvalidDate
}

// NormalizeTime parses H:MM or HH:MM, optionally suffixed with a
// case-insensitive AM/PM, and returns the 24-hour HH:MM form.
// 12 AM maps to 00, 12 PM stays 12. Returns ErrInvalidTime when the input
// does not match or the hour/minute is out of range.
func NormalizeTime(input string) (string, error) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", ErrInvalidTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if minute > 59 {
		return "", ErrInvalidTime
	}
	switch strings.ToUpper(m[3]) {
	case "":
		if hour > 23 {
			return "", ErrInvalidTime
		}
	case "AM":
		if hour < 1 || hour > 12 {
			return "", ErrInvalidTime
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return "", ErrInvalidTime
		}
		if hour != 12 {
			hour += 12
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

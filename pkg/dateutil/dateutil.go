// Package dateutil parses the loosely formatted dates that show up in OCR
// output and native PDF text. A string that does not resolve to a real
// calendar date is a normal outcome, not an error.
package dateutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var datePattern = regexp.MustCompile(`^(\d{1,4})\s*[-./]\s*(\d{1,2})\s*[-./]\s*(\d{1,4})$`)

// Normalize parses a date token with mixed separators and 2- or 4-digit years.
// When dayFirst is true an ambiguous first component is read as the day
// (Romanian-locale documents are day-month-year). The returned time is the
// calendar date at UTC midnight; ok is false when the token is not a valid
// date.
func Normalize(text string, dayFirst bool) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return time.Time{}, false
	}

	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	c, _ := strconv.Atoi(m[3])

	var year, day, month int
	if len(m[1]) == 4 {
		// Year-first forms are unambiguous: YYYY-MM-DD.
		year, month, day = a, b, c
	} else {
		year = expandYear(c, len(m[3]))
		if dayFirst {
			day, month = a, b
		} else {
			month, day = a, b
		}
		// Fall back to the swapped reading when the preferred one cannot
		// be a calendar date but the other can.
		if month > 12 && day <= 12 {
			day, month = month, day
		}
	}

	return civilDate(year, month, day)
}

// expandYear maps a 2-digit year onto the 2000s for 00-69 and the 1900s
// otherwise, matching the pivot common to date parsing libraries.
func expandYear(y, digits int) int {
	if digits > 2 {
		return y
	}
	if y <= 69 {
		return 2000 + y
	}
	return 1900 + y
}

// civilDate builds the UTC-midnight date and rejects component overflow
// (time.Date silently normalizes Feb 30 into March).
func civilDate(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

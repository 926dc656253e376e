package export

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	quarterRe = regexp.MustCompile(`(?i)\bQ([1-4])\b`)
	monthRe   = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`)
	yearRe    = regexp.MustCompile(`\b(\d{4})\b`)
)

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// reportingSpan is the month range a free-text period resolves to.
type reportingSpan struct {
	year       int
	first      time.Month
	last       time.Month
	recognized bool
}

// parsePeriod reads a quarter ("Q4 2023") or a month name ("December 2021",
// "Dec 2021") and the last four digit year. Without a year, now's year is used.
func parsePeriod(period string, now time.Time) reportingSpan {
	span := reportingSpan{year: now.Year(), first: time.January, last: time.December}

	years := yearRe.FindAllStringSubmatch(period, -1)
	if len(years) > 0 {
		if y, err := strconv.Atoi(years[len(years)-1][1]); err == nil {
			span.year = y
			span.recognized = true
		}
	}

	if m := quarterRe.FindStringSubmatch(period); m != nil {
		q := int(m[1][0] - '0')
		span.first = time.Month(3*q - 2)
		span.last = time.Month(3 * q)
		span.recognized = true
		return span
	}
	if m := monthRe.FindStringSubmatch(period); m != nil {
		month := monthByPrefix[strings.ToLower(m[1][:3])]
		span.first, span.last = month, month
		span.recognized = true
	}
	return span
}

// PeriodEnd maps a reporting period to its last calendar day (UTC).
// Unrecognized text resolves to December 31 of now's year.
func PeriodEnd(period string, now time.Time) time.Time {
	span := parsePeriod(period, now)
	if !span.recognized {
		span.year = now.Year()
	}
	return time.Date(span.year, span.last+1, 0, 0, 0, 0, 0, time.UTC)
}

// PeriodStart maps a reporting period to the first day of its month or
// quarter. ok is false when the period names neither.
func PeriodStart(period string, now time.Time) (time.Time, bool) {
	if !quarterRe.MatchString(period) && !monthRe.MatchString(period) {
		return time.Time{}, false
	}
	span := parsePeriod(period, now)
	return time.Date(span.year, span.first, 1, 0, 0, 0, 0, time.UTC), true
}

package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/relvacode/iso8601"
)

var (
	yearPattern     = regexp.MustCompile(`^([+-]?\d{4})$`)
	monthPattern    = regexp.MustCompile(`^([+-]?\d{4})-(\d{2})$`)
	calendarPattern = regexp.MustCompile(`^([+-]?\d{4})(-?)(\d{2})(-?)(\d{2})$`)
	weekPattern     = regexp.MustCompile(`^([+-]?\d{4})(-?)W(\d{2})(?:(-?)([1-7]))?$`)
	ordinalPattern  = regexp.MustCompile(`^([+-]?\d{4})-?(\d{3})$`)
	clockPattern    = regexp.MustCompile(`^(\d{2})(?:(:?)(\d{2})(?:(:?)(\d{2}))?)?(?:[.,](\d+))?([Zz]|[+-]\d{2}(?::?\d{2})?)?$`)
)

// ParseISO8601 accepts the ISO 8601 date forms (calendar, reduced precision,
// basic, week and ordinal dates), optionally followed by a time joined with
// "T" or a space. Values without an offset are read as UTC.
func ParseISO8601(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	datePart, clockPart, hasClock := splitDateTime(value)

	date, ok := parseDate(datePart)
	if !ok {
		return time.Time{}, false
	}

	if parsed, err := iso8601.ParseString(value); err == nil {
		return parsed.UTC(), true
	}

	if !hasClock {
		return date, true
	}

	if yearPattern.MatchString(datePart) {
		return time.Time{}, false
	}

	return parseClock(date, clockPart)
}

func splitDateTime(value string) (string, string, bool) {
	if index := strings.IndexAny(value, "Tt "); index >= 4 {
		return value[:index], value[index+1:], true
	}

	return value, "", false
}

func parseDate(value string) (time.Time, bool) {
	if m := yearPattern.FindStringSubmatch(value); m != nil {
		return calendarDate(atoi(m[1]), 1, 1)
	}

	if m := monthPattern.FindStringSubmatch(value); m != nil {
		return calendarDate(atoi(m[1]), atoi(m[2]), 1)
	}

	if m := calendarPattern.FindStringSubmatch(value); m != nil && m[2] == m[4] {
		return calendarDate(atoi(m[1]), atoi(m[3]), atoi(m[5]))
	}

	if m := weekPattern.FindStringSubmatch(value); m != nil {
		if m[5] != "" && m[2] != m[4] {
			return time.Time{}, false
		}

		weekday := 1
		if m[5] != "" {
			weekday = atoi(m[5])
		}

		return weekDate(atoi(m[1]), atoi(m[3]), weekday)
	}

	if m := ordinalPattern.FindStringSubmatch(value); m != nil {
		year, day := atoi(m[1]), atoi(m[2])
		if day < 1 {
			return time.Time{}, false
		}

		date := time.Date(year, time.January, day, 0, 0, 0, 0, time.UTC)
		if date.Year() != year {
			return time.Time{}, false
		}

		return date, true
	}

	return time.Time{}, false
}

func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}

	return date, true
}

// weekDate resolves an ISO week date. Week 1 is the week holding January 4th.
func weekDate(year, week, weekday int) (time.Time, bool) {
	if week < 1 || week > 53 {
		return time.Time{}, false
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset)

	date := monday.AddDate(0, 0, (week-1)*7+weekday-1)

	if isoYear, isoWeek := date.ISOWeek(); isoYear != year || isoWeek != week {
		return time.Time{}, false
	}

	return date, true
}

func parseClock(date time.Time, value string) (time.Time, bool) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, false
	}

	hour := atoi(m[1])
	minute, second := 0, 0
	unit := time.Hour

	if m[3] != "" {
		minute = atoi(m[3])
		unit = time.Minute
	}

	if m[5] != "" {
		if m[2] != m[4] {
			return time.Time{}, false
		}
		second = atoi(m[5])
		unit = time.Second
	}

	if minute > 59 || second > 59 || hour > 24 || (hour == 24 && (minute != 0 || second != 0 || m[6] != "")) {
		return time.Time{}, false
	}

	location, ok := parseZone(m[7])
	if !ok {
		return time.Time{}, false
	}

	parsed := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, second, 0, location)

	if m[6] != "" {
		fraction, err := strconv.ParseFloat("0."+m[6], 64)
		if err != nil {
			return time.Time{}, false
		}
		parsed = parsed.Add(time.Duration(fraction * float64(unit)))
	}

	return parsed.UTC(), true
}

func parseZone(value string) (*time.Location, bool) {
	if value == "" || value == "Z" || value == "z" {
		return time.UTC, true
	}

	sign := 1
	if value[0] == '-' {
		sign = -1
	}

	digits := strings.ReplaceAll(value[1:], ":", "")
	hours := atoi(digits[:2])
	minutes := 0

	if len(digits) == 4 {
		minutes = atoi(digits[2:])
	}

	if hours > 23 || minutes > 59 {
		return nil, false
	}

	return time.FixedZone("", sign*(hours*3600+minutes*60)), true
}

func atoi(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseISO8601(t *testing.T) {
	valid := map[string]time.Time{
		"2024":                      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"2024-05":                   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"2024-05-01":                time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"20240501":                  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"2024-W01":                  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"2024-W01-3":                time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		"2020W535":                  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		"2024-123":                  time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		"2024-366":                  time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		"2024-05-01T10:30":          time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		"2024-05-01 10:30":          time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		"2024-05-01T10":             time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		"2024-05-01T10:30:15":       time.Date(2024, 5, 1, 10, 30, 15, 0, time.UTC),
		"2024-05-01T10:30:15.250Z":  time.Date(2024, 5, 1, 10, 30, 15, 250000000, time.UTC),
		"2024-05-01T10:30:15,5Z":    time.Date(2024, 5, 1, 10, 30, 15, 500000000, time.UTC),
		"2024-05-01T10:30:15+02:00": time.Date(2024, 5, 1, 8, 30, 15, 0, time.UTC),
		"2024-05-01T10:30:15+0200":  time.Date(2024, 5, 1, 8, 30, 15, 0, time.UTC),
		"2024-05-01T10:30:15-03":    time.Date(2024, 5, 1, 13, 30, 15, 0, time.UTC),
		"2024-05-01T10:30+02:00":    time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		"2024-05-01t10:30:15z":      time.Date(2024, 5, 1, 10, 30, 15, 0, time.UTC),
		"20240501T103015Z":          time.Date(2024, 5, 1, 10, 30, 15, 0, time.UTC),
	}

	for input, expected := range valid {
		t.Run(input, func(t *testing.T) {
			parsed, ok := ParseISO8601(input)

			assert.True(t, ok)
			assert.True(t, expected.Equal(parsed), "got %s", parsed)
		})
	}

	invalid := []string{
		"",
		"tomorrow",
		"2024-13-01",
		"2024-05-32",
		"2023-02-29",
		"01/05/2024",
		"2024-W54",
		"2024-W53",
		"2023-366",
		"2024-05-01Tnoon",
	}

	for _, input := range invalid {
		t.Run("invalid "+input, func(t *testing.T) {
			_, ok := ParseISO8601(input)
			assert.False(t, ok)
		})
	}
}

func TestParseClock_Ranges(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	parsed, ok := parseClock(date, "24:00")
	assert.True(t, ok)
	assert.True(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC).Equal(parsed))

	parsed, ok = parseClock(date, "1030+0530")
	assert.True(t, ok)
	assert.True(t, time.Date(2024, 5, 1, 5, 0, 0, 0, time.UTC).Equal(parsed))

	for _, input := range []string{"25:00", "10:61", "10:30:60", "24:30", "10:3015", "10:30+24:00"} {
		_, ok := parseClock(date, input)
		assert.False(t, ok, input)
	}
}

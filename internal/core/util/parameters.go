package util

import (
	"strconv"
	"strings"
)

// ParseInt reads an optional base-10 integer parameter.
func ParseInt(value *string) (int64, bool) {
	if value == nil {
		return 0, false
	}

	parsed, err := strconv.ParseInt(strings.TrimSpace(*value), 10, 64)
	if err != nil {
		return 0, false
	}

	return parsed, true
}

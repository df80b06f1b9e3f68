package util

import (
	"strings"
)

// NormalizeList normalizes a tag list arriving either as a repeated form
// field or as a single comma-joined string. Entries are trimmed, order is
// preserved and entries that trim to empty are dropped.
func NormalizeList(values []string) []string {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		result = append(result, v)
	}
	return result
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

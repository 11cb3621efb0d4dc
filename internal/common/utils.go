package common

import "strings"

// ContainsAnyFold reports whether s contains any of the phrases,
// compared case-insensitively.
func ContainsAnyFold(s string, phrases ...string) bool {
	lower := strings.ToLower(s)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

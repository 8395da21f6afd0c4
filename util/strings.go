package util

import "strings"

// ContainsFold reports whether item exists in list, comparing
// case-insensitively.
func ContainsFold(item string, list []string) bool {
	for _, v := range list {
		if strings.EqualFold(v, item) {
			return true
		}
	}
	return false
}

// NormalizeName trims leading/trailing whitespace and collapses runs of
// internal spaces into single spaces so the same name always persists the
// same way.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Join(strings.Fields(name), " ")
}

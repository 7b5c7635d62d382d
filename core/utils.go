package core

import "strings"

// CleanString normalizes form input before validation: surrounding whitespace
// is trimmed, and lower folds the result for case-insensitive identifiers
// (emails, tenant slugs).
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}

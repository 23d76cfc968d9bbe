// Package validation collects field violations keyed by field name.
package validation

import (
	"slices"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// OneOf flags a non-empty value outside allowed.
func OneOf[T ~string](field string, value T, allowed []T, v Violations) {
	if value != "" && !slices.Contains(allowed, value) {
		v[field] = "invalid_choice"
	}
}

// MaxLen flags values longer than n runes.
func MaxLen(field, value string, n int, v Violations) {
	if len([]rune(value)) > n {
		v[field] = "too_long"
	}
}

// Unique flags the first repeated value of values under field.
func Unique(field string, values []string, v Violations) {
	seen := make(map[string]bool, len(values))
	for _, s := range values {
		if seen[s] {
			v[field] = "duplicate"
			return
		}
		seen[s] = true
	}
}

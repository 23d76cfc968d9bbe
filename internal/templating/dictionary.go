package templating

import (
	"maps"
	"slices"
)

// Dictionary maps variable names to their rendered values for one
// generation request.
type Dictionary map[string]string

// Merge returns a copy of d overlaid with the non-empty values of other.
func (d Dictionary) Merge(other map[string]string) Dictionary {
	out := maps.Clone(d)
	if out == nil {
		out = Dictionary{}
	}
	for k, v := range other {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Keys returns the sorted keys.
func (d Dictionary) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Enum normalizes free-form configuration strings into a closed set of
// string-typed values. Matching ignores case and surrounding whitespace.
type Enum[T ~string] struct {
	name     string
	fallback T
	values   []T
}

// NewEnum creates an Enum named name (used in error messages) accepting
// values, with fallback returned by Normalize for unrecognised input.
func NewEnum[T ~string](name string, fallback T, values ...T) *Enum[T] {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return &Enum[T]{name: name, fallback: fallback, values: sorted}
}

// Normalize returns the matching value, or the fallback.
func (e *Enum[T]) Normalize(raw string) T {
	if v, ok := e.lookup(raw); ok {
		return v
	}
	return e.fallback
}

// Parse returns the matching value, or an error listing the valid values.
// Empty input yields the fallback.
func (e *Enum[T]) Parse(raw string) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return e.fallback, nil
	}
	if v, ok := e.lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", e.name, raw, e.values)
}

// Values returns the accepted values in sorted order.
func (e *Enum[T]) Values() []T {
	return slices.Clone(e.values)
}

func (e *Enum[T]) lookup(raw string) (T, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	for _, v := range e.values {
		if strings.ToLower(string(v)) == cleaned {
			return v, true
		}
	}
	return e.fallback, false
}

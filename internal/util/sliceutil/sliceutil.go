// Package sliceutil holds the small slice helpers shared by the aggregation
// pass and the CLI flag help.
package sliceutil

import (
	"fmt"
	"strings"
)

// Filter returns the elements of list for which keep returns true,
// preserving order. The result is never nil.
func Filter[T any](list []T, keep func(T) bool) []T {
	filtered := make([]T, 0)

	for _, element := range list {
		if keep(element) {
			filtered = append(filtered, element)
		}
	}

	return filtered
}

// ToDelimitedString renders list as a comma-separated string, e.g. for
// enumerating the supported export formats in flag usage text.
func ToDelimitedString[T any](list []T) string {
	parts := make([]string, len(list))

	for i, element := range list {
		parts[i] = fmt.Sprintf("%v", element)
	}

	return strings.Join(parts, ", ")
}

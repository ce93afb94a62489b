// Package sliceutil provides generic slice helpers.
package sliceutil

import "slices"

// Contains reports whether item is present in slice.
func Contains[T comparable](slice []T, item T) bool {
	return slices.Contains(slice, item)
}

// Deduplicate returns the distinct elements of slice in order of first
// occurrence. The result is never nil.
func Deduplicate[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	result := make([]T, 0, len(slice))
	for _, item := range slice {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// Filter returns the elements of slice for which keep returns true, in
// order. The result is never nil.
func Filter[T any](slice []T, keep func(T) bool) []T {
	result := make([]T, 0, len(slice))
	for _, item := range slice {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

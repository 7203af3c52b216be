// Copyright (c) 2026 Keymaster Team
// Usersession - in-memory user login state
// This source code is licensed under the MIT license found in the LICENSE file.

// Package slicest holds small generic slice helpers.
package slicest

// Map returns a new slice with fn applied to every element of s.
func Map[T, U any, S ~[]T](s S, fn func(T) U) []U {
	result := make([]U, len(s))
	for i, t := range s {
		result[i] = fn(t)
	}
	return result
}

// Filter returns the elements of s for which keep reports true.
// The result never aliases s.
func Filter[T any, S ~[]T](s S, keep func(T) bool) S {
	result := make(S, 0, len(s))
	for _, t := range s {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// FlatMap maps every element of s to a slice and concatenates the results.
// Nil results are skipped.
func FlatMap[T, U any, S ~[]T](s S, fn func(T) []U) []U {
	var result []U
	for _, t := range s {
		result = append(result, fn(t)...)
	}
	return result
}

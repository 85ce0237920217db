// Package utils holds small helpers for reading request parameters. Nothing
// here knows about ideas or versions.
package utils

import (
	"cmp"
	"strconv"
)

// AtoiDefault parses s as a base-10 int and returns def when s is empty or
// not a valid int. Surrounding spaces are not trimmed.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Clamp bounds v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// IntParam parses a query value with a default, then clamps it to [lo, hi].
func IntParam(raw string, def, lo, hi int) int {
	return Clamp(AtoiDefault(raw, def), lo, hi)
}

// Package ident provides case-insensitive identifier handling shared by the
// runtime and the built-in registry. Pseudocode identifiers (and keywords) are
// case-insensitive, but error messages and program output should still show
// the casing the programmer actually wrote.
package ident

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var caser = cases.Lower(language.Und)

// Normalize folds s to its canonical lookup form. Storage and comparisons
// throughout the runtime and built-in registry go through Normalize (directly, or via
// Map) so "myVar", "MyVar" and "MYVAR" all resolve to the same binding.
func Normalize(s string) string {
	return caser.String(s)
}

// Equal reports whether a and b are the same identifier, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Compare orders a and b case-insensitively. It returns a negative number,
// zero or a positive number analogous to strings.Compare.
func Compare(a, b string) int {
	return strings.Compare(Normalize(a), Normalize(b))
}

// Contains reports whether slice contains s, compared case-insensitively.
func Contains(slice []string, s string) bool {
	return Index(slice, s) >= 0
}

// Index returns the index of the first case-insensitive match of s in
// slice, or -1 if none exists.
func Index(slice []string, s string) int {
	for i, v := range slice {
		if Equal(v, s) {
			return i
		}
	}
	return -1
}

// IsKeyword reports whether s case-insensitively matches one of keywords.
func IsKeyword(s string, keywords ...string) bool {
	return Contains(keywords, s)
}

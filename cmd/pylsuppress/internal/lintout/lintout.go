// Package lintout extracts message identifiers from pylint's text output.
//
// Each finding is expected on its own line with the message symbol in the
// last pair of parentheses, for example:
//
//	app.py:1:0: C0114: Missing module docstring (missing-module-docstring)
package lintout

import (
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Identifier is a linter message symbol such as "missing-docstring".
type Identifier string

// Set is an unordered collection of unique identifiers.
type Set map[Identifier]struct{}

func (s Set) Add(id Identifier) {
	s[id] = struct{}{}
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the identifiers in lexical order.
func (s Set) Sorted() []Identifier {
	return slices.Sorted(maps.Keys(s))
}

// Parse collects the identifiers of every line in output. Lines that carry
// no valid identifier are ignored.
func Parse(output string) Set {
	set := make(Set)
	for _, line := range strings.Split(output, "\n") {
		if id, ok := ParseLine(line); ok {
			set.Add(id)
		}
	}
	return set
}

// ParseLine returns the content of the last parenthesized group on line if it
// follows the naming convention.
func ParseLine(line string) (Identifier, bool) {
	open := strings.LastIndexByte(line, '(')
	if open < 0 {
		return "", false
	}

	candidate, _, found := strings.Cut(line[open+1:], ")")
	if !found || !FollowsNamingConvention(candidate) {
		return "", false
	}

	return Identifier(candidate), true
}

// FollowsNamingConvention reports whether everything before the first hyphen
// of candidate is a non-empty run of letters.
func FollowsNamingConvention(candidate string) bool {
	prefix, _, _ := strings.Cut(candidate, "-")
	if prefix == "" {
		return false
	}

	for _, r := range prefix {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

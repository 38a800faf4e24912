package token

import (
	"sort"
	"strings"
	"unicode"
)

// Set is a normalized token set derived from a port name. Membership is
// the sole primitive for structural matching: no nominal type identifiers
// are ever compared.
type Set map[string]struct{}

// Tokenize splits a port name on whitespace, commas and plus signs,
// lowercases each word, and drops empties.
func Tokenize(name string) Set {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '+'
	})

	set := make(Set, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}

// Subset reports whether every token in a is present in b.
// Vacuously true if a is empty.
func Subset(a, b Set) bool {
	for tok := range a {
		if _, ok := b[tok]; !ok {
			return false
		}
	}
	return true
}

// Overlap reports whether a and b share at least one token.
func Overlap(a, b Set) bool {
	// Iterate the smaller set
	if len(b) < len(a) {
		a, b = b, a
	}
	for tok := range a {
		if _, ok := b[tok]; ok {
			return true
		}
	}
	return false
}

// Contains reports whether the set holds a single token.
func (s Set) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Sorted returns the tokens in lexical order, for deterministic
// serialization and error messages.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for tok := range s {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether two sets hold exactly the same tokens.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	return Subset(s, other)
}

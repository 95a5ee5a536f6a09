// Package charclass provides ASCII-safe character predicates and case
// folding over any of the formatter's supported character widths.
//
// Every predicate here must be safe for the full numeric range of the
// character width: a non-ASCII code unit yields false for every
// letter/digit/space predicate rather than probing undefined behavior, the
// same guarantee the teacher's C++ ancestor documents for its classifier.
package charclass

import "github.com/tinywasm/strfmt/internal/unit"

// Size returns the length of a string-like value, measured in code units.
func Size[U unit.Unit](value []U) int {
	return len(value)
}

// IsAlpha reports whether ch is an ASCII alphabetic character.
func IsAlpha[U unit.Unit](ch U) bool {
	return IsUpper(ch) || IsLower(ch)
}

// IsUpper reports whether ch is an ASCII upper-case letter.
func IsUpper[U unit.Unit](ch U) bool {
	return ch >= 'A' && ch <= 'Z'
}

// IsLower reports whether ch is an ASCII lower-case letter.
func IsLower[U unit.Unit](ch U) bool {
	return ch >= 'a' && ch <= 'z'
}

// ToUpper converts ch to upper case, flipping only the 0x20 bit and only for
// code units in 'a'..'z'. Every other value, including non-ASCII code
// units, passes through unchanged.
func ToUpper[U unit.Unit](ch U) U {
	if IsLower(ch) {
		return ch &^ 0x20
	}
	return ch
}

// ToLower converts ch to lower case, flipping only the 0x20 bit and only for
// code units in 'A'..'Z'. Every other value passes through unchanged.
func ToLower[U unit.Unit](ch U) U {
	if IsUpper(ch) {
		return ch | 0x20
	}
	return ch
}

// IsDigit reports whether ch is an ASCII decimal digit.
func IsDigit[U unit.Unit](ch U) bool {
	return ch >= '0' && ch <= '9'
}

// IsHexDigit reports whether ch is an ASCII hexadecimal digit.
func IsHexDigit[U unit.Unit](ch U) bool {
	return IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// IsSpace reports whether ch is an ASCII space character (space, tab,
// newline, carriage return, form feed, vertical tab).
func IsSpace[U unit.Unit](ch U) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

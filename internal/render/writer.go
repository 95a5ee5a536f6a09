// Package render implements the type-erased parameter pack (spec.md §4.G,
// in pack.go) and the per-type formatter dispatch (spec.md §4.H, in
// dispatch.go) — the two components that turn a parsed Specifier and a raw
// Go argument into output units.
package render

import (
	"github.com/tinywasm/strfmt/internal/runetext"
	"github.com/tinywasm/strfmt/internal/unit"
)

// Writer is the output iterator replacement fields render into: a growable
// buffer of destination-width code units.
type Writer[U unit.Unit] struct {
	buf []U
}

// NewWriter constructs a Writer with capacityHint units of pre-reserved
// space.
func NewWriter[U unit.Unit](capacityHint int) *Writer[U] {
	return &Writer[U]{buf: make([]U, 0, capacityHint)}
}

// WriteUnits appends raw destination-width units verbatim.
func (w *Writer[U]) WriteUnits(units []U) { w.buf = append(w.buf, units...) }

// WriteUnit appends a single destination-width unit.
func (w *Writer[U]) WriteUnit(u U) { w.buf = append(w.buf, u) }

// WriteASCII appends an ASCII Go string, converting each byte to U
// directly; every byte of s must be < 0x80.
func (w *Writer[U]) WriteASCII(s string) {
	for i := 0; i < len(s); i++ {
		w.buf = append(w.buf, U(s[i]))
	}
}

// WriteRune encodes cp into the destination width and appends it. Reports
// false (and writes nothing) if cp cannot be encoded.
func (w *Writer[U]) WriteRune(cp rune) bool {
	enc, ok := runetext.Encode[U](cp)
	if !ok {
		return false
	}
	w.buf = append(w.buf, enc...)
	return true
}

// Units returns the accumulated destination-width units.
func (w *Writer[U]) Units() []U { return w.buf }

// Len returns the number of destination-width units written so far.
func (w *Writer[U]) Len() int { return len(w.buf) }

// Truncate discards everything after position n.
func (w *Writer[U]) Truncate(n int) { w.buf = w.buf[:n] }

// UTF8 transcodes the accumulated units to a UTF-8 Go string, so that any
// character width can be rendered into an ordinary Go string. It returns ""
// if the units are not well formed.
func (w *Writer[U]) UTF8() string {
	out, ok := runetext.Convert[U, byte](w.buf)
	if !ok {
		return ""
	}
	return string(out)
}

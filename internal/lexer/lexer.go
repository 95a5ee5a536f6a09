// Package lexer implements the constant-expression token reader (spec.md
// §4.C) that the specifier and format-string parsers are built on.
package lexer

import (
	"github.com/tinywasm/strfmt/internal/charclass"
	"github.com/tinywasm/strfmt/internal/unit"
)

// Lexer is a stateless-over-its-input cursor plus one mutable index. Every
// operation is cheap enough to run at parse time for every call to New.
type Lexer[U unit.Unit] struct {
	view []U
	pos  int
}

// New constructs a Lexer over view, positioned at the start.
func New[U unit.Unit](view []U) Lexer[U] {
	return Lexer[U]{view: view}
}

// View returns the full underlying character sequence.
func (l *Lexer[U]) View() []U { return l.view }

// Position returns the current cursor index.
func (l *Lexer[U]) Position() int { return l.pos }

// SetPosition moves the cursor to i.
func (l *Lexer[U]) SetPosition(i int) { l.pos = i }

// Peek returns the code unit at pos+offset without consuming it, and whether
// that index is in range.
func (l *Lexer[U]) Peek(offset int) (U, bool) {
	i := l.pos + offset
	if i < 0 || i >= len(l.view) {
		var zero U
		return zero, false
	}
	return l.view[i], true
}

// Consume returns the code unit at pos and advances the cursor, or reports
// false if the cursor is already at the end.
func (l *Lexer[U]) Consume() (U, bool) {
	ch, ok := l.Peek(0)
	if !ok {
		return ch, false
	}
	l.pos++
	return ch, true
}

// ConsumeIf consumes the next code unit iff it equals ch, reporting whether
// it did.
func (l *Lexer[U]) ConsumeIf(ch U) bool {
	got, ok := l.Peek(0)
	if !ok || got != ch {
		return false
	}
	l.pos++
	return true
}

// ConsumeNumber consumes a run of ASCII decimal digits and returns their
// value. Returns ok=false if zero digits were consumed.
func (l *Lexer[U]) ConsumeNumber() (value int, ok bool) {
	start := l.pos
	for {
		ch, has := l.Peek(0)
		if !has || !charclass.IsDigit(ch) {
			break
		}
		value = value*10 + int(ch-'0')
		l.pos++
	}
	return value, l.pos != start
}

// ConsumeHexNumber consumes a run of ASCII hex digits (0-9, a-f, A-F) and
// returns their value. Returns ok=false if zero digits were consumed.
func (l *Lexer[U]) ConsumeHexNumber() (value int, ok bool) {
	start := l.pos
	for {
		ch, has := l.Peek(0)
		if !has || !charclass.IsHexDigit(ch) {
			break
		}
		value = value*16 + hexDigitValue(ch)
		l.pos++
	}
	return value, l.pos != start
}

func hexDigitValue[U unit.Unit](ch U) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	default:
		return int(ch-'A') + 10
	}
}

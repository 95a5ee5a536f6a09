// Package fmtparse implements the format-parse context (spec.md §4.D), the
// replacement-field specifier parser (§4.E), and the format-string walker
// (§4.F) — the heart of the formatting engine.
package fmtparse

import (
	"github.com/tinywasm/strfmt/internal/lexer"
	"github.com/tinywasm/strfmt/internal/unit"
)

// ParamKind classifies an argument's compile-time type for specifier
// validation, mirroring spec.md §3.3's parameter-type table.
type ParamKind uint8

const (
	KindUser ParamKind = iota
	KindChar
	KindString
	KindPointer
	KindInt
	KindFloat
	KindBool
)

// Context composes the lexer with the parameter-type table, the error slot,
// and the traversal state used to detect mixed manual/automatic
// positioning (spec.md §3.6, §4.D).
type Context[U unit.Unit] struct {
	Lexer lexer.Lexer[U]

	kinds []ParamKind

	nextPosition             int
	expectNoPositionsGiven   bool
	expectAllPositionsGiven  bool
	positioningModeObserved  bool

	err string
}

// NewContext constructs a Context over view with the given argument kinds.
func NewContext[U unit.Unit](view []U, kinds []ParamKind) *Context[U] {
	return &Context[U]{
		Lexer: lexer.New(view),
		kinds: kinds,
	}
}

// ParameterType returns the ParamKind of the argument at index, or false if
// index is out of range.
func (c *Context[U]) ParameterType(index int) (ParamKind, bool) {
	if index < 0 || index >= len(c.kinds) {
		return 0, false
	}
	return c.kinds[index], true
}

// ParameterCount returns the number of arguments in the parameter-type
// table.
func (c *Context[U]) ParameterCount() int { return len(c.kinds) }

// OnError records msg as the context's error if no error has been recorded
// yet; only the first error is kept (spec.md §7's propagation rule).
func (c *Context[U]) OnError(msg string) {
	if c.err == "" {
		c.err = msg
	}
}

// Err returns the first recorded error, or "" if none.
func (c *Context[U]) Err() string { return c.err }

// HasError reports whether an error has been recorded.
func (c *Context[U]) HasError() bool { return c.err != "" }

// ResolvePosition implements "next_position()": if explicit is true, it
// returns position verbatim (after enforcing all-or-none positioning mode);
// otherwise it returns the current auto-increment counter and advances it.
func (c *Context[U]) ResolvePosition(explicit bool, position int) int {
	if !c.positioningModeObserved {
		c.positioningModeObserved = true
		c.expectAllPositionsGiven = explicit
		c.expectNoPositionsGiven = !explicit
	} else if explicit != c.expectAllPositionsGiven {
		c.OnError("Cannot mix manual and automatic argument positioning")
	}

	if explicit {
		return position
	}
	p := c.nextPosition
	c.nextPosition++
	return p
}

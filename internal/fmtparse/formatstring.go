package fmtparse

import "github.com/tinywasm/strfmt/internal/unit"

// MaxSpecifiers is the bounded array size spec.md §3.5 fixes for a parsed
// format string.
const MaxSpecifiers = 64

// FormatString owns a parsed, validated view into a format string: the
// bounded specifier array the driver walks in lock-step with the source
// text, and the first parse error (if any). It is immutable after
// construction except for the hand-out cursor Next advances.
type FormatString[U unit.Unit] struct {
	view       []U
	specifiers []Specifier
	err        string
	cursor     int
}

// Parse walks the entire format string view, producing a bounded array of
// Specifiers (spec.md §4.F). caps reports, per argument position, whether a
// user-defined argument is streamable at all and whether it supplies a
// custom specifier parser.
func Parse[U unit.Unit](view []U, kinds []ParamKind, caps Capabilities) *FormatString[U] {
	ctx := NewContext(view, kinds)
	fs := &FormatString[U]{view: view}

	for {
		ch, ok := ctx.Lexer.Peek(0)
		if !ok {
			break
		}

		switch ch {
		case '{':
			if next, has := ctx.Lexer.Peek(1); has && next == '{' {
				ctx.Lexer.Consume()
				ctx.Lexer.Consume()
				continue
			}
			if len(fs.specifiers) >= MaxSpecifiers {
				ctx.OnError("Exceeded maximum allowed number of specifiers")
			} else {
				ctx.Lexer.Consume()
				spec := ParseSpecifier(ctx, caps)
				fs.specifiers = append(fs.specifiers, spec)
			}
		case '}':
			if next, has := ctx.Lexer.Peek(1); has && next == '}' {
				ctx.Lexer.Consume()
				ctx.Lexer.Consume()
				continue
			}
			ctx.OnError("Closing brace must be escaped")
		default:
			ctx.Lexer.Consume()
		}

		if ctx.HasError() {
			break
		}
	}

	fs.err = ctx.Err()
	return fs
}

// View returns the source character sequence.
func (fs *FormatString[U]) View() []U { return fs.view }

// Err returns the first recorded parse error, or "" if the format string is
// valid.
func (fs *FormatString[U]) Err() string { return fs.err }

// Specifiers returns the parsed specifier array in source order.
func (fs *FormatString[U]) Specifiers() []Specifier { return fs.specifiers }

// Next hands out the next Specifier in source order, advancing the cursor.
// Formatting is single-pass: rewinding is not supported.
func (fs *FormatString[U]) Next() (Specifier, bool) {
	if fs.cursor >= len(fs.specifiers) {
		return Specifier{}, false
	}
	s := fs.specifiers[fs.cursor]
	fs.cursor++
	return s, true
}

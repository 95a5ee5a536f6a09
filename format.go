// Package strfmt is a runtime counterpart to a compile-time-checked format
// string library: the same replacement-field grammar, validated as early as
// possible (at the first call against a given format string and argument
// shape, rather than at compile time, which Go has no hook for), then
// rendered against a type-erased argument pack that supports 8-, 16-, and
// 32-bit character widths and user-defined formatters.
package strfmt

import (
	"io"

	"github.com/tinywasm/strfmt/internal/fmtparse"
	"github.com/tinywasm/strfmt/internal/render"
	"github.com/tinywasm/strfmt/internal/unit"
)

// Formatter is the extension point for rendering a user-defined type under
// "{}": implement FormatText to make a value streamable.
type Formatter[U unit.Unit] = render.Formatter[U]

// Parser is the optional parse hook of a user-defined type. The engine does
// not call ParseSpecifier: the specifier body is always parsed by the
// built-in grammar (see render.Parser).
type Parser[U unit.Unit] = render.Parser[U]

// FormatString is a parsed format string over one character width, bound
// to the arguments it was parsed against. Every call to New parses afresh;
// parse results are not cached across calls.
type FormatString[U unit.Unit] struct {
	view []U
	fs   *fmtparse.FormatString[U]
	pack render.Pack[U]
}

// New parses format against the shape of args, deferring to first use what
// a compile-time-checked library would reject at compile time. The
// returned FormatString's Err method reports any validation failure; Units
// renders it.
func New[U unit.Unit](format []U, args ...any) *FormatString[U] {
	pack := render.NewPack[U](args...)
	fs := fmtparse.Parse(format, pack.Kinds, pack)
	return &FormatString[U]{view: format, fs: fs, pack: pack}
}

// Err returns the first format-string validation error, or "" if format
// and args were well formed together.
func (f *FormatString[U]) Err() string { return f.fs.Err() }

// Units renders the format string into destination-width units. If Err is
// non-empty, Units instead renders a diagnostic describing the failure
// (spec.md §7: the core never panics and never returns a Go error).
func (f *FormatString[U]) Units() []U {
	w := render.NewWriter[U](len(f.view) + 16)
	if err := f.fs.Err(); err != "" {
		w.WriteASCII("Ignored invalid formatter: ")
		w.WriteASCII(err)
		return w.Units()
	}

	view := f.fs.View()
	pos := 0
	for pos < len(view) {
		ch := view[pos]
		switch ch {
		case '{':
			if pos+1 < len(view) && view[pos+1] == '{' {
				w.WriteUnit(ch)
				pos += 2
				continue
			}
			spec, ok := f.fs.Next()
			if !ok {
				pos++
				continue
			}
			if err := render.Dispatch(w, f.pack, spec); err != nil {
				w.WriteASCII("Ignored invalid formatter: ")
				w.WriteASCII(err.Error())
				return w.Units()
			}
			pos += spec.Size
		case '}':
			if pos+1 < len(view) && view[pos+1] == '}' {
				w.WriteUnit(ch)
				pos += 2
				continue
			}
			w.WriteUnit(ch)
			pos++
		default:
			w.WriteUnit(ch)
			pos++
		}
	}
	return w.Units()
}

// FormatUnits parses and renders format in one call, for callers that want
// a character width other than UTF-8 bytes (UTF-16 or UTF-32 units).
func FormatUnits[U unit.Unit](format []U, args ...any) []U {
	return New(format, args...).Units()
}

// Format parses and renders format (an ordinary UTF-8 Go string) and
// returns the rendered UTF-8 string.
func Format(format string, args ...any) string {
	return string(New([]byte(format), args...).Units())
}

// FormatTo parses and renders format, writing the UTF-8 result to w, in
// the style of fmt.Fprintf.
func FormatTo(w io.Writer, format string, args ...any) (int, error) {
	return io.WriteString(w, Format(format, args...))
}

package render

import (
	"github.com/tinywasm/strfmt/internal/fmtparse"
	"github.com/tinywasm/strfmt/internal/unit"
)

// Formatter is the user-defined-type extension point (spec.md §4.H/§9): a
// type that wants to render under "{}" implements FormatText. Types that
// implement neither Formatter nor Parser are "non-streamable parameters"
// (spec.md §7) and are rejected at parse time.
type Formatter[U unit.Unit] interface {
	FormatText(w *Writer[U], spec fmtparse.Specifier) error
}

// Parser is the optional half of the user-defined extension point. Pack
// reports it through HasParser, but ParseSpecifier is never called: the
// specifier body is parsed and validated by the built-in grammar, which
// accepts no presentation type on a user-defined argument, with or without
// a Parser.
type Parser[U unit.Unit] interface {
	Formatter[U]
	ParseSpecifier(ctx *fmtparse.Context[U]) error
}

// Arg is one entry of the type-erased parameter pack: a tagged union of the
// representations the per-type dispatch needs, plus (for user-defined
// values) the original value for the Formatter/Parser call. This is the
// Go realization of spec.md §4.G's "(value, thunk-pointer)" pair: rather
// than a function pointer, the concrete value's type is recovered once by
// the type switch in classify, and dispatch.go routes on the stored Kind
// and the resolved presentation type, which the spec's design notes (§9)
// list as an accepted alternative to a per-call-site closure.
type Arg[U unit.Unit] struct {
	Kind fmtparse.ParamKind

	// Integral (signed widened to I64, unsigned widened to U64) and
	// character (widened to I64, treated as integral unless the
	// resolved Specifier.Type is Character) representations.
	I64      int64
	U64      uint64
	Unsigned bool

	// Floating-point, tagged with its original bit size (32 or 64); Go
	// has no distinct extended-precision type, so float64 also stands
	// in for spec.md's "extended-precision-float" arm.
	F64  float64
	Bits int

	Bool bool

	// String-like: Str holds the original string, StrWidth16/StrWidth32
	// hold the wide forms when the caller passed one directly, and
	// SrcWidth records which of the three is populated so dispatch can
	// transcode only when the source width differs from U.
	Str       string
	StrWidth8 []byte
	StrWidth16 []uint16
	StrWidth32 []rune
	SrcWidth  int

	PointerNil   bool
	PointerValue uintptr

	User any
}

// Pack is the constructed type-erased parameter pack for one format call.
// It implements fmtparse.Capabilities so the specifier parser can ask
// whether a given position is a streamable user-defined value and whether
// it supplies its own Parser.
type Pack[U unit.Unit] struct {
	Args  []Arg[U]
	Kinds []fmtparse.ParamKind
}

// NewPack classifies each of args into an Arg and a ParamKind, in order,
// implementing spec.md §4.G's construction of the parameter pack from the
// variadic argument list.
func NewPack[U unit.Unit](args ...any) Pack[U] {
	pack := Pack[U]{
		Args:  make([]Arg[U], len(args)),
		Kinds: make([]fmtparse.ParamKind, len(args)),
	}
	for i, a := range args {
		arg := classify[U](a)
		pack.Args[i] = arg
		pack.Kinds[i] = arg.Kind
	}
	return pack
}

func classify[U unit.Unit](a any) Arg[U] {
	switch v := a.(type) {
	case nil:
		return Arg[U]{Kind: fmtparse.KindPointer, PointerNil: true}

	// rune is int32, so a plain int32 argument lands here too and
	// classifies as a character.
	case rune:
		return Arg[U]{Kind: fmtparse.KindChar, I64: int64(v)}

	case bool:
		return Arg[U]{Kind: fmtparse.KindBool, Bool: v}

	case string:
		return Arg[U]{Kind: fmtparse.KindString, Str: v, SrcWidth: 8}
	case []byte:
		return Arg[U]{Kind: fmtparse.KindString, StrWidth8: v, SrcWidth: 8}
	case []uint16:
		return Arg[U]{Kind: fmtparse.KindString, StrWidth16: v, SrcWidth: 16}
	case []rune:
		return Arg[U]{Kind: fmtparse.KindString, StrWidth32: v, SrcWidth: 32}

	case int:
		return Arg[U]{Kind: fmtparse.KindInt, I64: int64(v)}
	case int8:
		return Arg[U]{Kind: fmtparse.KindInt, I64: int64(v)}
	case int16:
		return Arg[U]{Kind: fmtparse.KindInt, I64: int64(v)}
	case int64:
		return Arg[U]{Kind: fmtparse.KindInt, I64: v}
	case uint:
		return Arg[U]{Kind: fmtparse.KindInt, U64: uint64(v), Unsigned: true}
	case uint8:
		return Arg[U]{Kind: fmtparse.KindInt, U64: uint64(v), Unsigned: true}
	case uint16:
		return Arg[U]{Kind: fmtparse.KindInt, U64: uint64(v), Unsigned: true}
	case uint32:
		return Arg[U]{Kind: fmtparse.KindInt, U64: uint64(v), Unsigned: true}
	case uint64:
		return Arg[U]{Kind: fmtparse.KindInt, U64: v, Unsigned: true}
	case uintptr:
		return Arg[U]{Kind: fmtparse.KindPointer, PointerValue: v}

	case float32:
		return Arg[U]{Kind: fmtparse.KindFloat, F64: float64(v), Bits: 32}
	case float64:
		return Arg[U]{Kind: fmtparse.KindFloat, F64: v, Bits: 64}

	default:
		return Arg[U]{Kind: fmtparse.KindUser, User: a}
	}
}

// HasParser implements fmtparse.Capabilities.
func (p Pack[U]) HasParser(position int) bool {
	if position < 0 || position >= len(p.Args) {
		return false
	}
	_, ok := p.Args[position].User.(Parser[U])
	return ok
}

// IsStreamable implements fmtparse.Capabilities: every built-in kind is
// always streamable; a user-defined kind is streamable iff it implements
// Formatter (Parser embeds Formatter).
func (p Pack[U]) IsStreamable(position int) bool {
	if position < 0 || position >= len(p.Args) {
		return false
	}
	arg := p.Args[position]
	if arg.Kind != fmtparse.KindUser {
		return true
	}
	_, ok := arg.User.(Formatter[U])
	return ok
}

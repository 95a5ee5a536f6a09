package fmtparse

import "github.com/tinywasm/strfmt/internal/unit"

// Alignment is the resolved or explicit alignment of a replacement field.
type Alignment uint8

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Sign is the sign-display mode of a numeric replacement field.
type Sign uint8

const (
	SignDefault Sign = iota
	SignBoth
	SignNegativeOnly
	SignSpacePositive
)

// Type is the resolved presentation type of a replacement field.
type Type uint8

const (
	TypeNone Type = iota
	TypeCharacter
	TypeString
	TypePointer
	TypeBinary
	TypeOctal
	TypeDecimal
	TypeHex
	TypeHexFloat
	TypeScientific
	TypeFixed
	TypeGeneral
)

// Case is the letter casing of the presentation type (and, by extension, of
// its rendered output).
type Case uint8

const (
	CaseLower Case = iota
	CaseUpper
)

// SizeOrPosition is a width or precision value: either a literal resolved at
// parse time, or a reference to another argument's position, resolved at
// format time.
type SizeOrPosition struct {
	Set        bool
	IsPosition bool
	Value      int // literal value, if !IsPosition
	Position   int // argument index, if IsPosition
}

// Specifier is the parsed, validated representation of one replacement
// field (spec.md §3.2).
type Specifier struct {
	Position         int
	PositionExplicit bool

	HasFill bool
	Fill    rune

	Alignment Alignment
	Sign      Sign

	AlternateForm bool
	ZeroPadding   bool

	Width     SizeOrPosition
	Precision SizeOrPosition

	LocaleSpecific bool

	Type Type
	Case Case

	// Size is the number of source characters this specifier consumed,
	// from the opening '{' through the matching '}' inclusive.
	Size int
}

// presentationLetter maps a presentation-type letter to its Type and Case.
func presentationLetter(ch rune) (Type, Case, bool) {
	switch ch {
	case 'c':
		return TypeCharacter, CaseLower, true
	case 's':
		return TypeString, CaseLower, true
	case 'p':
		return TypePointer, CaseLower, true
	case 'b':
		return TypeBinary, CaseLower, true
	case 'B':
		return TypeBinary, CaseUpper, true
	case 'o':
		return TypeOctal, CaseLower, true
	case 'd':
		return TypeDecimal, CaseLower, true
	case 'x':
		return TypeHex, CaseLower, true
	case 'X':
		return TypeHex, CaseUpper, true
	case 'a':
		return TypeHexFloat, CaseLower, true
	case 'A':
		return TypeHexFloat, CaseUpper, true
	case 'e':
		return TypeScientific, CaseLower, true
	case 'E':
		return TypeScientific, CaseUpper, true
	case 'f':
		return TypeFixed, CaseLower, true
	case 'F':
		return TypeFixed, CaseUpper, true
	case 'g':
		return TypeGeneral, CaseLower, true
	case 'G':
		return TypeGeneral, CaseUpper, true
	}
	return TypeNone, CaseLower, false
}

func isNumericType(t Type) bool {
	switch t {
	case TypeBinary, TypeOctal, TypeDecimal, TypeHex, TypeHexFloat, TypeScientific, TypeFixed, TypeGeneral:
		return true
	}
	return false
}

// presentationCompatible implements the presentation-type <-> ParameterKind
// matrix from spec.md §4.E.
func presentationCompatible(t Type, pk ParamKind) bool {
	switch t {
	case TypeNone:
		return true
	case TypeCharacter:
		return pk == KindChar || pk == KindInt || pk == KindBool
	case TypeString:
		return pk == KindString || pk == KindBool
	case TypePointer:
		return pk == KindPointer
	case TypeBinary, TypeOctal, TypeDecimal, TypeHex:
		return pk == KindChar || pk == KindInt || pk == KindBool
	case TypeHexFloat, TypeScientific, TypeFixed, TypeGeneral:
		return pk == KindFloat
	}
	return false
}

// inferType resolves TypeNone to a concrete type per the argument's
// ParamKind, matching spec.md §4.E step 13.
func inferType(pk ParamKind) Type {
	switch pk {
	case KindChar:
		return TypeCharacter
	case KindString:
		return TypeString
	case KindPointer:
		return TypePointer
	case KindInt:
		return TypeDecimal
	case KindFloat:
		return TypeGeneral
	case KindBool:
		return TypeString
	default: // KindUser
		return TypeNone
	}
}

// Capabilities reports, for a given argument position, whether that
// argument's concrete value provides a user-defined parser override and
// whether it is streamable at all (implements a formatter). Both queries
// are meaningless for non-user argument kinds and may be left nil.
type Capabilities interface {
	HasParser(position int) bool
	IsStreamable(position int) bool
}

// ParseSpecifier parses a single replacement field's body. The context's
// lexer must be positioned immediately after the opening '{'. On success the
// lexer is positioned after the matching '}'; on failure it stops where the
// error was detected.
func ParseSpecifier[U unit.Unit](ctx *Context[U], caps Capabilities) Specifier {
	start := ctx.Lexer.Position() - 1 // include the '{' already consumed by the caller
	var spec Specifier

	// 1. Position.
	if n, ok := ctx.Lexer.ConsumeNumber(); ok {
		spec.Position = n
		spec.PositionExplicit = true
	}

	// 2. Next character must be ':' or '}'.
	ch, has := ctx.Lexer.Peek(0)
	if !has {
		ctx.OnError("Detected unclosed format string")
		return finish(ctx, &spec, start)
	}
	if ch != ':' && ch != '}' {
		ctx.OnError("Expected ':' or '}' after argument position")
		return finish(ctx, &spec, start)
	}

	// The main field's own position is claimed now, before any nested
	// width/precision replacement fields get a chance to (spec.md §4.E:
	// automatic positions are assigned in the order fields are
	// encountered while parsing, and the main field is encountered
	// before its own suffix's nested fields).
	resolved := ctx.ResolvePosition(spec.PositionExplicit, spec.Position)
	spec.Position = resolved

	pk, ok := ctx.ParameterType(spec.Position)
	if !ok {
		ctx.OnError("Argument position exceeds number of provided arguments")
		return finish(ctx, &spec, start)
	}

	if pk == KindUser && (caps == nil || !caps.IsStreamable(spec.Position)) {
		ctx.OnError("Non-streamable parameter")
		return finish(ctx, &spec, start)
	}

	if ch == ':' {
		ctx.Lexer.Consume()
		parseFormatSuffix(ctx, &spec)
		if ctx.HasError() {
			return finish(ctx, &spec, start)
		}
	}

	// 12. Expect '}'.
	if !ctx.Lexer.ConsumeIf('}') {
		ctx.OnError("Detected unclosed format string")
		return finish(ctx, &spec, start)
	}

	// 13. Inference.
	if spec.Type == TypeNone {
		spec.Type = inferType(pk)
	}

	validateSpecifier(ctx, &spec, pk, spec.Position, caps)
	return finish(ctx, &spec, start)
}

func finish[U unit.Unit](ctx *Context[U], spec *Specifier, start int) Specifier {
	spec.Size = ctx.Lexer.Position() - start
	return *spec
}

// parseFormatSuffix parses steps 4-11 of spec.md §4.E: fill/alignment,
// sign, alternate-form, zero-padding, width, precision, locale, and
// presentation type, in that fixed order.
func parseFormatSuffix[U unit.Unit](ctx *Context[U], spec *Specifier) {
	parseFillAndAlignment(ctx, spec)
	if ctx.HasError() {
		return
	}

	if ch, ok := ctx.Lexer.Peek(0); ok {
		switch ch {
		case '+':
			spec.Sign = SignBoth
			ctx.Lexer.Consume()
		case '-':
			spec.Sign = SignNegativeOnly
			ctx.Lexer.Consume()
		case ' ':
			spec.Sign = SignSpacePositive
			ctx.Lexer.Consume()
		}
	}

	if ctx.Lexer.ConsumeIf('#') {
		spec.AlternateForm = true
	}
	if ctx.Lexer.ConsumeIf('0') {
		spec.ZeroPadding = true
	}

	parseSizeOrPosition(ctx, &spec.Width, true)
	if ctx.HasError() {
		return
	}
	if ctx.Lexer.ConsumeIf('.') {
		parseSizeOrPosition(ctx, &spec.Precision, false)
		if ctx.HasError() {
			return
		}
	}

	if ctx.Lexer.ConsumeIf('L') {
		spec.LocaleSpecific = true
	}

	if ch, ok := ctx.Lexer.Peek(0); ok {
		if t, c, matched := presentationLetter(rune(ch)); matched {
			spec.Type = t
			spec.Case = c
			ctx.Lexer.Consume()
		}
	}
}

// parseFillAndAlignment implements spec.md §4.E step 4: a two-character
// lookahead for an optional fill followed by an alignment character, or a
// bare alignment character alone.
func parseFillAndAlignment[U unit.Unit](ctx *Context[U], spec *Specifier) {
	second, hasSecond := ctx.Lexer.Peek(1)
	if hasSecond && isAlignmentChar(second) {
		fill, _ := ctx.Lexer.Peek(0)
		if rune(fill) == '{' || rune(fill) == '}' {
			ctx.OnError("Fill character must not be '{' or '}'")
			return
		}
		if !isASCII(fill) {
			ctx.OnError("Fill character must be ASCII")
			return
		}
		spec.HasFill = true
		spec.Fill = rune(fill)
		spec.Alignment = alignmentOf(second)
		ctx.Lexer.Consume()
		ctx.Lexer.Consume()
		return
	}

	if first, ok := ctx.Lexer.Peek(0); ok && isAlignmentChar(first) {
		spec.Alignment = alignmentOf(first)
		ctx.Lexer.Consume()
	}
}

func isAlignmentChar[U unit.Unit](ch U) bool {
	return ch == '<' || ch == '>' || ch == '^'
}

func alignmentOf[U unit.Unit](ch U) Alignment {
	switch ch {
	case '<':
		return AlignLeft
	case '>':
		return AlignRight
	default:
		return AlignCenter
	}
}

func isASCII[U unit.Unit](ch U) bool {
	return ch <= 0x7F
}

// parseSizeOrPosition implements spec.md §4.E steps 8-9: a width or
// precision is either a positive (width) / non-negative (precision)
// decimal literal, or a nested replacement field naming an argument
// position.
func parseSizeOrPosition[U unit.Unit](ctx *Context[U], out *SizeOrPosition, isWidth bool) {
	if ctx.Lexer.ConsumeIf('{') {
		pos, hasPos := ctx.Lexer.ConsumeNumber()
		if !ctx.Lexer.ConsumeIf('}') {
			ctx.OnError("Nested replacement field must contain only a position and a closing brace")
			return
		}
		out.Set = true
		out.IsPosition = true
		out.Position = ctx.ResolvePosition(hasPos, pos)
		return
	}

	n, ok := ctx.Lexer.ConsumeNumber()
	if !ok {
		return
	}
	if isWidth && n == 0 {
		ctx.OnError("Width must be a positive integer")
		return
	}
	out.Set = true
	out.Value = n
}

// validateSpecifier implements spec.md §3.2's invariants and §4.E step 14's
// validation checks.
func validateSpecifier[U unit.Unit](ctx *Context[U], spec *Specifier, pk ParamKind, position int, caps Capabilities) {
	if spec.Sign != SignDefault && !isNumericType(spec.Type) {
		ctx.OnError("Sign option requires a numeric presentation type")
		return
	}
	if spec.AlternateForm && !(isNumericType(spec.Type) && spec.Type != TypeDecimal) {
		ctx.OnError("Alternate form requires a non-decimal numeric presentation type")
		return
	}
	if spec.ZeroPadding {
		if !isNumericType(spec.Type) {
			ctx.OnError("Zero-padding requires a numeric presentation type")
			return
		}
		if spec.Alignment != AlignDefault {
			spec.ZeroPadding = false
		}
	}
	if spec.Precision.Set && pk != KindString && pk != KindFloat {
		ctx.OnError("Precision is only valid for string or floating-point arguments")
		return
	}
	if spec.LocaleSpecific && !(pk == KindInt || pk == KindFloat || pk == KindBool) {
		ctx.OnError("Locale-specific form requires an integral, floating-point, or boolean argument")
		return
	}
	if pk == KindUser && spec.Type != TypeNone && (caps == nil || !caps.HasParser(position)) {
		ctx.OnError("User-defined formatter without a parser may not have formatting options")
		return
	}
	if !presentationCompatible(spec.Type, pk) {
		ctx.OnError("Presentation type is not compatible with the argument's type")
		return
	}
}

package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tinywasm/strfmt/internal/fmtparse"
	"github.com/tinywasm/strfmt/internal/runetext"
	"github.com/tinywasm/strfmt/internal/unit"
)

// Dispatch renders one resolved Specifier's argument into w (spec.md §4.H).
// User-defined arguments are handed to their Formatter regardless of the
// resolved presentation type; every built-in kind is routed by spec.Type,
// which inference (fmtparse §4.E step 13) has already resolved to a
// concrete, non-None value.
func Dispatch[U unit.Unit](w *Writer[U], pack Pack[U], spec fmtparse.Specifier) error {
	if spec.Position < 0 || spec.Position >= len(pack.Args) {
		return fmt.Errorf("argument position %d out of range", spec.Position)
	}
	arg := pack.Args[spec.Position]

	if arg.Kind == fmtparse.KindUser {
		f, ok := arg.User.(Formatter[U])
		if !ok {
			return fmt.Errorf("non-streamable parameter")
		}
		return f.FormatText(w, spec)
	}

	width, hasWidth := resolveSize(pack, spec.Width, true)
	precision, hasPrecision := resolveSize(pack, spec.Precision, false)

	switch spec.Type {
	case fmtparse.TypeCharacter:
		return renderCharacter(w, arg, spec, width, hasWidth)
	case fmtparse.TypeString:
		return renderString(w, arg, spec, width, hasWidth, precision, hasPrecision)
	case fmtparse.TypePointer:
		return renderPointer(w, arg, spec, width, hasWidth)
	case fmtparse.TypeBinary, fmtparse.TypeOctal, fmtparse.TypeDecimal, fmtparse.TypeHex:
		return renderInteger(w, arg, spec, width, hasWidth)
	case fmtparse.TypeHexFloat, fmtparse.TypeScientific, fmtparse.TypeFixed, fmtparse.TypeGeneral:
		return renderFloat(w, arg, spec, width, hasWidth, precision, hasPrecision)
	}
	return fmt.Errorf("unresolved presentation type")
}

// resolveSize reads a width or precision, following a nested-field position
// reference to another argument if the specifier named one (spec.md §4.E
// steps 8-9). A reference to a non-integer argument, or an out-of-range
// position, silently resolves to "absent" rather than erroring: the value
// is only known at format time, long after the specifier was validated.
func resolveSize[U unit.Unit](pack Pack[U], sp fmtparse.SizeOrPosition, isWidth bool) (int, bool) {
	if !sp.Set {
		return 0, false
	}
	if !sp.IsPosition {
		return sp.Value, true
	}
	if sp.Position < 0 || sp.Position >= len(pack.Args) {
		return 0, false
	}
	ref := pack.Args[sp.Position]
	if ref.Kind != fmtparse.KindInt {
		return 0, false
	}
	var v int64
	if ref.Unsigned {
		v = int64(ref.U64)
	} else {
		v = ref.I64
	}
	if isWidth && v <= 0 {
		return 0, false
	}
	if !isWidth && v < 0 {
		return 0, false
	}
	return int(v), true
}

func appendASCII[U unit.Unit](dst []U, s string) []U {
	for i := 0; i < len(s); i++ {
		dst = append(dst, U(s[i]))
	}
	return dst
}

// pad writes core into w, padding out to width with fill (default space) on
// the side(s) dictated by align, falling back to defaultAlign when the
// specifier left the alignment unset.
func pad[U unit.Unit](w *Writer[U], core []U, width int, hasWidth bool, fill rune, hasFill bool, align fmtparse.Alignment, defaultAlign fmtparse.Alignment) {
	if !hasWidth || len(core) >= width {
		w.WriteUnits(core)
		return
	}
	total := width - len(core)
	fillUnit := U(' ')
	if hasFill {
		fillUnit = U(fill)
	}

	al := align
	if al == fmtparse.AlignDefault {
		al = defaultAlign
	}

	switch al {
	case fmtparse.AlignLeft:
		w.WriteUnits(core)
		for i := 0; i < total; i++ {
			w.WriteUnit(fillUnit)
		}
	case fmtparse.AlignCenter:
		left := total / 2
		right := total - left
		for i := 0; i < left; i++ {
			w.WriteUnit(fillUnit)
		}
		w.WriteUnits(core)
		for i := 0; i < right; i++ {
			w.WriteUnit(fillUnit)
		}
	default: // AlignRight
		for i := 0; i < total; i++ {
			w.WriteUnit(fillUnit)
		}
		w.WriteUnits(core)
	}
}

// signOf resolves the leading sign character for a numeric field, given
// whether the value itself is negative.
func signOf(spec fmtparse.Specifier, negative bool) string {
	switch {
	case negative:
		return "-"
	case spec.Sign == fmtparse.SignBoth:
		return "+"
	case spec.Sign == fmtparse.SignSpacePositive:
		return " "
	}
	return ""
}

// renderInteger implements the integral/character-as-integer/boolean-as-
// integer branch of §4.H: base selection, sign, alternate-form prefix, and
// zero-padding (inserted between the sign/prefix and the digits).
func renderInteger[U unit.Unit](w *Writer[U], arg Arg[U], spec fmtparse.Specifier, width int, hasWidth bool) error {
	var mag uint64
	neg := false

	switch {
	case arg.Kind == fmtparse.KindBool:
		if arg.Bool {
			mag = 1
		}
	case arg.Unsigned:
		mag = arg.U64
	default:
		v := arg.I64
		if v < 0 {
			neg = true
			mag = uint64(-v)
		} else {
			mag = uint64(v)
		}
	}

	base := 10
	switch spec.Type {
	case fmtparse.TypeBinary:
		base = 2
	case fmtparse.TypeOctal:
		base = 8
	case fmtparse.TypeHex:
		base = 16
	}

	digits := strconv.FormatUint(mag, base)
	if spec.Case == fmtparse.CaseUpper {
		digits = strings.ToUpper(digits)
	}

	sign := signOf(spec, neg)

	var prefix string
	if spec.AlternateForm {
		switch spec.Type {
		case fmtparse.TypeBinary:
			prefix = "0b"
			if spec.Case == fmtparse.CaseUpper {
				prefix = "0B"
			}
		case fmtparse.TypeOctal:
			prefix = "0"
		case fmtparse.TypeHex:
			prefix = "0x"
			if spec.Case == fmtparse.CaseUpper {
				prefix = "0X"
			}
		}
	}

	head := sign + prefix

	if spec.ZeroPadding && hasWidth && spec.Alignment == fmtparse.AlignDefault {
		total := len(head) + len(digits)
		if width > total {
			out := make([]U, 0, width)
			out = appendASCII(out, head)
			for i := 0; i < width-total; i++ {
				out = append(out, U('0'))
			}
			out = appendASCII(out, digits)
			w.WriteUnits(out)
			return nil
		}
	}

	core := appendASCII[U](nil, head+digits)
	pad(w, core, width, hasWidth, spec.Fill, spec.HasFill, spec.Alignment, fmtparse.AlignRight)
	return nil
}

// renderCharacter implements the character branch: the argument's codepoint
// (from a char, or a numeric/boolean argument reinterpreted as one) is
// transcoded to the destination width; a codepoint that cannot be encoded
// at that width drops the field entirely (spec.md §4.H, §7).
func renderCharacter[U unit.Unit](w *Writer[U], arg Arg[U], spec fmtparse.Specifier, width int, hasWidth bool) error {
	var cp rune
	switch arg.Kind {
	case fmtparse.KindChar:
		cp = rune(arg.I64)
	case fmtparse.KindBool:
		if arg.Bool {
			cp = 1
		}
	default: // KindInt
		if arg.Unsigned {
			cp = rune(arg.U64)
		} else {
			cp = rune(arg.I64)
		}
	}

	enc, ok := runetext.Encode[U](cp)
	if !ok {
		return nil
	}
	pad(w, enc, width, hasWidth, spec.Fill, spec.HasFill, spec.Alignment, fmtparse.AlignRight)
	return nil
}

// renderString implements the string branch: transcoding to the
// destination width when the source width differs (dropping the field on
// failure), truncation to precision codepoints rather than code units, and
// a default left alignment.
func renderString[U unit.Unit](w *Writer[U], arg Arg[U], spec fmtparse.Specifier, width int, hasWidth bool, precision int, hasPrecision bool) error {
	var units []U

	if arg.Kind == fmtparse.KindBool {
		s := "false"
		if arg.Bool {
			s = "true"
		}
		units = appendASCII[U](nil, s)
	} else {
		var ok bool
		switch arg.SrcWidth {
		case 16:
			units, ok = runetext.Convert[uint16, U](arg.StrWidth16)
		case 32:
			units, ok = runetext.Convert[rune, U](arg.StrWidth32)
		default:
			src := arg.StrWidth8
			if src == nil {
				src = []byte(arg.Str)
			}
			units, ok = runetext.Convert[byte, U](src)
		}
		if !ok {
			return nil
		}
	}

	if hasPrecision {
		units = truncateCodepoints(units, precision)
	}

	pad(w, units, width, hasWidth, spec.Fill, spec.HasFill, spec.Alignment, fmtparse.AlignLeft)
	return nil
}

// truncateCodepoints returns the leading prefix of s containing at most max
// complete codepoints, per spec.md's "precision counts codepoints, not
// code units" rule. A malformed tail is cut at the last complete codepoint.
func truncateCodepoints[U unit.Unit](s []U, max int) []U {
	count := 0
	pos := 0
	for pos < len(s) && count < max {
		_, next, ok := runetext.DecodeNext(s, pos)
		if !ok {
			break
		}
		pos = next
		count++
	}
	return s[:pos]
}

// renderPointer implements the pointer branch: a nil pointer renders as
// "0x0"; any other value as "0x" followed by lowercase hex.
func renderPointer[U unit.Unit](w *Writer[U], arg Arg[U], spec fmtparse.Specifier, width int, hasWidth bool) error {
	var s string
	if arg.PointerNil {
		s = "0x0"
	} else {
		s = "0x" + strconv.FormatUint(uint64(arg.PointerValue), 16)
	}
	core := appendASCII[U](nil, s)
	pad(w, core, width, hasWidth, spec.Fill, spec.HasFill, spec.Alignment, fmtparse.AlignRight)
	return nil
}

// renderFloat implements the floating-point branch via strconv, mapping
// the resolved presentation type to a FormatFloat verb (spec.md's Open
// Question on float rendering, decided in DESIGN.md). NaN and infinities
// are classified before any sign/padding arithmetic, since strconv already
// renders them as "NaN"/"+Inf"/"-Inf".
func renderFloat[U unit.Unit](w *Writer[U], arg Arg[U], spec fmtparse.Specifier, width int, hasWidth bool, precision int, hasPrecision bool) error {
	v := arg.F64
	bitSize := arg.Bits
	if bitSize == 0 {
		bitSize = 64
	}

	if math.IsNaN(v) {
		core := appendASCII[U](nil, "NaN")
		pad(w, core, width, hasWidth, spec.Fill, spec.HasFill, spec.Alignment, fmtparse.AlignRight)
		return nil
	}
	if math.IsInf(v, 0) {
		s := "inf"
		switch {
		case v < 0:
			s = "-inf"
		case spec.Sign == fmtparse.SignBoth:
			s = "+inf"
		case spec.Sign == fmtparse.SignSpacePositive:
			s = " inf"
		}
		if spec.Case == fmtparse.CaseUpper {
			s = strings.ToUpper(s)
		}
		core := appendASCII[U](nil, s)
		pad(w, core, width, hasWidth, spec.Fill, spec.HasFill, spec.Alignment, fmtparse.AlignRight)
		return nil
	}

	neg := math.Signbit(v)
	abs := v
	if neg {
		abs = -v
	}

	verb := byte('g')
	switch spec.Type {
	case fmtparse.TypeFixed:
		verb = 'f'
	case fmtparse.TypeScientific:
		verb = 'e'
	case fmtparse.TypeHexFloat:
		verb = 'x'
	}

	prec := -1
	if hasPrecision {
		prec = precision
	}

	body := strconv.FormatFloat(abs, verb, prec, bitSize)
	if spec.AlternateForm && !hasPrecision && !strings.ContainsRune(body, '.') {
		if i := strings.IndexAny(body, "eEpP"); i >= 0 {
			body = body[:i] + "." + body[i:]
		} else {
			body += "."
		}
	}
	if spec.Case == fmtparse.CaseUpper {
		body = strings.ToUpper(body)
	}

	sign := signOf(spec, neg)

	if spec.ZeroPadding && hasWidth && spec.Alignment == fmtparse.AlignDefault {
		total := len(sign) + len(body)
		if width > total {
			out := make([]U, 0, width)
			out = appendASCII(out, sign)
			for i := 0; i < width-total; i++ {
				out = append(out, U('0'))
			}
			out = appendASCII(out, body)
			w.WriteUnits(out)
			return nil
		}
	}

	core := appendASCII[U](nil, sign+body)
	pad(w, core, width, hasWidth, spec.Fill, spec.HasFill, spec.Alignment, fmtparse.AlignRight)
	return nil
}

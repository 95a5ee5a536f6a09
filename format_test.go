package strfmt

import (
	"strconv"
	"testing"

	"github.com/tinywasm/strfmt/internal/fmtparse"
	"github.com/tinywasm/strfmt/internal/render"
)

// End-to-end scenarios, format-string to rendered output.
func TestFormatScenarios(t *testing.T) {
	cases := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"fill-align-sign-width-float", "{:*>+6}", []any{3.14}, "*+3.14"},
		{"alternate-zero-width-hex", "{:#06x}", []any{0x41}, "0x0041"},
		{"explicit-positions-reused", "{0} {1} {0}", []any{1, 2}, "1 2 1"},
		{"string-precision-truncation", "{:.3s}", []any{"abcdef"}, "abc"},
		{"negative-binary-i8", "{:b}", []any{int8(-128)}, "-10000000"},
		{"nested-precision-field", "{:.{}f}", []any{3.14159, 2}, "3.14"},
		{"cross-encoding-string", "{:s}", []any{[]uint16{'a', 'b'}}, "ab"},
		{"zero-arguments", "{:}", nil, "Ignored invalid formatter: Argument position exceeds number of provided arguments"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Format(c.format, c.args...)
			if got != c.want {
				t.Errorf("Format(%q, %v) = %q, want %q", c.format, c.args, got, c.want)
			}
		})
	}
}

func TestFormatDropsFieldOnIsolatedSurrogate(t *testing.T) {
	got := Format("ab {} ab", []uint16{0xD800})
	want := "ab  ab"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatEscapedBraces(t *testing.T) {
	got := Format("{{{}}}", 42)
	want := "{42}"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatMixedPositioningError(t *testing.T) {
	got := Format("{0} {}", 1, 2)
	want := "Ignored invalid formatter: Cannot mix manual and automatic argument positioning"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatBaseRoundTrip(t *testing.T) {
	radix := map[string]int{"b": 2, "o": 8, "d": 10, "x": 16}
	for _, base := range []string{"b", "o", "d", "x"} {
		out := Format("{:"+base+"}", 42)
		if out == "" {
			t.Errorf("Format with base %q produced empty output", base)
		}
		back, err := strconv.ParseInt(out, radix[base], 64)
		if err != nil || back != 42 {
			t.Errorf("Format with base %q = %q, parsed back as %d (err %v), want 42", base, out, back, err)
		}
	}
}

type point struct{ x, y int }

func (p point) FormatText(w *render.Writer[byte], spec fmtparse.Specifier) error {
	w.WriteASCII(Format("({},{})", p.x, p.y))
	return nil
}

func TestFormatUserDefinedFormatter(t *testing.T) {
	got := Format("{}", point{1, 2})
	want := "(1,2)"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatNonStreamableParameter(t *testing.T) {
	type notStreamable struct{}
	got := Format("{}", notStreamable{})
	want := "Ignored invalid formatter: Non-streamable parameter"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

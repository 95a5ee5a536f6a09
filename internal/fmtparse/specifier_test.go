package fmtparse

import "testing"

type fakeCaps struct {
	streamable map[int]bool
	parser     map[int]bool
}

func (c fakeCaps) IsStreamable(position int) bool { return c.streamable[position] }
func (c fakeCaps) HasParser(position int) bool     { return c.parser[position] }

func parseOne(t *testing.T, format string, kinds []ParamKind, caps Capabilities) *FormatString[byte] {
	t.Helper()
	return Parse([]byte(format), kinds, caps)
}

func TestParseFillAlignSignWidth(t *testing.T) {
	fs := parseOne(t, "{:*>+6}", []ParamKind{KindFloat}, fakeCaps{})
	if fs.Err() != "" {
		t.Fatalf("unexpected error: %s", fs.Err())
	}
	specs := fs.Specifiers()
	if len(specs) != 1 {
		t.Fatalf("got %d specifiers, want 1", len(specs))
	}
	s := specs[0]
	if !s.HasFill || s.Fill != '*' {
		t.Errorf("fill = %v/%q, want true/'*'", s.HasFill, s.Fill)
	}
	if s.Alignment != AlignRight {
		t.Errorf("alignment = %v, want AlignRight", s.Alignment)
	}
	if s.Sign != SignBoth {
		t.Errorf("sign = %v, want SignBoth", s.Sign)
	}
	if !s.Width.Set || s.Width.Value != 6 {
		t.Errorf("width = %+v, want Set=true Value=6", s.Width)
	}
	if s.Type != TypeGeneral {
		t.Errorf("type = %v, want TypeGeneral (inferred)", s.Type)
	}
}

func TestParseMixedPositioningIsRejected(t *testing.T) {
	fs := parseOne(t, "{0} {}", []ParamKind{KindInt, KindInt}, fakeCaps{})
	if fs.Err() != "Cannot mix manual and automatic argument positioning" {
		t.Errorf("Err() = %q", fs.Err())
	}
}

func TestParseAllAutomaticPositioningSucceeds(t *testing.T) {
	fs := parseOne(t, "{} {}", []ParamKind{KindInt, KindInt}, fakeCaps{})
	if fs.Err() != "" {
		t.Errorf("Err() = %q, want none", fs.Err())
	}
}

func TestParseAllExplicitPositioningSucceeds(t *testing.T) {
	fs := parseOne(t, "{0} {1} {0}", []ParamKind{KindInt, KindInt}, fakeCaps{})
	if fs.Err() != "" {
		t.Errorf("Err() = %q, want none", fs.Err())
	}
	if len(fs.Specifiers()) != 3 {
		t.Fatalf("got %d specifiers, want 3", len(fs.Specifiers()))
	}
}

func TestParsePrecisionRejectedForInt(t *testing.T) {
	fs := parseOne(t, "{:.3}", []ParamKind{KindInt}, fakeCaps{})
	if fs.Err() == "" {
		t.Fatal("expected an error, got none")
	}
}

func TestParsePresentationMismatch(t *testing.T) {
	fs := parseOne(t, "{:s}", []ParamKind{KindInt}, fakeCaps{})
	if fs.Err() != "Presentation type is not compatible with the argument's type" {
		t.Errorf("Err() = %q", fs.Err())
	}
}

func TestParseNonStreamableParameter(t *testing.T) {
	fs := parseOne(t, "{}", []ParamKind{KindUser}, fakeCaps{})
	if fs.Err() != "Non-streamable parameter" {
		t.Errorf("Err() = %q", fs.Err())
	}
}

func TestParseUserFormatterWithoutParserRejectsOptions(t *testing.T) {
	caps := fakeCaps{streamable: map[int]bool{0: true}}
	fs := parseOne(t, "{:d}", []ParamKind{KindUser}, caps)
	if fs.Err() != "User-defined formatter without a parser may not have formatting options" {
		t.Errorf("Err() = %q", fs.Err())
	}
}

func TestParseNestedPrecisionConsumesAutomaticPosition(t *testing.T) {
	fs := parseOne(t, "{:.{}f}", []ParamKind{KindFloat, KindInt}, fakeCaps{})
	if fs.Err() != "" {
		t.Fatalf("unexpected error: %s", fs.Err())
	}
	s := fs.Specifiers()[0]
	if s.Position != 0 {
		t.Errorf("main field position = %d, want 0", s.Position)
	}
	if !s.Precision.IsPosition || s.Precision.Position != 1 {
		t.Errorf("precision = %+v, want a position reference to argument 1", s.Precision)
	}
}

func TestParseTooManySpecifiers(t *testing.T) {
	format := ""
	kinds := make([]ParamKind, 0, MaxSpecifiers+1)
	for i := 0; i <= MaxSpecifiers; i++ {
		format += "{}"
		kinds = append(kinds, KindInt)
	}
	fs := parseOne(t, format, kinds, fakeCaps{})
	if fs.Err() != "Exceeded maximum allowed number of specifiers" {
		t.Errorf("Err() = %q", fs.Err())
	}
}

func TestParseUnclosedFormatString(t *testing.T) {
	fs := parseOne(t, "{", []ParamKind{KindInt}, fakeCaps{})
	if fs.Err() != "Detected unclosed format string" {
		t.Errorf("Err() = %q", fs.Err())
	}
}

func TestParseUnescapedClosingBrace(t *testing.T) {
	fs := parseOne(t, "a } b", nil, fakeCaps{})
	if fs.Err() != "Closing brace must be escaped" {
		t.Errorf("Err() = %q", fs.Err())
	}
}

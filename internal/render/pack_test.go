package render

import (
	"testing"

	"github.com/tinywasm/strfmt/internal/fmtparse"
)

func TestNewPackClassifiesBuiltinKinds(t *testing.T) {
	pack := NewPack[byte](42, "hi", 3.14, true, nil)
	want := []fmtparse.ParamKind{
		fmtparse.KindInt,
		fmtparse.KindString,
		fmtparse.KindFloat,
		fmtparse.KindBool,
		fmtparse.KindPointer,
	}
	if len(pack.Kinds) != len(want) {
		t.Fatalf("got %d kinds, want %d", len(pack.Kinds), len(want))
	}
	for i, k := range want {
		if pack.Kinds[i] != k {
			t.Errorf("kind[%d] = %v, want %v", i, pack.Kinds[i], k)
		}
	}
	if !pack.Args[4].PointerNil {
		t.Error("nil argument should classify as a nil pointer")
	}
}

type streamableThing struct{}

func (streamableThing) FormatText(w *Writer[byte], spec fmtparse.Specifier) error { return nil }

type parsingThing struct{ streamableThing }

func (parsingThing) ParseSpecifier(ctx *fmtparse.Context[byte]) error { return nil }

func TestPackCapabilities(t *testing.T) {
	pack := NewPack[byte](streamableThing{}, parsingThing{}, 1)

	if !pack.IsStreamable(0) {
		t.Error("streamableThing should be streamable")
	}
	if pack.HasParser(0) {
		t.Error("streamableThing should not report a parser")
	}
	if !pack.IsStreamable(1) || !pack.HasParser(1) {
		t.Error("parsingThing should be streamable and report a parser")
	}
	if !pack.IsStreamable(2) {
		t.Error("built-in kinds are always streamable")
	}
}

package container

import (
	"testing"

	"github.com/seitarof/gen-optics/internal/model"
)

func TestDetect_AllowList(t *testing.T) {
	cases := []struct {
		name string
		ref  model.TypeRef
		kind Kind
		card model.Cardinality
	}{
		{"pointer", model.Ref("ptr", model.Ref("string")), KindOptional, model.CardinalityOptional},
		{"slice", model.Ref("slice", model.Ref("int")), KindList, model.CardinalitySequence},
		{"array", model.Ref("array", model.Ref("byte")), KindArray, model.CardinalitySequence},
		{"map", model.Ref("map", model.Ref("string"), model.Ref("int")), KindMap, model.CardinalityKeyed},
		{"option", model.Ref("github.com/seitarof/gen-optics/optics.Option", model.Ref("string")), KindOptional, model.CardinalityOptional},
		{"plain scalar", model.Ref("string"), KindNone, model.CardinalityScalar},
		{"named struct", model.Ref("example.com/m.User"), KindNone, model.CardinalityScalar},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			det := Detect(tc.ref)
			if det.Kind != tc.kind {
				t.Fatalf("Kind = %v, want %v", det.Kind, tc.kind)
			}
			if det.Cardinality != tc.card {
				t.Fatalf("Cardinality = %v, want %v", det.Cardinality, tc.card)
			}
		})
	}
}

func TestDetect_ExactMatchingOnly(t *testing.T) {
	// A user-defined type that happens to be list-like must not be detected.
	det := Detect(model.Ref("example.com/m.MyList", model.Ref("int")))
	if det.Kind != KindNone || det.Cardinality != model.CardinalityScalar {
		t.Fatalf("user-defined container-like type detected: %#v", det)
	}
}

func TestDetect_RawUsage(t *testing.T) {
	det := Detect(model.Ref("slice"))
	if det.Cardinality != model.CardinalityUnrecognized {
		t.Fatalf("raw slice should be unrecognized, got %v", det.Cardinality)
	}
	if det.Traversable() {
		t.Fatal("raw usage must not offer a traversal")
	}
}

func TestDetect_MapArity(t *testing.T) {
	full := Detect(model.Ref("map", model.Ref("string"), model.Ref("int")))
	if full.Cardinality != model.CardinalityKeyed {
		t.Fatalf("map with 2 args = %v, want keyed", full.Cardinality)
	}
	if full.Key == nil || full.Key.Name != "string" || full.Elem.Name != "int" {
		t.Fatalf("map key/elem wrong: %#v", full)
	}

	partial := Detect(model.Ref("map", model.Ref("string")))
	if partial.Cardinality != model.CardinalityUnrecognized {
		t.Fatalf("map with 1 arg = %v, want unrecognized", partial.Cardinality)
	}
}

func TestDetect_ElementTypes(t *testing.T) {
	det := Detect(model.Ref("slice", model.Ref("example.com/m.Player")))
	if det.Elem.Name != "example.com/m.Player" {
		t.Fatalf("Elem = %v", det.Elem)
	}
	if !det.Traversable() {
		t.Fatal("sequence container should be traversable")
	}
}

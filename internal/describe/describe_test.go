package describe

import (
	"testing"

	"github.com/seitarof/gen-optics/internal/model"
)

const (
	basicPkg = "github.com/seitarof/gen-optics/testdata/describebasic"
	sumPkg   = "github.com/seitarof/gen-optics/testdata/describesum"
)

func TestDescribe_Struct(t *testing.T) {
	f := New()

	d, err := f.Describe(model.Ref(basicPkg + ".Person"))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if !d.Aggregate {
		t.Fatal("struct type must be captured as an aggregate")
	}
	if len(d.Fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(d.Fields))
	}
	if got := d.Field("Age"); got == nil || got.Type.Name != "int" {
		t.Fatalf("Age = %#v", got)
	}
	if d.Identity() != basicPkg+".Person" {
		t.Fatalf("identity = %q", d.Identity())
	}
}

func TestDescribe_ContainerRefs(t *testing.T) {
	f := New()

	d, err := f.Describe(model.Ref(basicPkg + ".Basket"))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	cases := []struct {
		field string
		want  model.TypeRef
	}{
		{"Items", model.Ref("slice", model.Ref("int"))},
		{"Scores", model.Ref("map", model.Ref("string"), model.Ref("int"))},
		{"Window", model.Ref("array", model.Ref("int"))},
		{"Owner", model.Ref("string")},
	}
	for _, tc := range cases {
		got := d.Field(tc.field)
		if got == nil {
			t.Fatalf("field %s not captured", tc.field)
		}
		if !got.Type.Equal(tc.want) {
			t.Fatalf("%s type = %v, want %v", tc.field, got.Type, tc.want)
		}
	}
}

func TestDescribe_PointerAndOption(t *testing.T) {
	f := New()

	d, err := f.Describe(model.Ref(basicPkg + ".Server"))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	backup := d.Field("Backup")
	if backup == nil || backup.Type.Name != "ptr" {
		t.Fatalf("Backup = %#v", backup)
	}
	if backup.Type.Args[0].Name != basicPkg+".Person" {
		t.Fatalf("pointer element = %v", backup.Type.Args[0])
	}

	note := d.Field("Note")
	want := "github.com/seitarof/gen-optics/optics.Option"
	if note == nil || note.Type.Name != want {
		t.Fatalf("Note = %#v, want generic instance of %s", note, want)
	}
	if len(note.Type.Args) != 1 || note.Type.Args[0].Name != "string" {
		t.Fatalf("Note type args = %v", note.Type.Args)
	}
}

func TestDescribe_MethodCategories(t *testing.T) {
	f := New()

	d, err := f.Describe(model.Ref(basicPkg + ".Config"))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if d.Accessor("Host") == nil || d.Accessor("GetPort") == nil {
		t.Fatalf("accessors = %#v", d.Accessors)
	}
	if d.Modifier("WithHost") == nil || d.Modifier("WithPort") == nil {
		t.Fatalf("modifiers = %#v", d.Modifiers)
	}
	if w := d.Modifier("WithHost"); w.Returns == nil || w.Returns.Name != basicPkg+".Config" {
		t.Fatalf("WithHost return = %#v", w.Returns)
	}

	counter, err := f.Describe(model.Ref(basicPkg + ".Counter"))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if len(counter.Mutators) != 1 || counter.Mutators[0].Name != "SetCount" {
		t.Fatalf("mutators = %#v", counter.Mutators)
	}
}

func TestDescribe_ClosedSum(t *testing.T) {
	f := New()

	d, err := f.Describe(model.Ref(sumPkg + ".Event"))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if !d.Abstract {
		t.Fatal("interface type must be captured as abstract")
	}
	if len(d.Variants) != 2 {
		t.Fatalf("variants = %#v, want the two package-local implementers", d.Variants)
	}
	names := map[string]bool{}
	for _, v := range d.Variants {
		names[v.Name] = true
	}
	if !names["Created"] || !names["Deleted"] {
		t.Fatalf("variants = %v", names)
	}
}

func TestDescribe_Enumerated(t *testing.T) {
	f := New()

	d, err := f.Describe(model.Ref(sumPkg + ".Color"))
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if len(d.EnumValues) != 3 {
		t.Fatalf("enum values = %v, want the three exported constants", d.EnumValues)
	}
}

func TestDescribe_Errors(t *testing.T) {
	f := New()

	if _, err := f.Describe(model.Ref("Unqualified")); err == nil {
		t.Fatal("unqualified reference must be rejected")
	}
	if _, err := f.Describe(model.Ref(basicPkg + ".Missing")); err == nil {
		t.Fatal("unknown type must be an error")
	}
}

func TestSplitRef(t *testing.T) {
	pkg, name, err := splitRef("example.com/a/b.Thing")
	if err != nil || pkg != "example.com/a/b" || name != "Thing" {
		t.Fatalf("splitRef = %q %q %v", pkg, name, err)
	}

	// A dot inside the path is not a type separator.
	if _, _, err := splitRef("example.com/a.b/pkg"); err == nil {
		t.Fatal("path-only reference must be rejected")
	}
}

package pathcomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/gen-optics/internal/diag"
	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/shape"
)

type fakeAnalyzer map[string]*model.TypeDescriptor

func (f fakeAnalyzer) Analyze(ref model.TypeRef) (*model.TypeDescriptor, shape.Shape, bool) {
	d, ok := f[ref.Name]
	if !ok {
		return nil, shape.Shape{}, false
	}
	return d, shape.Classify(d, shape.Options{}), true
}

func aggregate(name string, fields ...model.FieldDescriptor) *model.TypeDescriptor {
	return &model.TypeDescriptor{
		Name:      name,
		PkgPath:   "example.com/m",
		Ref:       model.Ref("example.com/m." + name),
		Fields:    fields,
		Aggregate: true,
	}
}

func field(name string, ref model.TypeRef) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Type: ref, Exported: true}
}

func TestJoin_LatticeLaws(t *testing.T) {
	all := []Cardinality{ExactlyOne, ZeroOrOne, ZeroOrMore}

	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				assert.Equal(t, a.Join(b).Join(c), a.Join(b.Join(c)),
					"join must be associative for (%v,%v,%v)", a, b, c)
			}
			assert.Equal(t, a.Join(b), b.Join(a), "join must be commutative")
		}
	}

	for _, x := range all {
		assert.Equal(t, ZeroOrMore, x.Join(ZeroOrMore), "zero-or-more absorbs %v", x)
		assert.Equal(t, x, ExactlyOne.Join(x), "exactly-one is the identity for %v", x)
		assert.Equal(t, x, x.Join(x), "join must be idempotent for %v", x)
	}

	assert.Equal(t, ZeroOrMore, ZeroOrOne.Join(ZeroOrMore), "widening never downgrades")
}

func TestFold(t *testing.T) {
	assert.Equal(t, ExactlyOne, Fold(nil))
	assert.Equal(t, ZeroOrMore, Fold([]Hop{
		{Field: "a", Cardinality: ZeroOrOne},
		{Field: "b", Cardinality: ZeroOrMore},
		{Field: "c", Cardinality: ExactlyOne},
	}))
}

func threeLevelAnalyzer() fakeAnalyzer {
	leaf := aggregate("Leaf", field("Value", model.Ref("string")))
	middle := aggregate("Middle", field("Leaf", model.Ref("example.com/m.Leaf")), field("Tag", model.Ref("string")))
	root := aggregate("Root", field("Middle", model.Ref("example.com/m.Middle")), field("Name", model.Ref("string")))
	return fakeAnalyzer{
		"example.com/m.Leaf":   leaf,
		"example.com/m.Middle": middle,
		"example.com/m.Root":   root,
	}
}

func TestCompose_ThreeLevelDepth3(t *testing.T) {
	an := threeLevelAnalyzer()
	root := an["example.com/m.Root"]
	c := NewComposer(an, Options{MaxDepth: 3})

	navs := c.Compose(root, shape.Classify(root, shape.Options{}), nil)
	require.Len(t, navs, 1, "only the Middle field is navigable")

	mid := navs[0]
	assert.Equal(t, "Middle", mid.Field)
	assert.Equal(t, ExactlyOne, mid.Cardinality)

	require.Len(t, mid.Children, 1)
	leafNav := mid.Children[0]
	assert.Equal(t, "Leaf", leafNav.Field)
	assert.Equal(t, ExactlyOne, leafNav.Cardinality)

	// Leaf-level fields are exposed through the two composed hops.
	require.Len(t, leafNav.Paths, 1)
	p := leafNav.Paths[0]
	require.Len(t, p.Hops, 3)
	assert.Equal(t, "Middle", p.Hops[0].Field)
	assert.Equal(t, "Leaf", p.Hops[1].Field)
	assert.Equal(t, "Value", p.Hops[2].Field)
	assert.Equal(t, ExactlyOne, p.Cardinality)
}

func TestCompose_DepthOneStopsAtFirstLevel(t *testing.T) {
	an := threeLevelAnalyzer()
	root := an["example.com/m.Root"]
	c := NewComposer(an, Options{MaxDepth: 1})

	var diags diag.Collector
	navs := c.Compose(root, shape.Classify(root, shape.Options{}), &diags)
	require.Len(t, navs, 1)
	assert.Empty(t, navs[0].Children, "no navigator past the first level at depth 1")

	// Stopping at depth is informational, not an error.
	require.NotEmpty(t, diags.All())
	assert.Equal(t, diag.CodeRecursionLimit, diags.All()[0].Code)
	assert.Empty(t, diags.Errors())
}

func TestCompose_OptionalThenSequenceWidensToZeroOrMore(t *testing.T) {
	leaf := aggregate("Leaf", field("Value", model.Ref("string")))
	middle := aggregate("Middle", field("Items", model.Ref("slice", model.Ref("example.com/m.Leaf"))))
	root := aggregate("Root", field("Backup", model.Ref("ptr", model.Ref("example.com/m.Middle"))))
	an := fakeAnalyzer{
		"example.com/m.Leaf":   leaf,
		"example.com/m.Middle": middle,
		"example.com/m.Root":   root,
	}

	c := NewComposer(an, Options{MaxDepth: 3})
	navs := c.Compose(root, shape.Classify(root, shape.Options{}), nil)
	require.Len(t, navs, 1)

	backup := navs[0]
	assert.Equal(t, ZeroOrOne, backup.Cardinality)

	// The path through the optional hop into the sequence field joins to
	// zero-or-more, never zero-or-one.
	require.Len(t, backup.Paths, 1)
	assert.Equal(t, ZeroOrMore, backup.Paths[0].Cardinality)

	require.Len(t, backup.Children, 1)
	assert.Equal(t, ZeroOrMore, backup.Children[0].Cardinality)
}

func TestCompose_CycleStopsWithinDepthBudget(t *testing.T) {
	// Two-node mutual cycle: depth alone would revisit it many times.
	a := aggregate("A", field("B", model.Ref("example.com/m.B")))
	b := aggregate("B", field("A", model.Ref("example.com/m.A")))
	an := fakeAnalyzer{"example.com/m.A": a, "example.com/m.B": b}

	c := NewComposer(an, Options{MaxDepth: 8})
	navs := c.Compose(a, shape.Classify(a, shape.Options{}), nil)
	require.Len(t, navs, 1)

	// A -> B expands, but B -> A is a cycle back to the root.
	assert.Empty(t, navs[0].Children)
}

func TestCompose_NonNavigableFieldsSkipped(t *testing.T) {
	root := aggregate("Root",
		field("Name", model.Ref("string")),
		field("Count", model.Ref("int")),
	)
	an := fakeAnalyzer{"example.com/m.Root": root}

	c := NewComposer(an, Options{MaxDepth: 3})
	navs := c.Compose(root, shape.Classify(root, shape.Options{}), nil)
	assert.Empty(t, navs, "plain scalar fields are never wrapped in a navigator")
}

func TestCompose_FieldFilters(t *testing.T) {
	an := threeLevelAnalyzer()
	root := an["example.com/m.Root"]

	c := NewComposer(an, Options{MaxDepth: 3, ExcludeFields: []string{"Middle"}})
	navs := c.Compose(root, shape.Classify(root, shape.Options{}), nil)
	assert.Empty(t, navs)

	c = NewComposer(an, Options{MaxDepth: 3, IncludeFields: []string{"Middle"}})
	navs = c.Compose(root, shape.Classify(root, shape.Options{}), nil)
	assert.Len(t, navs, 1)
}

func TestNewComposer_DepthClamped(t *testing.T) {
	c := NewComposer(fakeAnalyzer{}, Options{MaxDepth: 0})
	assert.Equal(t, 1, c.maxDepth)

	c = NewComposer(fakeAnalyzer{}, Options{MaxDepth: 99})
	assert.Equal(t, 10, c.maxDepth)
}

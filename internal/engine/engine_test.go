package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/gen-optics/internal/diag"
	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/pathcomp"
	"github.com/seitarof/gen-optics/internal/shape"
	"github.com/seitarof/gen-optics/internal/synth"
)

type countingFeed struct {
	mu    sync.Mutex
	types map[string]*model.TypeDescriptor
	calls map[string]int
}

func newFeed(descs ...*model.TypeDescriptor) *countingFeed {
	f := &countingFeed{
		types: make(map[string]*model.TypeDescriptor),
		calls: make(map[string]int),
	}
	for _, d := range descs {
		f.types[d.Ref.Name] = d
	}
	return f
}

func (f *countingFeed) Describe(ref model.TypeRef) (*model.TypeDescriptor, error) {
	f.mu.Lock()
	f.calls[ref.Name]++
	d, ok := f.types[ref.Name]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("unknown type " + ref.Name)
	}
	return d, nil
}

func (f *countingFeed) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func desc(name string, fields ...model.FieldDescriptor) *model.TypeDescriptor {
	return &model.TypeDescriptor{
		Name:      name,
		PkgPath:   "example.com/m",
		Ref:       model.Ref("example.com/m." + name),
		Fields:    fields,
		Aggregate: true,
	}
}

func f(name string, ref model.TypeRef) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Type: ref, Exported: true}
}

func TestDerive_ProductOpticsAndNavigators(t *testing.T) {
	leaf := desc("Leaf", f("Value", model.Ref("string")))
	root := desc("Root", f("Leaf", model.Ref("example.com/m.Leaf")), f("Name", model.Ref("string")))
	e := New(newFeed(leaf, root), Options{Path: pathcomp.Options{MaxDepth: 3}})

	res := e.Derive(root.Ref)
	require.Equal(t, shape.KindProduct, res.Shape.Kind)
	require.Len(t, res.Optics, 2)
	assert.Equal(t, synth.KindLens, res.Optics[1].Kind)
	require.Len(t, res.Navigators, 1)
	assert.Equal(t, "Leaf", res.Navigators[0].Field)
	assert.Empty(t, res.Diagnostics)
}

func TestDerive_UnknownTypeIsDiagnosticNotPanic(t *testing.T) {
	e := New(newFeed(), Options{Path: pathcomp.Options{MaxDepth: 1}})

	res := e.Derive(model.Ref("example.com/m.Ghost"))
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.CodeUnsupportedShape, res.Diagnostics[0].Code)
	assert.Empty(t, res.Optics)
}

func TestDeriveAll_SkipAndContinue(t *testing.T) {
	good := desc("Good", f("Name", model.Ref("string")))
	bad := &model.TypeDescriptor{
		Name:    "Bad",
		PkgPath: "example.com/m",
		Ref:     model.Ref("example.com/m.Bad"),
	}
	e := New(newFeed(good, bad), Options{Path: pathcomp.Options{MaxDepth: 1}})

	results := e.DeriveAll([]model.TypeRef{bad.Ref, good.Ref})
	require.Len(t, results, 2)

	assert.Equal(t, shape.KindUnsupported, results[0].Shape.Kind)
	assert.NotEmpty(t, results[0].Diagnostics, "unsupported shape must be reported")

	// The unsupported sibling never blocks derivation for the good root.
	assert.Len(t, results[1].Optics, 1)
	assert.Empty(t, results[1].Diagnostics)
}

func TestDeriveAll_SharedTypeAnalyzedOnce(t *testing.T) {
	shared := desc("Shared", f("Value", model.Ref("string")))
	roots := make([]model.TypeRef, 16)
	descs := []*model.TypeDescriptor{shared}
	for i := range roots {
		name := "Root" + string(rune('A'+i))
		d := desc(name, f("Shared", model.Ref("example.com/m.Shared")))
		descs = append(descs, d)
		roots[i] = d.Ref
	}
	feed := newFeed(descs...)
	e := New(feed, Options{Path: pathcomp.Options{MaxDepth: 3}})

	results := e.DeriveAll(roots)
	require.Len(t, results, len(roots))
	for _, res := range results {
		require.Len(t, res.Navigators, 1)
	}

	assert.Equal(t, 1, feed.callCount("example.com/m.Shared"),
		"a type referenced from many roots is described at most once per run")
}

func TestDerive_HintNamingMissingFieldReported(t *testing.T) {
	root := desc("Root", f("Name", model.Ref("string")))
	hints := HintSource{
		"example.com/m.Root": {Fields: map[string]model.FieldHint{
			"Phantom": {Wither: &model.WitherHint{Method: "WithPhantom"}},
		}},
	}
	e := New(newFeed(root), Options{Path: pathcomp.Options{MaxDepth: 1}, Hints: hints})

	res := e.Derive(root.Ref)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.CodeFieldNotFound, res.Diagnostics[0].Code)
	assert.Equal(t, "Phantom", res.Diagnostics[0].Field)

	// The valid field still derives.
	assert.Len(t, res.Optics, 1)
}

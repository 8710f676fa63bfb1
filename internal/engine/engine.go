// Package engine orchestrates a derivation run: it pulls descriptors from a
// feed, classifies them through the run-scoped cache, resolves copy
// strategies, synthesizes optics and composes navigators. Failures for one
// type are collected as diagnostics and never block unrelated types.
package engine

import (
	"golang.org/x/sync/errgroup"

	"github.com/seitarof/gen-optics/internal/copyplan"
	"github.com/seitarof/gen-optics/internal/diag"
	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/pathcomp"
	"github.com/seitarof/gen-optics/internal/shape"
	"github.com/seitarof/gen-optics/internal/synth"
)

// Feed supplies structural snapshots for named types. Implementations own
// whatever introspection mechanism produces them; the engine only sees
// descriptors.
type Feed interface {
	Describe(ref model.TypeRef) (*model.TypeDescriptor, error)
}

// HintSource maps a qualified type name to its user-supplied hints.
type HintSource map[string]model.Hints

// Options configures one derivation run.
type Options struct {
	Shape shape.Options
	Path  pathcomp.Options
	Hints HintSource
}

// Result is everything derived for one root type.
type Result struct {
	Type        model.TypeRef
	Shape       shape.Shape
	Optics      []synth.OpticSpec
	Navigators  []pathcomp.Navigator
	Diagnostics []diag.Diagnostic
}

// Engine drives derivations against one feed and one cache. Safe for
// concurrent use: the cache is the only shared state.
type Engine struct {
	feed  Feed
	cache *Cache
	opts  Options
	synth *synth.Synthesizer
}

// New builds an engine over a feed.
func New(feed Feed, opts Options) *Engine {
	return &Engine{
		feed:  feed,
		cache: NewCache(),
		opts:  opts,
		synth: synth.NewSynthesizer(copyplan.New(copyplan.DefaultRules()...)),
	}
}

// Analyze resolves a type reference through the cache, describing and
// classifying it at most once per run.
func (e *Engine) Analyze(ref model.TypeRef) (*model.TypeDescriptor, shape.Shape, bool) {
	a := e.analyze(ref)
	return a.desc, a.shape, a.ok
}

func (e *Engine) analyze(ref model.TypeRef) analysis {
	return e.cache.lookupOrCompute(ref.String(), func() analysis {
		d, err := e.feed.Describe(ref)
		if err != nil || d == nil {
			return analysis{}
		}
		return analysis{desc: d, shape: shape.Classify(d, e.opts.Shape), ok: true}
	})
}

// Derive produces the optics and navigators for one root type.
func (e *Engine) Derive(ref model.TypeRef) Result {
	res := Result{Type: ref}
	var diags diag.Collector

	a := e.analyze(ref)
	if !a.ok {
		diags.Addf(diag.CodeUnsupportedShape, ref.String(), "", "type could not be described")
		res.Diagnostics = diags.All()
		return res
	}
	res.Shape = a.shape

	hints := e.opts.Hints[ref.Name]
	hints = e.validateHints(a.desc, a.shape, hints, &diags)

	res.Optics = e.synth.Synthesize(a.desc, a.shape, hints, &diags)

	if navigable(a.shape) {
		composer := pathcomp.NewComposer(e, e.opts.Path)
		res.Navigators = composer.Compose(a.desc, a.shape, &diags)
	}

	res.Diagnostics = diags.All()
	return res
}

// DeriveAll derives every root concurrently. Roots share the cache, so a
// type referenced from several roots is still analyzed once.
func (e *Engine) DeriveAll(refs []model.TypeRef) []Result {
	results := make([]Result, len(refs))
	var g errgroup.Group
	for i, ref := range refs {
		g.Go(func() error {
			results[i] = e.Derive(ref)
			return nil
		})
	}
	g.Wait()
	return results
}

// validateHints drops hints that name fields absent from the type,
// reporting each as a field-not-found diagnostic.
func (e *Engine) validateHints(d *model.TypeDescriptor, sh shape.Shape, hints model.Hints, diags *diag.Collector) model.Hints {
	if len(hints.Fields) == 0 {
		return hints
	}
	kept := make(map[string]model.FieldHint, len(hints.Fields))
	for name, hint := range hints.Fields {
		if !knownName(d, sh, name) {
			diags.Addf(diag.CodeFieldNotFound, d.Identity(), name, "hint references a field that does not exist")
			continue
		}
		kept[name] = hint
	}
	return model.Hints{Fields: kept, TargetPackage: hints.TargetPackage}
}

// knownName reports whether a hinted name resolves to anything on the type:
// a declared field, a classified field, a variant, a constant, or an
// accessor reachable by the getter conventions.
func knownName(d *model.TypeDescriptor, sh shape.Shape, name string) bool {
	if d.Field(name) != nil {
		return true
	}
	for _, f := range sh.Fields {
		if f.Name == name {
			return true
		}
	}
	for _, v := range sh.Variants {
		if v.Name == name {
			return true
		}
	}
	for _, val := range sh.EnumValues {
		if val == name {
			return true
		}
	}
	for _, cand := range shape.GetterCandidates(name) {
		if acc := d.Accessor(cand); acc != nil && acc.Exported && acc.ParamCount == 0 {
			return true
		}
	}
	return false
}

func navigable(sh shape.Shape) bool {
	return sh.Kind == shape.KindProduct || sh.Kind == shape.KindPairedAccessor
}

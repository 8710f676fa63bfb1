package pathcomp

import (
	"slices"

	"github.com/seitarof/gen-optics/internal/container"
	"github.com/seitarof/gen-optics/internal/diag"
	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/shape"
)

// Analyzer resolves a type reference to its descriptor and shape. The
// engine backs this with its run-scoped cache.
type Analyzer interface {
	Analyze(ref model.TypeRef) (*model.TypeDescriptor, shape.Shape, bool)
}

// Navigator exposes composed access into one nested field: for each of the
// nested type's own fields, a path from the root, plus deeper navigators
// while the depth budget lasts.
type Navigator struct {
	Field       string
	Source      model.TypeRef
	Target      model.TypeRef
	Cardinality Cardinality
	Paths       []Path
	Children    []Navigator
}

// Options configures a composer.
type Options struct {
	MaxDepth      int
	IncludeFields []string
	ExcludeFields []string
}

// Composer walks a root type's field graph and derives navigators.
type Composer struct {
	analyzer Analyzer
	maxDepth int
	include  map[string]bool
	exclude  map[string]bool
}

// NewComposer builds a composer. Depth is clamped to [1, 10].
func NewComposer(a Analyzer, opts Options) *Composer {
	depth := opts.MaxDepth
	if depth < 1 {
		depth = 1
	}
	if depth > 10 {
		depth = 10
	}
	return &Composer{
		analyzer: a,
		maxDepth: depth,
		include:  toSet(opts.IncludeFields),
		exclude:  toSet(opts.ExcludeFields),
	}
}

// Compose derives navigators for every navigable field of the root.
// Non-navigable fields keep their ordinary single-hop optic and are never
// wrapped. The expanding set is scoped to this call: concurrent
// compositions of different roots never share it.
func (c *Composer) Compose(d *model.TypeDescriptor, sh shape.Shape, diags *diag.Collector) []Navigator {
	expanding := map[string]bool{d.Identity(): true}
	return c.walk(d, sh, 0, ExactlyOne, expanding, nil, diags)
}

func (c *Composer) walk(
	d *model.TypeDescriptor,
	sh shape.Shape,
	depth int,
	acc Cardinality,
	expanding map[string]bool,
	prefix []Hop,
	diags *diag.Collector,
) []Navigator {
	if depth >= c.maxDepth {
		return nil
	}

	var navs []Navigator
	for _, f := range sh.Fields {
		if !c.selected(f.Name) {
			continue
		}

		det := container.Detect(f.Type)
		elemRef := f.Type
		if det.Kind != container.KindNone {
			elemRef = det.Elem
		}
		hopCard := FromContainer(det.Cardinality)

		nested, nestedShape, ok := c.analyzer.Analyze(elemRef)
		if !ok || !navigable(nestedShape) {
			continue
		}
		if expanding[nested.Identity()] {
			// Cycle: stop expanding this branch regardless of the
			// remaining depth budget.
			continue
		}

		widened := acc.Join(hopCard)
		hop := Hop{Field: f.Name, Source: d.Ref, Target: elemRef, Cardinality: hopCard}
		nav := Navigator{
			Field:       f.Name,
			Source:      d.Ref,
			Target:      elemRef,
			Cardinality: widened,
		}

		for _, nf := range nestedShape.Fields {
			leafHop := Hop{Field: nf.Name, Source: nested.Ref, Target: nf.Type, Cardinality: FromContainer(nf.Cardinality)}
			hops := append(slices.Clone(prefix), hop, leafHop)
			nav.Paths = append(nav.Paths, Path{
				Hops:        hops,
				Target:      nf.Type,
				Cardinality: Fold(hops),
			})
		}

		expanding[nested.Identity()] = true
		childPrefix := append(slices.Clone(prefix), hop)
		nav.Children = c.walk(nested, nestedShape, depth+1, widened, expanding, childPrefix, diags)
		delete(expanding, nested.Identity())

		if depth+1 >= c.maxDepth && c.hasNavigableField(nestedShape) && diags != nil {
			diags.Addf(diag.CodeRecursionLimit, nested.Identity(), "",
				"recursion stopped at configured depth %d; only direct accessors exposed", c.maxDepth)
		}

		navs = append(navs, nav)
	}
	return navs
}

func (c *Composer) hasNavigableField(sh shape.Shape) bool {
	for _, f := range sh.Fields {
		det := container.Detect(f.Type)
		ref := f.Type
		if det.Kind != container.KindNone {
			ref = det.Elem
		}
		if _, nsh, ok := c.analyzer.Analyze(ref); ok && navigable(nsh) {
			return true
		}
	}
	return false
}

func (c *Composer) selected(field string) bool {
	if len(c.include) > 0 {
		return c.include[field]
	}
	return !c.exclude[field]
}

func navigable(sh shape.Shape) bool {
	return sh.Kind == shape.KindProduct || sh.Kind == shape.KindPairedAccessor
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Package synth turns a classified shape plus resolved copy strategies into
// optic specifications: symbolic get/set, match/construct and traverse
// expressions ready for rendering. Rejections are explicit diagnostics;
// a requested optic kind is never silently downgraded to a weaker one.
package synth

import (
	"strings"

	"github.com/seitarof/gen-optics/internal/container"
	"github.com/seitarof/gen-optics/internal/copyplan"
	"github.com/seitarof/gen-optics/internal/diag"
	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/shape"
)

// Kind is the optic kind of a synthesized spec.
type Kind int

const (
	KindLens Kind = iota
	KindAffine
	KindTraversal
	KindPrism
	KindIso
	KindFold
)

func (k Kind) String() string {
	switch k {
	case KindLens:
		return "lens"
	case KindAffine:
		return "affine"
	case KindTraversal:
		return "traversal"
	case KindPrism:
		return "prism"
	case KindIso:
		return "iso"
	default:
		return "fold"
	}
}

// OpticSpec is one synthesized optic. The expression fields are symbolic:
// "s" names the source value, "a" the replacement focus, "v" the matched
// variant. Rendering them into concrete source is the emit stage's job.
type OpticSpec struct {
	Kind   Kind
	Name   string
	Field  string
	Source model.TypeRef
	Focus  model.TypeRef
	// FieldType is the field's declared type before container unwrapping;
	// equal to Focus for scalar fields.
	FieldType model.TypeRef

	Get       string
	Set       string
	Match     string
	Construct string

	// Container drives traversal rebuild for sequence and keyed foci.
	Container container.Kind
	// Traverse is set only when a hint supplies an explicit traversal
	// implementation reference, honored verbatim.
	Traverse string

	Strategy copyplan.Strategy
}

// Synthesizer derives optic specs for classified types.
type Synthesizer struct {
	resolver *copyplan.Resolver
}

// NewSynthesizer builds a synthesizer around a copy-strategy resolver.
func NewSynthesizer(r *copyplan.Resolver) *Synthesizer {
	return &Synthesizer{resolver: r}
}

// Synthesize derives every optic the shape supports: one per field for
// product and paired-accessor shapes (kind chosen by field cardinality), one
// prism per variant or constant for sum and enumerated shapes. Failures are
// collected per field; one bad field never blocks its siblings.
func (s *Synthesizer) Synthesize(d *model.TypeDescriptor, sh shape.Shape, hints model.Hints, diags *diag.Collector) []OpticSpec {
	var specs []OpticSpec

	switch sh.Kind {
	case shape.KindProduct, shape.KindPairedAccessor:
		for _, f := range sh.Fields {
			spec, ok := s.forField(d, sh, f, hints, diags)
			if !ok {
				continue
			}
			specs = append(specs, spec)
		}
		if sh.Kind == shape.KindProduct && len(sh.Fields) == 1 {
			specs = append(specs, wrapperIso(d, sh.Fields[0]))
		}
	case shape.KindClosedSum:
		for _, v := range sh.Variants {
			specs = append(specs, variantPrism(d, v, hints))
		}
	case shape.KindEnumerated:
		for _, val := range sh.EnumValues {
			specs = append(specs, constantPrism(d, val))
		}
	default:
		diags.Addf(diag.CodeUnsupportedShape, d.Identity(), "", "%s", sh.Reason)
	}

	return dedupe(specs, d, diags)
}

// Require synthesizes an optic of an explicitly requested kind. A kind the
// field or shape cannot support is a diagnostic, never a downgrade.
func (s *Synthesizer) Require(d *model.TypeDescriptor, sh shape.Shape, field string, kind Kind, hints model.Hints, diags *diag.Collector) (OpticSpec, bool) {
	switch kind {
	case KindPrism:
		if sh.Kind != shape.KindClosedSum && sh.Kind != shape.KindEnumerated {
			diags.Addf(diag.CodeMissingHint, d.Identity(), field,
				"prism requested outside a closed sum or enumerated type; supply a predicate/extractor hint")
			return OpticSpec{}, false
		}
		for _, v := range sh.Variants {
			if v.Name == field {
				return variantPrism(d, v, hints), true
			}
		}
		for _, val := range sh.EnumValues {
			if val == field {
				return constantPrism(d, val), true
			}
		}
		diags.Addf(diag.CodeFieldNotFound, d.Identity(), field, "no variant or constant with this name")
		return OpticSpec{}, false
	}

	f := fieldOf(sh, field)
	if f == nil {
		diags.Addf(diag.CodeFieldNotFound, d.Identity(), field, "no field with this name")
		return OpticSpec{}, false
	}

	switch kind {
	case KindLens:
		if f.Cardinality != model.CardinalityScalar {
			diags.Addf(diag.CodeMissingHint, d.Identity(), field,
				"lens requested on a %s field; only exactly-one foci admit a lens", f.Cardinality)
			return OpticSpec{}, false
		}
	case KindTraversal, KindFold:
		if f.Cardinality != model.CardinalitySequence && f.Cardinality != model.CardinalityKeyed {
			if hint, ok := hints.Hint(field); ok && hint.Traversal != nil && hint.Traversal.Traversal != "" {
				spec, ok := s.forField(d, sh, *f, hints, diags)
				if !ok {
					return OpticSpec{}, false
				}
				spec.Kind = kind
				return spec, true
			}
			diags.Addf(diag.CodeMissingHint, d.Identity(), field,
				"traversal requested on a %s field outside the container allow-list and no traversal hint supplied", f.Cardinality)
			return OpticSpec{}, false
		}
	case KindAffine:
		if f.Cardinality != model.CardinalityOptional {
			diags.Addf(diag.CodeMissingHint, d.Identity(), field,
				"affine requested on a %s field; only zero-or-one foci admit an affine", f.Cardinality)
			return OpticSpec{}, false
		}
	}

	spec, ok := s.forField(d, sh, *f, hints, diags)
	if !ok {
		return OpticSpec{}, false
	}
	if kind == KindFold {
		spec.Kind = KindFold
	}
	return spec, ok
}

// forField derives the optic a field's cardinality dictates: scalar fields
// yield a lens, optional fields an affine, sequence and keyed fields a
// traversal. The set side comes from the literal rebuild for products and
// from the resolved copy strategy for paired accessors.
func (s *Synthesizer) forField(d *model.TypeDescriptor, sh shape.Shape, f model.FieldDescriptor, hints model.Hints, diags *diag.Collector) (OpticSpec, bool) {
	det := container.Detect(f.Type)
	spec := OpticSpec{
		Name:      d.Name + shape.Capitalise(f.Name),
		Field:     f.Name,
		Source:    d.Ref,
		Focus:     f.Type,
		FieldType: f.Type,
		Container: det.Kind,
	}
	if det.Kind != container.KindNone {
		spec.Focus = det.Elem
	}

	switch f.Cardinality {
	case model.CardinalityOptional:
		spec.Kind = KindAffine
	case model.CardinalitySequence, model.CardinalityKeyed:
		spec.Kind = KindTraversal
	default:
		spec.Kind = KindLens
	}

	if hint, ok := hints.Hint(f.Name); ok && hint.Traversal != nil && hint.Traversal.Traversal != "" {
		spec.Kind = KindTraversal
		spec.Traverse = hint.Traversal.Traversal
	}

	if sh.Kind == shape.KindProduct {
		spec.Get = "s." + f.Name
		spec.Set = literalRebuild(d, sh, f.Name)
		return spec, true
	}

	strat, err := s.resolver.Resolve(d, sh, f.Name, hints)
	if err != nil {
		diags.Addf(diag.CodeAmbiguousCopyStrategy, d.Identity(), f.Name, "%v", err)
		return OpticSpec{}, false
	}
	spec.Strategy = strat
	spec.Get = "s." + strat.Getter + "()"
	spec.Set = strategySet(d, strat)
	return spec, true
}

// literalRebuild substitutes the new value at the target field of a struct
// literal and re-reads every other field from the source. Substituting only
// at the leaf is what keeps composed updates from sharing structure.
func literalRebuild(d *model.TypeDescriptor, sh shape.Shape, target string) string {
	parts := make([]string, len(sh.Fields))
	for i, f := range sh.Fields {
		if f.Name == target {
			parts[i] = f.Name + ": a"
		} else {
			parts[i] = f.Name + ": s." + f.Name
		}
	}
	return d.Name + "{" + strings.Join(parts, ", ") + "}"
}

func strategySet(d *model.TypeDescriptor, strat copyplan.Strategy) string {
	switch strat.Kind {
	case copyplan.KindViaBuilder:
		return "s." + strat.ToBuilder + "()." + strat.BuilderSetter + "(a)." + strat.Build + "()"
	case copyplan.KindViaConstructor:
		args := make([]string, len(strat.ParameterOrder))
		for i, p := range strat.ParameterOrder {
			if sameField(p, strat) {
				args[i] = "a"
			} else {
				args[i] = "s." + shape.Capitalise(p) + "()"
			}
		}
		return "New" + d.Name + "(" + strings.Join(args, ", ") + ")"
	case copyplan.KindViaCopyAndSet:
		return "dup := " + strat.CopyConstructor + "(s); dup." + strat.Setter + "(a); return dup"
	default:
		return "s." + strat.Wither + "(a)"
	}
}

// sameField reports whether a constructor parameter is the substitution
// target. The getter ties the strategy back to its field.
func sameField(param string, strat copyplan.Strategy) bool {
	for _, cand := range shape.GetterCandidates(param) {
		if cand == strat.Getter {
			return true
		}
	}
	return false
}

// variantPrism builds a prism for one member of a closed sum. A hint's
// predicate/extractor pair replaces the type check verbatim, supporting
// duck-typed variants that are not literal subtypes.
func variantPrism(d *model.TypeDescriptor, v model.VariantDescriptor, hints model.Hints) OpticSpec {
	spec := OpticSpec{
		Kind:      KindPrism,
		Name:      d.Name + v.Name,
		Field:     v.Name,
		Source:    d.Ref,
		Focus:     v.Type,
		Match:     "v, ok := s.(" + v.Type.Name + ")",
		Construct: "v",
	}
	if hint, ok := hints.Hint(v.Name); ok && hint.Prism != nil {
		if hint.Prism.Predicate != "" {
			spec.Match = hint.Prism.Predicate + "(s)"
		}
		if hint.Prism.Extractor != "" {
			spec.Get = hint.Prism.Extractor + "(s)"
		}
	}
	return spec
}

// constantPrism builds an identity-check prism for one enumerated constant.
func constantPrism(d *model.TypeDescriptor, value string) OpticSpec {
	return OpticSpec{
		Kind:      KindPrism,
		Name:      d.Name + shape.Capitalise(value),
		Field:     value,
		Source:    d.Ref,
		Focus:     d.Ref,
		Match:     "s == " + value,
		Construct: value,
	}
}

// wrapperIso pairs the lens of a single-field aggregate with a total
// wrap/unwrap view of the same field.
func wrapperIso(d *model.TypeDescriptor, f model.FieldDescriptor) OpticSpec {
	return OpticSpec{
		Kind:      KindIso,
		Name:      d.Name + "As" + shape.Capitalise(f.Name),
		Field:     f.Name,
		Source:    d.Ref,
		Focus:     f.Type,
		Get:       "s." + f.Name,
		Construct: d.Name + "{" + f.Name + ": a}",
	}
}

// dedupe rejects specs whose derived names coincide, reporting both
// offending fields, and keeps the first.
func dedupe(specs []OpticSpec, d *model.TypeDescriptor, diags *diag.Collector) []OpticSpec {
	seen := make(map[string]string, len(specs))
	out := specs[:0]
	for _, spec := range specs {
		if prev, dup := seen[spec.Name]; dup {
			diags.Addf(diag.CodeNamingCollision, d.Identity(), spec.Field,
				"derived name %s collides with field %s", spec.Name, prev)
			continue
		}
		seen[spec.Name] = spec.Field
		out = append(out, spec)
	}
	return out
}

func fieldOf(sh shape.Shape, name string) *model.FieldDescriptor {
	for i := range sh.Fields {
		if sh.Fields[i].Name == name {
			return &sh.Fields[i]
		}
	}
	return nil
}

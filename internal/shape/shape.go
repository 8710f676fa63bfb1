// Package shape assigns exactly one structural classification to a type.
// Classification rules are evaluated in strict priority order; the first
// match wins, and a type matching an earlier rule is never reclassified by
// a later one.
package shape

import (
	"github.com/seitarof/gen-optics/internal/container"
	"github.com/seitarof/gen-optics/internal/model"
)

// Kind is the closed set of recognized shapes.
type Kind int

const (
	KindUnsupported Kind = iota
	KindProduct
	KindClosedSum
	KindEnumerated
	KindPairedAccessor
)

func (k Kind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindClosedSum:
		return "closed-sum"
	case KindEnumerated:
		return "enumerated"
	case KindPairedAccessor:
		return "paired-accessor"
	default:
		return "unsupported"
	}
}

// Wither is a detected modifier/getter pair for one field of a
// paired-accessor type.
type Wither struct {
	Field  string
	Method string
	Getter string
	Type   model.TypeRef
}

// Shape is the classification result for one type.
type Shape struct {
	Kind       Kind
	Fields     []model.FieldDescriptor // product and paired-accessor shapes
	Variants   []model.VariantDescriptor
	EnumValues []string
	Withers    map[string]Wither // paired-accessor: field name -> pair
	Reason     string            // unsupported: human-readable reason
}

// Options controls classification behavior.
type Options struct {
	// TolerateMutators opts in to classifying types with a detected
	// mutation surface. Without it, mutability is always rejected: an
	// aliasing mutation would break the optic value-semantics contract.
	TolerateMutators bool
}

// Classify examines a descriptor's structural facts and returns exactly one
// shape. Same facts always produce the same shape.
func Classify(d *model.TypeDescriptor, opts Options) Shape {
	if sh, ok := classifyProduct(d); ok {
		return sh
	}

	if len(d.Variants) > 0 {
		return Shape{Kind: KindClosedSum, Variants: d.Variants}
	}

	if len(d.EnumValues) > 0 {
		return Shape{Kind: KindEnumerated, EnumValues: d.EnumValues}
	}

	if d.Abstract {
		return Shape{Kind: KindUnsupported, Reason: "type is abstract and has no closed variant list"}
	}

	withers := DetectWithers(d)
	if len(withers) == 0 {
		return Shape{Kind: KindUnsupported, Reason: "no accessor/modifier pairs found"}
	}

	if HasMutationSurface(d) && !opts.TolerateMutators {
		return Shape{
			Kind:   KindUnsupported,
			Reason: "mutation surface detected without opt-in",
		}
	}

	fields := make([]model.FieldDescriptor, 0, len(withers))
	index := make(map[string]Wither, len(withers))
	for _, w := range withers {
		det := container.Detect(w.Type)
		fields = append(fields, model.FieldDescriptor{
			Name:        w.Field,
			Type:        w.Type,
			Exported:    true,
			Cardinality: det.Cardinality,
		})
		index[w.Field] = w
	}
	return Shape{Kind: KindPairedAccessor, Fields: fields, Withers: index}
}

// classifyProduct matches a fixed-arity immutable aggregate: every field
// accessible and no open mutation surface. Selected before all other rules;
// modifier methods on such a type are ignored for optic purposes.
func classifyProduct(d *model.TypeDescriptor) (Shape, bool) {
	if !d.Aggregate || len(d.Fields) == 0 {
		return Shape{}, false
	}
	for _, f := range d.Fields {
		if !f.Exported {
			return Shape{}, false
		}
	}
	if HasMutationSurface(d) {
		return Shape{}, false
	}

	fields := make([]model.FieldDescriptor, len(d.Fields))
	copy(fields, d.Fields)
	for i := range fields {
		fields[i].Cardinality = container.Detect(fields[i].Type).Cardinality
	}
	return Shape{Kind: KindProduct, Fields: fields}, true
}

// DetectWithers scans a type's modifier methods for the per-field "with"
// convention: named With plus a non-empty field suffix, exported, one
// parameter, returning the declaring type, with a matching getter.
func DetectWithers(d *model.TypeDescriptor) []Wither {
	var withers []Wither
	for _, m := range d.Modifiers {
		field, ok := witherField(m)
		if !ok {
			continue
		}
		getter, ok := findGetter(d, field, m.Param)
		if !ok {
			continue
		}
		withers = append(withers, Wither{
			Field:  field,
			Method: m.Name,
			Getter: getter,
			Type:   m.Param,
		})
	}
	return withers
}

// witherField extracts the field name from a candidate modifier method.
// A bare "With" with no suffix is ambiguous and rejected.
func witherField(m model.MethodDescriptor) (string, bool) {
	const prefix = "With"
	if len(m.Name) <= len(prefix) || m.Name[:len(prefix)] != prefix {
		return "", false
	}
	if !m.Exported || m.ParamCount != 1 || m.Returns == nil {
		return "", false
	}
	return LowerFirst(m.Name[len(prefix):]), true
}

// HasMutationSurface reports whether the type exposes a setter that mutates
// shared state: named Set plus a non-empty suffix, one parameter, no result.
// A bare "Set" does not count.
func HasMutationSurface(d *model.TypeDescriptor) bool {
	const prefix = "Set"
	for _, m := range d.Mutators {
		if len(m.Name) <= len(prefix) || m.Name[:len(prefix)] != prefix {
			continue
		}
		if m.Exported && m.ParamCount == 1 && m.Returns == nil {
			return true
		}
	}
	return false
}

// findGetter resolves the accessor paired with a wither, trying the plain,
// "Get"-prefixed and "Is"-prefixed conventions in that fixed order. The
// accessor's result type must match the wither's parameter type.
func findGetter(d *model.TypeDescriptor, field string, want model.TypeRef) (string, bool) {
	for _, name := range GetterCandidates(field) {
		acc := d.Accessor(name)
		if acc == nil || !acc.Exported || acc.ParamCount != 0 || acc.Returns == nil {
			continue
		}
		if acc.Returns.Equal(want) {
			return name, true
		}
	}
	return "", false
}

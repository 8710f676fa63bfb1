package copyplan

import (
	"slices"

	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/shape"
)

// BuilderRule resolves a builder round-trip: convert to builder, call the
// per-field setter-chain method, then the terminal build method.
type BuilderRule struct{}

func (r *BuilderRule) Name() string { return "via-builder" }

func (r *BuilderRule) Try(d *model.TypeDescriptor, sh shape.Shape, field string, hint model.FieldHint) (Strategy, bool, error) {
	if hint.Builder == nil {
		return Strategy{}, false, nil
	}
	h := *hint.Builder

	toBuilder := orDefault(h.ToBuilder, "ToBuilder")
	build := orDefault(h.Build, "Build")
	// The builder accessor defaults to the field's own name.
	setter := orDefault(h.Setter, shape.Capitalise(field))

	getter, err := resolveGetter(d, sh, field, h.Getter)
	if err != nil {
		return Strategy{}, false, err
	}

	return Strategy{
		Kind:          KindViaBuilder,
		Getter:        getter,
		ToBuilder:     toBuilder,
		BuilderSetter: setter,
		Build:         build,
	}, true, nil
}

// ConstructorRule resolves a full-arity constructor call, substituting the
// new value at the field's position and re-reading every other position
// through its accessor.
type ConstructorRule struct{}

func (r *ConstructorRule) Name() string { return "via-constructor" }

func (r *ConstructorRule) Try(d *model.TypeDescriptor, sh shape.Shape, field string, hint model.FieldHint) (Strategy, bool, error) {
	if hint.Constructor == nil {
		return Strategy{}, false, nil
	}
	order := hint.Constructor.ParameterOrder
	if len(order) == 0 {
		// Guessing constructor positions would be unsound; reject outright.
		return Strategy{}, false, &ResolveError{
			Type:  d.Identity(),
			Field: field,
			Cause: "constructor parameter order is empty; list every parameter name in declaration order",
		}
	}
	if !slices.Contains(order, field) {
		return Strategy{}, false, &ResolveError{
			Type:  d.Identity(),
			Field: field,
			Cause: "field does not appear in the constructor parameter order",
		}
	}

	getter, err := resolveGetter(d, sh, field, "")
	if err != nil {
		return Strategy{}, false, err
	}

	return Strategy{
		Kind:           KindViaConstructor,
		Getter:         getter,
		ParameterOrder: slices.Clone(order),
	}, true, nil
}

// CopyAndSetRule resolves a shallow copy-constructor call followed by a
// single setter invocation on the duplicate.
type CopyAndSetRule struct{}

func (r *CopyAndSetRule) Name() string { return "via-copy-and-set" }

func (r *CopyAndSetRule) Try(d *model.TypeDescriptor, sh shape.Shape, field string, hint model.FieldHint) (Strategy, bool, error) {
	if hint.CopyAndSet == nil {
		return Strategy{}, false, nil
	}
	h := *hint.CopyAndSet

	// The copy constructor defaults to the type's own name.
	copyCtor := orDefault(h.CopyConstructor, d.Name)
	setter := orDefault(h.Setter, "Set"+shape.Capitalise(field))

	getter, err := resolveGetter(d, sh, field, "")
	if err != nil {
		return Strategy{}, false, err
	}

	return Strategy{
		Kind:            KindViaCopyAndSet,
		Getter:          getter,
		CopyConstructor: copyCtor,
		Setter:          setter,
	}, true, nil
}

// WitherRule resolves the modifier method detected during shape
// classification (or named by an explicit hint) as the copy operation.
type WitherRule struct{}

func (r *WitherRule) Name() string { return "via-paired-wither" }

func (r *WitherRule) Try(d *model.TypeDescriptor, sh shape.Shape, field string, hint model.FieldHint) (Strategy, bool, error) {
	if hint.Wither != nil {
		h := *hint.Wither
		method := orDefault(h.Method, "With"+shape.Capitalise(field))
		m := d.Modifier(method)
		if m == nil || !m.Exported || m.ParamCount != 1 {
			return Strategy{}, false, &ResolveError{
				Type:  d.Identity(),
				Field: field,
				Cause: "wither hint names " + method + ", which is not an exported single-argument modifier",
			}
		}
		getter, err := resolveGetter(d, sh, field, h.Getter)
		if err != nil {
			return Strategy{}, false, err
		}
		return Strategy{Kind: KindViaPairedWither, Getter: getter, Wither: method}, true, nil
	}

	w, ok := sh.Withers[field]
	if !ok {
		return Strategy{}, false, nil
	}
	return Strategy{Kind: KindViaPairedWither, Getter: w.Getter, Wither: w.Method}, true, nil
}

// resolveGetter maps a field name to its accessor. An explicit name is
// honored verbatim; otherwise the plain, Get-prefixed and Is-prefixed
// conventions are tried in that order and the first accessor that
// structurally exists on the type wins.
func resolveGetter(d *model.TypeDescriptor, sh shape.Shape, field, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	boolShaped := false
	if f := fieldIn(sh, field); f != nil {
		boolShaped = shape.IsBoolShaped(f.Type.Name)
	}

	for _, candidate := range shape.GetterCandidates(field) {
		if !boolShaped && len(candidate) > 2 && candidate[:2] == "Is" {
			continue
		}
		if candidate == "" {
			continue
		}
		if acc := d.Accessor(candidate); acc != nil && acc.Exported && acc.ParamCount == 0 {
			return candidate, nil
		}
	}
	return "", &ResolveError{
		Type:  d.Identity(),
		Field: field,
		Cause: "no accessor found by the plain, Get- or Is-prefixed conventions",
	}
}

func fieldIn(sh shape.Shape, name string) *model.FieldDescriptor {
	for i := range sh.Fields {
		if sh.Fields[i].Name == name {
			return &sh.Fields[i]
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

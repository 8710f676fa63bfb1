package model

// Hints carries user-supplied per-field overrides for one type. A hint
// always wins over automatic inference; inference is the fallback only when
// no hint is supplied.
type Hints struct {
	Fields map[string]FieldHint
	// TargetPackage overrides the package the emitted artifacts land in.
	TargetPackage string
}

// Hint returns the hint for a field, if any.
func (h Hints) Hint(field string) (FieldHint, bool) {
	fh, ok := h.Fields[field]
	return fh, ok
}

// FieldHint is the set of overrides that can short-circuit automatic
// resolution for a single field or variant.
type FieldHint struct {
	Builder     *BuilderHint
	Constructor *ConstructorHint
	CopyAndSet  *CopyAndSetHint
	Wither      *WitherHint
	Prism       *PrismHint
	Traversal   *TraversalHint
}

// BuilderHint names the methods of a builder round-trip. Empty names fall
// back to conventional defaults.
type BuilderHint struct {
	Getter    string // default: derived from the field name
	ToBuilder string // default: "ToBuilder"
	Setter    string // default: the field name itself
	Build     string // default: "Build"
}

// ConstructorHint supplies the full-arity constructor parameter order. An
// empty order is ambiguous and rejected outright.
type ConstructorHint struct {
	ParameterOrder []string
}

// CopyAndSetHint names a copy constructor and the per-field setter invoked
// on the duplicate.
type CopyAndSetHint struct {
	CopyConstructor string // default: the type's own name
	Setter          string // default: "Set" + field
}

// WitherHint pairs an explicit modifier method with its getter.
type WitherHint struct {
	Getter string
	Method string
}

// PrismHint either names the variant to match or supplies a user-declared
// predicate/extractor pair honored verbatim in place of the type check.
type PrismHint struct {
	Variant   string
	Predicate string
	Extractor string
}

// TraversalHint either names a field whose container traversal should be
// auto-detected, or references an explicit traversal implementation.
type TraversalHint struct {
	Field     string
	Traversal string
}

// Package model holds the structural snapshot types shared by every
// derivation stage. Descriptors are captured once by a feed and never
// mutated afterwards; re-analysis produces a new descriptor.
package model

import "strings"

// TypeRef is a structural reference to a declared type: a name plus zero or
// more type arguments. Built-in container shapes use the reserved names
// "ptr", "slice", "array" and "map"; named types use their qualified name.
type TypeRef struct {
	Name string
	Args []TypeRef
}

// Ref builds a TypeRef from a name and optional arguments.
func Ref(name string, args ...TypeRef) TypeRef {
	return TypeRef{Name: name, Args: args}
}

// String renders the reference in a stable form usable as a cache key.
func (r TypeRef) String() string {
	if len(r.Args) == 0 {
		return r.Name
	}
	parts := make([]string, len(r.Args))
	for i, a := range r.Args {
		parts[i] = a.String()
	}
	return r.Name + "[" + strings.Join(parts, ",") + "]"
}

// Equal reports structural equality of two references.
func (r TypeRef) Equal(o TypeRef) bool {
	if r.Name != o.Name || len(r.Args) != len(o.Args) {
		return false
	}
	for i := range r.Args {
		if !r.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Cardinality classifies how many foci a field's declared container yields.
type Cardinality int

const (
	CardinalityUnrecognized Cardinality = iota
	CardinalityScalar
	CardinalityOptional
	CardinalitySequence
	CardinalityKeyed
)

func (c Cardinality) String() string {
	switch c {
	case CardinalityScalar:
		return "scalar"
	case CardinalityOptional:
		return "optional"
	case CardinalitySequence:
		return "sequence"
	case CardinalityKeyed:
		return "keyed"
	default:
		return "unrecognized"
	}
}

// FieldDescriptor is one declared field of a type. Owned by its parent
// TypeDescriptor; downstream stages reference it, never copy it.
type FieldDescriptor struct {
	Name        string
	Type        TypeRef
	Exported    bool
	Cardinality Cardinality // filled in by the container detector
}

// MethodDescriptor is one candidate accessor or modification method.
type MethodDescriptor struct {
	Name       string
	ParamCount int
	Param      TypeRef  // first parameter type when ParamCount == 1
	Returns    *TypeRef // nil when the method returns nothing
	Exported   bool
}

// VariantDescriptor is one member of a closed sum type.
type VariantDescriptor struct {
	Name string
	Type TypeRef
}

// TypeDescriptor is the immutable structural snapshot of a single type.
type TypeDescriptor struct {
	Name    string
	PkgPath string
	Ref     TypeRef

	Fields     []FieldDescriptor
	Accessors  []MethodDescriptor // zero-parameter, single-result methods
	Modifiers  []MethodDescriptor // single-parameter methods returning the declaring type
	Mutators   []MethodDescriptor // single-parameter methods returning nothing
	Variants   []VariantDescriptor
	EnumValues []string

	// Aggregate marks an immutable-by-construction value: a plain struct
	// whose identity is its field tuple.
	Aggregate bool
	// Abstract marks a type that cannot be instantiated directly.
	Abstract bool
}

// Identity returns the cache key for this type within a derivation run.
func (d *TypeDescriptor) Identity() string {
	if d.PkgPath == "" {
		return d.Name
	}
	return d.PkgPath + "." + d.Name
}

// Field returns the named field, or nil.
func (d *TypeDescriptor) Field(name string) *FieldDescriptor {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// Accessor returns the named zero-parameter accessor, or nil.
func (d *TypeDescriptor) Accessor(name string) *MethodDescriptor {
	for i := range d.Accessors {
		if d.Accessors[i].Name == name {
			return &d.Accessors[i]
		}
	}
	return nil
}

// Modifier returns the named modifier method, or nil.
func (d *TypeDescriptor) Modifier(name string) *MethodDescriptor {
	for i := range d.Modifiers {
		if d.Modifiers[i].Name == name {
			return &d.Modifiers[i]
		}
	}
	return nil
}

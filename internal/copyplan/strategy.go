// Package copyplan resolves, per field, how a modified copy of an
// immutable-by-convention value is produced. Rules run in a fixed priority
// order and the first success wins; a field with no resolvable strategy is
// a localized error, never a silent fallback.
package copyplan

import (
	"github.com/seitarof/gen-optics/internal/model"
	"github.com/seitarof/gen-optics/internal/shape"
)

// Kind identifies the copy mechanism.
type Kind int

const (
	KindNone Kind = iota
	KindViaBuilder
	KindViaConstructor
	KindViaCopyAndSet
	KindViaPairedWither
)

func (k Kind) String() string {
	switch k {
	case KindViaBuilder:
		return "via-builder"
	case KindViaConstructor:
		return "via-constructor"
	case KindViaCopyAndSet:
		return "via-copy-and-set"
	case KindViaPairedWither:
		return "via-paired-wither"
	default:
		return "none"
	}
}

// Strategy is one resolved copy strategy for a single field. Only the
// fields relevant to its Kind are set.
type Strategy struct {
	Kind   Kind
	Getter string

	// via-builder
	ToBuilder     string
	BuilderSetter string
	Build         string

	// via-constructor
	ParameterOrder []string

	// via-copy-and-set
	CopyConstructor string
	Setter          string

	// via-paired-wither
	Wither string
}

// Rule tries to resolve a strategy for one field. A false ok means the rule
// does not apply and the chain continues; a non-nil error is a hard,
// localized failure that stops resolution for the field.
type Rule interface {
	Name() string
	Try(d *model.TypeDescriptor, sh shape.Shape, field string, hint model.FieldHint) (Strategy, bool, error)
}

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		&BuilderRule{},
		&ConstructorRule{},
		&CopyAndSetRule{},
		&WitherRule{},
	}
}

// Resolver resolves copy strategies for paired-accessor fields.
type Resolver struct {
	rules []Rule
}

// New builds a resolver with the given rule chain.
func New(rules ...Rule) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve returns exactly one strategy for the field, or an error naming
// the field and the unmet condition.
func (r *Resolver) Resolve(d *model.TypeDescriptor, sh shape.Shape, field string, hints model.Hints) (Strategy, error) {
	hint, _ := hints.Hint(field)
	for _, rule := range r.rules {
		s, ok, err := rule.Try(d, sh, field, hint)
		if err != nil {
			return Strategy{}, err
		}
		if ok {
			return s, nil
		}
	}
	return Strategy{}, &ResolveError{
		Type:  d.Identity(),
		Field: field,
		Cause: "no copy strategy applies: supply a builder, constructor, copy-and-set or wither hint, or expose a With" + shape.Capitalise(field) + " modifier",
	}
}

// ResolveError is a localized copy-strategy failure for one field.
type ResolveError struct {
	Type  string
	Field string
	Cause string
}

func (e *ResolveError) Error() string {
	return e.Type + "." + e.Field + ": " + e.Cause
}

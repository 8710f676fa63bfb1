// Package pathcomp composes multi-hop navigation paths across nested
// navigable types, widening cardinality through a three-element join
// lattice and bounding recursion by depth and cycle detection.
package pathcomp

import "github.com/seitarof/gen-optics/internal/model"

// Cardinality is how many foci a composed path yields.
type Cardinality int

const (
	ExactlyOne Cardinality = iota
	ZeroOrOne
	ZeroOrMore
)

func (c Cardinality) String() string {
	switch c {
	case ExactlyOne:
		return "exactly-one"
	case ZeroOrOne:
		return "zero-or-one"
	default:
		return "zero-or-more"
	}
}

// Join returns the least upper bound of two cardinalities. ExactlyOne is
// the identity; ZeroOrMore absorbs everything.
func (c Cardinality) Join(o Cardinality) Cardinality {
	if o > c {
		return o
	}
	return c
}

// FromContainer maps a field's container cardinality onto the path lattice.
// Sequence and keyed containers are join-equivalent: both widen to
// zero-or-more.
func FromContainer(c model.Cardinality) Cardinality {
	switch c {
	case model.CardinalityOptional:
		return ZeroOrOne
	case model.CardinalitySequence, model.CardinalityKeyed:
		return ZeroOrMore
	default:
		return ExactlyOne
	}
}

// Hop is one step of a navigation path: the field traversed, the types on
// either side, and the cardinality contributed at this step.
type Hop struct {
	Field       string
	Source      model.TypeRef
	Target      model.TypeRef
	Cardinality Cardinality
}

// Fold computes the accumulated cardinality of a hop sequence by folding
// the join over its hops.
func Fold(hops []Hop) Cardinality {
	acc := ExactlyOne
	for _, h := range hops {
		acc = acc.Join(h.Cardinality)
	}
	return acc
}

// Path is an ordered hop sequence from a root type to a leaf field, with
// its accumulated cardinality.
type Path struct {
	Hops        []Hop
	Target      model.TypeRef
	Cardinality Cardinality
}

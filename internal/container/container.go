// Package container classifies a field's declared type into a container
// cardinality. Matching is exact: only a closed allow-list of well-known
// container shapes is recognized, never user-defined types that merely look
// container-like.
package container

import "github.com/seitarof/gen-optics/internal/model"

// Kind identifies which recognized container shape matched.
type Kind int

const (
	KindNone Kind = iota
	KindOptional
	KindList
	KindSet
	KindMap
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindOptional:
		return "optional"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindArray:
		return "array"
	default:
		return "none"
	}
}

// Detection is the result of classifying one declared type reference.
type Detection struct {
	Kind        Kind
	Cardinality model.Cardinality
	Elem        model.TypeRef
	Key         *model.TypeRef // set for keyed containers only
}

// wellKnown is the closed allow-list of recognized container shapes, keyed
// by the exact reference name the descriptor feed produces.
var wellKnown = map[string]Kind{
	"ptr":   KindOptional,
	"slice": KindList,
	"array": KindArray,
	"map":   KindMap,

	"github.com/seitarof/gen-optics/optics.Option": KindOptional,
}

// Detect classifies a declared type reference. It never fails: anything
// outside the allow-list is Scalar, and a recognized container used without
// its element arguments (raw usage) degrades to Unrecognized, since a raw
// usage carries no reliable element type.
func Detect(ref model.TypeRef) Detection {
	kind, ok := wellKnown[ref.Name]
	if !ok {
		return Detection{Kind: KindNone, Cardinality: model.CardinalityScalar}
	}

	if kind == KindMap {
		// Keyed containers require exactly key and value arguments.
		if len(ref.Args) != 2 {
			return Detection{Kind: KindNone, Cardinality: model.CardinalityUnrecognized}
		}
		key := ref.Args[0]
		return Detection{
			Kind:        KindMap,
			Cardinality: model.CardinalityKeyed,
			Elem:        ref.Args[1],
			Key:         &key,
		}
	}

	if len(ref.Args) != 1 {
		return Detection{Kind: KindNone, Cardinality: model.CardinalityUnrecognized}
	}

	card := model.CardinalitySequence
	if kind == KindOptional {
		card = model.CardinalityOptional
	}
	return Detection{Kind: kind, Cardinality: card, Elem: ref.Args[0]}
}

// Traversable reports whether a traversal can be synthesized for the
// detected container.
func (d Detection) Traversable() bool {
	switch d.Cardinality {
	case model.CardinalitySequence, model.CardinalityKeyed:
		return true
	default:
		return false
	}
}

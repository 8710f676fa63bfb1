package optics

// Traversal focuses on zero or more values, visiting every focus and
// rebuilding the source around the results. Element order is preserved for
// sequences and key association for maps.
type Traversal[S, A any] struct {
	modify  func(S, func(A) A) S
	collect func(S) []A
}

// NewTraversal builds a traversal from modify and collect functions.
func NewTraversal[S, A any](modify func(S, func(A) A) S, collect func(S) []A) Traversal[S, A] {
	return Traversal[S, A]{modify: modify, collect: collect}
}

// Modify applies fn to every focus and rebuilds the source.
func (t Traversal[S, A]) Modify(source S, fn func(A) A) S {
	return t.modify(source, fn)
}

// Collect returns every focus in traversal order.
func (t Traversal[S, A]) Collect(source S) []A {
	return t.collect(source)
}

// Set replaces every focus with the same value.
func (t Traversal[S, A]) Set(source S, value A) S {
	return t.modify(source, func(A) A { return value })
}

// AsFold drops the rebuild side, leaving a read-only view of the foci.
func (t Traversal[S, A]) AsFold() Fold[S, A] {
	return Fold[S, A]{collect: t.collect}
}

// ComposeTraversal chains two traversals.
func ComposeTraversal[S, A, B any](outer Traversal[S, A], inner Traversal[A, B]) Traversal[S, B] {
	return Traversal[S, B]{
		modify: func(s S, fn func(B) B) S {
			return outer.modify(s, func(a A) A {
				return inner.modify(a, fn)
			})
		},
		collect: func(s S) []B {
			var out []B
			for _, a := range outer.collect(s) {
				out = append(out, inner.collect(a)...)
			}
			return out
		},
	}
}

// SliceField builds the traversal over a slice-typed field reached through
// a lens. The rebuilt slice is always a fresh allocation.
func SliceField[S, A any](l Lens[S, []A]) Traversal[S, A] {
	return Traversal[S, A]{
		modify: func(s S, fn func(A) A) S {
			src := l.Get(s)
			if len(src) == 0 {
				return s
			}
			out := make([]A, len(src))
			for i, a := range src {
				out[i] = fn(a)
			}
			return l.Set(s, out)
		},
		collect: func(s S) []A {
			src := l.Get(s)
			out := make([]A, len(src))
			copy(out, src)
			return out
		},
	}
}

// MapField builds the traversal over the values of a map-typed field
// reached through a lens, preserving key association.
func MapField[S any, K comparable, V any](l Lens[S, map[K]V]) Traversal[S, V] {
	return Traversal[S, V]{
		modify: func(s S, fn func(V) V) S {
			src := l.Get(s)
			if len(src) == 0 {
				return s
			}
			out := make(map[K]V, len(src))
			for k, v := range src {
				out[k] = fn(v)
			}
			return l.Set(s, out)
		},
		collect: func(s S) []V {
			src := l.Get(s)
			out := make([]V, 0, len(src))
			for _, v := range src {
				out = append(out, v)
			}
			return out
		},
	}
}

// Fold is a read-only view over zero or more foci.
type Fold[S, A any] struct {
	collect func(S) []A
}

// NewFold builds a fold from a collect function.
func NewFold[S, A any](collect func(S) []A) Fold[S, A] {
	return Fold[S, A]{collect: collect}
}

// Collect returns every focus.
func (f Fold[S, A]) Collect(source S) []A {
	return f.collect(source)
}

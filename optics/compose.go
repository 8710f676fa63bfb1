package optics

// Mixed-strength composition. The result kind is the join of the operands'
// cardinalities: exactly-one absorbs into the other operand, zero-or-one
// through zero-or-more widens to zero-or-more and never back.

// LensThenAffine composes an exactly-one hop with a zero-or-one hop.
func LensThenAffine[S, A, B any](outer Lens[S, A], inner Affine[A, B]) Affine[S, B] {
	return Affine[S, B]{
		match: func(s S) Option[B] {
			return inner.match(outer.get(s))
		},
		set: func(s S, b B) S {
			return outer.set(s, inner.Set(outer.get(s), b))
		},
	}
}

// AffineThenLens composes a zero-or-one hop with an exactly-one hop.
func AffineThenLens[S, A, B any](outer Affine[S, A], inner Lens[A, B]) Affine[S, B] {
	return Affine[S, B]{
		match: func(s S) Option[B] {
			return MapOption(outer.match(s), inner.get)
		},
		set: func(s S, b B) S {
			m := outer.match(s)
			if m.IsNone() {
				return s
			}
			return outer.set(s, inner.set(m.Unwrap(), b))
		},
	}
}

// LensThenPrism composes a lens with a prism; the variant may not match, so
// the result is affine.
func LensThenPrism[S, A, B any](outer Lens[S, A], inner Prism[A, B]) Affine[S, B] {
	return Affine[S, B]{
		match: func(s S) Option[B] {
			return inner.match(outer.get(s))
		},
		set: func(s S, b B) S {
			return outer.set(s, inner.Set(outer.get(s), b))
		},
	}
}

// LensThenTraversal composes an exactly-one hop with a zero-or-more hop.
func LensThenTraversal[S, A, B any](outer Lens[S, A], inner Traversal[A, B]) Traversal[S, B] {
	return Traversal[S, B]{
		modify: func(s S, fn func(B) B) S {
			return outer.set(s, inner.modify(outer.get(s), fn))
		},
		collect: func(s S) []B {
			return inner.collect(outer.get(s))
		},
	}
}

// TraversalThenLens composes a zero-or-more hop with an exactly-one hop.
func TraversalThenLens[S, A, B any](outer Traversal[S, A], inner Lens[A, B]) Traversal[S, B] {
	return Traversal[S, B]{
		modify: func(s S, fn func(B) B) S {
			return outer.modify(s, func(a A) A {
				return inner.Modify(a, fn)
			})
		},
		collect: func(s S) []B {
			src := outer.collect(s)
			out := make([]B, len(src))
			for i, a := range src {
				out[i] = inner.get(a)
			}
			return out
		},
	}
}

// AffineThenTraversal composes a zero-or-one hop with a zero-or-more hop;
// the join is zero-or-more.
func AffineThenTraversal[S, A, B any](outer Affine[S, A], inner Traversal[A, B]) Traversal[S, B] {
	return ComposeTraversal(outer.AsTraversal(), inner)
}

// TraversalThenAffine composes a zero-or-more hop with a zero-or-one hop.
func TraversalThenAffine[S, A, B any](outer Traversal[S, A], inner Affine[A, B]) Traversal[S, B] {
	return ComposeTraversal(outer, inner.AsTraversal())
}

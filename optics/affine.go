package optics

// Affine focuses on zero or one value: stronger than a traversal, weaker
// than a lens. It is what composing a lens with an optional hop yields.
type Affine[S, A any] struct {
	match func(S) Option[A]
	set   func(S, A) S
}

// NewAffine builds an affine from match and set functions.
func NewAffine[S, A any](match func(S) Option[A], set func(S, A) S) Affine[S, A] {
	return Affine[S, A]{match: match, set: set}
}

// Match attempts to extract the focus.
func (a Affine[S, A]) Match(source S) Option[A] {
	return a.match(source)
}

// Set replaces the focus when present; an absent focus leaves the source
// unchanged.
func (a Affine[S, A]) Set(source S, value A) S {
	if a.match(source).IsNone() {
		return source
	}
	return a.set(source, value)
}

// Modify applies fn to a present focus.
func (a Affine[S, A]) Modify(source S, fn func(A) A) S {
	m := a.match(source)
	if m.IsNone() {
		return source
	}
	return a.set(source, fn(m.Unwrap()))
}

// ComposeAffine chains two affines. Zero-or-one through zero-or-one is
// still zero-or-one.
func ComposeAffine[S, A, B any](outer Affine[S, A], inner Affine[A, B]) Affine[S, B] {
	return Affine[S, B]{
		match: func(s S) Option[B] {
			m := outer.match(s)
			if m.IsNone() {
				return None[B]()
			}
			return inner.match(m.Unwrap())
		},
		set: func(s S, b B) S {
			m := outer.match(s)
			if m.IsNone() {
				return s
			}
			return outer.set(s, inner.Set(m.Unwrap(), b))
		},
	}
}

// AsTraversal weakens the affine to a traversal over at most one focus.
func (a Affine[S, A]) AsTraversal() Traversal[S, A] {
	return Traversal[S, A]{
		modify: a.Modify,
		collect: func(s S) []A {
			m := a.match(s)
			if m.IsNone() {
				return nil
			}
			return []A{m.Unwrap()}
		},
	}
}

// OptionField builds the affine for an Option-typed focus reached through
// a lens.
func OptionField[S, A any](l Lens[S, Option[A]]) Affine[S, A] {
	return Affine[S, A]{
		match: func(s S) Option[A] { return l.Get(s) },
		set: func(s S, a A) S {
			if l.Get(s).IsNone() {
				return s
			}
			return l.Set(s, Some(a))
		},
	}
}

// PointerField builds the affine for a pointer-typed focus reached through
// a lens. The set side allocates a fresh pointee, never writes through the
// source's pointer.
func PointerField[S, A any](l Lens[S, *A]) Affine[S, A] {
	return Affine[S, A]{
		match: func(s S) Option[A] {
			p := l.Get(s)
			if p == nil {
				return None[A]()
			}
			return Some(*p)
		},
		set: func(s S, a A) S {
			if l.Get(s) == nil {
				return s
			}
			fresh := a
			return l.Set(s, &fresh)
		},
	}
}

package optics

// Prism focuses on one variant of a sum: match extracts the focus when the
// source is that variant, construct re-embeds a focus into the sum.
type Prism[S, A any] struct {
	match     func(S) Option[A]
	construct func(A) S
}

// NewPrism builds a prism from match and construct functions.
func NewPrism[S, A any](match func(S) Option[A], construct func(A) S) Prism[S, A] {
	return Prism[S, A]{match: match, construct: construct}
}

// Match attempts to extract the focus.
func (p Prism[S, A]) Match(source S) Option[A] {
	return p.match(source)
}

// Construct embeds a focus back into the sum.
func (p Prism[S, A]) Construct(value A) S {
	return p.construct(value)
}

// Modify applies fn to the focus when the variant matches; a non-matching
// source is returned unchanged.
func (p Prism[S, A]) Modify(source S, fn func(A) A) S {
	m := p.match(source)
	if m.IsNone() {
		return source
	}
	return p.construct(fn(m.Unwrap()))
}

// Set replaces the focus when the variant matches.
func (p Prism[S, A]) Set(source S, value A) S {
	if p.match(source).IsNone() {
		return source
	}
	return p.construct(value)
}

// ComposePrism chains two prisms into one matching deeper.
func ComposePrism[S, A, B any](outer Prism[S, A], inner Prism[A, B]) Prism[S, B] {
	return Prism[S, B]{
		match: func(s S) Option[B] {
			m := outer.match(s)
			if m.IsNone() {
				return None[B]()
			}
			return inner.match(m.Unwrap())
		},
		construct: func(b B) S {
			return outer.construct(inner.construct(b))
		},
	}
}

// SomePrism matches the present case of an Option.
func SomePrism[T any]() Prism[Option[T], T] {
	return Prism[Option[T], T]{
		match:     func(o Option[T]) Option[T] { return o },
		construct: Some[T],
	}
}

// AsAffine weakens the prism to an affine.
func (p Prism[S, A]) AsAffine() Affine[S, A] {
	return Affine[S, A]{
		match: p.match,
		set:   p.Set,
	}
}

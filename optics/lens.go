package optics

// Lens focuses on exactly one value inside a source, with a paired get and
// copy-on-write set obeying the three lens laws.
type Lens[S, A any] struct {
	get func(S) A
	set func(S, A) S
}

// NewLens builds a lens from get and set functions.
func NewLens[S, A any](get func(S) A, set func(S, A) S) Lens[S, A] {
	return Lens[S, A]{get: get, set: set}
}

// Get retrieves the focused value.
func (l Lens[S, A]) Get(source S) A {
	return l.get(source)
}

// Set returns a new source with the focus replaced.
func (l Lens[S, A]) Set(source S, value A) S {
	return l.set(source, value)
}

// Modify applies fn to the focus.
func (l Lens[S, A]) Modify(source S, fn func(A) A) S {
	return l.set(source, fn(l.get(source)))
}

// ComposeLens chains two lenses into one focusing deeper. The outer level is
// rebuilt through its own set, so the update never shares structure with the
// original source.
func ComposeLens[S, A, B any](outer Lens[S, A], inner Lens[A, B]) Lens[S, B] {
	return Lens[S, B]{
		get: func(s S) B {
			return inner.get(outer.get(s))
		},
		set: func(s S, b B) S {
			return outer.set(s, inner.set(outer.get(s), b))
		},
	}
}

// IdentityLens focuses on the source itself.
func IdentityLens[S any]() Lens[S, S] {
	return Lens[S, S]{
		get: func(s S) S { return s },
		set: func(_ S, s S) S { return s },
	}
}

// Iso is a total, invertible view: every source maps to exactly one focus
// and back, losing nothing either way.
type Iso[S, A any] struct {
	get     func(S) A
	reverse func(A) S
}

// NewIso builds an iso from a view and its inverse.
func NewIso[S, A any](get func(S) A, reverse func(A) S) Iso[S, A] {
	return Iso[S, A]{get: get, reverse: reverse}
}

// Get applies the view.
func (i Iso[S, A]) Get(source S) A { return i.get(source) }

// Reverse applies the inverse.
func (i Iso[S, A]) Reverse(value A) S { return i.reverse(value) }

// Flip swaps view and inverse.
func (i Iso[S, A]) Flip() Iso[A, S] {
	return Iso[A, S]{get: i.reverse, reverse: i.get}
}

// AsLens weakens the iso to a lens.
func (i Iso[S, A]) AsLens() Lens[S, A] {
	return Lens[S, A]{
		get: i.get,
		set: func(_ S, a A) S { return i.reverse(a) },
	}
}

// Package optics is the runtime library the generated accessors compile
// against: generic lens, prism, affine, traversal, iso and fold values, an
// Option container, and the composition functions that widen cardinality
// when chaining optics of different strength.
package optics

// Option holds zero or one value. It is the recognized optional container
// for derivation and the return shape of partial optics.
type Option[T any] struct {
	value T
	valid bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, valid: true}
}

// None is the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports presence.
func (o Option[T]) IsSome() bool { return o.valid }

// IsNone reports absence.
func (o Option[T]) IsNone() bool { return !o.valid }

// Unwrap returns the contained value. Panics when absent.
func (o Option[T]) Unwrap() T {
	if !o.valid {
		panic("optics: unwrap of None")
	}
	return o.value
}

// GetOrElse returns the contained value or the fallback.
func (o Option[T]) GetOrElse(fallback T) T {
	if !o.valid {
		return fallback
	}
	return o.value
}

// Get returns the value and a presence flag.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.valid
}

// MapOption applies fn to a present value.
func MapOption[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.valid {
		return None[U]()
	}
	return Some(fn(o.value))
}

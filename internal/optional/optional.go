package optional

// Optional represents a value that may or may not be present.
// The zero value is an empty Optional.
type Optional[T any] struct {
	present bool
	value   T
}

// Some creates an Optional holding the given value
func Some[T any](value T) Optional[T] {
	return Optional[T]{
		present: true,
		value:   value,
	}
}

// None creates an empty Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and a boolean indicating whether it is present.
// The returned value is the type's zero value if the Optional is empty.
func (opt Optional[T]) Get() (T, bool) {
	return opt.value, opt.present
}

// IsSome returns whether a value is present
func (opt Optional[T]) IsSome() bool {
	return opt.present
}

// IsNone returns whether the Optional is empty
func (opt Optional[T]) IsNone() bool {
	return !opt.present
}

// Emplace replaces the held value (if any) with the given one
func (opt *Optional[T]) Emplace(value T) {
	opt.present = true
	opt.value = value
}

// Clear empties the Optional.
// The held value is reset to the zero value so it can be garbage collected.
func (opt *Optional[T]) Clear() {
	var zero T
	opt.present = false
	opt.value = zero
}

package component

// Optional holds a value that may be unset, e.g. a field missing from an
// older saved document. Readers resolve it against a default at every read
// instead of writing the default back.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool { return o.set }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// Resolve returns the value, or def when unset.
func (o Optional[T]) Resolve(def T) T {
	if o.set {
		return o.value
	}
	return def
}

package assocarray

// Map represents the interface every associative array provided by this package has to implement
type Map[K comparable, V any] interface {
	// Size returns the amount of stored key-value pairs
	Size() int

	// Has returns whether a value is assigned to the given key
	Has(key K) bool

	// Lookup returns the value assigned to the given key and a boolean indicating whether the key was present
	Lookup(key K) (V, bool)

	// Get returns the value assigned to the given key.
	// The returned error matches ErrKeyNotFound if the key is not present.
	Get(key K) (V, error)

	// Set assigns a value to a key, replacing the previous value if the key is already present
	Set(key K, value V)

	// Remove deletes the value assigned to the given key.
	// The returned error matches ErrKeyNotFound if the key is not present.
	Remove(key K) error

	// Clear removes all key-value pairs
	Clear()

	// Range calls fn for every key-value pair until fn returns false
	Range(fn func(key K, value V) bool)
}

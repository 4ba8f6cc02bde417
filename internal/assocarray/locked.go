package assocarray

import "sync"

// Locked implements the Map interface by wrapping a SlotArray with a RWMutex in order to provide thread safety
type Locked[K comparable, V any] struct {
	mtx        sync.RWMutex
	underlying *SlotArray[K, V]
}

var _ Map[int, any] = (*Locked[int, any])(nil)

// NewLocked creates a new empty thread safe SlotArray with a specific amount of slots.
// A non-positive capacity falls back to DefaultCapacity.
func NewLocked[K comparable, V any](capacity int) *Locked[K, V] {
	return Guard(NewWithCapacity[K, V](capacity))
}

// Guard wraps an existing SlotArray.
// The SlotArray must not be used directly afterwards.
func Guard[K comparable, V any](underlying *SlotArray[K, V]) *Locked[K, V] {
	return &Locked[K, V]{
		underlying: underlying,
	}
}

// Size returns the amount of stored key-value pairs
func (obj *Locked[K, V]) Size() int {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Size()
}

// Capacity returns the amount of physical slots of the underlying SlotArray
func (obj *Locked[K, V]) Capacity() int {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Capacity()
}

// Has returns whether a value is assigned to the given key
func (obj *Locked[K, V]) Has(key K) bool {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Has(key)
}

// Lookup returns the value assigned to the given key and a boolean indicating whether the key was present
func (obj *Locked[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Lookup(key)
}

// Get returns the value assigned to the given key or a *KeyError if there is none
func (obj *Locked[K, V]) Get(key K) (V, error) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Get(key)
}

// Set assigns a value to a key
func (obj *Locked[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying.Set(key, value)
}

// Remove deletes the value assigned to the given key or returns a *KeyError if there is none
func (obj *Locked[K, V]) Remove(key K) error {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	return obj.underlying.Remove(key)
}

// Clear removes all key-value pairs
func (obj *Locked[K, V]) Clear() {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying.Clear()
}

// Range calls fn for every key-value pair until fn returns false.
// The read lock is held during the whole iteration, so fn must not call back into this Locked.
func (obj *Locked[K, V]) Range(fn func(key K, value V) bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	obj.underlying.Range(fn)
}

// Clone creates an independent thread safe copy
func (obj *Locked[K, V]) Clone() *Locked[K, V] {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return Guard(obj.underlying.Clone())
}

// String returns the debug listing of the underlying SlotArray
func (obj *Locked[K, V]) String() string {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.String()
}

// BootstrappedManipulation allows a thread safe direct manipulation of the underlying SlotArray by wrapping the given
// function in a lock of the underlying mutex
func (obj *Locked[K, V]) BootstrappedManipulation(action func(underlying *SlotArray[K, V])) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	action(obj.underlying)
}

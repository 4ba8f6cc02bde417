package assocarray

import (
	"fmt"
	"strings"

	"github.com/skybi/assocarray/internal/optional"
)

// DefaultCapacity is the amount of slots a freshly created SlotArray provides
const DefaultCapacity = 16

type entry[K comparable, V any] struct {
	key   K
	value V
}

// SlotArray implements the Map interface using a linear, resizable array of slots.
// Every operation scans the slots in index order, so all of them are O(capacity).
// The array doubles its capacity whenever a new key does not fit and never shrinks.
//
// A SlotArray is not safe for concurrent use; see Locked.
type SlotArray[K comparable, V any] struct {
	slots []optional.Optional[entry[K, V]]
	size  int
}

var _ Map[int, any] = (*SlotArray[int, any])(nil)

// New creates a new empty SlotArray with DefaultCapacity slots
func New[K comparable, V any]() *SlotArray[K, V] {
	return NewWithCapacity[K, V](DefaultCapacity)
}

// NewWithCapacity creates a new empty SlotArray with a specific amount of slots.
// A non-positive capacity falls back to DefaultCapacity.
func NewWithCapacity[K comparable, V any](capacity int) *SlotArray[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SlotArray[K, V]{
		slots: make([]optional.Optional[entry[K, V]], capacity),
	}
}

// Size returns the amount of occupied slots
func (obj *SlotArray[K, V]) Size() int {
	return obj.size
}

// Capacity returns the amount of physical slots
func (obj *SlotArray[K, V]) Capacity() int {
	return len(obj.slots)
}

// Has returns whether a value is assigned to the given key.
// All physical slots are scanned, not only the first Size() ones.
func (obj *SlotArray[K, V]) Has(key K) bool {
	return obj.indexOf(key) >= 0
}

// Lookup returns the value assigned to the given key and a boolean indicating whether the key was present
func (obj *SlotArray[K, V]) Lookup(key K) (V, bool) {
	i := obj.indexOf(key)
	if i < 0 {
		var zero V
		return zero, false
	}
	current, _ := obj.slots[i].Get()
	return current.value, true
}

// Get returns the value assigned to the given key or a *KeyError if there is none
func (obj *SlotArray[K, V]) Get(key K) (V, error) {
	i, err := obj.find(key)
	if err != nil {
		var zero V
		return zero, err
	}
	current, _ := obj.slots[i].Get()
	return current.value, nil
}

// Set assigns a value to a key.
// An existing entry is updated in place; a new one is stored in the first empty slot, growing the array if there is
// none.
func (obj *SlotArray[K, V]) Set(key K, value V) {
	open := -1
	for i := range obj.slots {
		current, ok := obj.slots[i].Get()
		if !ok {
			if open < 0 {
				open = i
			}
			continue
		}
		if current.key == key {
			obj.slots[i].Emplace(entry[K, V]{key: key, value: value})
			return
		}
	}

	if open < 0 {
		open = len(obj.slots)
		obj.grow()
	}
	obj.slots[open].Emplace(entry[K, V]{key: key, value: value})
	obj.size = obj.countOccupied()
}

// Remove empties the slot holding the given key or returns a *KeyError if there is none
func (obj *SlotArray[K, V]) Remove(key K) error {
	i, err := obj.find(key)
	if err != nil {
		return err
	}
	obj.slots[i].Clear()
	obj.size = obj.countOccupied()
	return nil
}

// Clear empties all slots.
// The capacity stays the same.
func (obj *SlotArray[K, V]) Clear() {
	for i := range obj.slots {
		obj.slots[i].Clear()
	}
	obj.size = 0
}

// Range calls fn for every occupied slot in physical order until fn returns false.
// fn may call Set for existing keys or Remove, but must not insert new keys.
func (obj *SlotArray[K, V]) Range(fn func(key K, value V) bool) {
	for i := range obj.slots {
		current, ok := obj.slots[i].Get()
		if !ok {
			continue
		}
		if !fn(current.key, current.value) {
			return
		}
	}
}

// Clone creates an independent SlotArray holding the same key-value pairs.
// The pairs are re-inserted in physical order, so the slot layout of the clone may differ.
// Values are copied by assignment; pointer values are shared between both arrays.
func (obj *SlotArray[K, V]) Clone() *SlotArray[K, V] {
	clone := New[K, V]()
	obj.Range(func(key K, value V) bool {
		clone.Set(key, value)
		return true
	})
	return clone
}

// String returns a human-readable listing of all slots.
// The format is meant for debugging only and may change at any time.
func (obj *SlotArray[K, V]) String() string {
	builder := new(strings.Builder)
	builder.WriteByte('{')
	for i := range obj.slots {
		if i > 0 {
			builder.WriteString(", ")
		}
		current, ok := obj.slots[i].Get()
		if !ok {
			fmt.Fprintf(builder, "%d: -", i)
			continue
		}
		fmt.Fprintf(builder, "%d: %v=%v", i, current.key, current.value)
	}
	builder.WriteByte('}')
	return builder.String()
}

// find returns the index of the first occupied slot holding key
func (obj *SlotArray[K, V]) find(key K) (int, error) {
	i := obj.indexOf(key)
	if i < 0 {
		return -1, &KeyError{Key: key}
	}
	return i, nil
}

func (obj *SlotArray[K, V]) indexOf(key K) int {
	for i := range obj.slots {
		if current, ok := obj.slots[i].Get(); ok && current.key == key {
			return i
		}
	}
	return -1
}

// grow doubles the amount of slots while keeping every entry at its position
func (obj *SlotArray[K, V]) grow() {
	grown := make([]optional.Optional[entry[K, V]], len(obj.slots)*2)
	copy(grown, obj.slots)
	obj.slots = grown
}

func (obj *SlotArray[K, V]) countOccupied() int {
	n := 0
	for i := range obj.slots {
		if obj.slots[i].IsSome() {
			n++
		}
	}
	return n
}

package assocarray

import (
	"sync"
	"time"

	"github.com/skybi/assocarray/internal/task"
)

type expiringEntry[V any] struct {
	raw      V
	inserted time.Time
}

// ExpiringMap implements the Map interface and wraps a Locked SlotArray in order to implement value expiration.
// Expired values are invisible to all read operations right away but keep occupying their slot until Expire runs,
// either manually or through the task scheduled by ScheduleCleanupTask.
type ExpiringMap[K comparable, V any] struct {
	locked   *Locked[K, expiringEntry[V]]
	lifetime time.Duration
	now      func() time.Time

	taskMtx     sync.Mutex
	cleanupTask *task.RepeatingTask
}

var _ Map[int, any] = (*ExpiringMap[int, any])(nil)

// NewExpiring creates a new expiring map whose values exist for a specific lifetime
func NewExpiring[K comparable, V any](lifetime time.Duration) *ExpiringMap[K, V] {
	return &ExpiringMap[K, V]{
		locked:   NewLocked[K, expiringEntry[V]](DefaultCapacity),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// ScheduleCleanupTask schedules the task that removes expired values in a specific interval.
// A call to StopCleanupTask as soon as the map is no longer needed is required because it would not be garbage
// collected otherwise.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	obj.taskMtx.Lock()
	defer obj.taskMtx.Unlock()
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(func() {
		obj.Expire()
	}, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the cleanup task.
// If no task is scheduled, this is a no-op.
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	obj.taskMtx.Lock()
	defer obj.taskMtx.Unlock()
	if obj.cleanupTask == nil {
		return
	}
	obj.cleanupTask.Stop(false)
	obj.cleanupTask = nil
}

// Expire removes all expired values and returns how many were removed
func (obj *ExpiringMap[K, V]) Expire() int {
	removed := 0
	obj.locked.BootstrappedManipulation(func(underlying *SlotArray[K, expiringEntry[V]]) {
		var expired []K
		underlying.Range(func(key K, value expiringEntry[V]) bool {
			if obj.isExpired(value) {
				expired = append(expired, key)
			}
			return true
		})
		for _, key := range expired {
			if underlying.Remove(key) == nil {
				removed++
			}
		}
	})
	return removed
}

// Size returns the amount of stored key-value pairs that are not expired
func (obj *ExpiringMap[K, V]) Size() int {
	n := 0
	obj.Range(func(K, V) bool {
		n++
		return true
	})
	return n
}

// Has returns whether a non-expired value is assigned to the given key
func (obj *ExpiringMap[K, V]) Has(key K) bool {
	_, ok := obj.Lookup(key)
	return ok
}

// Lookup returns the value assigned to the given key and a boolean indicating whether it is present and not expired
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := obj.locked.Lookup(key)
	if !ok || obj.isExpired(val) {
		var zero V
		return zero, false
	}
	return val.raw, true
}

// Get returns the value assigned to the given key or a *KeyError if there is none or it expired
func (obj *ExpiringMap[K, V]) Get(key K) (V, error) {
	val, ok := obj.Lookup(key)
	if !ok {
		return val, &KeyError{Key: key}
	}
	return val, nil
}

// Set sets a key-value pair and resets its lifetime
func (obj *ExpiringMap[K, V]) Set(key K, value V) {
	obj.locked.Set(key, expiringEntry[V]{
		raw:      value,
		inserted: obj.now(),
	})
}

// Remove deletes the value assigned to the given key.
// Removing an expired value frees its slot but still reports a *KeyError.
func (obj *ExpiringMap[K, V]) Remove(key K) error {
	var err error
	obj.locked.BootstrappedManipulation(func(underlying *SlotArray[K, expiringEntry[V]]) {
		val, ok := underlying.Lookup(key)
		if !ok {
			err = &KeyError{Key: key}
			return
		}
		_ = underlying.Remove(key)
		if obj.isExpired(val) {
			err = &KeyError{Key: key}
		}
	})
	return err
}

// Clear removes all key-value pairs
func (obj *ExpiringMap[K, V]) Clear() {
	obj.locked.Clear()
}

// Range calls fn for every non-expired key-value pair until fn returns false
func (obj *ExpiringMap[K, V]) Range(fn func(key K, value V) bool) {
	obj.locked.Range(func(key K, value expiringEntry[V]) bool {
		if obj.isExpired(value) {
			return true
		}
		return fn(key, value.raw)
	})
}

func (obj *ExpiringMap[K, V]) isExpired(val expiringEntry[V]) bool {
	return obj.now().Sub(val.inserted) > obj.lifetime
}

package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/skybi/assocarray/internal/assocarray"
)

// Snapshot represents the persisted contents of a named array at a specific point in time
type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	Array    string    `json:"array"`
	TakenAt  int64     `json:"taken_at"` // Unix nanoseconds
	Capacity int       `json:"capacity"`
	Entries  []Entry   `json:"entries"`
}

// Entry represents a single key-value pair of a Snapshot
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// lastTakenAt keeps TakenAt strictly increasing inside this process even if the clock is coarse or steps back
var lastTakenAt atomic.Int64

func nextTakenAt() int64 {
	for {
		last := lastTakenAt.Load()
		next := time.Now().UnixNano()
		if next <= last {
			next = last + 1
		}
		if lastTakenAt.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Of captures the current contents of an array.
// The entries are recorded in physical slot order.
func Of(name string, arr *assocarray.SlotArray[string, string]) *Snapshot {
	entries := make([]Entry, 0, arr.Size())
	arr.Range(func(key, value string) bool {
		entries = append(entries, Entry{Key: key, Value: value})
		return true
	})
	return &Snapshot{
		ID:       uuid.New(),
		Array:    name,
		TakenAt:  nextTakenAt(),
		Capacity: arr.Capacity(),
		Entries:  entries,
	}
}

// Restore builds a new array holding the entries of the snapshot.
// The array starts out with the recorded capacity and receives the entries in their recorded order.
func (obj *Snapshot) Restore() *assocarray.SlotArray[string, string] {
	arr := assocarray.NewWithCapacity[string, string](obj.Capacity)
	for _, entry := range obj.Entries {
		arr.Set(entry.Key, entry.Value)
	}
	return arr
}

// Copy returns a snapshot that shares no entries with obj
func (obj *Snapshot) Copy() *Snapshot {
	cpy := *obj
	cpy.Entries = make([]Entry, len(obj.Entries))
	copy(cpy.Entries, obj.Entries)
	return &cpy
}

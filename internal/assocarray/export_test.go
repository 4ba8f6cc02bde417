package assocarray

import "time"

// SlotIndex returns the physical slot holding key or -1.
func SlotIndex[K comparable, V any](arr *SlotArray[K, V], key K) int {
	return arr.indexOf(key)
}

// CountOccupied rescans all slots.
func CountOccupied[K comparable, V any](arr *SlotArray[K, V]) int {
	return arr.countOccupied()
}

// SetClock replaces the time source of an ExpiringMap.
func SetClock[K comparable, V any](m *ExpiringMap[K, V], now func() time.Time) {
	m.now = now
}

// OccupiedSlots returns the amount of slots an ExpiringMap occupies, expired values included.
func OccupiedSlots[K comparable, V any](m *ExpiringMap[K, V]) int {
	return m.locked.Size()
}

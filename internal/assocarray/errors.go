package assocarray

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is matched (using errors.Is) by every error returned because a key has no occupied slot.
// A key that was never set and a key that was removed are indistinguishable.
var ErrKeyNotFound = errors.New("key not found")

// KeyError represents a failed lookup of a specific key
type KeyError struct {
	Key any
}

func (err *KeyError) Error() string {
	return fmt.Sprintf("%s: %v", ErrKeyNotFound.Error(), err.Key)
}

// Unwrap makes errors.Is(err, ErrKeyNotFound) report true
func (err *KeyError) Unwrap() error {
	return ErrKeyNotFound
}

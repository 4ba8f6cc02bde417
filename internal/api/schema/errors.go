package schema

import "fmt"

var emptyMap = map[string]any{}

var (
	ErrInternal = &Error{
		Type:    "generic.internal",
		Message: "An internal error occurred.",
		Details: emptyMap,
	}
	ErrNotFound = &Error{
		Type:    "generic.notFound",
		Message: "Resource not found.",
		Details: emptyMap,
	}
	ErrMethodNotAllowed = &Error{
		Type:    "generic.methodNotAllowed",
		Message: "Method not allowed.",
		Details: emptyMap,
	}
	ErrArrayNotFound = func(name string) *Error {
		return &Error{
			Type:    "array.notFound",
			Message: fmt.Sprintf("The array '%s' does not exist.", name),
			Details: map[string]any{
				"array": name,
			},
		}
	}
	ErrArrayExists = func(name string) *Error {
		return &Error{
			Type:    "array.exists",
			Message: fmt.Sprintf("The array '%s' already exists.", name),
			Details: map[string]any{
				"array": name,
			},
		}
	}
	ErrArrayNameInvalid = func(name string) *Error {
		return &Error{
			Type:    "array.nameInvalid",
			Message: "Array names must not be empty or contain '/'.",
			Details: map[string]any{
				"array": name,
			},
		}
	}
	ErrKeyNotFound = func(array, key string) *Error {
		return &Error{
			Type:    "array.keyNotFound",
			Message: fmt.Sprintf("The array '%s' holds no value for the key '%s'.", array, key),
			Details: map[string]any{
				"array": array,
				"key":   key,
			},
		}
	}
	ErrSnapshotNotFound = func(array, id string) *Error {
		return &Error{
			Type:    "snapshot.notFound",
			Message: fmt.Sprintf("The array '%s' has no snapshot '%s'.", array, id),
			Details: map[string]any{
				"array":    array,
				"snapshot": id,
			},
		}
	}
)

// ErrorResponse represents the response structure sent by the API whenever errors occurred
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []*Error `json:"errors"`
}

// Error represents a single error present in the ErrorResponse
type Error struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

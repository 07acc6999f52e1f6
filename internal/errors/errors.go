package errors

import "fmt"

// ErrorCode represents a Jot error code.
type ErrorCode string

const (
	ErrAmbiguousAddressing ErrorCode = "AMBIGUOUS_ADDRESSING" // 400
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrFileNotFound        ErrorCode = "FILE_NOT_FOUND"       // 404
	ErrNoActiveEdit        ErrorCode = "NO_ACTIVE_EDIT"       // 409
	ErrCancelled           ErrorCode = "CANCELLED"            // 499
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// JotError represents a structured error with code, status, and details.
type JotError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *JotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAmbiguousAddressing creates a 400 error for when both index and id are provided.
func NewAmbiguousAddressing() *JotError {
	return &JotError{
		Code:    ErrAmbiguousAddressing,
		Status:  400,
		Message: "cannot specify both index and id; use one addressing mode",
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *JotError {
	return &JotError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewIndexNotFound creates a 404 error for an index outside the note list.
func NewIndexNotFound(index, length int) *JotError {
	return &JotError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("no note at index %d (list has %d notes)", index, length),
		Details: map[string]any{"index": index, "length": length},
	}
}

// NewNotFound creates a 404 error for a note id that is not in the list.
func NewNotFound(id string) *JotError {
	return &JotError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("note not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewFileNotFound creates a 404 error for a missing import file.
func NewFileNotFound(path string) *JotError {
	return &JotError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewNoActiveEdit creates a 409 error when a draft operation runs with no edit in progress.
func NewNoActiveEdit() *JotError {
	return &JotError{
		Code:    ErrNoActiveEdit,
		Status:  409,
		Message: "no edit in progress",
	}
}

// NewCancelled creates a 499 error when the caller's context ends mid-operation.
func NewCancelled(op string) *JotError {
	return &JotError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", op),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *JotError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &JotError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a JotError with the given code.
func Is(err error, code ErrorCode) bool {
	if jErr, ok := err.(*JotError); ok {
		return jErr.Code == code
	}
	return false
}

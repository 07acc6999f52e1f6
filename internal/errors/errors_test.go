package errors

import (
	"fmt"
	"testing"
)

func TestJotError_Error(t *testing.T) {
	err := &JotError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "note not found",
	}

	expected := "NOT_FOUND: note not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewAmbiguousAddressing(t *testing.T) {
	err := NewAmbiguousAddressing()

	if err.Code != ErrAmbiguousAddressing {
		t.Errorf("Code = %q, want %q", err.Code, ErrAmbiguousAddressing)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("title is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "title is required" {
		t.Errorf("Message = %q, want %q", err.Message, "title is required")
	}
}

func TestNewIndexNotFound(t *testing.T) {
	err := NewIndexNotFound(3, 2)

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["index"] != 3 {
		t.Errorf("Details[index] = %v, want 3", err.Details["index"])
	}
	if err.Details["length"] != 2 {
		t.Errorf("Details[length] = %v, want 2", err.Details["length"])
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01ARZ3NDEKTSV4RRFFQ69G5FAV")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Details["id"] != "01ARZ3NDEKTSV4RRFFQ69G5FAV" {
		t.Errorf("Details[id] = %v", err.Details["id"])
	}
}

func TestNewFileNotFound(t *testing.T) {
	err := NewFileNotFound("/tmp/missing.json")

	if err.Code != ErrFileNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrFileNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
}

func TestNewNoActiveEdit(t *testing.T) {
	err := NewNoActiveEdit()

	if err.Code != ErrNoActiveEdit {
		t.Errorf("Code = %q, want %q", err.Code, ErrNoActiveEdit)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
}

func TestNewCancelled(t *testing.T) {
	err := NewCancelled("import")

	if err.Code != ErrCancelled {
		t.Errorf("Code = %q, want %q", err.Code, ErrCancelled)
	}
	if err.Message != "import cancelled" {
		t.Errorf("Message = %q, want %q", err.Message, "import cancelled")
	}
}

func TestNewInternal(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "with error", err: fmt.Errorf("disk full"), wantMsg: "disk full"},
		{name: "nil error", err: nil, wantMsg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInternal(tt.err)
			if err.Code != ErrInternal {
				t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
			}
			if err.Status != 500 {
				t.Errorf("Status = %d, want 500", err.Status)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{name: "matching code", err: NewNoActiveEdit(), code: ErrNoActiveEdit, want: true},
		{name: "different code", err: NewNoActiveEdit(), code: ErrNotFound, want: false},
		{name: "plain error", err: fmt.Errorf("boom"), code: ErrInternal, want: false},
		{name: "nil error", err: nil, code: ErrInternal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

package ops

import (
	"strings"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/note"
)

// Pagination limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Address is a validated note address: a list index or a note ID.
type Address struct {
	ByID  bool
	ID    string
	Index int
}

// ValidateAddress validates addressing parameters.
// Rules:
// - Exactly one of index or id must be given
// - Both → ErrAmbiguousAddressing; neither → ErrInvalidRequest
// - A negative index → ErrInvalidRequest
func ValidateAddress(index *int, id string) (*Address, error) {
	id = strings.TrimSpace(id)
	hasID := id != ""
	hasIndex := index != nil

	if hasID && hasIndex {
		return nil, errors.NewAmbiguousAddressing()
	}
	if !hasID && !hasIndex {
		return nil, errors.NewInvalidRequest("must specify either index or id")
	}
	if hasID {
		return &Address{ByID: true, ID: id}, nil
	}
	if *index < 0 {
		return nil, errors.NewInvalidRequest("index must be non-negative")
	}
	return &Address{Index: *index}, nil
}

// NoteView is a note together with its current position.
type NoteView struct {
	Index int `json:"index"`
	note.Note
}

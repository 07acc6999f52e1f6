package ops

import (
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/store"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	Index *int
	ID    string
}

// Fetch returns a single note by index or ID.
func Fetch(s *store.Store, input FetchInput) (*NoteView, error) {
	addr, err := ValidateAddress(input.Index, input.ID)
	if err != nil {
		return nil, err
	}

	index := addr.Index
	if addr.ByID {
		var ok bool
		index, ok = s.IndexOf(addr.ID)
		if !ok {
			return nil, errors.NewNotFound(addr.ID)
		}
	}

	n, err := s.Get(index)
	if err != nil {
		return nil, err
	}
	return &NoteView{Index: index, Note: n}, nil
}

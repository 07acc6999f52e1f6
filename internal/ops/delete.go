package ops

import (
	"context"

	"github.com/hpungsan/jot/internal/note"
	"github.com/hpungsan/jot/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Index *int
	ID    string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Count   int    `json:"count"`
}

// Delete removes a note by index or ID.
func Delete(ctx context.Context, s *store.Store, input DeleteInput) (*DeleteOutput, error) {
	addr, err := ValidateAddress(input.Index, input.ID)
	if err != nil {
		return nil, err
	}

	var (
		index   int
		removed note.Note
	)
	if addr.ByID {
		index, removed, err = s.DeleteID(ctx, addr.ID)
	} else {
		index = addr.Index
		removed, err = s.Delete(ctx, addr.Index)
	}
	if err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: true,
		Index:   index,
		ID:      removed.ID,
		Count:   s.Len(),
	}, nil
}

package ops

import (
	"context"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/note"
	"github.com/hpungsan/jot/internal/store"
)

// EditInput contains parameters for the Edit operation.
type EditInput struct {
	// Addressing
	Index *int
	ID    string

	// Editable fields (nil = keep current value)
	Title   *string
	Content *string
}

// EditOutput contains the result of the Edit operation.
type EditOutput struct {
	Note NoteView `json:"note"`
}

// Edit runs a whole edit session in one call: start, set draft, submit.
// Used by surfaces without a persistent session (CLI, MCP). As with an
// interactive edit, blank values are stored as given. The session runs
// under one store lock and leaves no draft behind.
func Edit(ctx context.Context, s *store.Store, input EditInput) (*EditOutput, error) {
	addr, err := ValidateAddress(input.Index, input.ID)
	if err != nil {
		return nil, err
	}
	patch := note.Patch{Title: input.Title, Content: input.Content}
	if patch.IsEmpty() {
		return nil, errors.NewInvalidRequest("at least one editable field must be provided")
	}

	index := addr.Index
	var edited note.Note
	if addr.ByID {
		index, edited, err = s.ApplyEditID(ctx, addr.ID, patch)
	} else {
		edited, err = s.ApplyEdit(ctx, addr.Index, patch)
	}
	if err != nil {
		return nil, err
	}

	return &EditOutput{Note: NoteView{Index: index, Note: edited}}, nil
}

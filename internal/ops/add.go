package ops

import (
	"context"

	"github.com/hpungsan/jot/internal/note"
	"github.com/hpungsan/jot/internal/store"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Title   string
	Content string
}

// AddOutput contains the result of the Add operation.
// Added is false when a field was blank; that is not an error.
type AddOutput struct {
	Added bool      `json:"added"`
	Note  *NoteView `json:"note,omitempty"`
	Count int       `json:"count"`
}

// Add appends a note. Blank input is silently ignored.
func Add(ctx context.Context, s *store.Store, input AddInput) (*AddOutput, error) {
	n, added, err := s.Add(ctx, note.Fields{Title: input.Title, Content: input.Content})
	if err != nil {
		return nil, err
	}

	out := &AddOutput{Added: added, Count: s.Len()}
	if added {
		idx, _ := s.IndexOf(n.ID)
		out.Note = &NoteView{Index: idx, Note: n}
	}
	return out, nil
}

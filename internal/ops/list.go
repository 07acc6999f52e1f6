package ops

import (
	"github.com/hpungsan/jot/internal/note"
	"github.com/hpungsan/jot/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit          int // default: 50, max: 500
	Offset         int // default: 0
	IncludeContent bool
}

// ListOutput contains the result of the List operation.
// Items is filled when content is excluded, Notes when it is included.
type ListOutput struct {
	Items      []note.Summary `json:"items,omitempty"`
	Notes      []NoteView     `json:"notes,omitempty"`
	Editing    *note.Draft    `json:"editing,omitempty"`
	Pagination Pagination     `json:"pagination"`
}

// List returns notes in display order.
func List(s *store.Store, input ListInput) *ListOutput {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := max(input.Offset, 0)

	all := s.Notes()
	total := len(all)
	start := min(offset, total)
	end := min(start+limit, total)
	page := all[start:end]

	out := &ListOutput{
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: end < total,
			Total:   total,
		},
	}

	if input.IncludeContent {
		out.Notes = make([]NoteView, len(page))
		for i, n := range page {
			out.Notes[i] = NoteView{Index: start + i, Note: n}
		}
	} else {
		out.Items = make([]note.Summary, len(page))
		for i, n := range page {
			out.Items[i] = n.ToSummary(start + i)
		}
	}

	if draft, ok := s.Draft(); ok {
		out.Editing = &draft
	}
	return out
}

package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/note"
)

func TestEdit_PartialUpdate(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "a", "b")
	orig := s.Notes()[1]

	out, err := Edit(context.Background(), s, EditInput{Index: intPtr(1), Title: stringPtr("B")})
	require.NoError(t, err)
	require.Equal(t, 1, out.Note.Index)
	require.Equal(t, note.Fields{Title: "B", Content: "body b"}, out.Note.Fields())
	require.Equal(t, orig.ID, out.Note.ID)

	_, editing := s.Draft()
	require.False(t, editing, "single-shot edit leaves no draft behind")
}

func TestEdit_ByIDAllowsBlank(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "a")
	id := s.Notes()[0].ID

	out, err := Edit(context.Background(), s, EditInput{ID: id, Title: stringPtr(""), Content: stringPtr("  ")})
	require.NoError(t, err)
	require.Equal(t, note.Fields{Title: "", Content: "  "}, out.Note.Fields())
	require.Equal(t, note.Fields{Title: "", Content: "  "}, s.Notes()[0].Fields())
}

func TestEdit_Errors(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "a")
	ctx := context.Background()

	tests := []struct {
		name  string
		input EditInput
		code  errors.ErrorCode
	}{
		{name: "no fields", input: EditInput{Index: intPtr(0)}, code: errors.ErrInvalidRequest},
		{name: "out of range", input: EditInput{Index: intPtr(4), Title: stringPtr("x")}, code: errors.ErrNotFound},
		{name: "unknown id", input: EditInput{ID: "missing", Title: stringPtr("x")}, code: errors.ErrNotFound},
		{name: "ambiguous", input: EditInput{Index: intPtr(0), ID: "x", Title: stringPtr("x")}, code: errors.ErrAmbiguousAddressing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Edit(ctx, s, tt.input)
			require.True(t, errors.Is(err, tt.code), "got %v", err)
			require.Equal(t, "a", s.Notes()[0].Title)
		})
	}
}

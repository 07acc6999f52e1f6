package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/jot/internal/errors"
)

func TestFetch(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "a", "b")
	b := s.Notes()[1]

	byIndex, err := Fetch(s, FetchInput{Index: intPtr(1)})
	require.NoError(t, err)
	require.Equal(t, b, byIndex.Note)
	require.Equal(t, 1, byIndex.Index)

	byID, err := Fetch(s, FetchInput{ID: b.ID})
	require.NoError(t, err)
	require.Equal(t, *byIndex, *byID)

	_, err = Fetch(s, FetchInput{Index: intPtr(2)})
	require.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = Fetch(s, FetchInput{ID: "nope"})
	require.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = Fetch(s, FetchInput{})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

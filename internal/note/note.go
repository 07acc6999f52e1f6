package note

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Note is one memo in the list.
// Notes are values: an edit replaces the whole note at its position.
type Note struct {
	// ID is a ULID assigned when the note is created. It survives edits
	// and is the only identity that is stable across deletes.
	ID string `json:"id" yaml:"id"`

	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`

	// CreatedAt and UpdatedAt are Unix timestamps
	CreatedAt int64 `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt int64 `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// New builds a note from already trimmed fields and assigns it a fresh ID.
func New(f Fields, now time.Time) (Note, error) {
	id, err := NewID(now)
	if err != nil {
		return Note{}, err
	}
	return Note{
		ID:        id,
		Title:     f.Title,
		Content:   f.Content,
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}, nil
}

// Fields returns the editable part of the note.
func (n Note) Fields() Fields {
	return Fields{Title: n.Title, Content: n.Content}
}

// Replace returns a copy of n carrying f, keeping the ID and creation time.
func (n Note) Replace(f Fields, now time.Time) Note {
	n.Title = f.Title
	n.Content = f.Content
	n.UpdatedAt = now.Unix()
	return n
}

// NewID generates a new ULID string.
func NewID(now time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

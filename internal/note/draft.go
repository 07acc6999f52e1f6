package note

// Draft is the single in-progress edit session.
type Draft struct {
	// Index is the position of the note being edited at the time of the
	// last list change. It is kept in step with deletes that shift the list.
	Index int `json:"index"`

	// NoteID is the ID of the note being edited.
	NoteID string `json:"note_id"`

	Fields
}

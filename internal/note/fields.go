package note

import (
	"strings"
	"unicode/utf8"
)

// Fields holds the user-editable text of a note. It is used for add
// candidates, the new-note input and the edit draft.
type Fields struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Trimmed returns f with leading and trailing whitespace removed from every field.
func (f Fields) Trimmed() Fields {
	return Fields{
		Title:   strings.TrimSpace(f.Title),
		Content: strings.TrimSpace(f.Content),
	}
}

// Blank reports whether any required field is empty after trimming.
func (f Fields) Blank() bool {
	t := f.Trimmed()
	return t.Title == "" || t.Content == ""
}

// IsZero reports whether both fields are empty strings (untrimmed).
func (f Fields) IsZero() bool {
	return f.Title == "" && f.Content == ""
}

// Patch is a partial update of Fields. A nil field keeps the current value.
type Patch struct {
	Title   *string
	Content *string
}

// IsEmpty reports whether p changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

// Apply returns f with the fields set in p replaced, as given.
func (p Patch) Apply(f Fields) Fields {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Content != nil {
		f.Content = *p.Content
	}
	return f
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

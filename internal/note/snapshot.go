package note

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serializes the note list for the persisted snapshot.
// An empty list encodes as "[]", never "null".
func Encode(notes []Note) (string, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a persisted snapshot.
//
// Two element shapes are accepted: note objects, and the plain strings
// written by the single-field version of the app. A plain string becomes
// a note whose title is the string and whose content is empty.
// Notes without an ID are returned with an empty ID; callers assign one.
func Decode(snapshot string) ([]Note, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(snapshot), &raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if raw == nil {
		// JSON null
		return nil, fmt.Errorf("decode snapshot: not a list")
	}

	notes := make([]Note, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 {
			return nil, fmt.Errorf("decode snapshot: empty element %d", i)
		}
		switch elem[0] {
		case '"':
			var text string
			if err := json.Unmarshal(elem, &text); err != nil {
				return nil, fmt.Errorf("decode snapshot: element %d: %w", i, err)
			}
			notes = append(notes, Note{Title: text})
		case '{':
			var n Note
			if err := json.Unmarshal(elem, &n); err != nil {
				return nil, fmt.Errorf("decode snapshot: element %d: %w", i, err)
			}
			notes = append(notes, n)
		default:
			return nil, fmt.Errorf("decode snapshot: element %d is neither a note nor a string", i)
		}
	}
	return notes, nil
}

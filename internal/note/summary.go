package note

// previewChars is the maximum length of Summary.Preview in runes.
const previewChars = 80

// Summary is a note without its full content. Used by list views.
type Summary struct {
	Index        int    `json:"index"`
	ID           string `json:"id"`
	Title        string `json:"title"`
	Preview      string `json:"preview"`
	ContentChars int    `json:"content_chars"`
	CreatedAt    int64  `json:"created_at,omitempty"`
	UpdatedAt    int64  `json:"updated_at,omitempty"`
}

// ToSummary converts n, found at index, to a Summary.
func (n Note) ToSummary(index int) Summary {
	return Summary{
		Index:        index,
		ID:           n.ID,
		Title:        n.Title,
		Preview:      Preview(n.Content),
		ContentChars: CountChars(n.Content),
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

// Preview returns the first line of content, cut to previewChars runes.
func Preview(content string) string {
	line := content
	for i, r := range content {
		if r == '\n' {
			line = content[:i]
			break
		}
	}
	runes := []rune(line)
	if len(runes) > previewChars {
		return string(runes[:previewChars]) + "..."
	}
	return line
}

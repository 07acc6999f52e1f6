package note

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFields_Trimmed(t *testing.T) {
	got := Fields{Title: "  A \t", Content: "\n x  "}.Trimmed()
	want := Fields{Title: "A", Content: "x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Trimmed() mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_Blank(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   bool
	}{
		{name: "both set", fields: Fields{Title: "A", Content: "x"}, want: false},
		{name: "whitespace title", fields: Fields{Title: "  ", Content: "y"}, want: true},
		{name: "empty content", fields: Fields{Title: "A", Content: ""}, want: true},
		{name: "tabs and newlines only", fields: Fields{Title: "\t\n", Content: " \n"}, want: true},
		{name: "padded values", fields: Fields{Title: " A ", Content: " x "}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fields.Blank(); got != tt.want {
				t.Errorf("Blank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	base := Fields{Title: "A", Content: "x"}
	blank := ""
	title := "B"

	tests := []struct {
		name  string
		patch Patch
		want  Fields
	}{
		{name: "empty keeps all", patch: Patch{}, want: base},
		{name: "title only", patch: Patch{Title: &title}, want: Fields{Title: "B", Content: "x"}},
		{name: "blank content kept as given", patch: Patch{Content: &blank}, want: Fields{Title: "A", Content: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.patch.Apply(base)); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if !(Patch{}).IsEmpty() || (Patch{Content: &blank}).IsEmpty() {
		t.Error("IsEmpty() wrong")
	}
}

func TestNew(t *testing.T) {
	now := time.Unix(1700000000, 0)
	n, err := New(Fields{Title: "A", Content: "x"}, now)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(n.ID) != 26 {
		t.Errorf("ID length = %d, want 26 (ULID)", len(n.ID))
	}
	if n.Title != "A" || n.Content != "x" {
		t.Errorf("fields = %+v", n.Fields())
	}
	if n.CreatedAt != now.Unix() || n.UpdatedAt != now.Unix() {
		t.Errorf("timestamps = %d/%d, want %d", n.CreatedAt, n.UpdatedAt, now.Unix())
	}
}

func TestNote_Replace(t *testing.T) {
	orig := Note{ID: "id-1", Title: "A", Content: "x", CreatedAt: 10, UpdatedAt: 10}
	got := orig.Replace(Fields{Title: "", Content: "y"}, time.Unix(20, 0))

	want := Note{ID: "id-1", Title: "", Content: "y", CreatedAt: 10, UpdatedAt: 20}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Replace() mismatch (-want +got):\n%s", diff)
	}
	if orig.Title != "A" {
		t.Errorf("Replace() modified the receiver")
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("é", 100)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short", input: "hello", want: "hello"},
		{name: "first line only", input: "line one\nline two", want: "line one"},
		{name: "truncated by runes", input: long, want: strings.Repeat("é", 80) + "..."},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.input); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToSummary(t *testing.T) {
	n := Note{ID: "id-1", Title: "T", Content: "héllo\nworld", CreatedAt: 1, UpdatedAt: 2}
	got := n.ToSummary(3)
	want := Summary{Index: 3, ID: "id-1", Title: "T", Preview: "héllo", ContentChars: 11, CreatedAt: 1, UpdatedAt: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToSummary() mismatch (-want +got):\n%s", diff)
	}
}

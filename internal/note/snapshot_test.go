package note

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode_EmptyList(t *testing.T) {
	for _, in := range [][]Note{nil, {}} {
		got, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if got != "[]" {
			t.Errorf("Encode(%v) = %q, want %q", in, got, "[]")
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	notes := []Note{
		{ID: "01", Title: "A", Content: "x", CreatedAt: 1, UpdatedAt: 1},
		{ID: "02", Title: "B", Content: "multi\nline \"quoted\"", CreatedAt: 2, UpdatedAt: 3},
		{ID: "03", Title: "", Content: "", CreatedAt: 4, UpdatedAt: 4},
	}

	snapshot, err := Encode(notes)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(snapshot)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(notes, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_LegacyStrings(t *testing.T) {
	got, err := Decode(`["buy milk", "call mom"]`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []Note{{Title: "buy milk"}, {Title: "call mom"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_MixedShapes(t *testing.T) {
	got, err := Decode(`["old", {"title": "new", "content": "body"}]`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []Note{{Title: "old"}, {Title: "new", Content: "body"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
	}{
		{name: "empty string", snapshot: ""},
		{name: "not json", snapshot: "{oops"},
		{name: "json null", snapshot: "null"},
		{name: "object not list", snapshot: `{"title": "A"}`},
		{name: "number element", snapshot: `[1, 2]`},
		{name: "nested list element", snapshot: `[["a"]]`},
		{name: "wrong field type", snapshot: `[{"title": 5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.snapshot); err == nil {
				t.Errorf("Decode(%q) expected error, got nil", tt.snapshot)
			}
		})
	}
}

func TestDecode_EmptyList(t *testing.T) {
	got, err := Decode(`[]`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Decode([]) = %#v, want empty non-nil slice", got)
	}
}

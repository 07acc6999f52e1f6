package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/kv"
	"github.com/hpungsan/jot/internal/store"
)

func intPtr(i int) *int { return &i }

func stringPtr(s string) *string { return &s }

// openPaths lifts the directory restriction so tests can use t.TempDir().
var openPaths = PathPolicy{Config: &config.Config{AllowUnsafePaths: true}}

// newTestStore opens a store over in-memory storage.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), kv.NewMemory(), "notes", nil)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	return s
}

// seed adds notes titled by titles, each with content "body <title>".
func seed(t *testing.T, s *store.Store, titles ...string) {
	t.Helper()
	for _, title := range titles {
		out, err := Add(context.Background(), s, AddInput{Title: title, Content: "body " + title})
		if err != nil {
			t.Fatalf("seed %q: %v", title, err)
		}
		if !out.Added {
			t.Fatalf("seed %q: not added", title)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name      string
		index     *int
		id        string
		wantCode  errors.ErrorCode
		wantByID  bool
		wantIndex int
	}{
		{name: "index only", index: intPtr(2), wantIndex: 2},
		{name: "index zero", index: intPtr(0), wantIndex: 0},
		{name: "id only", id: "01ABC", wantByID: true},
		{name: "id trimmed", id: "  01ABC ", wantByID: true},
		{name: "both", index: intPtr(0), id: "01ABC", wantCode: errors.ErrAmbiguousAddressing},
		{name: "neither", wantCode: errors.ErrInvalidRequest},
		{name: "blank id", id: "   ", wantCode: errors.ErrInvalidRequest},
		{name: "negative index", index: intPtr(-1), wantCode: errors.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ValidateAddress(tt.index, tt.id)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if addr.ByID != tt.wantByID {
				t.Errorf("ByID = %v, want %v", addr.ByID, tt.wantByID)
			}
			if tt.wantByID && addr.ID != "01ABC" {
				t.Errorf("ID = %q, want %q", addr.ID, "01ABC")
			}
			if !tt.wantByID && addr.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", addr.Index, tt.wantIndex)
			}
		})
	}
}

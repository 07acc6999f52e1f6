package ops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/note"
	"github.com/hpungsan/jot/internal/store"
)

// maxImportBytes bounds the size of an import file.
const maxImportBytes = 16 << 20

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path   string       // required
	Format ExportFormat // default: from the file extension, else json
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Count    int `json:"count"`
}

// Import appends the notes of an export file to the list.
//
// JSON files may be an export document or a bare snapshot list (including
// the plain-string shape). Each note goes through Add, so blank notes are
// skipped and counted, and every accepted note gets a fresh ID.
//
// Import is not atomic. If a write fails or ctx is cancelled partway, the
// notes added so far stay in the list and the returned output counts them
// alongside the error.
func Import(ctx context.Context, s *store.Store, policy PathPolicy, input ImportInput) (*ImportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	format, err := resolveFormat(input.Format, input.Path)
	if err != nil {
		return nil, err
	}
	if err := ValidatePath(input.Path, PathCheckRead, policy); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		if _, ok := err.(*errors.JotError); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes+1))
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}
	if len(data) > maxImportBytes {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("import file exceeds %d bytes", maxImportBytes))
	}

	notes, err := parseImport(data, format)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid import file: %v", err))
	}

	out := &ImportOutput{}
	for _, n := range notes {
		select {
		case <-ctx.Done():
			out.Count = s.Len()
			return out, errors.NewCancelled("import")
		default:
		}

		_, added, err := s.Add(ctx, n.Fields())
		if err != nil {
			out.Count = s.Len()
			return out, err
		}
		if added {
			out.Imported++
		} else {
			out.Skipped++
		}
	}
	out.Count = s.Len()
	return out, nil
}

// parseImport decodes an export document or, for JSON, a bare snapshot.
func parseImport(data []byte, format ExportFormat) ([]note.Note, error) {
	if format == FormatYAML {
		var doc ExportFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if !doc.JotExport {
			return nil, fmt.Errorf("missing _jot_export header")
		}
		return doc.Notes, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return note.Decode(string(trimmed))
	}

	var doc ExportFile
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	if !doc.JotExport {
		return nil, fmt.Errorf("missing _jot_export header")
	}
	return doc.Notes, nil
}

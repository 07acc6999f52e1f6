package ops

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/note"
	"github.com/hpungsan/jot/internal/store"
)

// ExportFormat selects the export file encoding.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ExportSchemaVersion is written into every export file.
const ExportSchemaVersion = "1.0"

// ExportFile is the document written by Export and read by Import.
type ExportFile struct {
	JotExport     bool        `json:"_jot_export" yaml:"_jot_export"`
	SchemaVersion string      `json:"schema_version" yaml:"schema_version"`
	ExportedAt    int64       `json:"exported_at" yaml:"exported_at"`
	Notes         []note.Note `json:"notes" yaml:"notes"`
}

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path   string       // required
	Format ExportFormat // default: from the file extension, else json
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string       `json:"path"`
	Format     ExportFormat `json:"format"`
	Count      int          `json:"count"`
	ExportedAt int64        `json:"exported_at"`
}

// Export writes the whole note list to a JSON or YAML file.
// The path must pass ValidatePath under policy. The file is written to a
// temp path and renamed into place, so an existing file survives a failed export.
func Export(ctx context.Context, s *store.Store, policy PathPolicy, input ExportInput) (*ExportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	format, err := resolveFormat(input.Format, input.Path)
	if err != nil {
		return nil, err
	}
	if err := ValidatePath(input.Path, PathCheckWrite, policy); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelled("export")
	}

	now := time.Now()
	doc := ExportFile{
		JotExport:     true,
		SchemaVersion: ExportSchemaVersion,
		ExportedAt:    now.Unix(),
		Notes:         s.Notes(),
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if err := writeFileAtomic(input.Path, data); err != nil {
		return nil, err
	}

	return &ExportOutput{
		Path:       input.Path,
		Format:     format,
		Count:      len(doc.Notes),
		ExportedAt: doc.ExportedAt,
	}, nil
}

// DefaultExportPath returns baseDir/exports/notes-<timestamp>.<format>.
func DefaultExportPath(baseDir string, format ExportFormat, now time.Time) string {
	if format == "" {
		format = FormatJSON
	}
	filename := fmt.Sprintf("notes-%s.%s", now.Format("2006-01-02T150405"), format)
	return filepath.Join(baseDir, "exports", filename)
}

// resolveFormat validates an explicit format or infers one from path.
func resolveFormat(format ExportFormat, path string) (ExportFormat, error) {
	switch format {
	case FormatJSON, FormatYAML:
		return format, nil
	case "":
		return formatFromPath(path), nil
	default:
		return "", errors.NewInvalidRequest("format must be one of: json, yaml")
	}
}

func formatFromPath(path string) ExportFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}
	// Close before rename (required on Windows)
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink at the destination
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInvalidRequest("export path is a symlink")
	}

	if err := os.Rename(tempPath, path); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(path); statErr == nil {
				return errors.NewInvalidRequest("export destination already exists; choose a new path")
			}
		}
		return errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return nil
}

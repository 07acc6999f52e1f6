package kv

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hpungsan/jot/internal/errors"
)

// validKey restricts file keys to names that are safe as file names.
var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// File stores each key as dir/<key>.json.
type File struct {
	dir string
}

// NewFile returns a File storage rooted at dir, creating dir if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &File{dir: dir}, nil
}

// Path returns the file backing key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Storage.
func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errors.NewInternal(err)
	}
	return string(data), true, nil
}

// Set implements Storage. The value is written to a temp file and renamed
// into place so a crash never leaves a half-written snapshot.
func (f *File) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	target := f.Path(key)
	tempPath := target + "." + hex.EncodeToString(randBytes) + ".tmp"

	if err := os.WriteFile(tempPath, []byte(value), 0600); err != nil {
		os.Remove(tempPath)
		return errors.NewInternal(fmt.Errorf("failed to write snapshot: %w", err))
	}
	if err := os.Rename(tempPath, target); err != nil {
		os.Remove(tempPath)
		return errors.NewInternal(fmt.Errorf("failed to replace snapshot: %w", err))
	}
	return nil
}

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid storage key %q", key))
	}
	return nil
}

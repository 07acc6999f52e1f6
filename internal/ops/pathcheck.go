package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
)

// PathCheckMode indicates whether the path check is for reading or writing.
type PathCheckMode int

const (
	PathCheckRead  PathCheckMode = iota // import
	PathCheckWrite                      // export
)

// PathPolicy scopes the files Export and Import may touch.
type PathPolicy struct {
	// BaseDir is the jot home; BaseDir/exports is always allowed.
	// Empty means only Config.AllowedPaths apply.
	BaseDir string

	// Config supplies allowed_paths and allow_unsafe_paths. May be nil.
	Config *config.Config
}

// ExportsDir returns BaseDir/exports, or "" when BaseDir is unset.
func (p PathPolicy) ExportsDir() string {
	if p.BaseDir == "" {
		return ""
	}
	return filepath.Join(p.BaseDir, "exports")
}

// ValidatePath checks an import/export path against the policy:
//   - no ".." components
//   - extension .json, .yaml or .yml
//   - file directly inside BaseDir/exports or an allowed_paths entry (no subdirectories)
//   - neither the parent directory nor the file is a symlink
//
// allow_unsafe_paths lifts the directory rule only. Read mode also requires
// the file to exist.
func ValidatePath(path string, mode PathCheckMode, policy PathPolicy) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewInvalidRequest("path is required")
	}
	if containsTraversal(path) {
		return errors.NewInvalidRequest("path must not contain directory traversal (..)")
	}

	cleaned := filepath.Clean(path)
	switch strings.ToLower(filepath.Ext(cleaned)) {
	case ".json", ".yaml", ".yml":
	default:
		return errors.NewInvalidRequest("path must have a .json, .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid path: %v", err))
	}

	if policy.Config == nil || !policy.Config.AllowUnsafePaths {
		allowedDirs, err := policy.allowedDirs()
		if err != nil {
			return err
		}

		parentDir := filepath.Dir(absPath)
		if !isDirectlyInAllowedDir(parentDir, allowedDirs) {
			return errors.NewInvalidRequest(
				fmt.Sprintf("file must be directly in an allowed directory (no subdirectories); allowed: %v",
					allowedDirs))
		}
		if info, err := os.Lstat(parentDir); err == nil && info.Mode()&os.ModeSymlink != 0 {
			return errors.NewInvalidRequest("parent directory must not be a symlink")
		}
	}

	if mode == PathCheckRead {
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			return errors.NewFileNotFound(path)
		}
	}

	// O_NOFOLLOW rejects these at open time too; fail early with a clear message.
	if info, err := os.Lstat(absPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInvalidRequest("path must not be a symlink")
	}

	return nil
}

// allowedDirs returns the exports directory plus absolute allowed_paths
// entries, with symlinked entries resolved to their targets.
func (p PathPolicy) allowedDirs() ([]string, error) {
	var dirs []string
	if d := p.ExportsDir(); d != "" {
		dirs = append(dirs, d)
	}
	if p.Config != nil {
		for _, d := range p.Config.AllowedPaths {
			if filepath.IsAbs(d) {
				dirs = append(dirs, d)
			}
		}
	}

	result := make([]string, 0, len(dirs))
	for _, d := range dirs {
		abs, err := filepath.Abs(filepath.Clean(d))
		if err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid allowed path: %v", err))
		}
		if info, err := os.Lstat(abs); err == nil && info.Mode()&os.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(abs)
			if err != nil {
				return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot resolve symlink in allowed path: %v", err))
			}
			abs = resolved
		}
		result = append(result, abs)
	}
	return result, nil
}

// isDirectlyInAllowedDir reports whether parentDir is exactly one of allowedDirs.
func isDirectlyInAllowedDir(parentDir string, allowedDirs []string) bool {
	parentDir = filepath.Clean(parentDir)
	for _, dir := range allowedDirs {
		if parentDir == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

// containsTraversal reports whether any path component is "..".
func containsTraversal(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	if filepath.Separator != '/' {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return true
			}
		}
	}
	return false
}

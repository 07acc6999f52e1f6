package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageSQLite)
	}
	if cfg.SnapshotKey != "notes" {
		t.Errorf("SnapshotKey = %q, want %q", cfg.SnapshotKey, "notes")
	}
	if cfg.WebPort != DefaultConfig().WebPort {
		t.Errorf("WebPort = %d, want %d", cfg.WebPort, DefaultConfig().WebPort)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"storage": "file", "snapshot_key": "memos", "web_port": 9000}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}
	if cfg.SnapshotKey != "memos" {
		t.Errorf("SnapshotKey = %q, want %q", cfg.SnapshotKey, "memos")
	}
	if cfg.WebPort != 9000 {
		t.Errorf("WebPort = %d, want 9000", cfg.WebPort)
	}
	// Unset scalars keep defaults
	if cfg.WebBind != "127.0.0.1" {
		t.Errorf("WebBind = %q, want default", cfg.WebBind)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{not json}`)

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"disabled_tools": ["note_import", "note_export"]}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
	if cfg.DisabledTools[0] != "note_import" {
		t.Errorf("DisabledTools[0] = %q, want %q", cfg.DisabledTools[0], "note_import")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultConfig(), wantErr: false},
		{name: "memory backend", cfg: &Config{Storage: StorageMemory, SnapshotKey: "k"}, wantErr: false},
		{name: "unknown backend", cfg: &Config{Storage: "redis", SnapshotKey: "k"}, wantErr: true},
		{name: "blank key", cfg: &Config{Storage: StorageFile, SnapshotKey: "  "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	writeConfig(t, globalDir, `{"storage": "file", "disabled_tools": ["note_import"]}`)
	writeConfig(t, filepath.Join(repoRoot, ".jot"), `{"storage": "memory", "disabled_tools": ["note_export"]}`)

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if cfg.Storage != StorageMemory {
		t.Errorf("Storage = %q, want memory (repo override)", cfg.Storage)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	cfg, err := LoadWithRepo(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("Storage = %q, want sqlite", cfg.Storage)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Errorf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_WalksUpward(t *testing.T) {
	tmpDir := t.TempDir()
	globalDir := t.TempDir()

	writeConfig(t, filepath.Join(tmpDir, ".jot"), `{"snapshot_key": "repo-notes"}`)

	subdir := filepath.Join(tmpDir, "subdir", "deeper")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, subdir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.SnapshotKey != "repo-notes" {
		t.Errorf("SnapshotKey = %q, want %q", cfg.SnapshotKey, "repo-notes")
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{Storage: StorageSQLite, DBMaxOpenConns: 5, WebPort: 8000}
	overlay := &Config{Storage: StorageFile}

	result := Merge(base, overlay)

	if result.Storage != StorageFile {
		t.Errorf("Storage = %q, want file (overlay)", result.Storage)
	}
	if result.DBMaxOpenConns != 5 {
		t.Errorf("DBMaxOpenConns = %d, want 5 (base, overlay is zero)", result.DBMaxOpenConns)
	}
	if result.WebPort != 8000 {
		t.Errorf("WebPort = %d, want 8000", result.WebPort)
	}
}

func TestMerge_BooleanOr(t *testing.T) {
	result := Merge(&Config{Verbose: true}, &Config{Verbose: false})
	if !result.Verbose {
		t.Error("Verbose should be true (base OR overlay)")
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTools: []string{"note_import", " note_export "}}
	overlay := &Config{DisabledTools: []string{"note_export", "note_delete", ""}}

	result := Merge(base, overlay)

	want := []string{"note_import", "note_export", "note_delete"}
	if len(result.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", result.DisabledTools, want)
	}
	for i := range want {
		if result.DisabledTools[i] != want[i] {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, result.DisabledTools[i], want[i])
		}
	}
}

func TestMerge_PathSettings(t *testing.T) {
	base := &Config{AllowedPaths: []string{"/srv/backups"}}
	overlay := &Config{AllowedPaths: []string{"/srv/backups", "/tmp/jot"}, AllowUnsafePaths: true}

	result := Merge(base, overlay)

	if !result.AllowUnsafePaths {
		t.Error("AllowUnsafePaths should be true (base OR overlay)")
	}
	want := []string{"/srv/backups", "/tmp/jot"}
	if len(result.AllowedPaths) != len(want) || result.AllowedPaths[0] != want[0] || result.AllowedPaths[1] != want[1] {
		t.Errorf("AllowedPaths = %v, want %v", result.AllowedPaths, want)
	}
	if Merge(DefaultConfig(), &Config{}).AllowUnsafePaths {
		t.Error("AllowUnsafePaths should default to false")
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	if found := FindRepoConfig(t.TempDir()); found != "" {
		t.Errorf("FindRepoConfig() = %q, want empty string", found)
	}
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/db"
	"github.com/hpungsan/jot/internal/kv"
	"github.com/hpungsan/jot/internal/store"
)

// openStorage builds the configured persistence backend.
// The returned close function releases it and is never nil.
func openStorage(cfg *config.Config, baseDir string) (kv.Storage, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemory(), func() {}, nil

	case config.StorageFile:
		storage, err := kv.NewFile(filepath.Join(baseDir, "data"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file storage: %w", err)
		}
		return storage, func() {}, nil

	default:
		database, err := db.Init(baseDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		db.ConfigurePool(database, cfg)
		return kv.NewSQLite(database), func() { database.Close() }, nil
	}
}

// openStore opens the configured storage and loads the note list from it.
func openStore(ctx context.Context, cfg *config.Config, baseDir string, logger *zap.Logger) (*store.Store, func(), error) {
	storage, closeStorage, err := openStorage(cfg, baseDir)
	if err != nil {
		return nil, nil, err
	}

	s, err := store.Open(ctx, storage, cfg.SnapshotKey, logger)
	if err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("failed to load notes: %w", err)
	}

	logger.Debug("store opened",
		zap.String("storage", cfg.Storage),
		zap.Int("notes", s.Len()))
	return s, closeStorage, nil
}

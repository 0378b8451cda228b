package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"cadence/internal/config"
)

// ErrNoSnapshot is returned by Backend.Load when nothing has been stored yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Backend reads and writes one encoded snapshot.
type Backend interface {
	// Load returns the stored payload or ErrNoSnapshot.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored payload.
	Save(ctx context.Context, data []byte) error
	// Kind names the backend ("file" or "sqlite").
	Kind() string
	// Path is the file holding the data.
	Path() string
	Close() error
}

// Open returns the backend selected by cfg, creating the data directory.
func Open(cfg *config.Config) (Backend, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg.StatePath(), cfg.Storage.Namespace)
	case config.BackendFile, "":
		return NewFileBackend(cfg.StatePath()), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Quarantine moves the file at path, with any SQLite sidecar files, to
// <path>.corrupt-<timestamp> and returns the new path.
func Quarantine(path string, now time.Time) (string, error) {
	target := fmt.Sprintf("%s.corrupt-%s", path, now.UTC().Format("20060102T150405Z"))
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("move aside %s: %w", path, err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Rename(path+suffix, target+suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return target, fmt.Errorf("move aside %s: %w", path+suffix, err)
		}
	}
	return target, nil
}

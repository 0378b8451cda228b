package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Health describes the storage location for diagnostic output.
type Health struct {
	Backend     string `json:"backend"`
	Path        string `json:"path"`
	DirWritable bool   `json:"dir_writable"`
	Exists      bool   `json:"exists"`
	Readable    bool   `json:"readable"`
	HasSnapshot bool   `json:"has_snapshot"`
	Decodable   bool   `json:"decodable"`
	Bytes       int    `json:"bytes"`
	Error       string `json:"error,omitempty"`
}

// CheckHealth probes the backend's directory and stored record.
func CheckHealth(ctx context.Context, backend Backend) (Health, error) {
	if backend == nil {
		return Health{}, errors.New("backend is nil")
	}
	health := Health{Backend: backend.Kind(), Path: backend.Path()}
	if health.Path == "" {
		return health, errors.New("storage path is unknown")
	}

	dir := filepath.Dir(health.Path)
	health.DirWritable = unix.Access(dir, unix.W_OK|unix.X_OK) == nil

	info, err := os.Stat(health.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return health, nil
	case err != nil:
		return health, fmt.Errorf("stat state file: %w", err)
	case info.IsDir():
		return health, fmt.Errorf("state path %q is a directory", health.Path)
	}
	health.Exists = true
	health.Readable = unix.Access(health.Path, unix.R_OK) == nil

	if sqlite, ok := backend.(*SQLiteBackend); ok {
		if err := sqlite.ping(ctx); err != nil {
			health.Error = err.Error()
			return health, nil
		}
	}

	data, err := backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		return health, nil
	case err != nil:
		health.Error = err.Error()
		return health, nil
	}
	health.HasSnapshot = true
	health.Bytes = len(data)
	if _, err := Decode(data); err != nil {
		health.Error = err.Error()
		return health, nil
	}
	health.Decodable = true
	return health, nil
}

// Package filestore persists raw uploaded bytes and derived artifacts under a
// single directory shared by all in-flight operations.
package filestore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	dir    string
	logger *slog.Logger
}

func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// UniqueName builds a collision-free stored name for an original filename.
// The second-resolution timestamp alone is not unique under concurrent
// uploads of the same name, so an 8-char uuid fragment is appended.
func (s *Store) UniqueName(original string) string {
	timestamp := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s_%s_%s", timestamp, uuid.NewString()[:8], filepath.Base(original))
}

// Save writes content under a freshly generated unique name and returns the
// full path. The write is verified by a stat afterwards.
func (s *Store) Save(content []byte, filename string) (string, error) {
	path := filepath.Join(s.dir, s.UniqueName(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write file %s failed: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("file not found after saving %s: %w", path, err)
	}
	s.logger.Info("file saved", "path", path, "size", info.Size())
	return path, nil
}

func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes a stored file. Callers treat failure as non-fatal.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file %s failed: %w", path, err)
	}
	return nil
}

// Package persist is the byte-serialization collaborator: it saves and
// loads arbitrary Go values to and from paths using gob encoding.
//
// It backs the per-fold robustness-ratio caches and classifier
// checkpoints. Failures here are convenience-layer failures: they are
// logged with a human-readable notice and returned as error values for
// the caller to treat as a missing result, never panics.
package persist

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store saves and loads gob-encoded values. A nil-safe zap logger is
// injected at construction so every failure leaves a notice.
type Store struct {
	log *zap.Logger
}

// NewStore creates a Store logging through the given logger.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{log: log}
}

// Save gob-encodes v to path, creating parent directories as needed.
// The file is written to a temporary name and renamed into place so a
// failed encode never leaves a truncated artifact behind.
func (s *Store) Save(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.log.Warn("save failed: cannot create directory",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("persist: save %s: %w", path, err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		s.log.Warn("save failed: cannot create file",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("persist: save %s: %w", path, err)
	}

	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)
		s.log.Warn("save failed: encode error",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("persist: save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		s.log.Warn("save failed: close error",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("persist: save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		s.log.Warn("save failed: rename error",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("persist: save %s: %w", path, err)
	}
	return nil
}

// Load gob-decodes the value at path into v, which must be a pointer.
func (s *Store) Load(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		s.log.Warn("load failed: cannot open file",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("persist: load %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		s.log.Warn("load failed: decode error",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("persist: load %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a regular file exists at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

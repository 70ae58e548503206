// Package storage persists the frame store as a single JSON document.
// The whole file is loaded and rewritten per invocation; saves go
// through a temp file and atomic rename so a crashed write never leaves
// a half-written store behind.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tallyhq/tally/internal/core/frame"
	"github.com/tallyhq/tally/internal/util"
)

// ErrCorruptStore is returned when the store file exists but cannot be
// decoded.
var ErrCorruptStore = errors.New("store file is corrupt")

const (
	framesFile = "frames.json"
	backupFile = "frames.json.bak"
)

// Repository owns the on-disk location of the frame store. A settings
// file in the root directory may redirect the data location elsewhere.
type Repository struct {
	root    string
	dataDir string
}

// NewRepository opens (creating if needed) the data directory rooted at
// root and resolves the settings redirection.
func NewRepository(root string) (*Repository, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", root, err)
	}

	settings, err := LoadSettings(root)
	if err != nil {
		return nil, err
	}

	dataDir := root
	if settings.DataLocation != "" {
		dataDir = settings.DataLocation
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
		}
	}

	return &Repository{root: root, dataDir: dataDir}, nil
}

// Root returns the repository root directory (where settings live).
func (r *Repository) Root() string {
	return r.root
}

// Path returns the location of the frames file.
func (r *Repository) Path() string {
	return filepath.Join(r.dataDir, framesFile)
}

// Load reads the full frame sequence from disk. A missing or empty file
// is an empty store; malformed content is ErrCorruptStore.
func (r *Repository) Load() ([]frame.Frame, error) {
	frames, err := LoadFile(r.Path())
	if err != nil {
		return nil, err
	}
	util.LogDebug(fmt.Sprintf("Loaded %d frames from %s", len(frames), r.Path()))
	return frames, nil
}

// Save rewrites the store file with the given frames. The previous
// contents are kept in a backup file, and the new document is written to
// a temp file in the same directory before being renamed into place.
func (r *Repository) Save(frames []frame.Frame) error {
	path := r.Path()

	if prev, err := os.ReadFile(path); err == nil {
		backup := filepath.Join(r.dataDir, backupFile)
		if err := os.WriteFile(backup, prev, 0644); err != nil {
			return fmt.Errorf("failed to write backup file %s: %w", backup, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read store file %s: %w", path, err)
	}

	data, err := sonic.ConfigDefault.MarshalIndent(frames, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode frames: %w", err)
	}

	tmp, err := os.CreateTemp(r.dataDir, framesFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", r.dataDir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file %s: %w", path, err)
	}

	util.LogDebug(fmt.Sprintf("Saved %d frames to %s", len(frames), path))
	return nil
}

// LoadFile reads a frame sequence from an arbitrary store file, e.g. the
// incoming side of a merge.
func LoadFile(path string) ([]frame.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store file %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var frames []frame.Frame
	if err := sonic.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	return frames, nil
}

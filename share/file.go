package share

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// FileStore keeps one JSON file per share code in a directory. Writes go
// through a temp file plus rename so a crash never leaves a half-written
// record under the code.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore returns a store writing under dir on the given filesystem.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

func (s *FileStore) path(code string) string {
	return filepath.Join(s.dir, code+".json")
}

func (s *FileStore) Get(_ context.Context, code string) (*Snapshot, error) {
	data, err := afero.ReadFile(s.fs, s.path(code))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read share file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse share file for %s: %w", code, err)
	}
	return &snap, nil
}

func (s *FileStore) Set(_ context.Context, code string, snap Snapshot) error {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create share directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode share payload: %w", err)
	}

	tmp := s.path(code) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write share file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path(code)); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to finalize share file: %w", err)
	}
	return nil
}

func (s *FileStore) FindByContentHash(ctx context.Context, hash string) (string, error) {
	var found string
	err := s.walk(func(code string, snap *Snapshot) error {
		if snap.ContentHash == hash && found == "" {
			found = code
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", ErrNotFound
	}
	return found, nil
}

func (s *FileStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var stale []string
	err := s.walk(func(code string, snap *Snapshot) error {
		if snap.SavedAt.Before(cutoff) {
			stale = append(stale, code)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	var deleted int64
	for _, code := range stale {
		if err := s.fs.Remove(s.path(code)); err != nil {
			return deleted, fmt.Errorf("failed to delete share %s: %w", code, err)
		}
		deleted++
	}
	return deleted, nil
}

// walk visits every stored snapshot. Unreadable or malformed files are
// skipped rather than failing the whole scan.
func (s *FileStore) walk(visit func(code string, snap *Snapshot) error) error {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to list share directory: %w", err)
	}

	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		code := strings.TrimSuffix(name, ".json")

		data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		if err := visit(code, &snap); err != nil {
			return err
		}
	}
	return nil
}

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edward9487/minecraft-mod-converter/share"

	"gorm.io/gorm"
)

// ShareStore implements share.Store on the SQLite database.
type ShareStore struct {
	gdb *gorm.DB
}

// NewShareStore wraps an open database handle.
func NewShareStore(gdb *gorm.DB) *ShareStore {
	return &ShareStore{gdb: gdb}
}

func (s *ShareStore) Get(ctx context.Context, code string) (*share.Snapshot, error) {
	var record ShareRecord
	result := s.gdb.WithContext(ctx).Where("code = ?", code).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, share.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query share %s: %w", code, result.Error)
	}

	var snap share.Snapshot
	if err := json.Unmarshal([]byte(record.Payload), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse stored share %s: %w", code, err)
	}
	return &snap, nil
}

func (s *ShareStore) Set(ctx context.Context, code string, snap share.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode share %s: %w", code, err)
	}

	// Upsert inside a transaction so the record is never half-written.
	return s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record ShareRecord
		result := tx.Where("code = ?", code).First(&record)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to query share %s: %w", code, result.Error)
			}
			record = ShareRecord{Code: code}
		}

		record.ContentHash = snap.ContentHash
		record.Payload = string(payload)
		record.SavedAt = snap.SavedAt

		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("failed to store share %s: %w", code, err)
		}
		return nil
	})
}

func (s *ShareStore) FindByContentHash(ctx context.Context, hash string) (string, error) {
	var record ShareRecord
	result := s.gdb.WithContext(ctx).Where("content_hash = ?", hash).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", share.ErrNotFound
		}
		return "", fmt.Errorf("failed to query content hash: %w", result.Error)
	}
	return record.Code, nil
}

func (s *ShareStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.gdb.WithContext(ctx).Where("saved_at < ?", cutoff).Delete(&ShareRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale shares: %w", result.Error)
	}
	return result.RowsAffected, nil
}

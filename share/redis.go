package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyCodePrefix = "share:code:" // STRING. share:code:<CODE> -> snapshot JSON
	keyHashPrefix = "share:hash:" // STRING. share:hash:<fingerprint> -> code
	scanCount     = 500
)

// RedisStore keeps snapshots under per-code keys plus a fingerprint index
// for content-addressed lookup.
type RedisStore struct {
	cl *redis.Client
}

// NewRedisStore wraps an already connected client.
func NewRedisStore(cl *redis.Client) *RedisStore {
	return &RedisStore{cl: cl}
}

func (s *RedisStore) Get(ctx context.Context, code string) (*Snapshot, error) {
	data, err := s.cl.Get(ctx, keyCodePrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cannot get share %s: %w", code, err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("cannot parse share %s: %w", code, err)
	}
	return &snap, nil
}

func (s *RedisStore) Set(ctx context.Context, code string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cannot encode share %s: %w", code, err)
	}

	// If the code is being rewritten with different content, the old
	// fingerprint index entry must go away with the same write.
	oldHash := ""
	if old, err := s.Get(ctx, code); err == nil {
		oldHash = old.ContentHash
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	pipe := s.cl.TxPipeline()
	pipe.Set(ctx, keyCodePrefix+code, string(data), 0)
	if oldHash != "" && oldHash != snap.ContentHash {
		pipe.Del(ctx, keyHashPrefix+oldHash)
	}
	pipe.Set(ctx, keyHashPrefix+snap.ContentHash, code, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cannot store share %s: %w", code, err)
	}
	return nil
}

func (s *RedisStore) FindByContentHash(ctx context.Context, hash string) (string, error) {
	code, err := s.cl.Get(ctx, keyHashPrefix+hash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("cannot look up content hash: %w", err)
	}
	return code, nil
}

func (s *RedisStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)

	for {
		keys, nextCursor, err := s.cl.Scan(ctx, cursor, keyCodePrefix+"*", scanCount).Result()
		if err != nil {
			return deleted, fmt.Errorf("error scanning share keys: %w", err)
		}

		for _, key := range keys {
			data, err := s.cl.Get(ctx, key).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				return deleted, fmt.Errorf("cannot read share key %s: %w", key, err)
			}

			var snap Snapshot
			if err := json.Unmarshal([]byte(data), &snap); err != nil {
				continue
			}
			if !snap.SavedAt.Before(cutoff) {
				continue
			}

			pipe := s.cl.TxPipeline()
			pipe.Del(ctx, key)
			pipe.Del(ctx, keyHashPrefix+snap.ContentHash)
			if _, err := pipe.Exec(ctx); err != nil {
				return deleted, fmt.Errorf("cannot delete share key %s: %w", key, err)
			}
			deleted++
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}

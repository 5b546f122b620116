package share

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no snapshot is stored under a code or
// content hash.
var ErrNotFound = errors.New("no list found for this code")

// Store is the persistence capability the codec needs. Codes passed in are
// already canonicalized to uppercase. Set has upsert semantics and must
// never leave a half-written record behind.
type Store interface {
	Get(ctx context.Context, code string) (*Snapshot, error)
	Set(ctx context.Context, code string, snap Snapshot) error
	FindByContentHash(ctx context.Context, hash string) (string, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

package share

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edward9487/minecraft-mod-converter/list"

	"go.uber.org/zap"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 8
	maxCodeAttempts = 100
)

var (
	// ErrEmptyList rejects share requests for a list with no entries
	// before anything is written.
	ErrEmptyList = errors.New("cannot share an empty list")

	// ErrCodeExhausted signals that code generation kept colliding. This
	// is a hard failure: retrying further would mask a broken random
	// source or a corrupted store.
	ErrCodeExhausted = errors.New("exhausted share code generation attempts")
)

// Codec issues and resolves share codes over a Store.
type Codec struct {
	store Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewCodec creates a codec over the given store.
func NewCodec(store Store, log *zap.SugaredLogger) *Codec {
	return &Codec{store: store, log: log, now: time.Now}
}

// Issue stores the list snapshot and returns its share code.
//
// If existingCode is supplied and its stored content matches, the code is
// returned untouched (updated=false, no write). If it differs, the payload
// under that code is overwritten (updated=true). Without an existing code,
// a stored snapshot with the same fingerprint is reused so identical
// content never gets two codes; otherwise a fresh code is generated.
func (c *Codec) Issue(ctx context.Context, existingCode string, state *list.State) (string, bool, error) {
	if state == nil || len(state.Entries) == 0 {
		return "", false, ErrEmptyList
	}

	hash := Fingerprint(state)
	snap := Snapshot{
		TargetVersion: state.TargetVersion,
		Loader:        state.Loader,
		Items:         Project(state),
		ContentHash:   hash,
		SavedAt:       c.now(),
	}

	if existingCode != "" {
		code := Canonicalize(existingCode)
		existing, err := c.store.Get(ctx, code)
		switch {
		case err == nil:
			if existing.ContentHash == hash {
				return code, false, nil
			}
			snap.CreatedAt = existing.CreatedAt
			if err := c.store.Set(ctx, code, snap); err != nil {
				return "", false, fmt.Errorf("failed to update share %s: %w", code, err)
			}
			c.log.Infow("Updated share code", zap.String("code", code))
			return code, true, nil
		case errors.Is(err, ErrNotFound):
			// Stale code from the caller; fall through to normal issuance.
			c.log.Warnw("Supplied share code not found, issuing a new one", zap.String("code", code))
		default:
			return "", false, fmt.Errorf("failed to load share %s: %w", code, err)
		}
	}

	// Content-addressed dedup: identical content keeps its existing code.
	if code, err := c.store.FindByContentHash(ctx, hash); err == nil {
		return code, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return "", false, fmt.Errorf("failed to look up content hash: %w", err)
	}

	snap.CreatedAt = snap.SavedAt
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", false, fmt.Errorf("failed to generate share code: %w", err)
		}

		_, err = c.store.Get(ctx, code)
		if err == nil {
			continue // collision, try again
		}
		if !errors.Is(err, ErrNotFound) {
			return "", false, fmt.Errorf("failed to check share code %s: %w", code, err)
		}

		if err := c.store.Set(ctx, code, snap); err != nil {
			return "", false, fmt.Errorf("failed to store share %s: %w", code, err)
		}
		c.log.Infow("Issued share code", zap.String("code", code), zap.Int("items", len(snap.Items)))
		return code, false, nil
	}

	return "", false, ErrCodeExhausted
}

// Lookup resolves a share code to its stored snapshot. Codes are
// case-insensitive.
func (c *Codec) Lookup(ctx context.Context, code string) (*Snapshot, error) {
	return c.store.Get(ctx, Canonicalize(code))
}

// PruneOlderThan deletes snapshots last saved before the cutoff and
// returns how many were removed.
func (c *Codec) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return c.store.DeleteOlderThan(ctx, cutoff)
}

// Canonicalize normalizes a share code for storage and lookup.
func Canonicalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// generateCode draws codeLength symbols from the 36-symbol alphabet using
// a cryptographically strong source. Rejection sampling keeps the draw
// unbiased.
func generateCode() (string, error) {
	const max = byte(len(codeAlphabet)) * (255 / byte(len(codeAlphabet))) // largest multiple of 36 below 256

	var sb strings.Builder
	sb.Grow(codeLength)
	buf := make([]byte, 1)
	for sb.Len() < codeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		if buf[0] >= max {
			continue
		}
		sb.WriteByte(codeAlphabet[int(buf[0])%len(codeAlphabet)])
	}
	return sb.String(), nil
}

package share

import (
	"context"
	"testing"
	"time"

	"github.com/edward9487/minecraft-mod-converter/list"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testState() *list.State {
	s := list.NewState("1.20.1", "fabric")
	s.Add("sodium", "go fast")
	s.Add("lithium", "")
	s.SetSelected("sodium", true)
	return s
}

func newTestCodec(t *testing.T) (*Codec, *FileStore) {
	t.Helper()
	store := NewFileStore(afero.NewMemMapFs(), "/shares")
	return NewCodec(store, zap.NewNop().Sugar()), store
}

func TestFingerprintStableUnderVolatileFields(t *testing.T) {
	a := testState()
	b := testState()

	// Volatile, presentation-only fields differ.
	b.Entries[0].Status = list.StatusResolvable
	b.Entries[0].Filename = "sodium-0.5.jar"
	b.Entries[0].TargetVersion = "1.20.1"
	b.Entries[0].LastSupportedVersion = "1.19.4"
	b.Entries[0].Dependencies = []list.DependencyRef{{ID: "fabric-api", Title: "Fabric API"}}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintChangesWithProjectedFields(t *testing.T) {
	base := Fingerprint(testState())

	mutations := map[string]func(*list.State){
		"title":        func(s *list.State) { s.Entries[0].Title = "Sodium Plus" },
		"note":         func(s *list.State) { s.Entries[0].Note = "different" },
		"isDependency": func(s *list.State) { s.Entries[0].IsDependency = true },
		"isSelected":   func(s *list.State) { s.SetSelected("lithium", true) },
		"target":       func(s *list.State) { s.TargetVersion = "1.21.1" },
		"loader":       func(s *list.State) { s.Loader = "neoforge" },
		"entry id": func(s *list.State) {
			s.Remove("lithium")
			s.Add("phosphor", "")
		},
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := testState()
			mutate(s)
			assert.NotEqual(t, base, Fingerprint(s), "fingerprint must change when %s changes", name)
		})
	}
}

func TestIssueRejectsEmptyList(t *testing.T) {
	codec, _ := newTestCodec(t)

	_, _, err := codec.Issue(context.Background(), "", list.NewState("1.20.1", "fabric"))
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestIssueAndLookupRoundTrip(t *testing.T) {
	codec, _ := newTestCodec(t)
	ctx := context.Background()

	code, updated, err := codec.Issue(ctx, "", testState())
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.Contains(t, codeAlphabet, string(r))
	}

	snap, err := codec.Lookup(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, "1.20.1", snap.TargetVersion)
	assert.Equal(t, "fabric", snap.Loader)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "sodium", snap.Items[0].ID)
	assert.True(t, snap.Items[0].IsSelected)
	assert.False(t, snap.Items[1].IsSelected)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	codec, _ := newTestCodec(t)
	ctx := context.Background()

	code, _, err := codec.Issue(ctx, "", testState())
	require.NoError(t, err)

	lowered, err := codec.Lookup(ctx, "  "+toLower(code)+" ")
	require.NoError(t, err)
	assert.Equal(t, code, Canonicalize(code))
	assert.Equal(t, "sodium", lowered.Items[0].ID)
}

func toLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}

func TestIssueIdenticalContentReusesCode(t *testing.T) {
	codec, store := newTestCodec(t)
	ctx := context.Background()

	first, _, err := codec.Issue(ctx, "", testState())
	require.NoError(t, err)

	second, updated, err := codec.Issue(ctx, "", testState())
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical content must never get two codes")
	assert.False(t, updated)

	// Exactly one record stored.
	count := 0
	err = store.walk(func(string, *Snapshot) error { count++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIssueExistingCodeUnchangedContent(t *testing.T) {
	codec, _ := newTestCodec(t)
	ctx := context.Background()

	code, _, err := codec.Issue(ctx, "", testState())
	require.NoError(t, err)

	again, updated, err := codec.Issue(ctx, code, testState())
	require.NoError(t, err)
	assert.Equal(t, code, again)
	assert.False(t, updated)
}

func TestIssueExistingCodeUpdatedContent(t *testing.T) {
	codec, _ := newTestCodec(t)
	ctx := context.Background()

	code, _, err := codec.Issue(ctx, "", testState())
	require.NoError(t, err)

	changed := testState()
	changed.Entries[0].Note = "now with extra fast"
	newHash := Fingerprint(changed)

	again, updated, err := codec.Issue(ctx, code, changed)
	require.NoError(t, err)
	assert.Equal(t, code, again)
	assert.True(t, updated)

	snap, err := codec.Lookup(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, newHash, snap.ContentHash)
	assert.Equal(t, "now with extra fast", snap.Items[0].Note)
}

func TestIssueUpdatePreservesCreatedAt(t *testing.T) {
	codec, _ := newTestCodec(t)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return created }

	code, _, err := codec.Issue(ctx, "", testState())
	require.NoError(t, err)

	codec.now = func() time.Time { return created.Add(48 * time.Hour) }
	changed := testState()
	changed.Entries[1].Note = "tweak"
	_, updated, err := codec.Issue(ctx, code, changed)
	require.NoError(t, err)
	require.True(t, updated)

	snap, err := codec.Lookup(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, created, snap.CreatedAt.UTC())
	assert.Equal(t, created.Add(48*time.Hour), snap.SavedAt.UTC())
}

func TestLookupUnknownCode(t *testing.T) {
	codec, _ := newTestCodec(t)

	_, err := codec.Lookup(context.Background(), "NOPE1234")
	assert.ErrorIs(t, err, ErrNotFound)
}

// collidingStore reports every code as taken so generation can never win.
type collidingStore struct {
	FileStore
	gets int
}

func (s *collidingStore) Get(context.Context, string) (*Snapshot, error) {
	s.gets++
	return &Snapshot{ContentHash: "occupied"}, nil
}

func (s *collidingStore) FindByContentHash(context.Context, string) (string, error) {
	return "", ErrNotFound
}

func TestIssueCollisionExhaustion(t *testing.T) {
	store := &collidingStore{}
	codec := NewCodec(store, zap.NewNop().Sugar())

	_, _, err := codec.Issue(context.Background(), "", testState())
	assert.ErrorIs(t, err, ErrCodeExhausted)
	assert.Equal(t, maxCodeAttempts, store.gets)
}

func TestFileStorePrune(t *testing.T) {
	codec, store := newTestCodec(t)
	ctx := context.Background()

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return old }
	oldCode, _, err := codec.Issue(ctx, "", testState())
	require.NoError(t, err)

	recent := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return recent }
	freshState := testState()
	freshState.Entries[0].Note = "fresh"
	freshCode, _, err := codec.Issue(ctx, "", freshState)
	require.NoError(t, err)

	deleted, err := codec.PruneOlderThan(ctx, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.Get(ctx, oldCode)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, freshCode)
	assert.NoError(t, err)
}

func TestRestore(t *testing.T) {
	snap := &Snapshot{
		TargetVersion: "1.20.1",
		Loader:        "fabric",
		Items: []Item{
			{ID: "sodium", Title: "Sodium", IsSelected: true, Note: "fast"},
			{ID: "fabric-api", Title: "Fabric API", IsDependency: true},
			{ID: "custom-1", Title: "My Pack", IsCustom: true, CustomURL: "https://example.com"},
		},
	}

	state := Restore(snap)
	require.Len(t, state.Entries, 3)
	assert.Equal(t, "1.20.1", state.TargetVersion)
	assert.Equal(t, list.StatusPending, state.Entries[0].Status)
	assert.True(t, state.IsSelected("sodium"))
	assert.True(t, state.Entries[1].IsDependency)
	assert.Equal(t, list.StatusCustom, state.Entries[2].Status)
	assert.Equal(t, list.VersionNone, state.Entries[2].CurrentVersion)
}

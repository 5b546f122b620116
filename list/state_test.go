package list

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemove(t *testing.T) {
	s := NewState("1.20.1", "fabric")

	assert.True(t, s.Add("sodium", ""))
	assert.False(t, s.Add("sodium", ""), "duplicate add must be rejected")
	assert.True(t, s.Has("sodium"))

	e := s.Entry("sodium")
	require.NotNil(t, e)
	assert.Equal(t, StatusPending, e.Status)
	assert.Equal(t, VersionUnknown, e.CurrentVersion)
	assert.Equal(t, VersionNone, e.TargetVersion)

	assert.True(t, s.Remove("sodium"))
	assert.False(t, s.Remove("sodium"))
	assert.False(t, s.Has("sodium"))
}

func TestAddCustom(t *testing.T) {
	s := NewState("1.20.1", "fabric")
	id := s.AddCustom("My Datapack", "https://example.com/pack.zip", "hand-rolled")

	e := s.Entry(id)
	require.NotNil(t, e)
	assert.Equal(t, StatusCustom, e.Status)
	assert.Equal(t, VersionNone, e.CurrentVersion)
	assert.Equal(t, VersionNone, e.TargetVersion)
	assert.Equal(t, SourceCustom, e.Source)
	assert.True(t, e.IsCustom)
	assert.Equal(t, "https://example.com/pack.zip", e.CustomURL)

	// A second custom entry must get a distinct id.
	id2 := s.AddCustom("Other", "", "")
	assert.NotEqual(t, id, id2)
}

func TestSelectionPrunedOnRemove(t *testing.T) {
	s := NewState("1.20.1", "fabric")
	s.Add("sodium", "")
	s.Add("lithium", "")
	s.SetSelected("sodium", true)
	s.SetSelected("lithium", true)

	s.Remove("sodium")

	assert.False(t, s.IsSelected("sodium"))
	assert.True(t, s.IsSelected("lithium"))
}

func TestSetSelectedUnknownIDIgnored(t *testing.T) {
	s := NewState("1.20.1", "fabric")
	s.SetSelected("ghost", true)
	assert.False(t, s.IsSelected("ghost"))
	assert.Empty(t, s.Selected)
}

func TestTogglePaused(t *testing.T) {
	s := NewState("1.20.1", "fabric")
	s.Add("sodium", "")

	require.True(t, s.TogglePaused("sodium"))
	e := s.Entry("sodium")
	assert.True(t, e.Paused)
	assert.Equal(t, StatusPaused, e.Status)

	require.True(t, s.TogglePaused("sodium"))
	e = s.Entry("sodium")
	assert.False(t, e.Paused)
	assert.Equal(t, StatusPending, e.Status)

	// Custom entries cannot be paused.
	id := s.AddCustom("note", "", "")
	assert.False(t, s.TogglePaused(id))
}

func TestMergeReplacesByIDKeepingOrder(t *testing.T) {
	s := NewState("1.20.1", "fabric")
	s.Add("a", "")
	s.Add("b", "")
	s.Add("c", "")

	s.Merge([]Entry{
		{ID: "c", Title: "C", Status: StatusResolvable, Filename: "c.jar"},
		{ID: "a", Title: "A", Status: StatusMissing},
	})

	require.Len(t, s.Entries, 3)
	assert.Equal(t, "a", s.Entries[0].ID)
	assert.Equal(t, StatusMissing, s.Entries[0].Status)
	assert.Equal(t, "b", s.Entries[1].ID)
	assert.Equal(t, StatusPending, s.Entries[1].Status)
	assert.Equal(t, "c", s.Entries[2].ID)
	assert.Equal(t, "c.jar", s.Entries[2].Filename)
}

func TestAppendSkipsExisting(t *testing.T) {
	s := NewState("1.20.1", "fabric")
	s.Add("a", "")

	s.Append([]Entry{
		{ID: "a", Title: "dup"},
		{ID: "x", Title: "X", IsDependency: true},
	})

	require.Len(t, s.Entries, 2)
	assert.NotEqual(t, "dup", s.Entries[0].Title)
	assert.Equal(t, "x", s.Entries[1].ID)
}

func TestCountsAndActive(t *testing.T) {
	s := NewState("1.20.1", "fabric")
	s.Add("a", "")
	s.Add("b", "")
	s.Add("c", "")
	s.TogglePaused("b")
	s.Entries[2].Status = StatusMissing

	counts := s.CountsByStatus()
	assert.Equal(t, 1, counts[StatusPending])
	assert.Equal(t, 1, counts[StatusPaused])
	assert.Equal(t, 1, counts[StatusMissing])

	active := s.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)
}

func TestStatusTones(t *testing.T) {
	tests := []struct {
		status Status
		tone   Tone
	}{
		{StatusResolvable, ToneSuccess},
		{StatusCustom, ToneAccent},
		{StatusMissing, ToneDanger},
		{StatusPending, ToneWarning},
		{StatusPaused, ToneWarning},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.tone, tt.status.Tone())
		})
	}
}

func TestExport(t *testing.T) {
	s := NewState("1.20.1", "fabric")
	s.Add("sodium", "")
	s.Add("oldmod", "")
	s.Add("unselected", "")
	s.Merge([]Entry{
		{ID: "sodium", Title: "Sodium", Status: StatusResolvable, Filename: "sodium-0.5.jar"},
		{ID: "oldmod", Title: "OldMod", Status: StatusMissing},
	})
	s.SetSelected("sodium", true)
	s.SetSelected("oldmod", true)

	assert.Equal(t, []string{"sodium-0.5.jar", "OldMod(version missing)"}, s.Export())
}

func TestStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/list.json")

	s := NewState("1.20.1", "fabric")
	s.Add("sodium", "perf")
	s.SetSelected("sodium", true)

	require.NoError(t, store.Save(s))

	loaded, err := store.Load("x", "y")
	require.NoError(t, err)
	assert.Equal(t, "1.20.1", loaded.TargetVersion)
	assert.Equal(t, "fabric", loaded.Loader)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, "sodium", loaded.Entries[0].ID)
	assert.True(t, loaded.IsSelected("sodium"))
}

func TestStoreLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/list.json")

	s, err := store.Load("1.21.1", "neoforge")
	require.NoError(t, err)
	assert.Equal(t, "1.21.1", s.TargetVersion)
	assert.Equal(t, "neoforge", s.Loader)
	assert.Empty(t, s.Entries)
}

func TestStoreLoadPrunesStaleSelection(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/list.json", []byte(
		`{"targetVersion":"1.20.1","loader":"fabric","entries":[{"id":"a","title":"A","status":"pending"}],"selected":{"a":true,"gone":true}}`,
	), 0644))

	store := NewStore(fs, "/data/list.json")
	s, err := store.Load("", "")
	require.NoError(t, err)
	assert.True(t, s.IsSelected("a"))
	assert.False(t, s.IsSelected("gone"))
}

package cmd

import (
	"testing"

	"github.com/edward9487/minecraft-mod-converter/modrinth"
)

// TestSearchModelStaleDebounce tests that a debounce tick from a superseded
// keystroke does not trigger a search
func TestSearchModelStaleDebounce(t *testing.T) {
	m := SearchModel{seq: 3}

	updated, cmd := m.Update(searchDebounceMsg{seq: 2})
	if cmd != nil {
		t.Error("stale debounce tick should not produce a command")
	}
	if updated.(SearchModel).loading {
		t.Error("stale debounce tick should not start loading")
	}
}

// TestSearchModelStaleResults tests that results for a superseded query are
// discarded
func TestSearchModelStaleResults(t *testing.T) {
	m := SearchModel{
		seq:  5,
		hits: []modrinth.SearchHit{{ProjectID: "AANobbMI", Title: "Sodium"}},
	}

	stale := searchResultsMsg{
		seq:  4,
		hits: []modrinth.SearchHit{{ProjectID: "other", Title: "Other"}},
	}
	updated, _ := m.Update(stale)

	got := updated.(SearchModel)
	if len(got.hits) != 1 || got.hits[0].Title != "Sodium" {
		t.Error("stale results should not overwrite the current hits")
	}
}

// TestSearchModelCurrentResults tests that results matching the current
// sequence replace the hits and clamp the cursor
func TestSearchModelCurrentResults(t *testing.T) {
	m := SearchModel{
		seq:     5,
		cursor:  4,
		loading: true,
		hits:    make([]modrinth.SearchHit, 5),
	}

	fresh := searchResultsMsg{
		seq:  5,
		hits: []modrinth.SearchHit{{ProjectID: "AANobbMI", Title: "Sodium"}},
	}
	updated, _ := m.Update(fresh)

	got := updated.(SearchModel)
	if got.loading {
		t.Error("loading should clear once results arrive")
	}
	if len(got.hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(got.hits))
	}
	if got.cursor != 0 {
		t.Errorf("cursor should clamp to 0, got %d", got.cursor)
	}
}

// TestSearchModelEmptyQueryClearsHits tests that debouncing an emptied input
// clears the result list without searching
func TestSearchModelEmptyQueryClearsHits(t *testing.T) {
	m := SearchModel{
		seq:    2,
		cursor: 1,
		hits:   []modrinth.SearchHit{{Title: "A"}, {Title: "B"}},
	}

	updated, cmd := m.Update(searchDebounceMsg{seq: 2})
	if cmd != nil {
		t.Error("empty query should not produce a search command")
	}

	got := updated.(SearchModel)
	if len(got.hits) != 0 || got.cursor != 0 {
		t.Error("empty query should clear hits and reset the cursor")
	}
}

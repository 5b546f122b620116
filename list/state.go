package list

import (
	"github.com/google/uuid"
)

// SourceRegistry and SourceCustom are the values of Entry.Source.
const (
	SourceRegistry = "modrinth"
	SourceCustom   = "custom"
)

// State is the full mod list: the resolution target, the ordered entries
// and the set of selected entry ids. Selection survives re-resolution.
type State struct {
	TargetVersion string          `json:"targetVersion"`
	Loader        string          `json:"loader"`
	Entries       []Entry         `json:"entries"`
	Selected      map[string]bool `json:"selected"`
}

// NewState returns an empty list for the given target.
func NewState(targetVersion, loader string) *State {
	return &State{
		TargetVersion: targetVersion,
		Loader:        loader,
		Selected:      map[string]bool{},
	}
}

// Has reports whether an entry with the given id is present.
func (s *State) Has(id string) bool {
	return s.Entry(id) != nil
}

// Entry returns the entry with the given id, or nil.
func (s *State) Entry(id string) *Entry {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return &s.Entries[i]
		}
	}
	return nil
}

// Add appends a new pending registry entry. Adding an id that is already
// present is a no-op and returns false.
func (s *State) Add(id, note string) bool {
	if s.Has(id) {
		return false
	}
	s.Entries = append(s.Entries, Entry{
		ID:             id,
		Title:          id, // refreshed on the first resolution pass
		Source:         SourceRegistry,
		CurrentVersion: VersionUnknown,
		TargetVersion:  VersionNone,
		Status:         StatusPending,
		Note:           note,
	})
	return true
}

// AddCustom appends a user-authored entry that is never resolved against
// the registry. The id is a locally generated opaque value.
func (s *State) AddCustom(title, customURL, note string) string {
	id := "custom-" + uuid.NewString()
	s.Entries = append(s.Entries, Entry{
		ID:             id,
		Title:          title,
		Source:         SourceCustom,
		CurrentVersion: VersionNone,
		TargetVersion:  VersionNone,
		Status:         StatusCustom,
		Note:           note,
		IsCustom:       true,
		CustomURL:      customURL,
	})
	return id
}

// Remove deletes an entry and prunes it from the selection set. Returns
// false if the id was not present.
func (s *State) Remove(id string) bool {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			delete(s.Selected, id)
			return true
		}
	}
	return false
}

// SetSelected marks or unmarks an entry. Unknown ids are ignored so the
// selection set stays a subset of present entries.
func (s *State) SetSelected(id string, selected bool) {
	if !s.Has(id) {
		return
	}
	if s.Selected == nil {
		s.Selected = map[string]bool{}
	}
	if selected {
		s.Selected[id] = true
	} else {
		delete(s.Selected, id)
	}
}

// IsSelected reports whether the entry id is in the selection set.
func (s *State) IsSelected(id string) bool {
	return s.Selected[id]
}

// SelectedEntries returns the selected entries in list order.
func (s *State) SelectedEntries() []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if s.Selected[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// TogglePaused flips the paused flag. Pausing forces the status to paused;
// resuming returns the entry to pending so the next pass resolves it again.
func (s *State) TogglePaused(id string) bool {
	e := s.Entry(id)
	if e == nil || e.IsCustom {
		return false
	}
	e.Paused = !e.Paused
	if e.Paused {
		e.Status = StatusPaused
	} else {
		e.Status = StatusPending
	}
	return true
}

// Merge replaces entries by id with their freshly resolved values,
// preserving list order. Entries without a match in resolved are kept
// as they are. The caller serializes merges so the most recently started
// resolution wins.
func (s *State) Merge(resolved []Entry) {
	byID := make(map[string]Entry, len(resolved))
	for _, e := range resolved {
		byID[e.ID] = e
	}
	for i := range s.Entries {
		if e, ok := byID[s.Entries[i].ID]; ok {
			s.Entries[i] = e
		}
	}
}

// Append adds fully resolved dependency entries to the end of the list,
// skipping ids that are already present.
func (s *State) Append(entries []Entry) {
	for _, e := range entries {
		if !s.Has(e.ID) {
			s.Entries = append(s.Entries, e)
		}
	}
}

// Active returns the entries that take part in a resolution pass, i.e.
// everything that is not paused.
func (s *State) Active() []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if !e.Paused {
			out = append(out, e)
		}
	}
	return out
}

// CountsByStatus returns how many entries currently hold each status.
func (s *State) CountsByStatus() map[Status]int {
	counts := map[Status]int{}
	for _, e := range s.Entries {
		counts[e.Status]++
	}
	return counts
}

// Export produces the deliverable: one line per selected entry, in list
// order, each the resolved filename or a "(version missing)" placeholder.
func (s *State) Export() []string {
	lines := []string{}
	for _, e := range s.SelectedEntries() {
		lines = append(lines, e.ExportLine())
	}
	return lines
}

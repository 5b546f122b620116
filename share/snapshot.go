// Package share fingerprints list snapshots and maps them to short
// alphanumeric codes for sharing.
package share

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/edward9487/minecraft-mod-converter/list"
)

// Item is the stable projection of a list entry used for hashing and
// storage. Volatile fields (status, tone, filename) are deliberately
// excluded so re-resolution does not change the fingerprint.
type Item struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	IsDependency bool   `json:"isDependency"`
	IsSelected   bool   `json:"isSelected"`
	Note         string `json:"note"`
	IsCustom     bool   `json:"isCustom"`
	CustomURL    string `json:"customUrl"`
}

// Snapshot is the stored payload behind a share code.
type Snapshot struct {
	TargetVersion string    `json:"targetVersion"`
	Loader        string    `json:"loader"`
	Items         []Item    `json:"items"`
	ContentHash   string    `json:"contentHash"`
	SavedAt       time.Time `json:"savedAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Project builds the stable item projection of a list in list order.
func Project(state *list.State) []Item {
	items := make([]Item, 0, len(state.Entries))
	for _, e := range state.Entries {
		items = append(items, Item{
			ID:           e.ID,
			Title:        e.Title,
			IsDependency: e.IsDependency,
			IsSelected:   state.IsSelected(e.ID),
			Note:         e.Note,
			IsCustom:     e.IsCustom,
			CustomURL:    e.CustomURL,
		})
	}
	return items
}

// fingerprintPayload fixes the canonical field order of the hashed JSON.
// Struct marshalling emits fields in declaration order, so the fingerprint
// never depends on incidental key ordering.
type fingerprintPayload struct {
	TargetVersion string `json:"targetVersion"`
	Loader        string `json:"loader"`
	Items         []Item `json:"items"`
}

// Fingerprint computes the deterministic content hash of a list snapshot:
// hex-encoded SHA-256 over the canonical JSON of the projected state.
func Fingerprint(state *list.State) string {
	payload := fingerprintPayload{
		TargetVersion: state.TargetVersion,
		Loader:        state.Loader,
		Items:         Project(state),
	}
	// Marshalling a struct of strings, bools and slices cannot fail.
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Restore converts a stored snapshot back into a working list state.
// Statuses start pending (custom entries excepted) and are recomputed by
// the next resolution pass.
func Restore(snap *Snapshot) *list.State {
	state := list.NewState(snap.TargetVersion, snap.Loader)
	for _, item := range snap.Items {
		status := list.StatusPending
		source := list.SourceRegistry
		current := list.VersionUnknown
		if item.IsCustom {
			status = list.StatusCustom
			source = list.SourceCustom
			current = list.VersionNone
		}
		state.Entries = append(state.Entries, list.Entry{
			ID:             item.ID,
			Title:          item.Title,
			Source:         source,
			CurrentVersion: current,
			TargetVersion:  list.VersionNone,
			Status:         status,
			IsDependency:   item.IsDependency,
			Note:           item.Note,
			IsCustom:       item.IsCustom,
			CustomURL:      item.CustomURL,
		})
		if item.IsSelected {
			state.SetSelected(item.ID, true)
		}
	}
	return state
}

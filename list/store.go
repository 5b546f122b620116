package list

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Store persists the working list as a JSON file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore returns a store writing to path on the given filesystem.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Load reads the working list. A missing file yields an empty list with
// the provided target defaults instead of an error.
func (st *Store) Load(defaultVersion, defaultLoader string) (*State, error) {
	data, err := afero.ReadFile(st.fs, st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(defaultVersion, defaultLoader), nil
		}
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse list file: %w", err)
	}
	if state.Selected == nil {
		state.Selected = map[string]bool{}
	}
	// Drop selections whose entries are gone; the selection set must stay
	// a subset of present entry ids.
	for id := range state.Selected {
		if state.Entry(id) == nil {
			delete(state.Selected, id)
		}
	}
	return &state, nil
}

// Save writes the working list, replacing the previous file.
func (st *Store) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode list state: %w", err)
	}
	if err := afero.WriteFile(st.fs, st.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write list file: %w", err)
	}
	return nil
}

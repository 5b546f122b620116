package resolver

import (
	"context"

	"github.com/edward9487/minecraft-mod-converter/list"
)

// Expansion is the outcome of a dependency-completion pass: fully resolved
// entries to append and the ids whose selection must be set after insertion.
type Expansion struct {
	Entries  []list.Entry
	Selected []string
}

// Expand collects the required dependencies declared by a freshly resolved
// batch, drops those already in the list, dedupes the rest and resolves
// them. A dependency is selected if any parent that declares it is
// selected. Expansion is one hop: dependencies of the new entries are not
// expanded in the same pass.
func (r *Resolver) Expand(ctx context.Context, resolved []list.Entry, state *list.State, progress func(list.Entry)) (Expansion, error) {
	seen := map[string]bool{}
	selectSet := map[string]bool{}
	var pending []list.Entry

	for _, parent := range resolved {
		parentSelected := state.IsSelected(parent.ID)
		for _, dep := range parent.Dependencies {
			if state.Has(dep.ID) {
				continue
			}
			if parentSelected {
				// OR across all requesting parents, so this applies even
				// when another parent already queued the dependency.
				selectSet[dep.ID] = true
			}
			if seen[dep.ID] {
				continue
			}
			seen[dep.ID] = true
			pending = append(pending, list.Entry{
				ID:             dep.ID,
				Title:          dep.Title,
				Source:         list.SourceRegistry,
				CurrentVersion: list.VersionUnknown,
				TargetVersion:  list.VersionNone,
				Status:         list.StatusPending,
				IsDependency:   true,
			})
		}
	}

	if len(pending) == 0 {
		return Expansion{}, nil
	}

	entries, err := r.ResolveAll(ctx, pending, state.TargetVersion, state.Loader, progress)
	if err != nil {
		return Expansion{}, err
	}

	selected := make([]string, 0, len(selectSet))
	for _, e := range entries {
		if selectSet[e.ID] {
			selected = append(selected, e.ID)
		}
	}

	return Expansion{Entries: entries, Selected: selected}, nil
}

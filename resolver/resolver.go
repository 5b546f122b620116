// Package resolver decides, for every list entry, whether a build exists
// for the target game version and loader, and completes the list with the
// required dependencies those builds declare.
package resolver

import (
	"context"

	"github.com/edward9487/minecraft-mod-converter/list"
	"github.com/edward9487/minecraft-mod-converter/modrinth"
	"github.com/edward9487/minecraft-mod-converter/pool"

	"go.uber.org/zap"
)

// DefaultConcurrency is the registry fan-out ceiling for a resolution pass.
const DefaultConcurrency = 10

// Registry is the slice of the Modrinth client the resolver consumes.
type Registry interface {
	GetProject(ctx context.Context, id string) (*modrinth.Project, error)
	GetProjectVersions(ctx context.Context, id, gameVersion, loader string) ([]modrinth.Version, error)
	GetAllProjectVersions(ctx context.Context, id string) ([]modrinth.Version, error)
}

// Resolver resolves list entries against the registry.
type Resolver struct {
	reg   Registry
	log   *zap.SugaredLogger
	limit int
}

// New creates a resolver. limit <= 0 falls back to DefaultConcurrency.
func New(reg Registry, log *zap.SugaredLogger, limit int) *Resolver {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Resolver{reg: reg, log: log, limit: limit}
}

// ResolveEntry resolves a single entry against (targetVersion, loader) and
// returns a new value; the input is never mutated. Network failures degrade
// the entry to missing rather than surfacing an error, so a batch pass is
// never aborted by one flaky lookup.
func (r *Resolver) ResolveEntry(ctx context.Context, e list.Entry, targetVersion, loader string) list.Entry {
	if e.Paused {
		// Paused entries keep their last known attributes and skip the
		// registry entirely.
		return e
	}

	if e.IsCustom {
		e.Status = list.StatusCustom
		e.TargetVersion = list.VersionNone
		e.CurrentVersion = list.VersionNone
		e.Filename = ""
		e.Dependencies = nil
		return e
	}

	// Refresh display metadata. Failures here are non-fatal: the entry
	// keeps whatever it had from a previous pass.
	if project, err := r.reg.GetProject(ctx, e.ID); err == nil {
		if project.Title != "" {
			e.Title = project.Title
		}
		if n := len(project.GameVersions); n > 0 {
			e.CurrentVersion = project.GameVersions[n-1]
		}
	} else {
		r.log.Debugw("Project metadata refresh failed, keeping prior values",
			zap.String("id", e.ID), zap.Error(err))
	}

	versions, err := r.reg.GetProjectVersions(ctx, e.ID, targetVersion, loader)
	if err != nil {
		// A transport failure on the filtered query falls through to the
		// unfiltered fallback exactly like a zero-match result.
		r.log.Warnw("Filtered version query failed",
			zap.String("id", e.ID), zap.String("target", targetVersion), zap.Error(err))
		versions = nil
	}

	if len(versions) > 0 {
		match := versions[0]
		e.Status = list.StatusResolvable
		e.TargetVersion = targetVersion
		e.LastSupportedVersion = ""
		if f := findPrimaryFile(match); f != nil {
			e.Filename = f.Filename
		} else {
			e.Filename = ""
		}
		e.Dependencies = requiredDependencies(match)
		return e
	}

	// No build for the target: surface as missing, never substitute an
	// older build. Report the newest game version the project does support.
	e.Status = list.StatusMissing
	e.TargetVersion = list.VersionNone
	e.Filename = ""
	e.Dependencies = nil

	all, err := r.reg.GetAllProjectVersions(ctx, e.ID)
	if err != nil || len(all) == 0 {
		if err != nil {
			r.log.Warnw("Unfiltered version query failed",
				zap.String("id", e.ID), zap.Error(err))
		}
		e.LastSupportedVersion = ""
		return e
	}
	e.LastSupportedVersion = latestSupportedVersion(all)
	return e
}

// ResolveAll resolves entries through the bounded runner, preserving input
// order. progress, if non-nil, is called from worker goroutines with each
// finished entry and must be safe for concurrent use.
func (r *Resolver) ResolveAll(ctx context.Context, entries []list.Entry, targetVersion, loader string, progress func(list.Entry)) ([]list.Entry, error) {
	return pool.Map(ctx, entries, r.limit, func(ctx context.Context, e list.Entry) (list.Entry, error) {
		out := r.ResolveEntry(ctx, e, targetVersion, loader)
		if progress != nil {
			progress(out)
		}
		return out, nil
	})
}

// findPrimaryFile locates the primary file in a version, or the first file
// if no primary is marked.
func findPrimaryFile(v modrinth.Version) *modrinth.File {
	for i := range v.Files {
		if v.Files[i].Primary {
			return &v.Files[i]
		}
	}
	if len(v.Files) > 0 {
		return &v.Files[0]
	}
	return nil
}

// requiredDependencies extracts the required-type dependency references of
// a version. Optional, incompatible and embedded records are ignored, as
// are records without a project id (version-only references).
func requiredDependencies(v modrinth.Version) []list.DependencyRef {
	var refs []list.DependencyRef
	for _, d := range v.Dependencies {
		if d.DependencyType != modrinth.DependencyRequired || d.ProjectID == "" {
			continue
		}
		refs = append(refs, list.DependencyRef{ID: d.ProjectID, Title: d.ProjectID})
	}
	return refs
}

// latestSupportedVersion returns the newest supported game version of the
// most recently published version in the set. Ties and absent dates keep
// the earlier element.
func latestSupportedVersion(versions []modrinth.Version) string {
	newest := versions[0]
	for _, v := range versions[1:] {
		if v.DatePublished.After(newest.DatePublished) {
			newest = v
		}
	}
	if n := len(newest.GameVersions); n > 0 {
		return newest.GameVersions[n-1]
	}
	return ""
}

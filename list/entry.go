package list

// Status of a list entry after the most recent resolution pass.
type Status string

const (
	StatusPending    Status = "pending"
	StatusResolvable Status = "resolvable"
	StatusMissing    Status = "missing"
	StatusPaused     Status = "paused"
	StatusCustom     Status = "custom"
)

// Tone is the presentation severity derived from a status.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneAccent  Tone = "accent"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// VersionNone is the sentinel used where an entry has no meaningful
// version (custom entries, unresolved targets).
const VersionNone = "-"

// VersionUnknown is the initial value of CurrentVersion before the first
// metadata refresh.
const VersionUnknown = "unknown"

// DependencyRef is one required dependency declared by an entry's resolved
// version.
type DependencyRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Entry is one mod (or custom note) in the list.
type Entry struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	Source               string          `json:"source"` // registry name or "custom"
	CurrentVersion       string          `json:"currentVersion"`
	TargetVersion        string          `json:"targetVersion"`
	Status               Status          `json:"status"`
	Paused               bool            `json:"paused"`
	LastSupportedVersion string          `json:"lastSupportedVersion,omitempty"`
	Filename             string          `json:"filename,omitempty"`
	Dependencies         []DependencyRef `json:"dependencies,omitempty"`
	IsDependency         bool            `json:"isDependency"`
	Note                 string          `json:"note,omitempty"`
	IsCustom             bool            `json:"isCustom"`
	CustomURL            string          `json:"customUrl,omitempty"`
}

// Tone returns the presentation severity for the entry's status.
func (s Status) Tone() Tone {
	switch s {
	case StatusResolvable:
		return ToneSuccess
	case StatusCustom:
		return ToneAccent
	case StatusMissing:
		return ToneDanger
	default: // pending, paused
		return ToneWarning
	}
}

// ExportLine is the artifact line for the entry: the resolved build
// filename, or "<title>(version missing)" when no build is available.
func (e Entry) ExportLine() string {
	if e.Filename != "" {
		return e.Filename
	}
	return e.Title + "(version missing)"
}

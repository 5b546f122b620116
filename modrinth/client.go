package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/edward9487/minecraft-mod-converter/config"
)

const (
	modrinthAPIURL = "https://api.modrinth.com/v2"
	defaultTimeout = 5 * time.Second
)

// Client handles communication with the Modrinth API.
type Client struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a new Modrinth API client using the provided configuration.
func NewClient(cfg config.Config) (*Client, error) {
	if cfg.UserAgent == "" {
		// Should be handled by LoadConfig default, but double-check
		return nil, fmt.Errorf("USERAGENT is not configured")
	}

	return &Client{
		BaseURL:   modrinthAPIURL,
		APIKey:    cfg.ModrinthAPIKey,
		UserAgent: cfg.UserAgent,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

func (c *Client) makeRequest(ctx context.Context, method, path string, queryParams url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if queryParams != nil {
		req.URL.RawQuery = queryParams.Encode()
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Try to read body for more error info, but don't fail if it's unreadable
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api request failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode json response: %w", err)
		}
	}

	return nil
}

// GetProject retrieves details for a specific project.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var project Project
	err := c.makeRequest(ctx, "GET", fmt.Sprintf("/project/%s", id), nil, &project)
	if err != nil {
		return nil, fmt.Errorf("failed to get project '%s': %w", id, err)
	}
	return &project, nil
}

// GetProjectVersions retrieves versions for a project, filtered by game version and loader.
func (c *Client) GetProjectVersions(ctx context.Context, id, gameVersion, loader string) ([]Version, error) {
	params := url.Values{}
	// Construct JSON array strings manually to avoid Sprintf issues
	params.Add("game_versions", "[\""+gameVersion+"\"]")
	params.Add("loaders", "[\""+loader+"\"]")

	var versions []Version
	err := c.makeRequest(ctx, "GET", fmt.Sprintf("/project/%s/version", id), params, &versions)
	if err != nil {
		return nil, fmt.Errorf("failed to get project versions for '%s': %w", id, err)
	}
	return versions, nil
}

// GetAllProjectVersions retrieves every version of a project with no
// game-version or loader filter. Used as the fallback when the filtered
// query comes back empty.
func (c *Client) GetAllProjectVersions(ctx context.Context, id string) ([]Version, error) {
	var versions []Version
	err := c.makeRequest(ctx, "GET", fmt.Sprintf("/project/%s/version", id), nil, &versions)
	if err != nil {
		return nil, fmt.Errorf("failed to get all project versions for '%s': %w", id, err)
	}
	return versions, nil
}

// SearchProjects runs a text search against the registry.
func (c *Client) SearchProjects(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	params := url.Values{}
	params.Add("query", query)
	if limit > 0 {
		params.Add("limit", fmt.Sprintf("%d", limit))
	}

	var result searchResult
	err := c.makeRequest(ctx, "GET", "/search", params, &result)
	if err != nil {
		return nil, fmt.Errorf("search for '%s' failed: %w", query, err)
	}
	return result.Hits, nil
}

// GetGameVersions lists the game versions the registry knows about.
func (c *Client) GetGameVersions(ctx context.Context) ([]GameVersion, error) {
	var versions []GameVersion
	err := c.makeRequest(ctx, "GET", "/tag/game_version", nil, &versions)
	if err != nil {
		return nil, fmt.Errorf("failed to get game versions: %w", err)
	}
	return versions, nil
}

// GetLoaders lists the mod loaders the registry knows about.
func (c *Client) GetLoaders(ctx context.Context) ([]Loader, error) {
	var loaders []Loader
	err := c.makeRequest(ctx, "GET", "/tag/loader", nil, &loaders)
	if err != nil {
		return nil, fmt.Errorf("failed to get loaders: %w", err)
	}
	return loaders, nil
}

// --- Structs for API Responses ---

// Project represents a Modrinth project
type Project struct {
	Slug         string   `json:"slug"`
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	IconURL      string   `json:"icon_url"`
	GameVersions []string `json:"game_versions"` // Supported game versions, oldest first
	Updated      string   `json:"updated"`
	ProjectType  string   `json:"project_type"` // e.g., "mod"
}

// Version represents a Modrinth project version.
type Version struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"project_id"`
	Name          string       `json:"name"`
	VersionNumber string       `json:"version_number"`
	GameVersions  []string     `json:"game_versions"`
	Loaders       []string     `json:"loaders"`
	DatePublished time.Time    `json:"date_published"`
	Files         []File       `json:"files"`
	Dependencies  []Dependency `json:"dependencies"`
}

// File represents a file within a Modrinth version.
type File struct {
	Filename string            `json:"filename"`
	URL      string            `json:"url"`
	Primary  bool              `json:"primary"`
	Size     int               `json:"size"`
	Hashes   map[string]string `json:"hashes"` // e.g., {"sha512": "...", "sha1": "..."}
}

// Dependency type tags as returned by the registry.
const (
	DependencyRequired     = "required"
	DependencyOptional     = "optional"
	DependencyIncompatible = "incompatible"
	DependencyEmbedded     = "embedded"
)

// Dependency represents a declared dependency of a version.
type Dependency struct {
	ProjectID      string `json:"project_id"`
	VersionID      string `json:"version_id"`
	DependencyType string `json:"dependency_type"` // required, optional, incompatible, embedded
}

// SearchHit is one result of a project search.
type SearchHit struct {
	ProjectID string `json:"project_id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	IconURL   string `json:"icon_url"`
}

type searchResult struct {
	Hits      []SearchHit `json:"hits"`
	TotalHits int         `json:"total_hits"`
}

// GameVersion is one entry of the /tag/game_version list.
type GameVersion struct {
	Version     string `json:"version"`
	VersionType string `json:"version_type"` // release, snapshot, ...
	Major       bool   `json:"major"`
}

// Loader is one entry of the /tag/loader list.
type Loader struct {
	Name                  string   `json:"name"`
	SupportedProjectTypes []string `json:"supported_project_types"`
}

package cmd

import (
	"testing"

	"github.com/edward9487/minecraft-mod-converter/config"
)

func TestShareURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		code     string
		expected string
	}{
		{"with base url", "https://modlist.example.com", "AB12CD34", "https://modlist.example.com?list=AB12CD34"},
		{"without base url", "", "AB12CD34", "AB12CD34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{ShareBaseURL: tt.baseURL}
			result := shareURL(cfg, tt.code)
			if result != tt.expected {
				t.Errorf("shareURL(%q, %q) = %q, want %q", tt.baseURL, tt.code, result, tt.expected)
			}
		})
	}
}

func TestNewShareStoreUnknownBackend(t *testing.T) {
	cfg := config.Config{ShareBackend: "carrier-pigeon"}
	if _, err := newShareStore(cfg); err == nil {
		t.Error("newShareStore() should reject an unknown backend")
	}
}

package suites

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSuitesAreValid(t *testing.T) {
	reg, err := NewRegistry(DefaultSuites())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	enabled, err := reg.Enabled()
	if err != nil {
		t.Fatalf("Enabled: %v", err)
	}
	if len(enabled) != len(DefaultSuites()) {
		t.Fatalf("expected all default suites enabled, got %d", len(enabled))
	}

	// both parametrized groups of the authenticated limit contract must be present
	for _, id := range []string{"search-up-to-100-key", "search-more-than-100-key"} {
		if _, ok := reg.ByID(id); !ok {
			t.Fatalf("missing suite %s", id)
		}
	}

	s, _ := reg.ByID("search-up-to-10-no-key")
	if !s.KnownIssue {
		t.Fatalf("expected known issue flag on %s", s.ID)
	}
}

func TestLoadRegistryYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suites.yaml")
	content := `
suites:
  - id: limits
    type: Search_Limit
    api_key: true
    headers:
      Content-Type: application/json
      X-Empty: " "
    config:
      limits: [11, 25]
      expect_count: 10
  - id: disabled
    type: base
    enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write suites file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled, _ := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "limits" {
		t.Fatalf("unexpected enabled suites %#v", enabled)
	}
	s := enabled[0]
	if s.Type != TypeSearchLimit || s.Name != "limits" || !s.APIKey {
		t.Fatalf("suite not sanitized: %#v", s)
	}
	if _, ok := s.Headers["X-Empty"]; ok {
		t.Fatalf("empty header should be dropped")
	}

	limits, err := ConfigInts(s, ConfigLimitsKey)
	if err != nil || len(limits) != 2 || limits[1] != 25 {
		t.Fatalf("ConfigInts = %v, %v", limits, err)
	}
	expect, err := ConfigInt(s, ConfigExpectCountKey, 0)
	if err != nil || expect != 10 {
		t.Fatalf("ConfigInt = %d, %v", expect, err)
	}

	// an explicit id list bypasses the enabled flag
	picked, err := reg.Enabled("disabled")
	if err != nil || len(picked) != 1 {
		t.Fatalf("Enabled(disabled) = %v, %v", picked, err)
	}
	if _, err := reg.Enabled("nope"); err == nil {
		t.Fatalf("expected unknown suite error")
	}
}

func TestLoadRegistryJSONNumbers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suites.json")
	content := `{"suites":[{"id":"s","type":"search_limit","config":{"limits":[1,2.0]}}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write suites file: %v", err)
	}
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	s, _ := reg.ByID("s")
	limits, err := ConfigInts(s, ConfigLimitsKey)
	if err != nil || len(limits) != 2 || limits[0] != 1 || limits[1] != 2 {
		t.Fatalf("ConfigInts = %v, %v", limits, err)
	}
}

func TestNewRegistryRejectsInvalidSuites(t *testing.T) {
	tests := []struct {
		name   string
		suites []Suite
	}{
		{name: "empty", suites: nil},
		{name: "missing id", suites: []Suite{{Type: TypeBase}}},
		{name: "unknown type", suites: []Suite{{ID: "x", Type: "teleport"}}},
		{name: "duplicate", suites: []Suite{{ID: "x", Type: TypeBase}, {ID: "x", Type: TypeBreeds}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRegistry(tc.suites); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestConfigIntRejectsFractions(t *testing.T) {
	s := Suite{ID: "s", Config: map[string]any{"limit": 1.5}}
	if _, err := ConfigInt(s, "limit", 0); err == nil {
		t.Fatalf("expected error for fractional value")
	}
	if got, _ := ConfigInt(s, "missing", 7); got != 7 {
		t.Fatalf("expected fallback, got %d", got)
	}
}

func TestBundledSuitesFileMatchesDefaults(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "suites.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	defaults := DefaultSuites()
	all := reg.All()
	if len(all) != len(defaults) {
		t.Fatalf("configs/suites.yaml has %d suites, defaults have %d", len(all), len(defaults))
	}
	for i, want := range defaults {
		got := all[i]
		if got.ID != want.ID || got.Type != want.Type || got.APIKey != want.APIKey || got.KnownIssue != want.KnownIssue {
			t.Fatalf("suite[%d] = %s/%s, want %s/%s", i, got.ID, got.Type, want.ID, want.Type)
		}
		gotLimits, err := ConfigInts(got, ConfigLimitsKey)
		if err != nil {
			t.Fatalf("ConfigInts(%s): %v", got.ID, err)
		}
		wantLimits, _ := ConfigInts(want, ConfigLimitsKey)
		if len(gotLimits) != len(wantLimits) {
			t.Fatalf("suite %s limits = %v, want %v", got.ID, gotLimits, wantLimits)
		}
	}
}

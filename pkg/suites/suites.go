package suites

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Package suites contains the declarative contract suite definitions (YAML/JSON) and helpers.

// Suite is one group of contract cases sharing a check type and client setup.
type Suite struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Type       string            `json:"type" yaml:"type"`
	APIKey     bool              `json:"api_key" yaml:"api_key"`
	KnownIssue bool              `json:"known_issue" yaml:"known_issue"`
	Enabled    *bool             `json:"enabled" yaml:"enabled"`
	Headers    map[string]string `json:"headers" yaml:"headers"`
	Config     map[string]any    `json:"config" yaml:"config"`
}

type registryFile struct {
	Suites []Suite `json:"suites" yaml:"suites"`
}

// Registry holds validated suites in declaration order.
type Registry struct {
	mu     sync.RWMutex
	suites []Suite
	idx    map[string]Suite
}

// NewRegistry sanitizes and validates suites.
func NewRegistry(list []Suite) (*Registry, error) {
	if len(list) == 0 {
		return nil, errors.New("no suites defined")
	}

	reg := &Registry{
		suites: make([]Suite, len(list)),
		idx:    make(map[string]Suite, len(list)),
	}
	for i := range list {
		s := sanitizeSuite(list[i])
		if err := validateSuite(s); err != nil {
			return nil, fmt.Errorf("suite[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate suite id %q", s.ID)
		}
		reg.suites[i] = s
		reg.idx[s.ID] = s
	}
	return reg, nil
}

// LoadRegistry loads suites from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("suites file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suites file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read suites file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Suites) == 0 {
		return nil, errors.New("suites file contains no suites entries")
	}
	return NewRegistry(parsed.Suites)
}

// LoadOrDefault loads path when set and falls back to the built-in suites otherwise.
func LoadOrDefault(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return NewRegistry(DefaultSuites())
	}
	return LoadRegistry(path)
}

type unmarshalFn func([]byte, any) error

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registryFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("suites file format not recognized (expected YAML or JSON)")
}

func sanitizeSuite(s Suite) Suite {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	if s.Name == "" {
		s.Name = s.ID
	}
	if s.Enabled == nil {
		def := true
		s.Enabled = &def
	}
	if s.Config == nil {
		s.Config = map[string]any{}
	}
	if len(s.Headers) > 0 {
		headers := make(map[string]string, len(s.Headers))
		for k, v := range s.Headers {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k == "" || v == "" {
				continue
			}
			headers[k] = v
		}
		s.Headers = headers
	}
	return s
}

func validateSuite(s Suite) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.Type == "" {
		return fmt.Errorf("type is required for suite %q", s.ID)
	}
	if !knownType(s.Type) {
		return fmt.Errorf("unknown type %q for suite %q", s.Type, s.ID)
	}
	return nil
}

// All returns all suites in declaration order.
func (r *Registry) All() []Suite {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Suite, len(r.suites))
	copy(out, r.suites)
	return out
}

// ByID returns the suite with the given id.
func (r *Registry) ByID(id string) (Suite, bool) {
	if r == nil {
		return Suite{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.idx[strings.TrimSpace(id)]
	return s, ok
}

// Enabled returns the enabled suites, optionally restricted to ids.
func (r *Registry) Enabled(ids ...string) ([]Suite, error) {
	if len(ids) == 0 {
		out := make([]Suite, 0)
		for _, s := range r.All() {
			if s.EnabledValue() {
				out = append(out, s)
			}
		}
		return out, nil
	}

	out := make([]Suite, 0, len(ids))
	for _, id := range ids {
		s, ok := r.ByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown suite %q", id)
		}
		out = append(out, s)
	}
	return out, nil
}

// EnabledValue returns the enabled flag defaulting to true.
func (s Suite) EnabledValue() bool {
	if s.Enabled == nil {
		return true
	}
	return *s.Enabled
}

package contract

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/catapi-contract/pkg/suites"
)

// checkRegistry implements CheckRegistry keyed by suite type.
type checkRegistry struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewCheckRegistry builds a registry over the provided checks.
func NewCheckRegistry(checks ...Check) CheckRegistry {
	reg := &checkRegistry{checks: make(map[string]Check, len(checks))}
	for _, c := range checks {
		reg.register(c)
	}
	return reg
}

func (r *checkRegistry) register(c Check) {
	if c == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(c.Type()))
	if key == "" {
		return
	}
	r.mu.Lock()
	r.checks[key] = c
	r.mu.Unlock()
}

// CheckFor selects the check for the given suite based on its type.
func (r *checkRegistry) CheckFor(s suites.Suite) (Check, error) {
	if r == nil {
		return nil, fmt.Errorf("check registry is nil")
	}
	typ := strings.ToLower(strings.TrimSpace(s.Type))
	if typ == "" {
		return nil, fmt.Errorf("suite %q has no type", s.ID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.checks[typ]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("no check registered for suite %q (type %q)", s.ID, s.Type)
}

// DefaultCheckRegistry wires up every built-in check.
func DefaultCheckRegistry() CheckRegistry {
	return NewCheckRegistry(
		baseCheck{},
		searchRandomCheck{},
		searchLimitCheck{},
		searchPayloadCheck{},
		searchSourceCheck{},
		imageByIDCheck{},
		searchBreedsCheck{},
		searchPaginationCheck{},
		breedsCheck{},
		uploadCheck{},
		deleteForeignBreedCheck{},
	)
}

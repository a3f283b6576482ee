package suites

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Config keys understood by the contract checks.
const (
	ConfigLimitsKey       = "limits"
	ConfigExpectCountKey  = "expect_count"
	ConfigParamsKey       = "params"
	ConfigMinDimensionKey = "min_dimension"
	ConfigURLSuffixKey    = "url_suffix"
	ConfigFixtureKey      = "fixture"
	ConfigImageKey        = "image"
	ConfigSubIDKey        = "sub_id"
	ConfigPageKey         = "page"
	ConfigLimitKey        = "limit"
)

// ConfigString returns the trimmed string value for key or fallback.
func ConfigString(s Suite, key, fallback string) string {
	if raw, ok := s.Config[key]; ok {
		if val, ok := raw.(string); ok {
			if trimmed := strings.TrimSpace(val); trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}

// ConfigInt returns the integer value for key or fallback.
func ConfigInt(s Suite, key string, fallback int) (int, error) {
	raw, ok := s.Config[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	n, err := toInt(raw)
	if err != nil {
		return 0, fmt.Errorf("suite %q config %s: %w", s.ID, key, err)
	}
	return n, nil
}

// ConfigInts returns the integer list for key. YAML yields ints and JSON float64s; both are accepted.
func ConfigInts(s Suite, key string) ([]int, error) {
	raw, ok := s.Config[key]
	if !ok || raw == nil {
		return nil, nil
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []int:
		return append([]int(nil), v...), nil
	default:
		items = []any{v}
	}

	out := make([]int, 0, len(items))
	for i, item := range items {
		n, err := toInt(item)
		if err != nil {
			return nil, fmt.Errorf("suite %q config %s[%d]: %w", s.ID, key, i, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// ConfigParams returns the nested map for key, or nil.
func ConfigParams(s Suite, key string) map[string]any {
	raw, ok := s.Config[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	}
	return nil
}

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported value %T", raw)
	}
}

package config

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ellemenno/loomtasks/internal/errors"
)

// Document is a decoded configuration file.
type Document map[string]any

// Get returns the value at a dotted key such as "display.width".
func (d Document) Get(key string) (any, bool) {
	var cur any = map[string]any(d)
	for _, part := range strings.Split(key, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetString returns the value at key formatted as a string.
func (d Document) GetString(key string) (string, bool) {
	v, ok := d.Get(key)
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Set stores value at a dotted key, creating intermediate tables. It fails
// when an intermediate key holds a non-table value.
func (d Document) Set(key string, value any) error {
	parts := strings.Split(key, ".")
	if slices.Contains(parts, "") {
		return errors.Newf("invalid key %q", key)
	}
	m := map[string]any(d)
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part]
		if !ok {
			child := map[string]any{}
			m[part] = child
			m = child
			continue
		}
		child, ok := asMap(next)
		if !ok {
			return errors.Newf("cannot set %q: %q is not a table", key, part)
		}
		m = child
	}
	m[parts[len(parts)-1]] = value
	return nil
}

// Keys returns every leaf key in dotted form, sorted.
func (d Document) Keys() []string {
	var keys []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			if child, ok := asMap(v); ok && len(child) > 0 {
				walk(prefix+k+".", child)
				continue
			}
			keys = append(keys, prefix+k)
		}
	}
	walk("", d)
	slices.Sort(keys)
	return keys
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	}
	return nil, false
}

// ParseValue interprets a command-line value as a YAML scalar, so "true",
// "42" and "1.5" become typed values while "sprint34" stays a string.
// Values that look like versions ("1.2.3") remain strings.
func ParseValue(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	switch v.(type) {
	case bool, int, float64:
		return v
	}
	return s
}

package fsx

import "strings"

// GetPath returns the value at a dotted path (e.g. "editor.rules") in a
// JSON-like map, and whether the full path resolved.
func GetPath(doc map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = doc
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// SetPath sets value at a dotted path in doc, creating intermediate maps as
// needed. Intermediate non-map values are replaced.
func SetPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// RemovePath deletes the key at a dotted path in doc. Removing an absent
// path is a no-op; intermediate maps are left in place.
func RemovePath(doc map[string]any, path string) {
	parts := strings.Split(path, ".")
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return
		}
		current = next
	}
	delete(current, parts[len(parts)-1])
}

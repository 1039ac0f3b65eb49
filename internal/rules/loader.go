package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Load reads every rule file (*.yaml, *.yml) in dir, validates each against
// the rule schema, and returns the definitions sorted by file name so the
// load order is deterministic. A missing directory yields no rules.
func Load(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rules directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var defs []*Definition
	seen := map[string]string{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		def, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[def.Meta.ID]; dup {
			return nil, fmt.Errorf("rule id %q defined in both %s and %s", def.Meta.ID, prev, name)
		}
		seen[def.Meta.ID] = name
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadFile reads and validates a single rule file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating rule file %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("rule file %s: %s", path, summarizeIssues(result.Issues))
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	if def.Meta.Severity == "" {
		def.Meta.Severity = SeveritySuggestion
	}
	return &def, nil
}

func summarizeIssues(issues []ValidationIssue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Path != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return strings.Join(parts, "; ")
}

//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rulekeep-labs/rulekeep/internal/project"
)

// setupProject creates an initialized project in a temp directory with the
// given tools enabled.
func setupProject(t *testing.T, tools []string) string {
	t.Helper()
	root := t.TempDir()
	if err := project.Init(root, tools); err != nil {
		t.Fatalf("initializing project: %v", err)
	}
	return root
}

// writeRule creates a rule file in the project's rules directory.
func writeRule(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(project.Dir(root), "rules", name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing rule %s: %v", name, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

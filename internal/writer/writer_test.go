package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rulekeep-labs/rulekeep/internal/fsx"
	"github.com/rulekeep-labs/rulekeep/internal/registry"
	"github.com/rulekeep-labs/rulekeep/internal/translator"
)

const testBlockID = "0d9f4c2a-7b31-4e6f-9a8c-2e5d7f1b3a60"

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return doc
}

func TestJSONWriterNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	w := &JSONWriter{}

	content := &translator.TranslatedContent{
		Format:       registry.FormatJSON,
		Instructions: "Test instructions",
	}
	opts := &Options{Keys: &registry.SchemaKeys{InstructionKey: "customInstructions"}}

	if err := w.Write(path, content, opts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	doc := readJSON(t, path)
	if doc["customInstructions"] != "Test instructions" {
		t.Errorf("customInstructions = %v", doc["customInstructions"])
	}
}

func TestJSONWriterPreservesExistingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"existing": "preserved", "another": 42}`), 0644); err != nil {
		t.Fatal(err)
	}

	w := &JSONWriter{}
	content := &translator.TranslatedContent{
		Format:     registry.FormatJSON,
		MCPServers: map[string]any{"srv": map[string]any{"command": "test"}},
	}
	opts := &Options{Keys: &registry.SchemaKeys{MCPKey: "mcp.servers"}}

	if err := w.Write(path, content, opts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	doc := readJSON(t, path)
	if doc["existing"] != "preserved" {
		t.Errorf("existing key lost: %v", doc)
	}
	if doc["another"] != float64(42) {
		t.Errorf("another key lost: %v", doc)
	}
	if got, ok := fsx.GetPath(doc, "mcp.servers.srv.command"); !ok || got != "test" {
		t.Errorf("mcp.servers not placed at dotted path: %v", doc)
	}
}

func TestJSONWriterRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	w := &JSONWriter{}
	content := &translator.TranslatedContent{Format: registry.FormatJSON, Instructions: "x"}
	opts := &Options{Keys: &registry.SchemaKeys{InstructionKey: "k"}}

	if err := w.Write(path, content, opts); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Error("malformed file was clobbered")
	}
}

func TestMarkdownWriterNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RULES.md")
	w := &MarkdownWriter{}

	content := &translator.TranslatedContent{Format: registry.FormatMarkdown, Instructions: "Managed text"}
	if err := w.Write(path, content, &Options{BlockID: testBlockID}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(got)
	if !strings.Contains(text, fsx.CommentHTML.StartMarker(testBlockID)) {
		t.Error("missing start marker")
	}
	if !strings.Contains(text, "Managed text") {
		t.Error("missing managed content")
	}
}

func TestMarkdownWriterPreservesUserContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RULES.md")
	if err := os.WriteFile(path, []byte("# My Rules\n\nCustom notes.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := &MarkdownWriter{}
	content := &translator.TranslatedContent{Format: registry.FormatMarkdown, Instructions: "Managed"}
	if err := w.Write(path, content, &Options{BlockID: testBlockID}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	text := string(got)
	if !strings.Contains(text, "# My Rules") || !strings.Contains(text, "Custom notes.") {
		t.Errorf("user content lost:\n%s", text)
	}
	if !strings.Contains(text, "Managed") {
		t.Errorf("managed section missing:\n%s", text)
	}
}

func TestMarkdownWriterNormalizesSectionAfterUserContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RULES.md")
	existing := "# Before\n\n" +
		fsx.CommentHTML.StartMarker(testBlockID) + "\nOld managed\n" + fsx.CommentHTML.EndMarker(testBlockID) +
		"\n\n# After\n"
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	w := &MarkdownWriter{}
	content := &translator.TranslatedContent{Format: registry.FormatMarkdown, Instructions: "New managed"}
	if err := w.Write(path, content, &Options{BlockID: testBlockID}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	text := string(got)

	if strings.Contains(text, "Old managed") {
		t.Error("old managed content survived")
	}
	if !strings.Contains(text, "# Before") || !strings.Contains(text, "# After") {
		t.Errorf("user content lost:\n%s", text)
	}
	if strings.Count(text, fsx.CommentHTML.StartMarker(testBlockID)) != 1 {
		t.Errorf("expected exactly one managed section:\n%s", text)
	}
	// The marker pair moves after all user content.
	if strings.Index(text, "# After") > strings.Index(text, fsx.CommentHTML.StartMarker(testBlockID)) {
		t.Errorf("managed section not normalized after user content:\n%s", text)
	}
}

func TestTextWriterFullReplacement(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cursorrules")
	if err := os.WriteFile(path, []byte("Old content"), 0644); err != nil {
		t.Fatal(err)
	}

	w := &TextWriter{}
	content := &translator.TranslatedContent{Format: registry.FormatText, Instructions: "New content"}
	if err := w.Write(path, content, nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "New content" {
		t.Errorf("got %q", got)
	}
}

func TestCanHandle(t *testing.T) {
	tests := []struct {
		writer Writer
		path   string
		want   bool
	}{
		{&JSONWriter{}, "/p/config.json", true},
		{&JSONWriter{}, "/p/rules.md", false},
		{&MarkdownWriter{}, "/p/rules.md", true},
		{&MarkdownWriter{}, "/p/doc.markdown", true},
		{&MarkdownWriter{}, "/p/config.json", false},
		{&TextWriter{}, "/p/.cursorrules", true},
		{&TextWriter{}, "/p/rules.txt", true},
		{&TextWriter{}, "/p/config.yaml", false},
		{&TextWriter{}, "/p/config.json", false},
	}
	for _, tt := range tests {
		if got := tt.writer.CanHandle(tt.path); got != tt.want {
			t.Errorf("CanHandle(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSelectorDispatch(t *testing.T) {
	s := NewSelector()

	tests := []struct {
		format registry.Format
		path   string
	}{
		{registry.FormatJSON, "/p/settings.json"},
		{registry.FormatMarkdown, "/p/CLAUDE.md"},
		{registry.FormatText, "/p/.windsurfrules"},
		{registry.FormatYAML, "/p/.aider.conf.yml"},
		{registry.FormatTOML, "/p/conf.toml"},
	}
	for _, tt := range tests {
		if s.ForFormat(tt.format) == nil {
			t.Errorf("no writer for format %q", tt.format)
		}
	}

	// Freeform formats fall back to full replacement.
	if _, ok := s.ForFormat(registry.FormatYAML).(*TextWriter); !ok {
		t.Error("yaml should use the text writer")
	}
	if _, ok := s.ForFormat(registry.FormatJSON).(*JSONWriter); !ok {
		t.Error("json should use the json writer")
	}
	if _, ok := s.ForFormat(registry.FormatMarkdown).(*MarkdownWriter); !ok {
		t.Error("markdown should use the markdown writer")
	}
}

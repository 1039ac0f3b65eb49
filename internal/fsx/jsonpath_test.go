package fsx

import "testing"

func TestSetPathCreatesIntermediates(t *testing.T) {
	doc := map[string]any{}
	SetPath(doc, "editor.rules.text", "be concise")

	got, ok := GetPath(doc, "editor.rules.text")
	if !ok {
		t.Fatal("path not found after SetPath")
	}
	if got != "be concise" {
		t.Errorf("got %v", got)
	}
}

func TestSetPathPreservesSiblings(t *testing.T) {
	doc := map[string]any{
		"editor": map[string]any{"fontSize": 14},
	}
	SetPath(doc, "editor.rules", "value")

	if got, _ := GetPath(doc, "editor.fontSize"); got != 14 {
		t.Errorf("sibling key lost: %v", got)
	}
	if got, _ := GetPath(doc, "editor.rules"); got != "value" {
		t.Errorf("new key missing: %v", got)
	}
}

func TestGetPathMissing(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": 1}}

	tests := []string{"a.c", "x", "a.b.c"}
	for _, path := range tests {
		if _, ok := GetPath(doc, path); ok {
			t.Errorf("GetPath(%q) unexpectedly resolved", path)
		}
	}
}

func TestRemovePath(t *testing.T) {
	doc := map[string]any{
		"editor": map[string]any{"fontSize": 14, "tabSize": 2},
	}
	RemovePath(doc, "editor.fontSize")

	if _, ok := GetPath(doc, "editor.fontSize"); ok {
		t.Error("key not removed")
	}
	if got, _ := GetPath(doc, "editor.tabSize"); got != 2 {
		t.Errorf("sibling removed: %v", got)
	}
}

func TestRemovePathAbsentIsNoop(t *testing.T) {
	doc := map[string]any{"a": 1}
	RemovePath(doc, "x.y.z")
	if got, _ := GetPath(doc, "a"); got != 1 {
		t.Errorf("doc mutated: %v", doc)
	}
}

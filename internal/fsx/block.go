package fsx

import (
	"fmt"
	"strings"
)

// CommentStyle selects the comment syntax used to render block markers.
type CommentStyle int

const (
	// CommentHTML renders markers as <!-- ... --> comments. Used for
	// markup-like formats (markdown, plain text instruction files).
	CommentHTML CommentStyle = iota
	// CommentHash renders markers as # comments. Used for line-oriented
	// formats (yaml, toml, shell-style configs).
	CommentHash
)

// StartMarker renders the opening marker for the managed block with the
// given stable identifier.
func (s CommentStyle) StartMarker(id string) string {
	switch s {
	case CommentHash:
		return fmt.Sprintf("# rulekeep:block:%s", id)
	default:
		return fmt.Sprintf("<!-- rulekeep:block:%s -->", id)
	}
}

// EndMarker renders the closing marker for the managed block with the
// given stable identifier.
func (s CommentStyle) EndMarker(id string) string {
	switch s {
	case CommentHash:
		return fmt.Sprintf("# /rulekeep:block:%s", id)
	default:
		return fmt.Sprintf("<!-- /rulekeep:block:%s -->", id)
	}
}

// ExtractBlock returns the content between the markers for id, and whether
// such a block exists in source. Returns an error if the start marker is
// present without a matching end marker.
func ExtractBlock(source, id string, style CommentStyle) (string, bool, error) {
	start := style.StartMarker(id)
	end := style.EndMarker(id)

	startIdx := strings.Index(source, start)
	if startIdx < 0 {
		return "", false, nil
	}
	rest := source[startIdx+len(start):]
	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return "", false, fmt.Errorf("managed block %s: start marker present but end marker missing", id)
	}
	return strings.TrimSpace(rest[:endIdx]), true, nil
}

// UpsertBlock replaces the managed block for id in source, or appends a new
// block after existing content when none exists. The marker pair stays
// stable across rewrites of the same logical block.
func UpsertBlock(source, id, content string, style CommentStyle) (string, error) {
	start := style.StartMarker(id)
	end := style.EndMarker(id)
	block := start + "\n" + content + "\n" + end

	startIdx := strings.Index(source, start)
	if startIdx < 0 {
		if strings.TrimSpace(source) == "" {
			return block + "\n", nil
		}
		return strings.TrimRight(source, "\n") + "\n\n" + block + "\n", nil
	}

	rest := source[startIdx+len(start):]
	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return "", fmt.Errorf("managed block %s: start marker present but end marker missing", id)
	}
	after := rest[endIdx+len(end):]
	return source[:startIdx] + block + after, nil
}

// RemoveBlock deletes the managed block for id from source, markers
// included. Removing an absent block is a no-op.
func RemoveBlock(source, id string, style CommentStyle) (string, error) {
	start := style.StartMarker(id)
	end := style.EndMarker(id)

	startIdx := strings.Index(source, start)
	if startIdx < 0 {
		return source, nil
	}
	rest := source[startIdx+len(start):]
	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return "", fmt.Errorf("managed block %s: start marker present but end marker missing", id)
	}
	after := rest[endIdx+len(end):]
	out := strings.TrimRight(source[:startIdx], "\n") + "\n" + strings.TrimLeft(after, "\n")
	return strings.TrimLeft(out, "\n"), nil
}

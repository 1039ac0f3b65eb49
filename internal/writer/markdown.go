package writer

import (
	"os"
	"strings"

	"github.com/rulekeep-labs/rulekeep/internal/fsx"
	"github.com/rulekeep-labs/rulekeep/internal/translator"
)

// MarkdownWriter maintains a marker-delimited managed section inside a
// long-form document. Everything outside the markers is user content and
// survives verbatim; the managed section is fully replaced on every write
// and its marker pair is normalized to sit after user content.
type MarkdownWriter struct{}

// Write replaces the managed section in the file at path with the
// translated instructions. Markers embed the stable block identifier from
// opts so the same logical block is found again on the next write.
func (w *MarkdownWriter) Write(path string, content *translator.TranslatedContent, opts *Options) error {
	blockID := ""
	if opts != nil {
		blockID = opts.BlockID
	}

	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	}

	user := extractUserContent(existing, blockID)
	return fsx.WriteText(path, combine(user, blockID, content.Instructions))
}

// CanHandle reports whether path looks like a markdown file.
func (w *MarkdownWriter) CanHandle(path string) bool {
	return strings.HasSuffix(path, ".md") || strings.HasSuffix(path, ".markdown")
}

// extractUserContent returns everything outside the managed section. When
// no marker pair exists, or the pair is malformed, the whole file is user
// content.
func extractUserContent(existing, blockID string) string {
	start := fsx.CommentHTML.StartMarker(blockID)
	end := fsx.CommentHTML.EndMarker(blockID)

	startIdx := strings.Index(existing, start)
	if startIdx < 0 {
		return strings.TrimSpace(existing)
	}
	rest := existing[startIdx+len(start):]
	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return strings.TrimSpace(existing)
	}

	before := strings.TrimSpace(existing[:startIdx])
	after := strings.TrimSpace(rest[endIdx+len(end):])

	switch {
	case before == "":
		return after
	case after == "":
		return before
	default:
		return before + "\n\n" + after
	}
}

// combine renders user content followed by a fresh managed section.
func combine(user, blockID, managed string) string {
	var b strings.Builder
	if user != "" {
		b.WriteString(user)
		b.WriteString("\n\n")
	}
	b.WriteString(fsx.CommentHTML.StartMarker(blockID))
	b.WriteString("\n")
	b.WriteString(managed)
	b.WriteString("\n")
	b.WriteString(fsx.CommentHTML.EndMarker(blockID))
	b.WriteString("\n")
	return b.String()
}

package writer

import (
	"github.com/rulekeep-labs/rulekeep/internal/registry"
	"github.com/rulekeep-labs/rulekeep/internal/translator"
)

// Options carries per-write context supplied by the sync engine.
type Options struct {
	// Keys names where managed values live in key-structured files.
	Keys *registry.SchemaKeys
	// BlockID is the stable identifier embedded in managed-section
	// markers. It never changes across rewrites of the same block.
	BlockID string
}

// Writer merges translated content into a config file.
type Writer interface {
	// Write merges content into the file at path. The file may not exist
	// yet; writers create it. User-owned content must survive.
	Write(path string, content *translator.TranslatedContent, opts *Options) error
	// CanHandle reports whether this writer is appropriate for path,
	// judged by extension.
	CanHandle(path string) bool
}

// Selector maps a config format to the writer implementing its merge
// semantics.
type Selector struct {
	json     *JSONWriter
	markdown *MarkdownWriter
	text     *TextWriter
}

// NewSelector returns a selector with all built-in writers.
func NewSelector() *Selector {
	return &Selector{
		json:     &JSONWriter{},
		markdown: &MarkdownWriter{},
		text:     &TextWriter{},
	}
}

// ForFormat returns the writer for a config format. YAML and TOML fall
// back to full replacement; there is no AST-aware merge for them.
func (s *Selector) ForFormat(format registry.Format) Writer {
	switch format {
	case registry.FormatJSON:
		return s.json
	case registry.FormatMarkdown:
		return s.markdown
	default:
		return s.text
	}
}

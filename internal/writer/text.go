package writer

import (
	"strings"

	"github.com/rulekeep-labs/rulekeep/internal/fsx"
	"github.com/rulekeep-labs/rulekeep/internal/translator"
)

// TextWriter replaces the whole file. Used for tools that own their config
// file entirely, where nothing needs to be preserved.
type TextWriter struct{}

// Write replaces the file at path with the translated instructions.
func (w *TextWriter) Write(path string, content *translator.TranslatedContent, _ *Options) error {
	return fsx.WriteText(path, content.Instructions)
}

// CanHandle reports whether path is a freeform file, i.e. anything that is
// not JSON, YAML, TOML, or markdown.
func (w *TextWriter) CanHandle(path string) bool {
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml", ".md", ".markdown"} {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	return true
}

package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rulekeep-labs/rulekeep/internal/fsx"
	"github.com/rulekeep-labs/rulekeep/internal/translator"
)

// JSONWriter merges managed keys into a JSON document, preserving every
// key it does not own.
type JSONWriter struct{}

// Write merges content into the JSON file at path. Instructions and the
// MCP map land at the dotted paths named by the schema keys; extra data
// keys are merged at the top level.
func (w *JSONWriter) Write(path string, content *translator.TranslatedContent, opts *Options) error {
	doc, err := parseExisting(path)
	if err != nil {
		return err
	}

	if opts != nil && opts.Keys != nil {
		if content.Instructions != "" && opts.Keys.InstructionKey != "" {
			fsx.SetPath(doc, opts.Keys.InstructionKey, content.Instructions)
		}
		if len(content.MCPServers) > 0 && opts.Keys.MCPKey != "" {
			fsx.SetPath(doc, opts.Keys.MCPKey, content.MCPServers)
		}
	}
	for key, value := range content.Data {
		doc[key] = value
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return fsx.WriteAtomic(path, append(out, '\n'))
}

// CanHandle reports whether path looks like a JSON file.
func (w *JSONWriter) CanHandle(path string) bool {
	return strings.HasSuffix(path, ".json")
}

// parseExisting reads the JSON document at path, or returns an empty
// object when the file is absent. A file that exists but does not parse
// as a JSON object is an error rather than data loss.
func parseExisting(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

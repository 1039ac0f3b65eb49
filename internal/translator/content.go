package translator

import "github.com/rulekeep-labs/rulekeep/internal/registry"

// TranslatedContent is the output of translating rules for one tool.
type TranslatedContent struct {
	// Format is the target config format, copied from the tool descriptor.
	Format registry.Format
	// Instructions holds freeform rule text, empty when the tool does not
	// support custom instructions or no rules were given.
	Instructions string
	// MCPServers holds the MCP server map for MCP-capable tools.
	MCPServers map[string]any
	// Data carries extra top-level keys for key-structured formats.
	Data map[string]any
}

// Empty reports whether translation produced no content at all.
func (c *TranslatedContent) Empty() bool {
	return c.Instructions == "" && len(c.MCPServers) == 0 && len(c.Data) == 0
}

// WithData returns c with an extra data key set.
func (c *TranslatedContent) WithData(key string, value any) *TranslatedContent {
	if c.Data == nil {
		c.Data = map[string]any{}
	}
	c.Data[key] = value
	return c
}

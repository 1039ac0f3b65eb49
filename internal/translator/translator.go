package translator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rulekeep-labs/rulekeep/internal/registry"
	"github.com/rulekeep-labs/rulekeep/internal/rules"
)

// Translate produces the content a tool should receive for the given rule
// set. Capabilities gate each part: instruction text only for tools that
// support custom instructions, the MCP map only for MCP-capable tools whose
// config file has a key to merge it into.
func Translate(tool *registry.ToolDescriptor, defs []*rules.Definition, mcpServers map[string]any) *TranslatedContent {
	content := &TranslatedContent{Format: tool.Format}

	if tool.Capabilities.CustomInstructions && len(defs) > 0 {
		content.Instructions = FormatRules(defs, tool.Format)
	}

	if tool.Capabilities.MCP && len(mcpServers) > 0 && hasMCPKey(tool) {
		content.MCPServers = mcpServers
	}

	return content
}

// hasMCPKey reports whether the tool's config can place an MCP server map.
// Freeform formats have nowhere to merge one; handing the map to their
// writers would replace user content with nothing.
func hasMCPKey(tool *registry.ToolDescriptor) bool {
	return tool.Format == registry.FormatJSON && tool.SchemaKeys != nil && tool.SchemaKeys.MCPKey != ""
}

// FormatRules renders the rule set for a config format. Mandatory rules
// sort before suggestions; ties keep their original order.
func FormatRules(defs []*rules.Definition, format registry.Format) string {
	sorted := make([]*rules.Definition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severityRank(sorted[i]) < severityRank(sorted[j])
	})

	parts := make([]string, 0, len(sorted))
	for _, def := range sorted {
		parts = append(parts, formatRule(def, format))
	}
	return strings.Join(parts, "\n\n")
}

func severityRank(def *rules.Definition) int {
	if def.Mandatory() {
		return 0
	}
	return 1
}

// formatRule renders one rule. Long-form formats get the full markdown
// treatment; key-structured formats carry only the raw instruction, since
// structural placement is the writer's job.
func formatRule(def *rules.Definition, format registry.Format) string {
	switch format {
	case registry.FormatMarkdown, registry.FormatText:
		return formatMarkdown(def)
	default:
		return def.Content.Instruction
	}
}

func formatMarkdown(def *rules.Definition) string {
	marker := "[Suggested]"
	if def.Mandatory() {
		marker = "**[REQUIRED]**"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s %s\n\n%s", def.Meta.ID, marker, def.Content.Instruction)

	if ex := def.Examples; ex != nil {
		if len(ex.Positive) > 0 {
			b.WriteString("\n\n**Good:**\n")
			for _, example := range ex.Positive {
				fmt.Fprintf(&b, "```\n%s\n```\n", example)
			}
		}
		if len(ex.Negative) > 0 {
			b.WriteString("\n**Bad:**\n")
			for _, example := range ex.Negative {
				fmt.Fprintf(&b, "```\n%s\n```\n", example)
			}
		}
	}

	if t := def.Targets; t != nil && len(t.Files) > 0 {
		fmt.Fprintf(&b, "\n\n**Applies to:** %s", strings.Join(t.Files, ", "))
	}

	return b.String()
}

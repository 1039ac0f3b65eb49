package registry

// BuiltinCount is the number of built-in tool descriptors.
const BuiltinCount = 14

// Builtins returns the descriptor table for every built-in tool. This is
// the single source of truth; listing, lookup, and dispatch all derive
// from it.
func Builtins() []*ToolDescriptor {
	return []*ToolDescriptor{
		// IDEs
		{
			Slug:       "vscode",
			Name:       "VS Code",
			Category:   CategoryIDE,
			Format:     FormatJSON,
			ConfigPath: ".vscode/settings.json",
			Capabilities: Capabilities{
				CustomInstructions: false,
				MCP:                true,
			},
			SchemaKeys: &SchemaKeys{MCPKey: "mcp.servers"},
		},
		{
			Slug:       "cursor",
			Name:       "Cursor",
			Category:   CategoryIDE,
			Format:     FormatText,
			ConfigPath: ".cursorrules",
			ExtraPaths: []string{".cursor/rules/"},
			Capabilities: Capabilities{
				CustomInstructions: true,
				MCP:                true,
				RulesDirectory:     true,
			},
		},
		{
			Slug:       "zed",
			Name:       "Zed",
			Category:   CategoryIDE,
			Format:     FormatText,
			ConfigPath: ".rules",
			ExtraPaths: []string{".zed/settings.json"},
			Capabilities: Capabilities{
				CustomInstructions: true,
				MCP:                true,
			},
		},
		{
			Slug:       "jetbrains",
			Name:       "JetBrains",
			Category:   CategoryIDE,
			Format:     FormatMarkdown,
			ConfigPath: ".aiassistant/rules/project.md",
			ExtraPaths: []string{".aiignore"},
			Capabilities: Capabilities{
				CustomInstructions: true,
				MCP:                true,
				RulesDirectory:     true,
			},
		},
		{
			Slug:       "windsurf",
			Name:       "Windsurf",
			Category:   CategoryIDE,
			Format:     FormatText,
			ConfigPath: ".windsurfrules",
			Capabilities: Capabilities{
				CustomInstructions: true,
				MCP:                true,
			},
		},
		{
			Slug:       "antigravity",
			Name:       "Antigravity",
			Category:   CategoryIDE,
			Format:     FormatText,
			ConfigPath: ".agent/rules.md",
			Capabilities: Capabilities{
				CustomInstructions: true,
				RulesDirectory:     true,
			},
		},

		// CLI agents
		{
			Slug:       "claude",
			Name:       "Claude Code",
			Category:   CategoryCLIAgent,
			Format:     FormatMarkdown,
			ConfigPath: "CLAUDE.md",
			ExtraPaths: []string{".claude/rules/"},
			Capabilities: Capabilities{
				CustomInstructions: true,
				MCP:                true,
				RulesDirectory:     true,
			},
		},
		{
			Slug:       "claude-desktop",
			Name:       "Claude Desktop",
			Category:   CategoryCLIAgent,
			Format:     FormatJSON,
			ConfigPath: ".claude-desktop/config.json",
			Capabilities: Capabilities{
				MCP: true,
			},
			SchemaKeys: &SchemaKeys{MCPKey: "mcpServers"},
		},
		{
			Slug:       "aider",
			Name:       "Aider",
			Category:   CategoryCLIAgent,
			Format:     FormatYAML,
			ConfigPath: ".aider.conf.yml",
			ExtraPaths: []string{"CONVENTIONS.md"},
			Capabilities: Capabilities{
				CustomInstructions: true,
			},
		},
		{
			Slug:       "gemini",
			Name:       "Gemini CLI",
			Category:   CategoryCLIAgent,
			Format:     FormatText,
			ConfigPath: "GEMINI.md",
			Capabilities: Capabilities{
				CustomInstructions: true,
			},
		},

		// Autonomous agents
		{
			Slug:       "cline",
			Name:       "Cline",
			Category:   CategoryAutonomous,
			Format:     FormatText,
			ConfigPath: ".clinerules",
			ExtraPaths: []string{".clinerules/"},
			Capabilities: Capabilities{
				CustomInstructions: true,
				RulesDirectory:     true,
			},
		},
		{
			Slug:       "roo",
			Name:       "Roo",
			Category:   CategoryAutonomous,
			Format:     FormatMarkdown,
			ConfigPath: ".roo/rules/project.md",
			ExtraPaths: []string{".roomodes"},
			Capabilities: Capabilities{
				CustomInstructions: true,
				MCP:                true,
				RulesDirectory:     true,
			},
		},

		// Copilots
		{
			Slug:       "copilot",
			Name:       "GitHub Copilot",
			Category:   CategoryCopilot,
			Format:     FormatMarkdown,
			ConfigPath: ".github/copilot-instructions.md",
			ExtraPaths: []string{".github/instructions/"},
			Capabilities: Capabilities{
				CustomInstructions: true,
				RulesDirectory:     true,
			},
		},
		{
			Slug:       "amazonq",
			Name:       "Amazon Q",
			Category:   CategoryCopilot,
			Format:     FormatMarkdown,
			ConfigPath: ".amazonq/rules/project.md",
			Capabilities: Capabilities{
				CustomInstructions: true,
				MCP:                true,
				RulesDirectory:     true,
			},
		},
	}
}

package registry

// Category groups tools by how they are used.
type Category string

const (
	CategoryIDE        Category = "ide"
	CategoryCLIAgent   Category = "cli-agent"
	CategoryAutonomous Category = "autonomous"
	CategoryCopilot    Category = "copilot"
)

// Format identifies the configuration file format a tool consumes.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
)

// Capabilities declares what kinds of content a tool can accept.
type Capabilities struct {
	// CustomInstructions is true when the tool reads freeform rule text.
	CustomInstructions bool `yaml:"custom_instructions"`
	// MCP is true when the tool can be configured with MCP servers.
	MCP bool `yaml:"mcp"`
	// RulesDirectory is true when the tool reads a directory of rule files.
	RulesDirectory bool `yaml:"rules_directory"`
}

// SchemaKeys names where managed values live inside key-structured
// (JSON-like) config files.
type SchemaKeys struct {
	// InstructionKey is the dotted path for custom instruction text.
	InstructionKey string `yaml:"instruction_key,omitempty"`
	// MCPKey is the dotted path for the MCP server map.
	MCPKey string `yaml:"mcp_key,omitempty"`
}

// ToolDescriptor describes one tool integration: identity, category,
// config format and paths, and declared capabilities.
type ToolDescriptor struct {
	Slug         string       `yaml:"slug"`
	Name         string       `yaml:"name"`
	Category     Category     `yaml:"category"`
	Format       Format       `yaml:"format"`
	ConfigPath   string       `yaml:"config_path"`
	ExtraPaths   []string     `yaml:"extra_paths,omitempty"`
	Capabilities Capabilities `yaml:"capabilities"`
	SchemaKeys   *SchemaKeys  `yaml:"schema_keys,omitempty"`
}

// HasAnyCapability reports whether the tool can accept any managed content
// at all. Tools without capabilities are skipped during sync.
func (d *ToolDescriptor) HasAnyCapability() bool {
	return d.Capabilities.CustomInstructions || d.Capabilities.MCP || d.Capabilities.RulesDirectory
}

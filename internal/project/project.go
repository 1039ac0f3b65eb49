package project

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/rulekeep-labs/rulekeep/internal/branding"
)

const (
	configFile = "config.yaml"
	ledgerFile = "ledger.yaml"
	lockFile   = "ledger.lock"
	rulesDir   = "rules"
)

// Config represents the .rulekeep/config.yaml structure.
type Config struct {
	// Tools lists the enabled tool slugs, in sync order.
	Tools []string `yaml:"tools"`
	// RulesDir is the rules directory relative to the project root.
	// Defaults to ".rulekeep/rules".
	RulesDir string `yaml:"rules_dir,omitempty"`
	// MCPServers maps server names to their launch configuration.
	MCPServers map[string]any `yaml:"mcp_servers,omitempty"`
}

// Dir returns the project's dot-directory path.
func Dir(root string) string {
	return filepath.Join(root, branding.ProjectDir())
}

// ConfigPath returns the full path to the project config file.
func ConfigPath(root string) string {
	return filepath.Join(Dir(root), configFile)
}

// LedgerPath returns the full path to the ledger file.
func LedgerPath(root string) string {
	return filepath.Join(Dir(root), ledgerFile)
}

// LockPath returns the full path to the ledger lock file.
func LockPath(root string) string {
	return filepath.Join(Dir(root), lockFile)
}

// RulesPath returns the absolute rules directory for the project,
// honoring a rules_dir override in the config.
func (c *Config) RulesPath(root string) string {
	if c.RulesDir != "" {
		return filepath.Join(root, c.RulesDir)
	}
	return filepath.Join(Dir(root), rulesDir)
}

// Load reads and parses the project config for the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading project config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing project config: %w", err)
	}
	return &config, nil
}

// Save writes the project config for the given root.
func Save(root string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling project config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}
	return nil
}

// Init creates the project dot-directory with a config file and an empty
// rules directory. Re-initializing an existing project is an error.
func Init(root string, tools []string) error {
	if _, err := os.Stat(ConfigPath(root)); err == nil {
		return fmt.Errorf("project already initialized at %s", ConfigPath(root))
	}

	if err := os.MkdirAll(filepath.Join(Dir(root), rulesDir), 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	return Save(root, &Config{Tools: tools})
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rulekeep-labs/rulekeep/internal/branding"
	"github.com/rulekeep-labs/rulekeep/internal/project"
	"github.com/rulekeep-labs/rulekeep/internal/registry"
)

var (
	initRoot  string
	initTools string
)

func init() {
	initCmd.Flags().StringVar(&initRoot, "root", "", "Project root (default: current directory)")
	initCmd.Flags().StringVar(&initTools, "tools", "cursor,claude", "Comma-separated list of AI tools to manage")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project",
	Long: `Initialize rule management for a project.

Creates the ` + branding.ProjectDir() + `/ directory with a config file and an empty rules
directory. Rule files are YAML; see '` + branding.CLIName() + ` tools' for the supported tool slugs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot(initRoot)
		if err != nil {
			return err
		}

		tools := parseToolsList(initTools)
		if len(tools) == 0 {
			return fmt.Errorf("at least one tool must be specified via --tools")
		}

		reg := registry.NewWithBuiltins()
		for _, slug := range tools {
			if _, ok := reg.Get(slug); !ok {
				return fmt.Errorf("unknown tool %q; run '%s tools' for the supported list", slug, branding.CLIName())
			}
		}

		if err := project.Init(root, tools); err != nil {
			return err
		}

		fmt.Printf("Initialized project in %s\n", root)
		fmt.Printf("Tools: %s\n", strings.Join(tools, ", "))
		fmt.Printf("\nAdd rule files under %s and run '%s sync'.\n",
			(&project.Config{}).RulesPath(root), branding.CLIName())
		return nil
	},
}

func parseToolsList(s string) []string {
	parts := strings.Split(s, ",")
	tools := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			tools = append(tools, trimmed)
		}
	}
	return tools
}

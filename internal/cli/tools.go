package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rulekeep-labs/rulekeep/internal/registry"
)

var (
	toolsCategory string
	toolsJSON     bool
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List supported AI tools",
	Long:  `List every tool the sync engine knows how to configure.`,
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().StringVar(&toolsCategory, "category", "", "Filter by category (ide, cli-agent, autonomous, copilot)")
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(toolsCmd)
}

// toolEntry represents one tool for display.
type toolEntry struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	ConfigPath   string   `json:"config_path"`
	Capabilities []string `json:"capabilities"`
}

func runTools(cmd *cobra.Command, args []string) error {
	reg := registry.NewWithBuiltins()

	descriptors := reg.List()
	if toolsCategory != "" {
		descriptors = reg.ByCategory(registry.Category(toolsCategory))
		if len(descriptors) == 0 {
			return fmt.Errorf("no tools in category %q", toolsCategory)
		}
	}

	entries := make([]toolEntry, 0, len(descriptors))
	for _, d := range descriptors {
		entries = append(entries, toolEntry{
			Slug:         d.Slug,
			Name:         d.Name,
			Category:     string(d.Category),
			ConfigPath:   d.ConfigPath,
			Capabilities: capabilityNames(d.Capabilities),
		})
	}

	if toolsJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling tool list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tCATEGORY\tCONFIG\tCAPABILITIES")
	for _, e := range entries {
		caps := "none"
		if len(e.Capabilities) > 0 {
			caps = strings.Join(e.Capabilities, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Slug, e.Name, e.Category, e.ConfigPath, caps)
	}
	return w.Flush()
}

func capabilityNames(c registry.Capabilities) []string {
	var names []string
	if c.CustomInstructions {
		names = append(names, "instructions")
	}
	if c.MCP {
		names = append(names, "mcp")
	}
	if c.RulesDirectory {
		names = append(names, "rules-dir")
	}
	return names
}

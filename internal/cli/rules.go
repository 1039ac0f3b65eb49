package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rulekeep-labs/rulekeep/internal/project"
	"github.com/rulekeep-labs/rulekeep/internal/rules"
)

var rulesRoot string

func init() {
	rulesCmd.PersistentFlags().StringVar(&rulesRoot, "root", "", "Project root (default: current directory)")
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate the project's rule files",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the project's rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot(rulesRoot)
		if err != nil {
			return err
		}
		config, err := project.Load(root)
		if err != nil {
			return err
		}

		defs, err := rules.Load(config.RulesPath(root))
		if err != nil {
			return err
		}
		if len(defs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No rules defined yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSEVERITY\tINSTRUCTION")
		for _, def := range defs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", def.ID(), def.Meta.Severity, truncate(def.Content.Instruction, 60))
		}
		return w.Flush()
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate rule files against the rule schema",
	Long: `Validate rule files without applying them. With no arguments, validates
every rule file in the project's rules directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			root, err := projectRoot(rulesRoot)
			if err != nil {
				return err
			}
			config, err := project.Load(root)
			if err != nil {
				return err
			}
			paths, err = ruleFilesIn(config.RulesPath(root))
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rule files found.")
				return nil
			}
		}

		failed := 0
		for _, path := range paths {
			result, err := rules.ValidateFile(path)
			if err != nil {
				return err
			}
			if result.Valid {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
				continue
			}
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", path)
			for _, issue := range result.Issues {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", issue.Path, issue.Message)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d rule files failed validation", failed, len(paths))
		}
		return nil
	},
}

func ruleFilesIn(dir string) ([]string, error) {
	yaml, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	yml, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, err
	}
	return append(yaml, yml...), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulekeep-labs/rulekeep/internal/branding"
	"github.com/rulekeep-labs/rulekeep/internal/engine"
)

var checkRoot string

func init() {
	checkCmd.Flags().StringVar(&checkRoot, "root", "", "Project root (default: current directory)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that managed config files still match the recorded state",
	Long: `Check every recorded projection against the live config files.

Check is read-only and takes no lock. It exits non-zero when anything is
missing, drifted, or the ledger is unreadable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot(checkRoot)
		if err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()

		report, err := engine.New(root, engine.WithLogger(logger)).Check()
		if err != nil {
			return err
		}

		printCheckReport(cmd, report)

		switch report.Status {
		case engine.StatusHealthy:
			return nil
		case engine.StatusBroken:
			return fmt.Errorf("ledger is unreadable; inspect it before running '%s sync'", branding.CLIName())
		default:
			return fmt.Errorf("%d projections need attention; run '%s fix'",
				len(report.Missing)+len(report.Drifted), branding.CLIName())
		}
	},
}

func printCheckReport(cmd *cobra.Command, report *engine.CheckReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Status: %s\n", report.Status)

	for _, msg := range report.Messages {
		fmt.Fprintf(out, "  %s\n", msg)
	}
	if len(report.Missing) > 0 {
		fmt.Fprintln(out, "\nMissing:")
		for _, item := range report.Missing {
			fmt.Fprintf(out, "  %s (%s): %s\n", item.File, item.Tool, item.Description)
		}
	}
	if len(report.Drifted) > 0 {
		fmt.Fprintln(out, "\nDrifted:")
		for _, item := range report.Drifted {
			fmt.Fprintf(out, "  %s (%s): %s\n", item.File, item.Tool, item.Description)
		}
	}
}

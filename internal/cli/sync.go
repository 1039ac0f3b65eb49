package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulekeep-labs/rulekeep/internal/engine"
	"github.com/rulekeep-labs/rulekeep/internal/ledger"
)

var (
	syncRoot   string
	syncDryRun bool
	syncNoWait bool
)

func init() {
	syncCmd.Flags().StringVar(&syncRoot, "root", "", "Project root (default: current directory)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show what would be written without changing anything")
	syncCmd.Flags().BoolVar(&syncNoWait, "no-wait", false, "Fail immediately if another process holds the lock")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Project the canonical rules into every enabled tool's config",
	Long: `Apply the project's rule files to the config of every tool listed in the
project config, recording each write in the ledger. User-owned content in
shared files is preserved; only the managed sections are replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot(syncRoot)
		if err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()

		report, err := engine.New(root, engine.WithLogger(logger)).Sync(engine.SyncOptions{
			DryRun: syncDryRun,
			NoWait: syncNoWait,
		})
		if err != nil {
			if errors.Is(err, ledger.ErrLockHeld) {
				return fmt.Errorf("another process is syncing this project; retry without --no-wait to wait for it")
			}
			return err
		}

		printSyncReport(cmd, report)
		if !report.Success {
			return fmt.Errorf("sync completed with %d errors", len(report.Errors))
		}
		return nil
	},
}

func printSyncReport(cmd *cobra.Command, report *engine.SyncReport) {
	out := cmd.OutOrStdout()
	for _, action := range report.Actions {
		fmt.Fprintln(out, action)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", e)
	}
}

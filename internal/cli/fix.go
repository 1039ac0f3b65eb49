package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulekeep-labs/rulekeep/internal/engine"
	"github.com/rulekeep-labs/rulekeep/internal/ledger"
)

var (
	fixRoot   string
	fixDryRun bool
	fixNoWait bool
)

func init() {
	fixCmd.Flags().StringVar(&fixRoot, "root", "", "Project root (default: current directory)")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Show what would be repaired without changing anything")
	fixCmd.Flags().BoolVar(&fixNoWait, "no-wait", false, "Fail immediately if another process holds the lock")
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair missing or drifted config projections",
	Long: `Check the project and re-sync only when projections are missing or drifted.
A healthy project is left untouched. A corrupt ledger is reported, never
replaced; fix will not destroy state it cannot read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot(fixRoot)
		if err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()

		report, err := engine.New(root, engine.WithLogger(logger)).Fix(engine.SyncOptions{
			DryRun: fixDryRun,
			NoWait: fixNoWait,
		})
		if err != nil {
			if errors.Is(err, ledger.ErrLockHeld) {
				return fmt.Errorf("another process is syncing this project; retry without --no-wait to wait for it")
			}
			return err
		}

		printSyncReport(cmd, report)
		if !report.Success {
			return fmt.Errorf("fix completed with %d errors", len(report.Errors))
		}
		return nil
	},
}

package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.yaml.in/yaml/v3"

	"github.com/rulekeep-labs/rulekeep/internal/engine"
	"github.com/rulekeep-labs/rulekeep/internal/ledger"
)

// CheckTool handles the rulekeep_check MCP tool.
type CheckTool struct{}

// Definition returns the MCP tool definition for rulekeep_check.
func (t *CheckTool) Definition() mcp.Tool {
	return mcp.NewTool("rulekeep_check",
		mcp.WithDescription(
			"Check whether every rule projection recorded for a project still matches "+
				"the live config files. Reports healthy, missing (a target file or block "+
				"is gone), drifted (content was edited), or broken (the ledger itself is "+
				"unreadable). Read-only; never modifies anything.",
		),
		mcp.WithString("root",
			mcp.Description("Project root path (default: current working directory)"),
		),
	)
}

// Handle processes the rulekeep_check tool call.
func (t *CheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := resolveRoot(req.GetString("root", ""))

	report, err := engine.New(root).Check()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}
	return renderReport(report)
}

// SyncTool handles the rulekeep_sync MCP tool.
type SyncTool struct{}

// Definition returns the MCP tool definition for rulekeep_sync.
func (t *SyncTool) Definition() mcp.Tool {
	return mcp.NewTool("rulekeep_sync",
		mcp.WithDescription(
			"Apply the project's canonical rules to every enabled tool's config file "+
				"and record each write in the ledger. Holds an exclusive lock for the "+
				"whole operation. Set dry_run to preview without writing.",
		),
		mcp.WithString("root",
			mcp.Description("Project root path (default: current working directory)"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Report what would be written without touching any file"),
		),
	)
}

// Handle processes the rulekeep_sync tool call.
func (t *SyncTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := resolveRoot(req.GetString("root", ""))
	opts := engine.SyncOptions{
		DryRun: req.GetBool("dry_run", false),
		NoWait: true,
	}

	report, err := engine.New(root).Sync(opts)
	if err != nil {
		if errors.Is(err, ledger.ErrLockHeld) {
			return mcp.NewToolResultError("another process is syncing this project; try again shortly"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("sync failed: %v", err)), nil
	}
	return renderReport(report)
}

// FixTool handles the rulekeep_fix MCP tool.
type FixTool struct{}

// Definition returns the MCP tool definition for rulekeep_fix.
func (t *FixTool) Definition() mcp.Tool {
	return mcp.NewTool("rulekeep_fix",
		mcp.WithDescription(
			"Check a project and re-sync only when projections are missing or "+
				"drifted. A healthy project is left untouched; a corrupt ledger is "+
				"reported, never replaced.",
		),
		mcp.WithString("root",
			mcp.Description("Project root path (default: current working directory)"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Report what would be repaired without touching any file"),
		),
	)
}

// Handle processes the rulekeep_fix tool call.
func (t *FixTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := resolveRoot(req.GetString("root", ""))
	opts := engine.SyncOptions{
		DryRun: req.GetBool("dry_run", false),
		NoWait: true,
	}

	report, err := engine.New(root).Fix(opts)
	if err != nil {
		if errors.Is(err, ledger.ErrLockHeld) {
			return mcp.NewToolResultError("another process is syncing this project; try again shortly"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fix failed: %v", err)), nil
	}
	return renderReport(report)
}

// renderReport serializes a report as YAML for the tool result.
func renderReport(report any) (*mcp.CallToolResult, error) {
	out, err := yaml.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding report: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

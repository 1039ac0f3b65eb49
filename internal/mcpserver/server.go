package mcpserver

import (
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rulekeep-labs/rulekeep/internal/branding"
)

// New creates the MCP server with the check, sync, and fix tools
// registered. Version is reported in the MCP handshake.
func New(version string) *server.MCPServer {
	s := server.NewMCPServer(
		branding.CLIName(),
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions()),
	)

	check := &CheckTool{}
	s.AddTool(check.Definition(), check.Handle)

	sync := &SyncTool{}
	s.AddTool(sync.Definition(), sync.Handle)

	fix := &FixTool{}
	s.AddTool(fix.Definition(), fix.Handle)

	return s
}

// Serve runs the server on stdio until the client disconnects.
func Serve(version string) error {
	return server.ServeStdio(New(version))
}

func instructions() string {
	return "This server manages canonical AI-coding rules for a project and " +
		"projects them into tool config files (.cursorrules, CLAUDE.md, " +
		".vscode/settings.json, and others). Use rulekeep_check to detect " +
		"drift between the recorded state and the live files, rulekeep_sync " +
		"to apply the canonical rules to every enabled tool, and " +
		"rulekeep_fix to repair drift found by a check. All tools take a " +
		"project root path; it defaults to the current working directory."
}

// resolveRoot returns the project root for a tool call, defaulting to the
// server process working directory.
func resolveRoot(root string) string {
	if root != "" {
		return root
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

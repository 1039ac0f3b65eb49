// Package project manages the per-project configuration under .rulekeep/:
// which tools are enabled, where the rules directory lives, the MCP server
// map, and the paths of the ledger and its lock file.
package project

// Package mcpserver exposes the reconciliation engine over MCP so AI
// coding tools can check, sync, and fix rule projections in the projects
// they work on. The server speaks stdio transport and registers one tool
// per engine operation.
package mcpserver

// Package rules defines the canonical rule format and loads rule files
// from a project's rules directory. Rules are YAML documents validated
// against an embedded JSON schema before anything downstream sees them.
package rules

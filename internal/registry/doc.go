// Package registry holds the tool capability registry: which AI coding
// tools exist, what configuration format each one consumes, where its config
// files live, and which capabilities (custom instructions, MCP servers,
// rules directories) it supports. The built-in table covers fourteen tools;
// additional descriptors can be registered at runtime.
package registry

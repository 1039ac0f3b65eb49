// Package writer merges translated content into tool config files. Each
// format gets its own merge semantics: JSON files are key-merged so
// unrelated keys survive, long-form documents keep a marker-delimited
// managed section with user content preserved around it, and plain-text
// files are replaced wholesale. A Selector maps a tool's config format to
// the writer that implements those semantics.
package writer

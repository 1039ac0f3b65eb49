// Package translator turns canonical rules into tool-specific content.
// Translation is pure: it reads the tool descriptor and the rule set and
// produces a TranslatedContent value without touching the filesystem.
// Capabilities gate every piece of output, so a tool that cannot accept
// custom instructions never receives any.
package translator

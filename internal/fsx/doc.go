// Package fsx provides the filesystem primitives shared by the writers and
// the ledger: atomic file replacement, canonical sha256 checksums,
// managed-block markers rendered in the comment syntax of the target format,
// and dotted-path access into JSON-like maps.
package fsx

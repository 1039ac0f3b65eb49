// Package ledger is the durable record of what sync has written. Each
// applied rule becomes an Intent with a stable instance identifier; each
// artifact the writers produced becomes a checksummed Projection under its
// Intent. The ledger file is schema-versioned YAML, saved atomically, and
// guarded by an advisory file lock during mutation.
package ledger

// Package engine reconciles the ledger with the filesystem. It offers
// three operations: check validates every recorded projection against the
// live files, sync applies the canonical rules to every enabled tool and
// records what it wrote, and fix re-syncs after a non-healthy check.
//
// Sync and fix hold an exclusive advisory lock for their whole span and
// work best-effort across tools: one tool failing does not stop the rest,
// and the ledger always reflects exactly what was written. Check takes no
// lock; it is advisory and idempotent.
package engine

package engine

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rulekeep-labs/rulekeep/internal/fsx"
	"github.com/rulekeep-labs/rulekeep/internal/ledger"
	"github.com/rulekeep-labs/rulekeep/internal/project"
	"github.com/rulekeep-labs/rulekeep/internal/registry"
	"github.com/rulekeep-labs/rulekeep/internal/rules"
	"github.com/rulekeep-labs/rulekeep/internal/translator"
	"github.com/rulekeep-labs/rulekeep/internal/writer"
)

// SyncOptions controls sync and fix behavior.
type SyncOptions struct {
	// DryRun reports what would be written without touching any file or
	// the ledger.
	DryRun bool
	// NoWait fails immediately with ledger.ErrLockHeld instead of
	// blocking when another process holds the ledger lock.
	NoWait bool
}

// Sync projects the canonical rules into every enabled tool's config file
// and records each write in the ledger. The ledger lock is held for the
// whole operation.
func (e *Engine) Sync(opts SyncOptions) (*SyncReport, error) {
	config, err := project.Load(e.root)
	if err != nil {
		return nil, err
	}

	lock := ledger.NewLock(project.LockPath(e.root))
	if err := acquireLock(lock, opts); err != nil {
		return nil, err
	}
	defer lock.Release()

	return e.syncLocked(config, opts)
}

// Fix checks first and re-syncs only when something is missing or drifted.
// Like Sync it holds the ledger lock for the whole span, so the state it
// checked is the state it repairs.
func (e *Engine) Fix(opts SyncOptions) (*SyncReport, error) {
	config, err := project.Load(e.root)
	if err != nil {
		return nil, err
	}

	lock := ledger.NewLock(project.LockPath(e.root))
	if err := acquireLock(lock, opts); err != nil {
		return nil, err
	}
	defer lock.Release()

	check, err := e.Check()
	if err != nil {
		return nil, err
	}

	switch check.Status {
	case StatusBroken:
		report := &SyncReport{}
		for _, msg := range check.Messages {
			report.addError("%s", msg)
		}
		report.addError("ledger is corrupt; inspect %s before retrying", e.LedgerPath())
		return report, nil
	case StatusHealthy:
		report := &SyncReport{Success: true}
		report.addAction("No fixes needed")
		return report, nil
	}

	report, err := e.syncLocked(config, opts)
	if err != nil {
		return nil, err
	}
	if n := len(check.Drifted); n > 0 {
		report.addAction("Fixed %d drifted projections", n)
	}
	if n := len(check.Missing); n > 0 {
		report.addAction("Recreated %d missing projections", n)
	}
	return report, nil
}

func acquireLock(lock *ledger.Lock, opts SyncOptions) error {
	if opts.NoWait {
		return lock.TryAcquire()
	}
	return lock.Acquire()
}

// syncLocked does the actual projection work. The caller holds the ledger
// lock. Tool failures are collected, not fatal; the ledger is saved once
// at the end and reflects exactly the writes that succeeded.
func (e *Engine) syncLocked(config *project.Config, opts SyncOptions) (*SyncReport, error) {
	defs, err := rules.Load(config.RulesPath(e.root))
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	led, err := ledger.Load(e.LedgerPath())
	if err != nil {
		return nil, fmt.Errorf("refusing to sync: %w", err)
	}

	report := &SyncReport{}
	for _, slug := range config.Tools {
		desc, ok := e.registry.Get(slug)
		if !ok {
			report.addError("unknown tool %q", slug)
			continue
		}
		if !desc.HasAnyCapability() {
			report.addAction("Skipped %s: no usable capabilities", slug)
			continue
		}

		content := translator.Translate(desc, defs, config.MCPServers)
		if content.Empty() {
			report.addAction("Skipped %s: nothing to write", slug)
			continue
		}

		if opts.DryRun {
			report.addAction("[dry-run] Would write %s for %s", desc.ConfigPath, slug)
			continue
		}

		ruleID := "rules:" + slug
		marker := uuid.NewString()
		if existing := led.FindByRule(ruleID); len(existing) > 0 {
			if prior := existing[0].FindProjection(slug, desc.ConfigPath, ledger.BackendTextBlock); prior != nil {
				marker = prior.Marker
			}
		}

		path := filepath.Join(e.root, desc.ConfigPath)
		w := e.writers.ForFormat(desc.Format)
		if err := w.Write(path, content, &writer.Options{Keys: desc.SchemaKeys, BlockID: marker}); err != nil {
			report.addError("%s: %v", slug, err)
			e.logger.Warn("write failed", zap.String("tool", slug), zap.Error(err))
			continue
		}

		// The intent exists only once the write landed; a failed tool must
		// leave no trace in the ledger.
		intent := led.Upsert(ruleID, map[string]any{"tool": slug})
		intent.Projections = buildProjections(desc, content, marker)
		report.addAction("Wrote %s for %s", desc.ConfigPath, slug)
		e.logger.Info("projected rules",
			zap.String("tool", slug),
			zap.String("file", desc.ConfigPath),
			zap.Int("projections", len(intent.Projections)))
	}

	if !opts.DryRun {
		if err := led.Save(e.LedgerPath()); err != nil {
			return nil, err
		}
	}

	report.Success = len(report.Errors) == 0
	return report, nil
}

// buildProjections derives the ledger records for what was just written.
// Checksums are computed over the same content the check recomputes: the
// trimmed block for marker-delimited sections, the full file otherwise.
func buildProjections(desc *registry.ToolDescriptor, content *translator.TranslatedContent, marker string) []ledger.Projection {
	var out []ledger.Projection

	switch desc.Format {
	case registry.FormatJSON:
		if desc.SchemaKeys != nil {
			if content.Instructions != "" && desc.SchemaKeys.InstructionKey != "" {
				out = append(out, ledger.JSONKey(desc.Slug, desc.ConfigPath, desc.SchemaKeys.InstructionKey, content.Instructions))
			}
			if len(content.MCPServers) > 0 && desc.SchemaKeys.MCPKey != "" {
				out = append(out, ledger.JSONKey(desc.Slug, desc.ConfigPath, desc.SchemaKeys.MCPKey, content.MCPServers))
			}
		}
		keys := make([]string, 0, len(content.Data))
		for key := range content.Data {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			out = append(out, ledger.JSONKey(desc.Slug, desc.ConfigPath, key, content.Data[key]))
		}

	case registry.FormatMarkdown:
		checksum := fsx.ChecksumString(strings.TrimSpace(content.Instructions))
		out = append(out, ledger.TextBlock(desc.Slug, desc.ConfigPath, marker, checksum))

	default:
		out = append(out, ledger.FileManaged(desc.Slug, desc.ConfigPath, fsx.ChecksumString(content.Instructions)))
	}

	return out
}

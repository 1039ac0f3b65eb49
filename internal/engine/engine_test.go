package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rulekeep-labs/rulekeep/internal/ledger"
	"github.com/rulekeep-labs/rulekeep/internal/project"
)

const testRule = `meta:
  id: no-panics
  severity: mandatory
content:
  instruction: Return errors instead of panicking.
`

const secondRule = `meta:
  id: table-tests
  severity: suggestion
content:
  instruction: Prefer table-driven tests.
`

func setupProject(t *testing.T, tools []string) string {
	t.Helper()
	root := t.TempDir()
	if err := project.Init(root, tools); err != nil {
		t.Fatal(err)
	}
	writeRule(t, root, "no-panics.yaml", testRule)
	return root
}

func writeRule(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(project.Dir(root), "rules", name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func mustSync(t *testing.T, e *Engine) *SyncReport {
	t.Helper()
	report, err := e.Sync(SyncOptions{})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if !report.Success {
		t.Fatalf("Sync errors: %v", report.Errors)
	}
	return report
}

func mustCheck(t *testing.T, e *Engine) *CheckReport {
	t.Helper()
	report, err := e.Check()
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	return report
}

func TestSyncCreatesConfigsAndLedger(t *testing.T) {
	root := setupProject(t, []string{"cursor", "claude"})
	e := New(root)

	report := mustSync(t, e)
	if len(report.Actions) != 2 {
		t.Errorf("actions = %v", report.Actions)
	}

	data, err := os.ReadFile(filepath.Join(root, ".cursorrules"))
	if err != nil {
		t.Fatalf("cursor config not written: %v", err)
	}
	if !strings.Contains(string(data), "Return errors instead of panicking.") {
		t.Errorf("cursor config missing instruction:\n%s", data)
	}

	claude, err := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if err != nil {
		t.Fatalf("claude config not written: %v", err)
	}
	if !strings.Contains(string(claude), "rulekeep:block:") {
		t.Errorf("claude config has no managed block:\n%s", claude)
	}

	led, err := ledger.Load(project.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if len(led.Intents) != 2 {
		t.Fatalf("intents = %d, want 2", len(led.Intents))
	}
	for _, intent := range led.Intents {
		if len(intent.Projections) != 1 {
			t.Errorf("intent %s projections = %d", intent.ID, len(intent.Projections))
		}
	}
}

func TestCheckHealthyAfterSync(t *testing.T) {
	root := setupProject(t, []string{"cursor", "claude"})
	e := New(root)
	mustSync(t, e)

	report := mustCheck(t, e)
	if report.Status != StatusHealthy {
		t.Errorf("status = %s, drifted = %v, missing = %v", report.Status, report.Drifted, report.Missing)
	}
}

func TestCheckEmptyLedgerIsHealthy(t *testing.T) {
	root := setupProject(t, []string{"cursor"})
	if report := mustCheck(t, New(root)); report.Status != StatusHealthy {
		t.Errorf("status = %s", report.Status)
	}
}

func TestCheckDetectsMissingFile(t *testing.T) {
	root := setupProject(t, []string{"cursor"})
	e := New(root)
	mustSync(t, e)

	if err := os.Remove(filepath.Join(root, ".cursorrules")); err != nil {
		t.Fatal(err)
	}

	report := mustCheck(t, e)
	if report.Status != StatusMissing {
		t.Fatalf("status = %s", report.Status)
	}
	if len(report.Missing) != 1 || report.Missing[0].Tool != "cursor" {
		t.Errorf("missing = %v", report.Missing)
	}
}

func TestCheckDetectsDriftedFile(t *testing.T) {
	root := setupProject(t, []string{"cursor"})
	e := New(root)
	mustSync(t, e)

	if err := os.WriteFile(filepath.Join(root, ".cursorrules"), []byte("edited by hand"), 0644); err != nil {
		t.Fatal(err)
	}

	report := mustCheck(t, e)
	if report.Status != StatusDrifted {
		t.Fatalf("status = %s", report.Status)
	}
}

func TestCheckDetectsDriftedBlock(t *testing.T) {
	root := setupProject(t, []string{"claude"})
	e := New(root)
	mustSync(t, e)

	path := filepath.Join(root, "CLAUDE.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	edited := strings.Replace(string(data), "panicking", "exploding", 1)
	if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
		t.Fatal(err)
	}

	report := mustCheck(t, e)
	if report.Status != StatusDrifted {
		t.Fatalf("status = %s, missing = %v", report.Status, report.Missing)
	}
}

func TestMissingWinsOverDrifted(t *testing.T) {
	root := setupProject(t, []string{"cursor", "claude"})
	e := New(root)
	mustSync(t, e)

	if err := os.Remove(filepath.Join(root, ".cursorrules")); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "CLAUDE.md")
	data, _ := os.ReadFile(path)
	edited := strings.Replace(string(data), "panicking", "exploding", 1)
	if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
		t.Fatal(err)
	}

	report := mustCheck(t, e)
	if report.Status != StatusMissing {
		t.Fatalf("status = %s", report.Status)
	}
	if len(report.Drifted) != 1 || len(report.Missing) != 1 {
		t.Errorf("drifted = %v, missing = %v", report.Drifted, report.Missing)
	}
}

func TestCheckBrokenLedger(t *testing.T) {
	root := setupProject(t, []string{"cursor"})
	if err := os.WriteFile(project.LedgerPath(root), []byte("{{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	report := mustCheck(t, New(root))
	if report.Status != StatusBroken {
		t.Fatalf("status = %s", report.Status)
	}
	if len(report.Messages) == 0 {
		t.Error("expected a broken-ledger message")
	}
}

func TestSyncJSONToolMergesKeys(t *testing.T) {
	root := setupProject(t, []string{"vscode"})

	vscodePath := filepath.Join(root, ".vscode", "settings.json")
	if err := os.MkdirAll(filepath.Dir(vscodePath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(vscodePath, []byte(`{"editor.tabSize": 4}`), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := project.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	config.MCPServers = map[string]any{
		"docs": map[string]any{"command": "docs-server"},
	}
	if err := project.Save(root, config); err != nil {
		t.Fatal(err)
	}

	e := New(root)
	mustSync(t, e)

	data, err := os.ReadFile(vscodePath)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("settings.json not valid JSON: %v", err)
	}
	if doc["editor.tabSize"] != float64(4) {
		t.Errorf("user key lost: %v", doc)
	}

	if report := mustCheck(t, e); report.Status != StatusHealthy {
		t.Errorf("status = %s, drifted = %v, missing = %v", report.Status, report.Drifted, report.Missing)
	}
}

func TestSyncSkipsToolWithNothingToWrite(t *testing.T) {
	// vscode accepts only MCP config; with no servers configured there is
	// nothing to project.
	root := setupProject(t, []string{"vscode"})
	e := New(root)

	report := mustSync(t, e)
	if len(report.Actions) != 1 || !strings.Contains(report.Actions[0], "Skipped vscode") {
		t.Errorf("actions = %v", report.Actions)
	}
	if _, err := os.Stat(filepath.Join(root, ".vscode", "settings.json")); !os.IsNotExist(err) {
		t.Error("settings.json should not have been created")
	}
}

func TestSyncUnknownToolIsCollectedNotFatal(t *testing.T) {
	root := setupProject(t, []string{"no-such-tool", "cursor"})
	e := New(root)

	report, err := e.Sync(SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Success {
		t.Error("expected Success=false with an unknown tool")
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "no-such-tool") {
		t.Errorf("errors = %v", report.Errors)
	}
	if _, err := os.Stat(filepath.Join(root, ".cursorrules")); err != nil {
		t.Errorf("remaining tool not synced: %v", err)
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	root := setupProject(t, []string{"cursor"})
	e := New(root)

	report, err := e.Sync(SyncOptions{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Actions) != 1 || !strings.HasPrefix(report.Actions[0], "[dry-run]") {
		t.Errorf("actions = %v", report.Actions)
	}
	if _, err := os.Stat(filepath.Join(root, ".cursorrules")); !os.IsNotExist(err) {
		t.Error(".cursorrules written during dry run")
	}
	if _, err := os.Stat(project.LedgerPath(root)); !os.IsNotExist(err) {
		t.Error("ledger written during dry run")
	}
}

func TestMarkerStableAcrossSyncs(t *testing.T) {
	root := setupProject(t, []string{"claude"})
	e := New(root)
	mustSync(t, e)

	led, err := ledger.Load(project.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	first := led.Intents[0].Projections[0].Marker

	writeRule(t, root, "table-tests.yaml", secondRule)
	mustSync(t, e)

	led, err = ledger.Load(project.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if got := led.Intents[0].Projections[0].Marker; got != first {
		t.Errorf("marker changed across syncs: %q -> %q", first, got)
	}

	data, _ := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if strings.Count(string(data), "<!-- rulekeep:block:") != 1 {
		t.Errorf("expected exactly one managed block:\n%s", data)
	}
}

func TestSyncPreservesUserContentInMarkdown(t *testing.T) {
	root := setupProject(t, []string{"claude"})
	path := filepath.Join(root, "CLAUDE.md")
	if err := os.WriteFile(path, []byte("# My project\n\nHand-written notes.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	e := New(root)
	mustSync(t, e)

	data, _ := os.ReadFile(path)
	text := string(data)
	if !strings.Contains(text, "Hand-written notes.") {
		t.Errorf("user content lost:\n%s", text)
	}
	if !strings.Contains(text, "no-panics") {
		t.Errorf("managed content missing:\n%s", text)
	}
}

func TestFixHealthyProject(t *testing.T) {
	root := setupProject(t, []string{"cursor"})
	e := New(root)
	mustSync(t, e)

	report, err := e.Fix(SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Success || len(report.Actions) != 1 || report.Actions[0] != "No fixes needed" {
		t.Errorf("report = %+v", report)
	}
}

func TestFixRepairsDriftAndMissing(t *testing.T) {
	root := setupProject(t, []string{"cursor", "claude"})
	e := New(root)
	mustSync(t, e)

	if err := os.Remove(filepath.Join(root, ".cursorrules")); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "CLAUDE.md")
	data, _ := os.ReadFile(path)
	edited := strings.Replace(string(data), "panicking", "exploding", 1)
	if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := e.Fix(SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Success {
		t.Fatalf("fix errors: %v", report.Errors)
	}

	var fixed, recreated bool
	for _, action := range report.Actions {
		if strings.Contains(action, "Fixed 1 drifted") {
			fixed = true
		}
		if strings.Contains(action, "Recreated 1 missing") {
			recreated = true
		}
	}
	if !fixed || !recreated {
		t.Errorf("actions = %v", report.Actions)
	}

	if check := mustCheck(t, e); check.Status != StatusHealthy {
		t.Errorf("status after fix = %s", check.Status)
	}
}

func TestFixRefusesBrokenLedger(t *testing.T) {
	root := setupProject(t, []string{"cursor"})
	if err := os.WriteFile(project.LedgerPath(root), []byte("version: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := New(root).Fix(SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Success {
		t.Error("expected failure on corrupt ledger")
	}

	// The corrupt file must survive untouched.
	data, _ := os.ReadFile(project.LedgerPath(root))
	if string(data) != "version: [broken" {
		t.Errorf("corrupt ledger was modified: %q", data)
	}
}

func TestNoWaitFailsWhenLockHeld(t *testing.T) {
	root := setupProject(t, []string{"cursor"})

	held := ledger.NewLock(project.LockPath(root))
	if err := held.Acquire(); err != nil {
		t.Fatal(err)
	}
	defer held.Release()

	_, err := New(root).Sync(SyncOptions{NoWait: true})
	if err != ledger.ErrLockHeld {
		t.Errorf("err = %v, want ErrLockHeld", err)
	}
}

func TestBlockingSyncWaitsForLock(t *testing.T) {
	root := setupProject(t, []string{"cursor"})

	held := ledger.NewLock(project.LockPath(root))
	if err := held.Acquire(); err != nil {
		t.Fatal(err)
	}

	type result struct {
		report *SyncReport
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := New(root).Sync(SyncOptions{})
		done <- result{report, err}
	}()

	select {
	case <-done:
		t.Fatal("sync completed while the lock was held")
	case <-time.After(100 * time.Millisecond):
	}

	if err := held.Release(); err != nil {
		t.Fatal(err)
	}

	res := <-done
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !res.report.Success {
		t.Fatalf("sync errors: %v", res.report.Errors)
	}

	led, err := ledger.Load(project.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if len(led.Intents) != 1 {
		t.Errorf("intents = %d, want 1", len(led.Intents))
	}
}

func TestConcurrentSyncsSerialize(t *testing.T) {
	root := setupProject(t, []string{"cursor", "claude"})

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			report, err := New(root).Sync(SyncOptions{})
			if err == nil && !report.Success {
				err = fmt.Errorf("sync errors: %v", report.Errors)
			}
			errs <- err
		}()
	}
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent sync: %v", err)
		}
	}

	// The second sync must have observed the first's ledger: one intent per
	// tool, one managed block, a healthy check.
	led, err := ledger.Load(project.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if len(led.Intents) != 2 {
		t.Fatalf("intents = %d, want 2", len(led.Intents))
	}

	data, _ := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if n := strings.Count(string(data), "<!-- rulekeep:block:"); n != 1 {
		t.Errorf("managed block count = %d, want 1", n)
	}
	if report := mustCheck(t, New(root)); report.Status != StatusHealthy {
		t.Errorf("status = %s", report.Status)
	}
}

func TestSecondSyncIsIdempotent(t *testing.T) {
	root := setupProject(t, []string{"cursor", "claude"})
	e := New(root)
	mustSync(t, e)

	files := []string{".cursorrules", "CLAUDE.md"}
	before := map[string][]byte{}
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			t.Fatal(err)
		}
		before[name] = data
	}
	led, err := ledger.Load(project.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	projBefore := countProjections(led)

	mustSync(t, e)

	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, before[name]) {
			t.Errorf("%s changed on idempotent re-sync:\nbefore:\n%s\nafter:\n%s", name, before[name], data)
		}
	}

	led, err = ledger.Load(project.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if got := countProjections(led); got != projBefore {
		t.Errorf("projection count changed: %d -> %d", projBefore, got)
	}
}

func countProjections(led *ledger.Ledger) int {
	n := 0
	for _, intent := range led.Intents {
		n += len(intent.Projections)
	}
	return n
}

func TestFailedWriteLeavesNoIntent(t *testing.T) {
	root := setupProject(t, []string{"cursor"})

	// A symlinked target makes the atomic writer refuse the write.
	if err := os.Symlink(filepath.Join(root, "elsewhere.txt"), filepath.Join(root, ".cursorrules")); err != nil {
		t.Fatal(err)
	}

	report, err := New(root).Sync(SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Success || len(report.Errors) != 1 {
		t.Fatalf("report = %+v", report)
	}

	led, err := ledger.Load(project.LedgerPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if len(led.Intents) != 0 {
		t.Errorf("failed write recorded an intent: %+v", led.Intents)
	}
}

func TestMCPOnlyConfigNeverClobbersFreeformFiles(t *testing.T) {
	root := t.TempDir()
	if err := project.Init(root, []string{"cursor"}); err != nil {
		t.Fatal(err)
	}

	config, err := project.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	config.MCPServers = map[string]any{
		"docs": map[string]any{"command": "docs-server"},
	}
	if err := project.Save(root, config); err != nil {
		t.Fatal(err)
	}

	handWritten := "my own rules\n"
	target := filepath.Join(root, ".cursorrules")
	if err := os.WriteFile(target, []byte(handWritten), 0644); err != nil {
		t.Fatal(err)
	}

	// No rules exist, so a freeform tool has nothing to receive even though
	// it is MCP-capable. Its file must survive untouched.
	report := mustSync(t, New(root))
	if len(report.Actions) != 1 || !strings.Contains(report.Actions[0], "Skipped cursor") {
		t.Errorf("actions = %v", report.Actions)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != handWritten {
		t.Errorf("hand-written config was overwritten: %q", data)
	}
}

package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rulekeep-labs/rulekeep/internal/fsx"
	"github.com/rulekeep-labs/rulekeep/internal/ledger"
)

// Check validates every recorded projection against the live filesystem.
// It takes no lock and never mutates anything; checksums are recomputed
// from the live artifacts, never trusted from the writers.
func (e *Engine) Check() (*CheckReport, error) {
	led, err := ledger.Load(e.LedgerPath())
	if err != nil {
		e.logger.Warn("ledger unreadable", zap.Error(err))
		return BrokenReport(fmt.Sprintf("failed to load ledger: %v", err)), nil
	}

	if len(led.Intents) == 0 {
		return HealthyReport(), nil
	}

	report := &CheckReport{}
	for _, intent := range led.Intents {
		for idx := range intent.Projections {
			e.checkProjection(intent, &intent.Projections[idx], report)
		}
	}
	report.resolve()
	return report, nil
}

func (e *Engine) checkProjection(intent *ledger.Intent, p *ledger.Projection, report *CheckReport) {
	item := func(description string) DriftItem {
		return DriftItem{IntentID: intent.ID, Tool: p.Tool, File: p.File, Description: description}
	}
	path := filepath.Join(e.root, p.File)

	switch p.Backend {
	case ledger.BackendFileManaged:
		actual, err := fsx.ChecksumFile(path)
		if err != nil {
			report.Missing = append(report.Missing, item("file not found"))
			return
		}
		if actual != p.Checksum {
			report.Drifted = append(report.Drifted, item(fmt.Sprintf(
				"checksum mismatch: expected %s, got %s", p.Checksum, actual)))
		}

	case ledger.BackendTextBlock:
		data, err := os.ReadFile(path)
		if err != nil {
			report.Missing = append(report.Missing, item("file not found"))
			return
		}
		block, found, err := fsx.ExtractBlock(string(data), p.Marker, styleFor(p.File))
		if err != nil {
			report.Drifted = append(report.Drifted, item(fmt.Sprintf(
				"managed block markers malformed: %v", err)))
			return
		}
		if !found {
			report.Missing = append(report.Missing, item(fmt.Sprintf(
				"marker %s not found in file", p.Marker)))
			return
		}
		if actual := fsx.ChecksumString(block); actual != p.Checksum {
			report.Drifted = append(report.Drifted, item(fmt.Sprintf(
				"block checksum mismatch: expected %s, got %s", p.Checksum, actual)))
		}

	case ledger.BackendJSONKey:
		data, err := os.ReadFile(path)
		if err != nil {
			report.Missing = append(report.Missing, item("file not found"))
			return
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			report.Drifted = append(report.Drifted, item(fmt.Sprintf("invalid JSON: %v", err)))
			return
		}
		actual, ok := fsx.GetPath(doc, p.Path)
		if !ok {
			report.Missing = append(report.Missing, item(fmt.Sprintf(
				"key %s not found", p.Path)))
			return
		}
		if !valuesEqual(actual, p.Value) {
			report.Drifted = append(report.Drifted, item(fmt.Sprintf(
				"value mismatch at %s", p.Path)))
		}

	default:
		report.Drifted = append(report.Drifted, item(fmt.Sprintf(
			"unknown projection backend %q", p.Backend)))
	}
}

// valuesEqual compares two values through a JSON round trip, so a YAML
// int from the ledger equals the float64 the JSON parser produced.
func valuesEqual(a, b any) bool {
	aj, errA := json.Marshal(normalize(a))
	bj, errB := json.Marshal(normalize(b))
	if errA != nil || errB != nil {
		return false
	}
	return string(aj) == string(bj)
}

// normalize converts YAML-decoded map[any]any trees into JSON-compatible
// map[string]any trees.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = normalize(inner)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[fmt.Sprintf("%v", k)] = normalize(inner)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, inner := range val {
			a[i] = normalize(inner)
		}
		return a
	default:
		return val
	}
}

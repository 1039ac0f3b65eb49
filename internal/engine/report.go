package engine

import "fmt"

// CheckStatus is the overall outcome of a check.
type CheckStatus string

const (
	// StatusHealthy means every projection verified present and matching.
	StatusHealthy CheckStatus = "healthy"
	// StatusMissing means at least one projection's target is absent.
	// Missing takes precedence over Drifted when both exist.
	StatusMissing CheckStatus = "missing"
	// StatusDrifted means a target is present but no longer matches.
	StatusDrifted CheckStatus = "drifted"
	// StatusBroken means the ledger itself is corrupt or unreadable.
	StatusBroken CheckStatus = "broken"
)

// DriftItem describes one projection that is missing or drifted.
type DriftItem struct {
	IntentID    string `yaml:"intent_id"`
	Tool        string `yaml:"tool"`
	File        string `yaml:"file"`
	Description string `yaml:"description"`
}

// CheckReport is the outcome of a check operation.
type CheckReport struct {
	Status   CheckStatus `yaml:"status"`
	Drifted  []DriftItem `yaml:"drifted,omitempty"`
	Missing  []DriftItem `yaml:"missing,omitempty"`
	Messages []string    `yaml:"messages,omitempty"`
}

// HealthyReport returns a report with no issues.
func HealthyReport() *CheckReport {
	return &CheckReport{Status: StatusHealthy}
}

// BrokenReport returns a report for an unreadable ledger.
func BrokenReport(message string) *CheckReport {
	return &CheckReport{Status: StatusBroken, Messages: []string{message}}
}

// resolve sets the overall status from the collected items. Missing wins
// over Drifted so operators see absent files first.
func (r *CheckReport) resolve() {
	switch {
	case len(r.Missing) > 0:
		r.Status = StatusMissing
	case len(r.Drifted) > 0:
		r.Status = StatusDrifted
	default:
		r.Status = StatusHealthy
	}
}

// SyncReport is the outcome of a sync or fix operation.
type SyncReport struct {
	// Success is true when no per-tool errors occurred.
	Success bool `yaml:"success"`
	// Actions lists what was done, in order.
	Actions []string `yaml:"actions,omitempty"`
	// Errors lists per-tool failures. A failure for one tool does not
	// stop the others.
	Errors []string `yaml:"errors,omitempty"`
}

func (r *SyncReport) addAction(format string, args ...any) {
	r.Actions = append(r.Actions, fmt.Sprintf(format, args...))
}

func (r *SyncReport) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

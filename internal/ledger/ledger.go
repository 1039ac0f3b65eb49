package ledger

import (
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"

	"github.com/rulekeep-labs/rulekeep/internal/fsx"
)

// Version is the current ledger schema version.
const Version = "1.0"

// ErrCorrupt marks a ledger file that exists but cannot be trusted. A
// corrupt ledger is never silently replaced; callers report Broken and
// leave the file for the operator.
var ErrCorrupt = errors.New("ledger corrupt")

// Ledger is the ordered set of active intents.
type Ledger struct {
	Version string    `yaml:"version"`
	Intents []*Intent `yaml:"intents"`
}

// New returns an empty ledger at the current schema version.
func New() *Ledger {
	return &Ledger{Version: Version}
}

// Load reads the ledger at path. A missing file yields a fresh empty
// ledger; an unreadable or unparseable file wraps ErrCorrupt.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorrupt, path, err)
	}

	var l Ledger
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrCorrupt, path, err)
	}
	if l.Version == "" {
		return nil, fmt.Errorf("%w: %s has no version field", ErrCorrupt, path)
	}

	stored, err := semver.NewVersion(l.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has invalid version %q", ErrCorrupt, path, l.Version)
	}
	current := semver.MustParse(Version)
	if stored.Major() > current.Major() {
		return nil, fmt.Errorf("%w: %s was written by a newer schema (%s > %s)", ErrCorrupt, path, l.Version, Version)
	}

	return &l, nil
}

// Save writes the ledger to path atomically. The previous ledger is never
// left partially overwritten.
func (l *Ledger) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := fsx.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// AddIntent appends an intent.
func (l *Ledger) AddIntent(i *Intent) {
	l.Intents = append(l.Intents, i)
}

// RemoveIntent deletes the intent with the given UUID and returns it, or
// nil when absent.
func (l *Ledger) RemoveIntent(uuid string) *Intent {
	for idx, i := range l.Intents {
		if i.UUID == uuid {
			l.Intents = append(l.Intents[:idx], l.Intents[idx+1:]...)
			return i
		}
	}
	return nil
}

// GetIntent returns the intent with the given UUID, or nil.
func (l *Ledger) GetIntent(uuid string) *Intent {
	for _, i := range l.Intents {
		if i.UUID == uuid {
			return i
		}
	}
	return nil
}

// FindByRule returns every intent applying the given rule id.
func (l *Ledger) FindByRule(ruleID string) []*Intent {
	var out []*Intent
	for _, i := range l.Intents {
		if i.ID == ruleID {
			out = append(out, i)
		}
	}
	return out
}

// Upsert returns the existing intent for ruleID, or a fresh one when none
// exists. An existing intent keeps its UUID and creation time; only the
// args snapshot is refreshed. Projections stay in place so callers can
// carry stable markers forward before replacing them.
func (l *Ledger) Upsert(ruleID string, args map[string]any) *Intent {
	for _, i := range l.Intents {
		if i.ID == ruleID {
			i.Args = args
			return i
		}
	}
	i := NewIntent(ruleID, args)
	l.AddIntent(i)
	return i
}

// ProjectionsForFile returns every (intent, projection) pair targeting the
// given file path.
func (l *Ledger) ProjectionsForFile(file string) []ProjectionRef {
	var out []ProjectionRef
	for _, i := range l.Intents {
		for idx := range i.Projections {
			if i.Projections[idx].File == file {
				out = append(out, ProjectionRef{Intent: i, Projection: &i.Projections[idx]})
			}
		}
	}
	return out
}

// ProjectionRef pairs a projection with its owning intent.
type ProjectionRef struct {
	Intent     *Intent
	Projection *Projection
}

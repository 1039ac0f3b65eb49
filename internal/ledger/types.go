package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Backend discriminates the content-kind of a projection.
type Backend string

const (
	// BackendTextBlock is a marker-delimited block inside a shared file.
	BackendTextBlock Backend = "text_block"
	// BackendJSONKey is a key-value pair at a dotted path in a JSON file.
	BackendJSONKey Backend = "json_key"
	// BackendFileManaged is a file owned entirely by this system.
	BackendFileManaged Backend = "file_managed"
)

// Projection records one artifact written for an intent: which tool, which
// file, and enough state (checksum, marker, or key-value) to detect drift.
type Projection struct {
	Tool    string  `yaml:"tool"`
	File    string  `yaml:"file"` // relative to the project root
	Backend Backend `yaml:"backend"`

	// Marker is the stable block identifier (text_block only).
	Marker string `yaml:"marker,omitempty"`
	// Checksum is "sha256:<hex>" of the managed content
	// (text_block and file_managed).
	Checksum string `yaml:"checksum,omitempty"`
	// Path is the dotted key path (json_key only).
	Path string `yaml:"path,omitempty"`
	// Value is the last-written value (json_key only).
	Value any `yaml:"value,omitempty"`
}

// TextBlock builds a text-block projection.
func TextBlock(tool, file, marker, checksum string) Projection {
	return Projection{Tool: tool, File: file, Backend: BackendTextBlock, Marker: marker, Checksum: checksum}
}

// JSONKey builds a json-key projection.
func JSONKey(tool, file, path string, value any) Projection {
	return Projection{Tool: tool, File: file, Backend: BackendJSONKey, Path: path, Value: value}
}

// FileManaged builds a whole-file projection.
func FileManaged(tool, file, checksum string) Projection {
	return Projection{Tool: tool, File: file, Backend: BackendFileManaged, Checksum: checksum}
}

// Intent is one applied rule instance. Its UUID never changes once
// created; re-syncs mutate the intent in place.
type Intent struct {
	// ID names the rule this intent applies (e.g., "rules:cursor").
	ID string `yaml:"id"`
	// UUID is the stable instance identifier.
	UUID string `yaml:"uuid"`
	// CreatedAt is when the intent was first recorded.
	CreatedAt time.Time `yaml:"created_at"`
	// Args snapshots the arguments the rule was applied with.
	Args map[string]any `yaml:"args,omitempty"`
	// Projections lists every artifact written for this intent.
	Projections []Projection `yaml:"projections"`
}

// NewIntent creates an intent with a fresh UUID and the current time.
func NewIntent(id string, args map[string]any) *Intent {
	return &Intent{
		ID:        id,
		UUID:      uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Args:      args,
	}
}

// AddProjection appends a projection to the intent.
func (i *Intent) AddProjection(p Projection) {
	i.Projections = append(i.Projections, p)
}

// FindProjection returns the projection for (tool, file, backend), if any.
// At most one projection exists per such triple.
func (i *Intent) FindProjection(tool, file string, backend Backend) *Projection {
	for idx := range i.Projections {
		p := &i.Projections[idx]
		if p.Tool == tool && p.File == file && p.Backend == backend {
			return p
		}
	}
	return nil
}

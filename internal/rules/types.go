package rules

// Severity is how strictly a rule should be enforced.
type Severity string

const (
	// SeveritySuggestion marks a rule that can be optionally followed.
	SeveritySuggestion Severity = "suggestion"
	// SeverityMandatory marks a rule that must be followed.
	SeverityMandatory Severity = "mandatory"
)

// Definition is one canonical rule loaded from a rule file.
type Definition struct {
	Meta     Meta      `yaml:"meta"`
	Content  Content   `yaml:"content"`
	Examples *Examples `yaml:"examples,omitempty"`
	Targets  *Targets  `yaml:"targets,omitempty"`
}

// Meta identifies and classifies a rule.
type Meta struct {
	// ID is the unique rule identifier (e.g., "python-snake-case").
	ID       string   `yaml:"id"`
	Severity Severity `yaml:"severity"`
	Tags     []string `yaml:"tags,omitempty"`
}

// Content carries the instruction text.
type Content struct {
	Instruction string `yaml:"instruction"`
}

// Examples demonstrate the rule.
type Examples struct {
	// Positive examples follow the rule correctly.
	Positive []string `yaml:"positive,omitempty"`
	// Negative examples violate the rule.
	Negative []string `yaml:"negative,omitempty"`
}

// Targets restricts which files a rule applies to.
type Targets struct {
	// Files holds glob patterns (e.g., "**/*.py").
	Files []string `yaml:"files,omitempty"`
}

// ID is a convenience accessor for the rule identifier.
func (d *Definition) ID() string {
	return d.Meta.ID
}

// Mandatory reports whether the rule must be followed.
func (d *Definition) Mandatory() bool {
	return d.Meta.Severity == SeverityMandatory
}

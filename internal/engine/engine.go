package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/rulekeep-labs/rulekeep/internal/fsx"
	"github.com/rulekeep-labs/rulekeep/internal/project"
	"github.com/rulekeep-labs/rulekeep/internal/registry"
	"github.com/rulekeep-labs/rulekeep/internal/writer"
)

// Engine reconciles ledger state with the filesystem for one project root.
type Engine struct {
	root     string
	registry *registry.Registry
	writers  *writer.Selector
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger installs a logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRegistry replaces the built-in tool registry.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// New returns an engine for the project at root.
func New(root string, opts ...Option) *Engine {
	e := &Engine{
		root:     root,
		registry: registry.NewWithBuiltins(),
		writers:  writer.NewSelector(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the project root path.
func (e *Engine) Root() string {
	return e.root
}

// LedgerPath returns the path of the project's ledger file.
func (e *Engine) LedgerPath() string {
	return project.LedgerPath(e.root)
}

// styleFor picks the marker comment style for a target file: hash comments
// for line-oriented formats, angle-bracket comments for everything else.
func styleFor(file string) fsx.CommentStyle {
	for _, ext := range []string{".yaml", ".yml", ".toml"} {
		if strings.HasSuffix(file, ext) {
			return fsx.CommentHash
		}
	}
	return fsx.CommentHTML
}

package validator

import (
	"github.com/Ovid/cyclonedx-parser/pkg/bom/diag"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/document"
)

// Check validates one document value against one expectation. It records
// findings through the Context and returns whether the value passed.
// Failed checks return false after recording; they never panic on document
// content.
type Check interface {
	Check(ctx *Context, v *document.Value) bool
}

// CheckFunc adapts a plain function to the Check interface.
type CheckFunc func(ctx *Context, v *document.Value) bool

// Check calls f.
func (f CheckFunc) Check(ctx *Context, v *document.Value) bool {
	return f(ctx, v)
}

// DefaultMaxDepth is the recursion budget applied when an Engine is built
// without WithMaxDepth. Nesting in the input document is author-controlled,
// so descent is always bounded.
const DefaultMaxDepth = 64

// Engine binds a root check to run settings. It holds no per-run state:
// one Engine may validate any number of documents, concurrently or not.
type Engine struct {
	root     Check
	maxDepth int
}

// Option adjusts an Engine at construction.
type Option func(*Engine)

// WithMaxDepth replaces the recursion budget. The depth must be positive.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n <= 0 {
			panic(diag.NewIntegrationError("engine", "max depth must be positive, got %d", n))
		}
		e.maxDepth = n
	}
}

// NewEngine builds an engine around the given root check.
func NewEngine(root Check, opts ...Option) *Engine {
	if root == nil {
		panic(diag.NewIntegrationError("engine", "root check is nil"))
	}
	e := &Engine{root: root, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate runs the root check over the document and returns the run's
// report. Each call owns a fresh Context, so identifier uniqueness and
// diagnostics never leak between runs.
func (e *Engine) Validate(doc *document.Value) *diag.Report {
	if doc == nil {
		panic(diag.NewIntegrationError("validate", "document is nil"))
	}
	ctx := newContext(e.maxDepth)
	e.root.Check(ctx, doc)
	return ctx.report
}

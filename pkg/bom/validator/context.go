package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ovid/cyclonedx-parser/pkg/bom/diag"
)

// Context carries the mutable state of one validation run: the current
// path, the diagnostic report, the identifier registry, and the recursion
// budget. A Context is created by Engine.Validate, owned exclusively by
// that call, and discarded when it returns. Checks receive it by reference
// and must not retain it.
type Context struct {
	segments []string
	report   *diag.Report
	refs     map[string]struct{}
	depth    int
	maxDepth int
}

func newContext(maxDepth int) *Context {
	return &Context{
		report:   diag.NewReport(),
		refs:     make(map[string]struct{}),
		maxDepth: maxDepth,
	}
}

// Report returns the run's diagnostic report.
func (c *Context) Report() *diag.Report {
	return c.report
}

// PushField extends the path with an object field name.
func (c *Context) PushField(name string) {
	c.segments = append(c.segments, name)
}

// PushIndex extends the path with an array index.
func (c *Context) PushIndex(i int) {
	c.segments = append(c.segments, strconv.Itoa(i))
}

// Pop removes the most recent path segment.
func (c *Context) Pop() {
	if len(c.segments) == 0 {
		panic(diag.NewIntegrationError("pop", "path is already empty"))
	}
	c.segments = c.segments[:len(c.segments)-1]
}

// Path renders the current location as a dot-joined name. The empty path
// renders as "<unknown>".
func (c *Context) Path() string {
	if len(c.segments) == 0 {
		return "<unknown>"
	}
	return strings.Join(c.segments, ".")
}

// FieldPath renders the current location extended by one field name
// without mutating the path. At the root it is the bare field name.
func (c *Context) FieldPath(name string) string {
	if len(c.segments) == 0 {
		return name
	}
	return strings.Join(c.segments, ".") + "." + name
}

// Errorf records an error diagnostic at the current path.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.report.AddError(c.Path(), fmt.Sprintf(format, args...))
}

// Warnf records a warning diagnostic at the current path.
func (c *Context) Warnf(format string, args ...interface{}) {
	c.report.AddWarning(c.Path(), fmt.Sprintf(format, args...))
}

// RegisterRef records an identifier in the run's registry. It returns
// false when the identifier was already registered by an earlier value
// anywhere in the document.
func (c *Context) RegisterRef(ref string) bool {
	if _, dup := c.refs[ref]; dup {
		return false
	}
	c.refs[ref] = struct{}{}
	return true
}

// Descend charges one level against the recursion budget. When the budget
// is exhausted it records an error at the current path and returns false;
// the caller must stop descending. Every Descend that returns true must be
// paired with an Ascend.
func (c *Context) Descend() bool {
	if c.depth >= c.maxDepth {
		c.Errorf("Value %s exceeds maximum nesting depth of %d", c.Path(), c.maxDepth)
		return false
	}
	c.depth++
	return true
}

// Ascend returns one level of the recursion budget.
func (c *Context) Ascend() {
	c.depth--
}

package diag

import "fmt"

// Severity classifies a diagnostic. Errors invalidate the document,
// warnings do not.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity name, so JSON output carries "error"
// rather than a bare integer.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is one recorded finding. Message embeds the rendered path and
// is suitable for direct display; Path carries the same location separately
// for structured consumers.
type Diagnostic struct {
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Report accumulates the diagnostics of one validation run in insertion
// order. The zero value is not usable; call NewReport.
type Report struct {
	diags  []Diagnostic
	errors int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// AddError records an error diagnostic.
func (r *Report) AddError(path, message string) {
	r.diags = append(r.diags, Diagnostic{Path: path, Message: message, Severity: SeverityError})
	r.errors++
}

// AddWarning records a warning diagnostic.
func (r *Report) AddWarning(path, message string) {
	r.diags = append(r.diags, Diagnostic{Path: path, Message: message, Severity: SeverityWarning})
}

// Valid reports whether the run recorded no errors. Warnings never affect
// validity.
func (r *Report) Valid() bool {
	return r.errors == 0
}

// Len returns the total diagnostic count, errors and warnings together.
func (r *Report) Len() int {
	return len(r.diags)
}

// ErrorCount returns the number of error diagnostics.
func (r *Report) ErrorCount() int {
	return r.errors
}

// WarningCount returns the number of warning diagnostics.
func (r *Report) WarningCount() int {
	return len(r.diags) - r.errors
}

// Errors returns the error messages in insertion order.
func (r *Report) Errors() []string {
	return r.messages(SeverityError)
}

// Warnings returns the warning messages in insertion order.
func (r *Report) Warnings() []string {
	return r.messages(SeverityWarning)
}

func (r *Report) messages(sev Severity) []string {
	var out []string
	for _, d := range r.diags {
		if d.Severity == sev {
			out = append(out, d.Message)
		}
	}
	return out
}

// Diagnostics returns a copy of every diagnostic in insertion order.
func (r *Report) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

// Frame marks a point in a report's history for later Restore. Frames are
// values and may be held concurrently at different depths of speculation.
type Frame struct {
	size   int
	errors int
}

// Snapshot captures the report's current state.
func (r *Report) Snapshot() Frame {
	return Frame{size: len(r.diags), errors: r.errors}
}

// Restore truncates the report back to the frame and returns the removed
// diagnostics in insertion order. Restoring a frame ahead of the report's
// current state panics with an IntegrationError, since it means frames
// were restored out of order.
func (r *Report) Restore(f Frame) []Diagnostic {
	if f.size > len(r.diags) || f.errors > r.errors {
		panic(NewIntegrationError("restore", "frame is ahead of the report; frames must be restored innermost first"))
	}
	removed := make([]Diagnostic, len(r.diags)-f.size)
	copy(removed, r.diags[f.size:])
	r.diags = r.diags[:f.size]
	r.errors = f.errors
	return removed
}

// ErrorsSince returns how many error diagnostics were added after the
// frame was taken. It does not modify the report.
func (r *Report) ErrorsSince(f Frame) int {
	return r.errors - f.errors
}

// Replay appends previously removed diagnostics, preserving their recorded
// paths, messages, and severities.
func (r *Report) Replay(diags []Diagnostic) {
	for _, d := range diags {
		r.diags = append(r.diags, d)
		if d.Severity == SeverityError {
			r.errors++
		}
	}
}

// IntegrationError reports misuse of the validation API itself: a malformed
// schema, an out-of-order snapshot restore, a text check wired where no
// scalar can occur. It indicates a bug in the integrating code, never a
// fault in the input document, and is raised by panic rather than recorded
// in a Report.
type IntegrationError struct {
	Op     string // the operation that was misused
	Reason string
}

// NewIntegrationError builds an IntegrationError for the given operation.
func NewIntegrationError(op, format string, args ...interface{}) *IntegrationError {
	return &IntegrationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("validation integration error: %s: %s", e.Op, e.Reason)
}

// Package diag collects validation diagnostics for one document run.
//
// A Report is an append-only sink of Diagnostics in two severities. Errors
// invalidate the document; warnings are informational and never affect
// validity. Insertion order is significant and preserved in every accessor.
//
// # Speculative Validation
//
// Snapshot and Restore support speculative checks: a caller snapshots the
// report, attempts a validation that may fail, and restores the snapshot to
// take back everything the attempt added. The removed diagnostics are
// returned so the caller can discard or replay them:
//
//	frame := report.Snapshot()
//	ok := attempt()
//	added := report.Restore(frame)
//	if ok {
//	    report.Replay(added) // keep the attempt's warnings
//	}
//
// Frames are plain values, so speculation nests. Restoring a frame that is
// ahead of the report's current state is caller misuse and panics with an
// IntegrationError.
//
// # Integration Errors
//
// IntegrationError is the fatal counterpart to a recorded Diagnostic. It
// signals a bug in how the validation API is wired (a malformed schema, a
// misused snapshot), never a fault in the input document, and is raised by
// panic rather than recorded.
package diag

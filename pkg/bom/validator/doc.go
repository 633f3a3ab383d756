// Package validator implements the combinator-based check engine that
// document validation is built from.
//
// # Checks
//
// A Check inspects one document value and reports findings into the run's
// diagnostic report. Checks compose: primitives (Literal, Pattern, Enum)
// handle scalar values, composites (Object, ArrayOf, OneOf) build structure
// out of other checks, and CheckFunc adapts any function into a Check for
// bespoke logic.
//
// # Running
//
// An Engine binds a root check to run settings and validates one document
// per call:
//
//	engine := validator.NewEngine(rootCheck)
//	report := engine.Validate(doc)
//	if !report.Valid() {
//	    for _, msg := range report.Errors() {
//	        fmt.Println(msg)
//	    }
//	}
//
// An Engine is safe for concurrent use; every Validate call owns a fresh
// Context carrying the path, the diagnostic report, and the identifier
// registry for that run.
//
// # Faults
//
// Faults in the document are recorded as diagnostics and validation
// continues with the next field or element. Faults in the schema wiring
// itself (a nil check, a one-of with a single alternative, a text check
// placed where no scalar can occur) panic with diag.IntegrationError
// instead, since they are bugs in the integrating code.
package validator

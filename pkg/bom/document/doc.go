// Package document defines the in-memory value tree that validation runs
// against. A decoded SBOM becomes a tree of Value nodes, one per JSON value,
// tagged with a Kind that names its shape.
//
// The tree is independent of any particular decoder. Package decode builds
// one from JSON; tests build small trees directly with the New* constructors.
//
// # Scalars
//
// Scalar values (string, number, boolean) carry their text rendering in
// Text. Numbers keep the literal text from the source document rather than
// a float conversion, so a value like 1.50 reports as "1.50" in
// diagnostics, not "1.5".
//
// # Shape Inspection
//
// Checks inspect a value's Kind before descending:
//
//	if v.Kind != document.KindObject {
//	    // report shape mismatch
//	}
//	name, ok := v.Field("name")
//
// Values are read-only once built. Validation never mutates the tree.
package document

// Package schema holds the CycloneDX document schemas expressed as
// validator checks.
//
// Each supported specification version is one root check built from the
// validator package's combinators. V15 covers CycloneDX 1.5: the
// bomFormat/specVersion discriminators, serial number and version formats,
// the metadata object, and the recursive component tree with its bom-ref
// uniqueness rule.
//
// The catalog is configuration, not mechanism: everything here is field
// names, patterns, and member sets wired into the generic engine. Adding
// another version means adding another root check, not touching the
// validator package.
package schema

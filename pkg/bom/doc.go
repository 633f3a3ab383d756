// Package bom validates CycloneDX software bills of materials.
//
// A document is decoded from JSON, walked against the CycloneDX 1.5
// schema, and the findings come back as a Result: a validity verdict plus
// ordered, path-qualified errors and warnings.
//
// # Architecture
//
// The work is split across subpackages:
//
// - document: the decoded value tree validation runs against
// - decode: JSON decoding into the value tree
// - diag: diagnostic collection with snapshot/restore
// - validator: the combinator check engine
// - schema: the CycloneDX schema catalogs built on the engine
//
// # Basic Usage
//
// Validate a file:
//
//	result, err := bom.ValidateFile("sbom.json")
//	if err != nil {
//	    log.Fatal(err) // could not read or decode
//	}
//	if !result.Valid {
//	    for _, msg := range result.Errors {
//	        fmt.Println(msg)
//	    }
//	}
//
// Operational failures (unreadable file, malformed JSON) surface as Go
// errors. Findings about the document itself never do; they are carried in
// the Result so one pass reports every violation at once.
package bom

// Cyclonedx validates CycloneDX 1.5 software bills of materials.
//
// It checks JSON documents against the CycloneDX 1.5 schema and
// document-wide rules, archives validation runs to SQLite, and can
// watch files for changes and re-validate on the fly.
//
// Usage:
//
//	# Validate a single file
//	cyclonedx validate --file sbom.json
//
//	# Validate every *.json in a directory
//	cyclonedx validate --dir sboms/
//
//	# Re-validate on change
//	cyclonedx watch --dir sboms/
//
//	# Query past validation runs
//	cyclonedx history list --time-range "2026-08-01T00:00:00Z/2026-08-25T00:00:00Z"
//
//	# Show version information
//	cyclonedx version
//
// For complete documentation, see: https://github.com/Ovid/cyclonedx-parser
package main

func main() {
	Execute()
}

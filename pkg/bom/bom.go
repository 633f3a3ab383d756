package bom

import (
	"fmt"
	"os"

	"github.com/Ovid/cyclonedx-parser/pkg/bom/decode"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/diag"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/document"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/schema"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/validator"
)

// Result is the outcome of validating one document. Errors and Warnings
// are display-ready messages in the order they were found; Diagnostics
// carries the same findings in structured form.
type Result struct {
	Valid       bool              `json:"valid"`
	Errors      []string          `json:"errors,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
}

// Validator validates CycloneDX 1.5 documents. It is immutable after
// construction and safe for concurrent use.
type Validator struct {
	engine *validator.Engine
}

// Option adjusts a Validator at construction.
type Option func(*settings)

type settings struct {
	maxDepth int
}

// WithMaxDepth bounds how deeply nested a document may be before
// validation reports a depth error. The default is
// validator.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(s *settings) {
		s.maxDepth = n
	}
}

// New builds a Validator for CycloneDX 1.5.
func New(opts ...Option) *Validator {
	s := settings{maxDepth: validator.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&s)
	}
	engine := validator.NewEngine(schema.V15(), validator.WithMaxDepth(s.maxDepth))
	return &Validator{engine: engine}
}

// ValidateFile reads, decodes, and validates one SBOM file.
func (v *Validator) ValidateFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return v.ValidateBytes(data)
}

// ValidateBytes decodes and validates one SBOM document.
func (v *Validator) ValidateBytes(data []byte) (*Result, error) {
	doc, err := decode.Bytes(data)
	if err != nil {
		return nil, err
	}
	return v.ValidateDocument(doc), nil
}

// ValidateDocument validates an already-decoded document tree.
func (v *Validator) ValidateDocument(doc *document.Value) *Result {
	report := v.engine.Validate(doc)
	return &Result{
		Valid:       report.Valid(),
		Errors:      report.Errors(),
		Warnings:    report.Warnings(),
		Diagnostics: report.Diagnostics(),
	}
}

// ValidateFile is a convenience wrapper validating one file with default
// settings.
func ValidateFile(path string) (*Result, error) {
	return New().ValidateFile(path)
}

// ValidateBytes is a convenience wrapper validating one document with
// default settings.
func ValidateBytes(data []byte) (*Result, error) {
	return New().ValidateBytes(data)
}

package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat selects how a command renders its results.
type OutputFormat string

const (
	// FormatText renders human-readable output. Default.
	FormatText OutputFormat = "text"
	// FormatJSON renders indented JSON for scripting.
	FormatJSON OutputFormat = "json"
	// FormatCSV renders one row per record for spreadsheet import.
	FormatCSV OutputFormat = "csv"
)

// Formatter renders command results in one output format.
type Formatter interface {
	Format(data interface{}) ([]byte, error)
	FormatTo(w io.Writer, data interface{}) error
}

// CSVMarshaler is implemented by result types that can render themselves
// as CSV rows.
type CSVMarshaler interface {
	CSVHeader() []string
	CSVRows() [][]string
}

// NewFormatter returns the formatter for format. Unrecognized formats
// fall back to text.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{}
	}
}

// formatBytes runs a streaming formatter into memory.
func formatBytes(data interface{}, formatTo func(io.Writer, interface{}) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := formatTo(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TextFormatter prints the value followed by a newline. Result types get
// their human-readable form from a String method.
type TextFormatter struct{}

func (f *TextFormatter) Format(data interface{}) ([]byte, error) {
	return formatBytes(data, f.FormatTo)
}

func (f *TextFormatter) FormatTo(w io.Writer, data interface{}) error {
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter renders JSON, indented by two spaces when Indent is set.
type JSONFormatter struct {
	Indent bool
}

// Format returns the JSON bytes without a trailing newline so callers
// can embed them.
func (f *JSONFormatter) Format(data interface{}) ([]byte, error) {
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

func (f *JSONFormatter) FormatTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// CSVFormatter renders a header row followed by one row per record. The
// data must implement CSVMarshaler.
type CSVFormatter struct{}

func (f *CSVFormatter) Format(data interface{}) ([]byte, error) {
	return formatBytes(data, f.FormatTo)
}

func (f *CSVFormatter) FormatTo(w io.Writer, data interface{}) error {
	m, ok := data.(CSVMarshaler)
	if !ok {
		return fmt.Errorf("type %T does not support CSV output", data)
	}

	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(m.CSVHeader()); err != nil {
		return err
	}
	for _, row := range m.CSVRows() {
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

package decode

import (
	"strings"
	"testing"

	"github.com/Ovid/cyclonedx-parser/pkg/bom/document"
)

func TestBytesShapes(t *testing.T) {
	input := `{
		"bomFormat": "CycloneDX",
		"version": 1,
		"ratio": 1.50,
		"modified": false,
		"missing": null,
		"components": [{"name": "a"}]
	}`

	v, err := Bytes([]byte(input))
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if v.Kind != document.KindObject {
		t.Fatalf("root Kind = %v, want object", v.Kind)
	}

	tests := []struct {
		field    string
		wantKind document.Kind
		wantText string
	}{
		{"bomFormat", document.KindString, "CycloneDX"},
		{"version", document.KindNumber, "1"},
		{"ratio", document.KindNumber, "1.50"},
		{"modified", document.KindBoolean, "false"},
		{"missing", document.KindNull, ""},
		{"components", document.KindArray, ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := v.Field(tt.field)
			if !ok {
				t.Fatalf("Field(%q) missing", tt.field)
			}
			if f.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", f.Kind, tt.wantKind)
			}
			if f.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", f.Text, tt.wantText)
			}
		})
	}

	comps, _ := v.Field("components")
	if comps.Len() != 1 {
		t.Fatalf("components Len() = %d, want 1", comps.Len())
	}
	name, ok := comps.Elems[0].Field("name")
	if !ok || name.Text != "a" {
		t.Errorf("nested name = %v, want a", name)
	}
}

func TestBytesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"truncated object", `{"bomFormat": "CycloneDX"`},
		{"malformed", `{"bomFormat": }`},
		{"trailing data", `{} {}`},
		{"bare delimiter", `}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Bytes([]byte(tt.input)); err == nil {
				t.Errorf("Bytes(%q) error = nil, want error", tt.input)
			}
		})
	}
}

func TestNestingCap(t *testing.T) {
	depth := MaxDepth + 10
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)

	_, err := Bytes([]byte(input))
	if err == nil {
		t.Fatal("Bytes() error = nil, want nesting error")
	}
	if !strings.Contains(err.Error(), "nesting exceeds") {
		t.Errorf("error = %v, want a nesting depth error", err)
	}
}

func TestNestingUnderCap(t *testing.T) {
	depth := 50
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)

	v, err := Bytes([]byte(input))
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if v.Kind != document.KindArray {
		t.Errorf("Kind = %v, want array", v.Kind)
	}
}

func TestReader(t *testing.T) {
	v, err := Reader(strings.NewReader(`{"specVersion": "1.5"}`))
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	f, ok := v.Field("specVersion")
	if !ok || f.Text != "1.5" {
		t.Errorf("specVersion = %v, want 1.5", f)
	}
}

// Package decode turns raw JSON into the document value tree that
// validation consumes. It is the only package that knows the input is
// JSON; everything downstream works on document.Value.
//
// Numbers decode through json.Number so the source literal survives into
// diagnostics: an input of 1.50 reports as "1.50", never "1.5". Nesting is
// capped during the token walk, so a hostile document cannot exhaust the
// stack before validation even starts.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/Ovid/cyclonedx-parser/pkg/bom/document"
)

// MaxDepth caps container nesting while decoding. It is deliberately far
// above any engine recursion budget: the engine reports depth overruns as
// diagnostics, the decoder only guards itself.
const MaxDepth = 512

// Bytes decodes one JSON document from a byte slice.
func Bytes(data []byte) (*document.Value, error) {
	return Reader(bytes.NewReader(data))
}

// Reader decodes one JSON document from a stream. Content after the
// document is an error.
func Reader(r io.Reader) (*document.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := parseValue(dec, 0)
	if err != nil {
		return nil, fmt.Errorf("decode sbom: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode sbom: trailing data after document")
	}
	return v, nil
}

func parseValue(dec *json.Decoder, depth int) (*document.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, tokenErr(err)
	}
	return valueFromToken(dec, tok, depth)
}

func valueFromToken(dec *json.Decoder, tok json.Token, depth int) (*document.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		if depth >= MaxDepth {
			return nil, fmt.Errorf("nesting exceeds %d levels", MaxDepth)
		}
		switch t {
		case '{':
			return parseObject(dec, depth+1)
		case '[':
			return parseArray(dec, depth+1)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return document.NewString(t), nil
	case json.Number:
		return document.NewNumber(string(t)), nil
	case float64:
		// UseNumber makes this unreachable for well-formed input, but the
		// token interface still allows it.
		return document.NewNumber(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case bool:
		return document.NewBool(t), nil
	case nil:
		return document.NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder, depth int) (*document.Value, error) {
	fields := make(map[string]*document.Value)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, tokenErr(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %v, not a string", keyTok)
		}
		val, err := parseValue(dec, depth)
		if err != nil {
			return nil, err
		}
		fields[key] = val
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, tokenErr(err)
	}
	return document.NewObject(fields), nil
}

func parseArray(dec *json.Decoder, depth int) (*document.Value, error) {
	var elems []*document.Value
	for dec.More() {
		el, err := parseValue(dec, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
	}
	if _, err := dec.Token(); err != nil {
		return nil, tokenErr(err)
	}
	return document.NewArray(elems...), nil
}

func tokenErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.New("unexpected end of input")
	}
	return err
}

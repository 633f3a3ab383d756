package document

// Kind names the shape of a value in the document tree.
// The string form appears verbatim in shape mismatch diagnostics.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindNull    Kind = "null"
)

// Value is one node in the document tree. Exactly one of the payload
// fields is meaningful, selected by Kind: Text for scalars, Fields for
// objects, Elems for arrays. Null values carry no payload.
type Value struct {
	Kind   Kind
	Text   string            // scalar rendering (string content, number literal, "true"/"false")
	Fields map[string]*Value // object members
	Elems  []*Value          // array elements
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{Kind: KindString, Text: s}
}

// NewNumber returns a number value. The text is the number's source
// literal, e.g. "1" or "2.50".
func NewNumber(text string) *Value {
	return &Value{Kind: KindNumber, Text: text}
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	text := "false"
	if b {
		text = "true"
	}
	return &Value{Kind: KindBoolean, Text: text}
}

// NewNull returns a null value.
func NewNull() *Value {
	return &Value{Kind: KindNull}
}

// NewObject returns an object value with the given members.
func NewObject(fields map[string]*Value) *Value {
	return &Value{Kind: KindObject, Fields: fields}
}

// NewArray returns an array value with the given elements.
func NewArray(elems ...*Value) *Value {
	return &Value{Kind: KindArray, Elems: elems}
}

// IsScalar reports whether the value is a string, number, or boolean.
// Only scalar values have a text rendering.
func (v *Value) IsScalar() bool {
	switch v.Kind {
	case KindString, KindNumber, KindBoolean:
		return true
	default:
		return false
	}
}

// Field looks up an object member by name. The second return is false
// when the member is absent or the value is not an object. An absent
// member is distinct from a member holding null.
func (v *Value) Field(name string) (*Value, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	f, ok := v.Fields[name]
	return f, ok
}

// Len returns the element count for arrays and the member count for
// objects, and zero for every other kind.
func (v *Value) Len() int {
	switch v.Kind {
	case KindArray:
		return len(v.Elems)
	case KindObject:
		return len(v.Fields)
	default:
		return 0
	}
}

package validator

import (
	"sort"

	"github.com/Ovid/cyclonedx-parser/pkg/bom/diag"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/document"
)

type objectCheck struct {
	fields   map[string]Check
	ordered  []string
	required map[string]struct{}
}

// Object returns a check applying a field schema to an object value.
// Declared fields are validated when present; names listed in required
// produce an error when absent; undeclared members pass through untouched.
// Fields are visited in lexicographic order so diagnostics come out in a
// deterministic order regardless of document key order.
func Object(fields map[string]Check, required ...string) Check {
	ordered := make([]string, 0, len(fields))
	for name, check := range fields {
		if check == nil {
			panic(diag.NewIntegrationError("object", "field %q has a nil check", name))
		}
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	req := make(map[string]struct{}, len(required))
	for _, name := range required {
		if _, ok := fields[name]; !ok {
			panic(diag.NewIntegrationError("object", "required field %q is not declared in the schema", name))
		}
		req[name] = struct{}{}
	}
	return objectCheck{fields: fields, ordered: ordered, required: req}
}

func (c objectCheck) Check(ctx *Context, v *document.Value) bool {
	frame := ctx.Report().Snapshot()
	if v.Kind != document.KindObject {
		ctx.Errorf("Value %s must be an object, not a %s", ctx.Path(), v.Kind)
		return false
	}
	if !ctx.Descend() {
		return false
	}
	for _, name := range c.ordered {
		fv, present := v.Field(name)
		if !present {
			if _, required := c.required[name]; required {
				ctx.Errorf("Missing required field '%s'", ctx.FieldPath(name))
			}
			continue
		}
		ctx.PushField(name)
		c.fields[name].Check(ctx, fv)
		ctx.Pop()
	}
	ctx.Ascend()
	return ctx.Report().ErrorsSince(frame) == 0
}

type arrayOfCheck struct {
	elem Check
}

// ArrayOf returns a check applying one element check to every element of
// an array value. Element diagnostics are recorded at the element's own
// indexed path; if any element fails, one summary error is added at the
// array's path after the element diagnostics.
func ArrayOf(elem Check) Check {
	if elem == nil {
		panic(diag.NewIntegrationError("arrayOf", "element check is nil"))
	}
	return arrayOfCheck{elem: elem}
}

func (c arrayOfCheck) Check(ctx *Context, v *document.Value) bool {
	if v.Kind != document.KindArray {
		ctx.Errorf("Value %s must be an arrayref, not a %s", ctx.Path(), v.Kind)
		return false
	}
	if !ctx.Descend() {
		return false
	}
	ok := true
	for i, el := range v.Elems {
		ctx.PushIndex(i)
		if !c.elem.Check(ctx, el) {
			ok = false
		}
		ctx.Pop()
	}
	ctx.Ascend()
	if !ok {
		ctx.Errorf("Invalid %s. Does not match any of the specified checks", ctx.Path())
	}
	return ok
}

type oneOfCheck struct {
	alts []Check
}

// OneOf returns a check accepting a value that passes any one of the
// alternatives, tried in order. A failed attempt's diagnostics are taken
// back so they never leak into the report unless every alternative fails,
// in which case all attempts' diagnostics are replayed in attempt order
// followed by one summary error. The winning attempt's warnings are kept,
// so the outcome is identical to running that alternative alone.
func OneOf(alts ...Check) Check {
	if len(alts) < 2 {
		panic(diag.NewIntegrationError("oneOf", "requires at least two alternatives, got %d", len(alts)))
	}
	for i, alt := range alts {
		if alt == nil {
			panic(diag.NewIntegrationError("oneOf", "alternative %d is nil", i))
		}
	}
	return oneOfCheck{alts: alts}
}

func (c oneOfCheck) Check(ctx *Context, v *document.Value) bool {
	var attempts []diag.Diagnostic
	for _, alt := range c.alts {
		frame := ctx.Report().Snapshot()
		ok := alt.Check(ctx, v)
		added := ctx.Report().Restore(frame)
		if ok {
			ctx.Report().Replay(added)
			return true
		}
		attempts = append(attempts, added...)
	}
	ctx.Report().Replay(attempts)
	ctx.Errorf("Invalid %s. Does not match any of the specified checks", ctx.Path())
	return false
}

package schema

import (
	"regexp"

	"github.com/Ovid/cyclonedx-parser/pkg/bom/document"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/validator"
)

// Formats from the CycloneDX 1.5 JSON schema, compiled once.
var (
	serialNumberPattern = regexp.MustCompile(`^urn:uuid:[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	versionPattern      = regexp.MustCompile(`^[0-9]+$`)
	timestampPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)
	mimeTypePattern     = regexp.MustCompile(`^[-+a-z0-9.]+/[-+a-z0-9.]+$`)
	purlPattern         = regexp.MustCompile(`^pkg:[a-z][a-z0-9.+-]*/.+`)
	urlPattern          = regexp.MustCompile(`^https?://\S+$`)
)

// Member sets fixed by CycloneDX 1.5.
var (
	componentTypes = []string{
		"application", "framework", "library", "container", "platform",
		"operating-system", "device", "device-driver", "firmware", "file",
		"machine-learning-model", "data",
	}
	componentScopes = []string{"required", "optional", "excluded"}
	lifecyclePhases = []string{
		"design", "pre-build", "build", "post-build", "operations",
		"discovery", "decommission",
	}
)

// V15 returns the root check for a CycloneDX 1.5 document. The document
// must be an object carrying the two discriminators; everything else is
// optional and validated only when present.
func V15() validator.Check {
	return validator.Object(map[string]validator.Check{
		"bomFormat":    validator.Literal("CycloneDX"),
		"specVersion":  validator.Literal("1.5"),
		"serialNumber": validator.Pattern(serialNumberPattern),
		"version":      validator.Pattern(versionPattern),
		"metadata":     metadata(),
		"components":   ComponentList(),
	}, "bomFormat", "specVersion")
}

func metadata() validator.Check {
	contact := validator.Object(map[string]validator.Check{
		"name":  validator.AnyString(),
		"email": validator.AnyString(),
		"phone": validator.AnyString(),
	})
	property := validator.Object(map[string]validator.Check{
		"name":  validator.AnyString(),
		"value": validator.AnyString(),
	}, "name")

	// A lifecycle entry is either a predefined phase or a named custom
	// phase; the two shapes share no required field.
	lifecycle := validator.OneOf(
		validator.Object(map[string]validator.Check{
			"phase": validator.Enum(lifecyclePhases...),
		}, "phase"),
		validator.Object(map[string]validator.Check{
			"name":        validator.NonEmptyString(),
			"description": validator.AnyString(),
		}, "name"),
	)

	return validator.Object(map[string]validator.Check{
		"timestamp":  validator.Pattern(timestampPattern),
		"properties": validator.ArrayOf(property),
		"lifecycles": validator.ArrayOf(lifecycle),
		"authors":    validator.ArrayOf(contact),
		"manufacture": validator.Object(map[string]validator.Check{
			"name":    validator.AnyString(),
			"url":     validator.ArrayOf(validator.Pattern(urlPattern)),
			"contact": validator.ArrayOf(contact),
		}),
	})
}

// ComponentList returns the check for a components array. Nested
// components recurse into the same check, so the list validates trees of
// any depth the engine's recursion budget allows. Unlike ArrayOf it adds
// no summary error; a single fault deep in the tree surfaces as exactly
// one diagnostic.
func ComponentList() validator.Check {
	var list validator.Check

	component := validator.Object(map[string]validator.Check{
		"name":        validator.NonEmptyString(),
		"type":        validator.Enum(componentTypes...),
		"version":     validator.AnyString(),
		"mime-type":   validator.Pattern(mimeTypePattern),
		"bom-ref":     bomRef(),
		"author":      validator.AnyString(),
		"publisher":   validator.AnyString(),
		"group":       validator.AnyString(),
		"description": validator.AnyString(),
		"copyright":   validator.AnyString(),
		"cpe":         validator.AnyString(),
		"scope":       validator.Enum(componentScopes...),
		"purl":        validator.Pattern(purlPattern),
		"modified":    validator.Deprecated(),
		"components": validator.CheckFunc(func(ctx *validator.Context, v *document.Value) bool {
			return list.Check(ctx, v)
		}),
	}, "name", "type")

	list = validator.CheckFunc(func(ctx *validator.Context, v *document.Value) bool {
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
			if !component.Check(ctx, el) {
				ok = false
			}
			ctx.Pop()
		}
		ctx.Ascend()
		return ok
	})
	return list
}

// bomRef checks a component identifier: a non-empty string, unique across
// the entire document. The identifier is registered regardless of the
// non-empty outcome, so repeats of an invalid value are still flagged at
// every later occurrence.
func bomRef() validator.Check {
	nonEmpty := validator.NonEmptyString()
	return validator.CheckFunc(func(ctx *validator.Context, v *document.Value) bool {
		ok := nonEmpty.Check(ctx, v)
		if !ctx.RegisterRef(v.Text) {
			ctx.Errorf("%s: Duplicate bom-ref '%s'", ctx.Path(), v.Text)
			ok = false
		}
		return ok
	})
}

package validator

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Ovid/cyclonedx-parser/pkg/bom/diag"
	"github.com/Ovid/cyclonedx-parser/pkg/bom/document"
)

var (
	anyPattern      = regexp.MustCompile(`.`)
	nonEmptyPattern = regexp.MustCompile(`\S`)
)

// scalarText extracts the text rendering of a scalar value. Text checks
// apply only where the schema expects a scalar; any other shape means the
// check was wired to the wrong place and is fatal to the integrator.
func scalarText(ctx *Context, v *document.Value, op string) string {
	if v == nil || !v.IsScalar() {
		kind := "absent"
		if v != nil {
			kind = string(v.Kind)
		}
		panic(diag.NewIntegrationError(op, "text check at %s requires a scalar value, got %s", ctx.Path(), kind))
	}
	return v.Text
}

type literalCheck struct {
	want string
}

// Literal returns a check requiring the value to equal want exactly.
func Literal(want string) Check {
	return literalCheck{want: want}
}

func (c literalCheck) Check(ctx *Context, v *document.Value) bool {
	got := scalarText(ctx, v, "literal")
	if got != c.want {
		ctx.Errorf("Invalid %s. Must be '%s', not '%s'", ctx.Path(), c.want, got)
		return false
	}
	return true
}

type patternCheck struct {
	re *regexp.Regexp
}

// Pattern returns a check requiring the value to match the expression.
func Pattern(re *regexp.Regexp) Check {
	if re == nil {
		panic(diag.NewIntegrationError("pattern", "expression is nil"))
	}
	return patternCheck{re: re}
}

func (c patternCheck) Check(ctx *Context, v *document.Value) bool {
	got := scalarText(ctx, v, "pattern")
	if !c.re.MatchString(got) {
		ctx.Errorf("Invalid %s. Must match '%s', not '%s'", ctx.Path(), c.re.String(), got)
		return false
	}
	return true
}

// AnyString returns a check requiring at least one character.
func AnyString() Check {
	return Pattern(anyPattern)
}

// NonEmptyString returns a check requiring at least one non-whitespace
// character.
func NonEmptyString() Check {
	return Pattern(nonEmptyPattern)
}

type enumCheck struct {
	members map[string]struct{}
	display string // sorted members joined for the error message
}

// Enum returns a check requiring the value to be one of the members. The
// member list is sorted internally so the error text is deterministic
// regardless of declaration order.
func Enum(members ...string) Check {
	if len(members) == 0 {
		panic(diag.NewIntegrationError("enum", "no members given"))
	}
	set := make(map[string]struct{}, len(members))
	sorted := make([]string, 0, len(members))
	for _, m := range members {
		if _, dup := set[m]; dup {
			continue
		}
		set[m] = struct{}{}
		sorted = append(sorted, m)
	}
	sort.Strings(sorted)
	return enumCheck{members: set, display: strings.Join(sorted, ", ")}
}

func (c enumCheck) Check(ctx *Context, v *document.Value) bool {
	got := scalarText(ctx, v, "enum")
	if _, ok := c.members[got]; !ok {
		ctx.Errorf("Invalid %s. Must be one of '%s', not '%s'", ctx.Path(), c.display, got)
		return false
	}
	return true
}

type deprecatedCheck struct{}

// Deprecated returns a check that records a warning for a field that still
// appears in documents but should no longer be used. The value itself is
// not inspected and the check always passes.
func Deprecated() Check {
	return deprecatedCheck{}
}

func (deprecatedCheck) Check(ctx *Context, v *document.Value) bool {
	ctx.Warnf("Field '%s' is deprecated", ctx.Path())
	return true
}

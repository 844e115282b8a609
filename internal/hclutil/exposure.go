package hclutil

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

// ExposedInFunc builds the exposed_in(...) function for one realm kind. It
// returns true when the kind answers to any of the given global names.
func ExposedInFunc(kind binding.RealmKind) function.Function {
	return function.New(&function.Spec{
		Description: "Reports whether the realm being built answers to any of the given global names.",
		VarParam: &function.Parameter{
			Name: "globals",
			Type: cty.String,
		},
		Type: function.StaticReturnType(cty.Bool),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			names := make([]string, 0, len(args))
			for _, arg := range args {
				names = append(names, arg.AsString())
			}
			return cty.BoolVal(kind.ExposedIn(names...)), nil
		},
	})
}

// ExposureContext returns the evaluation context exposure predicates run in.
//
//	realm.kind       the kind name, e.g. "Window"
//	realm.<global>   true for every global name the kind answers to
//	exposed_in(...)  see ExposedInFunc
func ExposureContext(kind binding.RealmKind) *hcl.EvalContext {
	attrs := map[string]cty.Value{
		"kind": cty.StringVal(string(kind)),
	}
	for _, k := range binding.RealmKinds() {
		for _, g := range k.Globals() {
			if _, seen := attrs[g]; !seen {
				attrs[g] = cty.False
			}
		}
	}
	for _, g := range kind.Globals() {
		attrs[g] = cty.True
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"realm": cty.ObjectVal(attrs),
		},
		Functions: map[string]function.Function{
			"exposed_in": ExposedInFunc(kind),
		},
	}
}

// EvalExposure evaluates an exposure predicate. A nil expression means the
// binding is exposed everywhere. The result must be a known, non-null bool.
func EvalExposure(expr hcl.Expression, evalCtx *hcl.EvalContext) (bool, hcl.Diagnostics) {
	if expr == nil {
		return true, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, diags
	}

	val, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid exposure condition",
			Detail:   fmt.Sprintf("The 'exposed' expression must produce a bool: %s.", err),
			Subject:  expr.Range().Ptr(),
		})
	}
	if !val.IsKnown() || val.IsNull() {
		return false, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid exposure condition",
			Detail:   "The 'exposed' expression must produce a known, non-null bool.",
			Subject:  expr.Range().Ptr(),
		})
	}

	return val.True(), diags
}

package hclutil_test

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/hclutil"
	"github.com/stretchr/testify/require"
)

// parseExpr is a test helper to quickly get an hcl.Expression from a string.
func parseExpr(t *testing.T, exprStr string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(exprStr), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), "Expression parsing failed: %s", diags.Error())
	return expr
}

func TestEvalExposure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		expr string
		kind binding.RealmKind
		want bool
	}{
		{"literal true", `true`, binding.Worklet, true},
		{"kind comparison", `realm.kind == "Window"`, binding.Window, true},
		{"kind comparison miss", `realm.kind == "Window"`, binding.SharedWorker, false},
		{"global flag", `realm.Worker`, binding.ServiceWorker, true},
		{"global flag miss", `realm.Worker`, binding.Window, false},
		{"exposed_in match", `exposed_in("Window", "Worker")`, binding.DedicatedWorker, true},
		{"exposed_in miss", `exposed_in("Window")`, binding.Worklet, false},
		{"exposed_in wildcard", `exposed_in("*")`, binding.Worklet, true},
		{"string bool converts", `"true"`, binding.Window, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, diags := hclutil.EvalExposure(parseExpr(t, tc.expr), hclutil.ExposureContext(tc.kind))
			require.False(t, diags.HasErrors(), diags.Error())
			require.Equal(t, tc.want, got)
		})
	}
}

func TestEvalExposure_NilIsExposed(t *testing.T) {
	t.Parallel()

	got, diags := hclutil.EvalExposure(nil, hclutil.ExposureContext(binding.Window))
	require.False(t, diags.HasErrors())
	require.True(t, got)
}

func TestEvalExposure_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		expr        string
		errContains string
	}{
		{"number", `42`, "must produce a bool"},
		{"null", `null`, "known, non-null bool"},
		{"unknown variable", `page.kind == "Window"`, "Unknown variable"},
		{"unknown function", `exposed_everywhere()`, "Call to unknown function"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, diags := hclutil.EvalExposure(parseExpr(t, tc.expr), hclutil.ExposureContext(binding.Window))
			require.True(t, diags.HasErrors())
			require.Contains(t, diags.Error(), tc.errContains)
		})
	}
}

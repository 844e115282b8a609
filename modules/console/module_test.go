package console_test

import (
	"testing"

	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/testutil"
	"github.com/specialistvlad/originals/modules/console"
	"github.com/stretchr/testify/require"
)

func TestConsole_WritesToRealmOutput(t *testing.T) {
	t.Parallel()

	h := testutil.NewRealm(t, binding.Window, &console.Module{})
	h.Run(t, `
		console.log("hello", 42, true);
		console.warn("careful");
		console.error([1, "two"]);
	`)

	require.Equal(t, "hello 42 true\n[warn] careful\n[error] [1, two]\n", h.Output.String())
}

func TestConsole_ExposedEverywhere(t *testing.T) {
	t.Parallel()

	for _, kind := range binding.RealmKinds() {
		h := testutil.NewRealm(t, kind, &console.Module{})
		h.RequireTrue(t, `typeof console.log === "function"`)
	}
}

func TestConsole_OriginalSurvivesTampering(t *testing.T) {
	t.Parallel()

	h := testutil.NewRealm(t, binding.DedicatedWorker, &console.Module{})
	h.Run(t, `
		console.log = () => {};
		callOriginalStaticMethod("console", "log", "still here");
	`)
	require.Equal(t, "still here\n", h.Output.String())
}

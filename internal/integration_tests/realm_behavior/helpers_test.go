package integration_tests

import (
	"context"
	"testing"

	"github.com/specialistvlad/originals/internal/app"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/realm"
	"github.com/specialistvlad/originals/internal/testutil"
	"github.com/stretchr/testify/require"
)

// newRealm builds a realm of kind through the full app stack with every
// core module installed. Console output and logs share out.
func newRealm(t *testing.T, kind binding.RealmKind) (*realm.Realm, *testutil.SafeBuffer) {
	t.Helper()

	cfg, err := app.NewConfig(app.Config{RealmKind: kind, LogFormat: "text", LogLevel: "error"})
	require.NoError(t, err)
	out := &testutil.SafeBuffer{}
	a := app.NewApp(out, cfg)

	r, err := a.NewRealm(context.Background(), kind)
	require.NoError(t, err)
	return r, out
}

func requireTrue(t *testing.T, r *realm.Realm, src string) {
	t.Helper()
	v, err := r.RunString(src)
	require.NoError(t, err, "script failed:\n%s", src)
	require.Equal(t, true, v.Export(), "script:\n%s", src)
}

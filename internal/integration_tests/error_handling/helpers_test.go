package integration_tests

import (
	"fmt"
	"os"
	"testing"

	"github.com/specialistvlad/originals/internal/app"
	"github.com/specialistvlad/originals/internal/natives"
	"github.com/specialistvlad/originals/internal/testutil"
	"github.com/stretchr/testify/require"
)

// startupResult holds the outcome of building an app from manifest files.
type startupResult struct {
	App       *app.App
	LogOutput string
	Err       error
}

// startApp writes files to a temp dir, points the app at it and recovers
// the startup panic into Err.
func startApp(t *testing.T, files map[string]string, modules ...natives.Module) *startupResult {
	t.Helper()

	cfg := app.DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.ManifestsPath = testutil.WriteFiles(t, files)
	c, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logs := &testutil.SafeBuffer{}
	res := &startupResult{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		if len(modules) == 0 {
			modules = app.CoreModules()
		}
		res.App = app.NewApp(logs, c, modules...)
	}()
	res.LogOutput = logs.String()

	if os.Getenv("ORIGINALS_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput)
	}
	return res
}

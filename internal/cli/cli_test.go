package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/originals/internal/app"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "originals.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
realm = "ServiceWorker"
log_format = "json"
manifests_path = "/from/file"
`), 0o600))

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      string
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"--realm=dedicatedworker",
				"--manifests", "/test/manifests",
				"--log-level=debug",
				"--log-format=json",
				"--inspect-port=8080",
				"--history=/tmp/h",
				"script.js",
			},
			expectedConfig: &app.Config{
				ManifestsPath: "/test/manifests",
				RealmKind:     binding.DedicatedWorker,
				LogLevel:      "debug",
				LogFormat:     "json",
				InspectPort:   8080,
				HistoryPath:   "/tmp/h",
				ScriptPath:    "script.js",
			},
		},
		{
			name: "Defaults start the REPL",
			args: nil,
			expectedConfig: &app.Config{
				RealmKind: binding.Window,
				LogLevel:  "info",
				LogFormat: "text",
			},
		},
		{
			name: "List flag",
			args: []string{"-list", "-realm", "Worklet"},
			expectedConfig: &app.Config{
				RealmKind: binding.Worklet,
				LogLevel:  "info",
				LogFormat: "text",
				List:      true,
			},
		},
		{
			name: "Config file under explicit flags",
			args: []string{"--config", configPath, "--log-format=text"},
			expectedConfig: &app.Config{
				ManifestsPath: "/from/file",
				RealmKind:     binding.ServiceWorker,
				LogLevel:      "info",
				LogFormat:     "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
				require.Contains(t, output, "-inspect-port")
			},
		},
		{
			name:      "Unknown flag",
			args:      []string{"--workers=3"},
			expectErr: "flag provided but not defined: -workers",
		},
		{
			name:      "Unknown realm",
			args:      []string{"--realm=Tab"},
			expectErr: `unknown realm kind "Tab"`,
		},
		{
			name:      "Invalid log format",
			args:      []string{"--log-format=xml"},
			expectErr: "invalid log format",
		},
		{
			name:      "Two scripts",
			args:      []string{"a.js", "b.js"},
			expectErr: "expected at most one script, got 2",
		},
		{
			name:      "List with script",
			args:      []string{"--list", "a.js"},
			expectErr: "cannot be combined",
		},
		{
			name:      "Missing config file",
			args:      []string{"--config", "/does/not/exist.toml"},
			expectErr: "failed to read config file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			require.Equal(t, tc.expectExit, shouldExit)
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
			if tc.expectErr != "" {
				require.ErrorContains(t, err, tc.expectErr)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			if tc.expectExit {
				require.Nil(t, cfg)
				return
			}
			if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

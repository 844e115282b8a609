package testutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/intrinsics"
	"github.com/specialistvlad/originals/internal/model"
	"github.com/specialistvlad/originals/internal/natives"
	"github.com/specialistvlad/originals/internal/realm"
	"github.com/stretchr/testify/require"
)

// logsEnv turns on dumping of captured logs for every harness.
const logsEnv = "ORIGINALS_TEST_LOGS"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Reset empties the buffer.
func (b *SafeBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.b.Reset()
}

// RealmHarness is a realm built from the intrinsic description plus the
// given modules, with console output and logs captured.
type RealmHarness struct {
	Realm  *realm.Realm
	Output *SafeBuffer
	Logs   *SafeBuffer
}

// Context returns a context carrying a debug logger that writes to logs.
func Context(t *testing.T, logs *SafeBuffer) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv(logsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger)
}

// NewRealm builds a realm of kind with modules installed. Any failure on the
// way fails the test immediately.
func NewRealm(t *testing.T, kind binding.RealmKind, modules ...natives.Module) *RealmHarness {
	t.Helper()

	h := &RealmHarness{Output: &SafeBuffer{}, Logs: &SafeBuffer{}}
	ctx := Context(t, h.Logs)

	desc, n := Describe(t, ctx, modules...)
	r, err := realm.New(ctx, realm.Options{Kind: kind, Description: desc, Natives: n, Output: h.Output})
	require.NoError(t, err)
	h.Realm = r
	return h
}

// Describe loads the intrinsic description merged with every module's
// manifest and registers the modules' natives, checking parity.
func Describe(t *testing.T, ctx context.Context, modules ...natives.Module) (*model.Description, *natives.Natives) {
	t.Helper()

	desc, err := intrinsics.Description(ctx)
	require.NoError(t, err)

	n := natives.New()
	for _, mod := range modules {
		mod.Register(n)
		path, src := mod.Manifest()
		part, err := model.ParseManifest(ctx, src, path)
		require.NoError(t, err)
		desc.Merge(part)
	}
	require.NoError(t, n.Validate(ctx, desc))
	return desc, n
}

// Run evaluates src in the realm and returns its completion value.
func (h *RealmHarness) Run(t *testing.T, src string) goja.Value {
	t.Helper()
	v, err := h.Realm.RunString(src)
	require.NoError(t, err, "script failed:\n%s", src)
	return v
}

// RequireTrue evaluates src and requires it to complete with true.
func (h *RealmHarness) RequireTrue(t *testing.T, src string) {
	t.Helper()
	v := h.Run(t, src)
	require.Equal(t, true, v.Export(), "script completed with %v:\n%s", v, src)
}

// WriteFiles writes files, keyed by slash-separated relative path, under a
// fresh temporary directory and returns its path.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), fmt.Sprintf("writing %s", name))
	}
	return dir
}

package repl_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/realm"
	"github.com/specialistvlad/originals/internal/repl"
	"github.com/specialistvlad/originals/internal/testutil"
	"github.com/specialistvlad/originals/modules/console"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed input lines and records the prompts it was shown.
type scripted struct {
	lines   []string
	prompts []string
	history []string
}

func (s *scripted) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (s *scripted) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func newSession(t *testing.T, out *bytes.Buffer) *repl.Session {
	t.Helper()
	logs := &testutil.SafeBuffer{}
	ctx := testutil.Context(t, logs)
	desc, n := testutil.Describe(t, ctx, &console.Module{})

	s := repl.New(out, func(ctx context.Context, kind binding.RealmKind) (*realm.Realm, error) {
		return realm.New(ctx, realm.Options{Kind: kind, Description: desc, Natives: n, Output: out})
	})
	require.NoError(t, s.Start(ctx, binding.Window))
	return s
}

func TestSession_EvaluatesAndPrints(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newSession(t, &out)
	p := &scripted{lines: []string{`1 + 2`, `"a" + "b"`, `undefined`, `console.log("hi")`}}

	require.NoError(t, s.Run(context.Background(), p))
	require.Equal(t, "3\n\"ab\"\nundefined\nhi\nundefined\n\n", out.String())
	require.Equal(t, []string{`1 + 2`, `"a" + "b"`, `undefined`, `console.log("hi")`}, p.history)
}

func TestSession_MultiLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newSession(t, &out)
	p := &scripted{lines: []string{`function add(a, b) {`, `  return a + b`, `}`, `add(2, 3)`}}

	require.NoError(t, s.Run(context.Background(), p))
	require.Equal(t, []string{"> ", "... ", "... ", "> ", "> "}, p.prompts)
	require.Contains(t, out.String(), "5\n")
	require.Equal(t, "function add(a, b) {   return a + b }", p.history[0])
}

func TestSession_AbortDropsPendingInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newSession(t, &out)
	p := &scripted{lines: []string{`[1,`, `^C`, `7`}}

	require.NoError(t, s.Run(context.Background(), p))
	require.Equal(t, "7\n\n", out.String())
}

func TestSession_UncaughtException(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newSession(t, &out)
	p := &scripted{lines: []string{`callOriginalMethod({}, "get", "x")`, `1`}}

	require.NoError(t, s.Run(context.Background(), p))
	require.Contains(t, out.String(), "Uncaught TypeError")
	require.Contains(t, out.String(), "1\n")
}

func TestSession_Commands(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newSession(t, &out)
	p := &scripted{lines: []string{
		`globalThis.marker = 1`,
		`:realm`,
		`:realm worklet`,
		`typeof marker`,
		`:bindings Math.ab`,
		`:nope`,
		`:quit`,
		`"never evaluated"`,
	}}

	require.NoError(t, s.Run(context.Background(), p))
	require.Equal(t, binding.Worklet, s.Realm().Kind())

	got := out.String()
	require.Contains(t, got, "Window\n")
	require.Contains(t, got, "switched to a fresh Worklet realm\n")
	require.Contains(t, got, "\"undefined\"\n")
	require.Contains(t, got, "Math.abs (NamespaceFunction)\n1 bindings\n")
	require.Contains(t, got, "unknown command :nope")
	require.NotContains(t, got, "never evaluated")
}

func TestSession_Help(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newSession(t, &out)
	quit, err := s.Command(context.Background(), ":help")
	require.NoError(t, err)
	require.False(t, quit)
	require.Contains(t, out.String(), ":bindings [filter]")

	_, err = s.Command(context.Background(), ":realm Mars")
	require.Error(t, err)
	require.Equal(t, binding.Window, s.Realm().Kind())
}

package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dop251/goja"
	"github.com/peterh/liner"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/realm"
)

const (
	promptMain = "> "
	promptCont = "... "
)

const helpText = `Commands:
  :help              show this help
  :realm [kind]      show the realm kind, or start over in a fresh realm of kind
  :bindings [filter] list registry keys, optionally only those containing filter
  :quit              leave the session
`

// Factory builds a fresh realm of kind.
type Factory func(ctx context.Context, kind binding.RealmKind) (*realm.Realm, error)

// Session is one REPL conversation. It owns the current realm.
type Session struct {
	out      io.Writer
	newRealm Factory
	realm    *realm.Realm
}

// New returns a session printing to out. Call Start before Run.
func New(out io.Writer, newRealm Factory) *Session {
	return &Session{out: out, newRealm: newRealm}
}

// Start builds the session's first realm.
func (s *Session) Start(ctx context.Context, kind binding.RealmKind) error {
	r, err := s.newRealm(ctx, kind)
	if err != nil {
		return err
	}
	s.realm = r
	return nil
}

// Realm returns the current realm.
func (s *Session) Realm() *realm.Realm {
	return s.realm
}

// Run reads and evaluates input until it ends, :quit is entered or ctx is
// done. Script errors are printed, never returned.
func (s *Session) Run(ctx context.Context, p Prompter) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("REPL started.", "realm", s.realm.Kind())

	for ctx.Err() == nil {
		code, ok := readByParseProbe(p)
		if !ok {
			fmt.Fprintln(s.out)
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		p.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			quit, err := s.Command(ctx, trimmed)
			if err != nil {
				fmt.Fprintln(s.out, err)
			}
			if quit {
				break
			}
			continue
		}
		s.Eval(code)
	}

	logger.Debug("REPL finished.")
	return nil
}

// Eval runs code in the current realm and prints the result or the
// uncaught exception.
func (s *Session) Eval(code string) {
	v, err := s.realm.RunString(code)
	if err != nil {
		var ex *goja.Exception
		if errors.As(err, &ex) {
			fmt.Fprintf(s.out, "Uncaught %s\n", ex.Value().String())
			return
		}
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintln(s.out, format(v))
}

// Command handles one ':' line. It reports whether the session should end.
func (s *Session) Command(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case ":help":
		fmt.Fprint(s.out, helpText)
	case ":quit", ":exit":
		return true, nil
	case ":realm":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, s.realm.Kind())
			return false, nil
		}
		kind, err := binding.ParseRealmKind(fields[1])
		if err != nil {
			return false, err
		}
		if err := s.Start(ctx, kind); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "switched to a fresh %s realm\n", kind)
	case ":bindings":
		filter := ""
		if len(fields) > 1 {
			filter = fields[1]
		}
		n := 0
		for _, d := range s.realm.Table().Descriptors() {
			if key := d.Key(); strings.Contains(key, filter) {
				fmt.Fprintf(s.out, "%s (%s)\n", key, d.Category)
				n++
			}
		}
		fmt.Fprintf(s.out, "%d bindings\n", n)
	default:
		return false, fmt.Errorf("unknown command %s. Type :help for help", fields[0])
	}
	return false, nil
}

// readByParseProbe reads lines until the parser accepts the buffer or
// reports an error other than running out of input. It returns false when
// input has ended.
func readByParseProbe(p Prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := goja.Compile("repl", src, false); err != nil && looksIncomplete(err) {
			continue
		}
		return src, true
	}
}

// looksIncomplete classifies parse errors that mean "need more input".
func looksIncomplete(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unexpected end of input") ||
		strings.Contains(msg, "unterminated template")
}

func format(v goja.Value) string {
	if v == nil {
		return "undefined"
	}
	if str, ok := v.Export().(string); ok {
		return strconv.Quote(str)
	}
	return v.String()
}

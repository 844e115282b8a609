package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/repl"
)

// Run executes the main application logic based on the configuration: it
// lists the registry, runs a script, or starts the REPL.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "realm", a.config.RealmKind)

	if a.config.InspectPort > 0 {
		a.startInspectServer(ctx)
		defer a.closeInspectServer(ctx)
	}

	var err error
	switch {
	case a.config.List:
		err = a.listBindings(ctx, a.outW)
	case a.config.ScriptPath != "":
		err = a.runScript(ctx, a.config.ScriptPath)
	default:
		err = a.runREPL(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// listBindings prints every descriptor of the configured realm.
func (a *App) listBindings(ctx context.Context, w io.Writer) error {
	r, err := a.newRealm(ctx, a.config.RealmKind, io.Discard)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tCATEGORY\tSOURCE")
	for _, d := range r.Table().Descriptors() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Key(), d.Category, d.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.logger.Info("Bindings listed.", "realm", r.Kind(), "count", r.Table().Len())
	return nil
}

// runScript evaluates one script file in a fresh realm.
func (a *App) runScript(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	r, err := a.NewRealm(ctx, a.config.RealmKind)
	if err != nil {
		return err
	}

	a.logger.Debug("Running script.", "path", path, "realm", r.Kind())
	if _, err := r.RunScript(path, string(src)); err != nil {
		return fmt.Errorf("script %s failed: %w", path, err)
	}
	a.logger.Info("🏁 Script finished.", "path", path)
	return nil
}

func (a *App) runREPL(ctx context.Context) error {
	prompter := repl.NewLinerPrompter(a.config.HistoryPath)
	defer prompter.Close()

	session := repl.New(a.outW, a.NewRealm)
	if err := session.Start(ctx, a.config.RealmKind); err != nil {
		return err
	}
	return session.Run(ctx, prompter)
}

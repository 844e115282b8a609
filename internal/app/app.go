package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/intrinsics"
	"github.com/specialistvlad/originals/internal/model"
	"github.com/specialistvlad/originals/internal/natives"
	"github.com/specialistvlad/originals/internal/realm"
	"github.com/specialistvlad/originals/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx     context.Context
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	natives *natives.Natives
	desc    *model.Description

	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads every
// manifest, registers the given modules (CoreModules when none are given)
// and checks that both sides agree for every realm kind.
//
// A mismatch between manifests and natives is a programmer error, so
// NewApp panics instead of returning it.
func NewApp(outW io.Writer, cfg *Config, modules ...natives.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = CoreModules()
	}

	desc, err := intrinsics.Description(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to load built-in manifests: %w", err))
	}

	n := natives.New()
	for _, mod := range modules {
		mod.Register(n)
		path, src := mod.Manifest()
		part, err := model.ParseManifest(ctx, src, path)
		if err != nil {
			panic(err)
		}
		desc.Merge(part)
	}
	logger.Debug("All native modules registered.", "count", len(modules), "natives", n.Len())

	if cfg.ManifestsPath != "" {
		extra, err := model.LoadDescriptionFromPath(ctx, cfg.ManifestsPath)
		if err != nil {
			panic(err)
		}
		desc.Merge(extra)
	}

	if err := n.Validate(ctx, desc); err != nil {
		panic(err)
	}
	for _, kind := range binding.RealmKinds() {
		if _, err := registry.NewPlan(ctx, desc, kind); err != nil {
			panic(fmt.Errorf("realm %s: %w", kind, err))
		}
	}
	logger.Debug("Realm description validated.", "owners", len(desc.Interfaces))

	return &App{
		ctx:     ctx,
		outW:    outW,
		logger:  logger,
		config:  cfg,
		natives: n,
		desc:    desc,
	}
}

// Description returns the merged realm description.
func (a *App) Description() *model.Description {
	return a.desc
}

// Natives returns the registered native implementations.
func (a *App) Natives() *natives.Natives {
	return a.natives
}

// NewRealm builds a fresh realm of kind whose console writes to the app
// output.
func (a *App) NewRealm(ctx context.Context, kind binding.RealmKind) (*realm.Realm, error) {
	return a.newRealm(ctx, kind, a.outW)
}

func (a *App) newRealm(ctx context.Context, kind binding.RealmKind, out io.Writer) (*realm.Realm, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	r, err := realm.New(ctx, realm.Options{
		Kind:        kind,
		Description: a.desc,
		Natives:     a.natives,
		Output:      out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s realm: %w", kind, err)
	}
	return r, nil
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/registry"
)

// bindingView is one registry entry as served by /bindings.
type bindingView struct {
	Key      string `json:"key"`
	Category string `json:"category"`
	Owner    string `json:"owner"`
	Brand    string `json:"brand,omitempty"`
	Writable bool   `json:"writable,omitempty"`
	Source   string `json:"source"`
}

type bindingsView struct {
	Realm    binding.RealmKind `json:"realm"`
	Bindings []bindingView     `json:"bindings"`
}

// InspectHandler serves /health and /bindings?realm=<kind>. Every /bindings
// request builds its own realm, so requests never share a script runtime.
func (a *App) InspectHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/bindings", a.bindingsHandler)
	return mux
}

// healthHandler logs the request and reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) bindingsHandler(w http.ResponseWriter, r *http.Request) {
	kind := a.config.RealmKind
	if q := r.URL.Query().Get("realm"); q != "" {
		parsed, err := binding.ParseRealmKind(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		kind = parsed
	}

	rlm, err := a.newRealm(r.Context(), kind, io.Discard)
	if err != nil {
		a.logger.Error("Failed to build realm for inspection", "realm", kind, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	table := rlm.Table()
	view := bindingsView{Realm: kind, Bindings: []bindingView{}}
	for _, d := range table.Descriptors() {
		view.Bindings = append(view.Bindings, bindingView{
			Key:      d.Key(),
			Category: d.Category.String(),
			Owner:    d.Owner,
			Brand:    string(d.Brand),
			Writable: writable(table, d),
			Source:   d.Source.String(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		a.logger.Error("Failed to encode bindings", "error", err)
	}
}

// startInspectServer runs the inspect server in the background.
func (a *App) startInspectServer(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	addr := fmt.Sprintf(":%d", a.config.InspectPort)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.InspectHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🩺 Inspect server starting", "address", fmt.Sprintf("http://localhost%s/bindings", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Inspect server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeInspectServer(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	if a.httpServer == nil {
		logger.Debug("Inspect server was not running.")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down inspect server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Inspect server shutdown failed", "error", err)
		return
	}
	logger.Debug("Inspect server shut down gracefully.")
}

// writable reports whether setOriginalProperty can reach a setter for the
// member d belongs to.
func writable(table *registry.Table, d *binding.Descriptor) bool {
	if !d.Category.IsInstance() {
		return false
	}
	slots, ok := table.Member(d.Brand, d.Name)
	return ok && slots.Set != nil
}

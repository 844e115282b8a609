package binding

import (
	"fmt"
	"slices"
	"strings"
)

// Brand is an immutable tag naming the standard-defined kind of a value.
// It is assigned when the value is constructed and never changes.
type Brand string

// NotBranded is the brand of every value that carries no tag: primitives,
// script-authored plain objects and the realm's global object.
const NotBranded Brand = ""

// RealmKind identifies the type of global environment a realm provides.
type RealmKind string

const (
	Window          RealmKind = "Window"
	DedicatedWorker RealmKind = "DedicatedWorker"
	SharedWorker    RealmKind = "SharedWorker"
	ServiceWorker   RealmKind = "ServiceWorker"
	Worklet         RealmKind = "Worklet"
)

// realmGlobals lists, per kind, the global names an exposure predicate can
// match. A dedicated worker is both a "Worker" and a "DedicatedWorker".
var realmGlobals = map[RealmKind][]string{
	Window:          {"Window"},
	DedicatedWorker: {"Worker", "DedicatedWorker"},
	SharedWorker:    {"Worker", "SharedWorker"},
	ServiceWorker:   {"Worker", "ServiceWorker"},
	Worklet:         {"Worklet"},
}

// RealmKinds returns every known realm kind in a stable order.
func RealmKinds() []RealmKind {
	return []RealmKind{Window, DedicatedWorker, SharedWorker, ServiceWorker, Worklet}
}

// ParseRealmKind matches a realm kind name case-insensitively.
func ParseRealmKind(s string) (RealmKind, error) {
	for _, k := range RealmKinds() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown realm kind %q", s)
}

// Globals returns the global names the kind answers to.
func (k RealmKind) Globals() []string {
	return slices.Clone(realmGlobals[k])
}

// ExposedIn reports whether the kind matches any of the given global names.
// The wildcard "*" matches every kind.
func (k RealmKind) ExposedIn(names ...string) bool {
	for _, name := range names {
		if name == "*" {
			return true
		}
		if slices.Contains(realmGlobals[k], name) {
			return true
		}
	}
	return false
}

// Package natives holds the Go implementations of host-native bindings.
//
// A manifest member with source = "native" names an implementation
// reference ("Headers.prototype.get"); modules register a Native under that
// reference at startup. During validation the registry checks that the
// manifests and the registered natives are perfectly in sync.
package natives

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/dop251/goja"
)

// Host is the part of a realm that native implementations may use.
type Host interface {
	// Construct creates a branded instance of a native interface exposed in
	// the realm, backed by state, without running its script constructor.
	Construct(iface string, state any) (*goja.Object, error)
	// StateOf returns the backing state of a host-constructed instance.
	StateOf(v goja.Value) (any, bool)
	// Output is where console-like natives write.
	Output() io.Writer
}

// Call carries one invocation of a native binding.
type Call struct {
	Runtime *goja.Runtime
	Host    Host
	This    goja.Value
	Args    []goja.Value

	// State is the Go value backing This for instance members. The realm
	// has already checked This carries a compatible brand.
	State any
	// Internal is true when the host itself constructs the instance, e.g.
	// for a singleton, rather than script calling `new`.
	Internal bool
}

// Argument returns the i-th argument or undefined.
func (c *Call) Argument(i int) goja.Value {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return goja.Undefined()
}

// Func implements an operation, a getter or a setter.
type Func func(call *Call) (goja.Value, error)

// Constructor initialises a new instance and returns its backing state.
type Constructor func(call *Call) (any, error)

// Native is one registered implementation. Which fields must be set depends
// on the member kind it serves; registry validation enforces it.
type Native struct {
	New Constructor
	Fn  Func
	Get Func
	Set Func
}

// Natives holds all the registered native implementations.
type Natives struct {
	all map[string]*Native
}

// New creates and initializes a new Natives instance.
func New() *Natives {
	return &Natives{
		all: make(map[string]*Native),
	}
}

// Register registers a native implementation under its reference.
func (n *Natives) Register(name string, native *Native) {
	if native == nil {
		panic(fmt.Sprintf("native implementation '%s' is nil", name))
	}
	if _, exists := n.all[name]; exists {
		panic(fmt.Sprintf("native implementation with name '%s' already registered", name))
	}
	slog.Debug("Registering native implementation.", "name", name)
	n.all[name] = native
}

// Lookup returns the native registered under name.
func (n *Natives) Lookup(name string) (*Native, bool) {
	native, ok := n.all[name]
	return native, ok
}

// Names returns every registered reference in sorted order.
func (n *Natives) Names() []string {
	names := make([]string, 0, len(n.all))
	for name := range n.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered natives.
func (n *Natives) Len() int {
	return len(n.all)
}

// Module is implemented by every package that contributes native bindings.
type Module interface {
	// Register adds the module's implementations.
	Register(n *Natives)
	// Manifest returns the module's manifest and a path naming it in errors.
	Manifest() (filePath string, src []byte)
}

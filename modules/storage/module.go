// Package storage provides the Storage interface with the localStorage and
// sessionStorage singletons. Areas live in memory for the realm's lifetime.
package storage

import (
	_ "embed"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/natives"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the natives.Module interface for this package.
type Module struct {
	// Quota limits each area; 0 means DefaultQuota.
	Quota int
}

// Manifest returns the module's realm description.
func (m *Module) Manifest() (string, []byte) {
	return "modules/storage/manifest.hcl", manifest
}

// Register registers the Storage interface.
func (m *Module) Register(n *natives.Natives) {
	n.Register("Storage", &natives.Native{New: func(call *natives.Call) (any, error) {
		if !call.Internal {
			return nil, natives.TypeError("Illegal constructor")
		}
		return NewArea(m.Quota), nil
	}})
	n.Register("Storage.prototype.length", &natives.Native{Get: func(call *natives.Call) (goja.Value, error) {
		a, err := natives.StateOf[*Area](call)
		if err != nil {
			return nil, err
		}
		return call.Runtime.ToValue(a.Len()), nil
	}})
	n.Register("Storage.prototype.key", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		a, err := natives.StateOf[*Area](call)
		if err != nil {
			return nil, err
		}
		if len(call.Args) == 0 {
			return nil, natives.TypeError("1 argument required, but only 0 present (index)")
		}
		k, ok := a.Key(call.Argument(0).ToInteger())
		if !ok {
			return goja.Null(), nil
		}
		return call.Runtime.ToValue(k), nil
	}})
	n.Register("Storage.prototype.getItem", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		a, key, err := keyArg(call)
		if err != nil {
			return nil, err
		}
		v, ok := a.Get(key)
		if !ok {
			return goja.Null(), nil
		}
		return call.Runtime.ToValue(v), nil
	}})
	n.Register("Storage.prototype.setItem", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		a, key, err := keyArg(call)
		if err != nil {
			return nil, err
		}
		value, err := natives.StringArg(call, 1, "value")
		if err != nil {
			return nil, err
		}
		if !a.Set(key, value) {
			return nil, natives.RangeError("Setting the value of '%s' exceeded the quota.", key)
		}
		return goja.Undefined(), nil
	}})
	n.Register("Storage.prototype.removeItem", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		a, key, err := keyArg(call)
		if err != nil {
			return nil, err
		}
		a.Remove(key)
		return goja.Undefined(), nil
	}})
	n.Register("Storage.prototype.clear", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		a, err := natives.StateOf[*Area](call)
		if err != nil {
			return nil, err
		}
		a.Clear()
		return goja.Undefined(), nil
	}})
}

func keyArg(call *natives.Call) (*Area, string, error) {
	a, err := natives.StateOf[*Area](call)
	if err != nil {
		return nil, "", err
	}
	key, err := natives.StringArg(call, 0, "key")
	if err != nil {
		return nil, "", err
	}
	return a, key, nil
}

// Package headers provides the Headers interface.
package headers

import (
	_ "embed"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/natives"
	"golang.org/x/net/http/httpguts"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the natives.Module interface for this package.
type Module struct{}

// Manifest returns the module's realm description.
func (m *Module) Manifest() (string, []byte) {
	return "modules/headers/manifest.hcl", manifest
}

// Register registers the Headers constructor and methods.
func (m *Module) Register(n *natives.Natives) {
	n.Register("Headers", &natives.Native{New: newHeaders})
	n.Register("Headers.prototype.append", &natives.Native{Fn: withPair(func(l *List, name, value string) { l.Append(name, value) })})
	n.Register("Headers.prototype.set", &natives.Native{Fn: withPair(func(l *List, name, value string) { l.Set(name, value) })})
	n.Register("Headers.prototype.delete", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		l, name, err := nameArg(call)
		if err != nil {
			return nil, err
		}
		l.Delete(name)
		return goja.Undefined(), nil
	}})
	n.Register("Headers.prototype.get", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		l, name, err := nameArg(call)
		if err != nil {
			return nil, err
		}
		v, ok := l.Get(name)
		if !ok {
			return goja.Null(), nil
		}
		return call.Runtime.ToValue(v), nil
	}})
	n.Register("Headers.prototype.has", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		l, name, err := nameArg(call)
		if err != nil {
			return nil, err
		}
		return call.Runtime.ToValue(l.Has(name)), nil
	}})
}

func newHeaders(call *natives.Call) (any, error) {
	l := &List{}
	init := call.Argument(0)
	if goja.IsUndefined(init) {
		return l, nil
	}

	obj, ok := init.(*goja.Object)
	if !ok {
		return nil, natives.TypeError("Failed to construct 'Headers': The provided value is not of type 'HeadersInit'.")
	}
	if state, ok := call.Host.StateOf(obj); ok {
		if other, ok := state.(*List); ok {
			return other.Clone(), nil
		}
	}

	if obj.ClassName() == "Array" {
		for _, key := range obj.Keys() {
			pair, ok := obj.Get(key).(*goja.Object)
			if !ok || pair.Get("length") == nil || pair.Get("length").ToInteger() != 2 {
				return nil, natives.TypeError("Failed to construct 'Headers': Invalid value")
			}
			if err := appendChecked(l, pair.Get("0").String(), pair.Get("1").String()); err != nil {
				return nil, err
			}
		}
		return l, nil
	}

	for _, key := range obj.Keys() {
		if err := appendChecked(l, key, obj.Get(key).String()); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func appendChecked(l *List, name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return natives.TypeError("Invalid name: %q", name)
	}
	v, ok := normalizeValue(value)
	if !ok {
		return natives.TypeError("Invalid value for header %q", name)
	}
	l.Append(name, v)
	return nil
}

func nameArg(call *natives.Call) (*List, string, error) {
	l, err := natives.StateOf[*List](call)
	if err != nil {
		return nil, "", err
	}
	name, err := natives.StringArg(call, 0, "name")
	if err != nil {
		return nil, "", err
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return nil, "", natives.TypeError("Invalid name: %q", name)
	}
	return l, name, nil
}

func withPair(apply func(l *List, name, value string)) natives.Func {
	return func(call *natives.Call) (goja.Value, error) {
		l, name, err := nameArg(call)
		if err != nil {
			return nil, err
		}
		raw, err := natives.StringArg(call, 1, "value")
		if err != nil {
			return nil, err
		}
		value, ok := normalizeValue(raw)
		if !ok {
			return nil, natives.TypeError("Invalid value for header %q", name)
		}
		apply(l, name, value)
		return goja.Undefined(), nil
	}
}

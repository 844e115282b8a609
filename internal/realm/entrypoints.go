package realm

import (
	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/dispatch"
)

const nonString = "<non-string>"

// installEntryPoints defines the script API as non-writable,
// non-configurable, non-enumerable globals.
func (r *Realm) installEntryPoints() error {
	entries := []struct {
		name string
		fn   func(goja.FunctionCall) goja.Value
	}{
		{"getOriginalConstructor", r.jsGetOriginalConstructor},
		{"callOriginalStaticMethod", r.jsCallOriginalStaticMethod},
		{"getOriginalProperty", r.jsGetOriginalProperty},
		{"setOriginalProperty", r.jsSetOriginalProperty},
		{"callOriginalMethod", r.jsCallOriginalMethod},
	}
	for _, e := range entries {
		if err := r.global.DefineDataProperty(e.name, r.vm.ToValue(e.fn), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE); err != nil {
			return err
		}
	}
	return r.global.DefineDataProperty("originalSelf", r.global, goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE)
}

func (r *Realm) jsGetOriginalConstructor(call goja.FunctionCall) goja.Value {
	name, ok := primitiveString(call.Argument(0))
	if !ok {
		return goja.Undefined()
	}
	ctor, ok := r.engine.GetOriginalConstructor(name)
	if !ok {
		return goja.Undefined()
	}
	return r.toValue(ctor)
}

func (r *Realm) jsCallOriginalStaticMethod(call goja.FunctionCall) goja.Value {
	owner, ok1 := primitiveString(call.Argument(0))
	name, ok2 := primitiveString(call.Argument(1))
	if !ok1 || !ok2 {
		r.throw(&dispatch.InvocationError{Op: dispatch.OpCallStatic, Owner: nonString, Name: nonString})
	}

	var args []any
	if len(call.Arguments) > 2 {
		args = toAnys(call.Arguments[2:])
	}
	v, err := r.engine.CallOriginalStaticMethod(owner, name, args...)
	if err != nil {
		r.throw(err)
	}
	return r.toValue(v)
}

func (r *Realm) jsGetOriginalProperty(call goja.FunctionCall) goja.Value {
	name, ok := primitiveString(call.Argument(1))
	if !ok {
		return goja.Undefined()
	}
	v, ok, err := r.engine.GetOriginalProperty(call.Argument(0), name)
	if err != nil {
		r.throw(err)
	}
	if !ok {
		return goja.Undefined()
	}
	return r.toValue(v)
}

func (r *Realm) jsSetOriginalProperty(call goja.FunctionCall) goja.Value {
	name, ok := primitiveString(call.Argument(1))
	if !ok {
		return goja.Undefined()
	}
	if err := r.engine.SetOriginalProperty(call.Argument(0), name, call.Argument(2)); err != nil {
		r.throw(err)
	}
	return goja.Undefined()
}

func (r *Realm) jsCallOriginalMethod(call goja.FunctionCall) goja.Value {
	name, ok := primitiveString(call.Argument(1))
	if !ok {
		r.throw(&dispatch.InvocationError{Op: dispatch.OpCallMethod, Name: nonString})
	}

	var args []any
	if len(call.Arguments) > 2 {
		args = toAnys(call.Arguments[2:])
	}
	v, err := r.engine.CallOriginalMethod(call.Argument(0), name, args...)
	if err != nil {
		r.throw(err)
	}
	return r.toValue(v)
}

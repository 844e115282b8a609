package realm

import (
	"errors"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/dispatch"
	"github.com/specialistvlad/originals/internal/natives"
)

// toValue converts a value coming out of the dispatch engine.
func (r *Realm) toValue(v any) goja.Value {
	switch v := v.(type) {
	case nil:
		return goja.Undefined()
	case goja.Value:
		return v
	default:
		return r.vm.ToValue(v)
	}
}

func (r *Realm) toValues(args []any) []goja.Value {
	out := make([]goja.Value, len(args))
	for i, a := range args {
		out[i] = r.toValue(a)
	}
	return out
}

func toAnys(args []goja.Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

// primitiveString accepts only primitive strings. Nothing is coerced, so no
// script-defined toString or valueOf ever runs.
func primitiveString(v goja.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	switch v.(type) {
	case *goja.Object, *goja.Symbol:
		return "", false
	}
	s, ok := v.Export().(string)
	return s, ok
}

// throw raises err as a script exception. Values thrown by script come back
// out unchanged.
func (r *Realm) throw(err error) {
	var (
		ex     *goja.Exception
		thrown *natives.Thrown
		nerr   *natives.Error
		inv    *dispatch.InvocationError
	)
	switch {
	case errors.As(err, &ex):
		panic(ex.Value())
	case errors.As(err, &thrown):
		if thrown.Value == nil {
			panic(goja.Undefined())
		}
		panic(thrown.Value)
	case errors.As(err, &nerr):
		panic(r.nativeError(nerr))
	case errors.As(err, &inv):
		panic(r.vm.NewTypeError("%s", inv.Error()))
	default:
		panic(r.vm.NewGoError(err))
	}
}

func (r *Realm) nativeError(e *natives.Error) *goja.Object {
	if e.Kind == natives.KindRangeError {
		obj, err := r.vm.New(r.rangeError, r.vm.ToValue(e.Message))
		if err == nil {
			return obj
		}
	}
	return r.vm.NewTypeError("%s", e.Message)
}

package realm

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/model"
	"github.com/specialistvlad/originals/internal/natives"
	"github.com/specialistvlad/originals/internal/registry"
)

// Constructor implements registry.Resolver.
func (r *Realm) Constructor(ref registry.Ref) (any, error) {
	if ref.Owner.Source == model.SourceNative {
		ctor, ok := r.owners[ref.Owner.Name]
		if !ok {
			return nil, fmt.Errorf("interface object %q was not installed", ref.Owner.Name)
		}
		return ctor, nil
	}

	v, _, err := r.lookupPath(ref.Member.Impl)
	if err != nil {
		return nil, err
	}
	if _, ok := goja.AssertConstructor(v); !ok {
		return nil, fmt.Errorf("%s is not a constructor", ref.Member.Impl)
	}
	return v.(*goja.Object), nil
}

// Function implements registry.Resolver.
func (r *Realm) Function(ref registry.Ref) (binding.Func, error) {
	if ref.Owner.Source == model.SourceNative {
		return r.resolveNative(ref)
	}
	return r.resolveIntrinsic(ref)
}

func isStatic(m *model.Member) bool {
	return m.Kind == model.MemberStatic || m.Kind == model.MemberFunction
}

func (r *Realm) resolveNative(ref registry.Ref) (binding.Func, error) {
	native, ok := r.natives.Lookup(ref.Member.Impl)
	if !ok {
		return nil, fmt.Errorf("native %q is not registered", ref.Member.Impl)
	}

	var fn natives.Func
	switch ref.Role {
	case registry.RoleCall:
		fn = native.Fn
	case registry.RoleGet:
		fn = native.Get
	case registry.RoleSet:
		fn = native.Set
	}
	if fn == nil {
		return nil, fmt.Errorf("native %q has no %s implementation", ref.Member.Impl, ref.Role)
	}

	var bound goja.Value
	if isStatic(ref.Member) {
		owner, ok := r.owners[ref.Owner.Name]
		if !ok {
			return nil, fmt.Errorf("owner object %q was not installed", ref.Owner.Name)
		}
		bound = owner
	}

	return func(this any, args []any) (any, error) {
		target := bound
		if target == nil {
			target = r.toValue(this)
		}
		return r.invoke(fn, target, r.toValues(args))
	}, nil
}

func (r *Realm) resolveIntrinsic(ref registry.Ref) (binding.Func, error) {
	if ref.Role == registry.RoleGet || ref.Role == registry.RoleSet {
		fn, err := r.accessor(ref.Member.Impl, ref.Role)
		if err != nil {
			return nil, err
		}
		return r.callable(fn, nil), nil
	}

	v, holder, err := r.lookupPath(ref.Member.Impl)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("%s is not a function", ref.Member.Impl)
	}
	if isStatic(ref.Member) {
		return r.callable(fn, holder), nil
	}
	return r.callable(fn, nil), nil
}

// callable adapts a captured engine function. With bound set, the receiver
// is fixed to it, so statics such as Promise.resolve keep their owner.
func (r *Realm) callable(fn goja.Callable, bound goja.Value) binding.Func {
	return func(this any, args []any) (any, error) {
		target := bound
		if target == nil {
			target = r.toValue(this)
		}
		v, err := fn(target, r.toValues(args)...)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// lookupPath walks a dotted path from the global object and returns the
// value with the object holding it.
func (r *Realm) lookupPath(path string) (goja.Value, *goja.Object, error) {
	holder := r.global
	var v goja.Value = r.global
	for _, part := range strings.Split(path, ".") {
		obj, ok := v.(*goja.Object)
		if !ok {
			return nil, nil, fmt.Errorf("%s: %q is reached through a non-object", path, part)
		}
		holder = obj
		v = obj.Get(part)
		if v == nil || goja.IsUndefined(v) {
			return nil, nil, fmt.Errorf("%s is not defined", path)
		}
	}
	return v, holder, nil
}

// accessor returns the getter or setter of the own accessor property a
// dotted path names, e.g. "RegExp.prototype.source".
func (r *Realm) accessor(path string, role registry.Role) (goja.Callable, error) {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return nil, fmt.Errorf("%s does not name a property of an object", path)
	}
	holder, _, err := r.lookupPath(path[:dot])
	if err != nil {
		return nil, err
	}

	desc, err := r.getOwnPropertyDescriptor(goja.Undefined(), holder, r.vm.ToValue(path[dot+1:]))
	if err != nil {
		return nil, err
	}
	descObj, ok := desc.(*goja.Object)
	if !ok {
		return nil, fmt.Errorf("%s is not an own property", path)
	}

	key := "get"
	if role == registry.RoleSet {
		key = "set"
	}
	fn, ok := goja.AssertFunction(descObj.Get(key))
	if !ok {
		return nil, fmt.Errorf("%s has no %s accessor", path, key)
	}
	return fn, nil
}

package realm

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/model"
	"github.com/specialistvlad/originals/internal/natives"
	"github.com/specialistvlad/originals/internal/registry"
)

// instanceProperty is an unforgeable accessor defined on every instance.
type instanceProperty struct {
	name string
	get  goja.Value
	set  goja.Value
}

// installNatives creates the script-visible objects of every exposed native
// owner. The plan lists parents first, so parent prototypes already exist
// when a child is installed.
func (r *Realm) installNatives(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, owner := range r.plan.Owners {
		iface := owner.Interface
		if iface.Source != model.SourceNative {
			continue
		}

		var err error
		if iface.Kind == model.KindNamespace {
			err = r.installNamespace(owner)
		} else {
			err = r.installInterface(owner)
		}
		if err != nil {
			return err
		}
		logger.Debug("Installed native owner.", "owner", iface.Name, "kind", iface.Kind, "members", len(owner.Members))
	}
	return nil
}

func (r *Realm) lookupNative(iface *model.Interface, m *model.Member) (*natives.Native, error) {
	native, ok := r.natives.Lookup(m.Impl)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q: %s %q references unregistered native %q", registry.ErrConfig, iface.Kind, iface.Name, m.Kind, m.Name, m.Impl)
	}
	return native, nil
}

func (r *Realm) installNamespace(owner *registry.Owner) error {
	iface := owner.Interface
	ns := r.vm.NewObject()
	r.owners[iface.Name] = ns

	for _, m := range owner.Members {
		native, err := r.lookupNative(iface, m)
		if err != nil {
			return err
		}
		if err := ns.DefineDataProperty(m.Name, r.staticWrapper(ns, native.Fn), goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_TRUE); err != nil {
			return err
		}
	}
	return r.global.DefineDataProperty(iface.Name, ns, goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_FALSE)
}

func (r *Realm) installInterface(owner *registry.Owner) error {
	iface := owner.Interface

	var newFn natives.Constructor
	for _, m := range owner.Members {
		if m.Kind != model.MemberConstructor {
			continue
		}
		native, err := r.lookupNative(iface, m)
		if err != nil {
			return err
		}
		newFn = native.New
	}

	ctor := r.vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		if newFn == nil {
			panic(r.vm.NewTypeError("Illegal constructor"))
		}
		state, err := newFn(&natives.Call{Runtime: r.vm, Host: r, This: call.This, Args: call.Arguments})
		if err != nil {
			r.throw(err)
		}
		if err := r.attach(call.This, iface, state); err != nil {
			r.throw(err)
		}
		return nil
	}).ToObject(r.vm)

	proto := r.vm.NewObject()
	if err := ctor.Set("prototype", proto); err != nil {
		return err
	}
	if err := proto.DefineDataProperty("constructor", ctor, goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_FALSE); err != nil {
		return err
	}

	var props []instanceProperty
	if iface.Inherits != "" {
		parentCtor, parentProto, err := r.parentObjects(iface.Inherits)
		if err != nil {
			return err
		}
		if err := proto.SetPrototype(parentProto); err != nil {
			return err
		}
		if err := ctor.SetPrototype(parentCtor); err != nil {
			return err
		}
		props = append(props, r.properties[iface.Inherits]...)
	}

	for _, m := range owner.Members {
		if m.Kind == model.MemberConstructor || m.Kind == model.MemberSingleton {
			continue
		}
		native, err := r.lookupNative(iface, m)
		if err != nil {
			return err
		}

		switch m.Kind {
		case model.MemberStatic:
			err = ctor.DefineDataProperty(m.Name, r.staticWrapper(ctor, native.Fn), goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_TRUE)
		case model.MemberMethod:
			err = proto.DefineDataProperty(m.Name, r.instanceWrapper(iface, native.Fn), goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_TRUE)
		case model.MemberAttribute:
			get, set := r.accessorWrappers(iface, m, native)
			err = proto.DefineAccessorProperty(m.Name, get, set, goja.FLAG_TRUE, goja.FLAG_TRUE)
		case model.MemberProperty:
			get, set := r.accessorWrappers(iface, m, native)
			props = overrideProperty(props, instanceProperty{name: m.Name, get: get, set: set})
		}
		if err != nil {
			return fmt.Errorf("realm: install %s.%s: %w", iface.Name, m.Name, err)
		}
	}

	r.owners[iface.Name] = ctor
	r.protos[iface.Name] = proto
	r.properties[iface.Name] = props
	return r.global.DefineDataProperty(iface.Name, ctor, goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_FALSE)
}

// parentObjects returns the constructor and prototype of a parent
// interface, native or intrinsic.
func (r *Realm) parentObjects(name string) (*goja.Object, *goja.Object, error) {
	if ctor, ok := r.owners[name]; ok {
		return ctor, r.protos[name], nil
	}
	ctor, _, err := r.lookupPath(name)
	if err != nil {
		return nil, nil, err
	}
	proto, _, err := r.lookupPath(name + ".prototype")
	if err != nil {
		return nil, nil, err
	}
	ctorObj, ok1 := ctor.(*goja.Object)
	protoObj, ok2 := proto.(*goja.Object)
	if !ok1 || !ok2 {
		return nil, nil, fmt.Errorf("%w: parent %q is not an interface object", registry.ErrConfig, name)
	}
	return ctorObj, protoObj, nil
}

func overrideProperty(props []instanceProperty, p instanceProperty) []instanceProperty {
	out := make([]instanceProperty, 0, len(props)+1)
	for _, existing := range props {
		if existing.name != p.name {
			out = append(out, existing)
		}
	}
	return append(out, p)
}

// installSingletons creates the global instances declared by exposed
// interfaces. They are constructed by the host, never by script.
func (r *Realm) installSingletons(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, owner := range r.plan.Owners {
		iface := owner.Interface
		for _, m := range owner.Members {
			if m.Kind != model.MemberSingleton {
				continue
			}
			native, err := r.lookupNative(iface, m)
			if err != nil {
				return err
			}
			if native.New == nil {
				return fmt.Errorf("%w: singleton %q: native %q has no constructor", registry.ErrConfig, m.Name, m.Impl)
			}

			obj := r.vm.NewObject()
			if err := obj.SetPrototype(r.protos[iface.Name]); err != nil {
				return err
			}
			state, err := native.New(&natives.Call{Runtime: r.vm, Host: r, This: obj, Internal: true})
			if err != nil {
				return fmt.Errorf("realm: create singleton %q: %w", m.Name, err)
			}
			if err := r.attach(obj, iface, state); err != nil {
				return err
			}
			if err := r.global.DefineDataProperty(m.Name, obj, goja.FLAG_FALSE, goja.FLAG_TRUE, goja.FLAG_TRUE); err != nil {
				return err
			}
			logger.Debug("Installed singleton.", "name", m.Name, "interface", iface.Name)
		}
	}
	return nil
}

// staticWrapper is the script-visible function of a static operation or
// namespace function. Script may replace it; the registry keeps its own
// path to the implementation.
func (r *Realm) staticWrapper(owner *goja.Object, fn natives.Func) goja.Value {
	return r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		v, err := r.invoke(fn, owner, call.Arguments)
		if err != nil {
			r.throw(err)
		}
		return v
	})
}

// instanceWrapper is the script-visible function of a method. It performs
// the same brand check the original path does.
func (r *Realm) instanceWrapper(iface *model.Interface, fn natives.Func) goja.Value {
	return r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if err := r.checkReceiver(call.This, iface); err != nil {
			r.throw(err)
		}
		v, err := r.invoke(fn, call.This, call.Arguments)
		if err != nil {
			r.throw(err)
		}
		return v
	})
}

// accessorWrappers returns the getter and, unless read-only, the setter of
// an attribute or property.
func (r *Realm) accessorWrappers(iface *model.Interface, m *model.Member, native *natives.Native) (goja.Value, goja.Value) {
	get := r.instanceWrapper(iface, native.Get)
	if m.Readonly || native.Set == nil {
		return get, nil
	}
	return get, r.instanceWrapper(iface, native.Set)
}

func (r *Realm) checkReceiver(this goja.Value, iface *model.Interface) error {
	obj, _ := this.(*goja.Object)
	b, ok := r.tags.Classify(obj)
	if !ok || !r.table.Extends(b, iface.Brand) {
		return natives.TypeError("Illegal invocation")
	}
	return nil
}

// invoke runs a native implementation with this as the receiver.
func (r *Realm) invoke(fn natives.Func, this goja.Value, args []goja.Value) (goja.Value, error) {
	call := &natives.Call{Runtime: r.vm, Host: r, This: this, Args: args}
	if obj, ok := this.(*goja.Object); ok {
		call.State = r.states[obj]
	}
	v, err := fn(call)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return goja.Undefined(), nil
	}
	return v, nil
}

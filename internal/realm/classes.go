package realm

import (
	"reflect"
	"slices"

	"github.com/dop251/goja"
)

// goja reports Map, Set, WeakMap, WeakSet and Promise instances with the
// plain "Object" class. Map, Set and Promise differ from plain objects in
// their export type, which is a Go-side read.
var (
	mapExportType = reflect.TypeOf([][2]interface{}{})
	setExportType = reflect.TypeOf([]interface{}{})
	promiseType   = reflect.TypeOf((*goja.Promise)(nil))
	proxyType     = reflect.TypeOf(goja.Proxy{})
)

// classOf returns the intrinsic class of o without running script. Proxies
// have no internal slots of their own and never classify.
func (r *Realm) classOf(o *goja.Object) string {
	if o == nil {
		return ""
	}
	switch o.ExportType() {
	case proxyType:
		return ""
	case promiseType:
		return "Promise"
	}

	class := o.ClassName()
	if class != "Object" {
		return class
	}
	switch o.ExportType() {
	case mapExportType:
		return "Map"
	case setExportType:
		return "Set"
	}

	// WeakMap and WeakSet look like plain objects from Go. Their captured
	// has() checks the receiver's slot; on a miss it formats the receiver
	// through Symbol.toStringTag, so only ask when that read is inert.
	if (r.weakMapHas == nil && r.weakSetHas == nil) || !r.inertToStringTag(o) {
		return class
	}
	if r.hasSlot(r.weakMapHas, o) {
		return "WeakMap"
	}
	if r.hasSlot(r.weakSetHas, o) {
		return "WeakSet"
	}
	return class
}

// hasSlot reports whether the captured brand-checking has() accepts o as
// its receiver.
func (r *Realm) hasSlot(has goja.Callable, o *goja.Object) bool {
	if has == nil {
		return false
	}
	_, err := has(o, goja.Undefined())
	return err == nil
}

// inertToStringTag reports whether looking up Symbol.toStringTag on o
// reaches no accessor and no proxy.
func (r *Realm) inertToStringTag(o *goja.Object) bool {
	for p := o; p != nil; p = p.Prototype() {
		if p.ExportType() == proxyType {
			return false
		}
		desc, err := r.getOwnPropertyDescriptor(goja.Undefined(), p, goja.SymToStringTag)
		if err != nil {
			return false
		}
		d, ok := desc.(*goja.Object)
		if !ok {
			continue
		}
		return !slices.Contains(d.Keys(), "get")
	}
	return true
}

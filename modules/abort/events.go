package abort

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/natives"
)

// Target is the backing state of an EventTarget.
type Target struct {
	self      *goja.Object
	listeners map[string][]goja.Value
}

func (t *Target) target() *Target { return t }

// eventTarget is implemented by the state of every EventTarget subtype.
type eventTarget interface {
	target() *Target
}

func (t *Target) add(typ string, callback goja.Value) {
	for _, l := range t.listeners[typ] {
		if l.StrictEquals(callback) {
			return
		}
	}
	if t.listeners == nil {
		t.listeners = make(map[string][]goja.Value)
	}
	t.listeners[typ] = append(t.listeners[typ], callback)
}

func (t *Target) remove(typ string, callback goja.Value) {
	list := t.listeners[typ]
	for i, l := range list {
		if l.StrictEquals(callback) {
			t.listeners[typ] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// fire calls every listener of typ with a fresh event object. Listener
// exceptions are reported to the realm output and do not stop dispatch.
func (t *Target) fire(call *natives.Call, typ string) {
	listeners := append([]goja.Value(nil), t.listeners[typ]...)
	if len(listeners) == 0 {
		return
	}

	event := call.Runtime.NewObject()
	_ = event.Set("type", typ)
	_ = event.Set("target", t.self)

	for _, l := range listeners {
		fn, ok := goja.AssertFunction(l)
		if !ok {
			continue
		}
		if _, err := fn(t.self, event); err != nil {
			fmt.Fprintf(call.Host.Output(), "Uncaught %v\n", err)
		}
	}
}

func newEventTarget(call *natives.Call) (any, error) {
	return &Target{self: call.This.(*goja.Object)}, nil
}

func listenerArgs(call *natives.Call) (*Target, string, goja.Value, bool, error) {
	state, err := natives.StateOf[eventTarget](call)
	if err != nil {
		return nil, "", nil, false, err
	}
	typ, err := natives.StringArg(call, 0, "type")
	if err != nil {
		return nil, "", nil, false, err
	}
	callback := call.Argument(1)
	if _, ok := goja.AssertFunction(callback); !ok {
		return state.target(), typ, nil, false, nil
	}
	return state.target(), typ, callback, true, nil
}

func addEventListener(call *natives.Call) (goja.Value, error) {
	t, typ, callback, ok, err := listenerArgs(call)
	if err != nil || !ok {
		return goja.Undefined(), err
	}
	t.add(typ, callback)
	return goja.Undefined(), nil
}

func removeEventListener(call *natives.Call) (goja.Value, error) {
	t, typ, callback, ok, err := listenerArgs(call)
	if err != nil || !ok {
		return goja.Undefined(), err
	}
	t.remove(typ, callback)
	return goja.Undefined(), nil
}

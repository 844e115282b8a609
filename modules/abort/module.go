// Package abort provides EventTarget, AbortSignal and AbortController.
package abort

import (
	_ "embed"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/natives"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the natives.Module interface for this package.
type Module struct{}

// Manifest returns the module's realm description.
func (m *Module) Manifest() (string, []byte) {
	return "modules/abort/manifest.hcl", manifest
}

// Register registers the three interfaces.
func (m *Module) Register(n *natives.Natives) {
	n.Register("EventTarget", &natives.Native{New: newEventTarget})
	n.Register("EventTarget.prototype.addEventListener", &natives.Native{Fn: addEventListener})
	n.Register("EventTarget.prototype.removeEventListener", &natives.Native{Fn: removeEventListener})

	n.Register("AbortSignal.abort", &natives.Native{Fn: abortedSignal})
	n.Register("AbortSignal.prototype.aborted", &natives.Native{Get: func(call *natives.Call) (goja.Value, error) {
		s, err := natives.StateOf[*Signal](call)
		if err != nil {
			return nil, err
		}
		return call.Runtime.ToValue(s.aborted), nil
	}})
	n.Register("AbortSignal.prototype.reason", &natives.Native{Get: func(call *natives.Call) (goja.Value, error) {
		s, err := natives.StateOf[*Signal](call)
		if err != nil {
			return nil, err
		}
		if s.reason == nil {
			return goja.Undefined(), nil
		}
		return s.reason, nil
	}})
	n.Register("AbortSignal.prototype.throwIfAborted", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		s, err := natives.StateOf[*Signal](call)
		if err != nil {
			return nil, err
		}
		if s.aborted {
			return nil, &natives.Thrown{Value: s.reason}
		}
		return goja.Undefined(), nil
	}})

	n.Register("AbortController", &natives.Native{New: newController})
	n.Register("AbortController.prototype.signal", &natives.Native{Get: func(call *natives.Call) (goja.Value, error) {
		c, err := natives.StateOf[*Controller](call)
		if err != nil {
			return nil, err
		}
		return c.signal.self, nil
	}})
	n.Register("AbortController.prototype.abort", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		c, err := natives.StateOf[*Controller](call)
		if err != nil {
			return nil, err
		}
		c.signal.abort(call, call.Argument(0))
		return goja.Undefined(), nil
	}})
}

// Signal is the backing state of an AbortSignal.
type Signal struct {
	Target
	aborted bool
	reason  goja.Value
}

// Aborted reports whether the signal has been aborted.
func (s *Signal) Aborted() bool {
	return s.aborted
}

// abort marks the signal aborted and fires "abort" once.
func (s *Signal) abort(call *natives.Call, reason goja.Value) {
	if s.aborted {
		return
	}
	s.aborted = true
	s.reason = reasonOrDefault(call.Runtime, reason)
	s.fire(call, "abort")
}

// Controller is the backing state of an AbortController.
type Controller struct {
	signal *Signal
}

func newSignal(host natives.Host) (*Signal, error) {
	s := &Signal{}
	obj, err := host.Construct("AbortSignal", s)
	if err != nil {
		return nil, err
	}
	s.self = obj
	return s, nil
}

func newController(call *natives.Call) (any, error) {
	s, err := newSignal(call.Host)
	if err != nil {
		return nil, err
	}
	return &Controller{signal: s}, nil
}

func abortedSignal(call *natives.Call) (goja.Value, error) {
	s, err := newSignal(call.Host)
	if err != nil {
		return nil, err
	}
	s.aborted = true
	s.reason = reasonOrDefault(call.Runtime, call.Argument(0))
	return s.self, nil
}

// reasonOrDefault substitutes an AbortError for a missing reason.
func reasonOrDefault(vm *goja.Runtime, reason goja.Value) goja.Value {
	if reason != nil && !goja.IsUndefined(reason) {
		return reason
	}
	e := vm.NewObject()
	_ = e.Set("name", "AbortError")
	_ = e.Set("message", "signal is aborted without reason")
	return e
}

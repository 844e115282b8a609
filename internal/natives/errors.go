package natives

import (
	"fmt"

	"github.com/dop251/goja"
)

// ErrorKind names the script exception a native error becomes.
type ErrorKind string

const (
	KindTypeError  ErrorKind = "TypeError"
	KindRangeError ErrorKind = "RangeError"
)

// Error is a script-facing failure reported by a native implementation.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Thrown rethrows an existing script value, e.g. an abort reason.
type Thrown struct {
	Value goja.Value
}

// Error implements the error interface.
func (t *Thrown) Error() string {
	if t.Value == nil {
		return "undefined"
	}
	return t.Value.String()
}

// TypeError reports a TypeError.
func TypeError(format string, args ...any) *Error {
	return &Error{Kind: KindTypeError, Message: fmt.Sprintf(format, args...)}
}

// RangeError reports a RangeError.
func RangeError(format string, args ...any) *Error {
	return &Error{Kind: KindRangeError, Message: fmt.Sprintf(format, args...)}
}

// StateOf returns the call's backing state as T. A mismatch means the
// receiver is not an instance this implementation can serve.
func StateOf[T any](call *Call) (T, error) {
	state, ok := call.State.(T)
	if !ok {
		var zero T
		return zero, TypeError("Illegal invocation")
	}
	return state, nil
}

// StringArg converts a required argument to a string. Symbols are rejected
// the way WebIDL DOMString conversion does.
func StringArg(call *Call, i int, name string) (string, error) {
	if i >= len(call.Args) {
		return "", TypeError("%d argument required, but only %d present (%s)", i+1, len(call.Args), name)
	}
	v := call.Args[i]
	if _, isSymbol := v.(*goja.Symbol); isSymbol {
		return "", TypeError("Cannot convert a Symbol value to a string")
	}
	return v.String(), nil
}

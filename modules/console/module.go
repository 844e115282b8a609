// Package console provides the console namespace.
package console

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/natives"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the natives.Module interface for this package.
type Module struct{}

// Manifest returns the module's realm description.
func (m *Module) Manifest() (string, []byte) {
	return "modules/console/manifest.hcl", manifest
}

// Register registers the console functions.
func (m *Module) Register(n *natives.Natives) {
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		n.Register("console."+level, &natives.Native{Fn: printer(level)})
	}
}

// printer writes its arguments space-separated on one line. warn and error
// lines are prefixed with their level.
func printer(level string) natives.Func {
	return func(call *natives.Call) (goja.Value, error) {
		parts := make([]string, 0, len(call.Args)+1)
		if level == "warn" || level == "error" {
			parts = append(parts, "["+level+"]")
		}
		for _, arg := range call.Args {
			parts = append(parts, Format(arg))
		}
		fmt.Fprintln(call.Host.Output(), strings.Join(parts, " "))
		return goja.Undefined(), nil
	}
}

// Format renders a value the way console output shows it.
func Format(v goja.Value) string {
	if v == nil {
		return "undefined"
	}
	if obj, ok := v.(*goja.Object); ok && obj.ClassName() == "Array" {
		var items []string
		for _, key := range obj.Keys() {
			items = append(items, Format(obj.Get(key)))
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return v.String()
}

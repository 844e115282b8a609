package dispatch

import (
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/brand"
	"github.com/specialistvlad/originals/internal/registry"
)

// Engine answers original-binding requests for one realm. It holds no
// mutable state of its own.
type Engine struct {
	table  *registry.Table
	brands brand.Checker
}

// New returns an engine over a built table and the realm's brand checker.
func New(table *registry.Table, brands brand.Checker) *Engine {
	if table == nil || brands == nil {
		panic("dispatch: engine needs a table and a brand checker")
	}
	return &Engine{table: table, brands: brands}
}

// Table returns the registry the engine dispatches through.
func (e *Engine) Table() *registry.Table {
	return e.table
}

// GetOriginalConstructor returns the constructor registered under name, the
// identical value the realm's global held when it was created.
func (e *Engine) GetOriginalConstructor(name string) (any, bool) {
	d, ok := e.table.Constructor(name)
	if !ok {
		return nil, false
	}
	return d.Constructor, true
}

// CallOriginalStaticMethod invokes a static operation or namespace
// function. Errors returned by the implementation are passed through as is.
func (e *Engine) CallOriginalStaticMethod(owner, name string, args ...any) (any, error) {
	d, ok := e.table.Static(owner, name)
	if !ok {
		return nil, &InvocationError{Op: OpCallStatic, Owner: owner, Name: name}
	}
	return d.Impl(nil, args)
}

// GetOriginalProperty runs the original getter of name on target. ok is
// false when target has no brand or its brand has no getter called name.
func (e *Engine) GetOriginalProperty(target any, name string) (value any, ok bool, err error) {
	slots, ok := e.slots(target, name)
	if !ok || slots.Get == nil {
		return nil, false, nil
	}
	value, err = slots.Get.Impl(target, nil)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// SetOriginalProperty runs the original setter of name on target. It is a
// silent no-op when there is no setter, read-only properties included.
func (e *Engine) SetOriginalProperty(target any, name string, value any) error {
	slots, ok := e.slots(target, name)
	if !ok || slots.Set == nil {
		return nil
	}
	set := slots.Set.Impl
	if slots.Set.Category == binding.InstanceProperty {
		set = slots.Set.SetImpl
	}
	_, err := set(target, []any{value})
	return err
}

// CallOriginalMethod invokes the original method name with target as the
// receiver.
func (e *Engine) CallOriginalMethod(target any, name string, args ...any) (any, error) {
	b, _ := e.brands.Classify(target)
	slots, ok := e.slots(target, name)
	if !ok || slots.Call == nil {
		return nil, &InvocationError{Op: OpCallMethod, Brand: b, Name: name}
	}
	return slots.Call.Impl(target, args)
}

func (e *Engine) slots(target any, name string) (binding.Slots, bool) {
	b, ok := e.brands.Classify(target)
	if !ok || b == binding.NotBranded {
		return binding.Slots{}, false
	}
	return e.table.Member(b, name)
}

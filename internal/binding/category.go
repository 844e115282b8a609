package binding

import "fmt"

// Category classifies a binding by how it is reached and invoked.
type Category int

const (
	// Constructor is a top-level constructor. Its implementation is the
	// exact original constructor value, so identity comparisons hold.
	Constructor Category = iota + 1
	// StaticOperation is a function hanging off a constructor.
	StaticOperation
	// InstanceProperty is a per-instance accessor pair owned by the host.
	InstanceProperty
	// InstanceMethod is an operation invoked with an instance as receiver.
	InstanceMethod
	// InstanceAccessorGet is the getter half of a prototype accessor.
	InstanceAccessorGet
	// InstanceAccessorSet is the setter half of a prototype accessor.
	InstanceAccessorSet
	// NamespaceFunction is a function on a namespace object such as Math.
	NamespaceFunction
)

var categoryNames = map[Category]string{
	Constructor:         "Constructor",
	StaticOperation:     "StaticOperation",
	InstanceProperty:    "InstanceProperty",
	InstanceMethod:      "InstanceMethod",
	InstanceAccessorGet: "InstanceAccessorGet",
	InstanceAccessorSet: "InstanceAccessorSet",
	NamespaceFunction:   "NamespaceFunction",
}

// String implements fmt.Stringer.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// IsStatic reports whether the category is resolved by owner name rather
// than by the brand of a target.
func (c Category) IsStatic() bool {
	return c == StaticOperation || c == NamespaceFunction
}

// IsInstance reports whether the category is resolved through a target's brand.
func (c Category) IsInstance() bool {
	switch c {
	case InstanceProperty, InstanceMethod, InstanceAccessorGet, InstanceAccessorSet:
		return true
	}
	return false
}

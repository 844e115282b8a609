package binding

import "fmt"

// Func is the opaque implementation of every non-constructor binding. It is
// a Go closure resolved at build time and is never handed to script as a
// value. Static functions ignore this; they are bound to their owner.
type Func func(this any, args []any) (any, error)

// Source locates the manifest declaration a descriptor was built from.
type Source struct {
	FilePath string
	Line     int
}

// String implements fmt.Stringer.
func (s Source) String() string {
	if s.FilePath == "" {
		return "<builtin>"
	}
	return fmt.Sprintf("%s:%d", s.FilePath, s.Line)
}

// Descriptor is the unit of registration in a realm registry.
type Descriptor struct {
	// Name is the symbolic name, unique within its category and owner scope.
	Name     string
	Category Category

	// Owner is the declaring interface or namespace. It equals Name for
	// constructors.
	Owner string
	// Brand is the owner's brand for instance members.
	Brand Brand

	// Constructor holds the original constructor value for the Constructor
	// category.
	Constructor any
	// Impl is the implementation for every other category. For
	// InstanceProperty it is the getter.
	Impl Func
	// SetImpl is the setter of an InstanceProperty; nil when read-only.
	SetImpl Func

	Source Source
}

// Key renders the descriptor's lookup key for logs and listings.
func (d Descriptor) Key() string {
	switch {
	case d.Category == Constructor:
		return d.Name
	case d.Category.IsStatic():
		return d.Owner + "." + d.Name
	default:
		return string(d.Brand) + "#" + d.Name
	}
}

// Slots groups the instance-member descriptors registered under one
// (brand, name) pair. Each slot serves one dispatch operation.
type Slots struct {
	Get  *Descriptor
	Set  *Descriptor
	Call *Descriptor
}

// Empty reports whether no slot is filled.
func (s Slots) Empty() bool {
	return s.Get == nil && s.Set == nil && s.Call == nil
}

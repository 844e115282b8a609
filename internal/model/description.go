package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/originals/internal/binding"
)

// Source says where the implementations of an owner's members come from.
type Source string

const (
	// SourceIntrinsic members are captured from the script engine's own
	// built-in object graph while the realm is still untampered.
	SourceIntrinsic Source = "intrinsic"
	// SourceNative members are Go implementations registered by modules.
	SourceNative Source = "native"
)

// OwnerKind distinguishes class-like interfaces from namespace objects.
type OwnerKind string

const (
	KindInterface OwnerKind = "interface"
	KindNamespace OwnerKind = "namespace"
)

// MemberKind is the manifest block type a member was declared with.
type MemberKind string

const (
	MemberConstructor MemberKind = "constructor"
	MemberStatic      MemberKind = "static"
	MemberFunction    MemberKind = "function"
	MemberMethod      MemberKind = "method"
	MemberAttribute   MemberKind = "attribute"
	MemberProperty    MemberKind = "property"
	MemberSingleton   MemberKind = "singleton"
)

// Description is the realm description: every interface and namespace a
// realm of any kind could expose.
type Description struct {
	Interfaces []*Interface
}

// NewDescription creates an empty Description.
func NewDescription() *Description {
	return &Description{Interfaces: []*Interface{}}
}

// Merge appends the owners of other descriptions. Duplicate names are kept;
// detecting them is the registry builder's job.
func (d *Description) Merge(others ...*Description) *Description {
	for _, o := range others {
		if o == nil {
			continue
		}
		d.Interfaces = append(d.Interfaces, o.Interfaces...)
	}
	return d
}

// Lookup returns the first owner declared under name.
func (d *Description) Lookup(name string) (*Interface, bool) {
	for _, iface := range d.Interfaces {
		if iface.Name == name {
			return iface, true
		}
	}
	return nil, false
}

// Interface is one owner: an interface (class-like) or a namespace.
type Interface struct {
	Name        string
	Kind        OwnerKind
	Source      Source
	Brand       binding.Brand
	Inherits    string
	Description string

	// Exposed is the owner's exposure predicate; nil means everywhere.
	Exposed hcl.Expression

	Members       []*Member
	FSInformation *FSInfo
	DefRange      hcl.Range
}

// MembersOf returns the members declared with the given block type, in
// declaration order.
func (i *Interface) MembersOf(kind MemberKind) []*Member {
	var out []*Member
	for _, m := range i.Members {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Member is one declared binding of an owner.
type Member struct {
	Kind        MemberKind
	Name        string
	Impl        string
	Readonly    bool
	Description string

	// Exposed is the member's own exposure predicate, evaluated in addition
	// to the owner's; nil means the owner's predicate alone decides.
	Exposed hcl.Expression

	DefRange hcl.Range
}

// DefaultImpl derives the implementation reference of a member from its
// owner: "Map" for a constructor, "Map.groupBy" for statics and namespace
// functions, "Map.prototype.get" for instance members.
func DefaultImpl(owner string, kind MemberKind, name string) string {
	switch kind {
	case MemberConstructor, MemberSingleton:
		return owner
	case MemberStatic, MemberFunction:
		return owner + "." + name
	default:
		return owner + ".prototype." + name
	}
}

package registry

import (
	"slices"
	"sort"

	"github.com/specialistvlad/originals/internal/binding"
)

type staticKey struct {
	owner string
	name  string
}

type memberKey struct {
	brand binding.Brand
	name  string
}

// Table is the immutable registry of one realm. Nothing mutates it after
// Build returns, so it is safe to read without locks. Descriptors reached
// through it must not be modified.
type Table struct {
	kind         binding.RealmKind
	constructors map[string]*binding.Descriptor
	statics      map[staticKey]*binding.Descriptor
	members      map[memberKey]binding.Slots
	ancestry     map[binding.Brand][]binding.Brand
	own          []*binding.Descriptor
}

func newTable(kind binding.RealmKind) *Table {
	return &Table{
		kind:         kind,
		constructors: make(map[string]*binding.Descriptor),
		statics:      make(map[staticKey]*binding.Descriptor),
		members:      make(map[memberKey]binding.Slots),
		ancestry:     make(map[binding.Brand][]binding.Brand),
	}
}

// Kind returns the realm kind the table was built for.
func (t *Table) Kind() binding.RealmKind {
	return t.kind
}

// Constructor returns the constructor descriptor registered under name.
func (t *Table) Constructor(name string) (*binding.Descriptor, bool) {
	d, ok := t.constructors[name]
	return d, ok
}

// Static returns the static operation or namespace function name of owner.
func (t *Table) Static(owner, name string) (*binding.Descriptor, bool) {
	d, ok := t.statics[staticKey{owner, name}]
	return d, ok
}

// Member returns the slots for name on values of brand, inherited members
// included.
func (t *Table) Member(brand binding.Brand, name string) (binding.Slots, bool) {
	s, ok := t.members[memberKey{brand, name}]
	return s, ok
}

// Ancestry returns brand followed by the brands it inherits from, nearest
// first. It is nil for brands the realm does not expose.
func (t *Table) Ancestry(brand binding.Brand) []binding.Brand {
	return slices.Clone(t.ancestry[brand])
}

// Extends reports whether brand is ancestor or inherits from it.
func (t *Table) Extends(brand, ancestor binding.Brand) bool {
	return slices.Contains(t.ancestry[brand], ancestor)
}

// Descriptors lists every descriptor declared directly, sorted by key and
// category. Inherited slots are not repeated.
func (t *Table) Descriptors() []*binding.Descriptor {
	out := slices.Clone(t.own)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Key() != out[j].Key() {
			return out[i].Key() < out[j].Key()
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Len reports the number of descriptors declared directly.
func (t *Table) Len() int {
	return len(t.own)
}

func (t *Table) add(d *binding.Descriptor) {
	t.own = append(t.own, d)

	switch {
	case d.Category == binding.Constructor:
		t.constructors[d.Name] = d
	case d.Category.IsStatic():
		t.statics[staticKey{d.Owner, d.Name}] = d
	default:
		key := memberKey{d.Brand, d.Name}
		slots := t.members[key]
		switch d.Category {
		case binding.InstanceMethod:
			slots.Call = d
		case binding.InstanceAccessorGet:
			slots.Get = d
		case binding.InstanceAccessorSet:
			slots.Set = d
		case binding.InstanceProperty:
			slots.Get = d
			if d.SetImpl != nil {
				slots.Set = d
			}
		}
		t.members[key] = slots
	}
}

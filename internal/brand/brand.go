// Package brand implements the Brand Checker: an O(1) classification of an
// arbitrary value into the brand it was constructed with, without running
// any script-observable operation and without walking a prototype chain.
package brand

import (
	"fmt"

	"github.com/specialistvlad/originals/internal/binding"
)

// Checker classifies values by brand.
type Checker interface {
	// Classify returns the value's brand, or NotBranded and false.
	Classify(v any) (binding.Brand, bool)
}

// Tags is a Checker for hosts whose values are identified by a comparable
// handle K (a pointer, usually). Brands live in a side table the script can
// neither see nor alter. A class function can additionally map an engine's
// internal class tag to a brand for intrinsics the host did not construct.
//
// Tags is owned by a single realm and is mutated only on that realm's
// thread, while objects are being constructed. Assigned handles are held
// for the lifetime of the Tags.
type Tags[K comparable] struct {
	assigned map[K]binding.Brand
	excluded map[K]struct{}

	classOf func(K) string
	classes map[string]binding.Brand
}

// NewTags returns an empty side table.
func NewTags[K comparable]() *Tags[K] {
	return &Tags[K]{
		assigned: make(map[K]binding.Brand),
		excluded: make(map[K]struct{}),
	}
}

// WithClasses installs the internal-class fallback. classOf reads engine
// state only; it must never call back into script.
func (t *Tags[K]) WithClasses(classOf func(K) string, classes map[string]binding.Brand) *Tags[K] {
	t.classOf = classOf
	t.classes = make(map[string]binding.Brand, len(classes))
	for class, b := range classes {
		t.classes[class] = b
	}
	return t
}

// Assign brands a freshly constructed value. Assigning the same brand twice
// is harmless; assigning a different one is a host defect and panics,
// because a brand never changes after construction.
func (t *Tags[K]) Assign(handle K, b binding.Brand) {
	if b == binding.NotBranded {
		panic("brand: cannot assign the empty brand")
	}
	if prev, ok := t.assigned[handle]; ok && prev != b {
		panic(fmt.Sprintf("brand: value already branded %q, refusing %q", prev, b))
	}
	t.assigned[handle] = b
}

// Exclude marks a value as never branded, whatever its class says. Realms
// exclude their global object this way.
func (t *Tags[K]) Exclude(handle K) {
	t.excluded[handle] = struct{}{}
}

// Classify implements Checker.
func (t *Tags[K]) Classify(v any) (binding.Brand, bool) {
	handle, ok := v.(K)
	if !ok {
		return binding.NotBranded, false
	}
	if _, skip := t.excluded[handle]; skip {
		return binding.NotBranded, false
	}
	if b, ok := t.assigned[handle]; ok {
		return b, true
	}
	if t.classOf != nil {
		if b, ok := t.classes[t.classOf(handle)]; ok {
			return b, true
		}
	}
	return binding.NotBranded, false
}

// Len reports how many values carry an assigned brand.
func (t *Tags[K]) Len() int {
	return len(t.assigned)
}

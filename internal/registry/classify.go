package registry

import (
	"fmt"

	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/model"
)

// Classify maps a declared member to the categories it registers under.
// An attribute yields a getter and, unless read-only, a setter. A singleton
// is a global instance rather than a binding and yields nothing.
func Classify(owner *model.Interface, m *model.Member) ([]binding.Category, error) {
	if owner.Kind == model.KindNamespace {
		if m.Kind != model.MemberFunction {
			return nil, fmt.Errorf("namespace %q cannot declare %s %q", owner.Name, m.Kind, m.Name)
		}
		return []binding.Category{binding.NamespaceFunction}, nil
	}

	switch m.Kind {
	case model.MemberConstructor:
		return []binding.Category{binding.Constructor}, nil
	case model.MemberStatic:
		return []binding.Category{binding.StaticOperation}, nil
	case model.MemberMethod:
		return []binding.Category{binding.InstanceMethod}, nil
	case model.MemberAttribute:
		if m.Readonly {
			return []binding.Category{binding.InstanceAccessorGet}, nil
		}
		return []binding.Category{binding.InstanceAccessorGet, binding.InstanceAccessorSet}, nil
	case model.MemberProperty:
		if owner.Source != model.SourceNative {
			return nil, fmt.Errorf("interface %q: property %q requires a native source", owner.Name, m.Name)
		}
		return []binding.Category{binding.InstanceProperty}, nil
	case model.MemberSingleton:
		return nil, nil
	}
	return nil, fmt.Errorf("interface %q: %s %q has no binding category", owner.Name, m.Kind, m.Name)
}

package registry

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/model"
)

// checkCollisions looks for every naming problem in the whole description,
// independent of the realm kind. A description that only works because some
// bindings happen to be hidden in one kind is still rejected.
func checkCollisions(desc *model.Description) error {
	var errs []string

	owners := make(map[string]*model.Interface, len(desc.Interfaces))
	brands := make(map[binding.Brand]*model.Interface)
	singletons := make(map[string]hcl.Range)

	for _, owner := range desc.Interfaces {
		if prev, ok := owners[owner.Name]; ok {
			errs = append(errs, fmt.Sprintf("%s %q declared twice (%s and %s)", owner.Kind, owner.Name, prev.DefRange, owner.DefRange))
			continue
		}
		owners[owner.Name] = owner

		if owner.Kind == model.KindInterface {
			if prev, ok := brands[owner.Brand]; ok {
				errs = append(errs, fmt.Sprintf("brand %q claimed by both %q and %q", owner.Brand, prev.Name, owner.Name))
			} else {
				brands[owner.Brand] = owner
			}
		}

		errs = append(errs, memberCollisions(owner)...)

		for _, m := range owner.MembersOf(model.MemberSingleton) {
			if prev, ok := singletons[m.Name]; ok {
				errs = append(errs, fmt.Sprintf("singleton %q declared twice (%s and %s)", m.Name, prev, m.DefRange))
				continue
			}
			singletons[m.Name] = m.DefRange
		}
	}

	for name, r := range singletons {
		if owner, ok := owners[name]; ok {
			errs = append(errs, fmt.Sprintf("singleton %q (%s) collides with %s %q", name, r, owner.Kind, owner.Name))
		}
	}

	errs = append(errs, inheritanceProblems(desc, owners)...)

	return configErrors(errs)
}

// memberCollisions reports duplicates within one owner. Statics and
// namespace functions share one scope, every instance member kind another.
func memberCollisions(owner *model.Interface) []string {
	var errs []string
	statics := make(map[string]*model.Member)
	instance := make(map[string]*model.Member)
	var ctor *model.Member

	for _, m := range owner.Members {
		var scope map[string]*model.Member
		switch m.Kind {
		case model.MemberConstructor:
			if ctor != nil {
				errs = append(errs, fmt.Sprintf("%s %q declares more than one constructor (%s and %s)", owner.Kind, owner.Name, ctor.DefRange, m.DefRange))
			}
			ctor = m
			continue
		case model.MemberStatic, model.MemberFunction:
			scope = statics
		case model.MemberMethod, model.MemberAttribute, model.MemberProperty:
			scope = instance
		default:
			continue
		}

		if prev, ok := scope[m.Name]; ok {
			errs = append(errs, fmt.Sprintf("%s %q: %s %q collides with %s %q (%s)", owner.Kind, owner.Name, m.Kind, m.Name, prev.Kind, prev.Name, prev.DefRange))
			continue
		}
		scope[m.Name] = m
	}
	return errs
}

// inheritanceProblems reports unknown parents, parents that are not
// interfaces and cycles.
func inheritanceProblems(desc *model.Description, owners map[string]*model.Interface) []string {
	var errs []string
	for _, owner := range desc.Interfaces {
		if owner.Inherits == "" || owners[owner.Name] != owner {
			continue
		}
		parent, ok := owners[owner.Inherits]
		if !ok {
			errs = append(errs, fmt.Sprintf("interface %q inherits unknown interface %q", owner.Name, owner.Inherits))
			continue
		}
		if parent.Kind != model.KindInterface {
			errs = append(errs, fmt.Sprintf("interface %q inherits %s %q", owner.Name, parent.Kind, parent.Name))
			continue
		}

		seen := map[string]bool{owner.Name: true}
		for p := parent; p != nil; p = owners[p.Inherits] {
			if seen[p.Name] {
				errs = append(errs, fmt.Sprintf("interface %q is part of an inheritance cycle", owner.Name))
				break
			}
			seen[p.Name] = true
			if p.Inherits == "" {
				break
			}
		}
	}
	return errs
}

package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/model"
)

// Build plans desc for kind and builds its table in one step.
func Build(ctx context.Context, desc *model.Description, kind binding.RealmKind, resolver Resolver) (*Table, error) {
	plan, err := NewPlan(ctx, desc, kind)
	if err != nil {
		return nil, err
	}
	return BuildPlan(ctx, plan, resolver)
}

// BuildPlan resolves every exposed member of plan through resolver and
// returns the finished table.
func BuildPlan(ctx context.Context, plan *Plan, resolver Resolver) (*Table, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building realm registry...", "kind", plan.Kind, "owners", len(plan.Owners))

	t := newTable(plan.Kind)
	var errs []string

	for _, owner := range plan.Owners {
		iface := owner.Interface
		if iface.Kind == model.KindInterface {
			ancestry := []binding.Brand{iface.Brand}
			if iface.Inherits != "" {
				parent, _ := plan.Lookup(iface.Inherits)
				ancestry = append(ancestry, t.ancestry[parent.Interface.Brand]...)
			}
			t.ancestry[iface.Brand] = ancestry
		}

		for _, m := range owner.Members {
			categories, err := Classify(iface, m)
			if err != nil {
				errs = append(errs, err.Error())
				continue
			}
			for _, cat := range categories {
				d, err := resolve(iface, m, cat, resolver)
				if err != nil {
					errs = append(errs, err.Error())
					continue
				}
				t.add(d)
			}
		}
	}

	if err := configErrors(errs); err != nil {
		return nil, err
	}

	flatten(t, plan)

	logger.Info("Realm registry built.",
		"kind", plan.Kind,
		"constructors", len(t.constructors),
		"statics", len(t.statics),
		"instance_members", len(t.members),
	)
	return t, nil
}

// resolve builds the descriptor of one category of m.
func resolve(owner *model.Interface, m *model.Member, cat binding.Category, resolver Resolver) (*binding.Descriptor, error) {
	d := &binding.Descriptor{
		Name:     m.Name,
		Category: cat,
		Owner:    owner.Name,
		Source:   binding.Source{FilePath: m.DefRange.Filename, Line: m.DefRange.Start.Line},
	}
	if cat.IsInstance() || cat == binding.Constructor {
		d.Brand = owner.Brand
	}

	ref := Ref{Owner: owner, Member: m}
	var err error
	switch cat {
	case binding.Constructor:
		d.Constructor, err = resolver.Constructor(ref)
		if err == nil && d.Constructor == nil {
			err = fmt.Errorf("resolver returned no constructor")
		}
	case binding.InstanceAccessorGet:
		ref.Role = RoleGet
		d.Impl, err = resolver.Function(ref)
	case binding.InstanceAccessorSet:
		ref.Role = RoleSet
		d.Impl, err = resolver.Function(ref)
	case binding.InstanceProperty:
		ref.Role = RoleGet
		d.Impl, err = resolver.Function(ref)
		if err == nil && !m.Readonly {
			ref.Role = RoleSet
			d.SetImpl, err = resolver.Function(ref)
		}
	default:
		d.Impl, err = resolver.Function(ref)
	}

	if err == nil && cat != binding.Constructor && d.Impl == nil {
		err = fmt.Errorf("resolver returned no implementation")
	}
	if err != nil {
		return nil, fmt.Errorf("%s %q: cannot resolve %s at %s: %w", owner.Kind, owner.Name, ref, d.Source, err)
	}
	return d, nil
}

// flatten copies inherited member slots down to every derived brand. A name
// declared on the brand itself replaces the inherited slots as a whole.
func flatten(t *Table, plan *Plan) {
	declared := make(map[memberKey]bool, len(t.members))
	for key := range t.members {
		declared[key] = true
	}

	for _, owner := range plan.Owners {
		iface := owner.Interface
		if iface.Kind != model.KindInterface {
			continue
		}
		ancestry := t.ancestry[iface.Brand]
		for _, ancestor := range ancestry[1:] {
			for key, slots := range t.members {
				if key.brand != ancestor || !declared[key] {
					continue
				}
				own := memberKey{iface.Brand, key.name}
				if _, taken := t.members[own]; taken {
					continue
				}
				t.members[own] = slots
			}
		}
	}
}

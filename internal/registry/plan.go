package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/hclutil"
	"github.com/specialistvlad/originals/internal/model"
)

// Owner is an exposed interface or namespace with its exposed members.
type Owner struct {
	Interface *model.Interface
	Members   []*model.Member
}

// Plan is the view of a realm description for one realm kind: only the
// owners and members whose exposure predicates hold, parents before
// children. Hosts install script-visible objects from a Plan before the
// table is built from it.
type Plan struct {
	Kind   binding.RealmKind
	Owners []*Owner

	byName map[string]*Owner
}

// Lookup returns the exposed owner called name.
func (p *Plan) Lookup(name string) (*Owner, bool) {
	o, ok := p.byName[name]
	return o, ok
}

// NewPlan checks the description for collisions and evaluates every
// exposure predicate against kind.
func NewPlan(ctx context.Context, desc *model.Description, kind binding.RealmKind) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	if desc == nil {
		desc = model.NewDescription()
	}
	if err := checkCollisions(desc); err != nil {
		return nil, err
	}

	evalCtx := hclutil.ExposureContext(kind)
	plan := &Plan{Kind: kind, byName: make(map[string]*Owner)}
	var errs []string

	for _, iface := range inheritanceOrder(desc) {
		exposed, diags := hclutil.EvalExposure(iface.Exposed, evalCtx)
		if diags.HasErrors() {
			errs = append(errs, fmt.Sprintf("%s %q: %s", iface.Kind, iface.Name, diagsText(diags)))
			continue
		}
		if !exposed {
			logger.Debug("Owner not exposed in realm.", "owner", iface.Name, "kind", kind)
			continue
		}
		if iface.Inherits != "" {
			if _, ok := plan.byName[iface.Inherits]; !ok {
				errs = append(errs, fmt.Sprintf("interface %q is exposed in %s but its parent %q is not", iface.Name, kind, iface.Inherits))
				continue
			}
		}

		owner := &Owner{Interface: iface}
		for _, m := range iface.Members {
			exposed, diags := hclutil.EvalExposure(m.Exposed, evalCtx)
			if diags.HasErrors() {
				errs = append(errs, fmt.Sprintf("%s %q, %s %q: %s", iface.Kind, iface.Name, m.Kind, m.Name, diagsText(diags)))
				continue
			}
			if exposed {
				owner.Members = append(owner.Members, m)
			}
		}

		plan.Owners = append(plan.Owners, owner)
		plan.byName[iface.Name] = owner
	}

	if err := configErrors(errs); err != nil {
		return nil, err
	}
	return plan, nil
}

// inheritanceOrder returns the owners of a collision-free description with
// every parent ahead of its children, otherwise in declaration order.
func inheritanceOrder(desc *model.Description) []*model.Interface {
	byName := make(map[string]*model.Interface, len(desc.Interfaces))
	for _, iface := range desc.Interfaces {
		byName[iface.Name] = iface
	}

	out := make([]*model.Interface, 0, len(desc.Interfaces))
	done := make(map[string]bool, len(desc.Interfaces))
	var visit func(*model.Interface)
	visit = func(iface *model.Interface) {
		if done[iface.Name] {
			return
		}
		done[iface.Name] = true
		if parent, ok := byName[iface.Inherits]; ok {
			visit(parent)
		}
		out = append(out, iface)
	}
	for _, iface := range desc.Interfaces {
		visit(iface)
	}
	return out
}

func diagsText(diags hcl.Diagnostics) string {
	return diags.Error()
}

package natives

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/model"
)

// Validate performs a strict parity check between the manifests and the
// registered natives. Every native-source member must be backed by a
// registered implementation of the right shape, and every registered
// implementation must be referenced by some manifest.
func (n *Natives) Validate(ctx context.Context, desc *model.Description) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string
	referenced := make(map[string]bool)

	for _, owner := range desc.Interfaces {
		if owner.Source != model.SourceNative {
			continue
		}
		for _, m := range owner.Members {
			referenced[m.Impl] = true
			native, ok := n.all[m.Impl]
			if !ok {
				errs = append(errs, fmt.Sprintf("%s '%s': %s '%s' references '%s' which is not registered", owner.Kind, owner.Name, m.Kind, m.Name, m.Impl))
				continue
			}
			errs = append(errs, shapeProblems(owner, m, native)...)
		}
	}

	for _, name := range n.Names() {
		if !referenced[name] {
			errs = append(errs, fmt.Sprintf("native '%s' is registered but no manifest references it", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("native validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Natives match manifests.", "natives", len(n.all))
	return nil
}

// shapeProblems checks that native provides exactly what member m needs.
func shapeProblems(owner *model.Interface, m *model.Member, native *Native) []string {
	var errs []string
	where := fmt.Sprintf("%s '%s': %s '%s' (%s)", owner.Kind, owner.Name, m.Kind, m.Name, m.Impl)

	switch m.Kind {
	case model.MemberConstructor, model.MemberSingleton:
		if native.New == nil {
			errs = append(errs, where+": native has no constructor")
		}
	case model.MemberMethod, model.MemberStatic, model.MemberFunction:
		if native.Fn == nil {
			errs = append(errs, where+": native has no function")
		}
	case model.MemberAttribute, model.MemberProperty:
		if native.Get == nil {
			errs = append(errs, where+": native has no getter")
		}
		if m.Readonly && native.Set != nil {
			errs = append(errs, where+": native has a setter but the manifest declares it read-only")
		}
		if !m.Readonly && native.Set == nil {
			errs = append(errs, where+": native has no setter but the manifest declares it writable")
		}
	}
	return errs
}

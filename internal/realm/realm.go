package realm

import (
	"context"
	"fmt"
	"io"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/brand"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/dispatch"
	"github.com/specialistvlad/originals/internal/model"
	"github.com/specialistvlad/originals/internal/natives"
	"github.com/specialistvlad/originals/internal/registry"
)

// Options configures a new realm.
type Options struct {
	Kind        binding.RealmKind
	Description *model.Description
	Natives     *natives.Natives
	// Output receives console output. Defaults to io.Discard.
	Output io.Writer
}

// Realm is one script global environment with its original-bindings
// registry. A Realm is not safe for concurrent use, like the goja runtime
// it wraps. Objects the realm constructs or attaches state to are retained
// until the Realm itself is dropped.
type Realm struct {
	kind    binding.RealmKind
	vm      *goja.Runtime
	global  *goja.Object
	natives *natives.Natives
	output  io.Writer

	plan   *registry.Plan
	table  *registry.Table
	engine *dispatch.Engine
	tags   *brand.Tags[*goja.Object]
	states map[*goja.Object]any

	// Host-native interface objects by owner name.
	owners map[string]*goja.Object
	protos map[string]*goja.Object
	// Per-instance unforgeable accessors by interface, inherited ones
	// included.
	properties map[string][]instanceProperty

	// Captured before any script runs.
	getOwnPropertyDescriptor goja.Callable
	rangeError               *goja.Object
	weakMapHas               goja.Callable
	weakSetHas               goja.Callable
}

// New creates a realm of opts.Kind. Configuration errors wrap
// registry.ErrConfig.
func New(ctx context.Context, opts Options) (*Realm, error) {
	logger := ctxlog.FromContext(ctx)

	if opts.Natives == nil {
		opts.Natives = natives.New()
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}

	vm := goja.New()
	r := &Realm{
		kind:       opts.Kind,
		vm:         vm,
		global:     vm.GlobalObject(),
		natives:    opts.Natives,
		output:     opts.Output,
		states:     make(map[*goja.Object]any),
		owners:     make(map[string]*goja.Object),
		protos:     make(map[string]*goja.Object),
		properties: make(map[string][]instanceProperty),
	}
	if err := r.captureIntrinsics(); err != nil {
		return nil, err
	}

	plan, err := registry.NewPlan(ctx, opts.Description, opts.Kind)
	if err != nil {
		return nil, err
	}
	r.plan = plan
	r.tags = r.newTags(plan)

	if err := r.installNatives(ctx); err != nil {
		return nil, err
	}

	table, err := registry.BuildPlan(ctx, plan, r)
	if err != nil {
		return nil, err
	}
	r.table = table
	r.engine = dispatch.New(table, r.tags)

	if err := r.installSingletons(ctx); err != nil {
		return nil, err
	}
	if err := r.installEntryPoints(); err != nil {
		return nil, err
	}

	logger.Info("Realm ready.", "kind", opts.Kind, "bindings", table.Len(), "owners", len(plan.Owners))
	return r, nil
}

// captureIntrinsics keeps the few engine functions the host itself relies
// on, so later tampering cannot redirect it.
func (r *Realm) captureIntrinsics() error {
	object, ok := r.global.Get("Object").(*goja.Object)
	if !ok {
		return fmt.Errorf("realm: engine has no Object constructor")
	}
	gopd, ok := goja.AssertFunction(object.Get("getOwnPropertyDescriptor"))
	if !ok {
		return fmt.Errorf("realm: engine has no Object.getOwnPropertyDescriptor")
	}
	r.getOwnPropertyDescriptor = gopd

	rangeError, ok := r.global.Get("RangeError").(*goja.Object)
	if !ok {
		return fmt.Errorf("realm: engine has no RangeError constructor")
	}
	r.rangeError = rangeError

	r.weakMapHas = r.capturedMethod("WeakMap", "has")
	r.weakSetHas = r.capturedMethod("WeakSet", "has")
	return nil
}

// capturedMethod returns ctor.prototype[name] as found before any script
// runs, or nil when the engine lacks it.
func (r *Realm) capturedMethod(ctor, name string) goja.Callable {
	c, ok := r.global.Get(ctor).(*goja.Object)
	if !ok {
		return nil
	}
	proto, ok := c.Get("prototype").(*goja.Object)
	if !ok {
		return nil
	}
	fn, _ := goja.AssertFunction(proto.Get(name))
	return fn
}

// newTags brands intrinsic instances by their engine class. Only intrinsic
// interfaces with instance members take part, so plain objects stay
// unbranded.
func (r *Realm) newTags(plan *registry.Plan) *brand.Tags[*goja.Object] {
	classes := make(map[string]binding.Brand)
	for _, owner := range plan.Owners {
		iface := owner.Interface
		if iface.Kind != model.KindInterface || iface.Source != model.SourceIntrinsic {
			continue
		}
		for _, m := range owner.Members {
			if m.Kind == model.MemberMethod || m.Kind == model.MemberAttribute {
				classes[iface.Name] = iface.Brand
				break
			}
		}
	}

	tags := brand.NewTags[*goja.Object]().WithClasses(r.classOf, classes)
	tags.Exclude(r.global)
	return tags
}

// Kind returns the realm kind.
func (r *Realm) Kind() binding.RealmKind {
	return r.kind
}

// Runtime returns the underlying goja runtime.
func (r *Realm) Runtime() *goja.Runtime {
	return r.vm
}

// Global returns the realm's global object.
func (r *Realm) Global() *goja.Object {
	return r.global
}

// Table returns the realm's registry.
func (r *Realm) Table() *registry.Table {
	return r.table
}

// Engine returns the dispatch engine serving the realm's entry points.
func (r *Realm) Engine() *dispatch.Engine {
	return r.engine
}

// Brands returns the realm's brand checker.
func (r *Realm) Brands() brand.Checker {
	return r.tags
}

// RunString evaluates src in the realm.
func (r *Realm) RunString(src string) (goja.Value, error) {
	return r.vm.RunString(src)
}

// RunScript evaluates src in the realm, naming it name in stack traces.
func (r *Realm) RunScript(name, src string) (goja.Value, error) {
	return r.vm.RunScript(name, src)
}

// Output implements natives.Host.
func (r *Realm) Output() io.Writer {
	return r.output
}

// StateOf implements natives.Host.
func (r *Realm) StateOf(v goja.Value) (any, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	state, ok := r.states[obj]
	return state, ok
}

// Construct implements natives.Host.
func (r *Realm) Construct(iface string, state any) (*goja.Object, error) {
	owner, ok := r.plan.Lookup(iface)
	if !ok || owner.Interface.Kind != model.KindInterface || owner.Interface.Source != model.SourceNative {
		return nil, fmt.Errorf("realm: %q is not a native interface exposed in %s", iface, r.kind)
	}
	obj := r.vm.NewObject()
	if err := obj.SetPrototype(r.protos[iface]); err != nil {
		return nil, err
	}
	if err := r.attach(obj, owner.Interface, state); err != nil {
		return nil, err
	}
	return obj, nil
}

// attach brands a freshly created instance, records its state and installs
// its unforgeable properties.
func (r *Realm) attach(obj *goja.Object, iface *model.Interface, state any) error {
	r.tags.Assign(obj, iface.Brand)
	r.states[obj] = state
	for _, p := range r.properties[iface.Name] {
		if err := obj.DefineAccessorProperty(p.name, p.get, p.set, goja.FLAG_FALSE, goja.FLAG_TRUE); err != nil {
			return fmt.Errorf("realm: install property %s.%s: %w", iface.Name, p.name, err)
		}
	}
	return nil
}

package realm_test

import (
	"context"
	"testing"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/intrinsics"
	"github.com/specialistvlad/originals/internal/model"
	"github.com/specialistvlad/originals/internal/natives"
	"github.com/specialistvlad/originals/internal/realm"
	"github.com/specialistvlad/originals/internal/registry"
	"github.com/stretchr/testify/require"
)

const thingManifest = `
interface "Thing" {
	source  = "native"
	exposed = realm.Window

	constructor {}
	static "make" {}
	method "hello" {}
	method "fail" {}
	method "throwIt" {}
	attribute "label" {}
	property "id" { readonly = true }
	singleton "localThing" {}
}

interface "Base" {
	source = "native"
	constructor {}
	method "kind" {}
}

interface "Derived" {
	source   = "native"
	inherits = "Base"
	constructor {}
	method "own" {}
}

namespace "util" {
	source = "native"
	function "twice" {}
}
`

type thing struct {
	id    int64
	label string
}

type kinder interface{ kind() string }

type base struct{}

func (*base) kind() string { return "base" }

type derived struct{ base }

func (*derived) kind() string { return "derived" }

func thingNatives() *natives.Natives {
	n := natives.New()
	next := int64(0)

	n.Register("Thing", &natives.Native{New: func(call *natives.Call) (any, error) {
		if call.Internal {
			return &thing{id: -1, label: "singleton"}, nil
		}
		next++
		t := &thing{id: next}
		if !goja.IsUndefined(call.Argument(0)) {
			t.label = call.Argument(0).String()
		}
		return t, nil
	}})
	n.Register("Thing.make", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		return call.Host.Construct("Thing", &thing{id: 100, label: "made"})
	}})
	n.Register("Thing.prototype.hello", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		t, err := natives.StateOf[*thing](call)
		if err != nil {
			return nil, err
		}
		return call.Runtime.ToValue("hello " + t.label), nil
	}})
	n.Register("Thing.prototype.fail", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		return nil, natives.RangeError("thing %s", "out of range")
	}})
	n.Register("Thing.prototype.throwIt", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		return nil, &natives.Thrown{Value: call.Argument(0)}
	}})
	n.Register("Thing.prototype.label", &natives.Native{
		Get: func(call *natives.Call) (goja.Value, error) {
			t, err := natives.StateOf[*thing](call)
			if err != nil {
				return nil, err
			}
			return call.Runtime.ToValue(t.label), nil
		},
		Set: func(call *natives.Call) (goja.Value, error) {
			t, err := natives.StateOf[*thing](call)
			if err != nil {
				return nil, err
			}
			t.label = call.Argument(0).String()
			return nil, nil
		},
	})
	n.Register("Thing.prototype.id", &natives.Native{Get: func(call *natives.Call) (goja.Value, error) {
		t, err := natives.StateOf[*thing](call)
		if err != nil {
			return nil, err
		}
		return call.Runtime.ToValue(t.id), nil
	}})

	n.Register("Base", &natives.Native{New: func(*natives.Call) (any, error) { return &base{}, nil }})
	n.Register("Base.prototype.kind", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		k, err := natives.StateOf[kinder](call)
		if err != nil {
			return nil, err
		}
		return call.Runtime.ToValue(k.kind()), nil
	}})
	n.Register("Derived", &natives.Native{New: func(*natives.Call) (any, error) { return &derived{}, nil }})
	n.Register("Derived.prototype.own", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		return call.Runtime.ToValue("own"), nil
	}})

	n.Register("util.twice", &natives.Native{Fn: func(call *natives.Call) (goja.Value, error) {
		return call.Runtime.ToValue(call.Argument(0).ToInteger() * 2), nil
	}})
	return n
}

func newRealm(t *testing.T, kind binding.RealmKind) *realm.Realm {
	t.Helper()
	ctx := context.Background()

	desc, err := intrinsics.Description(ctx)
	require.NoError(t, err)
	things, err := model.ParseManifest(ctx, []byte(thingManifest), "thing.hcl")
	require.NoError(t, err)
	desc.Merge(things)

	n := thingNatives()
	require.NoError(t, n.Validate(ctx, desc))

	r, err := realm.New(ctx, realm.Options{Kind: kind, Description: desc, Natives: n})
	require.NoError(t, err)
	return r
}

func run(t *testing.T, r *realm.Realm, src string) goja.Value {
	t.Helper()
	v, err := r.RunString(src)
	require.NoError(t, err, src)
	return v
}

func requireTrue(t *testing.T, r *realm.Realm, src string) {
	t.Helper()
	require.Equal(t, true, run(t, r, src).Export(), src)
}

func TestRealm_ConstructorIdentity(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `getOriginalConstructor("Map") === Map`)
	requireTrue(t, r, `getOriginalConstructor("Thing") === Thing`)
	requireTrue(t, r, `
		const OriginalMap = Map;
		Map = function FakeMap() {};
		getOriginalConstructor("Map") === OriginalMap && getOriginalConstructor("Map") !== Map
	`)
	requireTrue(t, r, `getOriginalConstructor("Map") === getOriginalConstructor("Map")`)

	ctor, ok := r.Engine().GetOriginalConstructor("Promise")
	require.True(t, ok)
	require.Same(t, r.Global().Get("Promise").(*goja.Object), ctor)
}

func TestRealm_TamperResistance(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		const m = new Map([[1, "a"]]);
		Map.prototype.get = () => "evil";
		Object.defineProperty(Map.prototype, "size", { get() { return 99 } });
		delete Map.prototype.has;
		callOriginalMethod(m, "get", 1) === "a" &&
			getOriginalProperty(m, "size") === 1 &&
			callOriginalMethod(m, "has", 1) === true
	`)

	requireTrue(t, r, `
		const t = new Thing("x");
		Thing.prototype.hello = () => "evil";
		callOriginalMethod(t, "hello") === "hello x"
	`)

	requireTrue(t, r, `
		Math.max = () => -1;
		callOriginalStaticMethod("Math", "max", 3, 7) === 7
	`)

	requireTrue(t, r, `
		util.twice = null;
		callOriginalStaticMethod("util", "twice", 21) === 42
	`)
}

func TestRealm_StaticsStayBoundToOwner(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		const P = Promise;
		Promise.resolve = null;
		Promise = function Fake() {};
		callOriginalStaticMethod("Promise", "resolve", 5) instanceof P
	`)
	requireTrue(t, r, `
		const made = callOriginalStaticMethod("Thing", "make");
		made instanceof Thing && made.label === "made" && made.id === 100
	`)
}

func TestRealm_AbsenceAndMismatch(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `getOriginalConstructor("NoSuchThing") === undefined`)
	requireTrue(t, r, `getOriginalConstructor("Object") === undefined`)
	requireTrue(t, r, `getOriginalProperty({}, "size") === undefined`)
	requireTrue(t, r, `getOriginalProperty(new Map(), "get") === undefined`)
	requireTrue(t, r, `getOriginalProperty(globalThis, "label") === undefined`)
	requireTrue(t, r, `getOriginalProperty(42, "size") === undefined`)
	requireTrue(t, r, `setOriginalProperty({}, "label", 1) === undefined`)

	for _, src := range []string{
		`callOriginalMethod({}, "get", 1)`,
		`callOriginalMethod(new Map(), "nope")`,
		`callOriginalMethod(new Map(), "size")`,
		`callOriginalMethod(Object.create(Map.prototype), "get", 1)`,
		`callOriginalMethod(null, "get")`,
		`callOriginalStaticMethod("Map", "get")`,
		`callOriginalStaticMethod("Nope", "nope")`,
	} {
		requireTrue(t, r, `(() => { try { `+src+`; return false } catch (e) { return e instanceof TypeError } })()`)
	}
}

func TestRealm_StaticOnlyNameThroughCallOriginalMethod(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		(() => {
			try {
				callOriginalMethod(Promise.resolve(1), "resolve");
				return false;
			} catch (e) {
				return e instanceof TypeError;
			}
		})()
	`)
}

func TestRealm_ExposureScoping(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.DedicatedWorker)

	requireTrue(t, r, `typeof Thing === "undefined" && typeof localThing === "undefined"`)
	requireTrue(t, r, `getOriginalConstructor("Thing") === undefined`)
	requireTrue(t, r, `getOriginalConstructor("Base") === Base`)
	requireTrue(t, r, `
		(() => {
			try { callOriginalStaticMethod("Thing", "make"); return false }
			catch (e) { return e instanceof TypeError }
		})()
	`)

	_, ok := r.Table().Member("Thing", "hello")
	require.False(t, ok)
}

func TestRealm_EntryPointsAreUnforgeable(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	names := []string{"getOriginalConstructor", "callOriginalStaticMethod", "getOriginalProperty", "setOriginalProperty", "callOriginalMethod", "originalSelf"}
	for _, name := range names {
		requireTrue(t, r, `
			(() => {
				const before = globalThis["`+name+`"];
				globalThis["`+name+`"] = 1;
				delete globalThis["`+name+`"];
				try { Object.defineProperty(globalThis, "`+name+`", { value: 2 }) } catch (e) {}
				const d = Object.getOwnPropertyDescriptor(globalThis, "`+name+`");
				return globalThis["`+name+`"] === before &&
					!d.writable && !d.configurable && !d.enumerable &&
					!Object.keys(globalThis).includes("`+name+`");
			})()
		`)
	}
	requireTrue(t, r, `originalSelf === globalThis`)
}

func TestRealm_ReadOnlyPropertyScenario(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		const t = new Thing();
		const id = t.id;
		const result = setOriginalProperty(t, "id", 12345);
		t.id = 777;
		result === undefined && t.id === id && getOriginalProperty(t, "id") === id
	`)

	requireTrue(t, r, `
		const u = new Thing("a");
		setOriginalProperty(u, "label", "b");
		u.label === "b" && getOriginalProperty(u, "label") === "b"
	`)

	// The per-instance accessor cannot be redefined.
	requireTrue(t, r, `
		const v = new Thing();
		(() => {
			try { Object.defineProperty(v, "id", { value: 1 }); return false }
			catch (e) { return e instanceof TypeError }
		})()
	`)
}

func TestRealm_InheritedMembers(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		const d = new Derived();
		d instanceof Base &&
			callOriginalMethod(d, "kind") === "derived" &&
			callOriginalMethod(d, "own") === "own" &&
			Base.prototype.kind.call(d) === "derived"
	`)
	requireTrue(t, r, `
		(() => {
			try { Derived.prototype.own.call(new Base()); return false }
			catch (e) { return e instanceof TypeError && e.message === "Illegal invocation" }
		})()
	`)
}

func TestRealm_WrappersCheckBrands(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		(() => {
			try { Thing.prototype.hello.call({ label: "forged" }); return false }
			catch (e) { return e instanceof TypeError }
		})()
	`)
	requireTrue(t, r, `
		(() => {
			try { callOriginalMethod(Object.create(Thing.prototype), "hello"); return false }
			catch (e) { return e instanceof TypeError }
		})()
	`)
}

func TestRealm_ErrorsPropagate(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		(() => {
			try { callOriginalMethod(new Thing(), "fail"); return false }
			catch (e) { return e instanceof RangeError && e.message === "thing out of range" }
		})()
	`)
	requireTrue(t, r, `
		(() => {
			const payload = { reason: "mine" };
			try { callOriginalMethod(new Thing(), "throwIt", payload); return false }
			catch (e) { return e === payload }
		})()
	`)
	requireTrue(t, r, `
		(() => {
			try { callOriginalStaticMethod("JSON", "parse", "{"); return false }
			catch (e) { return e instanceof SyntaxError }
		})()
	`)
}

func TestRealm_NamesMustBePrimitiveStrings(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		let touched = false;
		const sneaky = { toString() { touched = true; return "Map" } };
		getOriginalConstructor(sneaky) === undefined &&
			getOriginalConstructor(new String("Map")) === undefined &&
			getOriginalProperty(new Map(), sneaky) === undefined &&
			!touched
	`)
	requireTrue(t, r, `
		(() => {
			try { callOriginalMethod(new Map(), Symbol("get")); return false }
			catch (e) { return e instanceof TypeError }
		})()
	`)
}

func TestRealm_IntrinsicAccessors(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		const re = /ab+/g;
		getOriginalProperty(re, "source") === "ab+" &&
			getOriginalProperty(re, "flags") === "g" &&
			getOriginalProperty(re, "global") === true
	`)
	requireTrue(t, r, `
		const s = new Set([1, 2, 3]);
		getOriginalProperty(s, "size") === 3 && callOriginalMethod([1, 2], "join", "-") === "1-2"
	`)
}

func TestRealm_Singleton(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		localThing instanceof Thing &&
			callOriginalMethod(localThing, "hello") === "hello singleton" &&
			localThing.id === -1
	`)
	requireTrue(t, r, `
		const before = localThing;
		localThing = null;
		localThing === before
	`)
}

func TestRealm_IllegalConstructor(t *testing.T) {
	t.Parallel()

	desc, err := model.ParseManifest(context.Background(), []byte(`
	interface "Abstract" {
		source = "native"
		method "x" {}
	}`), "abstract.hcl")
	require.NoError(t, err)

	n := natives.New()
	n.Register("Abstract.prototype.x", &natives.Native{Fn: func(*natives.Call) (goja.Value, error) { return nil, nil }})

	r, err := realm.New(context.Background(), realm.Options{Kind: binding.Window, Description: desc, Natives: n})
	require.NoError(t, err)

	requireTrue(t, r, `
		(() => {
			try { new Abstract(); return false }
			catch (e) { return e instanceof TypeError && e.message === "Illegal constructor" }
		})()
	`)
	requireTrue(t, r, `getOriginalConstructor("Abstract") === undefined`)
}

func TestRealm_ConfigErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown intrinsic": `
			interface "Iterator2000" {
				source = "intrinsic"
				constructor {}
			}`,
		"unknown intrinsic method": `
			interface "Map" {
				source = "intrinsic"
				method "getOrInsertComputedLater" {}
			}`,
		"unregistered native": `
			interface "Gadget" {
				source = "native"
				constructor {}
			}`,
		"intrinsic attribute without accessor": `
			interface "Array" {
				source = "intrinsic"
				attribute "length" { readonly = true }
			}`,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			desc, err := model.ParseManifest(context.Background(), []byte(src), "bad.hcl")
			require.NoError(t, err)
			_, err = realm.New(context.Background(), realm.Options{Kind: binding.Window, Description: desc})
			require.ErrorIs(t, err, registry.ErrConfig)
		})
	}
}

package realm_test

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/stretchr/testify/require"
)

func TestRealm_IntrinsicInstancesAreBranded(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	cases := []struct {
		src  string
		want binding.Brand
	}{
		{`[1, 2]`, "Array"},
		{`new Map()`, "Map"},
		{`new Set([1])`, "Set"},
		{`new WeakMap()`, "WeakMap"},
		{`new WeakSet()`, "WeakSet"},
		{`new Date(0)`, "Date"},
		{`/x/g`, "RegExp"},
		{`Promise.resolve(1)`, "Promise"},
		{`new Error("boom")`, "Error"},
		{`({})`, binding.NotBranded},
		{`Object.create(Map.prototype)`, binding.NotBranded},
		{`Object.create(WeakMap.prototype)`, binding.NotBranded},
		{`new Proxy(new Map(), {})`, binding.NotBranded},
		{`globalThis`, binding.NotBranded},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			v := run(t, r, `(`+tc.src+`)`)
			got, ok := r.Brands().Classify(v.(*goja.Object))
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.want != binding.NotBranded, ok)
		})
	}
}

func TestRealm_IntrinsicMembersSurviveTampering(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		const key = {};
		const wm = new WeakMap([[key, "v"]]);
		const ws = new WeakSet([key]);
		const s = new Set([1, 2]);
		WeakMap.prototype.get = () => "evil";
		WeakMap.prototype.has = () => false;
		WeakSet.prototype.has = () => false;
		Set.prototype.has = () => false;
		Object.defineProperty(Set.prototype, "size", { get() { return 99 } });
		callOriginalMethod(wm, "get", key) === "v" &&
			callOriginalMethod(wm, "has", key) === true &&
			callOriginalMethod(ws, "has", key) === true &&
			callOriginalMethod(s, "has", 2) === true &&
			getOriginalProperty(s, "size") === 2
	`)
	requireTrue(t, r, `
		let seen;
		Promise.prototype.then = () => "evil";
		callOriginalMethod(Promise.resolve(7), "then", v => { seen = v }) instanceof Promise
	`)
}

func TestRealm_ClassificationRunsNoScript(t *testing.T) {
	t.Parallel()
	r := newRealm(t, binding.Window)

	requireTrue(t, r, `
		let touched = 0;
		const tagged = {
			get [Symbol.toStringTag]() { touched++; return "WeakMap" },
		};
		const inherits = Object.create(tagged);
		const trapped = new Proxy({}, {
			get() { touched++ },
			getOwnPropertyDescriptor() { touched++ },
			getPrototypeOf() { touched++; return null },
		});
		const { proxy, revoke } = Proxy.revocable(new Map(), {});
		revoke();
		const results = [tagged, inherits, trapped, proxy].map(v => {
			try { callOriginalMethod(v, "has", 1); return "called" }
			catch (e) { return e instanceof TypeError }
		});
		results.every(r => r === true) && touched === 0
	`)
}

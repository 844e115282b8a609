// Package registry builds the per-realm table of original bindings.
//
// The Table maps the symbolic names script code asks for ("Map",
// "Promise.resolve", "size" on a Map) to the implementations captured while
// the realm was still untampered. It is built exactly once per realm from the
// realm description (HCL manifests), filtered by the realm's kind, and never
// mutated afterwards.
//
// Building is strict: name collisions, inheritance problems, exposure
// predicates that do not evaluate to a bool and implementation references
// the host cannot resolve all fail the build with an error wrapping
// ErrConfig. A realm with an ambiguous table must never run script.
package registry

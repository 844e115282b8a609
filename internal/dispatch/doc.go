// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package dispatch resolves requests for original bindings.
//
// Every request is answered from two things only: the realm's immutable
// registry.Table and the brand a brand.Checker reports for the target. The
// live global object graph is never read, so nothing a script does to the
// built-ins after the realm was created can change which implementation
// runs.
//
// Why is a missing member and a hidden member the same thing?
//
// A binding that is not exposed in this realm kind is simply absent from the
// table. Dispatch cannot tell it apart from a name that never existed, and
// neither can script: both produce undefined or a TypeError.
package dispatch

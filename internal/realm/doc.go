// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package realm hosts a script realm on the goja engine and wires the
// originals pipeline into it.
//
// Creating a realm installs the host-native interfaces the realm kind
// exposes, builds the registry while the global object graph is still
// untampered, and finally installs the entry points scripts use to reach the
// originals:
//
//	getOriginalConstructor(name)
//	callOriginalStaticMethod(owner, name, ...args)
//	getOriginalProperty(target, name)
//	setOriginalProperty(target, name, value)
//	callOriginalMethod(target, name, ...args)
//	originalSelf
//
// All six are non-writable, non-configurable and non-enumerable own
// properties of the global object.
//
// Why a side table for brands?
//
// Anything stored on a script object (a symbol, a hidden property, the
// prototype) can be observed or forged by script. Brands live in a Go map
// keyed by object identity, and intrinsic brands come from goja's internal
// class tag, which script cannot change.
package realm

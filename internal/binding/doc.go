// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package binding defines the data shapes shared by every stage of the
// originals pipeline: the Descriptor that represents one resolvable binding,
// the Category it belongs to, the Brand that identifies a value's kind, and
// the RealmKind a registry is built for.
//
// Why a separate package?
//
// The registry builder, the brand checker and the dispatch engine all speak
// in descriptors and brands, but none of them should depend on how a realm
// description is written down (HCL manifests) or on the script host that
// produces values (goja). Keeping the vocabulary here lets the core stay
// host-agnostic: a host only has to supply a Resolver and a brand Checker.
package binding

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of realm description
// manifests. A manifest enumerates the interfaces and namespaces a realm can
// expose, the members each of them declares, where each member's
// implementation comes from, and the condition under which it is exposed.
//
// # Core Concepts
//
//   - Description: The root container. It aggregates every interface and
//     namespace parsed from one or more .hcl files.
//
//   - Interface: A class-like owner (Map, Headers) or a namespace owner (Math,
//     console). It carries a brand, an optional parent, an implementation
//     source (engine intrinsic or host native) and an exposure predicate.
//
//   - Member: One declared binding of an owner: its constructor, a static
//     operation, a namespace function, a method, an attribute, a per-instance
//     property or a singleton global instance.
//
//   - FSInfo: Metadata linking every interface back to its source file, so
//     configuration errors name the file that caused them.
//
// Why keep exposure as an hcl.Expression?
//
// A description is loaded once per process but a registry is built once per
// realm, and realms of different kinds see different bindings. The model
// keeps the user's predicate unevaluated; the registry builder evaluates it
// against the kind of the realm it is building.
package model

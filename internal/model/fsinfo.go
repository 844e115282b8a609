// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which stores file system metadata.
//
// Why store the file path?
//
// A collision between two declarations is a host configuration defect, and
// the only useful report for it names both files. Embedded manifests get a
// virtual path ("intrinsics/ecmascript.hcl") so the same reporting works for
// definitions compiled into the binary.
package model

// FSInfo records where a definition was loaded from.
type FSInfo struct {
	FilePath string
}

// NewFSInfo creates an FSInfo for the given path.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}

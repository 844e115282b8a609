// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes the top-level `interface` and `namespace` blocks of a
// manifest into Interface definitions.
//
// Why validate the shape here instead of in the builder?
//
// Shape errors (a `function` inside an interface, `readonly` on a method,
// an unknown `source`) are independent of the realm kind, so they are
// reported once, at load time, with the exact file range. The builder only
// sees well-formed owners and concentrates on collisions, exposure and
// resolution.
package model

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/originals/internal/binding"
	"github.com/specialistvlad/originals/internal/ctxlog"
	"github.com/specialistvlad/originals/internal/hclutil"
)

// manifestRootSchema defines the top-level structure of a manifest file,
// expecting any number of 'interface' and 'namespace' blocks.
var manifestRootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: string(KindInterface), LabelNames: []string{"name"}},
		{Type: string(KindNamespace), LabelNames: []string{"name"}},
	},
}

// ownerBodySchema is the HCL schema for the body of an owner block.
var ownerBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "source"},
		{Name: "brand"},
		{Name: "inherits"},
		{Name: "exposed"},
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: string(MemberConstructor)},
		{Type: string(MemberStatic), LabelNames: []string{"name"}},
		{Type: string(MemberFunction), LabelNames: []string{"name"}},
		{Type: string(MemberMethod), LabelNames: []string{"name"}},
		{Type: string(MemberAttribute), LabelNames: []string{"name"}},
		{Type: string(MemberProperty), LabelNames: []string{"name"}},
		{Type: string(MemberSingleton), LabelNames: []string{"name"}},
	},
}

// ParseManifestFile decodes every owner block in an already parsed HCL file.
func ParseManifestFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*Interface, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing manifest definitions from file", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	root, diags := hclFile.Body.Content(manifestRootSchema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	owners := make([]*Interface, 0, len(root.Blocks))
	for _, block := range root.Blocks {
		owner, ownerDiags := parseOwner(block, OwnerKind(block.Type), filePath)
		allDiags = append(allDiags, ownerDiags...)
		if owner != nil {
			owners = append(owners, owner)
		}
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Successfully parsed manifest definitions", "file_path", filePath, "count", len(owners))
	return owners, allDiags
}

// parseOwner decodes one interface or namespace block. It returns nil when
// the block is unusable; diagnostics explain why.
func parseOwner(block *hcl.Block, kind OwnerKind, filePath string) (*Interface, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	name := block.Labels[0]

	content, contentDiags := block.Body.Content(ownerBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, diags
	}

	iface := &Interface{
		Name:          name,
		Kind:          kind,
		FSInformation: NewFSInfo(filePath),
		DefRange:      block.DefRange,
	}
	if kind == KindInterface {
		iface.Brand = binding.Brand(name)
	}

	// Manually check for the required 'source' attribute for a better error.
	sourceAttr, exists := content.Attributes["source"]
	if !exists {
		missing := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'source' attribute",
			Detail:   fmt.Sprintf("The %s %q must declare source = \"intrinsic\" or source = \"native\".", kind, name),
			Subject:  &missing,
		})
		return nil, diags
	}
	var source string
	if decodeDiags := gohcl.DecodeExpression(sourceAttr.Expr, nil, &source); decodeDiags.HasErrors() {
		return nil, append(diags, decodeDiags...)
	}
	switch Source(source) {
	case SourceIntrinsic, SourceNative:
		iface.Source = Source(source)
	default:
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported source",
			Detail:   fmt.Sprintf("The source %q is not valid. Supported sources are: intrinsic, native.", source),
			Subject:  sourceAttr.Expr.Range().Ptr(),
		})
	}

	diags = append(diags, hclutil.DecodeString(content.Attributes, "description", &iface.Description)...)

	if kind == KindNamespace {
		for _, name := range []string{"brand", "inherits"} {
			if attr, ok := content.Attributes[name]; ok {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid namespace attribute",
					Detail:   fmt.Sprintf("Namespaces have no instances; '%s' is only valid on interfaces.", name),
					Subject:  attr.NameRange.Ptr(),
				})
			}
		}
	} else {
		var brandName string
		diags = append(diags, hclutil.DecodeString(content.Attributes, "brand", &brandName)...)
		if brandName != "" {
			iface.Brand = binding.Brand(brandName)
		}
		diags = append(diags, hclutil.DecodeString(content.Attributes, "inherits", &iface.Inherits)...)
	}

	if attr, ok := content.Attributes["exposed"]; ok {
		iface.Exposed = attr.Expr
	}

	if _, ctorDiags := hclutil.FindUniqueBlock(content.Blocks, string(MemberConstructor)); ctorDiags.HasErrors() {
		diags = append(diags, ctorDiags...)
	}

	for _, block := range content.Blocks {
		member, memberDiags := parseMember(iface, block)
		diags = append(diags, memberDiags...)
		if member != nil {
			iface.Members = append(iface.Members, member)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return iface, diags
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines how member blocks are decoded and which member kinds are
// legal on which owners.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/originals/internal/hclutil"
)

// memberBodySchema is the HCL schema for the body of every member block.
var memberBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "impl"},
		{Name: "exposed"},
		{Name: "readonly"},
		{Name: "description"},
	},
}

// parseMember decodes one member block of owner.
func parseMember(owner *Interface, block *hcl.Block) (*Member, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	kind := MemberKind(block.Type)
	if detail := illegalMember(owner, kind); detail != "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %q block", block.Type),
			Detail:   detail,
			Subject:  &block.DefRange,
		})
		return nil, diags
	}

	member := &Member{
		Kind:     kind,
		DefRange: block.DefRange,
	}
	if kind == MemberConstructor {
		member.Name = owner.Name
	} else {
		member.Name = block.Labels[0]
	}

	content, contentDiags := block.Body.Content(memberBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, diags
	}

	diags = append(diags, hclutil.DecodeString(content.Attributes, "description", &member.Description)...)
	diags = append(diags, hclutil.DecodeString(content.Attributes, "impl", &member.Impl)...)

	if attr, ok := content.Attributes["impl"]; ok && member.Impl == "" && !diags.HasErrors() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty 'impl' attribute",
			Detail:   "Omit 'impl' to use the default reference instead of setting it to an empty string.",
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	if member.Impl == "" {
		member.Impl = DefaultImpl(owner.Name, kind, member.Name)
	}

	if attr, ok := content.Attributes["readonly"]; ok {
		if kind != MemberAttribute && kind != MemberProperty {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid 'readonly' attribute",
				Detail:   fmt.Sprintf("Only attribute and property members can be read-only, not %s %q.", kind, member.Name),
				Subject:  attr.NameRange.Ptr(),
			})
		} else {
			diags = append(diags, hclutil.DecodeBool(content.Attributes, "readonly", &member.Readonly)...)
		}
	}

	if attr, ok := content.Attributes["exposed"]; ok {
		member.Exposed = attr.Expr
	}

	return member, diags
}

// illegalMember explains why a member kind cannot appear on owner, or
// returns "" when it can.
func illegalMember(owner *Interface, kind MemberKind) string {
	if owner.Kind == KindNamespace {
		if kind != MemberFunction {
			return fmt.Sprintf("Namespace %q can only declare function members.", owner.Name)
		}
		return ""
	}

	switch kind {
	case MemberFunction:
		return fmt.Sprintf("Interface %q declares operations on its constructor with 'static', not 'function'.", owner.Name)
	case MemberProperty, MemberSingleton:
		if owner.Source != SourceNative {
			return fmt.Sprintf("%s members are installed by the host and require source = \"native\" on %q.", kind, owner.Name)
		}
	}
	return ""
}

// Package hclutil holds small HCL helpers shared by the manifest parser and
// the registry builder.
package hclutil

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// FindUniqueBlock searches a slice of blocks for all blocks of a given name.
// It returns a diagnostic error if more than one block of that name is found.
// If no block is found, it returns nil.
func FindUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type == name {
			if found != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate \"" + name + "\" block",
					Detail:   "Only one \"" + name + "\" block is allowed.",
					Subject:  &block.DefRange,
				})
				continue
			}
			found = block
		}
	}

	return found, diags
}

// DecodeString decodes an optional literal string attribute. A missing
// attribute leaves the target untouched.
func DecodeString(attrs hcl.Attributes, name string, target *string) hcl.Diagnostics {
	attr, exists := attrs[name]
	if !exists {
		return nil
	}
	return gohcl.DecodeExpression(attr.Expr, nil, target)
}

// DecodeBool decodes an optional literal bool attribute.
func DecodeBool(attrs hcl.Attributes, name string, target *bool) hcl.Diagnostics {
	attr, exists := attrs[name]
	if !exists {
		return nil
	}
	return gohcl.DecodeExpression(attr.Expr, nil, target)
}

package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/justtree/internal/ast"
)

// ParseExpression reads a single expression written the way attribute
// values are written in a recipe document, e.g. `env("HOME") / "bin"`.
func ParseExpression(src []byte, filename string) (ast.Expression, error) {
	expr, diags := hclsyntax.ParseExpression(src, filename, hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse expression: %w", diags)
	}

	d := &decoder{src: src}
	result, ok := d.expression(expr)
	if !ok || d.diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode expression: %w", d.diags)
	}
	return result, nil
}

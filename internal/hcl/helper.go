package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/justtree/internal/ast"
)

// nameAt builds an ast.Name positioned at the start of rng.
func nameAt(lexeme string, rng hcl.Range) ast.Name {
	return ast.Name{Lexeme: lexeme, Line: rng.Start.Line, Column: rng.Start.Column}
}

// labelName builds an ast.Name from a block's first label. The position
// points just past the opening quote.
func labelName(block *hcl.Block) ast.Name {
	name := nameAt(block.Labels[0], block.LabelRanges[0])
	name.Column++
	return name
}

// rangeText returns the source text covered by rng, or "" if the range does
// not lie within src.
func rangeText(src []byte, rng hcl.Range) string {
	if rng.Start.Byte < 0 || rng.End.Byte > len(src) || rng.Start.Byte > rng.End.Byte {
		return ""
	}
	return string(src[rng.Start.Byte:rng.End.Byte])
}

// keyword returns the single bare name expr consists of, e.g. `build`.
func (d *decoder) keyword(expr hcl.Expression, what string) (ast.Name, bool) {
	word := hcl.ExprAsKeyword(expr)
	if word == "" {
		d.errorf(expr.Range(), "Invalid "+what, "The %s must be a bare name.", what)
		return ast.Name{}, false
	}
	return nameAt(word, expr.Range()), true
}

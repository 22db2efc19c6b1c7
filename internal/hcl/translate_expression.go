package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/justtree/internal/ast"
	"github.com/vk/justtree/internal/function"
	"github.com/zclconf/go-cty/cty"
)

// Reserved call names for expressions that have no HCL operator.
const (
	backtickCall    = "backtick"
	slashCall       = "slash"
	concatCall      = "concat"
	matchesCall     = "matches"
	conditionalCall = "conditional"
)

var conditionalOperators = map[string]ast.ConditionalOperator{
	"==": ast.Equality,
	"!=": ast.Inequality,
	"=~": ast.RegexMatch,
}

func (d *decoder) attributeExpression(attr *hcl.Attribute) (ast.Expression, bool) {
	return d.expression(attr.Expr)
}

// expression translates one HCL expression into the expression tree.
func (d *decoder) expression(expr hcl.Expression) (ast.Expression, bool) {
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		return d.stringLiteral(e)

	case *hclsyntax.LiteralValueExpr:
		if text, ok := literalString(e); ok {
			return &ast.StringLiteral{Raw: rangeText(d.src, e.SrcRange), Cooked: text}, true
		}
		d.errorf(e.SrcRange, "Unsupported value", "Only string values are allowed here, not %s.", e.Val.Type().FriendlyName())
		return nil, false

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			d.errorf(e.SrcRange, "Invalid variable reference", "Attribute and index access are not supported; refer to a variable by its bare name.")
			return nil, false
		}
		return &ast.Variable{Name: nameAt(e.Traversal.RootName(), e.SrcRange)}, true

	case *hclsyntax.BinaryOpExpr:
		lhs, lok := d.expression(e.LHS)
		rhs, rok := d.expression(e.RHS)
		if !lok || !rok {
			return nil, false
		}
		switch e.Op {
		case hclsyntax.OpAdd:
			return &ast.Concatenation{LHS: lhs, RHS: rhs}, true
		case hclsyntax.OpDivide:
			return &ast.Join{LHS: lhs, RHS: rhs}, true
		}
		d.errorf(e.SrcRange, "Unsupported operator", "Only + (concatenation) and / (path join) may combine values.")
		return nil, false

	case *hclsyntax.ParenthesesExpr:
		inner, ok := d.expression(e.Expression)
		if !ok {
			return nil, false
		}
		return &ast.Group{Contents: inner}, true

	case *hclsyntax.ConditionalExpr:
		return d.conditional(e)

	case *hclsyntax.FunctionCallExpr:
		return d.call(e)
	}

	d.errorf(expr.Range(), "Unsupported expression", "This kind of expression cannot appear in a recipe document.")
	return nil, false
}

// stringLiteral accepts a quoted string with no interpolations.
func (d *decoder) stringLiteral(e *hclsyntax.TemplateExpr) (ast.Expression, bool) {
	var cooked string
	for _, part := range e.Parts {
		text, ok := literalString(part)
		if !ok {
			d.errorf(part.Range(), "Interpolation not allowed", "Interpolations are only allowed in recipe body lines.")
			return nil, false
		}
		cooked += text
	}
	return &ast.StringLiteral{Raw: rangeText(d.src, e.SrcRange), Cooked: cooked}, true
}

func (d *decoder) conditional(e *hclsyntax.ConditionalExpr) (ast.Expression, bool) {
	then, tok := d.expression(e.TrueResult)
	otherwise, fok := d.expression(e.FalseResult)

	c := &ast.Conditional{Then: then, Otherwise: otherwise}
	cok := true
	switch cond := e.Condition.(type) {
	case *hclsyntax.BinaryOpExpr:
		switch cond.Op {
		case hclsyntax.OpEqual:
			c.Operator = ast.Equality
		case hclsyntax.OpNotEqual:
			c.Operator = ast.Inequality
		default:
			d.errorf(cond.SrcRange, "Invalid condition", "A condition compares two values with ==, != or matches(l, r).")
			return nil, false
		}
		var lok, rok bool
		c.LHS, lok = d.expression(cond.LHS)
		c.RHS, rok = d.expression(cond.RHS)
		cok = lok && rok
	case *hclsyntax.FunctionCallExpr:
		if cond.Name != matchesCall || len(cond.Args) != 2 || cond.ExpandFinal {
			d.errorf(cond.Range(), "Invalid condition", "A condition compares two values with ==, != or matches(l, r).")
			return nil, false
		}
		c.Operator = ast.RegexMatch
		var lok, rok bool
		c.LHS, lok = d.expression(cond.Args[0])
		c.RHS, rok = d.expression(cond.Args[1])
		cok = lok && rok
	default:
		d.errorf(e.Condition.Range(), "Invalid condition", "A condition compares two values with ==, != or matches(l, r).")
		return nil, false
	}

	if !tok || !fok || !cok {
		return nil, false
	}
	return c, true
}

func (d *decoder) call(e *hclsyntax.FunctionCallExpr) (ast.Expression, bool) {
	if e.ExpandFinal {
		d.errorf(e.Range(), "Argument expansion not supported", "Pass each argument explicitly instead of using \"...\".")
		return nil, false
	}

	switch e.Name {
	case backtickCall:
		if len(e.Args) != 1 {
			d.errorf(e.Range(), "Invalid backtick", "backtick takes exactly one string argument.")
			return nil, false
		}
		arg, ok := d.expression(e.Args[0])
		if !ok {
			return nil, false
		}
		lit, isLit := arg.(*ast.StringLiteral)
		if !isLit {
			d.errorf(e.Args[0].Range(), "Invalid backtick", "The command must be a plain string.")
			return nil, false
		}
		return &ast.Backtick{Contents: lit.Cooked}, true

	case slashCall:
		args, ok := d.arguments(e)
		if !ok {
			return nil, false
		}
		switch len(args) {
		case 1:
			return &ast.Join{RHS: args[0]}, true
		case 2:
			return &ast.Join{LHS: args[0], RHS: args[1]}, true
		}
		d.errorf(e.Range(), "Invalid path join", "slash takes one or two arguments, not %d.", len(args))
		return nil, false

	case concatCall:
		args, ok := d.arguments(e)
		if !ok {
			return nil, false
		}
		if len(args) != 2 {
			d.errorf(e.Range(), "Invalid concatenation", "concat takes exactly two arguments, not %d.", len(args))
			return nil, false
		}
		return &ast.Concatenation{LHS: args[0], RHS: args[1]}, true

	case conditionalCall:
		return d.conditionalCall(e)

	case matchesCall:
		d.errorf(e.Range(), "Misplaced matches", "matches(l, r) may only be used as the condition of l ? a : b.")
		return nil, false
	}

	args, ok := d.arguments(e)
	if !ok {
		return nil, false
	}
	thunk, err := function.Thunk(nameAt(e.Name, e.NameRange), args)
	if err != nil {
		d.errorf(e.Range(), "Invalid function call", "%s.", err)
		return nil, false
	}
	return &ast.Call{Thunk: thunk}, true
}

// conditionalCall handles conditional(l, "op", r, then, otherwise).
func (d *decoder) conditionalCall(e *hclsyntax.FunctionCallExpr) (ast.Expression, bool) {
	if len(e.Args) != 5 {
		d.errorf(e.Range(), "Invalid conditional", "conditional takes five arguments, not %d.", len(e.Args))
		return nil, false
	}

	var opText string
	if tmpl, isTmpl := e.Args[1].(*hclsyntax.TemplateExpr); isTmpl && tmpl.IsStringLiteral() {
		opText, _ = literalString(tmpl.Parts[0])
	}
	op, known := conditionalOperators[opText]
	if !known {
		d.errorf(e.Args[1].Range(), "Invalid conditional operator", "The operator must be \"==\", \"!=\" or \"=~\".")
		return nil, false
	}

	lhs, lok := d.expression(e.Args[0])
	rhs, rok := d.expression(e.Args[2])
	then, tok := d.expression(e.Args[3])
	otherwise, fok := d.expression(e.Args[4])
	if !lok || !rok || !tok || !fok {
		return nil, false
	}
	return &ast.Conditional{LHS: lhs, RHS: rhs, Then: then, Otherwise: otherwise, Operator: op}, true
}

func (d *decoder) arguments(e *hclsyntax.FunctionCallExpr) ([]ast.Expression, bool) {
	if e.ExpandFinal {
		d.errorf(e.Range(), "Argument expansion not supported", "Pass each argument explicitly instead of using \"...\".")
		return nil, false
	}
	args := make([]ast.Expression, 0, len(e.Args))
	ok := true
	for _, arg := range e.Args {
		a, argOK := d.expression(arg)
		ok = argOK && ok
		args = append(args, a)
	}
	return args, ok
}

// literalString returns the value of a known, non-null string literal.
func literalString(expr hcl.Expression) (string, bool) {
	lit, ok := expr.(*hclsyntax.LiteralValueExpr)
	if !ok || lit.Val.IsNull() || !lit.Val.IsKnown() || lit.Val.Type() != cty.String {
		return "", false
	}
	return lit.Val.AsString(), true
}

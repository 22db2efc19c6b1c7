package hcl

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/justtree/internal/ast"
)

var (
	aliasSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "target", Required: true}},
	}
	assignmentSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "export"}, {Name: "value", Required: true}},
	}
	setSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "value", Required: true}},
	}
	warningSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "message"}},
	}
	recipeSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "quiet"}, {Name: "doc"}, {Name: "depends_on"},
			{Name: "subsequent"}, {Name: "body"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "parameter", LabelNames: []string{"name"}},
		},
	}
	parameterSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "kind"}, {Name: "default"}},
	}
)

// item translates one top-level block. It returns nil after recording
// diagnostics if the block cannot be translated.
func (d *decoder) item(block *hcl.Block) ast.Item {
	switch block.Type {
	case "alias":
		return d.alias(block)
	case "assignment":
		return d.assignment(block)
	case "comment":
		if _, diags := block.Body.Content(&hcl.BodySchema{}); !d.extend(diags) {
			return nil
		}
		return &ast.Comment{Text: block.Labels[0]}
	case "set":
		return d.set(block)
	case "recipe":
		return d.recipe(block)
	}
	d.errorf(block.DefRange, "Unsupported block type", "Blocks of type %q are not expected here.", block.Type)
	return nil
}

func (d *decoder) alias(block *hcl.Block) ast.Item {
	content, diags := block.Body.Content(aliasSchema)
	if !d.extend(diags) {
		return nil
	}
	target, ok := d.keyword(content.Attributes["target"].Expr, "alias target")
	if !ok {
		return nil
	}
	return &ast.Alias{Name: labelName(block), Target: target}
}

func (d *decoder) assignment(block *hcl.Block) ast.Item {
	content, diags := block.Body.Content(assignmentSchema)
	if !d.extend(diags) {
		return nil
	}

	a := &ast.Assignment{Name: labelName(block)}
	if attr, exists := content.Attributes["export"]; exists {
		if !d.extend(gohcl.DecodeExpression(attr.Expr, nil, &a.Export)) {
			return nil
		}
	}

	value, ok := d.attributeExpression(content.Attributes["value"])
	if !ok {
		return nil
	}
	a.Value = value
	return a
}

func (d *decoder) warning(block *hcl.Block) ast.Warning {
	w := ast.Warning{Kind: block.Labels[0]}
	content, diags := block.Body.Content(warningSchema)
	if !d.extend(diags) {
		return w
	}
	if attr, exists := content.Attributes["message"]; exists {
		d.extend(gohcl.DecodeExpression(attr.Expr, nil, &w.Message))
	}
	return w
}

func (d *decoder) recipe(block *hcl.Block) ast.Item {
	content, diags := block.Body.Content(recipeSchema)
	if !d.extend(diags) {
		return nil
	}

	r := &ast.Recipe{Name: labelName(block)}
	ok := true

	if attr, exists := content.Attributes["quiet"]; exists {
		ok = d.extend(gohcl.DecodeExpression(attr.Expr, nil, &r.Quiet)) && ok
	}

	if attr, exists := content.Attributes["doc"]; exists {
		var doc string
		if d.extend(gohcl.DecodeExpression(attr.Expr, nil, &doc)) {
			r.Doc = &doc
		} else {
			ok = false
		}
	}

	for _, paramBlock := range content.Blocks {
		param, paramOK := d.parameter(paramBlock)
		ok = paramOK && ok
		if paramOK {
			r.Parameters = append(r.Parameters, param)
		}
	}

	if attr, exists := content.Attributes["depends_on"]; exists {
		priors, depsOK := d.dependencies(attr)
		ok = depsOK && ok
		r.Dependencies = append(r.Dependencies, priors...)
		r.Priors = len(priors)
	}

	if attr, exists := content.Attributes["subsequent"]; exists {
		subsequents, depsOK := d.dependencies(attr)
		ok = depsOK && ok
		r.Dependencies = append(r.Dependencies, subsequents...)
	}

	if attr, exists := content.Attributes["body"]; exists {
		body, bodyOK := d.body(attr)
		ok = bodyOK && ok
		r.Body = body
	}

	if !ok {
		return nil
	}
	return r
}

func (d *decoder) parameter(block *hcl.Block) (*ast.Parameter, bool) {
	content, diags := block.Body.Content(parameterSchema)
	if !d.extend(diags) {
		return nil, false
	}

	p := &ast.Parameter{Name: labelName(block)}

	if attr, exists := content.Attributes["kind"]; exists {
		var kind string
		if !d.extend(gohcl.DecodeExpression(attr.Expr, nil, &kind)) {
			return nil, false
		}
		parsed, known := ast.ParseParameterKind(kind)
		if !known {
			d.errorf(attr.Expr.Range(), "Invalid parameter kind",
				"Parameter kind must be one of \"singular\", \"star\", \"plus\" or \"export\", not %q.", kind)
			return nil, false
		}
		p.Kind = parsed
	}

	if attr, exists := content.Attributes["default"]; exists {
		def, ok := d.attributeExpression(attr)
		if !ok {
			return nil, false
		}
		p.Default = def
	}

	return p, true
}

// dependencies translates a list of recipe references. A bare name is a
// dependency without arguments; a call is a dependency with arguments.
func (d *decoder) dependencies(attr *hcl.Attribute) ([]*ast.Dependency, bool) {
	elems, diags := hcl.ExprList(attr.Expr)
	if !d.extend(diags) {
		return nil, false
	}

	deps := make([]*ast.Dependency, 0, len(elems))
	ok := true
	for _, elem := range elems {
		if call, isCall := elem.(*hclsyntax.FunctionCallExpr); isCall {
			args, argsOK := d.arguments(call)
			ok = argsOK && ok
			deps = append(deps, &ast.Dependency{Recipe: nameAt(call.Name, call.NameRange), Arguments: args})
			continue
		}
		name, nameOK := d.keyword(elem, "dependency")
		ok = nameOK && ok
		deps = append(deps, &ast.Dependency{Recipe: name})
	}
	return deps, ok
}

// body translates the list of template strings making up a recipe body.
func (d *decoder) body(attr *hcl.Attribute) ([]*ast.Line, bool) {
	elems, diags := hcl.ExprList(attr.Expr)
	if !d.extend(diags) {
		return nil, false
	}

	lines := make([]*ast.Line, 0, len(elems))
	ok := true
	for _, elem := range elems {
		line, lineOK := d.line(elem)
		ok = lineOK && ok
		lines = append(lines, line)
	}
	return lines, ok
}

func (d *decoder) line(expr hcl.Expression) (*ast.Line, bool) {
	line := &ast.Line{}

	switch e := expr.(type) {
	case *hclsyntax.TemplateWrapExpr:
		inner, ok := d.expression(e.Wrapped)
		if !ok {
			return line, false
		}
		line.Fragments = append(line.Fragments, &ast.Interpolation{Expression: inner})
		return line, true
	case *hclsyntax.TemplateExpr:
		// Escapes may split one run of text into several literal parts.
		ok := true
		var text strings.Builder
		flush := func() {
			if text.Len() > 0 {
				line.Fragments = append(line.Fragments, &ast.Text{Lexeme: text.String()})
				text.Reset()
			}
		}
		for _, part := range e.Parts {
			if lit, isText := literalString(part); isText {
				text.WriteString(lit)
				continue
			}
			flush()
			inner, partOK := d.expression(part)
			ok = partOK && ok
			line.Fragments = append(line.Fragments, &ast.Interpolation{Expression: inner})
		}
		flush()
		return line, ok
	}

	d.errorf(expr.Range(), "Invalid body line", "Each body line must be a quoted string.")
	return line, false
}

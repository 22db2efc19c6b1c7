package hcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/justtree/internal/ast"
	"github.com/zclconf/go-cty/cty"
)

// Encode writes program as a recipe document. Loading the result yields a
// program that serializes to the same tree, with two exceptions: adjacent
// text fragments in a body line come back merged, and a text fragment ending
// in "$" or "%" directly before an interpolation reads back as an escape.
func Encode(program *ast.Program) ([]byte, error) {
	if err := program.Validate(); err != nil {
		return nil, fmt.Errorf("cannot encode invalid program: %w", err)
	}

	f := hclwrite.NewEmptyFile()
	root := f.Body()
	for i, item := range program.Items {
		if i > 0 {
			root.AppendNewline()
		}
		encodeItem(root, item)
	}
	for _, w := range program.Warnings {
		root.AppendNewline()
		block := root.AppendNewBlock("warning", []string{w.Kind})
		block.Body().SetAttributeValue("message", cty.StringVal(w.Message))
	}
	return hclwrite.Format(f.Bytes()), nil
}

func encodeItem(body *hclwrite.Body, item ast.Item) {
	switch it := item.(type) {
	case *ast.Alias:
		block := body.AppendNewBlock("alias", []string{it.Name.Lexeme})
		block.Body().SetAttributeRaw("target", hclwrite.TokensForIdentifier(it.Target.Lexeme))
	case *ast.Assignment:
		block := body.AppendNewBlock("assignment", []string{it.Name.Lexeme})
		if it.Export {
			block.Body().SetAttributeValue("export", cty.True)
		}
		block.Body().SetAttributeRaw("value", expressionTokens(it.Value))
	case *ast.Comment:
		body.AppendNewBlock("comment", []string{it.Text})
	case *ast.Set:
		encodeSet(body, it)
	case *ast.Recipe:
		encodeRecipe(body, it)
	default:
		panic(fmt.Sprintf("hcl: unhandled item %T", item))
	}
}

func encodeSet(body *hclwrite.Body, s *ast.Set) {
	label := s.Name.Lexeme
	if label == "" {
		label = s.Value.SettingKind().Keyword()
	}
	block := body.AppendNewBlock("set", []string{label})

	var val cty.Value
	switch v := s.Value.(type) {
	case *ast.BoolSetting:
		val = cty.BoolVal(v.Value)
	case *ast.StringSetting:
		val = cty.StringVal(v.Value)
	case *ast.ShellSetting:
		words := make([]cty.Value, 0, 1+len(v.Arguments))
		words = append(words, cty.StringVal(v.Command))
		for _, arg := range v.Arguments {
			words = append(words, cty.StringVal(arg))
		}
		val = cty.ListVal(words)
	default:
		panic(fmt.Sprintf("hcl: unhandled setting %T", s.Value))
	}
	block.Body().SetAttributeValue("value", val)
}

func encodeRecipe(body *hclwrite.Body, r *ast.Recipe) {
	block := body.AppendNewBlock("recipe", []string{r.Name.Lexeme})
	rb := block.Body()

	if r.Quiet {
		rb.SetAttributeValue("quiet", cty.True)
	}
	if r.Doc != nil {
		rb.SetAttributeValue("doc", cty.StringVal(*r.Doc))
	}
	if priors := r.PriorDependencies(); len(priors) > 0 {
		rb.SetAttributeRaw("depends_on", dependencyTokens(priors))
	}
	if subsequents := r.SubsequentDependencies(); len(subsequents) > 0 {
		rb.SetAttributeRaw("subsequent", dependencyTokens(subsequents))
	}
	if len(r.Body) > 0 {
		lines := make([]hclwrite.Tokens, 0, len(r.Body))
		for _, line := range r.Body {
			lines = append(lines, lineTokens(line))
		}
		rb.SetAttributeRaw("body", hclwrite.TokensForTuple(lines))
	}

	for _, p := range r.Parameters {
		pb := rb.AppendNewBlock("parameter", []string{p.Name.Lexeme}).Body()
		if p.Kind != ast.Singular {
			pb.SetAttributeValue("kind", cty.StringVal(p.Kind.String()))
		}
		if p.Default != nil {
			pb.SetAttributeRaw("default", expressionTokens(p.Default))
		}
	}
}

func dependencyTokens(deps []*ast.Dependency) hclwrite.Tokens {
	elems := make([]hclwrite.Tokens, 0, len(deps))
	for _, dep := range deps {
		if len(dep.Arguments) == 0 {
			elems = append(elems, hclwrite.TokensForIdentifier(dep.Recipe.Lexeme))
			continue
		}
		elems = append(elems, hclwrite.TokensForFunctionCall(dep.Recipe.Lexeme, argumentTokens(dep.Arguments)...))
	}
	return hclwrite.TokensForTuple(elems)
}

// lineTokens renders a body line as a quoted template.
func lineTokens(line *ast.Line) hclwrite.Tokens {
	toks := hclwrite.Tokens{{Type: hclsyntax.TokenOQuote, Bytes: []byte(`"`)}}
	for _, frag := range line.Fragments {
		switch f := frag.(type) {
		case *ast.Text:
			toks = append(toks, &hclwrite.Token{Type: hclsyntax.TokenQuotedLit, Bytes: []byte(escapeTemplate(f.Lexeme))})
		case *ast.Interpolation:
			toks = append(toks, &hclwrite.Token{Type: hclsyntax.TokenTemplateInterp, Bytes: []byte("${")})
			toks = append(toks, expressionTokens(f.Expression)...)
			toks = append(toks, &hclwrite.Token{Type: hclsyntax.TokenTemplateSeqEnd, Bytes: []byte("}")})
		default:
			panic(fmt.Sprintf("hcl: unhandled fragment %T", frag))
		}
	}
	return append(toks, &hclwrite.Token{Type: hclsyntax.TokenCQuote, Bytes: []byte(`"`)})
}

var templateEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"${", "$${",
	"%{", "%%{",
)

func escapeTemplate(s string) string {
	return templateEscaper.Replace(s)
}

// expressionTokens renders an expression. Infix operators are used only
// when both operands are atomic, so the output never depends on HCL's
// operator precedence; everything else uses the reserved call forms.
func expressionTokens(expr ast.Expression) hclwrite.Tokens {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return hclwrite.TokensForValue(cty.StringVal(e.Cooked))
	case *ast.Variable:
		return hclwrite.TokensForIdentifier(e.Name.Lexeme)
	case *ast.Backtick:
		return hclwrite.TokensForFunctionCall(backtickCall, hclwrite.TokensForValue(cty.StringVal(e.Contents)))
	case *ast.Group:
		toks := hclwrite.Tokens{{Type: hclsyntax.TokenOParen, Bytes: []byte("(")}}
		toks = append(toks, expressionTokens(e.Contents)...)
		return append(toks, &hclwrite.Token{Type: hclsyntax.TokenCParen, Bytes: []byte(")")})
	case *ast.Call:
		return hclwrite.TokensForFunctionCall(e.Thunk.FunctionName().Lexeme, argumentTokens(e.Thunk.Arguments())...)
	case *ast.Concatenation:
		if atomic(e.LHS) && atomic(e.RHS) {
			return infix(e.LHS, hclsyntax.TokenPlus, "+", e.RHS)
		}
		return hclwrite.TokensForFunctionCall(concatCall, argumentTokens([]ast.Expression{e.LHS, e.RHS})...)
	case *ast.Join:
		if e.LHS == nil {
			return hclwrite.TokensForFunctionCall(slashCall, expressionTokens(e.RHS))
		}
		if atomic(e.LHS) && atomic(e.RHS) {
			return infix(e.LHS, hclsyntax.TokenSlash, "/", e.RHS)
		}
		return hclwrite.TokensForFunctionCall(slashCall, argumentTokens([]ast.Expression{e.LHS, e.RHS})...)
	case *ast.Conditional:
		return conditionalTokens(e)
	}
	panic(fmt.Sprintf("hcl: unhandled expression %T", expr))
}

func conditionalTokens(c *ast.Conditional) hclwrite.Tokens {
	if !atomic(c.LHS) || !atomic(c.RHS) || !atomic(c.Then) || !atomic(c.Otherwise) {
		return hclwrite.TokensForFunctionCall(conditionalCall,
			expressionTokens(c.LHS),
			hclwrite.TokensForValue(cty.StringVal(c.Operator.String())),
			expressionTokens(c.RHS),
			expressionTokens(c.Then),
			expressionTokens(c.Otherwise),
		)
	}

	var toks hclwrite.Tokens
	switch c.Operator {
	case ast.Equality:
		toks = infix(c.LHS, hclsyntax.TokenEqualOp, "==", c.RHS)
	case ast.Inequality:
		toks = infix(c.LHS, hclsyntax.TokenNotEqual, "!=", c.RHS)
	default:
		toks = hclwrite.TokensForFunctionCall(matchesCall, expressionTokens(c.LHS), expressionTokens(c.RHS))
	}
	toks = append(toks, &hclwrite.Token{Type: hclsyntax.TokenQuestion, Bytes: []byte("?"), SpacesBefore: 1})
	toks = appendSpaced(toks, expressionTokens(c.Then))
	toks = append(toks, &hclwrite.Token{Type: hclsyntax.TokenColon, Bytes: []byte(":"), SpacesBefore: 1})
	return appendSpaced(toks, expressionTokens(c.Otherwise))
}

func infix(lhs ast.Expression, op hclsyntax.TokenType, text string, rhs ast.Expression) hclwrite.Tokens {
	toks := expressionTokens(lhs)
	toks = append(toks, &hclwrite.Token{Type: op, Bytes: []byte(text), SpacesBefore: 1})
	return appendSpaced(toks, expressionTokens(rhs))
}

func appendSpaced(toks, more hclwrite.Tokens) hclwrite.Tokens {
	if len(more) > 0 {
		more[0].SpacesBefore = 1
	}
	return append(toks, more...)
}

func argumentTokens(args []ast.Expression) []hclwrite.Tokens {
	out := make([]hclwrite.Tokens, 0, len(args))
	for _, arg := range args {
		out = append(out, expressionTokens(arg))
	}
	return out
}

// atomic reports whether expr renders as a single term.
func atomic(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.StringLiteral, *ast.Variable, *ast.Backtick, *ast.Group, *ast.Call:
		return true
	case *ast.Join:
		return e.LHS == nil
	}
	return false
}

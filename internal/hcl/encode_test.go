package hcl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/justtree/internal/ast"
	"github.com/vk/justtree/internal/hcl"
	"github.com/vk/justtree/internal/serializer"
	"github.com/vk/justtree/internal/tree"
)

func name(lexeme string) ast.Name { return ast.NewName(lexeme) }

func variable(lexeme string) ast.Expression { return &ast.Variable{Name: name(lexeme)} }

func literal(cooked string) ast.Expression {
	return &ast.StringLiteral{Raw: `"` + cooked + `"`, Cooked: cooked}
}

func nullary(fn string) ast.Expression {
	return &ast.Call{Thunk: &ast.Nullary{Name: name(fn)}}
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := "Build \"all\" the things"
	testCases := []struct {
		name    string
		program *ast.Program
	}{
		{name: "empty", program: &ast.Program{}},
		{
			name: "every item kind",
			program: &ast.Program{Items: []ast.Item{
				&ast.Comment{Text: "top comment"},
				&ast.Alias{Name: name("b"), Target: name("build")},
				&ast.Assignment{Export: true, Name: name("v"), Value: literal("1.0")},
				&ast.Set{Name: name("dotenv-load"), Value: &ast.BoolSetting{Kind: ast.DotenvLoad, Value: true}},
				&ast.Set{Name: name("shell"), Value: &ast.ShellSetting{Kind: ast.Shell, Command: "bash", Arguments: []string{"-euc"}}},
				&ast.Set{Name: name("tempdir"), Value: &ast.StringSetting{Kind: ast.Tempdir, Value: "/tmp"}},
				&ast.Recipe{Name: name("build")},
			}},
		},
		{
			name: "nested expressions",
			program: &ast.Program{Items: []ast.Item{
				&ast.Assignment{Name: name("a"), Value: &ast.Concatenation{
					LHS: &ast.Concatenation{LHS: variable("x"), RHS: literal("y")},
					RHS: &ast.Join{LHS: nullary("justfile_directory"), RHS: literal("out")},
				}},
				&ast.Assignment{Name: name("b"), Value: &ast.Join{RHS: &ast.Concatenation{LHS: variable("x"), RHS: variable("y")}}},
				&ast.Assignment{Name: name("c"), Value: &ast.Conditional{
					LHS: nullary("os"), RHS: literal("linux"), Then: literal("l"), Otherwise: literal("o"),
					Operator: ast.Equality,
				}},
				&ast.Assignment{Name: name("d"), Value: &ast.Conditional{
					LHS: variable("a"), RHS: literal("^x"), Then: &ast.Group{Contents: variable("c")}, Otherwise: &ast.Backtick{Contents: "uname -m"},
					Operator: ast.RegexMatch,
				}},
				&ast.Assignment{Name: name("e"), Value: &ast.Conditional{
					LHS:       &ast.Concatenation{LHS: variable("a"), RHS: variable("b")},
					RHS:       literal("ab"),
					Then:      &ast.Conditional{LHS: variable("a"), RHS: variable("b"), Then: variable("c"), Otherwise: variable("d"), Operator: ast.Inequality},
					Otherwise: literal("z"),
					Operator:  ast.Inequality,
				}},
				&ast.Assignment{Name: name("f"), Value: &ast.Call{Thunk: &ast.BinaryPlus{
					Name: name("join"),
					Args: [2]ast.Expression{literal("a"), &ast.Join{LHS: variable("b"), RHS: variable("c")}},
					Rest: []ast.Expression{literal("d")},
				}}},
				&ast.Assignment{Name: name("g"), Value: &ast.Call{Thunk: &ast.UnaryOpt{Name: name("env"), Arg: literal("HOME")}}},
				&ast.Assignment{Name: name("h"), Value: literal("${not} an interpolation \\ \"quoted\"\n")},
			}},
		},
		{
			name: "recipe with everything",
			program: &ast.Program{Items: []ast.Item{
				&ast.Recipe{
					Quiet: true,
					Doc:   &doc,
					Name:  name("release"),
					Parameters: []*ast.Parameter{
						{Name: name("mode"), Default: literal("debug")},
						{Name: name("targets"), Kind: ast.Star, Default: &ast.Concatenation{LHS: variable("mode"), RHS: literal("-all")}},
						{Name: name("TOKEN"), Kind: ast.Export},
					},
					Dependencies: []*ast.Dependency{
						{Recipe: name("build"), Arguments: []ast.Expression{literal("release"), variable("mode")}},
						{Recipe: name("test")},
						{Recipe: name("notify"), Arguments: []ast.Expression{&ast.Concatenation{LHS: literal("v"), RHS: variable("mode")}}},
					},
					Priors: 2,
					Body: []*ast.Line{
						{Fragments: []ast.Fragment{&ast.Text{Lexeme: "echo \"${HOME}\" "}, &ast.Interpolation{Expression: variable("mode")}}},
						{},
						{Fragments: []ast.Fragment{&ast.Interpolation{Expression: nullary("arch")}}},
						{Fragments: []ast.Fragment{&ast.Text{Lexeme: "printf '%{x}\\t'"}}},
					},
				},
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := hcl.Encode(tc.program)
			require.NoError(t, err)

			decoded, err := hcl.NewLoader().LoadBytes(context.Background(), src, "encoded.hcl")
			require.NoError(t, err, "encoded document:\n%s", src)

			want := serializer.MustProgram(tc.program)
			got := serializer.MustProgram(decoded)
			assert.True(t, tree.Equal(want, got), "want: %s\ngot:  %s\ndocument:\n%s", want, got, src)
		})
	}
}

func TestEncode_Warnings(t *testing.T) {
	program := &ast.Program{Warnings: []ast.Warning{{Kind: "deprecated", Message: "old"}}}

	src, err := hcl.Encode(program)
	require.NoError(t, err)

	decoded, err := hcl.NewLoader().LoadBytes(context.Background(), src, "encoded.hcl")
	require.NoError(t, err)
	assert.Equal(t, program.Warnings, decoded.Warnings)
}

func TestEncode_UsesInfixForAtomicOperands(t *testing.T) {
	program := &ast.Program{Items: []ast.Item{
		&ast.Assignment{Name: name("p"), Value: &ast.Join{LHS: variable("a"), RHS: literal("b")}},
		&ast.Assignment{Name: name("q"), Value: &ast.Concatenation{LHS: &ast.Concatenation{LHS: variable("a"), RHS: variable("b")}, RHS: variable("c")}},
	}}

	src, err := hcl.Encode(program)
	require.NoError(t, err)
	assert.Contains(t, string(src), `a / "b"`)
	assert.Contains(t, string(src), `concat(a + b, c)`)
}

func TestEncode_RejectsInvalidProgram(t *testing.T) {
	_, err := hcl.Encode(&ast.Program{Items: []ast.Item{&ast.Recipe{Name: name("r"), Priors: 3}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priors 3 out of range for 0 dependencies")
}

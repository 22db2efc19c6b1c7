package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/justtree/internal/ast"
)

func dependencies(names ...string) []*ast.Dependency {
	deps := make([]*ast.Dependency, 0, len(names))
	for _, name := range names {
		deps = append(deps, &ast.Dependency{Recipe: ast.NewName(name)})
	}
	return deps
}

func recipeNames(deps []*ast.Dependency) []string {
	names := []string{}
	for _, dep := range deps {
		names = append(names, dep.Recipe.Lexeme)
	}
	return names
}

func TestRecipe_DependencyPartition(t *testing.T) {
	testCases := []struct {
		name                string
		priors              int
		expectedPriors      []string
		expectedSubsequents []string
	}{
		{name: "all subsequent", priors: 0, expectedPriors: []string{}, expectedSubsequents: []string{"a", "b", "c"}},
		{name: "split", priors: 2, expectedPriors: []string{"a", "b"}, expectedSubsequents: []string{"c"}},
		{name: "all prior", priors: 3, expectedPriors: []string{"a", "b", "c"}, expectedSubsequents: []string{}},
		{name: "out of range is clamped", priors: 7, expectedPriors: []string{"a", "b", "c"}, expectedSubsequents: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := &ast.Recipe{Name: ast.NewName("r"), Dependencies: dependencies("a", "b", "c"), Priors: tc.priors}
			assert.Equal(t, tc.expectedPriors, recipeNames(r.PriorDependencies()))
			assert.Equal(t, tc.expectedSubsequents, recipeNames(r.SubsequentDependencies()))
		})
	}
}

func TestParameterKind(t *testing.T) {
	testCases := []struct {
		kind           ast.ParameterKind
		expectedPrefix string
		expectedOK     bool
	}{
		{ast.Singular, "", false},
		{ast.Star, "*", true},
		{ast.Plus, "+", true},
		{ast.Export, "$", true},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			prefix, ok := tc.kind.Prefix()
			assert.Equal(t, tc.expectedPrefix, prefix)
			assert.Equal(t, tc.expectedOK, ok)

			parsed, ok := ast.ParseParameterKind(tc.kind.String())
			assert.True(t, ok)
			assert.Equal(t, tc.kind, parsed)
		})
	}

	_, ok := ast.ParseParameterKind("many")
	assert.False(t, ok)
}

func TestLookupSetting(t *testing.T) {
	kind, ok := ast.LookupSetting("dotenv-load")
	assert.True(t, ok)
	assert.Equal(t, ast.DotenvLoad, kind)
	assert.Equal(t, ast.BoolClass, kind.Class())

	kind, ok = ast.LookupSetting("windows-shell")
	assert.True(t, ok)
	assert.Equal(t, ast.ShellClass, kind.Class())

	kind, ok = ast.LookupSetting("tempdir")
	assert.True(t, ok)
	assert.Equal(t, ast.StringClass, kind.Class())

	_, ok = ast.LookupSetting("dotenv_load")
	assert.False(t, ok)
}

func TestUnaryOptArguments(t *testing.T) {
	call := &ast.UnaryOpt{Name: ast.NewName("env"), Arg: &ast.StringLiteral{Cooked: "HOME"}}
	assert.Len(t, call.Arguments(), 1)

	call.Opt = &ast.StringLiteral{Cooked: "/root"}
	assert.Len(t, call.Arguments(), 2)
}

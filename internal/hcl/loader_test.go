package hcl_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/justtree/internal/ast"
	"github.com/vk/justtree/internal/hcl"
	"github.com/vk/justtree/internal/serializer"
	"github.com/vk/justtree/internal/testutil"
)

func load(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	return hcl.NewLoader().LoadBytes(context.Background(), []byte(src), "test.hcl")
}

func TestLoadBytes(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "empty document",
			src:      "",
			expected: "(justfile)",
		},
		{
			name:     "alias",
			src:      `alias "b" { target = build }`,
			expected: "(justfile (alias b build))",
		},
		{
			name: "exported concatenation",
			src: `
assignment "version" {
  export = true
  value  = "1." + minor
}`,
			expected: `(justfile (assignment # export version (+ "1." minor)))`,
		},
		{
			name:     "path join",
			src:      `assignment "out" { value = justfile_directory() / "out" }`,
			expected: `(justfile (assignment out (/ (call justfile_directory) "out")))`,
		},
		{
			name:     "leading path join",
			src:      `assignment "tmp" { value = slash("tmp") }`,
			expected: `(justfile (assignment tmp (/ "tmp")))`,
		},
		{
			name:     "two-argument slash",
			src:      `assignment "p" { value = slash(a + b, "c") }`,
			expected: `(justfile (assignment p (/ (+ a b) "c")))`,
		},
		{
			name:     "concat call",
			src:      `assignment "c" { value = concat(a / b, "c") }`,
			expected: `(justfile (assignment c (+ (/ a b) "c")))`,
		},
		{
			name:     "group",
			src:      `assignment "g" { value = ("a") }`,
			expected: `(justfile (assignment g ("a")))`,
		},
		{
			name:     "equality conditional",
			src:      `assignment "sys" { value = os() == "linux" ? "l" : "o" }`,
			expected: `(justfile (assignment sys (if (call os) == "linux" "l" "o")))`,
		},
		{
			name:     "inequality conditional",
			src:      `assignment "sys" { value = a != b ? c : d }`,
			expected: `(justfile (assignment sys (if a != b c d)))`,
		},
		{
			name:     "regex conditional",
			src:      `assignment "cpu" { value = matches(arch(), "^x86") ? "x" : "y" }`,
			expected: `(justfile (assignment cpu (if (call arch) =~ "^x86" "x" "y")))`,
		},
		{
			name:     "conditional call",
			src:      `assignment "c" { value = conditional(a + b, "=~", "z", c, d) }`,
			expected: `(justfile (assignment c (if (+ a b) =~ "z" c d)))`,
		},
		{
			name:     "backtick",
			src:      `assignment "rev" { value = backtick("git rev-parse HEAD") }`,
			expected: `(justfile (assignment rev (backtick "git rev-parse HEAD")))`,
		},
		{
			name:     "optional argument given",
			src:      `assignment "home" { value = env("HOME", "/") }`,
			expected: `(justfile (assignment home (call env "HOME" "/")))`,
		},
		{
			name:     "optional argument absent",
			src:      `assignment "home" { value = env("HOME") }`,
			expected: `(justfile (assignment home (call env "HOME")))`,
		},
		{
			name:     "variadic call",
			src:      `assignment "p" { value = join("a", "b", "c") }`,
			expected: `(justfile (assignment p (call join "a" "b" "c")))`,
		},
		{
			name:     "escaped string is cooked",
			src:      `assignment "s" { value = "a\tb" }`,
			expected: "(justfile (assignment s \"a\tb\"))",
		},
		{
			name:     "comment",
			src:      `comment "hello" {}`,
			expected: `(justfile (comment "hello"))`,
		},
		{
			name:     "bool setting with underscores",
			src:      `set "dotenv_load" { value = true }`,
			expected: "(justfile (set dotenv_load true))",
		},
		{
			name:     "bool setting with dashes",
			src:      `set "positional-arguments" { value = false }`,
			expected: "(justfile (set positional_arguments false))",
		},
		{
			name:     "shell setting",
			src:      `set "shell" { value = ["bash", "-euc"] }`,
			expected: `(justfile (set shell "bash" "-euc"))`,
		},
		{
			name:     "string setting",
			src:      `set "tempdir" { value = "/tmp" }`,
			expected: `(justfile (set tempdir "/tmp"))`,
		},
		{
			name:     "bare recipe",
			src:      `recipe "build" {}`,
			expected: "(justfile (recipe build))",
		},
		{
			name: "full recipe",
			src: `
recipe "build" {
  quiet      = true
  doc        = "Build it"
  depends_on = [setup, fetch("x", mode)]
  subsequent = [notify]
  body       = ["cc ${target} -o out", "", "${arch()}"]

  parameter "target" {
    kind    = "star"
    default = "debug"
  }
}`,
			expected: `(justfile (recipe # quiet "Build it" build (params * (target "debug")) ` +
				`(deps (setup) (fetch "x" mode)) (sups (notify)) (body ("cc " (target) " -o out") () ((call arch)))))`,
		},
		{
			name: "parameters keep their order",
			src: `
recipe "test" {
  parameter "a" {}
  parameter "b" { kind = "export" }
  parameter "c" { kind = "plus" }
}`,
			expected: "(justfile (recipe test (params (a) $ (b) + (c))))",
		},
		{
			name: "items keep source order",
			src: `
comment "first" {}
alias "t" { target = test }
recipe "test" {}
`,
			expected: `(justfile (comment "first") (alias t test) (recipe test))`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program, err := load(t, tc.src)
			require.NoError(t, err)

			got, err := serializer.Program(program)
			require.NoError(t, err)
			testutil.RequireTree(t, tc.expected, got)
		})
	}
}

func TestLoadBytes_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		contains string
	}{
		{name: "syntax error", src: `recipe "x" {`, contains: "failed to parse HCL file test.hcl"},
		{name: "unknown block", src: `job "x" {}`, contains: "failed to decode HCL file test.hcl"},
		{name: "missing value", src: `assignment "x" {}`, contains: `"value" is required`},
		{name: "unknown function", src: `assignment "x" { value = nope() }`, contains: `call to unknown function "nope"`},
		{name: "wrong arity", src: `assignment "x" { value = uppercase() }`, contains: `function "uppercase" takes 1 argument but 0 were given`},
		{name: "interpolated literal", src: `assignment "x" { value = "a${b}" }`, contains: "Interpolations are only allowed in recipe body lines"},
		{name: "attribute access", src: `assignment "x" { value = a.b }`, contains: "Invalid variable reference"},
		{name: "number", src: `assignment "x" { value = 1 }`, contains: "Only string values are allowed here"},
		{name: "multiplication", src: `assignment "x" { value = a * b }`, contains: "Unsupported operator"},
		{name: "bad condition", src: `assignment "x" { value = a ? b : c }`, contains: "Invalid condition"},
		{name: "stray matches", src: `assignment "x" { value = matches(a, b) }`, contains: "Misplaced matches"},
		{name: "bad conditional operator", src: `assignment "x" { value = conditional(a, "<", b, c, d) }`, contains: "Invalid conditional operator"},
		{name: "non-literal backtick", src: `assignment "x" { value = backtick(a) }`, contains: "The command must be a plain string"},
		{name: "three-argument slash", src: `assignment "x" { value = slash(a, b, c) }`, contains: "slash takes one or two arguments, not 3"},
		{name: "expanded arguments", src: `assignment "x" { value = join(a...) }`, contains: "Argument expansion not supported"},
		{name: "alias to string", src: `alias "b" { target = "build" }`, contains: "The alias target must be a bare name"},
		{name: "unknown setting", src: `set "colour" { value = true }`, contains: `There is no setting named "colour"`},
		{name: "bool setting given string", src: `set "fallback" { value = "maybe" }`, contains: `Setting "fallback" expects bool`},
		{name: "empty shell", src: `set "shell" { value = [] }`, contains: `Setting "shell" needs at least a command`},
		{name: "bad parameter kind", src: "recipe \"r\" {\n  parameter \"p\" { kind = \"many\" }\n}", contains: "Invalid parameter kind"},
		{name: "body line not a string", src: `recipe "r" { body = [a] }`, contains: "Each body line must be a quoted string"},
		{name: "dependency as string", src: `recipe "r" { depends_on = ["a"] }`, contains: "The dependency must be a bare name"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program, err := load(t, tc.src)
			require.Error(t, err)
			assert.Nil(t, program)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestLoadBytes_Warnings(t *testing.T) {
	program, err := load(t, `
comment "x" {}
warning "deprecated" { message = "old syntax" }
`)
	require.NoError(t, err)
	require.Len(t, program.Warnings, 1)
	assert.Equal(t, ast.Warning{Kind: "deprecated", Message: "old syntax"}, program.Warnings[0])

	_, err = serializer.Program(program)
	assert.True(t, errors.Is(err, serializer.ErrWarning))
}

func TestLoadBytes_Positions(t *testing.T) {
	program, err := load(t, "\nalias \"b\" {\n  target = build\n}\n")
	require.NoError(t, err)
	require.Len(t, program.Items, 1)

	alias := program.Items[0].(*ast.Alias)
	assert.Equal(t, ast.Name{Lexeme: "b", Line: 2, Column: 8}, alias.Name)
	assert.Equal(t, ast.Name{Lexeme: "build", Line: 3, Column: 12}, alias.Target)
}

func TestLoadBytes_PriorsCountDependsOn(t *testing.T) {
	program, err := load(t, `recipe "r" {
  depends_on = [a, b]
  subsequent = [c]
}`)
	require.NoError(t, err)

	r := program.Items[0].(*ast.Recipe)
	assert.Equal(t, 2, r.Priors)
	assert.Len(t, r.Dependencies, 3)
	assert.Equal(t, "c", r.SubsequentDependencies()[0].Recipe.Lexeme)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`recipe "hello" { body = ["echo hi"] }`), 0o644))

	program, err := hcl.NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	testutil.RequireTree(t, `(justfile (recipe hello (body ("echo hi"))))`, serializer.MustProgram(program))

	_, err = hcl.NewLoader().Load(context.Background(), filepath.Join(dir, "missing.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read recipe document")
}

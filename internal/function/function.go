// Package function is the table of built-in functions callable from
// expressions, keyed by name, together with the arity shape of each one.
//
// A call site is only representable once its shape is known: the table is
// what turns `env("HOME")` into a UnaryOpt thunk and `join(a, b, c)` into a
// BinaryPlus thunk.
package function

import (
	"fmt"
	"sort"

	"github.com/vk/justtree/internal/ast"
)

// Shape is the arity class of a built-in.
type Shape int

const (
	Nullary Shape = iota
	Unary
	UnaryOpt
	Binary
	BinaryPlus
	Ternary
)

func (s Shape) String() string {
	switch s {
	case Nullary:
		return "nullary"
	case Unary:
		return "unary"
	case UnaryOpt:
		return "unary-opt"
	case Binary:
		return "binary"
	case BinaryPlus:
		return "binary-plus"
	case Ternary:
		return "ternary"
	default:
		return "unknown"
	}
}

// Accepts reports whether a call with n arguments fits the shape.
func (s Shape) Accepts(n int) bool {
	switch s {
	case Nullary:
		return n == 0
	case Unary:
		return n == 1
	case UnaryOpt:
		return n == 1 || n == 2
	case Binary:
		return n == 2
	case BinaryPlus:
		return n >= 2
	case Ternary:
		return n == 3
	default:
		return false
	}
}

// Expected describes the accepted argument counts, for error messages.
func (s Shape) Expected() string {
	switch s {
	case Nullary:
		return "0 arguments"
	case Unary:
		return "1 argument"
	case UnaryOpt:
		return "1 or 2 arguments"
	case Binary:
		return "2 arguments"
	case BinaryPlus:
		return "at least 2 arguments"
	case Ternary:
		return "3 arguments"
	default:
		return "no arguments"
	}
}

// ArityError reports a call whose argument count does not fit its function.
type ArityError struct {
	Function string
	Shape    Shape
	Found    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("function %q takes %s but %d were given", e.Function, e.Shape.Expected(), e.Found)
}

// UnknownFunctionError reports a call to a name that is not a built-in.
type UnknownFunctionError struct {
	Function string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("call to unknown function %q", e.Function)
}

var table = map[string]Shape{
	"arch":                        Nullary,
	"num_cpus":                    Nullary,
	"os":                          Nullary,
	"os_family":                   Nullary,
	"invocation_directory":        Nullary,
	"invocation_directory_native": Nullary,
	"justfile":                    Nullary,
	"justfile_directory":          Nullary,
	"just_executable":             Nullary,
	"just_pid":                    Nullary,
	"uuid":                        Nullary,

	"absolute_path":     Unary,
	"capitalize":        Unary,
	"clean":             Unary,
	"env_var":           Unary,
	"error":             Unary,
	"extension":         Unary,
	"file_name":         Unary,
	"file_stem":         Unary,
	"kebabcase":         Unary,
	"lowercamelcase":    Unary,
	"lowercase":         Unary,
	"parent_directory":  Unary,
	"path_exists":       Unary,
	"quote":             Unary,
	"sha256":            Unary,
	"sha256_file":       Unary,
	"shoutykebabcase":   Unary,
	"shoutysnakecase":   Unary,
	"snakecase":         Unary,
	"titlecase":         Unary,
	"trim":              Unary,
	"trim_end":          Unary,
	"trim_start":        Unary,
	"uppercamelcase":    Unary,
	"uppercase":         Unary,
	"without_extension": Unary,
	"blake3":            Unary,
	"blake3_file":       Unary,
	"canonicalize":      Unary,

	"env": UnaryOpt,

	"env_var_or_default": Binary,
	"semver_matches":     Binary,
	"trim_end_match":     Binary,
	"trim_end_matches":   Binary,
	"trim_start_match":   Binary,
	"trim_start_matches": Binary,
	"prepend":            Binary,
	"append":             Binary,

	"join": BinaryPlus,

	"replace":       Ternary,
	"replace_regex": Ternary,
}

// Lookup returns the shape of the named built-in.
func Lookup(name string) (Shape, bool) {
	shape, ok := table[name]
	return shape, ok
}

// Names returns every built-in name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Thunk arranges args into the thunk variant the named built-in's shape
// requires.
func Thunk(name ast.Name, args []ast.Expression) (ast.Thunk, error) {
	shape, ok := Lookup(name.Lexeme)
	if !ok {
		return nil, &UnknownFunctionError{Function: name.Lexeme}
	}
	if !shape.Accepts(len(args)) {
		return nil, &ArityError{Function: name.Lexeme, Shape: shape, Found: len(args)}
	}

	switch shape {
	case Nullary:
		return &ast.Nullary{Name: name}, nil
	case Unary:
		return &ast.Unary{Name: name, Arg: args[0]}, nil
	case UnaryOpt:
		thunk := &ast.UnaryOpt{Name: name, Arg: args[0]}
		if len(args) == 2 {
			thunk.Opt = args[1]
		}
		return thunk, nil
	case Binary:
		return &ast.Binary{Name: name, Args: [2]ast.Expression{args[0], args[1]}}, nil
	case BinaryPlus:
		var rest []ast.Expression
		if len(args) > 2 {
			rest = append(rest, args[2:]...)
		}
		return &ast.BinaryPlus{Name: name, Args: [2]ast.Expression{args[0], args[1]}, Rest: rest}, nil
	case Ternary:
		return &ast.Ternary{Name: name, Args: [3]ast.Expression{args[0], args[1], args[2]}}, nil
	}
	panic(fmt.Sprintf("function: unhandled shape %v", shape))
}

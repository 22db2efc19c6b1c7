package serializer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/justtree/internal/ast"
	"github.com/vk/justtree/internal/tree"
)

// ErrWarning is returned by Program when the program carries warnings.
var ErrWarning = errors.New("warnings cannot be rendered to a tree")

// Program renders a whole program: the atom "justfile" followed by every
// item in order.
func Program(p *ast.Program) (tree.Tree, error) {
	if len(p.Warnings) > 0 {
		return nil, fmt.Errorf("%w: program has %d warning(s), first: %s", ErrWarning, len(p.Warnings), p.Warnings[0])
	}

	children := make([]tree.Tree, 0, len(p.Items))
	for _, item := range p.Items {
		children = append(children, Item(item))
	}
	return tree.Extend(tree.NewAtom("justfile"), children...), nil
}

// MustProgram is like Program but panics on error.
func MustProgram(p *ast.Program) tree.Tree {
	t, err := Program(p)
	if err != nil {
		panic(err)
	}
	return t
}

// Warning always panics. A warning reaching the serializer means the caller
// skipped the warning check Program performs.
func Warning(w ast.Warning) tree.Tree {
	panic(fmt.Sprintf("serializer: warning %q cannot be rendered to a tree", w.String()))
}

// Item renders a top-level item.
func Item(item ast.Item) tree.Tree {
	switch it := item.(type) {
	case *ast.Alias:
		return Alias(it)
	case *ast.Assignment:
		return Assignment(it)
	case *ast.Comment:
		return Comment(it)
	case *ast.Recipe:
		return Recipe(it)
	case *ast.Set:
		return Set(it)
	}
	panic(fmt.Sprintf("serializer: unhandled item type %T", item))
}

// Alias renders (alias NAME TARGET).
func Alias(a *ast.Alias) tree.Tree {
	return tree.NewList(tree.NewAtom("alias"), name(a.Name), name(a.Target))
}

// Assignment renders (assignment NAME VALUE), with "# export" after the head
// atom when the variable is exported.
func Assignment(a *ast.Assignment) tree.Tree {
	t := tree.NewList(tree.NewAtom("assignment"))
	if a.Export {
		t = append(t, tree.NewAtom("#"), tree.NewAtom("export"))
	}
	return append(t, name(a.Name), Expression(a.Value))
}

// Comment renders (comment "TEXT").
func Comment(c *ast.Comment) tree.Tree {
	return tree.NewList(tree.NewAtom("comment"), tree.Quoted(c.Text))
}

// Expression renders any expression.
func Expression(expr ast.Expression) tree.Tree {
	switch e := expr.(type) {
	case *ast.Concatenation:
		return tree.NewList(tree.NewAtom("+"), Expression(e.LHS), Expression(e.RHS))
	case *ast.Conditional:
		return tree.NewList(
			tree.NewAtom("if"),
			Expression(e.LHS),
			tree.NewAtom(e.Operator.String()),
			Expression(e.RHS),
			Expression(e.Then),
			Expression(e.Otherwise),
		)
	case *ast.Call:
		return Call(e.Thunk)
	case *ast.Variable:
		return name(e.Name)
	case *ast.StringLiteral:
		return tree.Quoted(e.Cooked)
	case *ast.Backtick:
		return tree.NewList(tree.NewAtom("backtick"), tree.Quoted(e.Contents))
	case *ast.Group:
		return tree.NewList(Expression(e.Contents))
	case *ast.Join:
		if e.LHS == nil {
			return tree.NewList(tree.NewAtom("/"), Expression(e.RHS))
		}
		return tree.NewList(tree.NewAtom("/"), Expression(e.LHS), Expression(e.RHS))
	}
	panic(fmt.Sprintf("serializer: unhandled expression type %T", expr))
}

// Call renders (call NAME ARG...). The arguments follow the thunk's shape: an
// absent optional argument of a UnaryOpt call is left out.
func Call(thunk ast.Thunk) tree.Tree {
	t := tree.NewList(tree.NewAtom("call"))

	switch th := thunk.(type) {
	case *ast.Nullary:
		t = append(t, name(th.Name))
	case *ast.Unary:
		t = append(t, name(th.Name), Expression(th.Arg))
	case *ast.UnaryOpt:
		t = append(t, name(th.Name), Expression(th.Arg))
		if th.Opt != nil {
			t = append(t, Expression(th.Opt))
		}
	case *ast.Binary:
		t = append(t, name(th.Name), Expression(th.Args[0]), Expression(th.Args[1]))
	case *ast.BinaryPlus:
		t = append(t, name(th.Name), Expression(th.Args[0]), Expression(th.Args[1]))
		for _, arg := range th.Rest {
			t = append(t, Expression(arg))
		}
	case *ast.Ternary:
		t = append(t, name(th.Name), Expression(th.Args[0]), Expression(th.Args[1]), Expression(th.Args[2]))
	default:
		panic(fmt.Sprintf("serializer: unhandled thunk type %T", thunk))
	}

	return t
}

// Recipe renders
//
//	(recipe [# quiet] ["DOC"] NAME [(params ...)] [(deps ...)] [(sups ...)] [(body ...)])
//
// where each bracketed part is present only when it has content.
func Recipe(r *ast.Recipe) tree.Tree {
	t := tree.NewList(tree.NewAtom("recipe"))

	if r.Quiet {
		t = append(t, tree.NewAtom("#"), tree.NewAtom("quiet"))
	}

	if r.Doc != nil {
		t = append(t, tree.Quoted(*r.Doc))
	}

	t = append(t, name(r.Name))

	if len(r.Parameters) > 0 {
		params := tree.NewList(tree.NewAtom("params"))
		for _, param := range r.Parameters {
			if prefix, ok := param.Kind.Prefix(); ok {
				params = append(params, tree.NewAtom(prefix))
			}
			params = append(params, Parameter(param))
		}
		t = append(t, params)
	}

	if priors := r.PriorDependencies(); len(priors) > 0 {
		t = append(t, dependencies("deps", priors))
	}

	if subsequents := r.SubsequentDependencies(); len(subsequents) > 0 {
		t = append(t, dependencies("sups", subsequents))
	}

	if len(r.Body) > 0 {
		body := tree.NewList(tree.NewAtom("body"))
		for _, line := range r.Body {
			body = append(body, Line(line))
		}
		t = append(t, body)
	}

	return t
}

func dependencies(head string, deps []*ast.Dependency) tree.Tree {
	t := tree.NewList(tree.NewAtom(head))
	for _, dep := range deps {
		t = tree.Push(t, Dependency(dep))
	}
	return t
}

// Dependency renders (RECIPE ARG...).
func Dependency(d *ast.Dependency) tree.Tree {
	t := tree.NewList(name(d.Recipe))
	for _, arg := range d.Arguments {
		t = tree.Push(t, Expression(arg))
	}
	return t
}

// Parameter renders (NAME) or (NAME DEFAULT). The kind prefix is emitted by
// the enclosing recipe, not here.
func Parameter(p *ast.Parameter) tree.Tree {
	if p.Default == nil {
		return tree.NewList(name(p.Name))
	}
	return tree.NewList(name(p.Name), Expression(p.Default))
}

// Line renders a body line as the list of its fragments. An empty line is an
// empty list.
func Line(l *ast.Line) tree.Tree {
	t := make(tree.List, 0, len(l.Fragments))
	for _, fragment := range l.Fragments {
		t = append(t, Fragment(fragment))
	}
	return t
}

// Fragment renders text as a quoted atom and an interpolation as a
// one-element list holding its expression.
func Fragment(f ast.Fragment) tree.Tree {
	switch fr := f.(type) {
	case *ast.Text:
		return tree.Quoted(fr.Lexeme)
	case *ast.Interpolation:
		return tree.NewList(Expression(fr.Expression))
	}
	panic(fmt.Sprintf("serializer: unhandled fragment type %T", f))
}

// Set renders (set NAME VALUE...) with dashes in NAME replaced by
// underscores.
func Set(s *ast.Set) tree.Tree {
	t := tree.NewList(tree.NewAtom("set"), tree.NewAtom(strings.ReplaceAll(s.Name.Lexeme, "-", "_")))

	switch v := s.Value.(type) {
	case *ast.BoolSetting:
		t = append(t, tree.NewAtom(strconv.FormatBool(v.Value)))
	case *ast.ShellSetting:
		t = append(t, tree.Quoted(v.Command))
		for _, arg := range v.Arguments {
			t = append(t, tree.Quoted(arg))
		}
	case *ast.StringSetting:
		t = append(t, tree.Quoted(v.Value))
	default:
		panic(fmt.Sprintf("serializer: unhandled setting type %T", s.Value))
	}

	return t
}

func name(n ast.Name) tree.Atom {
	return tree.NewAtom(n.Lexeme)
}

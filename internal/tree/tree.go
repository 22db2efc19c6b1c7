package tree

import "strings"

// Tree is either an Atom or a List.
type Tree interface {
	// String renders the tree in parenthesized prefix form.
	String() string
	write(sb *strings.Builder)
}

// Atom is a leaf.
type Atom string

// List is an internal node. A nil List and an empty List are the same tree.
type List []Tree

// NewAtom returns a leaf holding text.
func NewAtom(text string) Atom {
	return Atom(text)
}

// NewList returns an internal node holding children in order.
func NewList(children ...Tree) List {
	return List(children)
}

// Quoted returns an atom holding text wrapped in double quotes. The text is
// not escaped.
func Quoted(text string) Atom {
	return Atom(`"` + text + `"`)
}

// Push returns a new list holding t's children followed by child. Pushing
// onto an Atom promotes it to a List whose first element is that atom. t is
// never modified, so one base may be pushed onto more than once.
func Push(t Tree, child Tree) List {
	switch node := t.(type) {
	case List:
		return append(clone(node, 1), child)
	case Atom:
		return List{node, child}
	default:
		panic("tree: Push on nil tree")
	}
}

// Extend appends every child in order. Like Push, an Atom receiver is
// promoted to a List and t is never modified; unlike Push, the result is a
// List even when children is empty.
func Extend(t Tree, children ...Tree) List {
	var head List
	switch node := t.(type) {
	case List:
		head = node
	case Atom:
		head = List{node}
	default:
		panic("tree: Extend on nil tree")
	}
	return append(clone(head, len(children)), children...)
}

// clone copies l into a fresh list with room for extra more children.
func clone(l List, extra int) List {
	out := make(List, len(l), len(l)+extra)
	copy(out, l)
	return out
}

// Equal reports whether a and b have the same shape and the same atom texts.
func Equal(a, b Tree) bool {
	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

func (a Atom) String() string {
	return string(a)
}

func (l List) String() string {
	var sb strings.Builder
	l.write(&sb)
	return sb.String()
}

func (a Atom) write(sb *strings.Builder) {
	sb.WriteString(string(a))
}

func (l List) write(sb *strings.Builder) {
	sb.WriteByte('(')
	for i, child := range l {
		if i > 0 {
			sb.WriteByte(' ')
		}
		child.write(sb)
	}
	sb.WriteByte(')')
}

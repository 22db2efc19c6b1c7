package tree

import (
	"fmt"
	"strings"
)

// SyntaxError reports a malformed printed tree. Offset is a byte offset into
// the input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("tree: offset %d: %s", e.Offset, e.Msg)
}

// Parse reads one tree in the form produced by String. Atoms are delimited by
// whitespace and parentheses. An atom starting with a double quote runs to
// the next double quote that is followed by whitespace, a parenthesis or the
// end of input, so quoted atoms may contain spaces and parentheses.
func Parse(text string) (Tree, error) {
	r := &reader{src: text}
	r.skipSpace()
	if r.eof() {
		return nil, &SyntaxError{Offset: r.pos, Msg: "empty input"}
	}
	t, err := r.tree()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.eof() {
		return nil, &SyntaxError{Offset: r.pos, Msg: "unexpected trailing input"}
	}
	return t, nil
}

// MustParse is like Parse but panics on error. It is meant for expected
// values in tests.
func MustParse(text string) Tree {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

type reader struct {
	src string
	pos int
}

func (r *reader) eof() bool {
	return r.pos >= len(r.src)
}

func (r *reader) skipSpace() {
	for !r.eof() && isSpace(r.src[r.pos]) {
		r.pos++
	}
}

func (r *reader) tree() (Tree, error) {
	switch r.src[r.pos] {
	case '(':
		return r.list()
	case ')':
		return nil, &SyntaxError{Offset: r.pos, Msg: "unbalanced ')'"}
	case '"':
		return r.quoted()
	default:
		return r.atom(), nil
	}
}

func (r *reader) list() (Tree, error) {
	start := r.pos
	r.pos++
	l := List{}
	for {
		r.skipSpace()
		if r.eof() {
			return nil, &SyntaxError{Offset: start, Msg: "unclosed '('"}
		}
		if r.src[r.pos] == ')' {
			r.pos++
			return l, nil
		}
		child, err := r.tree()
		if err != nil {
			return nil, err
		}
		l = append(l, child)
	}
}

func (r *reader) quoted() (Tree, error) {
	start := r.pos
	for i := start + 1; i < len(r.src); i++ {
		if r.src[i] != '"' {
			continue
		}
		if i+1 == len(r.src) || isDelimiter(r.src[i+1]) {
			r.pos = i + 1
			return Atom(r.src[start:r.pos]), nil
		}
	}
	return nil, &SyntaxError{Offset: start, Msg: "unterminated quoted atom"}
}

func (r *reader) atom() Tree {
	start := r.pos
	for !r.eof() && !isDelimiter(r.src[r.pos]) {
		r.pos++
	}
	return Atom(r.src[start:r.pos])
}

func isSpace(c byte) bool {
	return strings.IndexByte(" \t\r\n", c) >= 0
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == '(' || c == ')'
}

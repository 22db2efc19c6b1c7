// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the structural checks a Program must pass before it is
// handed to any consumer. A parser calls Validate once, right after building
// the Program; consumers may then rely on every invariant checked here.
package ast

import (
	"errors"
	"fmt"
)

// ValidationError describes one broken invariant. Path locates the offending
// node, e.g. `recipe "build" > dependency 2`.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

type validator struct {
	errs []error
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Path: path, Msg: fmt.Sprintf(format, args...)})
}

// Validate checks the structural invariants of the program and returns every
// violation found, joined with errors.Join. Warnings are not violations.
func (p *Program) Validate() error {
	v := &validator{}
	for i, item := range p.Items {
		v.item(fmt.Sprintf("item %d", i), item)
	}
	return errors.Join(v.errs...)
}

func (v *validator) item(path string, item Item) {
	switch it := item.(type) {
	case *Alias:
		if it == nil {
			v.fail(path, "nil alias")
			return
		}
		path = fmt.Sprintf("alias %q", it.Name.Lexeme)
		v.name(path, "name", it.Name)
		v.name(path, "target", it.Target)
	case *Assignment:
		if it == nil {
			v.fail(path, "nil assignment")
			return
		}
		path = fmt.Sprintf("assignment %q", it.Name.Lexeme)
		v.name(path, "name", it.Name)
		v.expression(path+" > value", it.Value)
	case *Comment:
		if it == nil {
			v.fail(path, "nil comment")
		}
	case *Recipe:
		if it == nil {
			v.fail(path, "nil recipe")
			return
		}
		v.recipe(it)
	case *Set:
		if it == nil {
			v.fail(path, "nil set")
			return
		}
		v.set(it)
	case nil:
		v.fail(path, "nil item")
	default:
		v.fail(path, "unknown item type %T", item)
	}
}

func (v *validator) name(path, what string, n Name) {
	if n.Lexeme == "" {
		v.fail(path, "empty %s", what)
	}
}

func (v *validator) recipe(r *Recipe) {
	path := fmt.Sprintf("recipe %q", r.Name.Lexeme)
	v.name(path, "name", r.Name)

	if r.Priors < 0 || r.Priors > len(r.Dependencies) {
		v.fail(path, "priors %d out of range for %d dependencies", r.Priors, len(r.Dependencies))
	}

	for i, param := range r.Parameters {
		ppath := fmt.Sprintf("%s > parameter %d", path, i)
		if param == nil {
			v.fail(ppath, "nil parameter")
			continue
		}
		v.name(ppath, "name", param.Name)
		if _, ok := param.Kind.Prefix(); !ok && param.Kind != Singular {
			v.fail(ppath, "unknown parameter kind %d", param.Kind)
		}
		if param.Default != nil {
			v.expression(ppath+" > default", param.Default)
		}
	}

	for i, dep := range r.Dependencies {
		dpath := fmt.Sprintf("%s > dependency %d", path, i)
		if dep == nil {
			v.fail(dpath, "nil dependency")
			continue
		}
		v.name(dpath, "recipe", dep.Recipe)
		for j, arg := range dep.Arguments {
			v.expression(fmt.Sprintf("%s > argument %d", dpath, j), arg)
		}
	}

	for i, line := range r.Body {
		lpath := fmt.Sprintf("%s > line %d", path, i)
		if line == nil {
			v.fail(lpath, "nil line")
			continue
		}
		for j, fragment := range line.Fragments {
			fpath := fmt.Sprintf("%s > fragment %d", lpath, j)
			switch f := fragment.(type) {
			case *Text:
				if f == nil {
					v.fail(fpath, "nil text")
				}
			case *Interpolation:
				if f == nil {
					v.fail(fpath, "nil interpolation")
					continue
				}
				v.expression(fpath, f.Expression)
			case nil:
				v.fail(fpath, "nil fragment")
			default:
				v.fail(fpath, "unknown fragment type %T", fragment)
			}
		}
	}
}

func (v *validator) set(s *Set) {
	path := fmt.Sprintf("set %q", s.Name.Lexeme)
	v.name(path, "name", s.Name)
	if s.Value == nil || isNilSetting(s.Value) {
		v.fail(path, "nil setting")
		return
	}

	kind := s.Value.SettingKind()
	if !kind.Valid() {
		v.fail(path, "unknown setting kind %d", kind)
		return
	}

	var class SettingClass
	switch s.Value.(type) {
	case *BoolSetting:
		class = BoolClass
	case *ShellSetting:
		class = ShellClass
	case *StringSetting:
		class = StringClass
	default:
		v.fail(path, "unknown setting type %T", s.Value)
		return
	}
	if class != kind.Class() {
		v.fail(path, "setting %s cannot hold a %T", kind.Keyword(), s.Value)
	}
}

func (v *validator) expression(path string, expr Expression) {
	if expr != nil && isNilExpression(expr) {
		v.fail(path, "nil %T expression", expr)
		return
	}
	switch e := expr.(type) {
	case *Concatenation:
		v.expression(path+" > lhs", e.LHS)
		v.expression(path+" > rhs", e.RHS)
	case *Conditional:
		if !e.Operator.Valid() {
			v.fail(path, "unknown conditional operator %d", e.Operator)
		}
		v.expression(path+" > lhs", e.LHS)
		v.expression(path+" > rhs", e.RHS)
		v.expression(path+" > then", e.Then)
		v.expression(path+" > otherwise", e.Otherwise)
	case *Call:
		v.thunk(path, e.Thunk)
	case *Variable:
		v.name(path, "variable name", e.Name)
	case *StringLiteral, *Backtick:
	case *Group:
		v.expression(path+" > group", e.Contents)
	case *Join:
		if e.LHS != nil {
			v.expression(path+" > lhs", e.LHS)
		}
		v.expression(path+" > rhs", e.RHS)
	case nil:
		v.fail(path, "nil expression")
	default:
		v.fail(path, "unknown expression type %T", expr)
	}
}

func (v *validator) thunk(path string, t Thunk) {
	if t == nil || isNilThunk(t) {
		v.fail(path, "call without thunk")
		return
	}
	path = fmt.Sprintf("%s > call %q", path, t.FunctionName().Lexeme)
	v.name(path, "function name", t.FunctionName())

	var required []Expression
	switch th := t.(type) {
	case *Nullary:
	case *Unary:
		required = []Expression{th.Arg}
	case *UnaryOpt:
		required = []Expression{th.Arg}
		if th.Opt != nil {
			v.expression(path+" > argument 1", th.Opt)
		}
	case *Binary:
		required = th.Args[:]
	case *BinaryPlus:
		required = append(th.Args[:], th.Rest...)
	case *Ternary:
		required = th.Args[:]
	default:
		v.fail(path, "unknown thunk type %T", t)
		return
	}
	for i, arg := range required {
		v.expression(fmt.Sprintf("%s > argument %d", path, i), arg)
	}
}

// The helpers below catch typed nil pointers, which a nil case in a type
// switch does not match.

func isNilSetting(s Setting) bool {
	switch st := s.(type) {
	case *BoolSetting:
		return st == nil
	case *ShellSetting:
		return st == nil
	case *StringSetting:
		return st == nil
	}
	return false
}

func isNilExpression(expr Expression) bool {
	switch e := expr.(type) {
	case *Concatenation:
		return e == nil
	case *Conditional:
		return e == nil
	case *Call:
		return e == nil
	case *Variable:
		return e == nil
	case *StringLiteral:
		return e == nil
	case *Backtick:
		return e == nil
	case *Group:
		return e == nil
	case *Join:
		return e == nil
	}
	return false
}

func isNilThunk(t Thunk) bool {
	switch th := t.(type) {
	case *Nullary:
		return th == nil
	case *Unary:
		return th == nil
	case *UnaryOpt:
		return th == nil
	case *Binary:
		return th == nil
	case *BinaryPlus:
		return th == nil
	case *Ternary:
		return th == nil
	}
	return false
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the expression language: string literals, variables,
// concatenation, path joins, conditionals, backticks, groups and calls.
//
// Calls carry a Thunk, one variant per arity shape a built-in function may
// have. A function that takes one required and one optional argument is a
// different shape from one that takes exactly two, and a variadic function
// keeps its two required arguments apart from the rest, so every consumer
// sees the call exactly as the function table declared it.
package ast

// Expression is a value-producing node. The concrete types are
// *Concatenation, *Conditional, *Call, *Variable, *StringLiteral, *Backtick,
// *Group and *Join.
type Expression interface {
	expression()
}

// Concatenation is `LHS + RHS`.
type Concatenation struct {
	LHS Expression
	RHS Expression
}

// Conditional is `if LHS OP RHS { Then } else { Otherwise }`.
type Conditional struct {
	LHS       Expression
	RHS       Expression
	Then      Expression
	Otherwise Expression
	Operator  ConditionalOperator
}

// Call is a built-in function invocation.
type Call struct {
	Thunk Thunk
}

// Variable is a reference to an assignment or a recipe parameter.
type Variable struct {
	Name Name
}

// StringLiteral is a quoted string. Raw is the source lexeme including its
// delimiters; Cooked is the value after escape processing.
type StringLiteral struct {
	Raw    string
	Cooked string
}

// Backtick is a shell command whose standard output becomes the value.
type Backtick struct {
	Contents string
}

// Group is a parenthesized expression.
type Group struct {
	Contents Expression
}

// Join is the path-join operator `LHS / RHS`. A nil LHS is a leading slash,
// which joins RHS onto the root.
type Join struct {
	LHS Expression
	RHS Expression
}

func (*Concatenation) expression() {}
func (*Conditional) expression()   {}
func (*Call) expression()          {}
func (*Variable) expression()      {}
func (*StringLiteral) expression() {}
func (*Backtick) expression()      {}
func (*Group) expression()         {}
func (*Join) expression()          {}

// ConditionalOperator compares the two sides of a Conditional.
type ConditionalOperator int

const (
	Equality ConditionalOperator = iota
	Inequality
	RegexMatch
)

// String returns the operator as written in source.
func (op ConditionalOperator) String() string {
	switch op {
	case Equality:
		return "=="
	case Inequality:
		return "!="
	case RegexMatch:
		return "=~"
	default:
		return "?"
	}
}

// Valid reports whether op is one of the defined operators.
func (op ConditionalOperator) Valid() bool {
	return op >= Equality && op <= RegexMatch
}

// Thunk is a function call with its arguments already arranged by arity.
// The concrete types are *Nullary, *Unary, *UnaryOpt, *Binary, *BinaryPlus
// and *Ternary.
type Thunk interface {
	FunctionName() Name
	// Arguments returns the arguments in call order. Absent optional arguments
	// are skipped.
	Arguments() []Expression
	thunk()
}

// Nullary is a call with no arguments, such as `arch()`.
type Nullary struct {
	Name Name
}

// Unary is a call with exactly one argument.
type Unary struct {
	Name Name
	Arg  Expression
}

// UnaryOpt is a call with one required argument and one optional argument.
// Opt is nil when the optional argument was not given.
type UnaryOpt struct {
	Name Name
	Arg  Expression
	Opt  Expression
}

// Binary is a call with exactly two arguments.
type Binary struct {
	Name Name
	Args [2]Expression
}

// BinaryPlus is a call with at least two arguments.
type BinaryPlus struct {
	Name Name
	Args [2]Expression
	Rest []Expression
}

// Ternary is a call with exactly three arguments.
type Ternary struct {
	Name Name
	Args [3]Expression
}

func (t *Nullary) FunctionName() Name    { return t.Name }
func (t *Unary) FunctionName() Name      { return t.Name }
func (t *UnaryOpt) FunctionName() Name   { return t.Name }
func (t *Binary) FunctionName() Name     { return t.Name }
func (t *BinaryPlus) FunctionName() Name { return t.Name }
func (t *Ternary) FunctionName() Name    { return t.Name }

func (t *Nullary) Arguments() []Expression { return nil }
func (t *Unary) Arguments() []Expression   { return []Expression{t.Arg} }

func (t *UnaryOpt) Arguments() []Expression {
	if t.Opt == nil {
		return []Expression{t.Arg}
	}
	return []Expression{t.Arg, t.Opt}
}

func (t *Binary) Arguments() []Expression { return []Expression{t.Args[0], t.Args[1]} }

func (t *BinaryPlus) Arguments() []Expression {
	args := make([]Expression, 0, 2+len(t.Rest))
	args = append(args, t.Args[0], t.Args[1])
	return append(args, t.Rest...)
}

func (t *Ternary) Arguments() []Expression { return []Expression{t.Args[0], t.Args[1], t.Args[2]} }

func (*Nullary) thunk()    {}
func (*Unary) thunk()      {}
func (*UnaryOpt) thunk()   {}
func (*Binary) thunk()     {}
func (*BinaryPlus) thunk() {}
func (*Ternary) thunk()    {}

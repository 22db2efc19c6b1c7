// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Name, the identifier type shared by every node that
// refers to something by name.
package ast

import "fmt"

// Name is an identifier lexeme together with the position at which it was
// found. Line and Column are 1-based; zero means the position is unknown, as
// it is for nodes built by hand in tests.
type Name struct {
	Lexeme string
	Line   int
	Column int
}

// NewName returns a Name with no position information.
func NewName(lexeme string) Name {
	return Name{Lexeme: lexeme}
}

// String returns the lexeme.
func (n Name) String() string {
	return n.Lexeme
}

// Pos renders the position as "line:column", or "?" when it is unknown.
func (n Name) Pos() string {
	if n.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", n.Line, n.Column)
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Program root and the top-level Item variants.
package ast

// Program is a whole recipe file.
type Program struct {
	Items    []Item
	Warnings []Warning
}

// Item is one top-level declaration of a Program. The concrete types are
// *Alias, *Assignment, *Comment, *Recipe and *Set.
type Item interface {
	item()
}

// Alias makes Name another way to invoke the recipe called Target.
type Alias struct {
	Name   Name
	Target Name
}

// Assignment binds a variable. Exported variables are also passed to recipe
// commands as environment variables.
type Assignment struct {
	Export bool
	Name   Name
	Value  Expression
}

// Comment is a top-level comment line. Text excludes the leading marker.
type Comment struct {
	Text string
}

// Set is a `set NAME := VALUE` settings directive.
type Set struct {
	Name  Name
	Value Setting
}

func (*Alias) item()      {}
func (*Assignment) item() {}
func (*Comment) item()    {}
func (*Recipe) item()     {}
func (*Set) item()        {}

// Warning is a non-fatal problem the parser found. Warnings are reported to
// the user and are never part of a program's canonical tree.
type Warning struct {
	Kind    string
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Kind == "" {
		return w.Message
	}
	return w.Kind + ": " + w.Message
}

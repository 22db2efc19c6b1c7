// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Recipe item and its parts: parameters, dependencies
// and body lines.
//
// Dependencies are kept in a single slice in source order. The recipe header
// `build: setup lint && notify` stores [setup lint notify] with Priors = 2:
// setup and lint run before the body, notify runs after it.
package ast

// Recipe is a named, parameterized list of shell command lines.
type Recipe struct {
	Quiet        bool
	Doc          *string
	Name         Name
	Parameters   []*Parameter
	Dependencies []*Dependency
	Priors       int
	Body         []*Line
}

// PriorDependencies returns the dependencies that run before the body.
func (r *Recipe) PriorDependencies() []*Dependency {
	return r.Dependencies[:r.priors()]
}

// SubsequentDependencies returns the dependencies that run after the body.
func (r *Recipe) SubsequentDependencies() []*Dependency {
	return r.Dependencies[r.priors():]
}

// priors clamps Priors into range so the accessors never panic on a recipe
// that has not been validated.
func (r *Recipe) priors() int {
	switch {
	case r.Priors < 0:
		return 0
	case r.Priors > len(r.Dependencies):
		return len(r.Dependencies)
	default:
		return r.Priors
	}
}

// Dependency is a reference to another recipe, with the arguments to invoke
// it with.
type Dependency struct {
	Recipe    Name
	Arguments []Expression
}

// ParameterKind distinguishes ordinary parameters from variadic and exported
// ones.
type ParameterKind int

const (
	// Singular takes exactly one argument.
	Singular ParameterKind = iota
	// Star takes zero or more arguments.
	Star
	// Plus takes one or more arguments.
	Plus
	// Export takes one argument and exports it to the environment.
	Export
)

// Prefix returns the sigil written before a parameter of this kind. Singular
// parameters have none.
func (k ParameterKind) Prefix() (string, bool) {
	switch k {
	case Star:
		return "*", true
	case Plus:
		return "+", true
	case Export:
		return "$", true
	default:
		return "", false
	}
}

// String returns a lower-case name for the kind.
func (k ParameterKind) String() string {
	switch k {
	case Singular:
		return "singular"
	case Star:
		return "star"
	case Plus:
		return "plus"
	case Export:
		return "export"
	default:
		return "unknown"
	}
}

// ParseParameterKind is the inverse of ParameterKind.String. The empty string
// is Singular.
func ParseParameterKind(s string) (ParameterKind, bool) {
	switch s {
	case "", "singular":
		return Singular, true
	case "star":
		return Star, true
	case "plus":
		return Plus, true
	case "export":
		return Export, true
	}
	return Singular, false
}

// Parameter is a recipe parameter. Default is nil when the parameter has no
// default value.
type Parameter struct {
	Name    Name
	Default Expression
	Kind    ParameterKind
}

// Line is one line of a recipe body.
type Line struct {
	Fragments []Fragment
}

// Fragment is a piece of a body line: either *Text or *Interpolation.
type Fragment interface {
	fragment()
}

// Text is literal command text, exactly as it appears in the source.
type Text struct {
	Lexeme string
}

// Interpolation is a `{{ expression }}` substitution.
type Interpolation struct {
	Expression Expression
}

func (*Text) fragment()          {}
func (*Interpolation) fragment() {}

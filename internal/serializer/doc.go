// Package serializer renders an ast.Program, or any node inside one, to its
// canonical tree.
//
// Rendering is pure and deterministic: the same node always produces the
// same tree, nothing in the input is modified, and the returned tree shares
// no memory with it. Every node kind has exactly one rendering, with one
// exception: warnings. They are reported to users and never compared, so a
// program that still carries warnings cannot be rendered. Program returns an
// error wrapping ErrWarning in that case, and Warning panics when called
// directly.
//
// Atom texts are source lexemes, except where a node holds cooked text
// (string literals, backticks, docs, setting payloads), which is rendered
// between literal double quotes without further escaping.
package serializer

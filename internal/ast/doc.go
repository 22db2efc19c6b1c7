// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ast provides the Go representation of a parsed recipe file: the
// variable assignments, aliases, settings, comments and recipes a user wrote,
// in the order they wrote them.
//
// # Core Concepts
//
//   - Program: the root container. It holds every Item in source order and the
//     warnings the parser collected while building it.
//
//   - Item: one top-level declaration. It is a closed set of variants (Alias,
//     Assignment, Comment, Recipe, Set); the unexported marker method keeps
//     other packages from adding new ones.
//
//   - Expression: the value language used by assignments, parameter defaults,
//     dependency arguments and recipe-body interpolations. Function calls are
//     split by arity into Thunk variants so that a consumer switching over them
//     has one case per call shape.
//
//   - Recipe: a named unit of work. Its dependencies are stored as one ordered
//     slice plus a Priors count; the first Priors entries must finish before the
//     body runs and the remainder run after it.
//
// Values in this package are built once by a parser and never mutated. Text
// fields hold the lexeme exactly as it appeared in the source, except for the
// cooked contents of string literals, backticks, docs and setting payloads,
// which have already had their escapes processed.
package ast

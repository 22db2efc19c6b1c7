// Package tree provides the canonical tree form of a program: a node is
// either an Atom of text or an ordered List of child nodes.
//
// Trees are compared structurally with Equal. For human-readable output they
// print as parenthesized prefix expressions, e.g.
//
//	(justfile (alias b build) (recipe build (sups (setup))))
//
// and Parse reads that printed form back.
package tree

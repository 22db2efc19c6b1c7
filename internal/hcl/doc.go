// Package hcl reads and writes recipe documents: HCL files that describe an
// ast.Program block by block. It implements the config.Loader interface, so
// the rest of the application never touches HCL directly.
//
// Each top-level block becomes one item, in source order:
//
//	alias "b" { target = build }
//	assignment "version" {
//	  export = true
//	  value  = "1." + minor
//	}
//	comment "text" {}
//	set "shell" { value = ["bash", "-c"] }
//	recipe "build" {
//	  quiet      = true
//	  doc        = "Build everything"
//	  depends_on = [setup, fetch("x")]
//	  subsequent = [notify]
//	  body       = ["cc ${target}"]
//	  parameter "target" {
//	    kind    = "star"
//	    default = "debug"
//	  }
//	}
//	warning "deprecated" { message = "..." }
//
// Expressions use HCL syntax: quoted strings, bare names, calls to built-in
// functions, `+` for concatenation, `/` for path joins, parentheses for
// groups and `l == r ? a : b` (or `!=`) for conditionals. A few reserved
// call names spell out what HCL operators cannot:
//
//	backtick("cmd")                  shell capture
//	slash(x)                         leading path join
//	slash(a, b)                      path join
//	concat(a, b)                     concatenation
//	matches(l, r) ? a : b            regex-match conditional
//	conditional(l, "==", r, a, b)    conditional with any operator
//
// Recipe body lines are HCL templates: literal text becomes text fragments
// and each ${...} becomes an interpolation.
package hcl

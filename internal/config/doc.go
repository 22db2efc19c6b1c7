// Package config defines the format-agnostic boundary between recipe
// documents on disk and the rest of the application. The app package only
// sees ast.Program values produced by a Loader; concrete loaders, such as
// the HCL one, live in separate packages.
package config

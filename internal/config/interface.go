package config

import (
	"context"

	"github.com/vk/justtree/internal/ast"
)

// Loader is the interface for a format-specific recipe document loader.
type Loader interface {
	// Load reads the document at path and translates it into a validated
	// program.
	Load(ctx context.Context, path string) (*ast.Program, error)
}

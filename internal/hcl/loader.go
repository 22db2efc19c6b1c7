package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/justtree/internal/ast"
	"github.com/vk/justtree/internal/config"
	"github.com/vk/justtree/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new recipe document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// rootSchema lists the top-level blocks of a recipe document.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "alias", LabelNames: []string{"name"}},
		{Type: "assignment", LabelNames: []string{"name"}},
		{Type: "comment", LabelNames: []string{"text"}},
		{Type: "set", LabelNames: []string{"name"}},
		{Type: "recipe", LabelNames: []string{"name"}},
		{Type: "warning", LabelNames: []string{"kind"}},
	},
}

// Load reads the recipe document at path.
func (l *Loader) Load(ctx context.Context, path string) (*ast.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe document %s: %w", path, err)
	}
	return l.LoadBytes(ctx, src, path)
}

// LoadBytes decodes a recipe document held in memory. filename is used only
// for diagnostics.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*ast.Program, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding recipe document.", "file", filename, "bytes", len(src))

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	d := &decoder{src: src}
	program := &ast.Program{}
	for _, block := range content.Blocks {
		if block.Type == "warning" {
			program.Warnings = append(program.Warnings, d.warning(block))
			continue
		}
		if item := d.item(block); item != nil {
			program.Items = append(program.Items, item)
		}
	}
	if d.diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, d.diags)
	}

	if err := program.Validate(); err != nil {
		return nil, fmt.Errorf("invalid program in %s: %w", filename, err)
	}

	logger.Debug("Recipe document decoded.", "file", filename, "items", len(program.Items), "warnings", len(program.Warnings))
	return program, nil
}

// decoder accumulates diagnostics while translating one file. src is the
// file's bytes, used to recover the raw text of string literals.
type decoder struct {
	src   []byte
	diags hcl.Diagnostics
}

func (d *decoder) errorf(subject hcl.Range, summary, format string, args ...any) {
	d.diags = append(d.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  subject.Ptr(),
	})
}

func (d *decoder) extend(diags hcl.Diagnostics) bool {
	d.diags = append(d.diags, diags...)
	return !diags.HasErrors()
}

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vk/justtree/internal/ctxlog"
	"github.com/vk/justtree/internal/fsutil"
	"github.com/vk/justtree/internal/golden"
	"github.com/vk/justtree/internal/serializer"
	"github.com/vk/justtree/internal/tree"
)

// DocumentExtension is the suffix of recipe documents.
const DocumentExtension = ".hcl"

// ErrNoDocuments is returned when the configured path holds no recipe
// documents.
var ErrNoDocuments = errors.New("no recipe documents found")

// ErrGoldenMismatch is returned by Run in check mode when at least one
// rendering differs from its golden file.
var ErrGoldenMismatch = errors.New("golden files out of date")

type jsonRecord struct {
	Path string    `json:"path"`
	Tree tree.Tree `json:"tree"`
}

// Run renders every recipe document under the configured path. A document
// that fails does not stop the others; all failures are returned joined.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "path", a.config.Path, "format", a.config.Format)

	paths, err := fsutil.FindFilesByExtension(a.config.Path, DocumentExtension)
	if err != nil {
		return fmt.Errorf("failed to discover recipe documents: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w under %s", ErrNoDocuments, a.config.Path)
	}
	a.logger.Debug("Recipe documents discovered.", "count", len(paths))

	var errs []error
	mismatches := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		rendered, err := a.render(ctx, path)
		if err != nil {
			a.logger.Error("Failed to render recipe document.", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}

		if err := a.emit(ctx, path, rendered); err != nil {
			var mismatch *golden.MismatchError
			if errors.As(err, &mismatch) {
				mismatches++
			}
			errs = append(errs, err)
		}
	}

	if mismatches > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d", ErrGoldenMismatch, mismatches, len(paths)))
	}
	a.logger.Debug("App.Run method finished.", "documents", len(paths), "failures", len(errs))
	return errors.Join(errs...)
}

// render loads one document and serializes its program.
func (a *App) render(ctx context.Context, path string) (tree.Tree, error) {
	program, err := a.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	rendered, err := serializer.Program(program)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rendered, nil
}

// emit prints, checks or updates one rendering depending on the mode.
func (a *App) emit(ctx context.Context, path string, rendered tree.Tree) error {
	switch {
	case a.config.Check:
		return golden.Compare(ctx, golden.PathFor(path), rendered)
	case a.config.Update:
		if err := golden.Update(ctx, golden.PathFor(path), rendered); err != nil {
			return err
		}
		a.logger.Info("Golden file updated.", "path", golden.PathFor(path))
		return nil
	case a.config.Format == FormatJSON:
		data, err := json.Marshal(jsonRecord{Path: path, Tree: rendered})
		if err != nil {
			return fmt.Errorf("failed to encode %s as JSON: %w", path, err)
		}
		_, err = fmt.Fprintf(a.outW, "%s\n", data)
		return err
	default:
		_, err := fmt.Fprintf(a.outW, "%s: %s\n", path, rendered)
		return err
	}
}

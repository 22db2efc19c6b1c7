// Package golden compares rendered trees against golden files kept next to
// the recipe documents they were rendered from.
//
// A golden file holds one tree in printed form, usually as produced by
// tree.Indent. A file whose text equals the rendering matches outright;
// otherwise both sides are parsed with tree.Parse and compared structurally,
// so layout and whitespace between children do not matter.
package golden

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/vk/justtree/internal/ctxlog"
	"github.com/vk/justtree/internal/fsutil"
	"github.com/vk/justtree/internal/tree"
)

// Extension is the suffix of golden files.
const Extension = ".tree"

// ErrMissing is returned by Compare when the golden file does not exist.
var ErrMissing = errors.New("golden file missing")

// MismatchError reports a rendering that differs from its golden file.
type MismatchError struct {
	Path string
	Diff string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s does not match the rendered tree:\n%s", e.Path, e.Diff)
}

// PathFor returns the golden file path for a recipe document.
func PathFor(document string) string {
	return fsutil.SiblingPath(document, Extension)
}

// Compare checks actual against the golden file at path.
func Compare(ctx context.Context, path string, actual tree.Tree) error {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissing, path)
	}
	if err != nil {
		return fmt.Errorf("failed to read golden file %s: %w", path, err)
	}

	golden := string(data)
	rendered := tree.Indent(actual)
	if strings.TrimSpace(golden) == strings.TrimSpace(rendered) {
		logger.Debug("Golden file matches.", "path", path)
		return nil
	}

	expected, err := tree.Parse(golden)
	if err != nil {
		return fmt.Errorf("failed to parse golden file %s: %w", path, err)
	}

	// Quoted atoms are not escaped, so the rendering is read back through the
	// same parser rather than compared with actual directly.
	reparsed, err := tree.Parse(rendered)
	if err == nil && tree.Equal(expected, reparsed) {
		logger.Debug("Golden file matches.", "path", path)
		return nil
	}

	diff, err := unifiedDiff(path, golden, rendered)
	if err != nil {
		return err
	}
	logger.Debug("Golden file differs.", "path", path)
	return &MismatchError{Path: path, Diff: diff}
}

// Update writes actual to the golden file at path, replacing its contents.
func Update(ctx context.Context, path string, actual tree.Tree) error {
	if err := os.WriteFile(path, []byte(tree.Indent(actual)), 0o644); err != nil {
		return fmt.Errorf("failed to write golden file %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Golden file written.", "path", path)
	return nil
}

func unifiedDiff(path, expected, actual string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: path,
		ToFile:   "rendered",
		Context:  3,
	}
	diff, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("failed to diff golden file %s: %w", path, err)
	}
	return diff, nil
}

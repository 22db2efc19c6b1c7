package app_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/justtree/internal/app"
	"github.com/vk/justtree/internal/golden"
	"github.com/vk/justtree/internal/serializer"
	"github.com/vk/justtree/internal/testutil"
	"github.com/vk/justtree/internal/tree"
)

var documents = map[string]string{
	"b.hcl":     `recipe "build" { body = ["make"] }`,
	"a.hcl":     `alias "t" { target = test }`,
	"sub/c.hcl": `comment "nested" {}`,
	"notes.txt": "ignored",
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         app.Config
		expectedErr string
		format      string
	}{
		{name: "defaults format", cfg: app.Config{Path: "x"}, format: app.FormatSexpr},
		{name: "json", cfg: app.Config{Path: "x", Format: "json"}, format: app.FormatJSON},
		{name: "missing path", cfg: app.Config{}, expectedErr: "Path is a required"},
		{name: "bad format", cfg: app.Config{Path: "x", Format: "yaml"}, expectedErr: "invalid format"},
		{name: "check and update", cfg: app.Config{Path: "x", Check: true, Update: true}, expectedErr: "cannot be used together"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := app.NewConfig(tc.cfg)
			if tc.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.format, cfg.Format)
		})
	}
}

func TestRun_Sexpr(t *testing.T) {
	result := testutil.RunApp(t, app.Config{}, documents)
	require.NoError(t, result.Err)

	expected := strings.Join([]string{
		filepath.Join(result.Dir, "a.hcl") + ": (justfile (alias t test))",
		filepath.Join(result.Dir, "b.hcl") + `: (justfile (recipe build (body ("make"))))`,
		filepath.Join(result.Dir, "sub", "c.hcl") + `: (justfile (comment "nested"))`,
	}, "\n") + "\n"
	assert.Equal(t, expected, result.Output)
	assert.Contains(t, result.LogOutput, "Recipe documents discovered.")
}

func TestRun_JSON(t *testing.T) {
	result := testutil.RunApp(t, app.Config{Format: app.FormatJSON, Path: "a.hcl"}, documents)
	require.NoError(t, result.Err)

	var record struct {
		Path string `json:"path"`
		Tree any    `json:"tree"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Output), &record))
	assert.Equal(t, filepath.Join(result.Dir, "a.hcl"), record.Path)
	assert.Equal(t, []any{"justfile", []any{"alias", "t", "test"}}, record.Tree)
}

func TestRun_ContinuesPastFailures(t *testing.T) {
	result := testutil.RunApp(t, app.Config{}, map[string]string{
		"a.hcl": `recipe "ok" {}`,
		"b.hcl": `recipe "broken" {`,
		"c.hcl": "comment \"x\" {}\nwarning \"deprecated\" { message = \"old\" }\n",
		"d.hcl": `recipe "also_ok" {}`,
	})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "failed to parse HCL file")
	assert.ErrorIs(t, result.Err, serializer.ErrWarning)
	assert.Contains(t, result.Err.Error(), filepath.Join(result.Dir, "c.hcl"))

	assert.Contains(t, result.Output, "(justfile (recipe ok))")
	assert.Contains(t, result.Output, "(justfile (recipe also_ok))")
	assert.NotContains(t, result.Output, "broken")
}

func TestRun_NoDocuments(t *testing.T) {
	result := testutil.RunApp(t, app.Config{}, map[string]string{"readme.md": "# nothing"})
	assert.ErrorIs(t, result.Err, app.ErrNoDocuments)
}

func TestRun_MissingPath(t *testing.T) {
	result := testutil.RunApp(t, app.Config{Path: "nope"}, nil)
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, os.ErrNotExist)
}

func TestRun_UpdateThenCheck(t *testing.T) {
	dir := testutil.WriteFiles(t, documents)

	run := func(cfg app.Config) *testutil.HarnessResult {
		t.Helper()
		return testutil.RunAppIn(t, dir, cfg)
	}

	updated := run(app.Config{Update: true})
	require.NoError(t, updated.Err)
	assert.Empty(t, updated.Output)

	data, err := os.ReadFile(filepath.Join(dir, "b.tree"))
	require.NoError(t, err)
	assert.True(t, tree.Equal(tree.MustParse(`(justfile (recipe build (body ("make"))))`), tree.MustParse(string(data))))

	checked := run(app.Config{Check: true})
	require.NoError(t, checked.Err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`recipe "build" { body = ["make all"] }`), 0o644))
	stale := run(app.Config{Check: true})
	require.Error(t, stale.Err)
	assert.ErrorIs(t, stale.Err, app.ErrGoldenMismatch)

	var mismatch *golden.MismatchError
	require.ErrorAs(t, stale.Err, &mismatch)
	assert.Equal(t, filepath.Join(dir, "b.tree"), mismatch.Path)
	assert.Contains(t, mismatch.Diff, `+      ("make all"))))`)
}

func TestRun_CheckMissingGolden(t *testing.T) {
	result := testutil.RunApp(t, app.Config{Check: true}, map[string]string{"a.hcl": `recipe "r" {}`})
	assert.ErrorIs(t, result.Err, golden.ErrMissing)
	assert.NotErrorIs(t, result.Err, app.ErrGoldenMismatch)
}

func TestRun_UpdateThenCheck_QuotedBodyText(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"main.hcl": `recipe "greet" { body = ["echo \"hi\" > out", "cat (\"${file}\")"] }`,
	})

	updated := testutil.RunAppIn(t, dir, app.Config{Update: true})
	require.NoError(t, updated.Err)

	checked := testutil.RunAppIn(t, dir, app.Config{Check: true})
	assert.NoError(t, checked.Err)
}

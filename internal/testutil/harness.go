package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/justtree/internal/app"
	"github.com/vk/justtree/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an app run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Err       error
}

// WriteFiles creates a temporary directory holding files, keyed by path
// relative to that directory, and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// RunApp writes files to a temporary directory and runs the app over it.
// See RunAppIn for how cfg.Path is resolved.
func RunApp(t *testing.T, cfg app.Config, files map[string]string) *HarnessResult {
	t.Helper()
	return RunAppIn(t, WriteFiles(t, files), cfg)
}

// RunAppIn runs the app with the HCL loader over dir. cfg.Path is taken
// relative to dir; an empty path means dir itself.
func RunAppIn(t *testing.T, dir string, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.Path = filepath.Join(dir, cfg.Path)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	err = app.NewApp(out, logs, appConfig, hcl.NewLoader()).Run(context.Background())

	t.Cleanup(func() {
		if os.Getenv("JUSTTREE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return &HarnessResult{Dir: dir, Output: out.String(), LogOutput: logs.String(), Err: err}
}

package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/justtree/internal/tree"
)

// RequireTree fails the test unless actual is structurally equal to the tree
// printed as expected. The comparison is structural; the printed forms only
// appear in the failure message.
func RequireTree(t *testing.T, expected string, actual tree.Tree) {
	t.Helper()

	want, err := tree.Parse(expected)
	require.NoError(t, err, "expected tree literal is malformed")

	if !tree.Equal(want, actual) {
		diff := cmp.Diff(want, actual, cmpopts.EquateEmpty())
		t.Fatalf("tree mismatch (-want +got):\n%s\nwant: %s\ngot:  %s", diff, want, actual)
	}
}

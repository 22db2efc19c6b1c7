package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "atom", input: "x", expected: "x\n"},
		{name: "flat list", input: `(alias b build)`, expected: "(alias b build)\n"},
		{name: "empty list", input: "()", expected: "()\n"},
		{
			name:  "nested",
			input: `(justfile (alias b build) (recipe # quiet build (deps (a)) (body ("echo" (x)))))`,
			expected: "(justfile\n" +
				"  (alias b build)\n" +
				"  (recipe # quiet build\n" +
				"    (deps\n" +
				"      (a))\n" +
				"    (body\n" +
				"      (\"echo\"\n" +
				"        (x)))))\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := MustParse(tc.input)
			got := Indent(parsed)
			assert.Equal(t, tc.expected, got)
			assert.True(t, Equal(parsed, MustParse(got)))
		})
	}
}

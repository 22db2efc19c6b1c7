package tree

import "strings"

// Indent renders t over several lines for human diffs. A list holding only
// atoms stays on one line; otherwise its leading atoms share the opening line
// and every later child starts a new line, indented two spaces per level.
// Parse reads the result back to the same tree as String's output.
func Indent(t Tree) string {
	var sb strings.Builder
	indent(&sb, t, 0)
	sb.WriteByte('\n')
	return sb.String()
}

func indent(sb *strings.Builder, t Tree, depth int) {
	l, ok := t.(List)
	if !ok || flat(l) {
		t.write(sb)
		return
	}

	sb.WriteByte('(')
	i := 0
	for ; i < len(l); i++ {
		if _, isAtom := l[i].(Atom); !isAtom {
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		l[i].write(sb)
	}
	for _, child := range l[i:] {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("  ", depth+1))
		indent(sb, child, depth+1)
	}
	sb.WriteByte(')')
}

func flat(l List) bool {
	for _, child := range l {
		if _, ok := child.(Atom); !ok {
			return false
		}
	}
	return true
}

package sexpr

import (
	"bufio"
	"io"
	"strings"
)

// Write prints n followed by a newline. Lists that contain other lists
// put each child on its own line, indented by two spaces per level;
// flat lists stay on one line.
func Write(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	write(bw, n, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

func write(w *bufio.Writer, n Node, depth int) {
	l, ok := n.(List)
	if !ok || flat(l) {
		w.WriteString(n.String())
		return
	}
	w.WriteByte('(')
	for i, child := range l {
		if i > 0 {
			if _, isList := child.(List); isList {
				w.WriteByte('\n')
				w.WriteString(strings.Repeat("  ", depth+1))
			} else {
				w.WriteByte(' ')
			}
		}
		write(w, child, depth+1)
	}
	w.WriteByte(')')
}

func flat(l List) bool {
	for _, n := range l {
		if _, ok := n.(List); ok {
			return false
		}
	}
	return true
}

package domtree

import (
	"bufio"
	"io"
	"strings"
)

// Render writes the tree to w. A leaf is written as its label on its own
// line; a node with children is written as <label>, its children, </label>.
func (t *Tree) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := t.render(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// HTML returns the serialized tree.
func (t *Tree) HTML() string {
	var sb strings.Builder
	_ = t.render(&sb)
	return sb.String()
}

type stringWriter interface {
	WriteString(s string) (int, error)
}

func (t *Tree) render(w stringWriter) error {
	var open []NodeID
	cur := t.root
	for {
		for cur != None {
			n := t.nodes[cur]
			if n.firstChild == None {
				if _, err := w.WriteString(n.label + "\n"); err != nil {
					return err
				}
				cur = n.nextSibling
				continue
			}
			if _, err := w.WriteString("<" + n.label + ">\n"); err != nil {
				return err
			}
			open = append(open, cur)
			cur = n.firstChild
		}

		if len(open) == 0 {
			return nil
		}
		id := open[len(open)-1]
		open = open[:len(open)-1]
		if _, err := w.WriteString("</" + t.nodes[id].label + ">\n"); err != nil {
			return err
		}
		cur = t.nodes[id].nextSibling
	}
}

package domtree

// ReplaceTag renames every node labeled oldLabel to newLabel.
func (t *Tree) ReplaceTag(oldLabel, newLabel string) {
	t.walk(func(id NodeID) {
		if t.nodes[id].label == oldLabel {
			t.nodes[id].label = newLabel
		}
	})
}

// BoldRow wraps the children of every td in the row-th table row under a new
// b element. Rows are counted over every tr in preorder, 1-indexed, across
// nested tables too.
func (t *Tree) BoldRow(row int) {
	if row <= 0 {
		return
	}
	count := 0
	t.walk(func(id NodeID) {
		switch t.nodes[id].label {
		case "tr":
			count++
		case "td":
			if count != row {
				return
			}
			b := t.newNode("b")
			t.nodes[b].firstChild = t.nodes[id].firstChild
			t.nodes[id].firstChild = b
		}
	})
}

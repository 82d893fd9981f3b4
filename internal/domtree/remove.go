package domtree

// RemoveTag splices every occurrence of label out of the tree. A removed
// node's children take its place and inherit its next sibling. When label is
// ul or ol, the li children directly under each removed list become p.
//
// The root is never removed, but nodes chained after it are. Each pass
// rescans from the root's first child.
func (t *Tree) RemoveTag(label string) {
	if t.root == None {
		return
	}
	for {
		id, in, ok := t.find(label)
		if !ok {
			return
		}
		t.splice(id, in, label == "ul" || label == "ol")
	}
}

type visit struct {
	id NodeID
	in link
}

// find returns the first node other than the root labeled label, in
// preorder, along with the link that points at it. The root's subtree is
// searched before its sibling chain.
func (t *Tree) find(label string) (NodeID, link, bool) {
	stack := []visit{
		{id: t.nodes[t.root].nextSibling, in: link{owner: t.root, sibling: true}},
		{id: t.nodes[t.root].firstChild, in: link{owner: t.root}},
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v.id == None {
			continue
		}
		n := t.nodes[v.id]
		if n.label == label {
			return v.id, v.in, true
		}
		stack = append(stack,
			visit{id: n.nextSibling, in: link{owner: v.id, sibling: true}},
			visit{id: n.firstChild, in: link{owner: v.id}},
		)
	}
	return None, link{}, false
}

func (t *Tree) splice(id NodeID, in link, promoteItems bool) {
	first := t.nodes[id].firstChild
	next := t.nodes[id].nextSibling

	if promoteItems {
		for c := first; c != None; c = t.nodes[c].nextSibling {
			if t.nodes[c].label == "li" {
				t.nodes[c].label = "p"
			}
		}
	}

	if first == None {
		t.set(in, next)
	} else {
		t.nodes[t.tail(first)].nextSibling = next
		t.set(in, first)
	}

	t.nodes[id].firstChild = None
	t.nodes[id].nextSibling = None
}

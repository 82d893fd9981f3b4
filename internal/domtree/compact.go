package domtree

// Compact drops detached nodes from the arena. NodeIDs held by callers are
// invalid afterwards.
func (t *Tree) Compact() {
	if t.root == None {
		t.nodes = nil
		return
	}

	remap := make(map[NodeID]NodeID, len(t.nodes))
	var order []NodeID
	t.walk(func(id NodeID) {
		remap[id] = NodeID(len(order))
		order = append(order, id)
	})

	nodes := make([]node, len(order))
	for i, old := range order {
		n := t.nodes[old]
		nodes[i] = node{label: n.label, firstChild: None, nextSibling: None}
		if n.firstChild != None {
			nodes[i].firstChild = remap[n.firstChild]
		}
		if n.nextSibling != None {
			nodes[i].nextSibling = remap[n.nextSibling]
		}
	}
	t.nodes = nodes
	t.root = remap[t.root]
}

// Clone returns an independent copy of the reachable tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{nodes: make([]node, len(t.nodes)), root: t.root}
	copy(c.nodes, t.nodes)
	c.Compact()
	return c
}

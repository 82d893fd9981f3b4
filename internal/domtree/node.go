package domtree

// NodeID addresses a node inside a Tree's arena.
type NodeID int32

// None is the absent link.
const None NodeID = -1

// LabelKind separates the recognized container/inline tags from everything else.
type LabelKind uint8

const (
	KindOther      LabelKind = iota // text runs and unrecognized tags
	KindStructural                  // html, body, p, em, b, table, tr, td, ol, ul, li
)

// String returns the string representation of the LabelKind.
func (k LabelKind) String() string {
	switch k {
	case KindStructural:
		return "Structural"
	case KindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

var structuralLabels = map[string]bool{
	"html":  true,
	"body":  true,
	"p":     true,
	"em":    true,
	"b":     true,
	"table": true,
	"tr":    true,
	"td":    true,
	"ol":    true,
	"ul":    true,
	"li":    true,
}

// Classify reports whether label is one of the structural tags.
func Classify(label string) LabelKind {
	if structuralLabels[label] {
		return KindStructural
	}
	return KindOther
}

// IsStructural is shorthand for Classify(label) == KindStructural.
func IsStructural(label string) bool {
	return structuralLabels[label]
}

type node struct {
	label       string
	firstChild  NodeID
	nextSibling NodeID
}

// Tree is a first-child/next-sibling tree stored in an arena.
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []node
	root  NodeID
}

// New returns a tree holding only a root element with the given label.
func New(rootLabel string) *Tree {
	t := &Tree{root: None}
	t.root = t.newNode(rootLabel)
	return t
}

func (t *Tree) newNode(label string) NodeID {
	t.nodes = append(t.nodes, node{label: label, firstChild: None, nextSibling: None})
	return NodeID(len(t.nodes) - 1)
}

// Root returns the root node, or None for an empty tree.
func (t *Tree) Root() NodeID { return t.root }

// Empty reports whether the tree has no root.
func (t *Tree) Empty() bool { return t.root == None }

func (t *Tree) Label(id NodeID) string      { return t.nodes[id].label }
func (t *Tree) FirstChild(id NodeID) NodeID  { return t.nodes[id].firstChild }
func (t *Tree) NextSibling(id NodeID) NodeID { return t.nodes[id].nextSibling }

// IsLeaf reports whether id has no children.
func (t *Tree) IsLeaf(id NodeID) bool { return t.nodes[id].firstChild == None }

// Children returns the direct children of id in order.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.nodes[id].firstChild; c != None; c = t.nodes[c].nextSibling {
		out = append(out, c)
	}
	return out
}

// walk visits every reachable node in preorder: node, its firstChild subtree,
// then its nextSibling chain. Links are read after fn returns, so fn may
// rewrite the visited node's firstChild and the traversal follows the new link.
func (t *Tree) walk(fn func(id NodeID)) {
	if t.root == None {
		return
	}
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(id)

		if next := t.nodes[id].nextSibling; next != None {
			stack = append(stack, next)
		}
		if first := t.nodes[id].firstChild; first != None {
			stack = append(stack, first)
		}
	}
}

// Count returns how many reachable nodes carry label.
func (t *Tree) Count(label string) int {
	n := 0
	t.walk(func(id NodeID) {
		if t.nodes[id].label == label {
			n++
		}
	})
	return n
}

// Len returns the number of nodes reachable from the root.
func (t *Tree) Len() int {
	n := 0
	t.walk(func(NodeID) { n++ })
	return n
}

// link is the slot that points at a node: the owner's firstChild, the owner's
// nextSibling, or the tree root when owner is None.
type link struct {
	owner   NodeID
	sibling bool
}

var rootLink = link{owner: None}

func (t *Tree) set(l link, id NodeID) {
	switch {
	case l.owner == None:
		t.root = id
	case l.sibling:
		t.nodes[l.owner].nextSibling = id
	default:
		t.nodes[l.owner].firstChild = id
	}
}

// tail returns the last node of the sibling chain starting at id.
func (t *Tree) tail(id NodeID) NodeID {
	for t.nodes[id].nextSibling != None {
		id = t.nodes[id].nextSibling
	}
	return id
}

package domtree

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AddTag wraps every whitespace-delimited occurrence of word in a new element
// labeled tagLabel. Matching is case-insensitive and tolerates one trailing
// non-letter character, which stays inside the wrapper ("World!" matches
// "world").
//
// Only leaves hanging directly off structural elements are candidates: the
// traversal descends through structural nodes and stops at anything else.
// A leaf whose own text is a structural label is skipped.
func (t *Tree) AddTag(word, tagLabel string) {
	if t.root == None || word == "" || tagLabel == "" {
		return
	}

	stack := []visit{{id: t.root, in: rootLink}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v.id == None {
			continue
		}

		n := t.nodes[v.id]
		if IsStructural(n.label) {
			stack = append(stack,
				visit{id: n.nextSibling, in: link{owner: v.id, sibling: true}},
				visit{id: n.firstChild, in: link{owner: v.id}},
			)
			continue
		}

		end := v.id
		if n.firstChild == None {
			if tail, ok := t.wrapWord(v.id, v.in, word, tagLabel); ok {
				end = tail
			}
		}
		stack = append(stack, visit{id: n.nextSibling, in: link{owner: end, sibling: true}})
	}
}

// wrapWord rebuilds leaf id as a chain of text runs and wrapper elements and
// installs it at in. It returns the chain's tail, which links to the leaf's
// original next sibling. ok is false when no token matched.
func (t *Tree) wrapWord(id NodeID, in link, word, tagLabel string) (NodeID, bool) {
	tokens := strings.Fields(t.nodes[id].label)

	var chain []NodeID
	var pending []string
	for _, tok := range tokens {
		if !matchWord(tok, word) {
			pending = append(pending, tok)
			continue
		}
		if len(pending) > 0 {
			chain = append(chain, t.newNode(joinRun(pending)))
			pending = pending[:0]
		}
		wrapper := t.newNode(tagLabel)
		t.nodes[wrapper].firstChild = t.newNode(tok)
		chain = append(chain, wrapper)
	}
	if len(chain) == 0 {
		return None, false
	}
	if len(pending) > 0 {
		chain = append(chain, t.newNode(joinRun(pending)))
	}

	for i := 0; i < len(chain)-1; i++ {
		t.nodes[chain[i]].nextSibling = chain[i+1]
	}
	tail := chain[len(chain)-1]
	t.nodes[tail].nextSibling = t.nodes[id].nextSibling
	t.set(in, chain[0])
	t.nodes[id].nextSibling = None
	return tail, true
}

// matchWord reports whether tok is word, ignoring case, optionally followed by
// a single non-letter character.
func matchWord(tok, word string) bool {
	if strings.EqualFold(tok, word) {
		return true
	}
	r, size := utf8.DecodeLastRuneInString(tok)
	if size == 0 || size == len(tok) || unicode.IsLetter(r) {
		return false
	}
	return strings.EqualFold(tok[:len(tok)-size], word)
}

// joinRun re-joins unmatched tokens, each followed by a single space.
func joinRun(tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok)
		sb.WriteByte(' ')
	}
	return sb.String()
}

package domtree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RootLabel is the label of the implicit root element.
const RootLabel = "html"

// LineSource yields raw input lines in order. *bufio.Scanner satisfies it.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

type sliceSource struct {
	lines []string
	pos   int
}

// Lines adapts a slice of lines to a LineSource.
func Lines(lines []string) LineSource {
	return &sliceSource{lines: lines, pos: -1}
}

func (s *sliceSource) Scan() bool {
	if s.pos+1 >= len(s.lines) {
		s.pos = len(s.lines)
		return false
	}
	s.pos++
	return true
}

func (s *sliceSource) Text() string {
	if s.pos < 0 || s.pos >= len(s.lines) {
		return ""
	}
	return s.lines[s.pos]
}

func (s *sliceSource) Err() error { return nil }

// StructuralError reports a line that needs an open ancestor when none is left.
type StructuralError struct {
	Line   int // 1-based, header included
	Text   string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// Parse reads the line convention from r and builds a tree.
func Parse(r io.Reader) (*Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return Build(scanner)
}

// Build consumes src and returns the resulting tree. The first line is a
// header and is discarded. An empty source yields an empty tree.
func Build(src LineSource) (*Tree, error) {
	t := &Tree{root: None}
	if !src.Scan() {
		if err := src.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return t, nil
	}

	t.root = t.newNode(RootLabel)
	b := &builder{
		t:        t,
		stack:    []NodeID{t.root},
		last:     t.root,
		lineNo:   1,
		adoptTag: src.Text() != "<"+RootLabel+">",
	}

	for src.Scan() {
		b.lineNo++
		if err := b.line(src.Text()); err != nil {
			return nil, err
		}
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", b.lineNo+1, err)
	}
	return t, nil
}

// builder carries the open-ancestor stack and the last-inserted cursor
// between lines.
type builder struct {
	t      *Tree
	stack  []NodeID
	last   NodeID
	lineNo int

	// adoptTag is set when the header was not <html>; an <html> on the
	// next line then opens the implicit root instead of nesting a new one.
	adoptTag bool
}

func (b *builder) line(text string) error {
	switch {
	case strings.HasPrefix(text, "</"):
		return b.close(text)
	case strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">") && len(text) > 2:
		return b.open(text, text[1:len(text)-1])
	default:
		b.text(text)
		return nil
	}
}

// close pops one level. Closing names are never checked against the opener.
func (b *builder) close(text string) error {
	if len(b.stack) == 0 {
		return &StructuralError{Line: b.lineNo, Text: text, Reason: "closing tag with no open ancestor"}
	}
	b.last = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *builder) open(text, name string) error {
	if len(b.stack) == 0 {
		return &StructuralError{Line: b.lineNo, Text: text, Reason: "opening tag after the root was closed"}
	}
	t := b.t
	top := b.stack[len(b.stack)-1]

	if b.adoptTag && b.lineNo == 2 && name == RootLabel {
		return nil
	}

	id := t.newNode(name)
	if first := t.nodes[top].firstChild; first != None {
		t.nodes[t.tail(first)].nextSibling = id
	} else {
		t.nodes[top].firstChild = id
	}
	b.stack = append(b.stack, id)
	b.last = id
	return nil
}

// text attaches a leaf after last when last already has children, overwriting
// whatever sibling last had, and otherwise makes it last's first child.
func (b *builder) text(text string) {
	t := b.t
	id := t.newNode(text)
	if t.nodes[b.last].firstChild != None {
		t.nodes[b.last].nextSibling = id
		return
	}
	t.nodes[b.last].firstChild = id
	b.last = id
}

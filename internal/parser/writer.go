package parser

import "strings"

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// lineWriter accumulates output in the line convention. It keeps the output
// safe for the tree builder: adjacent text is merged into one line (a text
// line directly after another would nest under it) and elements that end up
// empty are dropped (text after an empty element would become its child).
type lineWriter struct {
	lines  []string
	isText []bool
}

func newLineWriter() *lineWriter {
	w := &lineWriter{}
	w.push("<html>", false)
	w.push("<body>", false)
	return w
}

func (w *lineWriter) push(line string, text bool) {
	w.lines = append(w.lines, line)
	w.isText = append(w.isText, text)
}

func (w *lineWriter) Open(tag string) {
	w.push("<"+tag+">", false)
}

func (w *lineWriter) Close(tag string) {
	n := len(w.lines)
	if n > 0 && !w.isText[n-1] && w.lines[n-1] == "<"+tag+">" {
		w.lines = w.lines[:n-1]
		w.isText = w.isText[:n-1]
		return
	}
	w.push("</"+tag+">", false)
}

// Text writes s with whitespace collapsed and markup characters escaped.
func (w *lineWriter) Text(s string) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return
	}
	s = textEscaper.Replace(s)
	if n := len(w.lines); n > 0 && w.isText[n-1] {
		w.lines[n-1] += " " + s
		return
	}
	w.push(s, true)
}

// Raw writes s as its own text line without collapsing or escaping it.
func (w *lineWriter) Raw(s string) {
	w.push(s, true)
}

// Block writes s as a single element holding one text line.
func (w *lineWriter) Block(tag, s string) {
	w.Open(tag)
	w.Text(s)
	w.Close(tag)
}

// Lines closes body and the root and returns the result.
func (w *lineWriter) Lines() []string {
	w.Close("body")
	w.push("</html>", false)
	return w.lines
}

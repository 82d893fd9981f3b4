package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineWriter_MergesAdjacentText(t *testing.T) {
	w := newLineWriter()
	w.Open("p")
	w.Text("a")
	w.Open("b")
	w.Close("b")
	w.Text("  b\n c ")
	w.Close("p")

	want := []string{"<html>", "<body>", "<p>", "a b c", "</p>", "</body>", "</html>"}
	if diff := cmp.Diff(want, w.Lines()); diff != "" {
		t.Errorf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestLineWriter_RawIsNotEscaped(t *testing.T) {
	w := newLineWriter()
	w.Open("td")
	w.Raw("&nbsp;")
	w.Close("td")

	want := []string{"<html>", "<body>", "<td>", "&nbsp;", "</td>", "</body>", "</html>"}
	if diff := cmp.Diff(want, w.Lines()); diff != "" {
		t.Errorf("unexpected lines (-want +got):\n%s", diff)
	}
}

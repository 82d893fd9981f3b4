package domtree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tableDoc() []string {
	return doc(
		"<body>",
		"<table>",
		"<tr>", "<td>", "r1c1", "</td>", "<td>", "r1c2", "</td>", "</tr>",
		"<tr>", "<td>", "r2c1", "</td>", "<td>", "r2c2", "</td>", "</tr>",
		"</table>",
		"</body>",
	)
}

func TestReplaceTag_RenamesEveryOccurrence(t *testing.T) {
	tree := mustBuild(t, doc("<body>", "<p>", "<em>", "a", "</em>", "</p>", "<p>", "b", "</p>", "</body>")...)

	tree.ReplaceTag("p", "div")

	if n := tree.Count("p"); n != 0 {
		t.Errorf("expected no p left, got %d", n)
	}
	if n := tree.Count("div"); n != 2 {
		t.Errorf("expected 2 div, got %d", n)
	}
	if n := tree.Count("em"); n != 1 {
		t.Errorf("expected em untouched, got %d", n)
	}
}

func TestReplaceTag_Idempotent(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{"rename cells", "td", "th"},
		{"rename rows", "tr", "row"},
		{"rename root", "html", "doc"},
		{"absent label", "ol", "ul"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := mustBuild(t, tableDoc()...)
			once.ReplaceTag(tt.old, tt.new)

			twice := mustBuild(t, tableDoc()...)
			twice.ReplaceTag(tt.old, tt.new)
			twice.ReplaceTag(tt.old, tt.new)

			if diff := cmp.Diff(once.HTML(), twice.HTML()); diff != "" {
				t.Errorf("second application changed the tree (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestReplaceTag_CanRenameText(t *testing.T) {
	tree := mustBuild(t, doc("<p>", "hello", "</p>")...)
	tree.ReplaceTag("hello", "bye")
	if n := tree.Count("bye"); n != 1 {
		t.Errorf("expected leaf relabeled, got %d", n)
	}
}

func TestBoldRow_WrapsEveryCellInRow(t *testing.T) {
	tree := mustBuild(t, tableDoc()...)

	tree.BoldRow(2)

	want := doc(
		"<body>",
		"<table>",
		"<tr>", "<td>", "r1c1", "</td>", "<td>", "r1c2", "</td>", "</tr>",
		"<tr>", "<td>", "<b>", "r2c1", "</b>", "</td>", "<td>", "<b>", "r2c2", "</b>", "</td>", "</tr>",
		"</table>",
		"</body>",
	)
	if diff := cmp.Diff(want, lines(tree.HTML())); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestBoldRow_OutOfRangeIsNoop(t *testing.T) {
	for _, row := range []int{0, -1, 3, 100} {
		tree := mustBuild(t, tableDoc()...)
		before := tree.HTML()
		tree.BoldRow(row)
		if got := tree.HTML(); got != before {
			t.Errorf("row %d: expected unchanged tree, got %q", row, got)
		}
	}
}

func TestBoldRow_CountsAcrossTables(t *testing.T) {
	input := doc(
		"<body>",
		"<table>", "<tr>", "<td>", "x", "</td>", "</tr>", "</table>",
		"<table>", "<tr>", "<td>", "y", "</td>", "</tr>", "</table>",
		"</body>",
	)
	tree := mustBuild(t, input...)

	tree.BoldRow(2)

	if n := tree.Count("b"); n != 1 {
		t.Fatalf("expected exactly one b wrapper, got %d", n)
	}
	want := "<b>\ny\n</b>\n"
	if got := tree.HTML(); !strings.Contains(got, want) {
		t.Errorf("expected second table's cell to be bold, got %q", got)
	}
}

func TestBoldRow_NestedRowsIncrementCounter(t *testing.T) {
	// Row 1 holds a nested table whose single row is row 2 in preorder.
	input := doc(
		"<table>",
		"<tr>",
		"<td>", "<table>", "<tr>", "<td>", "inner", "</td>", "</tr>", "</table>", "</td>",
		"</tr>",
		"</table>",
	)
	tree := mustBuild(t, input...)

	tree.BoldRow(2)

	if n := tree.Count("b"); n != 1 {
		t.Fatalf("expected one wrapper, got %d", n)
	}
	if got := tree.HTML(); !strings.Contains(got, "<b>\ninner\n</b>\n") {
		t.Errorf("expected inner cell bold, got %q", got)
	}
}

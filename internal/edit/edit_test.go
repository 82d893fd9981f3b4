package edit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/tagtree/internal/domtree"
	"github.com/google/go-cmp/cmp"
)

func buildDoc(t *testing.T, body ...string) *domtree.Tree {
	t.Helper()
	lines := append([]string{"<html>"}, body...)
	lines = append(lines, "</html>")
	tree, err := domtree.Build(domtree.Lines(lines))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return tree
}

func TestApply_RunsEditsInOrder(t *testing.T) {
	tree := buildDoc(t,
		"<body>",
		"<ul>", "<li>", "apple pie", "</li>", "</ul>",
		"<table>", "<tr>", "<td>", "x", "</td>", "</tr>", "</table>",
		"</body>")

	err := Apply(tree,
		Edit{Op: OpRemove, Tag: "ul"},
		Edit{Op: OpAdd, Word: "apple", Tag: "i"},
		Edit{Op: OpBold, Row: 1},
		Edit{Op: OpReplace, Old: "p", New: "div"},
	)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	want := strings.Join([]string{
		"<html>", "<body>",
		"<div>", "<i>", "apple", "</i>", "pie ", "</div>",
		"<table>", "<tr>", "<td>", "<b>", "x", "</b>", "</td>", "</tr>", "</table>",
		"</body>", "</html>",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, tree.HTML()); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestApply_InvalidEditLeavesTreeUntouched(t *testing.T) {
	tree := buildDoc(t, "<p>", "text", "</p>")
	before := tree.HTML()

	err := Apply(tree,
		Edit{Op: OpReplace, Old: "p", New: "div"},
		Edit{Op: OpBold, Row: 0},
	)
	if !errors.Is(err, ErrInvalidEdit) {
		t.Fatalf("expected ErrInvalidEdit, got %v", err)
	}
	if !strings.Contains(err.Error(), "edit 2") {
		t.Errorf("expected error to name the failing edit, got %q", err)
	}
	if got := tree.HTML(); got != before {
		t.Errorf("tree changed despite invalid edit:\n%s", got)
	}
}

func TestValidate(t *testing.T) {
	tt := []struct {
		name string
		edit Edit
		ok   bool
	}{
		{"replace", Edit{Op: OpReplace, Old: "p", New: "div"}, true},
		{"replace missing new", Edit{Op: OpReplace, Old: "p"}, false},
		{"replace same label", Edit{Op: OpReplace, Old: "p", New: "p"}, false},
		{"bold", Edit{Op: OpBold, Row: 3}, true},
		{"bold zero", Edit{Op: OpBold}, false},
		{"bold negative", Edit{Op: OpBold, Row: -2}, false},
		{"remove", Edit{Op: OpRemove, Tag: "ul"}, true},
		{"remove missing tag", Edit{Op: OpRemove}, false},
		{"add", Edit{Op: OpAdd, Word: "go", Tag: "b"}, true},
		{"add missing word", Edit{Op: OpAdd, Tag: "b"}, false},
		{"add two words", Edit{Op: OpAdd, Word: "go lang", Tag: "b"}, false},
		{"missing op", Edit{Tag: "b"}, false},
		{"unknown op", Edit{Op: "shout"}, false},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.edit.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidEdit) {
				t.Errorf("expected ErrInvalidEdit, got %v", err)
			}
		})
	}
}

func TestParseScript(t *testing.T) {
	input := `
edits:
  - op: remove
    tag: ol
  - op: add
    word: urgent
    tag: b
  - op: bold
    row: 2
  - op: replace
    old: em
    new: i
`
	edits, err := ParseScript(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Edit{
		{Op: OpRemove, Tag: "ol"},
		{Op: OpAdd, Word: "urgent", Tag: "b"},
		{Op: OpBold, Row: 2},
		{Op: OpReplace, Old: "em", New: "i"},
	}
	if diff := cmp.Diff(want, edits); diff != "" {
		t.Errorf("unexpected edits (-want +got):\n%s", diff)
	}
}

func TestParseScript_Errors(t *testing.T) {
	tt := []struct {
		name  string
		input string
		is    error
	}{
		{"unknown field", "edits:\n  - op: bold\n    rows: 2\n", nil},
		{"invalid edit", "edits:\n  - op: bold\n", ErrInvalidEdit},
		{"not yaml", "edits: [", nil},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Errorf("expected %v, got %v", tc.is, err)
			}
		})
	}
}

func TestParseScript_Empty(t *testing.T) {
	edits, err := ParseScript(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edits) != 0 {
		t.Errorf("expected no edits, got %v", edits)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.yaml")
	if err := os.WriteFile(path, []byte("edits:\n  - op: remove\n    tag: ul\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	edits, err := LoadScript(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]Edit{{Op: OpRemove, Tag: "ul"}}, edits); diff != "" {
		t.Errorf("unexpected edits (-want +got):\n%s", diff)
	}

	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestParseFlag(t *testing.T) {
	tt := []struct {
		op    Op
		value string
		want  Edit
		ok    bool
	}{
		{OpReplace, "em=i", Edit{Op: OpReplace, Old: "em", New: "i"}, true},
		{OpReplace, "em", Edit{}, false},
		{OpBold, "2", Edit{Op: OpBold, Row: 2}, true},
		{OpBold, "two", Edit{}, false},
		{OpBold, "0", Edit{}, false},
		{OpRemove, "ul", Edit{Op: OpRemove, Tag: "ul"}, true},
		{OpAdd, "go=b", Edit{Op: OpAdd, Word: "go", Tag: "b"}, true},
		{OpAdd, "=b", Edit{}, false},
	}
	for _, tc := range tt {
		got, err := ParseFlag(tc.op, tc.value)
		if tc.ok {
			if err != nil {
				t.Errorf("%s %q: unexpected error: %v", tc.op, tc.value, err)
				continue
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("%s %q: (-want +got):\n%s", tc.op, tc.value, diff)
			}
			if s := got.String(); !strings.HasPrefix(s, string(tc.op)+" ") {
				t.Errorf("%s %q: unexpected String() %q", tc.op, tc.value, s)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidEdit) {
			t.Errorf("%s %q: expected ErrInvalidEdit, got %v", tc.op, tc.value, err)
		}
	}
}

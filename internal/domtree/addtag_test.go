package domtree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddTag(t *testing.T) {
	tt := []struct {
		name  string
		input []string
		word  string
		tag   string
		want  []string
	}{
		{
			name:  "wraps word keeping punctuation",
			input: doc("<p>", "hello world.", "</p>"),
			word:  "world",
			tag:   "b",
			want:  doc("<p>", "hello ", "<b>", "world.", "</b>", "</p>"),
		},
		{
			name:  "case insensitive with trailing bang",
			input: doc("<p>", "say World!", "</p>"),
			word:  "WORLD",
			tag:   "i",
			want:  doc("<p>", "say ", "<i>", "World!", "</i>", "</p>"),
		},
		{
			name:  "several matches in one leaf",
			input: doc("<p>", "a x b X, c", "</p>"),
			word:  "x",
			tag:   "em",
			want:  doc("<p>", "a ", "<em>", "x", "</em>", "b ", "<em>", "X,", "</em>", "c ", "</p>"),
		},
		{
			name:  "match at the start keeps the rest",
			input: doc("<p>", "world is big", "</p>"),
			word:  "world",
			tag:   "em",
			want:  doc("<p>", "<em>", "world", "</em>", "is big ", "</p>"),
		},
		{
			name:  "whole leaf match",
			input: doc("<p>", "world", "</p>"),
			word:  "world",
			tag:   "b",
			want:  doc("<p>", "<b>", "world", "</b>", "</p>"),
		},
		{
			name:  "runs of whitespace are collapsed",
			input: doc("<p>", "  hello    world  ", "</p>"),
			word:  "world",
			tag:   "b",
			want:  doc("<p>", "hello ", "<b>", "world", "</b>", "</p>"),
		},
		{
			name:  "siblings after a rewritten leaf are still visited",
			input: doc("<p>", "world one", "<b>", "bold", "</b>", "world two", "</p>"),
			word:  "world",
			tag:   "i",
			want: doc("<p>",
				"<i>", "world", "</i>", "one ",
				"<b>", "bold", "</b>",
				"<i>", "world", "</i>", "two ",
				"</p>"),
		},
		{
			name:  "nested structural elements are searched",
			input: doc("<body>", "<table>", "<tr>", "<td>", "<em>", "cell world", "</em>", "</td>", "</tr>", "</table>", "</body>"),
			word:  "world",
			tag:   "b",
			want:  doc("<body>", "<table>", "<tr>", "<td>", "<em>", "cell ", "<b>", "world", "</b>", "</em>", "</td>", "</tr>", "</table>", "</body>"),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustBuild(t, tc.input...)
			tree.AddTag(tc.word, tc.tag)
			if diff := cmp.Diff(tc.want, lines(tree.HTML())); diff != "" {
				t.Errorf("unexpected tree (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddTag_Unchanged(t *testing.T) {
	tt := []struct {
		name  string
		input []string
		word  string
		tag   string
	}{
		{"no match", doc("<p>", "hello there", "</p>"), "world", "b"},
		{"substring only", doc("<p>", "worldwide worlds", "</p>"), "world", "b"},
		{"two trailing marks", doc("<p>", "world.,", "</p>"), "world", "b"},
		{"trailing letter is not stripped", doc("<p>", "worldx", "</p>"), "world", "b"},
		{"under unknown element", doc("<p>", "<span>", "world", "</span>", "</p>"), "world", "b"},
		{"unknown element label with children", doc("<p>", "<div>", "div text", "</div>", "</p>"), "div", "b"},
		{"structural label text", doc("<p>", "b", "</p>"), "b", "em"},
		{"empty word", doc("<p>", "a , b", "</p>"), "", "b"},
		{"empty tag", doc("<p>", "world", "</p>"), "world", ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustBuild(t, tc.input...)
			before := tree.HTML()
			tree.AddTag(tc.word, tc.tag)
			if got := tree.HTML(); got != before {
				t.Errorf("expected unchanged tree\nbefore: %q\nafter:  %q", before, got)
			}
		})
	}
}

func TestAddTag_WrapperIsNotRevisited(t *testing.T) {
	tree := mustBuild(t, doc("<p>", "go go go", "</p>")...)

	tree.AddTag("go", "b")

	if n := tree.Count("b"); n != 3 {
		t.Fatalf("expected 3 wrappers, got %d", n)
	}
	if strings.Contains(tree.HTML(), "<b>\n<b>") {
		t.Errorf("wrapper was wrapped again: %q", tree.HTML())
	}
}

func TestAddTag_RenamedRootLeaf(t *testing.T) {
	tree := mustBuild(t, "<html>")
	tree.ReplaceTag("html", "world")

	tree.AddTag("world", "b")

	if got, want := tree.HTML(), "<b>\nworld\n</b>\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMatchWord(t *testing.T) {
	tests := []struct {
		tok, word string
		want      bool
	}{
		{"world", "world", true},
		{"WoRlD", "world", true},
		{"world.", "world", true},
		{"world?", "World", true},
		{"world1", "world", true},
		{"worlds", "world", false},
		{".", "", false},
		{"x", "world", false},
		{"naïve!", "NAÏVE", true},
		{"naïvé", "naïv", false},
	}
	for _, tt := range tests {
		if got := matchWord(tt.tok, tt.word); got != tt.want {
			t.Errorf("matchWord(%q, %q): expected %v, got %v", tt.tok, tt.word, tt.want, got)
		}
	}
}

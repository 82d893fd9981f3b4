// Package edit describes tree edits as data so they can come from a YAML
// script, a JSON request body or command-line flags.
package edit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/tagtree/internal/domtree"
	"gopkg.in/yaml.v3"
)

// Op names an edit operation.
type Op string

const (
	OpReplace Op = "replace"
	OpBold    Op = "bold"
	OpRemove  Op = "remove"
	OpAdd     Op = "add"
)

// ErrInvalidEdit is wrapped by every validation failure.
var ErrInvalidEdit = errors.New("invalid edit")

// Edit is one operation on a tree. Which fields are used depends on Op:
// replace uses Old and New, bold uses Row, remove uses Tag, add uses Word and
// Tag.
type Edit struct {
	Op   Op     `yaml:"op" json:"op"`
	Old  string `yaml:"old,omitempty" json:"old,omitempty"`
	New  string `yaml:"new,omitempty" json:"new,omitempty"`
	Row  int    `yaml:"row,omitempty" json:"row,omitempty"`
	Tag  string `yaml:"tag,omitempty" json:"tag,omitempty"`
	Word string `yaml:"word,omitempty" json:"word,omitempty"`
}

// Script is the on-disk form of an edit list.
type Script struct {
	Edits []Edit `yaml:"edits"`
}

// Validate checks that e names a known op and carries the fields it needs.
func (e Edit) Validate() error {
	switch e.Op {
	case OpReplace:
		if e.Old == "" || e.New == "" {
			return fmt.Errorf("%w: replace needs old and new", ErrInvalidEdit)
		}
		if e.Old == e.New {
			return fmt.Errorf("%w: replace old and new are both %q", ErrInvalidEdit, e.Old)
		}
	case OpBold:
		if e.Row < 1 {
			return fmt.Errorf("%w: bold row must be >= 1, got %d", ErrInvalidEdit, e.Row)
		}
	case OpRemove:
		if e.Tag == "" {
			return fmt.Errorf("%w: remove needs tag", ErrInvalidEdit)
		}
	case OpAdd:
		if e.Word == "" || e.Tag == "" {
			return fmt.Errorf("%w: add needs word and tag", ErrInvalidEdit)
		}
		if strings.ContainsAny(e.Word, " \t\n") {
			return fmt.Errorf("%w: add word %q must be a single token", ErrInvalidEdit, e.Word)
		}
	case "":
		return fmt.Errorf("%w: missing op", ErrInvalidEdit)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidEdit, e.Op)
	}
	return nil
}

// String renders e in the flag syntax accepted by ParseFlag.
func (e Edit) String() string {
	switch e.Op {
	case OpReplace:
		return fmt.Sprintf("replace %s=%s", e.Old, e.New)
	case OpBold:
		return fmt.Sprintf("bold %d", e.Row)
	case OpRemove:
		return fmt.Sprintf("remove %s", e.Tag)
	case OpAdd:
		return fmt.Sprintf("add %s=%s", e.Word, e.Tag)
	default:
		return string(e.Op)
	}
}

// ValidateAll validates edits in order and reports the first failure with its
// position.
func ValidateAll(edits []Edit) error {
	for i, e := range edits {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("edit %d: %w", i+1, err)
		}
	}
	return nil
}

// Apply validates all edits and then applies them to t in order. Nothing is
// applied when any edit is invalid.
func Apply(t *domtree.Tree, edits ...Edit) error {
	if err := ValidateAll(edits); err != nil {
		return err
	}
	for _, e := range edits {
		switch e.Op {
		case OpReplace:
			t.ReplaceTag(e.Old, e.New)
		case OpBold:
			t.BoldRow(e.Row)
		case OpRemove:
			t.RemoveTag(e.Tag)
		case OpAdd:
			t.AddTag(e.Word, e.Tag)
		}
	}
	return nil
}

// ParseScript reads a YAML edit script.
func ParseScript(r io.Reader) ([]Edit, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := ValidateAll(s.Edits); err != nil {
		return nil, err
	}
	return s.Edits, nil
}

// LoadScript reads a YAML edit script from path.
func LoadScript(path string) ([]Edit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}

// ParseFlag builds an edit from a command-line value: "old=new" for replace,
// a row number for bold, a tag for remove and "word=tag" for add.
func ParseFlag(op Op, value string) (Edit, error) {
	e := Edit{Op: op}
	switch op {
	case OpReplace:
		e.Old, e.New, _ = strings.Cut(value, "=")
	case OpBold:
		n, err := strconv.Atoi(value)
		if err != nil {
			return Edit{}, fmt.Errorf("%w: bold row %q is not a number", ErrInvalidEdit, value)
		}
		e.Row = n
	case OpRemove:
		e.Tag = value
	case OpAdd:
		e.Word, e.Tag, _ = strings.Cut(value, "=")
	}
	if err := e.Validate(); err != nil {
		return Edit{}, err
	}
	return e, nil
}

package session

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dgallion1/tagtree/internal/domtree"
	"github.com/dgallion1/tagtree/internal/edit"
	"github.com/google/uuid"
)

// Session owns one tree. All access to the tree goes through the session
// lock.
type Session struct {
	mu sync.Mutex

	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	ContentHash string `json:"content_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	tree  *domtree.Tree
	edits int
}

// New wraps tree in a session with a fresh ID. data is the uploaded source and
// is only hashed.
func New(filename, title string, data []byte, tree *domtree.Tree) *Session {
	now := time.Now()
	if title == "" {
		title = filename
	}
	return &Session{
		ID:          uuid.NewString(),
		Filename:    filename,
		Title:       title,
		ContentHash: ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
		tree:        tree,
	}
}

// Apply runs edits against the session tree and compacts the arena
// afterwards. Invalid edits leave the tree unchanged.
func (s *Session) Apply(edits ...edit.Edit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := edit.Apply(s.tree, edits...); err != nil {
		return err
	}
	s.tree.Compact()
	s.edits += len(edits)
	s.UpdatedAt = time.Now()
	return nil
}

// Preview applies edits to a copy of the tree and returns the result. The
// session itself is not modified.
func (s *Session) Preview(edits ...edit.Edit) (string, error) {
	s.mu.Lock()
	c := s.tree.Clone()
	s.mu.Unlock()

	if err := edit.Apply(c, edits...); err != nil {
		return "", err
	}
	return c.HTML(), nil
}

// HTML serializes the session tree.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.HTML()
}

// Render serializes the session tree to w.
func (s *Session) Render(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Render(w)
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdatedAt = time.Now()
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash,omitempty"`
	Nodes       int       `json:"nodes"`
	Edits       int       `json:"edits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.ID,
		Filename:    s.Filename,
		Title:       s.Title,
		ContentHash: s.ContentHash,
		Nodes:       s.tree.Len(),
		Edits:       s.edits,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

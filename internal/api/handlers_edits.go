package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/tagtree/internal/edit"
)

type editRequest struct {
	Edits  []edit.Edit `json:"edits"`
	DryRun bool        `json:"dry_run"`
}

func (s *Server) handleApplyEdits(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req editRequest
	if err := dec.Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Edits) == 0 {
		jsonError(w, "at least one edit is required", http.StatusBadRequest)
		return
	}

	var html string
	var err error
	if req.DryRun {
		html, err = sess.Preview(req.Edits...)
	} else if err = sess.Apply(req.Edits...); err == nil {
		html = sess.HTML()
	}
	if err != nil {
		if errors.Is(err, edit.ErrInvalidEdit) {
			s.metrics.RecordRejected()
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !req.DryRun {
		s.metrics.RecordEdits(req.Edits)
		s.log.Info("edits applied", "session_id", sess.ID, "count", len(req.Edits))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document": sess.Snapshot(),
		"dry_run":  req.DryRun,
		"html":     html,
	})
}

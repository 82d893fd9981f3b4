package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"sessions":         s.sessions.Len(),
		"max_sessions":     s.cfg.MaxSessions,
		"session_ttl":      s.cfg.SessionTTL.String(),
		"max_upload_bytes": s.cfg.MaxUploadBytes,
	})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/tagtree/internal/config"
	"github.com/dgallion1/tagtree/internal/metrics"
	"github.com/dgallion1/tagtree/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server for tagtree.
type Server struct {
	router   chi.Router
	sessions *session.Store
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. A nil gatherer leaves
// /metrics unrouted.
func NewServer(sessions *session.Store, m *metrics.Metrics, gatherer prometheus.Gatherer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions: sessions,
		metrics:  m,
		gatherer: gatherer,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/stats", s.handleStats)

		r.Post("/api/documents", s.handleCreateDocument)
		r.Route("/api/documents/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Get("/html", s.handleDocumentHTML)
			r.Post("/edits", s.handleApplyEdits)
			r.Delete("/", s.handleDeleteDocument)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

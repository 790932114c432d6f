package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lazypower/hivemind/internal/memory"
	"github.com/lazypower/hivemind/internal/swarm"
)

// Server is the hivemind HTTP API server.
type Server struct {
	swarm   *swarm.Swarm
	mem     *memory.DB
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over the given swarm. mem may be nil when no
// collective memory database is configured; the recall route then
// reports unavailable.
func New(sw *swarm.Swarm, mem *memory.DB, version string) *Server {
	s := &Server{
		swarm:   sw,
		mem:     mem,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/agents", s.handleListAgents)
		r.Get("/agents/{agentID}", s.handleGetAgent)
		r.Post("/agents/{agentID}/learn", s.handleLearn)

		r.Post("/solve", s.handleSolve)

		r.Get("/state", s.handleState)
		r.Get("/graph", s.handleGraph)
		r.Get("/memory/recall", s.handleRecall)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := false
	if s.mem != nil && s.mem.Ping() == nil {
		dbOK = true
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"agents":  s.swarm.Len(),
	})
}

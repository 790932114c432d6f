package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lazypower/hivemind/internal/swarm"
)

// writeError emits a JSON error body. Error strings can carry quoted
// agent ids, so they are marshalled rather than spliced into a literal.
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.swarm.Agents())
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")

	a, err := s.swarm.Agent(agentID)
	if err != nil {
		http.Error(w, `{"error":"agent not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

func (s *Server) handleLearn(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")

	var req struct {
		Topic   string  `json:"topic"`
		Value   float64 `json:"value"`
		Success bool    `json:"success"`
		Context string  `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	result, err := s.swarm.AgentLearns(agentID, swarm.KnowledgeUnit{
		Topic:   req.Topic,
		Value:   req.Value,
		Success: req.Success,
		Context: req.Context,
	})
	switch {
	case errors.Is(err, swarm.ErrValidation):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, swarm.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Type == "" {
		http.Error(w, `{"error":"type required"}`, http.StatusBadRequest)
		return
	}

	result, err := s.swarm.Solve(swarm.Problem{Type: req.Type, Description: req.Description})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.swarm.State())
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.swarm.Visualize())
}

func (s *Server) handleRecall(w http.ResponseWriter, r *http.Request) {
	if s.mem == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "collective memory not configured"})
		return
	}

	query := r.URL.Query().Get("q")
	limit := 20
	if lstr := r.URL.Query().Get("limit"); lstr != "" {
		if l, err := strconv.Atoi(lstr); err == nil && l > 0 {
			limit = l
		}
	}

	recs, err := s.mem.Recall(query, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"query":   query,
		"count":   len(recs),
		"records": recs,
	})
}

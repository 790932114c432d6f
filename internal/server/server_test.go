package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lazypower/hivemind/internal/memory"
	"github.com/lazypower/hivemind/internal/swarm"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := memory.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sw, err := swarm.New(swarm.Options{PoolSize: 6, Seed: 42, Memory: db})
	if err != nil {
		t.Fatalf("swarm.New: %v", err)
	}
	return New(sw, db, "test-version")
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("version = %v, want test-version", body["version"])
	}
	if body["db"] != true {
		t.Errorf("db = %v, want true", body["db"])
	}
	if body["agents"] != float64(6) {
		t.Errorf("agents = %v, want 6", body["agents"])
	}
}

func TestListAndGetAgents(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/agents", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var agents []swarm.AgentSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &agents); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(agents) != 6 {
		t.Fatalf("agents = %d, want 6", len(agents))
	}

	req = httptest.NewRequest("GET", "/api/agents/"+agents[0].ID, nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("get agent status = %d, want %d", w.Code, http.StatusOK)
	}

	req = httptest.NewRequest("GET", "/api/agents/ghost", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown agent status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestLearnEndpoint(t *testing.T) {
	srv := testServer(t)
	agentID := srv.swarm.Agents()[0].ID

	body := `{"topic":"wal-mode","value":10,"success":true}`
	req := httptest.NewRequest("POST", "/api/agents/"+agentID+"/learn", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result swarm.LearningResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !result.Learned {
		t.Error("learned = false, want true")
	}
	if result.SwarmIQ <= 0 {
		t.Errorf("swarm iq = %f, want > 0", result.SwarmIQ)
	}

	// The learning event lands in collective memory.
	recs, err := srv.mem.Recall("wal-mode", 10)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(recs) == 0 {
		t.Error("expected learning record in collective memory")
	}
}

func TestLearnEndpointErrors(t *testing.T) {
	srv := testServer(t)
	agentID := srv.swarm.Agents()[0].ID

	// Empty topic
	req := httptest.NewRequest("POST", "/api/agents/"+agentID+"/learn", strings.NewReader(`{"topic":""}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty topic status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// Negative value
	req = httptest.NewRequest("POST", "/api/agents/"+agentID+"/learn", strings.NewReader(`{"topic":"x","value":-25}`))
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative value status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// Unknown agent. The error message quotes the id, so the body must
	// still decode as JSON.
	req = httptest.NewRequest("POST", "/api/agents/ghost/learn", strings.NewReader(`{"topic":"x"}`))
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown agent status = %d, want %d", w.Code, http.StatusNotFound)
	}
	var errBody map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("error body is not valid json: %v: %s", err, w.Body.String())
	}
	if errBody["error"] == "" {
		t.Error("expected error message in body")
	}

	// Bad JSON
	req = httptest.NewRequest("POST", "/api/agents/"+agentID+"/learn", strings.NewReader(`{`))
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad json status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSolveEndpoint(t *testing.T) {
	srv := testServer(t)

	body := `{"type":"bug","description":"nil deref on shutdown"}`
	req := httptest.NewRequest("POST", "/api/solve", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result swarm.ProblemResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result.Candidates) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if result.Adopted.AgentID == "" {
		t.Error("expected adopted solution")
	}

	// Missing type
	req = httptest.NewRequest("POST", "/api/solve", strings.NewReader(`{"description":"no type"}`))
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing type status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestStateAndGraphEndpoints(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/state", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("state status = %d, want %d", w.Code, http.StatusOK)
	}
	var state swarm.State
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.AgentCount != 6 {
		t.Errorf("agent count = %d, want 6", state.AgentCount)
	}

	req = httptest.NewRequest("GET", "/api/graph", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("graph status = %d, want %d", w.Code, http.StatusOK)
	}
	var viz swarm.Visualization
	if err := json.Unmarshal(w.Body.Bytes(), &viz); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(viz.Nodes) != 6 {
		t.Errorf("graph nodes = %d, want 6", len(viz.Nodes))
	}
}

func TestRecallEndpoint(t *testing.T) {
	srv := testServer(t)
	agentID := srv.swarm.Agents()[0].ID

	body := `{"topic":"indexing","value":3,"success":true}`
	req := httptest.NewRequest("POST", "/api/agents/"+agentID+"/learn", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("learn status = %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/memory/recall?q=indexing", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("recall status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Query   string               `json:"query"`
		Count   int                  `json:"count"`
		Records []swarm.MemoryRecord `json:"records"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode recall: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}

func TestRecallEndpointWithoutMemory(t *testing.T) {
	sw, err := swarm.New(swarm.Options{PoolSize: 3, Seed: 1})
	if err != nil {
		t.Fatalf("swarm.New: %v", err)
	}
	srv := New(sw, nil, "test-version")

	req := httptest.NewRequest("GET", "/api/memory/recall?q=x", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

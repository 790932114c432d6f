// Package swarm implements a knowledge-propagation engine for a pool of
// agents. One agent's learned experience diffuses to the rest of the pool
// with generation decay and transfer-effectiveness weighting, tracked in
// an explicit teaching/learning graph and aggregated into a single swarm
// IQ scalar.
package swarm

import (
	"log"
	"math/rand"
	"sync"
	"time"
)

// Defaults for the tunable thresholds.
const (
	DefaultEffectivenessThreshold = 0.5
	DefaultSimilarityThreshold    = 20.0
	DefaultPatternThreshold       = 0.3
)

// MemoryRecord is one durable entry in the collective memory store.
type MemoryRecord struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"` // "learning" or "solution"
	Topic      string    `json:"topic"`
	AgentID    string    `json:"agent_id"`
	Value      float64   `json:"value"`
	Success    bool      `json:"success"`
	Generation int       `json:"generation"`
	Context    string    `json:"context,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CollectiveMemory is the durable store collaborator. The swarm calls it
// best-effort around diffusion and problem solving: failures are logged
// and swallowed, never propagated, and never block an in-memory update.
type CollectiveMemory interface {
	Store(rec MemoryRecord) error
	Recall(query string, limit int) ([]MemoryRecord, error)
}

// Options configures a Swarm.
type Options struct {
	PoolSize int
	Roles    []Role
	Seed     int64

	// EffectivenessThreshold is the hard cutoff a transfer must exceed
	// to reach a target agent. Zero means DefaultEffectivenessThreshold.
	EffectivenessThreshold float64

	// SimilarityThreshold is the expertise gap below which two agents
	// count as similar at graph build time. Zero means
	// DefaultSimilarityThreshold.
	SimilarityThreshold float64

	// PatternThreshold is the frequency share above which a solution
	// approach counts as emergent. Zero means DefaultPatternThreshold.
	PatternThreshold float64

	// KnowledgeDecay is declared for forward compatibility and is not
	// applied anywhere: expertise never decays in the current engine.
	KnowledgeDecay float64

	// Memory is optional; a nil store disables durable recording.
	Memory CollectiveMemory
}

// Swarm owns a registry, its knowledge graph, the emergent pattern set,
// and a seeded RNG. All mutation is serialized through mu: one write in
// flight at a time per Swarm, reads may share. Independent Swarm
// instances need no coordination.
type Swarm struct {
	mu       sync.RWMutex
	registry *Registry
	graph    *Graph
	patterns *PatternSet
	rng      *rand.Rand
	memory   CollectiveMemory

	effectivenessThreshold float64
	patternThreshold       float64
}

// New constructs a pool of opts.PoolSize agents, builds the initial
// knowledge graph, and returns the ready Swarm. Construction is
// deterministic given opts.Seed.
func New(opts Options) (*Swarm, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	registry, err := NewPool(opts.PoolSize, opts.Roles, rng)
	if err != nil {
		return nil, err
	}

	simThreshold := opts.SimilarityThreshold
	if simThreshold == 0 {
		simThreshold = DefaultSimilarityThreshold
	}
	effThreshold := opts.EffectivenessThreshold
	if effThreshold == 0 {
		effThreshold = DefaultEffectivenessThreshold
	}
	patThreshold := opts.PatternThreshold
	if patThreshold == 0 {
		patThreshold = DefaultPatternThreshold
	}

	return &Swarm{
		registry:               registry,
		graph:                  BuildGraph(registry.Agents(), simThreshold),
		patterns:               NewPatternSet(patThreshold),
		rng:                    rng,
		memory:                 opts.Memory,
		effectivenessThreshold: effThreshold,
		patternThreshold:       patThreshold,
	}, nil
}

// AgentSnapshot is a copy of one agent's state taken under the read
// lock, safe to hand to concurrent readers.
type AgentSnapshot struct {
	ID              string   `json:"id"`
	Role            Role     `json:"role"`
	Expertise       float64  `json:"expertise"`
	LearningSpeed   float64  `json:"learning_speed"`
	TeachingAbility float64  `json:"teaching_ability"`
	ExperienceLevel int      `json:"experience_level"`
	Knowledge       []string `json:"knowledge"`
	Successes       int      `json:"successes"`
	Failures        int      `json:"failures"`
}

func snapshot(a *Agent) AgentSnapshot {
	return AgentSnapshot{
		ID:              a.ID,
		Role:            a.Role,
		Expertise:       a.Expertise,
		LearningSpeed:   a.LearningSpeed,
		TeachingAbility: a.TeachingAbility,
		ExperienceLevel: a.ExperienceLevel,
		Knowledge:       a.Topics(),
		Successes:       len(a.Successes),
		Failures:        len(a.Failures),
	}
}

// Agents returns snapshots of all agents in insertion order.
func (s *Swarm) Agents() []AgentSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AgentSnapshot, 0, s.registry.Len())
	for _, a := range s.registry.Agents() {
		out = append(out, snapshot(a))
	}
	return out
}

// Agent returns a snapshot of one agent, or ErrNotFound.
func (s *Swarm) Agent(id string) (AgentSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, err := s.registry.Agent(id)
	if err != nil {
		return AgentSnapshot{}, err
	}
	return snapshot(a), nil
}

// Len returns the pool size. The pool never grows or shrinks after
// construction, so no lock is needed.
func (s *Swarm) Len() int {
	return s.registry.Len()
}

// Score recomputes the swarm IQ from current state.
func (s *Swarm) Score() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Score(s.registry)
}

// State is the summary returned by the read API.
type State struct {
	SwarmIQ          float64  `json:"swarm_iq"`
	AgentCount       int      `json:"agent_count"`
	TotalKnowledge   int      `json:"total_knowledge"`
	EmergentPatterns []string `json:"emergent_patterns"`
	EdgeCount        int      `json:"edge_count"`
}

// State returns the current swarm summary.
func (s *Swarm) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Swarm) stateLocked() State {
	return State{
		SwarmIQ:          Score(s.registry),
		AgentCount:       s.registry.Len(),
		TotalKnowledge:   s.registry.DistinctTopics(),
		EmergentPatterns: s.patterns.All(),
		EdgeCount:        s.graph.EdgeCount(),
	}
}

// VizNode is one agent in the visualization payload.
type VizNode struct {
	ID              string   `json:"id"`
	Role            Role     `json:"role"`
	Expertise       float64  `json:"expertise"`
	ExperienceLevel int      `json:"experience_level"`
	Knowledge       []string `json:"knowledge"`
	Similar         []string `json:"similar"`
}

// VizEdge is one completed transfer in the visualization payload.
type VizEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Topic string `json:"topic"`
}

// Visualization is a node/edge list suitable for external rendering,
// plus the state summary.
type Visualization struct {
	Nodes []VizNode `json:"nodes"`
	Edges []VizEdge `json:"edges"`
	State State     `json:"state"`
}

// Visualize exports the pool and its teaching edges for rendering.
// Ordering follows registry insertion order, so output is stable.
func (s *Swarm) Visualize() Visualization {
	s.mu.RLock()
	defer s.mu.RUnlock()

	viz := Visualization{State: s.stateLocked()}
	for _, a := range s.registry.Agents() {
		node := s.graph.Node(a.ID)
		viz.Nodes = append(viz.Nodes, VizNode{
			ID:              a.ID,
			Role:            a.Role,
			Expertise:       a.Expertise,
			ExperienceLevel: a.ExperienceLevel,
			Knowledge:       a.Topics(),
			Similar:         node.Similar,
		})
		for _, e := range node.Teaching {
			viz.Edges = append(viz.Edges, VizEdge{From: a.ID, To: e.Peer, Topic: e.Topic})
		}
	}
	return viz
}

// remember stores records in collective memory, best-effort. Called
// outside the write lock; a failing store never corrupts in-memory state.
func (s *Swarm) remember(recs []MemoryRecord) {
	if s.memory == nil {
		return
	}
	for _, rec := range recs {
		if err := s.memory.Store(rec); err != nil {
			log.Printf("collective memory: store %s/%s: %v", rec.Kind, rec.Topic, err)
		}
	}
}

// recallPrior queries collective memory for records related to topic,
// best-effort. Used only for logging context before a learning event.
func (s *Swarm) recallPrior(topic string) {
	if s.memory == nil {
		return
	}
	recs, err := s.memory.Recall(topic, 5)
	if err != nil {
		log.Printf("collective memory: recall %q: %v", topic, err)
		return
	}
	if len(recs) > 0 {
		log.Printf("collective memory: %d prior records for %q", len(recs), topic)
	}
}

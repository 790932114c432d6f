package swarm

import (
	"fmt"
	"math/rand"
)

// Registry holds the canonical agent set in insertion order. All iteration
// over agents uses this order so that runs with a fixed seed are
// reproducible.
type Registry struct {
	agents []*Agent
	byID   map[string]*Agent
}

// NewPool deterministically constructs size agents round-robined across
// roles, drawing each agent's starting expertise, learning speed, and
// teaching ability from rng. Passing a seeded rng makes pool construction
// fully reproducible. An empty role slice falls back to DefaultRoles.
func NewPool(size int, roles []Role, rng *rand.Rand) (*Registry, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: pool size must be positive, got %d", ErrConfiguration, size)
	}
	if len(roles) == 0 {
		roles = DefaultRoles()
	}

	r := &Registry{
		agents: make([]*Agent, 0, size),
		byID:   make(map[string]*Agent, size),
	}
	for i := 0; i < size; i++ {
		role := roles[i%len(roles)]
		a := &Agent{
			ID:   fmt.Sprintf("%s-%d", role, i+1),
			Role: role,
			// Starting expertise lands in [10, 50); it grows without
			// bound from there as the agent learns.
			Expertise:       10 + rng.Float64()*40,
			LearningSpeed:   0.1 + rng.Float64()*0.9,
			TeachingAbility: 0.1 + rng.Float64()*0.9,
			Knowledge:       make(map[string]bool),
		}
		r.agents = append(r.agents, a)
		r.byID[a.ID] = a
	}
	return r, nil
}

// Agent returns the agent with the given id, or ErrNotFound.
func (r *Registry) Agent(id string) (*Agent, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return a, nil
}

// Agents returns all agents in insertion order. The returned slice is the
// registry's backing store; callers must not reorder it.
func (r *Registry) Agents() []*Agent {
	return r.agents
}

// Len returns the number of agents in the pool.
func (r *Registry) Len() int {
	return len(r.agents)
}

// DistinctTopics returns the size of the union of all agents' knowledge sets.
func (r *Registry) DistinctTopics() int {
	seen := make(map[string]bool)
	for _, a := range r.agents {
		for t := range a.Knowledge {
			seen[t] = true
		}
	}
	return len(seen)
}

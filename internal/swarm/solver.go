package swarm

import (
	"log"
	"time"
)

// problemRoles maps a problem type to the roles best suited to it.
// Unmapped types fall through to fallbackRoles so Solve never fails on
// an unrecognized type.
var problemRoles = map[string][]Role{
	"bug":           {RoleDeveloper, RoleTester},
	"security":      {RoleSecurity, RoleReviewer},
	"performance":   {RoleOptimizer, RoleDeveloper},
	"design":        {RoleArchitect, RoleReviewer},
	"documentation": {RoleDocumenter, RoleResearcher},
	"research":      {RoleResearcher, RoleArchitect},
}

var fallbackRoles = []Role{RoleDeveloper, RoleArchitect}

// roleApproach labels the solution style each role brings to a problem.
var roleApproach = map[Role]string{
	RoleArchitect:  "design-first",
	RoleDeveloper:  "implement-iterate",
	RoleTester:     "test-driven",
	RoleReviewer:   "review-refine",
	RoleOptimizer:  "profile-optimize",
	RoleSecurity:   "threat-model",
	RoleDocumenter: "document-clarify",
	RoleResearcher: "research-prototype",
}

// Minimum expertise for an agent to be drafted onto a problem, and the
// number of agents drafted when nobody qualifies.
const (
	solverExpertiseFloor = 30.0
	solverFallbackCount  = 5
)

// Problem is a typed unit of work submitted to the pool.
type Problem struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Candidate is one agent's independent attempt at a problem.
type Candidate struct {
	AgentID    string  `json:"agent_id"`
	Role       Role    `json:"role"`
	Approach   string  `json:"approach"`
	Confidence float64 `json:"confidence"`
	Quality    float64 `json:"quality"`
}

// ProblemResult is returned by Solve.
type ProblemResult struct {
	Problem          Problem     `json:"problem"`
	Candidates       []Candidate `json:"candidates"`
	Adopted          Candidate   `json:"adopted"`
	SwarmIQ          float64     `json:"swarm_iq"`
	EmergentPatterns []string    `json:"emergent_patterns"`
}

// Solve drafts the agents suited to the problem, elicits one candidate
// solution from each, feeds every attempt back through diffusion as a
// problem_<type> knowledge unit, adopts the highest-quality candidate,
// and runs pattern detection over the batch. The whole operation runs
// under the single write lock so that interleaved calls cannot corrupt
// the edge logs or the score.
func (s *Swarm) Solve(problem Problem) (*ProblemResult, error) {
	topic := "problem_" + problem.Type
	s.recallPrior(topic)

	s.mu.Lock()
	result, recs := s.solve(problem, topic)
	s.mu.Unlock()

	s.remember(recs)
	return result, nil
}

func (s *Swarm) solve(problem Problem, topic string) (*ProblemResult, []MemoryRecord) {
	selected := s.draft(problem.Type)

	result := &ProblemResult{Problem: problem}
	var recs []MemoryRecord

	best := -1
	for _, a := range selected {
		approach, ok := roleApproach[a.Role]
		if !ok {
			approach = "implement-iterate"
		}

		// Solution quality is a seeded draw scaled by the agent's
		// expertise, so a fixed seed reproduces the full trajectory.
		quality := s.rng.Float64() * a.Expertise
		c := Candidate{
			AgentID:    a.ID,
			Role:       a.Role,
			Approach:   approach,
			Confidence: a.Expertise / 100,
			Quality:    quality,
		}
		result.Candidates = append(result.Candidates, c)
		if best < 0 || quality > result.Candidates[best].Quality {
			best = len(result.Candidates) - 1
		}

		// The attempt itself is a lesson: diffuse it to the pool.
		_, learnRecs, err := s.learn(a.ID, KnowledgeUnit{
			Topic:   topic,
			Value:   quality / 10,
			Success: quality > 50,
			Context: problem.Description,
		})
		if err != nil {
			// Selected agents come straight from the registry, so a
			// lookup failure here would be a programming error.
			log.Printf("solve: learn for selected agent %s: %v", a.ID, err)
			continue
		}
		recs = append(recs, learnRecs...)
	}

	result.Adopted = result.Candidates[best]

	approaches := make([]string, len(result.Candidates))
	for i, c := range result.Candidates {
		approaches[i] = c.Approach
	}
	result.EmergentPatterns = s.patterns.Observe(approaches)
	result.SwarmIQ = Score(s.registry)

	recs = append(recs, MemoryRecord{
		Kind:      "solution",
		Topic:     topic,
		AgentID:   result.Adopted.AgentID,
		Value:     result.Adopted.Quality,
		Success:   result.Adopted.Quality > 50,
		Context:   problem.Description,
		CreatedAt: time.Now(),
	})
	return result, recs
}

// draft selects every agent whose role suits the problem type and whose
// expertise clears the floor. An empty selection falls back to the first
// agents in registry order rather than failing.
func (s *Swarm) draft(problemType string) []*Agent {
	roles, ok := problemRoles[problemType]
	if !ok {
		roles = fallbackRoles
	}
	wanted := make(map[Role]bool, len(roles))
	for _, r := range roles {
		wanted[r] = true
	}

	var selected []*Agent
	for _, a := range s.registry.Agents() {
		if wanted[a.Role] && a.Expertise > solverExpertiseFloor {
			selected = append(selected, a)
		}
	}
	if len(selected) == 0 {
		agents := s.registry.Agents()
		n := solverFallbackCount
		if len(agents) < n {
			n = len(agents)
		}
		selected = agents[:n]
	}
	return selected
}

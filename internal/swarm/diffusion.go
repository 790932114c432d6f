package swarm

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// KnowledgeUnit is one discrete lesson. Generation is 0 for
// directly-learned knowledge and increments each time the unit is
// retransmitted, decaying its value on successive hops.
type KnowledgeUnit struct {
	Topic      string  `json:"topic"`
	Value      float64 `json:"value"` // magnitude of the lesson; 0 means default 1
	Success    bool    `json:"success"`
	Context    string  `json:"context,omitempty"` // originating problem, if any
	Generation int     `json:"generation"`
}

// effectiveValue returns the unit's value, defaulting to 1 when unset.
func (u KnowledgeUnit) effectiveValue() float64 {
	if u.Value == 0 {
		return 1
	}
	return u.Value
}

// Transfer describes one successful propagation to a target agent.
type Transfer struct {
	AgentID       string        `json:"agent_id"`
	Effectiveness float64       `json:"effectiveness"`
	Unit          KnowledgeUnit `json:"unit"`
}

// LearningResult is returned by AgentLearns.
type LearningResult struct {
	Learned         bool       `json:"learned"`
	PropagatedTo    []Transfer `json:"propagated_to"`
	SwarmIQ         float64    `json:"swarm_iq"`
	SourceExpertise float64    `json:"source_expertise"`
}

// effectiveness scores a single-hop transfer from src to dst. The
// expertise-match term is clamped to [0,1] so a gap above 100 units
// cannot drive the score negative.
func effectiveness(src, dst *Agent, generation int) float64 {
	match := 1 - math.Abs(src.Expertise-dst.Expertise)/100
	if match < 0 {
		match = 0
	}
	base := (src.TeachingAbility + dst.LearningSpeed + match) / 3
	return base * math.Pow(0.9, float64(generation))
}

// AgentLearns records a knowledge unit on the source agent and fans it
// out one hop to every other agent in the pool. Targets whose transfer
// effectiveness exceeds the threshold receive a derived unit (generation
// +1); the derived unit is not re-propagated to third parties. A
// validation failure leaves the swarm unmutated.
func (s *Swarm) AgentLearns(agentID string, unit KnowledgeUnit) (*LearningResult, error) {
	if strings.TrimSpace(unit.Topic) == "" {
		return nil, fmt.Errorf("%w: topic must not be empty", ErrValidation)
	}
	// Expertise never decreases, so a lesson cannot carry negative value.
	if unit.Value < 0 {
		return nil, fmt.Errorf("%w: value must not be negative, got %g", ErrValidation, unit.Value)
	}

	s.recallPrior(unit.Topic)

	s.mu.Lock()
	result, recs, err := s.learn(agentID, unit)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.remember(recs)
	return result, nil
}

// learn performs the diffusion under the caller-held write lock.
// It returns the collective-memory records to persist after unlock.
func (s *Swarm) learn(agentID string, unit KnowledgeUnit) (*LearningResult, []MemoryRecord, error) {
	source, err := s.registry.Agent(agentID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	value := unit.effectiveValue()

	source.Knowledge[unit.Topic] = true
	source.Expertise += value
	source.ExperienceLevel++
	source.recordOutcome(unit.Topic, value, unit.Success, now)

	recs := []MemoryRecord{{
		Kind:       "learning",
		Topic:      unit.Topic,
		AgentID:    source.ID,
		Value:      value,
		Success:    unit.Success,
		Generation: unit.Generation,
		Context:    unit.Context,
		CreatedAt:  now,
	}}

	result := &LearningResult{Learned: true}
	for _, target := range s.registry.Agents() {
		if target.ID == source.ID {
			continue
		}

		eff := effectiveness(source, target, unit.Generation)
		if eff <= s.effectivenessThreshold {
			continue
		}

		derived := unit
		derived.Generation = unit.Generation + 1
		derived.Value = value * eff

		target.Knowledge[derived.Topic] = true
		target.Expertise += derived.Value
		s.graph.RecordEdge(source.ID, target.ID, derived.Topic, EdgeTeaching)
		s.graph.RecordEdge(source.ID, target.ID, derived.Topic, EdgeLearning)

		result.PropagatedTo = append(result.PropagatedTo, Transfer{
			AgentID:       target.ID,
			Effectiveness: eff,
			Unit:          derived,
		})
	}

	result.SwarmIQ = Score(s.registry)
	result.SourceExpertise = source.Expertise
	return result, recs, nil
}

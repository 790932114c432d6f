package swarm

import (
	"math"
	"testing"
)

func TestScoreEmptyPool(t *testing.T) {
	if got := Score(&Registry{}); got != 0 {
		t.Errorf("score = %f, want 0", got)
	}
}

func TestScoreSingleAgentNoKnowledge(t *testing.T) {
	r := &Registry{
		agents: []*Agent{{ID: "a", Expertise: 10, Knowledge: map[string]bool{}}},
	}

	want := 10 * math.Log10(2) // diversity term is 1 with no topics
	if got := Score(r); math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %f, want %f", got, want)
	}
}

func TestScoreKnowledgeDiversity(t *testing.T) {
	r := &Registry{
		agents: []*Agent{
			{ID: "a", Expertise: 20, Knowledge: map[string]bool{"x": true}},
			{ID: "b", Expertise: 20, Knowledge: map[string]bool{"x": true, "y": true}},
		},
	}

	// avg=20, n=2, distinct=2 → 20 × log10(3) × (1 + 2/10)
	want := 20 * math.Log10(3) * 1.2
	if got := Score(r); math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %f, want %f", got, want)
	}
}

func TestScoreMonotonicInExpertise(t *testing.T) {
	lo := &Registry{agents: []*Agent{
		{ID: "a", Expertise: 10, Knowledge: map[string]bool{"x": true}},
		{ID: "b", Expertise: 10, Knowledge: map[string]bool{}},
	}}
	hi := &Registry{agents: []*Agent{
		{ID: "a", Expertise: 30, Knowledge: map[string]bool{"x": true}},
		{ID: "b", Expertise: 30, Knowledge: map[string]bool{}},
	}}

	if Score(lo) >= Score(hi) {
		t.Errorf("score not monotonic in expertise: lo=%f hi=%f", Score(lo), Score(hi))
	}
	if Score(lo) < 0 || Score(hi) < 0 {
		t.Error("score went negative")
	}
}

func TestScoreIdempotent(t *testing.T) {
	r := &Registry{agents: []*Agent{
		{ID: "a", Expertise: 37.5, Knowledge: map[string]bool{"x": true, "y": true}},
		{ID: "b", Expertise: 12.25, Knowledge: map[string]bool{"z": true}},
	}}

	if Score(r) != Score(r) {
		t.Error("repeated calls without mutation must yield identical results")
	}
}

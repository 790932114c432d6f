package swarm

import "math"

// Score computes the swarm IQ: a single scalar combining average
// expertise, pool size, and knowledge diversity. Pure function of the
// registry's current state — no side effects, safe to call repeatedly.
//
//	score = avgExpertise × log10(n+1) × (1 + distinctTopics/(n×5))
//
// An empty pool scores 0.
func Score(r *Registry) float64 {
	n := r.Len()
	if n == 0 {
		return 0
	}

	var total float64
	for _, a := range r.Agents() {
		total += a.Expertise
	}
	avg := total / float64(n)

	diversity := 1 + float64(r.DistinctTopics())/(float64(n)*5)
	return avg * math.Log10(float64(n)+1) * diversity
}

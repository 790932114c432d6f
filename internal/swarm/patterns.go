package swarm

import "sort"

// PatternSet tracks emergent solution approaches. The set only grows:
// once an approach crosses the convergence threshold in any solving
// batch, it stays flagged for the life of the swarm.
type PatternSet struct {
	threshold float64
	seen      map[string]bool
}

// NewPatternSet creates an empty pattern set with the given frequency
// threshold (a share of the batch size, e.g. 0.3 for 30%).
func NewPatternSet(threshold float64) *PatternSet {
	return &PatternSet{threshold: threshold, seen: make(map[string]bool)}
}

// Observe computes per-approach frequencies across the batch and adds
// every approach whose share strictly exceeds the threshold. Returns the
// full pattern set after the update. Deterministic given its input.
func (p *PatternSet) Observe(approaches []string) []string {
	if len(approaches) > 0 {
		counts := make(map[string]int)
		for _, a := range approaches {
			counts[a]++
		}
		cutoff := p.threshold * float64(len(approaches))
		for a, n := range counts {
			if float64(n) > cutoff {
				p.seen[a] = true
			}
		}
	}
	return p.All()
}

// Has reports whether an approach has been flagged as emergent.
func (p *PatternSet) Has(approach string) bool {
	return p.seen[approach]
}

// All returns the flagged approaches, sorted.
func (p *PatternSet) All() []string {
	out := make([]string, 0, len(p.seen))
	for a := range p.seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

package swarm

import (
	"math"
	"time"
)

// EdgeKind distinguishes the two directions an edge log records.
type EdgeKind string

const (
	EdgeTeaching EdgeKind = "teaching"
	EdgeLearning EdgeKind = "learning"
)

// Edge is one entry in a node's edge log: the peer agent, the topic that
// crossed the link, and when.
type Edge struct {
	Peer  string    `json:"peer"`
	Topic string    `json:"topic"`
	At    time.Time `json:"at"`
}

// GraphNode holds one agent's position in the knowledge graph: its
// similar-agent list and its append-only teaching/learning edge logs.
// A later diffusion event between the same pair appends a new edge rather
// than deduplicating, preserving full history for analysis.
type GraphNode struct {
	AgentID  string
	Similar  []string
	Teaching []Edge // outgoing: this agent taught Peer
	Learning []Edge // incoming: this agent learned from Peer
}

// Graph is the derived teaching/learning structure over the pool.
// Node order mirrors registry insertion order.
type Graph struct {
	nodes map[string]*GraphNode
	order []string

	// transfers counts teaching edges, one per completed knowledge
	// transfer (each transfer also records a learning edge on the
	// target node).
	transfers int
}

// BuildGraph computes the initial graph over agents. Two agents are
// similar when they share a role or their expertise differs by less than
// similarityThreshold. Similarity is computed once here and is NOT
// refreshed as expertise drifts — the lists go stale by design, and
// consumers must treat them as a startup snapshot.
func BuildGraph(agents []*Agent, similarityThreshold float64) *Graph {
	g := &Graph{nodes: make(map[string]*GraphNode, len(agents))}
	for _, a := range agents {
		node := &GraphNode{AgentID: a.ID}
		for _, other := range agents {
			if other.ID == a.ID {
				continue
			}
			if other.Role == a.Role || math.Abs(other.Expertise-a.Expertise) < similarityThreshold {
				node.Similar = append(node.Similar, other.ID)
			}
		}
		g.nodes[a.ID] = node
		g.order = append(g.order, a.ID)
	}
	return g
}

// RecordEdge appends one entry to the corresponding node's edge log:
// teaching edges land on the source node, learning edges on the target.
// Side effect only; unknown ids are ignored.
func (g *Graph) RecordEdge(sourceID, targetID, topic string, kind EdgeKind) {
	now := time.Now()
	switch kind {
	case EdgeTeaching:
		if n, ok := g.nodes[sourceID]; ok {
			n.Teaching = append(n.Teaching, Edge{Peer: targetID, Topic: topic, At: now})
			g.transfers++
		}
	case EdgeLearning:
		if n, ok := g.nodes[targetID]; ok {
			n.Learning = append(n.Learning, Edge{Peer: sourceID, Topic: topic, At: now})
		}
	}
}

// Node returns the graph node for an agent id, or nil.
func (g *Graph) Node(agentID string) *GraphNode {
	return g.nodes[agentID]
}

// EdgeCount returns the number of completed knowledge transfers recorded
// in the graph.
func (g *Graph) EdgeCount() int {
	return g.transfers
}

// Nodes returns all nodes in registry insertion order.
func (g *Graph) Nodes() []*GraphNode {
	out := make([]*GraphNode, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

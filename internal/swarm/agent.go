package swarm

import (
	"sort"
	"time"
)

// Role identifies the functional specialty an agent plays within the pool.
type Role string

const (
	RoleArchitect  Role = "architect"
	RoleDeveloper  Role = "developer"
	RoleTester     Role = "tester"
	RoleReviewer   Role = "reviewer"
	RoleOptimizer  Role = "optimizer"
	RoleSecurity   Role = "security"
	RoleDocumenter Role = "documenter"
	RoleResearcher Role = "researcher"
)

// DefaultRoles returns the standard role set used when pool construction
// is not given an explicit role distribution.
func DefaultRoles() []Role {
	return []Role{
		RoleArchitect,
		RoleDeveloper,
		RoleTester,
		RoleReviewer,
		RoleOptimizer,
		RoleSecurity,
		RoleDocumenter,
		RoleResearcher,
	}
}

// Outcome records one past learning event for an agent: what was learned,
// how much it was worth, and when.
type Outcome struct {
	Topic string    `json:"topic"`
	Value float64   `json:"value"`
	At    time.Time `json:"at"`
}

// Agent is a logical actor in the pool. Expertise grows without bound as
// the agent learns; learning speed and teaching ability are fixed at
// creation. Agents are created once at pool initialization and never
// removed during a run.
type Agent struct {
	ID              string
	Role            Role
	Expertise       float64
	LearningSpeed   float64 // (0,1], fixed at creation
	TeachingAbility float64 // (0,1], fixed at creation
	ExperienceLevel int
	Knowledge       map[string]bool
	Successes       []Outcome
	Failures        []Outcome
}

// Knows reports whether the agent's knowledge set contains topic.
func (a *Agent) Knows(topic string) bool {
	return a.Knowledge[topic]
}

// Topics returns the agent's knowledge set as a sorted slice.
func (a *Agent) Topics() []string {
	topics := make([]string, 0, len(a.Knowledge))
	for t := range a.Knowledge {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// recordOutcome appends to the success or failure log.
func (a *Agent) recordOutcome(topic string, value float64, success bool, at time.Time) {
	o := Outcome{Topic: topic, Value: value, At: at}
	if success {
		a.Successes = append(a.Successes, o)
	} else {
		a.Failures = append(a.Failures, o)
	}
}

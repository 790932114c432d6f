package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lazypower/hivemind/internal/config"
	"github.com/lazypower/hivemind/internal/swarm"
)

var (
	simAgents int
	simSeed   int64
	simRounds int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an offline learn/solve simulation and print the swarm IQ trajectory",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simAgents, "agents", 8, "pool size")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "rng seed (same seed, same trajectory)")
	simulateCmd.Flags().IntVar(&simRounds, "rounds", 5, "number of learn/solve rounds")
}

// simulationProblems cycles through the problem types the solver knows.
var simulationProblems = []swarm.Problem{
	{Type: "bug", Description: "intermittent nil deref in the request path"},
	{Type: "security", Description: "audit token handling"},
	{Type: "performance", Description: "p99 latency regression"},
	{Type: "design", Description: "split the ingest pipeline"},
	{Type: "documentation", Description: "document the public API"},
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := config.Default().Swarm
	cfg.PoolSize = simAgents
	cfg.Seed = simSeed

	sw, err := swarm.New(swarmOptions(cfg, nil))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "simulating %d agents, seed %d, %d rounds\n\n", simAgents, simSeed, simRounds)
	fmt.Printf("round  0: iq=%.2f\n", sw.Score())

	for round := 1; round <= simRounds; round++ {
		agents := sw.Agents()
		seedAgent := agents[(round-1)%len(agents)]

		result, err := sw.AgentLearns(seedAgent.ID, swarm.KnowledgeUnit{
			Topic:   fmt.Sprintf("lesson-%d", round),
			Value:   float64(round),
			Success: true,
		})
		if err != nil {
			return fmt.Errorf("round %d learn: %w", round, err)
		}

		problem := simulationProblems[(round-1)%len(simulationProblems)]
		solved, err := sw.Solve(problem)
		if err != nil {
			return fmt.Errorf("round %d solve: %w", round, err)
		}

		fmt.Printf("round %2d: iq=%.2f  learned=%s→%d peers  solved=%s by %s (q=%.1f)\n",
			round, solved.SwarmIQ, seedAgent.ID, len(result.PropagatedTo),
			problem.Type, solved.Adopted.AgentID, solved.Adopted.Quality)
	}

	state := sw.State()
	fmt.Printf("\nfinal: iq=%.2f topics=%d edges=%d patterns=%v\n",
		state.SwarmIQ, state.TotalKnowledge, state.EdgeCount, state.EmergentPatterns)
	return nil
}

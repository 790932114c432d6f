package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/hivemind/internal/config"
	"github.com/lazypower/hivemind/internal/memory"
	"github.com/lazypower/hivemind/internal/server"
	"github.com/lazypower/hivemind/internal/swarm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

// swarmOptions maps the config section onto engine options.
func swarmOptions(cfg config.SwarmConfig, mem swarm.CollectiveMemory) swarm.Options {
	roles := make([]swarm.Role, 0, len(cfg.Roles))
	for _, r := range cfg.Roles {
		roles = append(roles, swarm.Role(r))
	}
	return swarm.Options{
		PoolSize:               cfg.PoolSize,
		Roles:                  roles,
		Seed:                   cfg.Seed,
		EffectivenessThreshold: cfg.EffectivenessThreshold,
		SimilarityThreshold:    cfg.SimilarityThreshold,
		PatternThreshold:       cfg.PatternThreshold,
		KnowledgeDecay:         cfg.KnowledgeDecay,
		Memory:                 mem,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Resolve database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = memory.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := memory.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	sw, err := swarm.New(swarmOptions(cfg.Swarm, db))
	if err != nil {
		return fmt.Errorf("create swarm: %w", err)
	}

	srv := server.New(sw, db, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "hivemind serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  pool: %d agents (seed %d)\n", sw.Len(), cfg.Swarm.Seed)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}

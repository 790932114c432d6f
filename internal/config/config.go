package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all hivemind configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Swarm    SwarmConfig    `yaml:"swarm"`
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SwarmConfig struct {
	PoolSize int      `yaml:"pool_size"`
	Roles    []string `yaml:"roles"` // empty = all built-in roles
	Seed     int64    `yaml:"seed"`

	// Tunables. Zero values fall back to the engine defaults.
	EffectivenessThreshold float64 `yaml:"effectiveness_threshold"`
	SimilarityThreshold    float64 `yaml:"similarity_threshold"`
	PatternThreshold       float64 `yaml:"pattern_threshold"`

	// KnowledgeDecay is accepted but not yet applied by the engine;
	// expertise does not decay.
	KnowledgeDecay float64 `yaml:"knowledge_decay"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 38080,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via memory.DefaultDBPath()
		},
		Swarm: SwarmConfig{
			PoolSize: 8,
			Seed:     1,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

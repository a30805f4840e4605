package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Store backends for the role-index persistence sink.
const (
	StoreBackendMemory    = "memory"
	StoreBackendZookeeper = "zookeeper"
	StoreBackendRedis     = "redis"
)

// Config holds cluster-sim configuration
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Cluster ClusterConfig `json:"cluster" yaml:"cluster"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Seed    SeedConfig    `json:"seed" yaml:"seed"`
	Logger  logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Hostname string `json:"hostname" yaml:"hostname"`
	Port     int    `json:"port" yaml:"port"`
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Hostname, s.Port)
}

type ClusterConfig struct {
	// LiveNodes seeds the static live-node set when gossip is off.
	LiveNodes []string     `json:"live_nodes" yaml:"live_nodes"`
	Gossip    GossipConfig `json:"gossip" yaml:"gossip"`
}

type GossipConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	NodeID   string   `json:"node_id" yaml:"node_id"`
	BindAddr string   `json:"bind_addr" yaml:"bind_addr"`
	Port     int      `json:"port" yaml:"port"`
	Seeds    []string `json:"seeds" yaml:"seeds"`
}

type StoreConfig struct {
	Backend string `json:"backend" yaml:"backend"`
	// Servers are the ZooKeeper ensemble addresses.
	Servers []string `json:"servers" yaml:"servers"`
	// RedisAddr is the Redis address for the redis backend.
	RedisAddr string `json:"redis_addr" yaml:"redis_addr"`
	// SessionTimeoutMS bounds the ZooKeeper session handshake.
	SessionTimeoutMS int `json:"session_timeout_ms" yaml:"session_timeout_ms"`
}

// SeedConfig pre-populates the simulated cluster at startup.
type SeedConfig struct {
	// NodeValues maps node id to initial key/value state.
	NodeValues map[string]map[string]any `json:"node_values" yaml:"node_values"`
	// Collections are created after all nodes are registered.
	Collections []CollectionSeed `json:"collections" yaml:"collections"`
}

type CollectionSeed struct {
	Name     string `json:"name" yaml:"name"`
	Shards   int    `json:"shards" yaml:"shards"`
	Replicas int    `json:"replicas" yaml:"replicas"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Hostname: "127.0.0.1",
			Port:     8090,
		},
		Cluster: ClusterConfig{
			Gossip: GossipConfig{
				BindAddr: "127.0.0.1",
				Port:     7946,
			},
		},
		Store: StoreConfig{
			Backend:          StoreBackendMemory,
			SessionTimeoutMS: 5000,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "sim", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

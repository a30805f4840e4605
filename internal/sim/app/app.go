package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-cluster-sim/internal/sim/adapter/inbound/http"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/adapter/outbound/liveness"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/adapter/outbound/memstore"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/adapter/outbound/redisstore"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/adapter/outbound/topology"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/adapter/outbound/zkstore"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/config"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/service"
	"github.com/anthanhphan/go-cluster-sim/pkg/gossip"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg      *config.Config
	server   *httpHandler.Server
	gossip   *gossip.Membership
	provider *service.Provider
	topology *topology.Simulator
	closers  []func() error
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	a := &App{cfg: cfg}

	// 3. Configuration store (role-index persistence sink)
	configStore, err := a.buildConfigStore(cfg)
	if err != nil {
		return nil, err
	}

	// 4. Live-node membership
	var membership port.Membership
	if cfg.Cluster.Gossip.Enabled {
		nodeID := cfg.Cluster.Gossip.NodeID
		if nodeID == "" {
			host, _ := os.Hostname()
			nodeID = fmt.Sprintf("%s-%d", host, cfg.Cluster.Gossip.Port)
		}
		g, err := gossip.New(nodeID, cfg.Cluster.Gossip.BindAddr, cfg.Cluster.Gossip.Port)
		if err != nil {
			return nil, fmt.Errorf("failed to init gossip: %w", err)
		}
		a.gossip = g
		membership = g
	} else {
		membership = liveness.New(cfg.Cluster.LiveNodes...)
	}

	// 5. Topology simulator
	topo := topology.New()
	for _, node := range membership.Nodes() {
		topo.AddNode(node)
	}
	a.topology = topo

	// 6. Node-state provider, seeded from config
	initial := make(map[string]map[string]domain.Value, len(cfg.Seed.NodeValues))
	for node, values := range cfg.Seed.NodeValues {
		converted := make(map[string]domain.Value, len(values))
		for k, v := range values {
			converted[k] = domain.Scalar(v)
		}
		initial[node] = converted
	}
	provider, err := service.NewProvider(membership, topo, configStore, initial)
	if err != nil {
		return nil, fmt.Errorf("failed to init provider: %w", err)
	}
	a.provider = provider

	for _, coll := range cfg.Seed.Collections {
		if err := topo.AddCollection(coll.Name, coll.Shards, coll.Replicas); err != nil {
			return nil, fmt.Errorf("failed to seed collection %s: %w", coll.Name, err)
		}
	}

	// 7. HTTP surface
	a.server = httpHandler.NewServer(cfg, provider)

	return a, nil
}

func (a *App) buildConfigStore(cfg *config.Config) (port.ConfigStore, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendZookeeper:
		timeout := time.Duration(cfg.Store.SessionTimeoutMS) * time.Millisecond
		store, err := zkstore.Connect(cfg.Store.Servers, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to init zookeeper store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.StoreBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		store := redisstore.New(client)
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.StoreBackendMemory, "":
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// Provider returns the node-state provider for in-process consumers.
func (a *App) Provider() *service.Provider {
	return a.provider
}

// Topology returns the topology simulator for scenario scripting.
func (a *App) Topology() *topology.Simulator {
	return a.topology
}

func (a *App) Run() error {
	if a.gossip != nil && len(a.cfg.Cluster.Gossip.Seeds) > 0 {
		var joinErr error
		for i := 0; i < 5; i++ {
			joinErr = a.gossip.Join(a.cfg.Cluster.Gossip.Seeds)
			if joinErr == nil {
				break
			}
			logger.Warnw("Failed to join cluster, retrying...", "attempt", i+1, "error", joinErr.Error())
			time.Sleep(2 * time.Second)
		}
		if joinErr != nil {
			logger.Errorw("Failed to join cluster after retries", "error", joinErr.Error())
		}
	}

	logger.Infow("Cluster sim starting",
		"addr", a.cfg.Server.Addr(),
		"store", a.cfg.Store.Backend,
		"gossip", a.cfg.Cluster.Gossip.Enabled)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("HTTP server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down cluster sim")
	if a.gossip != nil {
		if err := a.gossip.Leave(); err != nil {
			logger.Warnw("Gossip leave failed", "error", err.Error())
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		logger.Warnw("HTTP shutdown failed", "error", err.Error())
	}
	if err := a.provider.Close(); err != nil {
		logger.Warnw("Provider close failed", "error", err.Error())
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logger.Warnw("Store close failed", "error", err.Error())
		}
	}

	return runErr
}

package topology

import (
	"errors"
	"fmt"
	"sync"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
	"github.com/anthanhphan/go-cluster-sim/pkg/placement"
)

var (
	ErrNoNodes     = errors.New("no nodes registered for placement")
	ErrUnknownCore = errors.New("unknown core")
	ErrCoreExists  = errors.New("core already exists")
)

// Simulator is an in-memory stand-in for the cluster-topology
// collaborator. It owns collection/shard/replica placement and answers
// per-node replica lookups. Replicas of a new collection are spread
// over registered nodes by a consistent-hash ring, so placement is
// deterministic for a given member set.
type Simulator struct {
	mu      sync.RWMutex
	byNode  map[string][]*domain.ReplicaInfo
	byCore  map[string]*domain.ReplicaInfo
	counter map[string]int // per-collection core_node sequence
	ring    *placement.Ring
}

// Ensure Simulator implements port.TopologyProvider.
var _ port.TopologyProvider = (*Simulator)(nil)

// New creates an empty simulator.
func New() *Simulator {
	return &Simulator{
		byNode:  make(map[string][]*domain.ReplicaInfo),
		byCore:  make(map[string]*domain.ReplicaInfo),
		counter: make(map[string]int),
		ring:    placement.NewRing(placement.DefaultVNodesPerNode),
	}
}

// AddNode registers a node as a placement target.
func (s *Simulator) AddNode(node string) {
	s.ring.AddNode(node)
}

// RemoveNode withdraws a node from future placement. Replicas already
// placed there stay until removed explicitly.
func (s *Simulator) RemoveNode(node string) {
	s.ring.RemoveNode(node)
}

// AddCollection creates a collection with the given number of shards,
// each replicated replicasPerShard times across registered nodes.
// Shards are named shard1..shardN; cores carry a per-collection
// core_node sequence so suffix matching in metrics tags works the way
// it does against real core names.
func (s *Simulator) AddCollection(collection string, shards, replicasPerShard int) error {
	if s.ring.Size() == 0 {
		return ErrNoNodes
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 1; i <= shards; i++ {
		shard := fmt.Sprintf("shard%d", i)
		nodes := s.ring.PickN(collection+"/"+shard, replicasPerShard)
		for _, node := range nodes {
			s.counter[collection]++
			r := &domain.ReplicaInfo{
				Core:       domain.CoreName(collection, shard, s.counter[collection]),
				Collection: collection,
				Shard:      shard,
				Node:       node,
			}
			s.byCore[r.Core] = r
			s.byNode[node] = append(s.byNode[node], r)
		}
	}
	return nil
}

// AddReplica registers a replica directly, bypassing ring placement.
// The harness uses it to build exact topologies in tests.
func (s *Simulator) AddReplica(r domain.ReplicaInfo) error {
	if r.Core == "" || r.Collection == "" || r.Shard == "" || r.Node == "" {
		return fmt.Errorf("replica %q: core, collection, shard and node are required", r.Core)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byCore[r.Core]; ok {
		return fmt.Errorf("%w: %s", ErrCoreExists, r.Core)
	}
	stored := r
	stored.Variables = copyVariables(r.Variables)
	s.byCore[stored.Core] = &stored
	s.byNode[stored.Node] = append(s.byNode[stored.Node], &stored)
	return nil
}

// RemoveReplica drops a replica by core name.
func (s *Simulator) RemoveReplica(core string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byCore[core]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCore, core)
	}
	delete(s.byCore, core)
	hosted := s.byNode[r.Node]
	for i, candidate := range hosted {
		if candidate.Core == core {
			s.byNode[r.Node] = append(hosted[:i], hosted[i+1:]...)
			break
		}
	}
	if len(s.byNode[r.Node]) == 0 {
		delete(s.byNode, r.Node)
	}
	return nil
}

// SetReplicaVariable upserts one variable on a replica's metric store.
func (s *Simulator) SetReplicaVariable(core, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byCore[core]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCore, core)
	}
	r.SetVariable(key, value)
	return nil
}

// ReplicasOnNode returns copies of the replicas hosted on the node, in
// registration order, or nil if it hosts none.
func (s *Simulator) ReplicasOnNode(node string) []domain.ReplicaInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hosted := s.byNode[node]
	if len(hosted) == 0 {
		return nil
	}
	res := make([]domain.ReplicaInfo, 0, len(hosted))
	for _, r := range hosted {
		copied := *r
		copied.Variables = copyVariables(r.Variables)
		res = append(res, copied)
	}
	return res
}

func copyVariables(vars map[string]any) map[string]any {
	if vars == nil {
		return nil
	}
	copied := make(map[string]any, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return copied
}

package liveness

import (
	"sort"
	"sync"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
)

// StaticSet is a harness-owned live-node set. The simulation adds and
// removes members as scenario steps; the provider only reads it.
type StaticSet struct {
	mu    sync.RWMutex
	nodes map[string]struct{}
}

// Ensure StaticSet implements port.Membership.
var _ port.Membership = (*StaticSet)(nil)

// New creates a set seeded with the given nodes.
func New(nodes ...string) *StaticSet {
	s := &StaticSet{nodes: make(map[string]struct{}, len(nodes))}
	for _, n := range nodes {
		s.nodes[n] = struct{}{}
	}
	return s
}

// Add marks a node live.
func (s *StaticSet) Add(node string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[node] = struct{}{}
}

// Remove marks a node dead.
func (s *StaticSet) Remove(node string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, node)
}

// IsLive reports membership.
func (s *StaticSet) IsLive(node string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nodes[node]
	return ok
}

// Nodes returns the current members, sorted.
func (s *StaticSet) Nodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]string, 0, len(s.nodes))
	for n := range s.nodes {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

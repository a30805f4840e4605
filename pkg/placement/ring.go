package placement

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spaolacci/murmur3"
)

const (
	// DefaultVNodesPerNode is the default number of virtual nodes per
	// physical node. More vnodes balance placement better at the cost
	// of a larger ring.
	DefaultVNodesPerNode = 64
)

// vnode is a virtual position on the ring pointing at a node id.
type vnode struct {
	token uint64
	node  string
}

// Ring is a consistent-hash ring over node identifiers. The topology
// simulator uses it to spread a collection's replicas across the
// cluster deterministically.
type Ring struct {
	mu            sync.RWMutex
	vnodes        []vnode
	nodes         map[string]struct{}
	vnodesPerNode int
}

// NewRing creates an empty ring.
func NewRing(vnodesPerNode int) *Ring {
	if vnodesPerNode <= 0 {
		vnodesPerNode = DefaultVNodesPerNode
	}
	return &Ring{
		nodes:         make(map[string]struct{}),
		vnodesPerNode: vnodesPerNode,
	}
}

// AddNode adds a node to the ring. Adding a known node is a no-op, so
// placement stays stable across repeated registrations.
func (r *Ring) AddNode(node string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[node]; exists {
		return
	}
	r.nodes[node] = struct{}{}

	for i := 0; i < r.vnodesPerNode; i++ {
		token := murmur3.Sum64([]byte(fmt.Sprintf("%s-%d", node, i)))
		r.vnodes = append(r.vnodes, vnode{token: token, node: node})
	}
	sort.Slice(r.vnodes, func(i, j int) bool {
		return r.vnodes[i].token < r.vnodes[j].token
	})
}

// RemoveNode removes a node and its vnodes from the ring.
func (r *Ring) RemoveNode(node string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[node]; !exists {
		return
	}
	delete(r.nodes, node)

	kept := make([]vnode, 0, len(r.vnodes))
	for _, vn := range r.vnodes {
		if vn.node != node {
			kept = append(kept, vn)
		}
	}
	r.vnodes = kept
}

// Nodes returns the node ids currently on the ring, sorted.
func (r *Ring) Nodes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]string, 0, len(r.nodes))
	for n := range r.nodes {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Size returns the number of physical nodes on the ring.
func (r *Ring) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// PickN walks the ring clockwise from the key's token and returns up
// to n distinct node ids. Fewer than n nodes on the ring yields them
// all.
func (r *Ring) PickN(key string, n int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.vnodes) == 0 || n <= 0 {
		return nil
	}
	if n > len(r.nodes) {
		n = len(r.nodes)
	}

	token := murmur3.Sum64([]byte(key))
	idx := sort.Search(len(r.vnodes), func(i int) bool {
		return r.vnodes[i].token >= token
	})
	if idx == len(r.vnodes) {
		idx = 0
	}

	picked := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(picked) < n {
		vn := r.vnodes[idx]
		if _, ok := seen[vn.node]; !ok {
			picked = append(picked, vn.node)
			seen[vn.node] = struct{}{}
		}
		idx = (idx + 1) % len(r.vnodes)
	}
	return picked
}

package port

import (
	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
)

//go:generate mockgen -destination=mocks/cluster_mock.go -package=mocks -source=cluster.go

// Membership is the externally owned live-node set. The provider only
// reads it; state for nodes that fall out of it is evicted lazily.
type Membership interface {
	// IsLive reports whether the node is currently a cluster member.
	IsLive(node string) bool

	// Nodes returns the current member ids.
	Nodes() []string
}

// TopologyProvider is the cluster-topology simulator that owns
// collection/shard/replica placement.
type TopologyProvider interface {
	// ReplicasOnNode returns the replicas hosted on the node, or nil
	// if the node hosts none.
	ReplicasOnNode(node string) []domain.ReplicaInfo
}

// ConfigStore is the distributed configuration store used as a
// persistence sink for the role index.
type ConfigStore interface {
	// SetData writes data at path. Version -1 overwrites
	// unconditionally; any other value is an optimistic check the
	// backend may honor.
	SetData(path string, data []byte, version int32) error
}

package port

import (
	"errors"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
)

var (
	// ErrMixedTags is returned when one GetNodeValues call requests
	// both metrics tags and plain keys.
	ErrMixedTags = errors.New("mixed metrics and plain tags are not supported")
)

// StateProvider is the per-node state surface consumed by autoscaling
// policy logic. Implementations are safe for concurrent use.
type StateProvider interface {
	// GetNodeValues resolves the requested tags against the node's
	// stored state or its simulated replica metrics. Unknown nodes
	// and unknown tags resolve to an empty or partial result, never
	// an error; mixing metrics and plain tags fails with ErrMixedTags.
	GetNodeValues(node string, tags []string) (map[string]domain.Value, error)

	// GetReplicaInfo groups the node's replicas by collection, then
	// shard. keys is accepted for interface compatibility and does
	// not filter the grouping.
	GetReplicaInfo(node string, keys []string) (map[string]map[string][]domain.ReplicaInfo, error)

	// Close releases nothing; the provider owns no external handles.
	Close() error
}

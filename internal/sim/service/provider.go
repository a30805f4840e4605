package service

import (
	"fmt"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
	"github.com/anthanhphan/gosdk/logger"
)

// Provider is a facade that composes the node-state store, the role
// tracker and the tag resolvers. It implements port.StateProvider for
// policy consumers and additionally exposes the setup surface the
// simulation harness mutates state through.
type Provider struct {
	membership port.Membership
	values     *valueStore
	roles      *roleTracker
	metrics    *metricsResolver
	replicas   *replicaIndexer
}

// Ensure Provider implements port.StateProvider.
var _ port.StateProvider = (*Provider)(nil)

// NewProvider builds the provider and seeds it with initial node
// values. If any seeded node carries a nodeRole the role index is
// persisted once before returning.
func NewProvider(membership port.Membership, topology port.TopologyProvider, configStore port.ConfigStore, initial map[string]map[string]domain.Value) (*Provider, error) {
	values := newValueStore()
	p := &Provider{
		membership: membership,
		values:     values,
		roles:      newRoleTracker(values, configStore),
		metrics:    newMetricsResolver(topology),
		replicas:   newReplicaIndexer(topology),
	}
	values.onRoleChange = p.roles.recomputeAndPersist

	seededRole := false
	for node, nodeValues := range initial {
		values.seed(node, nodeValues)
		if _, ok := nodeValues[domain.NodeRoleKey]; ok {
			seededRole = true
		}
	}
	if seededRole {
		if err := p.roles.recomputeAndPersist(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ---------- simulation setup surface ----------

// SetNodeValues replaces the node's entire mapping atomically.
func (p *Provider) SetNodeValues(node string, values map[string]domain.Value) error {
	return p.values.setAll(node, values)
}

// SetNodeValue upserts a single key.
func (p *Provider) SetNodeValue(node, key string, value domain.Value) error {
	return p.values.setOne(node, key, value)
}

// AddNodeValue merges a scalar into the node's value for key,
// promoting an existing scalar to a set.
func (p *Provider) AddNodeValue(node, key string, scalar any) error {
	return p.values.mergeAdd(node, key, scalar)
}

// RemoveNodeValues deletes and returns the node's former mapping, or
// nil if the node had none.
func (p *Provider) RemoveNodeValues(node string) (map[string]domain.Value, error) {
	return p.values.removeAll(node)
}

// NodeValue returns one stored value.
func (p *Provider) NodeValue(node, key string) (domain.Value, bool) {
	return p.values.get(node, key)
}

// AllNodeValues returns a copy of the full store.
func (p *Provider) AllNodeValues() map[string]map[string]domain.Value {
	return p.values.snapshot()
}

// RoleAssignments returns the current derived role→nodes index.
func (p *Provider) RoleAssignments() map[string][]string {
	return p.roles.assignments()
}

// ---------- policy-facing surface ----------

// GetNodeValues resolves the requested tags for one node. A node
// absent from the live set has its state evicted and resolves to an
// empty result; if the evicted node held a nodeRole and re-persisting
// the role index fails, that error is returned instead of the empty
// result, since a role index the sink refused to accept must stop the
// run rather than go stale silently. A call mixing metrics and plain
// tags fails with port.ErrMixedTags and yields no partial result.
func (p *Provider) GetNodeValues(node string, tags []string) (map[string]domain.Value, error) {
	logger.Debugw("node values requested", "node", node, "tags", tags)
	if !p.membership.IsLive(node) {
		if _, err := p.values.removeAll(node); err != nil {
			return nil, err
		}
		return map[string]domain.Value{}, nil
	}
	if len(tags) == 0 {
		return map[string]domain.Value{}, nil
	}
	metrics, err := classifyTags(tags)
	if err != nil {
		return nil, err
	}
	if metrics {
		return p.metrics.resolve(node, tags), nil
	}
	return p.values.filter(node, tags), nil
}

// GetMetricsValues resolves metrics tags directly, bypassing the
// live-node check.
func (p *Provider) GetMetricsValues(node string, tags []string) map[string]domain.Value {
	return p.metrics.resolve(node, tags)
}

// GetReplicaInfo groups the node's replicas by collection then shard.
// keys is accepted for interface compatibility and does not filter.
func (p *Provider) GetReplicaInfo(node string, keys []string) (map[string]map[string][]domain.ReplicaInfo, error) {
	return p.replicas.group(node), nil
}

// Close is a guaranteed no-op: the provider owns no external handles.
func (p *Provider) Close() error {
	return nil
}

// classifyTags reports whether the tag set is all-metrics. A set
// mixing metrics and plain tags is rejected whole.
func classifyTags(tags []string) (bool, error) {
	metrics := domain.IsMetricsTag(tags[0])
	for _, tag := range tags[1:] {
		if domain.IsMetricsTag(tag) != metrics {
			return false, fmt.Errorf("%w: %v", port.ErrMixedTags, tags)
		}
	}
	return metrics, nil
}

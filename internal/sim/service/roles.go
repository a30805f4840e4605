package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
	"github.com/anthanhphan/gosdk/logger"
)

// RolesPath is the fixed configuration-store path of the persisted
// role index.
const RolesPath = "/roles.json"

// roleTracker keeps the derived role→nodes index persisted. Its mutex
// is the sole serialization point: concurrent role-affecting mutations
// serialize their scans and writes here, so the sink never sees a torn
// snapshot.
type roleTracker struct {
	mu     sync.Mutex
	values *valueStore
	sink   port.ConfigStore
}

func newRoleTracker(values *valueStore, sink port.ConfigStore) *roleTracker {
	return &roleTracker{values: values, sink: sink}
}

// recomputeAndPersist scans the full store, rebuilds role→nodes and
// writes it unconditionally to RolesPath. A sink failure is wrapped
// and returned: continuing with a stale role index would silently
// corrupt autoscaling decisions, so callers must treat it as fatal.
func (t *roleTracker) recomputeAndPersist() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	roles := t.assignments()
	data, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("serializing roles %v: %w", roles, err)
	}
	if err := t.sink.SetData(RolesPath, data, -1); err != nil {
		return fmt.Errorf("saving roles %v: %w", roles, err)
	}
	return nil
}

// assignments derives role→sorted node ids from the current store
// contents. A set-valued nodeRole contributes the node under every
// role in the set; non-string role values are skipped with a warning.
func (t *roleTracker) assignments() map[string][]string {
	byRole := make(map[string]map[string]struct{})
	for node, values := range t.values.snapshot() {
		v, ok := values[domain.NodeRoleKey]
		if !ok {
			continue
		}
		for _, member := range v.Members() {
			role, ok := member.(string)
			if !ok {
				logger.Warnw("ignoring non-string nodeRole value", "node", node, "value", member)
				continue
			}
			nodes, ok := byRole[role]
			if !ok {
				nodes = make(map[string]struct{})
				byRole[role] = nodes
			}
			nodes[node] = struct{}{}
		}
	}

	// Sorted node lists keep the persisted bytes deterministic.
	roles := make(map[string][]string, len(byRole))
	for role, nodes := range byRole {
		sorted := make([]string, 0, len(nodes))
		for node := range nodes {
			sorted = append(sorted, node)
		}
		sort.Strings(sorted)
		roles[role] = sorted
	}
	return roles
}

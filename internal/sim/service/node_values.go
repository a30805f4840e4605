package service

import (
	"sync"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
)

// roleChangeListener is invoked synchronously after any mutation that
// touches the nodeRole key, before the mutating call returns.
type roleChangeListener func() error

// valueStore holds arbitrary key/value state per simulated node.
// A single RWMutex guards the nested maps; per-node replace, upsert,
// merge and remove are atomic relative to concurrent readers.
type valueStore struct {
	mu    sync.RWMutex
	nodes map[string]map[string]domain.Value

	onRoleChange roleChangeListener
}

func newValueStore() *valueStore {
	return &valueStore{nodes: make(map[string]map[string]domain.Value)}
}

// setAll replaces the node's entire mapping. The input is copied so
// callers cannot mutate stored state behind the lock.
func (s *valueStore) setAll(node string, values map[string]domain.Value) error {
	stored := make(map[string]domain.Value, len(values))
	for k, v := range values {
		stored[k] = v
	}

	if s.applyReplace(node, stored) {
		return s.notifyRoleChange()
	}
	return nil
}

// applyReplace installs the mapping and reports whether nodeRole was
// present before or after, either of which invalidates the role index.
func (s *valueStore) applyReplace(node string, stored map[string]domain.Value) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, hadRole := s.nodes[node][domain.NodeRoleKey]
	s.nodes[node] = stored
	_, hasRole := stored[domain.NodeRoleKey]
	return hadRole || hasRole
}

// setOne upserts a single key for the node, creating the node's
// mapping on first write.
func (s *valueStore) setOne(node, key string, value domain.Value) error {
	s.applyUpsert(node, key, value)

	if key == domain.NodeRoleKey {
		return s.notifyRoleChange()
	}
	return nil
}

func (s *valueStore) applyUpsert(node, key string, value domain.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.nodes[node]
	if !ok {
		values = make(map[string]domain.Value)
		s.nodes[node] = values
	}
	values[key] = value
}

// mergeAdd applies the promote-to-set rule: a missing key stores the
// scalar, an existing scalar becomes a two-element set, an existing
// set absorbs the scalar.
func (s *valueStore) mergeAdd(node, key string, scalar any) error {
	s.applyMerge(node, key, scalar)

	if key == domain.NodeRoleKey {
		return s.notifyRoleChange()
	}
	return nil
}

// applyMerge holds the lock only for the map mutation. The deferred
// unlock keeps the store usable if Add panics on an unhashable merge
// value, instead of wedging every later reader behind a held mutex.
func (s *valueStore) applyMerge(node, key string, scalar any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.nodes[node]
	if !ok {
		values = make(map[string]domain.Value)
		s.nodes[node] = values
	}
	if existing, ok := values[key]; ok {
		values[key] = existing.Add(scalar)
	} else {
		values[key] = domain.Scalar(scalar)
	}
}

// removeAll deletes and returns the node's former mapping. It returns
// nil if the node had no state.
func (s *valueStore) removeAll(node string) (map[string]domain.Value, error) {
	former := s.applyRemove(node)

	if former != nil {
		if _, hadRole := former[domain.NodeRoleKey]; hadRole {
			if err := s.notifyRoleChange(); err != nil {
				return former, err
			}
		}
	}
	return former, nil
}

func (s *valueStore) applyRemove(node string) map[string]domain.Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	former := s.nodes[node]
	delete(s.nodes, node)
	return former
}

// seed installs a node mapping without emitting the role signal. The
// provider constructor persists roles once after all seeds are in.
func (s *valueStore) seed(node string, values map[string]domain.Value) {
	stored := make(map[string]domain.Value, len(values))
	for k, v := range values {
		stored[k] = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[node] = stored
}

// get returns one value for the node.
func (s *valueStore) get(node, key string) (domain.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, ok := s.nodes[node]
	if !ok {
		return domain.Value{}, false
	}
	v, ok := values[key]
	return v, ok
}

// filter returns the subset of the node's state whose keys appear in
// tags. Tags with no stored value are silently omitted.
func (s *valueStore) filter(node string, tags []string) map[string]domain.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make(map[string]domain.Value)
	values, ok := s.nodes[node]
	if !ok {
		return res
	}
	for _, tag := range tags {
		if v, ok := values[tag]; ok {
			res[tag] = v
		}
	}
	return res
}

// snapshot copies the full store. Values are immutable once stored, so
// copying the maps is enough for a consistent read.
func (s *valueStore) snapshot() map[string]map[string]domain.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make(map[string]map[string]domain.Value, len(s.nodes))
	for node, values := range s.nodes {
		copied := make(map[string]domain.Value, len(values))
		for k, v := range values {
			copied[k] = v
		}
		res[node] = copied
	}
	return res
}

func (s *valueStore) notifyRoleChange() error {
	if s.onRoleChange == nil {
		return nil
	}
	return s.onRoleChange()
}
